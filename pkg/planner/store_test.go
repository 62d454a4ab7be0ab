package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adeline-t/horse-calendar/internal/domain"
)

// fakeAPI simulates the server: mutations operate on its own state and
// return the full updated collection, matching the wire contract.
type fakeAPI struct {
	roster      []domain.Cavalier
	snapshot    domain.Snapshot
	failNext    error
	createCalls int
	updateCalls int
}

var _ Persister = (*fakeAPI)(nil)

func newFakeAPI() *fakeAPI {
	return &fakeAPI{snapshot: domain.Snapshot{}}
}

func (f *fakeAPI) fail() error {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}
	return nil
}

func (f *fakeAPI) Cavaliers(context.Context) ([]domain.Cavalier, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	return append([]domain.Cavalier{}, f.roster...), nil
}

func (f *fakeAPI) Assignments(context.Context) (domain.Snapshot, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	return f.copySnapshot(), nil
}

func (f *fakeAPI) SaveDay(_ context.Context, key domain.DateKey, rec domain.DayRecord) (domain.Snapshot, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	if rec.Empty() {
		delete(f.snapshot, key)
	} else {
		f.snapshot[key] = rec
	}
	return f.copySnapshot(), nil
}

func (f *fakeAPI) CreateCavalier(_ context.Context, cav domain.Cavalier) ([]domain.Cavalier, error) {
	f.createCalls++
	if err := f.fail(); err != nil {
		return nil, err
	}
	f.roster = append(f.roster, cav)
	return append([]domain.Cavalier{}, f.roster...), nil
}

func (f *fakeAPI) UpdateCavalier(_ context.Context, index int, patch domain.CavalierPatch) ([]domain.Cavalier, error) {
	f.updateCalls++
	if err := f.fail(); err != nil {
		return nil, err
	}
	if patch.Name != nil {
		f.roster[index].Name = *patch.Name
	}
	if patch.Color != nil {
		f.roster[index].Color = *patch.Color
	}
	if patch.StartDate != nil {
		f.roster[index].StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		f.roster[index].EndDate = *patch.EndDate
	}
	return append([]domain.Cavalier{}, f.roster...), nil
}

func (f *fakeAPI) DeleteCavalier(_ context.Context, index int) ([]domain.Cavalier, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	f.roster = append(f.roster[:index], f.roster[index+1:]...)
	return append([]domain.Cavalier{}, f.roster...), nil
}

func (f *fakeAPI) copySnapshot() domain.Snapshot {
	out := domain.Snapshot{}
	for k, v := range f.snapshot {
		out[k] = v
	}
	return out
}

func newTestStore(t *testing.T, api *fakeAPI) *Store {
	t.Helper()
	store := NewStore(api)
	require.NoError(t, store.Refresh(context.Background()))
	return store
}

func TestSaveDayAdoptsServerSnapshot(t *testing.T) {
	api := newFakeAPI()
	store := newTestStore(t, api)

	rec := domain.DayRecord{Cavaliers: []string{"Luna"}, WorkType: domain.WorkPlat}
	require.NoError(t, store.SaveDay(context.Background(), "2024-06-15", rec))

	got := store.Day("2024-06-15")
	assert.Equal(t, []string{"Luna"}, got.Cavaliers)
	assert.Equal(t, domain.WorkPlat, got.WorkType)
}

func TestSaveDayFailureLeavesSnapshotUntouched(t *testing.T) {
	api := newFakeAPI()
	api.snapshot["2024-06-15"] = domain.DayRecord{Cavaliers: []string{"Luna"}}
	store := newTestStore(t, api)

	api.failNext = errors.New("boom")
	err := store.SaveDay(context.Background(), "2024-06-15", domain.DayRecord{Cavaliers: []string{"Eclair"}})
	require.Error(t, err)

	assert.Equal(t, []string{"Luna"}, store.Day("2024-06-15").Cavaliers)
}

func TestSaveDayRejectsDuplicateNames(t *testing.T) {
	store := newTestStore(t, newFakeAPI())

	err := store.SaveDay(context.Background(), "2024-06-15", domain.DayRecord{
		Cavaliers: []string{"Luna", "Eclair", "Luna"},
	})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "Luna")
}

func TestSaveDayRejectsBadKey(t *testing.T) {
	store := newTestStore(t, newFakeAPI())

	err := store.SaveDay(context.Background(), "15/06/2024", domain.DayRecord{Cavaliers: []string{"Luna"}})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestEmptyRecordDeletesDay(t *testing.T) {
	api := newFakeAPI()
	api.snapshot["2024-06-15"] = domain.DayRecord{Cavaliers: []string{"Luna"}}
	store := newTestStore(t, api)

	require.NoError(t, store.SaveDay(context.Background(), "2024-06-15", domain.DayRecord{}))
	assert.NotContains(t, store.Snapshot(), domain.DateKey("2024-06-15"))
}

func TestAssignRejectsSecondAdd(t *testing.T) {
	store := newTestStore(t, newFakeAPI())

	require.NoError(t, store.Assign(context.Background(), "2024-06-15", "Luna"))
	err := store.Assign(context.Background(), "2024-06-15", "Luna")
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, []string{"Luna"}, store.Day("2024-06-15").Cavaliers)
}

func TestUnassignPreservesOrder(t *testing.T) {
	api := newFakeAPI()
	api.snapshot["2024-06-15"] = domain.DayRecord{Cavaliers: []string{"Luna", "Eclair", "Ouragan"}}
	store := newTestStore(t, api)

	require.NoError(t, store.Unassign(context.Background(), "2024-06-15", 1))
	assert.Equal(t, []string{"Luna", "Ouragan"}, store.Day("2024-06-15").Cavaliers)
}

func TestUnassignStaleIndexRejected(t *testing.T) {
	api := newFakeAPI()
	api.snapshot["2024-06-15"] = domain.DayRecord{Cavaliers: []string{"Luna"}}
	store := newTestStore(t, api)

	require.NoError(t, store.Unassign(context.Background(), "2024-06-15", 0))
	// The day is gone now; the same index no longer resolves.
	require.ErrorIs(t, store.Unassign(context.Background(), "2024-06-15", 0), domain.ErrValidation)
}

func TestGetReportsPresence(t *testing.T) {
	api := newFakeAPI()
	api.snapshot["2024-06-15"] = domain.DayRecord{Comment: "farrier"}
	store := newTestStore(t, api)

	rec, ok := store.Get("2024-06-15")
	assert.True(t, ok)
	assert.Equal(t, "farrier", rec.Comment)

	_, ok = store.Get("2024-06-16")
	assert.False(t, ok)
}

func TestAddCavalierRejectsDuplicateName(t *testing.T) {
	api := newFakeAPI()
	api.roster = []domain.Cavalier{{Name: "Luna", Color: "#667eea"}}
	store := newTestStore(t, api)

	err := store.AddCavalier(context.Background(), domain.Cavalier{Name: "Luna"})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Len(t, store.Roster(), 1)
}

func TestAddCavalierDuplicateNameCaseInsensitive(t *testing.T) {
	api := newFakeAPI()
	api.roster = []domain.Cavalier{{Name: "Luna", Color: "#667eea"}}
	store := newTestStore(t, api)

	err := store.AddCavalier(context.Background(), domain.Cavalier{Name: "luna"})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, api.createCalls, "rejection happens before the request")
}

func TestAddCavalierInvertedWindowRejectedLocally(t *testing.T) {
	api := newFakeAPI()
	store := newTestStore(t, api)

	err := store.AddCavalier(context.Background(), domain.Cavalier{
		Name:      "Luna",
		StartDate: "2024-05-10",
		EndDate:   "2024-05-01",
	})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, api.createCalls, "rejection happens before the request")
	assert.Empty(t, store.Roster())
}

func TestAddCavalierMalformedDateRejectedLocally(t *testing.T) {
	api := newFakeAPI()
	store := newTestStore(t, api)

	err := store.AddCavalier(context.Background(), domain.Cavalier{
		Name:      "Luna",
		StartDate: "10/05/2024",
	})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, api.createCalls)
}

func TestUpdateCavalierInvertedMergedWindowRejectedLocally(t *testing.T) {
	api := newFakeAPI()
	api.roster = []domain.Cavalier{{Name: "Luna", StartDate: "2024-05-10"}}
	store := newTestStore(t, api)

	// The existing start combined with the patched end inverts the window.
	end := domain.DateKey("2024-05-01")
	err := store.UpdateCavalier(context.Background(), 0, domain.CavalierPatch{EndDate: &end})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, api.updateCalls, "rejection happens before the request")
}

func TestUpdateCavalierWindowPatchAccepted(t *testing.T) {
	api := newFakeAPI()
	api.roster = []domain.Cavalier{{Name: "Luna", StartDate: "2024-05-10"}}
	store := newTestStore(t, api)

	end := domain.DateKey("2024-05-20")
	require.NoError(t, store.UpdateCavalier(context.Background(), 0, domain.CavalierPatch{EndDate: &end}))
	assert.Equal(t, 1, api.updateCalls)
	assert.Equal(t, domain.DateKey("2024-05-20"), store.Roster()[0].EndDate)
}

func TestRemoveCavalierShiftsIndexes(t *testing.T) {
	api := newFakeAPI()
	api.roster = []domain.Cavalier{{Name: "Luna"}, {Name: "Eclair"}, {Name: "Ouragan"}, {Name: "Pompon"}}
	store := newTestStore(t, api)

	// Removing index 2 twice takes out Ouragan then Pompon.
	require.NoError(t, store.RemoveCavalier(context.Background(), 2))
	require.NoError(t, store.RemoveCavalier(context.Background(), 2))

	names := make([]string, 0, len(store.Roster()))
	for _, c := range store.Roster() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Luna", "Eclair"}, names)
}

func TestRemoveCavalierOutOfBounds(t *testing.T) {
	api := newFakeAPI()
	api.roster = []domain.Cavalier{{Name: "Luna"}}
	store := newTestStore(t, api)

	require.ErrorIs(t, store.RemoveCavalier(context.Background(), 1), domain.ErrValidation)
	require.ErrorIs(t, store.RemoveCavalier(context.Background(), -1), domain.ErrValidation)
}

func TestRemoveCavalierKeepsPastAssignments(t *testing.T) {
	api := newFakeAPI()
	api.roster = []domain.Cavalier{{Name: "Luna"}}
	api.snapshot["2024-06-15"] = domain.DayRecord{Cavaliers: []string{"Luna"}}
	store := newTestStore(t, api)

	require.NoError(t, store.RemoveCavalier(context.Background(), 0))
	assert.Equal(t, []string{"Luna"}, store.Day("2024-06-15").Cavaliers)
}

func TestActiveOnFiltersByWindow(t *testing.T) {
	api := newFakeAPI()
	api.roster = []domain.Cavalier{
		{Name: "Always"},
		{Name: "Gone", EndDate: "2024-05-31"},
		{Name: "Soon", StartDate: "2024-07-01"},
		{Name: "Within", StartDate: "2024-06-01", EndDate: "2024-06-30"},
	}
	store := newTestStore(t, api)

	active := store.ActiveOn("2024-06-15")
	names := make([]string, 0, len(active))
	for _, c := range active {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Always", "Within"}, names)
}

func TestRefreshFailureKeepsState(t *testing.T) {
	api := newFakeAPI()
	api.roster = []domain.Cavalier{{Name: "Luna"}}
	store := newTestStore(t, api)

	api.failNext = errors.New("network down")
	require.Error(t, store.Refresh(context.Background()))
	assert.Len(t, store.Roster(), 1)
}
