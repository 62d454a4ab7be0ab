package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adeline-t/horse-calendar/internal/domain"
)

func newTestEditor(t *testing.T, api *fakeAPI) (*Store, *Editor) {
	t.Helper()
	store := newTestStore(t, api)
	return store, NewEditor(store)
}

func TestEditorStartsClosed(t *testing.T) {
	_, ed := newTestEditor(t, newFakeAPI())

	assert.False(t, ed.IsOpen())
	assert.Empty(t, ed.Key())

	_, err := ed.Record()
	require.ErrorIs(t, err, domain.ErrValidation)
	require.ErrorIs(t, ed.Toggle(context.Background(), "Luna"), domain.ErrValidation)
	require.ErrorIs(t, ed.SetComment(context.Background(), "x"), domain.ErrValidation)
}

func TestOpenCloseCycle(t *testing.T) {
	_, ed := newTestEditor(t, newFakeAPI())

	require.NoError(t, ed.Open("2024-06-15"))
	assert.True(t, ed.IsOpen())
	assert.Equal(t, domain.DateKey("2024-06-15"), ed.Key())

	ed.Close()
	assert.False(t, ed.IsOpen())
	assert.Empty(t, ed.Key())
}

func TestOpenSwitchesDays(t *testing.T) {
	_, ed := newTestEditor(t, newFakeAPI())

	require.NoError(t, ed.Open("2024-06-15"))
	require.NoError(t, ed.Open("2024-06-16"))
	assert.Equal(t, domain.DateKey("2024-06-16"), ed.Key())
}

func TestOpenRejectsBadKey(t *testing.T) {
	_, ed := newTestEditor(t, newFakeAPI())

	require.ErrorIs(t, ed.Open("junk"), domain.ErrValidation)
	assert.False(t, ed.IsOpen())
}

func TestToggleAssignsAndUnassigns(t *testing.T) {
	api := newFakeAPI()
	store, ed := newTestEditor(t, api)
	require.NoError(t, ed.Open("2024-06-15"))

	require.NoError(t, ed.Toggle(context.Background(), "Luna"))
	require.NoError(t, ed.Toggle(context.Background(), "Eclair"))
	assert.Equal(t, []string{"Luna", "Eclair"}, store.Day("2024-06-15").Cavaliers)

	require.NoError(t, ed.Toggle(context.Background(), "Luna"))
	assert.Equal(t, []string{"Eclair"}, store.Day("2024-06-15").Cavaliers)
}

func TestToggleLastCavalierDeletesEmptyDay(t *testing.T) {
	api := newFakeAPI()
	store, ed := newTestEditor(t, api)
	require.NoError(t, ed.Open("2024-06-15"))

	require.NoError(t, ed.Toggle(context.Background(), "Luna"))
	require.NoError(t, ed.Toggle(context.Background(), "Luna"))
	assert.NotContains(t, store.Snapshot(), domain.DateKey("2024-06-15"))
}

func TestEligibleExcludesAssigned(t *testing.T) {
	api := newFakeAPI()
	api.roster = []domain.Cavalier{{Name: "Luna"}, {Name: "Eclair"}, {Name: "Gone", EndDate: "2024-01-01"}}
	api.snapshot["2024-06-15"] = domain.DayRecord{Cavaliers: []string{"Luna"}}
	_, ed := newTestEditor(t, api)
	require.NoError(t, ed.Open("2024-06-15"))

	eligible, err := ed.Eligible()
	require.NoError(t, err)
	require.Len(t, eligible, 1)
	assert.Equal(t, "Eclair", eligible[0].Name)
}

func TestSetCommentPreservesAssignments(t *testing.T) {
	api := newFakeAPI()
	api.snapshot["2024-06-15"] = domain.DayRecord{Cavaliers: []string{"Luna"}, WorkType: domain.WorkPlat}
	store, ed := newTestEditor(t, api)
	require.NoError(t, ed.Open("2024-06-15"))

	require.NoError(t, ed.SetComment(context.Background(), "vet visit at noon"))

	got := store.Day("2024-06-15")
	assert.Equal(t, "vet visit at noon", got.Comment)
	assert.Equal(t, []string{"Luna"}, got.Cavaliers)
	assert.Equal(t, domain.WorkPlat, got.WorkType)
}

func TestSetWorkTypeRejectsUnknown(t *testing.T) {
	_, ed := newTestEditor(t, newFakeAPI())
	require.NoError(t, ed.Open("2024-06-15"))

	require.ErrorIs(t, ed.SetWorkType(context.Background(), "gallop"), domain.ErrValidation)
}

func TestToggleFailureLeavesDayUntouched(t *testing.T) {
	api := newFakeAPI()
	api.snapshot["2024-06-15"] = domain.DayRecord{Cavaliers: []string{"Luna"}}
	store, ed := newTestEditor(t, api)
	require.NoError(t, ed.Open("2024-06-15"))

	api.failNext = errors.New("boom")
	require.Error(t, ed.Toggle(context.Background(), "Eclair"))
	assert.Equal(t, []string{"Luna"}, store.Day("2024-06-15").Cavaliers)
}
