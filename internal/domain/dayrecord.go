package domain

// WorkType is the closed-set category tag describing a day's activity.
// The empty string means "no work type set".
type WorkType string

const (
	WorkLonge   WorkType = "longe"
	WorkLiberte WorkType = "liberte"
	WorkRepos   WorkType = "repos"
	WorkPlat    WorkType = "plat"
	WorkCSO     WorkType = "cso"
	WorkBalade  WorkType = "balade"
	WorkTAP     WorkType = "tap"
)

// WorkTypes lists every valid work type in display order.
var WorkTypes = []WorkType{
	WorkLonge, WorkLiberte, WorkRepos, WorkPlat, WorkCSO, WorkBalade, WorkTAP,
}

var workTypeIcons = map[WorkType]string{
	WorkLonge:   "💫",
	WorkLiberte: "🐎",
	WorkRepos:   "💤",
	WorkPlat:    "🎠",
	WorkCSO:     "🚧",
	WorkBalade:  "🌳",
	WorkTAP:     "🥕",
}

var workTypeLabels = map[WorkType]string{
	WorkLonge:   "Longe",
	WorkLiberte: "Liberté",
	WorkRepos:   "Repos",
	WorkPlat:    "Dressage",
	WorkCSO:     "CSO",
	WorkBalade:  "Balade",
	WorkTAP:     "TAP",
}

// Valid reports whether w is empty or one of the known work types.
func (w WorkType) Valid() bool {
	if w == "" {
		return true
	}
	_, ok := workTypeLabels[w]
	return ok
}

// Icon returns the work type's display icon, or "" for empty/unknown tags.
func (w WorkType) Icon() string { return workTypeIcons[w] }

// Label returns the work type's display label. Unknown tags fall back to
// the raw tag value, matching the original front-end behaviour.
func (w WorkType) Label() string {
	if l, ok := workTypeLabels[w]; ok {
		return l
	}
	return string(w)
}

// DayRecord is everything attached to one calendar day: the ordered list of
// assigned cavalier names, the work type, and a free-text comment.
//
// Cavaliers preserves insertion order — removal is by position, so order is
// observable. A name appears at most once. A day with no record is simply
// untouched; an explicit empty record is never stored (saving an empty
// triple removes the day instead).
type DayRecord struct {
	Cavaliers []string `json:"cavaliers"`
	Comment   string   `json:"comment"`
	WorkType  WorkType `json:"work_type"`
}

// Empty reports whether the record carries no information and should be
// removed from storage rather than persisted.
func (r DayRecord) Empty() bool {
	return len(r.Cavaliers) == 0 && r.Comment == "" && r.WorkType == ""
}

// Assigned reports whether name is already on the day's list.
func (r DayRecord) Assigned(name string) bool {
	for _, n := range r.Cavaliers {
		if n == name {
			return true
		}
	}
	return false
}

// Snapshot is the full assignment state keyed by day, as exchanged with the
// persistence layer. Callers adopt a returned Snapshot verbatim; they never
// merge it into previous state.
type Snapshot map[DateKey]DayRecord
