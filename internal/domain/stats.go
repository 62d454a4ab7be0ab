package domain

// StatsReport is the aggregated view behind GET /api/stats: how many days
// each cavalier was assigned and how often each work type occurred, plus
// the roster so callers can resolve colors without a second request.
//
// Counts are derived on demand from the assignment snapshot; nothing here
// is stored.
type StatsReport struct {
	CavalierCounts map[string]int   `json:"cavalier_stats"`
	WorkTypeCounts map[WorkType]int `json:"work_types"`
	Cavaliers      []Cavalier       `json:"cavaliers_data"`
}
