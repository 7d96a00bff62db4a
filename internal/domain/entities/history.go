package entities

import "time"

// HistoryLimit is the maximum number of retained history records. Saves
// beyond the limit drop the oldest entries.
const HistoryLimit = 50

// HistoryRecord is a saved debrief session: the full transcript plus the
// extracted analysis. Records are kept newest-first.
type HistoryRecord struct {
	ID           string        `json:"id"`
	SavedAt      time.Time     `json:"savedAt"`
	CustomerName string        `json:"customerName"`
	Date         string        `json:"date"`
	Messages     []Turn        `json:"messages"`
	Analysis     MeetingRecord `json:"analysis"`
}
