package models

// QuotaState is the persisted daily call-count record.
// A stored date differing from the current calendar day means the
// count has rolled over and reads as zero.
type QuotaState struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}
