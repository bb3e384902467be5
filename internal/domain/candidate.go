package domain

import "time"

// Candidate is the aggregate for ballot entries. VoteCount is denormalized
// for fast tally reads; it is incremented in the same transaction that
// inserts the vote record, so the two cannot drift.
type Candidate struct {
	ID        string
	Name      string
	Party     string
	Age       int
	VoteCount int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TallyEntry is one row of the public vote-count report.
type TallyEntry struct {
	Party string `json:"party"`
	Count int    `json:"count"`
}
