package domain

import "time"

// Vote records a single ballot cast by a voter for a candidate.
type Vote struct {
	ID          string
	CandidateID string
	VoterID     string
	VotedAt     time.Time
}
