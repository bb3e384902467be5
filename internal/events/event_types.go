package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventVoteCast         EventType = "vote_cast"
	EventCandidateCreated EventType = "candidate_created"
	EventCandidateUpdated EventType = "candidate_updated"
	EventCandidateDeleted EventType = "candidate_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	CandidateID string      `json:"candidate_id"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// VoteCastPayload payload.
type VoteCastPayload struct {
	VoterID string `json:"voter_id"`
}

// CandidateCreatedPayload payload.
type CandidateCreatedPayload struct {
	Name  string `json:"name"`
	Party string `json:"party"`
}

// CandidateUpdatedPayload payload.
type CandidateUpdatedPayload struct {
	Name  string `json:"name"`
	Party string `json:"party"`
}

// CandidateDeletedPayload payload.
type CandidateDeletedPayload struct {
	Party     string `json:"party"`
	VoteCount int    `json:"vote_count"`
}
