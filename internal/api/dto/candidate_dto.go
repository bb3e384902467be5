package dto

import "time"

// CreateCandidateRequest payload for candidate creation.
type CreateCandidateRequest struct {
	Name  string `json:"name"`
	Party string `json:"party"`
	Age   int    `json:"age"`
}

// UpdateCandidateRequest carries a partial candidate update.
type UpdateCandidateRequest struct {
	Name  *string `json:"name"`
	Party *string `json:"party"`
	Age   *int    `json:"age"`
}

// CandidateResponse is the full candidate view returned to administrators.
type CandidateResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Party     string    `json:"party"`
	Age       int       `json:"age"`
	VoteCount int       `json:"vote_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicCandidateResponse is the restricted listing entry: no id, age or tally.
type PublicCandidateResponse struct {
	Name  string `json:"name"`
	Party string `json:"party"`
}
