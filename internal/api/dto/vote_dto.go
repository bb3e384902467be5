package dto

// VoteResponse confirms a recorded vote.
type VoteResponse struct {
	Message string `json:"message"`
}
