package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/election-service/internal/api/dto"
	"github.com/spec-kit/election-service/internal/auth"
	"github.com/spec-kit/election-service/internal/service"
	apperrors "github.com/spec-kit/election-service/pkg/util"
)

// VotesHandler exposes the vote-casting and vote-count endpoints.
type VotesHandler struct {
	voting  *service.VotingService
	results *service.ResultService
}

// NewVotesHandler constructs handler.
func NewVotesHandler(votingService *service.VotingService, resultService *service.ResultService) *VotesHandler {
	return &VotesHandler{voting: votingService, results: resultService}
}

// Cast GET /candidates/vote/:id.
func (h *VotesHandler) Cast(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.voting.CastVote(c.Context(), c.Params("id"), principal.User.ID); err != nil {
		return err
	}
	return c.JSON(dto.VoteResponse{Message: "Vote recorded successfully"})
}

// Count GET /candidates/vote/count.
func (h *VotesHandler) Count(c *fiber.Ctx) error {
	entries, err := h.results.Tally(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(entries)
}
