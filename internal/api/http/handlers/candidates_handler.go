package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/election-service/internal/api/dto"
	"github.com/spec-kit/election-service/internal/domain"
	"github.com/spec-kit/election-service/internal/service"
	apperrors "github.com/spec-kit/election-service/pkg/util"
)

// CandidatesHandler manages candidate endpoints. Mutations sit behind the
// auth middleware and the admin gate; the listing is public.
type CandidatesHandler struct {
	service *service.CandidateService
}

// NewCandidatesHandler constructs handler.
func NewCandidatesHandler(candidateService *service.CandidateService) *CandidatesHandler {
	return &CandidatesHandler{service: candidateService}
}

// Create POST /candidates.
func (h *CandidatesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	candidate, err := h.service.Create(c.Context(), service.CandidateInput{
		Name:  req.Name,
		Party: req.Party,
		Age:   req.Age,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(candidateResponse(candidate))
}

// Update PUT /candidates/:id.
func (h *CandidatesHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	candidate, err := h.service.Update(c.Context(), c.Params("id"), service.CandidatePatch{
		Name:  req.Name,
		Party: req.Party,
		Age:   req.Age,
	})
	if err != nil {
		return err
	}
	return c.JSON(candidateResponse(candidate))
}

// Delete DELETE /candidates/:id.
func (h *CandidatesHandler) Delete(c *fiber.Ctx) error {
	candidate, err := h.service.Delete(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(candidateResponse(candidate))
}

// List GET /candidates. Public: only name and party are exposed.
func (h *CandidatesHandler) List(c *fiber.Ctx) error {
	candidates, err := h.service.ListPublic(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.PublicCandidateResponse, 0, len(candidates))
	for _, candidate := range candidates {
		items = append(items, dto.PublicCandidateResponse{Name: candidate.Name, Party: candidate.Party})
	}
	return c.JSON(items)
}

func candidateResponse(candidate *domain.Candidate) dto.CandidateResponse {
	return dto.CandidateResponse{
		ID:        candidate.ID,
		Name:      candidate.Name,
		Party:     candidate.Party,
		Age:       candidate.Age,
		VoteCount: candidate.VoteCount,
		CreatedAt: candidate.CreatedAt,
		UpdatedAt: candidate.UpdatedAt,
	}
}
