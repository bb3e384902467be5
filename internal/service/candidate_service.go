package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/election-service/internal/domain"
	"github.com/spec-kit/election-service/internal/events"
	"github.com/spec-kit/election-service/internal/repository"
	apperrors "github.com/spec-kit/election-service/pkg/util"
)

// CandidateService coordinates candidate CRUD workflows.
type CandidateService struct {
	candidates repository.CandidateRepository
	dispatcher events.Dispatcher
}

// CandidateInput describes candidate creation payload.
type CandidateInput struct {
	Name  string
	Party string
	Age   int
}

// CandidatePatch carries a partial update; nil fields are left untouched.
type CandidatePatch struct {
	Name  *string
	Party *string
	Age   *int
}

// NewCandidateService constructs the service.
func NewCandidateService(candidates repository.CandidateRepository, dispatcher events.Dispatcher) *CandidateService {
	return &CandidateService{candidates: candidates, dispatcher: dispatcher}
}

// Create validates and stores a new candidate with a zero tally.
func (s *CandidateService) Create(ctx context.Context, input CandidateInput) (*domain.Candidate, error) {
	candidate := &domain.Candidate{
		ID:    uuid.NewString(),
		Name:  strings.TrimSpace(input.Name),
		Party: strings.TrimSpace(input.Party),
		Age:   input.Age,
	}
	if err := validateCandidate(candidate); err != nil {
		return nil, err
	}

	if err := s.candidates.Create(ctx, candidate); err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:        events.EventCandidateCreated,
		CandidateID: candidate.ID,
		Payload:     events.CandidateCreatedPayload{Name: candidate.Name, Party: candidate.Party},
	})
	return candidate, nil
}

// Update applies a partial update to an existing candidate and re-validates
// the merged record.
func (s *CandidateService) Update(ctx context.Context, id string, patch CandidatePatch) (*domain.Candidate, error) {
	candidate, err := s.candidates.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Candidate", nil)
		}
		return nil, err
	}

	if patch.Name != nil {
		candidate.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Party != nil {
		candidate.Party = strings.TrimSpace(*patch.Party)
	}
	if patch.Age != nil {
		candidate.Age = *patch.Age
	}
	if err := validateCandidate(candidate); err != nil {
		return nil, err
	}

	if err := s.candidates.Update(ctx, candidate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Candidate", nil)
		}
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:        events.EventCandidateUpdated,
		CandidateID: candidate.ID,
		Payload:     events.CandidateUpdatedPayload{Name: candidate.Name, Party: candidate.Party},
	})
	return candidate, nil
}

// Delete removes a candidate and returns the deleted record.
func (s *CandidateService) Delete(ctx context.Context, id string) (*domain.Candidate, error) {
	candidate, err := s.candidates.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Candidate", nil)
		}
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:        events.EventCandidateDeleted,
		CandidateID: candidate.ID,
		Payload:     events.CandidateDeletedPayload{Party: candidate.Party, VoteCount: candidate.VoteCount},
	})
	return candidate, nil
}

// ListPublic returns the restricted candidate listing (name and party only).
func (s *CandidateService) ListPublic(ctx context.Context) ([]repository.PublicCandidate, error) {
	return s.candidates.ListPublic(ctx)
}

func (s *CandidateService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}

func validateCandidate(candidate *domain.Candidate) error {
	details := map[string]any{}
	if candidate.Name == "" {
		details["name"] = "required"
	}
	if candidate.Party == "" {
		details["party"] = "required"
	}
	if candidate.Age <= 0 {
		details["age"] = "must be a positive integer"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("name, party and age are required", details)
	}
	return nil
}
