package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/election-service/internal/events"
	"github.com/spec-kit/election-service/internal/repository"
	apperrors "github.com/spec-kit/election-service/pkg/util"
)

// VotingService orchestrates vote casting: eligibility checks followed by an
// atomic commit of the flag set, the vote record and the tally increment.
type VotingService struct {
	candidates repository.CandidateRepository
	users      repository.UserRepository
	votes      repository.VoteRepository
	dispatcher events.Dispatcher
}

// VotingDependencies bundles repositories for the voting service.
type VotingDependencies struct {
	CandidateRepo repository.CandidateRepository
	UserRepo      repository.UserRepository
	VoteRepo      repository.VoteRepository
	Dispatcher    events.Dispatcher
}

// NewVotingService constructs the service.
func NewVotingService(deps VotingDependencies) *VotingService {
	return &VotingService{
		candidates: deps.CandidateRepo,
		users:      deps.UserRepo,
		votes:      deps.VoteRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CastVote records one vote by voterID for candidateID. Each check is a
// possible exit point; the is_voted read here is only a fast path, the
// transactional conditional update inside the vote repository is what
// actually prevents a same-user double vote.
func (s *VotingService) CastVote(ctx context.Context, candidateID, voterID string) error {
	if _, err := s.candidates.GetByID(ctx, candidateID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Candidate", nil)
		}
		return err
	}

	user, err := s.users.GetByID(ctx, voterID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("User", nil)
		}
		return err
	}

	if user.IsAdmin() {
		return apperrors.NewForbidden("Admin is not allowed to vote")
	}
	if user.IsVoted {
		return apperrors.NewInvalidState("You have already voted")
	}

	if err := s.votes.Cast(ctx, candidateID, voterID); err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyVoted):
			return apperrors.NewInvalidState("You have already voted")
		case errors.Is(err, pgx.ErrNoRows):
			return apperrors.NewNotFound("Candidate", nil)
		default:
			return err
		}
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:          uuid.NewString(),
			Type:        events.EventVoteCast,
			CandidateID: candidateID,
			Timestamp:   time.Now(),
			Payload:     events.VoteCastPayload{VoterID: voterID},
		})
	}
	return nil
}
