package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/spec-kit/election-service/internal/domain"
	"github.com/spec-kit/election-service/internal/repository"
)

// ResultService produces the public vote-count report: all candidates
// projected to (party, count), ordered by descending tally. Ties keep the
// store's listing order. Results are served from the tally cache when fresh.
type ResultService struct {
	candidates repository.CandidateRepository
	cache      repository.TallyCache
	logger     *zap.Logger
}

// NewResultService constructs the service. cache may be nil.
func NewResultService(candidates repository.CandidateRepository, cache repository.TallyCache, logger *zap.Logger) *ResultService {
	return &ResultService{candidates: candidates, cache: cache, logger: logger}
}

// Tally returns the ordered (party, count) report.
func (s *ResultService) Tally(ctx context.Context) ([]domain.TallyEntry, error) {
	if s.cache != nil {
		entries, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn("tally cache read failed", zap.Error(err))
		} else if entries != nil {
			return entries, nil
		}
	}

	candidates, err := s.candidates.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].VoteCount > candidates[j].VoteCount
	})

	entries := make([]domain.TallyEntry, 0, len(candidates))
	for _, candidate := range candidates {
		entries = append(entries, domain.TallyEntry{Party: candidate.Party, Count: candidate.VoteCount})
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, entries); err != nil {
			s.logger.Warn("tally cache write failed", zap.Error(err))
		}
	}
	return entries, nil
}
