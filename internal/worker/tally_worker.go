package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/election-service/internal/events"
	"github.com/spec-kit/election-service/internal/repository"
)

// TallyWorker keeps the cached vote-count report coherent by dropping it
// whenever a vote lands or the candidate set changes.
type TallyWorker struct {
	dispatcher events.Dispatcher
	cache      repository.TallyCache
	logger     *zap.Logger
}

// NewTallyWorker creates the worker.
func NewTallyWorker(dispatcher events.Dispatcher, cache repository.TallyCache, logger *zap.Logger) *TallyWorker {
	return &TallyWorker{dispatcher: dispatcher, cache: cache, logger: logger}
}

// Start subscribes the worker to tally-affecting events.
func (w *TallyWorker) Start() {
	if w.dispatcher == nil || w.cache == nil {
		return
	}
	w.dispatcher.Subscribe(events.EventVoteCast, w.handleTallyChange)
	w.dispatcher.Subscribe(events.EventCandidateCreated, w.handleTallyChange)
	w.dispatcher.Subscribe(events.EventCandidateUpdated, w.handleTallyChange)
	w.dispatcher.Subscribe(events.EventCandidateDeleted, w.handleTallyChange)
}

func (w *TallyWorker) handleTallyChange(ctx context.Context, event events.Event) error {
	if err := w.cache.Invalidate(ctx); err != nil {
		w.logger.Warn("tally cache invalidation failed",
			zap.String("event_type", string(event.Type)),
			zap.String("candidate_id", event.CandidateID),
			zap.Error(err))
		return err
	}
	w.logger.Debug("tally cache invalidated", zap.String("event_type", string(event.Type)))
	return nil
}
