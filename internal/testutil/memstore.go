// Package testutil provides in-memory implementations of the repository
// interfaces plus a capturing event dispatcher for service and handler tests.
package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/election-service/internal/domain"
	"github.com/spec-kit/election-service/internal/events"
	"github.com/spec-kit/election-service/internal/repository"
)

// MemStore holds users, candidates and votes behind one mutex so the vote
// commit can be made atomic the same way the Postgres transaction is.
type MemStore struct {
	mu         sync.Mutex
	users      map[string]*domain.User
	candidates map[string]*domain.Candidate
	order      []string
	votes      []domain.Vote

	Users      *MemUserRepo
	Candidates *MemCandidateRepo
	Votes      *MemVoteRepo
}

// NewMemStore creates an empty store.
func NewMemStore() *MemStore {
	s := &MemStore{
		users:      make(map[string]*domain.User),
		candidates: make(map[string]*domain.Candidate),
	}
	s.Users = &MemUserRepo{s: s}
	s.Candidates = &MemCandidateRepo{s: s}
	s.Votes = &MemVoteRepo{s: s}
	return s
}

// AddUser seeds a user, assigning an id when absent, and returns it.
func (s *MemStore) AddUser(user *domain.User) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	cp := *user
	s.users[user.ID] = &cp
	return user
}

// AddCandidate seeds a candidate, assigning an id when absent, and returns it.
func (s *MemStore) AddCandidate(candidate *domain.Candidate) *domain.Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	if candidate.ID == "" {
		candidate.ID = uuid.NewString()
	}
	cp := *candidate
	s.candidates[candidate.ID] = &cp
	s.order = append(s.order, candidate.ID)
	return candidate
}

// User returns a copy of the stored user.
func (s *MemStore) User(id string) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return domain.User{}, false
	}
	return *user, true
}

// Candidate returns a copy of the stored candidate.
func (s *MemStore) Candidate(id string) (domain.Candidate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	candidate, ok := s.candidates[id]
	if !ok {
		return domain.Candidate{}, false
	}
	return *candidate, true
}

// VoteRecords returns a copy of all recorded votes.
func (s *MemStore) VoteRecords() []domain.Vote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Vote{}, s.votes...)
}

// MemUserRepo implements repository.UserRepository. GetErr, when set, is
// returned from every lookup to exercise fail-closed paths.
type MemUserRepo struct {
	s      *MemStore
	GetErr error
}

func (r *MemUserRepo) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == user.Email {
			return errors.New("duplicate email")
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *MemUserRepo) Update(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *user
	cp.UpdatedAt = time.Now()
	r.s.users[user.ID] = &cp
	return nil
}

func (r *MemUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *user
	return &cp, nil
}

func (r *MemUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, user := range r.s.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *MemUserRepo) CountAdmins(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	count := 0
	for _, user := range r.s.users {
		if user.Role == domain.RoleAdmin {
			count++
		}
	}
	return count, nil
}

// MemCandidateRepo implements repository.CandidateRepository. ListErr, when
// set, fails every listing to exercise store-error paths.
type MemCandidateRepo struct {
	s       *MemStore
	ListErr error
}

func (r *MemCandidateRepo) Create(_ context.Context, candidate *domain.Candidate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.candidates[candidate.ID]; ok {
		return errors.New("duplicate candidate id")
	}
	candidate.CreatedAt = time.Now()
	candidate.UpdatedAt = candidate.CreatedAt
	cp := *candidate
	r.s.candidates[candidate.ID] = &cp
	r.s.order = append(r.s.order, candidate.ID)
	return nil
}

func (r *MemCandidateRepo) Update(_ context.Context, candidate *domain.Candidate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.candidates[candidate.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Name = candidate.Name
	stored.Party = candidate.Party
	stored.Age = candidate.Age
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *MemCandidateRepo) Delete(_ context.Context, id string) (*domain.Candidate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	candidate, ok := r.s.candidates[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	delete(r.s.candidates, id)
	for i, oid := range r.s.order {
		if oid == id {
			r.s.order = append(r.s.order[:i], r.s.order[i+1:]...)
			break
		}
	}
	cp := *candidate
	return &cp, nil
}

func (r *MemCandidateRepo) GetByID(_ context.Context, id string) (*domain.Candidate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	candidate, ok := r.s.candidates[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *candidate
	return &cp, nil
}

func (r *MemCandidateRepo) List(_ context.Context) ([]domain.Candidate, error) {
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]domain.Candidate, 0, len(r.s.order))
	for _, id := range r.s.order {
		result = append(result, *r.s.candidates[id])
	}
	return result, nil
}

func (r *MemCandidateRepo) ListPublic(_ context.Context) ([]repository.PublicCandidate, error) {
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]repository.PublicCandidate, 0, len(r.s.order))
	for _, id := range r.s.order {
		candidate := r.s.candidates[id]
		result = append(result, repository.PublicCandidate{Name: candidate.Name, Party: candidate.Party})
	}
	return result, nil
}

// MemVoteRepo implements repository.VoteRepository with the same atomicity
// the SQL transaction provides: the flag set, the record and the increment
// happen under one lock or not at all.
type MemVoteRepo struct {
	s *MemStore
}

func (r *MemVoteRepo) Cast(_ context.Context, candidateID, voterID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[voterID]
	if !ok || user.IsVoted {
		return repository.ErrAlreadyVoted
	}
	candidate, ok := r.s.candidates[candidateID]
	if !ok {
		return pgx.ErrNoRows
	}

	user.IsVoted = true
	candidate.VoteCount++
	r.s.votes = append(r.s.votes, domain.Vote{
		ID:          uuid.NewString(),
		CandidateID: candidateID,
		VoterID:     voterID,
		VotedAt:     time.Now(),
	})
	return nil
}

// CapturingDispatcher records published events while delegating to a real
// in-memory dispatcher so subscribers still run.
type CapturingDispatcher struct {
	mu     sync.Mutex
	inner  events.Dispatcher
	events []events.Event
}

// NewCapturingDispatcher creates the dispatcher.
func NewCapturingDispatcher() *CapturingDispatcher {
	return &CapturingDispatcher{inner: events.NewInMemoryDispatcher()}
}

func (d *CapturingDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.mu.Lock()
	d.events = append(d.events, event)
	d.mu.Unlock()
	return d.inner.Publish(ctx, event)
}

func (d *CapturingDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {
	d.inner.Subscribe(eventType, handler)
}

// Events returns a copy of everything published so far.
func (d *CapturingDispatcher) Events() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}
