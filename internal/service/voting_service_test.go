package service

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/spec-kit/election-service/internal/domain"
	"github.com/spec-kit/election-service/internal/events"
	"github.com/spec-kit/election-service/internal/testutil"
	apperrors "github.com/spec-kit/election-service/pkg/util"
)

func newVotingFixture() (*VotingService, *testutil.MemStore, *testutil.CapturingDispatcher) {
	store := testutil.NewMemStore()
	dispatcher := testutil.NewCapturingDispatcher()
	svc := NewVotingService(VotingDependencies{
		CandidateRepo: store.Candidates,
		UserRepo:      store.Users,
		VoteRepo:      store.Votes,
		Dispatcher:    dispatcher,
	})
	return svc, store, dispatcher
}

func assertDomainError(t *testing.T, err error, wantStatus int, wantMessage string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %q, got nil", wantMessage)
	}
	de := apperrors.ToDomainError(err)
	if de.HTTPStatus != wantStatus {
		t.Errorf("status = %d, want %d (err: %v)", de.HTTPStatus, wantStatus, err)
	}
	if de.Message != wantMessage {
		t.Errorf("message = %q, want %q", de.Message, wantMessage)
	}
}

func TestCastVote(t *testing.T) {
	tests := []struct {
		name        string
		seed        func(store *testutil.MemStore) (candidateID, voterID string)
		wantStatus  int
		wantMessage string
	}{
		{
			name: "unknown candidate",
			seed: func(store *testutil.MemStore) (string, string) {
				voter := store.AddUser(&domain.User{Role: domain.RoleVoter})
				return "missing-candidate", voter.ID
			},
			wantStatus:  http.StatusNotFound,
			wantMessage: "Candidate not found",
		},
		{
			name: "unknown user",
			seed: func(store *testutil.MemStore) (string, string) {
				candidate := store.AddCandidate(&domain.Candidate{Name: "Alice", Party: "Green", Age: 40})
				return candidate.ID, "missing-user"
			},
			wantStatus:  http.StatusNotFound,
			wantMessage: "User not found",
		},
		{
			name: "admin cannot vote",
			seed: func(store *testutil.MemStore) (string, string) {
				candidate := store.AddCandidate(&domain.Candidate{Name: "Alice", Party: "Green", Age: 40})
				admin := store.AddUser(&domain.User{Role: domain.RoleAdmin})
				return candidate.ID, admin.ID
			},
			wantStatus:  http.StatusForbidden,
			wantMessage: "Admin is not allowed to vote",
		},
		{
			name: "already voted",
			seed: func(store *testutil.MemStore) (string, string) {
				candidate := store.AddCandidate(&domain.Candidate{Name: "Alice", Party: "Green", Age: 40})
				voter := store.AddUser(&domain.User{Role: domain.RoleVoter, IsVoted: true})
				return candidate.ID, voter.ID
			},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "You have already voted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, dispatcher := newVotingFixture()
			candidateID, voterID := tt.seed(store)

			err := svc.CastVote(context.Background(), candidateID, voterID)
			assertDomainError(t, err, tt.wantStatus, tt.wantMessage)

			if got := len(store.VoteRecords()); got != 0 {
				t.Errorf("vote records = %d, want 0", got)
			}
			if got := len(dispatcher.Events()); got != 0 {
				t.Errorf("published events = %d, want 0", got)
			}
		})
	}
}

func TestCastVoteSuccessThenRepeat(t *testing.T) {
	svc, store, dispatcher := newVotingFixture()
	candidate := store.AddCandidate(&domain.Candidate{Name: "Alice", Party: "Green", Age: 40, VoteCount: 3})
	voter := store.AddUser(&domain.User{Name: "U", Role: domain.RoleVoter})

	if err := svc.CastVote(context.Background(), candidate.ID, voter.ID); err != nil {
		t.Fatalf("first vote failed: %v", err)
	}

	stored, _ := store.Candidate(candidate.ID)
	if stored.VoteCount != 4 {
		t.Errorf("vote count = %d, want 4", stored.VoteCount)
	}
	user, _ := store.User(voter.ID)
	if !user.IsVoted {
		t.Error("is_voted not set after successful vote")
	}
	records := store.VoteRecords()
	if len(records) != 1 || records[0].CandidateID != candidate.ID || records[0].VoterID != voter.ID {
		t.Errorf("unexpected vote records: %+v", records)
	}

	published := dispatcher.Events()
	if len(published) != 1 || published[0].Type != events.EventVoteCast {
		t.Fatalf("expected one vote_cast event, got %+v", published)
	}

	err := svc.CastVote(context.Background(), candidate.ID, voter.ID)
	assertDomainError(t, err, http.StatusBadRequest, "You have already voted")

	stored, _ = store.Candidate(candidate.ID)
	if stored.VoteCount != 4 {
		t.Errorf("vote count after repeat = %d, want 4", stored.VoteCount)
	}
}

// Same-user concurrency: the conditional flag update must let exactly one of
// N simultaneous attempts commit.
func TestCastVoteConcurrentSameUser(t *testing.T) {
	svc, store, _ := newVotingFixture()
	candidate := store.AddCandidate(&domain.Candidate{Name: "Alice", Party: "Green", Age: 40})
	voter := store.AddUser(&domain.User{Role: domain.RoleVoter})

	const attempts = 50
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.CastVote(context.Background(), candidate.ID, voter.ID)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		if de := apperrors.ToDomainError(err); de.HTTPStatus != http.StatusBadRequest {
			t.Errorf("unexpected rejection: %v", err)
		}
	}
	if successes != 1 {
		t.Errorf("successes = %d, want exactly 1", successes)
	}

	stored, _ := store.Candidate(candidate.ID)
	if stored.VoteCount != 1 {
		t.Errorf("vote count = %d, want 1", stored.VoteCount)
	}
	if got := len(store.VoteRecords()); got != 1 {
		t.Errorf("vote records = %d, want 1", got)
	}
}
