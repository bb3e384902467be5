package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/spec-kit/election-service/internal/domain"
	"github.com/spec-kit/election-service/internal/events"
	"github.com/spec-kit/election-service/internal/testutil"
	apperrors "github.com/spec-kit/election-service/pkg/util"
)

func newCandidateFixture() (*CandidateService, *testutil.MemStore, *testutil.CapturingDispatcher) {
	store := testutil.NewMemStore()
	dispatcher := testutil.NewCapturingDispatcher()
	return NewCandidateService(store.Candidates, dispatcher), store, dispatcher
}

func TestCandidateCreate(t *testing.T) {
	svc, store, dispatcher := newCandidateFixture()

	candidate, err := svc.Create(context.Background(), CandidateInput{Name: "Alice", Party: "Green", Age: 40})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if candidate.ID == "" {
		t.Error("expected generated id")
	}
	if candidate.VoteCount != 0 {
		t.Errorf("vote count = %d, want 0", candidate.VoteCount)
	}

	stored, ok := store.Candidate(candidate.ID)
	if !ok || stored.Name != "Alice" || stored.Party != "Green" || stored.Age != 40 {
		t.Errorf("stored candidate mismatch: %+v", stored)
	}

	published := dispatcher.Events()
	if len(published) != 1 || published[0].Type != events.EventCandidateCreated {
		t.Errorf("expected candidate_created event, got %+v", published)
	}
}

func TestCandidateCreateValidation(t *testing.T) {
	tests := []struct {
		name       string
		input      CandidateInput
		wantFields []string
	}{
		{"missing name", CandidateInput{Party: "Green", Age: 40}, []string{"name"}},
		{"missing party", CandidateInput{Name: "Alice", Age: 40}, []string{"party"}},
		{"zero age", CandidateInput{Name: "Alice", Party: "Green"}, []string{"age"}},
		{"blank everything", CandidateInput{Name: "  ", Party: ""}, []string{"name", "party", "age"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newCandidateFixture()

			_, err := svc.Create(context.Background(), tt.input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			de := apperrors.ToDomainError(err)
			if de.HTTPStatus != http.StatusBadRequest || de.Code != "VALIDATION_FAILED" {
				t.Errorf("got %d %s, want 400 VALIDATION_FAILED", de.HTTPStatus, de.Code)
			}
			for _, field := range tt.wantFields {
				if _, ok := de.Details[field]; !ok {
					t.Errorf("details missing field %q: %v", field, de.Details)
				}
			}

			if list, _ := store.Candidates.List(context.Background()); len(list) != 0 {
				t.Errorf("store mutated on invalid input: %+v", list)
			}
		})
	}
}

func TestCandidateUpdate(t *testing.T) {
	svc, store, _ := newCandidateFixture()
	candidate := store.AddCandidate(&domain.Candidate{Name: "Alice", Party: "Green", Age: 40})

	party := "Blue"
	updated, err := svc.Update(context.Background(), candidate.ID, CandidatePatch{Party: &party})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Alice" || updated.Party != "Blue" || updated.Age != 40 {
		t.Errorf("partial update wrong: %+v", updated)
	}

	empty := ""
	if _, err := svc.Update(context.Background(), candidate.ID, CandidatePatch{Name: &empty}); err == nil {
		t.Error("expected validation error for empty name")
	}
}

func TestCandidateUpdateNotFound(t *testing.T) {
	svc, _, _ := newCandidateFixture()

	age := 50
	_, err := svc.Update(context.Background(), "missing", CandidatePatch{Age: &age})
	assertDomainError(t, err, http.StatusNotFound, "Candidate not found")
}

func TestCandidateDelete(t *testing.T) {
	svc, store, dispatcher := newCandidateFixture()
	candidate := store.AddCandidate(&domain.Candidate{Name: "Alice", Party: "Green", Age: 40, VoteCount: 2})

	deleted, err := svc.Delete(context.Background(), candidate.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted.ID != candidate.ID || deleted.VoteCount != 2 {
		t.Errorf("deleted record mismatch: %+v", deleted)
	}
	if _, ok := store.Candidate(candidate.ID); ok {
		t.Error("candidate still present after delete")
	}
	if published := dispatcher.Events(); len(published) != 1 || published[0].Type != events.EventCandidateDeleted {
		t.Errorf("expected candidate_deleted event, got %+v", published)
	}

	_, err = svc.Delete(context.Background(), candidate.ID)
	assertDomainError(t, err, http.StatusNotFound, "Candidate not found")
}

func TestCandidateListPublic(t *testing.T) {
	svc, store, _ := newCandidateFixture()
	store.AddCandidate(&domain.Candidate{Name: "Alice", Party: "Green", Age: 40, VoteCount: 7})
	store.AddCandidate(&domain.Candidate{Name: "Bob", Party: "Blue", Age: 52})

	listing, err := svc.ListPublic(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listing) != 2 {
		t.Fatalf("len = %d, want 2", len(listing))
	}
	if listing[0].Name != "Alice" || listing[0].Party != "Green" {
		t.Errorf("unexpected first entry: %+v", listing[0])
	}
}
