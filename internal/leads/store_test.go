package leads

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
)

func TestInsertAndRecent(t *testing.T) {
	store, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory failed: %v", err)
	}
	defer store.Close()

	first := &Lead{
		Email:     "ana@example.com",
		Name:      "Ana",
		Source:    "quiz",
		Archetype: "Builder",
		Answers:   map[string]string{"q1": "b", "q2": "a"},
	}
	if err := store.Insert(first); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if first.ID == 0 {
		t.Error("Insert should assign an ID")
	}
	if first.CreatedAt.IsZero() {
		t.Error("Insert should assign CreatedAt")
	}

	second := &Lead{Email: "ben@example.com", Source: "toolkit-download"}
	if err := store.Insert(second); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d leads, want 2", len(got))
	}
	if got[0].Email != "ben@example.com" {
		t.Errorf("newest first: got %q", got[0].Email)
	}
	if got[1].Answers["q1"] != "b" {
		t.Errorf("answers did not round-trip: %v", got[1].Answers)
	}
	if got[0].Answers != nil {
		t.Errorf("lead without answers should have nil map, got %v", got[0].Answers)
	}

	n, err := store.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}

func TestInsertRejectsEmptyEmail(t *testing.T) {
	store, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory failed: %v", err)
	}
	defer store.Close()

	if err := store.Insert(&Lead{Name: "No Email"}); err == nil {
		t.Error("expected error for lead without email")
	}
}

func TestOpenCreatesDataDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "leads.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	if err := store.Insert(&Lead{Email: "c@example.com"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
}

func TestForwarderPostsLead(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		hits.Add(1)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	store, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory failed: %v", err)
	}
	defer store.Close()

	f := NewForwarder(store, srv.URL, nil)
	if err := f.Submit(context.Background(), &Lead{Email: "d@example.com"}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("endpoint hit %d times, want 1", hits.Load())
	}
}

func TestForwarderToleratesEndpointFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	store, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory failed: %v", err)
	}
	defer store.Close()

	f := NewForwarder(store, srv.URL, nil)
	if err := f.Submit(context.Background(), &Lead{Email: "e@example.com"}); err != nil {
		t.Fatalf("Submit must succeed when only forwarding fails: %v", err)
	}

	n, _ := store.Count()
	if n != 1 {
		t.Errorf("lead should be stored locally, count = %d", n)
	}
}

func TestForwarderWithoutEndpoint(t *testing.T) {
	store, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory failed: %v", err)
	}
	defer store.Close()

	f := NewForwarder(store, "", nil)
	if err := f.Submit(context.Background(), &Lead{Email: "f@example.com"}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
}
