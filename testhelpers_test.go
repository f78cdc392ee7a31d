package apiclient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
)

// seenRequest is what the fake backend observed for one request.
type seenRequest struct {
	Method string
	Path   string
	Header http.Header
}

// backend is a routed fake API that records every request it serves.
type backend struct {
	*httptest.Server
	mu   sync.Mutex
	seen []seenRequest
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{}
	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			b.mu.Lock()
			b.seen = append(b.seen, seenRequest{Method: req.Method, Path: req.URL.Path, Header: req.Header.Clone()})
			b.mu.Unlock()
			next.ServeHTTP(w, req)
		})
	})
	r.HandleFunc("/api/users", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]string{{"id": "u1", "name": "ada"}})
	}).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/api/users/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodDelete, http.MethodPut, http.MethodPatch)
	r.HandleFunc("/api/login", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(req.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"user": body["user"]})
	}).Methods(http.MethodPost)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	b.Server = httptest.NewServer(r)
	t.Cleanup(b.Close)
	return b
}

func (b *backend) requests() []seenRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]seenRequest(nil), b.seen...)
}

func (b *backend) last(t *testing.T) seenRequest {
	t.Helper()
	reqs := b.requests()
	if len(reqs) == 0 {
		t.Fatalf("backend saw no requests")
	}
	return reqs[len(reqs)-1]
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}
