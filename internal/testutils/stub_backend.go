// Package testutils provides a scriptable stand-in for the remote
// storefront backend, used by the client and store tests.
package testutils

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// StubBackend is an httptest server with per-route handlers registered by
// "METHOD /path" key. Unmatched requests fail the test. It counts calls
// per route so tests can assert how often the client hit an endpoint.
type StubBackend struct {
	t      *testing.T
	Server *httptest.Server

	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	calls    map[string]int
}

func NewStubBackend(t *testing.T) *StubBackend {
	t.Helper()

	b := &StubBackend{
		t:        t,
		handlers: make(map[string]http.HandlerFunc),
		calls:    make(map[string]int),
	}

	b.Server = httptest.NewServer(http.HandlerFunc(b.dispatch))
	t.Cleanup(b.Server.Close)

	return b
}

func (b *StubBackend) URL() string { return b.Server.URL + "/" }

// Handle registers a handler for an exact method and path, e.g.
// Handle("GET", "/myInfo/cart", ...). Later registrations replace
// earlier ones.
func (b *StubBackend) Handle(method, path string, handler http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[method+" "+path] = handler
}

// HandleJSON registers a handler replying 200 with the given payload.
func (b *StubBackend) HandleJSON(method, path string, payload any) {
	b.Handle(method, path, func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(b.t, w, http.StatusOK, payload)
	})
}

// HandleError registers a handler replying with the backend's error
// envelope.
func (b *StubBackend) HandleError(method, path string, status int, msg string) {
	b.Handle(method, path, func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(b.t, w, status, map[string]string{"msg": msg})
	})
}

// Calls reports how many requests matched the given method and path.
func (b *StubBackend) Calls(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.calls[method+" "+path]
}

// TotalCalls reports the number of requests served across all routes.
func (b *StubBackend) TotalCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	total := 0
	for _, n := range b.calls {
		total += n
	}

	return total
}

func (b *StubBackend) dispatch(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path

	b.mu.Lock()
	handler, ok := b.handlers[key]
	b.calls[key]++
	b.mu.Unlock()

	if !ok {
		b.t.Errorf("unexpected request: %s", key)
		WriteJSON(b.t, w, http.StatusNotFound, map[string]string{"msg": "no handler for " + key})

		return
	}

	handler(w, r)
}

// WriteJSON encodes payload onto w with the given status code.
func WriteJSON(t *testing.T, w http.ResponseWriter, status int, payload any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(payload)
	require.NoError(t, err)
}

// DecodeBody unmarshals a request body into out.
func DecodeBody(t *testing.T, r *http.Request, out any) {
	t.Helper()

	raw, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

// DiscardLogger returns a logger for constructors that require one.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MemoryTokenStore holds a token in memory and records purges.
type MemoryTokenStore struct {
	mu     sync.Mutex
	token  string
	purges int
}

func NewMemoryTokenStore(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token}
}

func (s *MemoryTokenStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.token
}

func (s *MemoryTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token

	return nil
}

func (s *MemoryTokenStore) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.purges++
}

func (s *MemoryTokenStore) Purges() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.purges
}
