package server

import (
	"context"
	"crypto/rand"
	"net/http"
	"sync"

	"github.com/oklog/ulid/v2"
)

const requestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// idSource hands out monotonic ULIDs. The entropy source must not be shared without
// holding mu.
type idSource struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func newIDSource() *idSource {
	return &idSource{entropy: ulid.Monotonic(rand.Reader, 0)}
}

func (s *idSource) next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Now(), s.entropy).String()
}

// withRequestID tags every response with a fresh ULID and stores it in the request
// context.
func (s *idSource) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := s.next()
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func requestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey{}).(string)
	return id
}
