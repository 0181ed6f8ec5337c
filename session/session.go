package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CookieName is the cookie carrying the session id
const CookieName = "sessionid"

// Store keeps small integer values per session
type Store interface {
	// Get returns the stored value, or 0 if none was set
	Get(ctx context.Context, sessionID, key string) (int64, error)
	Set(ctx context.Context, sessionID, key string, value int64) error
}

type contextKey struct{}

// FromContext returns the session id set by Middleware
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// WithID returns a context carrying session id
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// Middleware makes sure every request has a session id, issuing a cookie when it doesn't
func Middleware(ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(CookieName); err == nil {
				if parsed, err := uuid.Parse(c.Value); err == nil {
					id = parsed.String()
				}
			}
			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    id,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
		})
	}
}

// MemoryStore is a process local Store for development and tests
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]int64)}
}

func (m *MemoryStore) Get(ctx context.Context, sessionID, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[sessionID+":"+key], nil
}

func (m *MemoryStore) Set(ctx context.Context, sessionID, key string, value int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[sessionID+":"+key] = value
	return nil
}
