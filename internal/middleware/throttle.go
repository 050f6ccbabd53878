package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ClientIP returns the address a request is attributed to. Forwarding headers
// are client controlled, so they are only read when trustProxy is set, that
// is when a reverse proxy in front of the server rewrites them. The proxy
// appends the peer it saw, so the last X-Forwarded-For hop is used, then
// X-Real-IP. Otherwise the peer address is used.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			hops := strings.Split(xff, ",")
			if ip := strings.TrimSpace(hops[len(hops)-1]); ip != "" {
				return ip
			}
		}
		if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type window struct {
	count   int
	resetAt time.Time
}

// Limiter allows at most Limit calls per key in each fixed Window.
type Limiter struct {
	Limit      int
	Window     time.Duration
	// TrustProxy keys Throttle on forwarding headers instead of the peer.
	TrustProxy bool

	mu      sync.Mutex
	entries map[string]*window
	now     func() time.Time
}

func NewLimiter(limit int, per time.Duration) *Limiter {
	return &Limiter{
		Limit:   limit,
		Window:  per,
		entries: make(map[string]*window),
		now:     time.Now,
	}
}

// Allow records a call for key. When the call is refused it also returns how
// long until the window resets.
func (l *Limiter) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.entries[key]
	if !ok || !now.Before(w.resetAt) {
		l.entries[key] = &window{count: 1, resetAt: now.Add(l.Window)}
		return true, 0
	}
	w.count++
	if w.count > l.Limit {
		return false, w.resetAt.Sub(now)
	}
	return true, 0
}

// Prune drops expired windows.
func (l *Limiter) Prune() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, w := range l.entries {
		if !now.Before(w.resetAt) {
			delete(l.entries, key)
		}
	}
}

// Throttle refuses requests over the limiter's budget with 429 and a
// Retry-After header. Requests are keyed by client IP.
func Throttle(l *Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l.Prune()
			ok, wait := l.Allow(ClientIP(r, l.TrustProxy))
			if !ok {
				secs := int(wait.Round(time.Second) / time.Second)
				if secs < 1 {
					secs = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(secs))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":"Too many requests"}` + "\n"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
