package handlers

import (
	"net"
	"net/http"
	"strconv"
	"sync"

	"fundtrack/src/utils"

	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// RequestLogger tags every request with an ID and puts a contextual
// logger into the request context.
func RequestLogger(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			entry := logger.WithFields(logrus.Fields{
				"requestID": uuid.New().String(),
				"method":    r.Method,
				"path":      r.URL.Path,
			})
			ctx := utils.WithLogger(r.Context(), entry)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole guards a route group behind a role claim; the JWT is
// already verified upstream.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				utils.WriteError(w, utils.Unauthorized("Not authenticated"))
				return
			}
			if claimRole, _ := claims["role"].(string); claimRole != role {
				utils.WriteError(w, utils.Forbidden("Forbidden"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimiter keeps one token bucket per key (user or IP).
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mutex    sync.Mutex
	limit    rate.Limit
	burst    int
	keyFunc  func(r *http.Request) string
}

// NewRateLimiter allows perMinute requests per key with a burst of the
// same size.
func NewRateLimiter(perMinute int, keyFunc func(r *http.Request) string) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    perMinute,
		keyFunc:  keyFunc,
	}
}

func (l *RateLimiter) limiterFor(key string) *rate.Limiter {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = limiter
	}
	return limiter
}

func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.limiterFor(l.keyFunc(r)).Allow() {
			utils.WriteError(w, utils.NewHTTPError(http.StatusTooManyRequests, "Too many requests, slow down."))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// KeyByIP buckets unauthenticated traffic, e.g. login attempts.
func KeyByIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// KeyByUser buckets by authenticated user, falling back to IP.
func KeyByUser(r *http.Request) string {
	if _, claims, err := jwtauth.FromContext(r.Context()); err == nil {
		if id, err := claimInt(claims, "user_id"); err == nil {
			return "user:" + strconv.Itoa(id)
		}
	}
	return "ip:" + KeyByIP(r)
}
