package middleware

import (
	"net/http"
	"pitstop/config"
	"pitstop/shared/constant"
	"pitstop/transport/http/response"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type AppMiddleware interface {
	RequestLogger(next http.Handler) http.Handler
	RateLimit(next http.Handler) http.Handler
}

type appMiddleware struct {
	config *config.Config

	mu      sync.Mutex
	windows map[string]*rateWindow
}

type rateWindow struct {
	count   int
	resetAt time.Time
}

func NewAppMiddleware(config *config.Config) AppMiddleware {
	return &appMiddleware{
		config:  config,
		windows: make(map[string]*rateWindow),
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (a *appMiddleware) RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Str("source", a.getClientIP(r)).
			Msg("request handled")
	})
}

// RateLimit is a fixed-window per-client limiter. State lives in process
// memory, which matches the single-instance deployment of this service.
func (a *appMiddleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.config.App.RateLimiter.Enable {
			next.ServeHTTP(w, r)

			return
		}

		maxReqs := a.config.App.RateLimiter.MaxRequests
		windowSecs := a.config.App.RateLimiter.WindowSeconds

		count := a.bump(a.getClientIP(r), windowSecs)
		if count > maxReqs {
			response.WithRequestLimitExceeded(w)

			return
		}

		w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(maxReqs))
		w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, maxReqs-count)))
		w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(windowSecs))

		next.ServeHTTP(w, r)
	})
}

func (a *appMiddleware) bump(clientIP string, windowSecs int) int {
	now := time.Now()

	a.mu.Lock()
	defer a.mu.Unlock()

	win, ok := a.windows[clientIP]
	if !ok || now.After(win.resetAt) {
		win = &rateWindow{resetAt: now.Add(time.Duration(windowSecs) * time.Second)}
		a.windows[clientIP] = win
	}

	win.count++

	return win.count
}

func (a *appMiddleware) getClientIP(r *http.Request) string {
	forwarded := r.Header.Get(constant.RequestHeaderForwardedFor)
	if forwarded != "" {
		parts := strings.Split(forwarded, ",")

		return strings.TrimSpace(parts[0])
	}

	realIP := r.Header.Get(constant.RequestHeaderRealIP)
	if realIP != "" {
		return realIP
	}

	return r.RemoteAddr
}
