package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"txdash/internal/cache"
	"txdash/internal/core"
	"txdash/internal/services"
)

type Server struct {
	http.Server
	dashboard   *services.DashboardService
	reloader    *services.ReloadService
	rateLimiter *rateLimiter

	// Month-keyed view caches, flushed whenever the dataset is replaced.
	combinedCache *cache.LRUCache[core.CombinedView]
	statsCache    *cache.LRUCache[core.Statistics]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer configures routes and caches, returning a ready-to-run http.Server.
func NewServer(addr string, dashboard *services.DashboardService, reloader *services.ReloadService, cacheTTL time.Duration) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		dashboard:        dashboard,
		reloader:         reloader,
		rateLimiter:      newRateLimiter(),
		combinedCache:    newViewCache[core.CombinedView](cacheTTL),
		statsCache:       newViewCache[core.Statistics](cacheTTL),
		stopCacheCleanup: make(chan struct{}),
	}

	// Start periodic cache cleanup
	go s.startCacheCleanup()

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/api/initialize", s.withSecurityHeaders(s.handleInitialize))
	mux.HandleFunc("/api/transactions", s.withSecurityHeaders(s.handleTransactions))
	mux.HandleFunc("/api/statistics", s.withSecurityHeaders(s.handleStatistics))
	mux.HandleFunc("/api/bar-chart", s.withSecurityHeaders(s.handleBarChart))
	mux.HandleFunc("/api/pie-chart", s.withSecurityHeaders(s.handlePieChart))
	mux.HandleFunc("/api/combined-data", s.withSecurityHeaders(s.handleCombined))

	return s
}

// newViewCache builds a month-keyed cache; 13 distinct keys exist
// (twelve months plus the unfiltered view) so a small capacity suffices.
func newViewCache[T any](ttl time.Duration) *cache.LRUCache[T] {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return cache.NewLRUCache[T](16, ttl)
}

// startCacheCleanup runs periodic cleanup for both view caches.
func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			combinedCleaned := s.combinedCache.CleanExpired()
			statsCleaned := s.statsCache.CleanExpired()
			if combinedCleaned > 0 || statsCleaned > 0 {
				slog.Debug("Cache cleanup completed",
					"combined_entries_removed", combinedCleaned,
					"stats_entries_removed", statsCleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// flushViewCaches drops all cached views after a dataset reload.
func (s *Server) flushViewCaches() {
	s.combinedCache.Flush()
	s.statsCache.Flush()
}

// InvalidateViews drops all cached views. Called when another process
// announces a dataset reload.
func (s *Server) InvalidateViews() {
	s.flushViewCaches()
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.stopCacheCleanup != nil {
			close(s.stopCacheCleanup)
		}

		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}

		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting, and request logging to responses.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := extractClientIP(r)

		// Generate request ID for tracing
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP,
			"user_agent", r.Header.Get("User-Agent"))

		// Rate limit the reload endpoint; it hits an external service.
		if r.URL.Path == "/api/initialize" && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
