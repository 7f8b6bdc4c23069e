package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"txdash/internal/core"
)

// parseMonth reads the month query parameter. An absent or empty value
// disables month filtering; anything unparsable or out of the 1..12
// range yields a selector that matches no record. Bad input degrades
// the result, it never fails the request.
func parseMonth(r *http.Request) int {
	v := strings.TrimSpace(r.URL.Query().Get("month"))
	if v == "" {
		return core.MonthAny
	}
	m, err := strconv.Atoi(v)
	if err != nil || m < 1 || m > 12 {
		return core.MonthNone
	}
	return m
}

// parsePositiveInt reads an integer query parameter, falling back to
// def when the value is absent, unparsable, or not positive.
func parsePositiveInt(r *http.Request, name string, def int) int {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// parseFilter assembles the listing filter from query parameters.
func parseFilter(r *http.Request) core.Filter {
	return core.Filter{
		Month:      parseMonth(r),
		SearchText: r.URL.Query().Get("search"),
		Page:       parsePositiveInt(r, "page", 1),
		PerPage:    parsePositiveInt(r, "perPage", 10),
	}
}

// writeJSON serializes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encoding failed", "error", err)
	}
}

// writeError logs the cause and answers with the endpoint's static message.
func writeError(w http.ResponseWriter, r *http.Request, message string, err error) {
	slog.ErrorContext(r.Context(), "Request failed",
		"error", err,
		"method", r.Method,
		"url", r.URL.Path)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": message})
}

// requireGet enforces the read-only method contract of the API routes.
func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// extractClientIP extracts the client IP, preferring forwarding headers.
func extractClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if ip := strings.TrimSpace(ips[0]); ip != "" {
			return ip
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
