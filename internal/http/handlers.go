package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// Static failure messages; the cause goes to the log, never to the client.
const (
	errMsgInitialize   = "Failed to initialize database"
	errMsgTransactions = "Failed to fetch transactions"
	errMsgStatistics   = "Failed to fetch statistics"
	errMsgBarChart     = "Failed to fetch bar chart data"
	errMsgPieChart     = "Failed to fetch pie chart data"
	errMsgCombined     = "Failed to fetch combined data"
)

// handleHealth performs a basic liveness check.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// handleReady performs a readiness check with backend verification.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]any)

	if count, err := s.dashboard.RecordCount(ctx); err != nil {
		checks["store"] = fmt.Sprintf("failed: %v", err)
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["store"] = map[string]any{"status": "ok", "records": count}
	}

	checks["cache"] = map[string]any{
		"combined_entries": s.combinedCache.Size(),
		"stats_entries":    s.statsCache.Size(),
	}

	w.WriteHeader(httpStatus)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

// handleInitialize reloads the dataset from the seed source, replacing
// whatever is stored. Cached views are flushed once the swap lands.
func (s *Server) handleInitialize(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	count, err := s.reloader.Reload(r.Context())
	if err != nil {
		writeError(w, r, errMsgInitialize, err)
		return
	}

	s.flushViewCaches()
	slog.InfoContext(r.Context(), "Database initialized", "count", count)
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Database initialized successfully",
	})
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	page, err := s.dashboard.Transactions(r.Context(), parseFilter(r))
	if err != nil {
		writeError(w, r, errMsgTransactions, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	month := parseMonth(r)
	key := monthKey(month)
	if stats, found := s.statsCache.Get(key); found {
		writeJSON(w, http.StatusOK, stats)
		return
	}

	stats, err := s.dashboard.Statistics(r.Context(), month)
	if err != nil {
		writeError(w, r, errMsgStatistics, err)
		return
	}
	s.statsCache.Set(key, stats)
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleBarChart(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	buckets, err := s.dashboard.BarChart(r.Context(), parseMonth(r))
	if err != nil {
		writeError(w, r, errMsgBarChart, err)
		return
	}
	writeJSON(w, http.StatusOK, buckets)
}

func (s *Server) handlePieChart(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	categories, err := s.dashboard.PieChart(r.Context(), parseMonth(r))
	if err != nil {
		writeError(w, r, errMsgPieChart, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) handleCombined(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	month := parseMonth(r)
	key := monthKey(month)
	if view, found := s.combinedCache.Get(key); found {
		writeJSON(w, http.StatusOK, view)
		return
	}

	view, err := s.dashboard.Combined(r.Context(), month)
	if err != nil {
		writeError(w, r, errMsgCombined, err)
		return
	}
	s.combinedCache.Set(key, view)
	writeJSON(w, http.StatusOK, view)
}

func monthKey(month int) string {
	return strconv.Itoa(month)
}
