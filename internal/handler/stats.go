package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dukerupert/dietlog/internal/apperr"
	"github.com/dukerupert/dietlog/internal/model"
)

// StatsService computes daily and weekly calorie statistics.
type StatsService interface {
	Daily(ctx context.Context, date string) (model.DailyStats, error)
	Weekly(ctx context.Context, endDate string) ([]model.DailyStats, error)
}

type StatsHandler struct {
	stats  StatsService
	logger *slog.Logger
}

func NewStatsHandler(s StatsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{stats: s, logger: logger}
}

// Get serves ?endDate= as a seven day window and ?date= as a single day.
// endDate wins when both are present.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if endDate := q.Get("endDate"); endDate != "" {
		week, err := h.stats.Weekly(r.Context(), endDate)
		if err != nil {
			h.fail(w, r, "weekly stats", err)
			return
		}
		writeJSON(w, http.StatusOK, week)
		return
	}

	if date := q.Get("date"); date != "" {
		day, err := h.stats.Daily(r.Context(), date)
		if err != nil {
			h.fail(w, r, "daily stats", err)
			return
		}
		writeJSON(w, http.StatusOK, day)
		return
	}

	writeError(w, http.StatusBadRequest, "Date parameter required")
}

func (h *StatsHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if apperr.Is(err, apperr.Validation) {
		h.logger.Warn("invalid date", "op", op, "error", err)
		writeError(w, http.StatusBadRequest, "Invalid date")
		return
	}
	fail(w, r, h.logger, op, err, "Failed to fetch stats")
}
