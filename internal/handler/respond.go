package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/dukerupert/dietlog/internal/apperr"
	"github.com/dukerupert/dietlog/internal/websocket"
)

const msgInvalidBody = "Invalid request body"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps an error kind to a response status. Not-found from the store
// is reported like any other store failure.
func statusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.Validation:
		return http.StatusBadRequest
	case apperr.Timeout:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// fail logs the cause and answers with the generic message for the operation.
func fail(w http.ResponseWriter, r *http.Request, logger *slog.Logger, op string, err error, msg string) {
	status := statusFor(err)
	logger.LogAttrs(r.Context(), levelFor(status), msg,
		slog.String("op", op),
		slog.String("kind", apperr.KindOf(err).String()),
		slog.Any("error", err),
	)
	writeError(w, status, msg)
}

func levelFor(status int) slog.Level {
	if status >= 500 {
		return slog.LevelError
	}
	return slog.LevelWarn
}

// decodeJSON reads a single JSON object from the request body.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	return dec.Decode(v)
}

func broadcast(hub *websocket.Hub, msg websocket.Message) {
	if hub != nil {
		hub.Broadcast(msg)
	}
}
