package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dukerupert/dietlog/internal/model"
	"github.com/dukerupert/dietlog/internal/websocket"
)

type ExerciseStore interface {
	ListByDate(ctx context.Context, date string) ([]model.Exercise, error)
	ListAll(ctx context.Context) ([]model.Exercise, error)
	Create(ctx context.Context, f model.ExerciseFields) (*model.Exercise, error)
	Update(ctx context.Context, id string, f model.ExerciseFields) (*model.Exercise, error)
	Delete(ctx context.Context, id string) error
}

type ExerciseHandler struct {
	exercises ExerciseStore
	hub       *websocket.Hub
	logger    *slog.Logger
}

func NewExerciseHandler(es ExerciseStore, hub *websocket.Hub, logger *slog.Logger) *ExerciseHandler {
	return &ExerciseHandler{exercises: es, hub: hub, logger: logger}
}

type exerciseRequest struct {
	Date           string             `json:"date"`
	Name           string             `json:"name"`
	Duration       Number             `json:"duration"`
	CaloriesBurned Number             `json:"caloriesBurned"`
	Type           model.ExerciseType `json:"type"`
}

func (req exerciseRequest) fields() model.ExerciseFields {
	return model.ExerciseFields{
		Date:           req.Date,
		Name:           req.Name,
		Duration:       req.Duration.Float64(),
		CaloriesBurned: req.CaloriesBurned.Float64(),
		Type:           req.Type,
	}
}

func (h *ExerciseHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		exercises []model.Exercise
		err       error
	)
	if date := r.URL.Query().Get("date"); date != "" {
		exercises, err = h.exercises.ListByDate(r.Context(), date)
	} else {
		exercises, err = h.exercises.ListAll(r.Context())
	}
	if err != nil {
		fail(w, r, h.logger, "list exercises", err, "Failed to fetch exercises")
		return
	}
	if exercises == nil {
		exercises = []model.Exercise{}
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (h *ExerciseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req exerciseRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.Warn("decode exercise", "error", err)
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	exercise, err := h.exercises.Create(r.Context(), req.fields())
	if err != nil {
		fail(w, r, h.logger, "create exercise", err, "Failed to create exercise")
		return
	}

	broadcast(h.hub, websocket.NewMessage(string(model.KindExercise), "created", exercise.ID, nil))

	writeJSON(w, http.StatusCreated, exercise)
}

func (h *ExerciseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req exerciseRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.Warn("decode exercise", "id", id, "error", err)
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	exercise, err := h.exercises.Update(r.Context(), id, req.fields())
	if err != nil {
		fail(w, r, h.logger, "update exercise", err, "Failed to update exercise")
		return
	}

	broadcast(h.hub, websocket.NewMessage(string(model.KindExercise), "updated", id, nil))

	writeJSON(w, http.StatusOK, exercise)
}

func (h *ExerciseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.exercises.Delete(r.Context(), id); err != nil {
		fail(w, r, h.logger, "delete exercise", err, "Failed to delete exercise")
		return
	}

	broadcast(h.hub, websocket.NewMessage(string(model.KindExercise), "deleted", id, nil))

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
