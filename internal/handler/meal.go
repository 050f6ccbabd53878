package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dukerupert/dietlog/internal/model"
	"github.com/dukerupert/dietlog/internal/websocket"
)

// MealStore is the part of the record gateway the meal routes need.
type MealStore interface {
	ListByDate(ctx context.Context, date string) ([]model.Meal, error)
	ListAll(ctx context.Context) ([]model.Meal, error)
	Create(ctx context.Context, f model.MealFields) (*model.Meal, error)
	Update(ctx context.Context, id string, f model.MealFields) (*model.Meal, error)
	Delete(ctx context.Context, id string) error
}

type MealHandler struct {
	meals  MealStore
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewMealHandler(ms MealStore, hub *websocket.Hub, logger *slog.Logger) *MealHandler {
	return &MealHandler{meals: ms, hub: hub, logger: logger}
}

type mealRequest struct {
	Date     string         `json:"date"`
	Type     model.MealType `json:"type"`
	Name     string         `json:"name"`
	Calories Number         `json:"calories"`
	Protein  Number         `json:"protein"`
	Carbs    Number         `json:"carbs"`
	Fat      Number         `json:"fat"`
}

func (req mealRequest) fields() model.MealFields {
	return model.MealFields{
		Date:     req.Date,
		Type:     req.Type,
		Name:     req.Name,
		Calories: req.Calories.Float64(),
		Protein:  req.Protein.Float64(),
		Carbs:    req.Carbs.Float64(),
		Fat:      req.Fat.Float64(),
	}
}

// List returns meals for ?date= in creation order, or every meal newest
// date first when no date is given.
func (h *MealHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		meals []model.Meal
		err   error
	)
	if date := r.URL.Query().Get("date"); date != "" {
		meals, err = h.meals.ListByDate(r.Context(), date)
	} else {
		meals, err = h.meals.ListAll(r.Context())
	}
	if err != nil {
		fail(w, r, h.logger, "list meals", err, "Failed to fetch meals")
		return
	}
	if meals == nil {
		meals = []model.Meal{}
	}
	writeJSON(w, http.StatusOK, meals)
}

func (h *MealHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req mealRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.Warn("decode meal", "error", err)
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	meal, err := h.meals.Create(r.Context(), req.fields())
	if err != nil {
		fail(w, r, h.logger, "create meal", err, "Failed to create meal")
		return
	}

	broadcast(h.hub, websocket.NewMessage(string(model.KindMeal), "created", meal.ID, nil))

	writeJSON(w, http.StatusCreated, meal)
}

func (h *MealHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req mealRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.Warn("decode meal", "id", id, "error", err)
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	meal, err := h.meals.Update(r.Context(), id, req.fields())
	if err != nil {
		fail(w, r, h.logger, "update meal", err, "Failed to update meal")
		return
	}

	broadcast(h.hub, websocket.NewMessage(string(model.KindMeal), "updated", id, nil))

	writeJSON(w, http.StatusOK, meal)
}

func (h *MealHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.meals.Delete(r.Context(), id); err != nil {
		fail(w, r, h.logger, "delete meal", err, "Failed to delete meal")
		return
	}

	broadcast(h.hub, websocket.NewMessage(string(model.KindMeal), "deleted", id, nil))

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
