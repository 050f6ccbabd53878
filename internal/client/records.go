package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dukerupert/dietlog/internal/model"
	"github.com/dukerupert/dietlog/internal/record"
)

func byDate(date string) url.Values {
	return url.Values{"date": {date}}
}

func (c *Client) GetMeals(ctx context.Context) ([]model.Meal, error) {
	return call[[]model.Meal](ctx, c, http.MethodGet, "/meals", nil, nil, "get meals", "Failed to fetch meals")
}

func (c *Client) GetMealsByDate(ctx context.Context, date string) ([]model.Meal, error) {
	return call[[]model.Meal](ctx, c, http.MethodGet, "/meals", byDate(date), nil, "get meals by date", "Failed to fetch meals by date")
}

// SaveMeal creates the meal when id is empty or a short placeholder and
// updates it otherwise. See record.Policy.
func (c *Client) SaveMeal(ctx context.Context, id string, f model.MealFields) (*model.Meal, error) {
	return c.SaveMealDraft(ctx, record.Resolve(c.policy, id, f))
}

// SaveMealDraft saves an explicit NewRecord or ExistingRecord.
func (c *Client) SaveMealDraft(ctx context.Context, d record.Draft[model.MealFields]) (*model.Meal, error) {
	return record.Save[model.MealFields, *model.Meal](ctx, mealGateway{c}, d)
}

func (c *Client) DeleteMeal(ctx context.Context, id string) error {
	_, err := call[deleted](ctx, c, http.MethodDelete, "/meals/"+url.PathEscape(id), nil, nil, "delete meal", "Failed to delete meal")
	return err
}

type mealGateway struct{ c *Client }

func (g mealGateway) Create(ctx context.Context, f model.MealFields) (*model.Meal, error) {
	return call[*model.Meal](ctx, g.c, http.MethodPost, "/meals", nil, f, "create meal", "Failed to create meal")
}

func (g mealGateway) Update(ctx context.Context, id string, f model.MealFields) (*model.Meal, error) {
	return call[*model.Meal](ctx, g.c, http.MethodPut, "/meals/"+url.PathEscape(id), nil, f, "update meal", "Failed to update meal")
}

func (c *Client) GetExercises(ctx context.Context) ([]model.Exercise, error) {
	return call[[]model.Exercise](ctx, c, http.MethodGet, "/exercises", nil, nil, "get exercises", "Failed to fetch exercises")
}

func (c *Client) GetExercisesByDate(ctx context.Context, date string) ([]model.Exercise, error) {
	return call[[]model.Exercise](ctx, c, http.MethodGet, "/exercises", byDate(date), nil, "get exercises by date", "Failed to fetch exercises by date")
}

func (c *Client) SaveExercise(ctx context.Context, id string, f model.ExerciseFields) (*model.Exercise, error) {
	return c.SaveExerciseDraft(ctx, record.Resolve(c.policy, id, f))
}

func (c *Client) SaveExerciseDraft(ctx context.Context, d record.Draft[model.ExerciseFields]) (*model.Exercise, error) {
	return record.Save[model.ExerciseFields, *model.Exercise](ctx, exerciseGateway{c}, d)
}

func (c *Client) DeleteExercise(ctx context.Context, id string) error {
	_, err := call[deleted](ctx, c, http.MethodDelete, "/exercises/"+url.PathEscape(id), nil, nil, "delete exercise", "Failed to delete exercise")
	return err
}

type exerciseGateway struct{ c *Client }

func (g exerciseGateway) Create(ctx context.Context, f model.ExerciseFields) (*model.Exercise, error) {
	return call[*model.Exercise](ctx, g.c, http.MethodPost, "/exercises", nil, f, "create exercise", "Failed to create exercise")
}

func (g exerciseGateway) Update(ctx context.Context, id string, f model.ExerciseFields) (*model.Exercise, error) {
	return call[*model.Exercise](ctx, g.c, http.MethodPut, "/exercises/"+url.PathEscape(id), nil, f, "update exercise", "Failed to update exercise")
}

type deleted struct {
	Success bool `json:"success"`
}

func (c *Client) GetDailyStats(ctx context.Context, date string) (model.DailyStats, error) {
	return call[model.DailyStats](ctx, c, http.MethodGet, "/stats", byDate(date), nil, "get daily stats", "Failed to fetch daily stats")
}

func (c *Client) GetWeeklyStats(ctx context.Context, endDate string) ([]model.DailyStats, error) {
	q := url.Values{"endDate": {endDate}}
	return call[[]model.DailyStats](ctx, c, http.MethodGet, "/stats", q, nil, "get weekly stats", "Failed to fetch weekly stats")
}
