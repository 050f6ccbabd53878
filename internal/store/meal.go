package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dukerupert/dietlog/internal/apperr"
	"github.com/dukerupert/dietlog/internal/model"
	"github.com/google/uuid"
)

type MealStore struct {
	db *sql.DB
}

func NewMealStore(db *sql.DB) *MealStore {
	return &MealStore{db: db}
}

func scanMeal(scanner interface{ Scan(...any) error }) (*model.Meal, error) {
	var m model.Meal
	var mealType string
	err := scanner.Scan(
		&m.ID, &m.Date, &mealType, &m.Name,
		&m.Calories, &m.Protein, &m.Carbs, &m.Fat,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Type = model.MealType(mealType)
	return &m, nil
}

const mealCols = `id, date, type, name, calories, protein, carbs, fat, created_at, updated_at`

func (s *MealStore) Create(ctx context.Context, f model.MealFields) (*model.Meal, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO meals (`+mealCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, f.Date, string(f.Type), f.Name, f.Calories, f.Protein, f.Carbs, f.Fat, now, now,
	)
	if err != nil {
		return nil, apperr.Wrap("create meal", fmt.Errorf("insert meal: %w", err))
	}
	return s.mustGet(ctx, "create meal", id)
}

// GetByID returns nil, nil when no meal has the given id.
func (s *MealStore) GetByID(ctx context.Context, id string) (*model.Meal, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+mealCols+` FROM meals WHERE id = ?`, id)
	m, err := scanMeal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Wrap("get meal", err)
	}
	return m, nil
}

// ListByDate returns the meals logged on date, oldest first.
func (s *MealStore) ListByDate(ctx context.Context, date string) ([]model.Meal, error) {
	return s.list(ctx, "list meals by date",
		`SELECT `+mealCols+` FROM meals WHERE date = ? ORDER BY created_at ASC, rowid ASC`, date)
}

// ListAll returns every meal, newest date first and newest entry first
// within a date.
func (s *MealStore) ListAll(ctx context.Context) ([]model.Meal, error) {
	return s.list(ctx, "list meals",
		`SELECT `+mealCols+` FROM meals ORDER BY date DESC, created_at DESC, rowid DESC`)
}

func (s *MealStore) list(ctx context.Context, op, query string, args ...any) ([]model.Meal, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Wrap(op, err)
	}
	defer rows.Close()

	meals := []model.Meal{}
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, apperr.Wrap(op, fmt.Errorf("scan meal: %w", err))
		}
		meals = append(meals, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(op, err)
	}
	return meals, nil
}

// Update replaces every field of the meal with the given id. It fails with
// apperr.NotFound when there is no such meal.
func (s *MealStore) Update(ctx context.Context, id string, f model.MealFields) (*model.Meal, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE meals SET date = ?, type = ?, name = ?, calories = ?, protein = ?, carbs = ?, fat = ?, updated_at = ? WHERE id = ?`,
		f.Date, string(f.Type), f.Name, f.Calories, f.Protein, f.Carbs, f.Fat, time.Now().UTC(), id,
	)
	if err != nil {
		return nil, apperr.Wrap("update meal", err)
	}
	if err := requireRow(result, "update meal", model.KindMeal, id); err != nil {
		return nil, err
	}
	return s.mustGet(ctx, "update meal", id)
}

// Delete removes the meal with the given id. It fails with apperr.NotFound
// when there is no such meal.
func (s *MealStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM meals WHERE id = ?`, id)
	if err != nil {
		return apperr.Wrap("delete meal", err)
	}
	return requireRow(result, "delete meal", model.KindMeal, id)
}

func (s *MealStore) mustGet(ctx context.Context, op, id string) (*model.Meal, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(op, err)
	}
	if m == nil {
		return nil, apperr.E(apperr.NotFound, op, notFoundErr(model.KindMeal, id))
	}
	return m, nil
}
