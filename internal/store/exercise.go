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

type ExerciseStore struct {
	db *sql.DB
}

func NewExerciseStore(db *sql.DB) *ExerciseStore {
	return &ExerciseStore{db: db}
}

func scanExercise(scanner interface{ Scan(...any) error }) (*model.Exercise, error) {
	var e model.Exercise
	var exerciseType string
	err := scanner.Scan(
		&e.ID, &e.Date, &e.Name, &e.Duration, &e.CaloriesBurned,
		&exerciseType, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Type = model.ExerciseType(exerciseType)
	return &e, nil
}

const exerciseCols = `id, date, name, duration, calories_burned, type, created_at, updated_at`

func (s *ExerciseStore) Create(ctx context.Context, f model.ExerciseFields) (*model.Exercise, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exercises (`+exerciseCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, f.Date, f.Name, f.Duration, f.CaloriesBurned, string(f.Type), now, now,
	)
	if err != nil {
		return nil, apperr.Wrap("create exercise", fmt.Errorf("insert exercise: %w", err))
	}
	return s.mustGet(ctx, "create exercise", id)
}

// GetByID returns nil, nil when no exercise has the given id.
func (s *ExerciseStore) GetByID(ctx context.Context, id string) (*model.Exercise, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+exerciseCols+` FROM exercises WHERE id = ?`, id)
	e, err := scanExercise(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Wrap("get exercise", err)
	}
	return e, nil
}

func (s *ExerciseStore) ListByDate(ctx context.Context, date string) ([]model.Exercise, error) {
	return s.list(ctx, "list exercises by date",
		`SELECT `+exerciseCols+` FROM exercises WHERE date = ? ORDER BY created_at ASC, rowid ASC`, date)
}

func (s *ExerciseStore) ListAll(ctx context.Context) ([]model.Exercise, error) {
	return s.list(ctx, "list exercises",
		`SELECT `+exerciseCols+` FROM exercises ORDER BY date DESC, created_at DESC, rowid DESC`)
}

func (s *ExerciseStore) list(ctx context.Context, op, query string, args ...any) ([]model.Exercise, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Wrap(op, err)
	}
	defer rows.Close()

	exercises := []model.Exercise{}
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, apperr.Wrap(op, fmt.Errorf("scan exercise: %w", err))
		}
		exercises = append(exercises, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(op, err)
	}
	return exercises, nil
}

func (s *ExerciseStore) Update(ctx context.Context, id string, f model.ExerciseFields) (*model.Exercise, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE exercises SET date = ?, name = ?, duration = ?, calories_burned = ?, type = ?, updated_at = ? WHERE id = ?`,
		f.Date, f.Name, f.Duration, f.CaloriesBurned, string(f.Type), time.Now().UTC(), id,
	)
	if err != nil {
		return nil, apperr.Wrap("update exercise", err)
	}
	if err := requireRow(result, "update exercise", model.KindExercise, id); err != nil {
		return nil, err
	}
	return s.mustGet(ctx, "update exercise", id)
}

func (s *ExerciseStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM exercises WHERE id = ?`, id)
	if err != nil {
		return apperr.Wrap("delete exercise", err)
	}
	return requireRow(result, "delete exercise", model.KindExercise, id)
}

func (s *ExerciseStore) mustGet(ctx context.Context, op, id string) (*model.Exercise, error) {
	e, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(op, err)
	}
	if e == nil {
		return nil, apperr.E(apperr.NotFound, op, notFoundErr(model.KindExercise, id))
	}
	return e, nil
}
