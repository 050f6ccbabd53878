// Package stats reduces logged meals and exercises into daily and weekly
// calorie and macro summaries. Nothing is cached; every call reads the store.
package stats

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dukerupert/dietlog/internal/apperr"
	"github.com/dukerupert/dietlog/internal/model"
)

// MealSource returns the meals logged on an exact date.
type MealSource interface {
	ListByDate(ctx context.Context, date string) ([]model.Meal, error)
}

// ExerciseSource returns the exercises logged on an exact date.
type ExerciseSource interface {
	ListByDate(ctx context.Context, date string) ([]model.Exercise, error)
}

type Aggregator struct {
	meals        MealSource
	exercises    ExerciseSource
	storeTimeout time.Duration
}

type Option func(*Aggregator)

// WithStoreTimeout bounds every individual store call. Zero means no bound
// beyond the caller's context.
func WithStoreTimeout(d time.Duration) Option {
	return func(a *Aggregator) {
		a.storeTimeout = d
	}
}

func New(meals MealSource, exercises ExerciseSource, opts ...Option) *Aggregator {
	a := &Aggregator{meals: meals, exercises: exercises}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Daily computes the summary for one ISO date.
func (a *Aggregator) Daily(ctx context.Context, date string) (model.DailyStats, error) {
	d, err := ParseDate(date)
	if err != nil {
		return model.DailyStats{}, err
	}
	return a.day(ctx, d.Format(DateLayout))
}

// Weekly computes the summaries for the seven days ending at endDate, oldest
// first. Any failing day fails the whole call.
func (a *Aggregator) Weekly(ctx context.Context, endDate string) ([]model.DailyStats, error) {
	end, err := ParseDate(endDate)
	if err != nil {
		return nil, err
	}

	dates := Window(end, WeekLength)
	out := make([]model.DailyStats, len(dates))

	g, gctx := errgroup.WithContext(ctx)
	for i, date := range dates {
		g.Go(func() error {
			s, err := a.day(gctx, date)
			if err != nil {
				return err
			}
			out[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// day is the single fetch-and-reduce routine behind both Daily and Weekly.
func (a *Aggregator) day(ctx context.Context, date string) (model.DailyStats, error) {
	var (
		meals     []model.Meal
		exercises []model.Exercise
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ctx, cancel := a.callContext(gctx)
		defer cancel()
		var err error
		meals, err = a.meals.ListByDate(ctx, date)
		return apperr.Wrap("fetch meals for "+date, err)
	})
	g.Go(func() error {
		ctx, cancel := a.callContext(gctx)
		defer cancel()
		var err error
		exercises, err = a.exercises.ListByDate(ctx, date)
		return apperr.Wrap("fetch exercises for "+date, err)
	})
	if err := g.Wait(); err != nil {
		return model.DailyStats{}, err
	}

	return Reduce(date, meals, exercises), nil
}

func (a *Aggregator) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.storeTimeout > 0 {
		return context.WithTimeout(ctx, a.storeTimeout)
	}
	return context.WithCancel(ctx)
}

// Reduce sums meals and exercises into a DailyStats for date.
func Reduce(date string, meals []model.Meal, exercises []model.Exercise) model.DailyStats {
	s := model.DailyStats{Date: date}
	for _, m := range meals {
		s.TotalCaloriesConsumed += m.Calories
		s.TotalProtein += m.Protein
		s.TotalCarbs += m.Carbs
		s.TotalFat += m.Fat
	}
	for _, e := range exercises {
		s.TotalCaloriesBurned += e.CaloriesBurned
	}
	s.NetCalories = s.TotalCaloriesConsumed - s.TotalCaloriesBurned
	return s
}
