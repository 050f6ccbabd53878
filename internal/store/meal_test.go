package store

import (
	"context"
	"errors"
	"testing"

	"github.com/dukerupert/dietlog/internal/apperr"
	"github.com/dukerupert/dietlog/internal/database"
	"github.com/dukerupert/dietlog/internal/model"
)

func setupMealTestDB(t *testing.T) *MealStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewMealStore(db)
}

func oatmeal(date string) model.MealFields {
	return model.MealFields{
		Date:     date,
		Type:     model.MealBreakfast,
		Name:     "Oatmeal",
		Calories: 300,
		Protein:  10,
		Carbs:    50,
		Fat:      5,
	}
}

func TestMealCRUD(t *testing.T) {
	ms := setupMealTestDB(t)
	ctx := context.Background()

	// Create
	meal, err := ms.Create(ctx, oatmeal("2024-01-01"))
	if err != nil {
		t.Fatalf("create meal: %v", err)
	}
	if len(meal.ID) != 36 {
		t.Errorf("id = %q, want a 36 character uuid", meal.ID)
	}
	if meal.Name != "Oatmeal" {
		t.Errorf("name = %q, want %q", meal.Name, "Oatmeal")
	}
	if meal.Type != model.MealBreakfast {
		t.Errorf("type = %q, want %q", meal.Type, model.MealBreakfast)
	}
	if meal.Calories != 300 || meal.Protein != 10 || meal.Carbs != 50 || meal.Fat != 5 {
		t.Errorf("macros = %v/%v/%v/%v, want 300/10/50/5", meal.Calories, meal.Protein, meal.Carbs, meal.Fat)
	}
	if meal.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	// Update
	f := oatmeal("2024-01-02")
	f.Name = "Porridge"
	f.Calories = 350.5
	updated, err := ms.Update(ctx, meal.ID, f)
	if err != nil {
		t.Fatalf("update meal: %v", err)
	}
	if updated.ID != meal.ID {
		t.Errorf("id = %q, want %q", updated.ID, meal.ID)
	}
	if updated.Name != "Porridge" || updated.Date != "2024-01-02" || updated.Calories != 350.5 {
		t.Errorf("updated = %+v", updated)
	}

	// Delete
	if err := ms.Delete(ctx, meal.ID); err != nil {
		t.Fatalf("delete meal: %v", err)
	}
	got, err := ms.GetByID(ctx, meal.ID)
	if err != nil {
		t.Fatalf("get deleted meal: %v", err)
	}
	if got != nil {
		t.Error("expected nil after delete")
	}
}

func TestMealUpdateMissingIsNotFound(t *testing.T) {
	ms := setupMealTestDB(t)

	_, err := ms.Update(context.Background(), "cuid12345678901234", oatmeal("2024-01-01"))
	if !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound in chain, got %v", err)
	}
}

func TestMealDeleteMissingIsNotFound(t *testing.T) {
	ms := setupMealTestDB(t)

	err := ms.Delete(context.Background(), "does-not-exist")
	if !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestMealListByDate(t *testing.T) {
	ms := setupMealTestDB(t)
	ctx := context.Background()

	first, _ := ms.Create(ctx, oatmeal("2024-01-01"))
	ms.Create(ctx, oatmeal("2024-01-02"))
	second, _ := ms.Create(ctx, oatmeal("2024-01-01"))

	meals, err := ms.ListByDate(ctx, "2024-01-01")
	if err != nil {
		t.Fatalf("list by date: %v", err)
	}
	if len(meals) != 2 {
		t.Fatalf("got %d meals, want 2", len(meals))
	}
	if meals[0].ID != first.ID || meals[1].ID != second.ID {
		t.Errorf("order = [%s %s], want [%s %s]", meals[0].ID, meals[1].ID, first.ID, second.ID)
	}

	empty, err := ms.ListByDate(ctx, "2030-01-01")
	if err != nil {
		t.Fatalf("list empty date: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", empty)
	}
}

func TestMealListByDateIsExactMatch(t *testing.T) {
	ms := setupMealTestDB(t)
	ctx := context.Background()

	ms.Create(ctx, oatmeal("2024-01-01"))
	ms.Create(ctx, oatmeal("2024-01-01T08:00"))

	meals, err := ms.ListByDate(ctx, "2024-01-01")
	if err != nil {
		t.Fatalf("list by date: %v", err)
	}
	if len(meals) != 1 {
		t.Errorf("got %d meals, want 1", len(meals))
	}
}

func TestMealListAllOrdering(t *testing.T) {
	ms := setupMealTestDB(t)
	ctx := context.Background()

	a, _ := ms.Create(ctx, oatmeal("2024-01-01"))
	b, _ := ms.Create(ctx, oatmeal("2024-01-03"))
	c, _ := ms.Create(ctx, oatmeal("2024-01-01"))

	meals, err := ms.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	want := []string{b.ID, c.ID, a.ID}
	if len(meals) != len(want) {
		t.Fatalf("got %d meals, want %d", len(meals), len(want))
	}
	for i, id := range want {
		if meals[i].ID != id {
			t.Errorf("meals[%d] = %s, want %s", i, meals[i].ID, id)
		}
	}
}

func TestMealCanceledContext(t *testing.T) {
	ms := setupMealTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := ms.ListByDate(ctx, "2024-01-01"); err == nil {
		t.Fatal("expected error for canceled context")
	}
}
