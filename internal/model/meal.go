package model

import "time"

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// Meal is a logged meal. Date is an ISO calendar date (YYYY-MM-DD) with no
// time component.
type Meal struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Type      MealType  `json:"type"`
	Name      string    `json:"name"`
	Calories  float64   `json:"calories"`
	Protein   float64   `json:"protein"`
	Carbs     float64   `json:"carbs"`
	Fat       float64   `json:"fat"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MealFields is everything a caller supplies for a meal, without the
// identifier.
type MealFields struct {
	Date     string   `json:"date"`
	Type     MealType `json:"type"`
	Name     string   `json:"name"`
	Calories float64  `json:"calories"`
	Protein  float64  `json:"protein"`
	Carbs    float64  `json:"carbs"`
	Fat      float64  `json:"fat"`
}

// Fields returns the caller-supplied part of m.
func (m Meal) Fields() MealFields {
	return MealFields{
		Date:     m.Date,
		Type:     m.Type,
		Name:     m.Name,
		Calories: m.Calories,
		Protein:  m.Protein,
		Carbs:    m.Carbs,
		Fat:      m.Fat,
	}
}
