package model

import "time"

type ExerciseType string

const (
	ExerciseCardio      ExerciseType = "cardio"
	ExerciseStrength    ExerciseType = "strength"
	ExerciseFlexibility ExerciseType = "flexibility"
	ExerciseOther       ExerciseType = "other"
)

// Exercise is a logged workout. Duration is in minutes.
type Exercise struct {
	ID             string       `json:"id"`
	Date           string       `json:"date"`
	Name           string       `json:"name"`
	Duration       float64      `json:"duration"`
	CaloriesBurned float64      `json:"caloriesBurned"`
	Type           ExerciseType `json:"type"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

type ExerciseFields struct {
	Date           string       `json:"date"`
	Name           string       `json:"name"`
	Duration       float64      `json:"duration"`
	CaloriesBurned float64      `json:"caloriesBurned"`
	Type           ExerciseType `json:"type"`
}

func (e Exercise) Fields() ExerciseFields {
	return ExerciseFields{
		Date:           e.Date,
		Name:           e.Name,
		Duration:       e.Duration,
		CaloriesBurned: e.CaloriesBurned,
		Type:           e.Type,
	}
}
