package model

// Kind names a record kind held by the store.
type Kind string

const (
	KindMeal     Kind = "meal"
	KindExercise Kind = "exercise"
)
