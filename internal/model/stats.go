package model

// DailyStats is derived from the meals and exercises logged on one date. It
// is never stored.
type DailyStats struct {
	Date                  string  `json:"date"`
	TotalCaloriesConsumed float64 `json:"totalCaloriesConsumed"`
	TotalCaloriesBurned   float64 `json:"totalCaloriesBurned"`
	NetCalories           float64 `json:"netCalories"`
	TotalProtein          float64 `json:"totalProtein"`
	TotalCarbs            float64 `json:"totalCarbs"`
	TotalFat              float64 `json:"totalFat"`
}
