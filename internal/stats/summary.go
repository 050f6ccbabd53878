package stats

import (
	"math"

	"github.com/dukerupert/dietlog/internal/model"
)

// Summary holds per-day averages across a window, rounded to whole calories.
type Summary struct {
	Days        int     `json:"days"`
	AvgConsumed float64 `json:"avgConsumed"`
	AvgBurned   float64 `json:"avgBurned"`
	AvgNet      float64 `json:"avgNet"`
}

// Summarize averages consumed and burned calories over days. AvgNet is the
// difference of the rounded averages.
func Summarize(days []model.DailyStats) Summary {
	out := Summary{Days: len(days)}
	if len(days) == 0 {
		return out
	}
	var consumed, burned float64
	for _, d := range days {
		consumed += d.TotalCaloriesConsumed
		burned += d.TotalCaloriesBurned
	}
	n := float64(len(days))
	out.AvgConsumed = roundHalfUp(consumed / n)
	out.AvgBurned = roundHalfUp(burned / n)
	out.AvgNet = out.AvgConsumed - out.AvgBurned
	return out
}

func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
