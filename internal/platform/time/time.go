// Package time contains time related helpers
package time

import (
	"math"
	"time"
)

// Seconds reports d in seconds rounded to milliseconds, negative durations are 0
func Seconds(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return math.Round(d.Seconds()*1000) / 1000
}
