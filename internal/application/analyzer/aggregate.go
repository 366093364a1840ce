package analyzer

import (
	"math"

	domain "github.com/bryanwahyu/pitchlens/internal/domain/pitch"
)

// Aggregate combines the component scores into one overall score: the
// arithmetic mean over every component present, rounded half-up. A sentinel
// score of 0 counts like a real zero; the report's Degraded flag is how
// callers tell the two apart. An empty map aggregates to 0.
func Aggregate(components map[domain.Rubric]domain.ComponentScore) int {
	if len(components) == 0 {
		return 0
	}
	sum := 0
	for _, c := range components {
		sum += c.Score
	}
	return int(math.Round(float64(sum) / float64(len(components))))
}
