// Package ranking orders scored candidates and assigns percentiles.
package ranking

import (
	"math"
	"sort"

	"github.com/talentsift/talentsift/internal/models"
)

// Rank returns a new slice sorted by final score descending, with dense
// 1-based ranks and percentiles assigned. Ties keep their input order.
func Rank(records []models.ScoreRecord) []models.ScoreRecord {
	ranked := make([]models.ScoreRecord, len(records))
	copy(ranked, records)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FinalScore > ranked[j].FinalScore
	})

	scores := make([]float64, len(ranked))
	for i, r := range ranked {
		scores[i] = r.FinalScore
	}

	for i := range ranked {
		ranked[i].Rank = i + 1
		ranked[i].Percentile = Percentile(ranked[i].FinalScore, scores)
	}

	return ranked
}

// Percentile is the share of the pool scoring strictly below score,
// as a percentage rounded to two decimals. An empty pool yields 0.
func Percentile(score float64, pool []float64) float64 {
	if len(pool) == 0 {
		return 0
	}
	below := 0
	for _, s := range pool {
		if s < score {
			below++
		}
	}
	return math.Round(100*float64(below)/float64(len(pool))*100) / 100
}
