// Package scoring hands a heat-scored network to an external prize-collecting
// Steiner tree solver and reads back the edges of the tree it spans.
//
// Solvers expect per-node p-values, so heats are first mapped to pseudo
// p-values: the hottest node gets 1e-10 and cooler nodes get larger values
// on a square-root scale relative to the coolest one.
package scoring

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// LinkerPValue is the score assigned to linker genes, the most significant
// value a node can have.
const LinkerPValue = 1e-10

// ErrNonPositiveHeat is returned when the reference heat used to scale
// p-values is zero or negative.
var ErrNonPositiveHeat = errors.New("reference heat must be positive")

// Activities converts upstream and downstream heats to pseudo p-values.
// Downstream genes are scored first, then upstream genes, then linkers, so a
// gene present in several inputs keeps the last score.
func Activities(up, down map[string]float64, linkers []string) (map[string]float64, error) {
	maxHeat, minHeat := 1.0, 1.0
	if len(up) > 0 {
		sUp := sortedDesc(up)
		maxHeat = sUp[0]
		minHeat = sUp[len(sUp)-1]

		if len(down) > 0 {
			sDown := sortedDesc(down)
			if sDown[0] > maxHeat {
				maxHeat = sDown[0]
			}
			if sDown[len(sDown)-1] > minHeat {
				minHeat = sDown[len(sDown)-1]
			}
		}
	}

	if minHeat <= 0 {
		return nil, fmt.Errorf("%w: got %g", ErrNonPositiveHeat, minHeat)
	}

	normMax := math.Sqrt(maxHeat / minHeat)
	pvalue := func(heat float64) float64 {
		return math.Exp(math.Sqrt(heat/minHeat) * math.Log(LinkerPValue) / normMax)
	}

	scores := make(map[string]float64, len(up)+len(down)+len(linkers))
	for gene, heat := range down {
		scores[gene] = pvalue(heat)
	}
	for gene, heat := range up {
		scores[gene] = pvalue(heat)
	}
	for _, gene := range linkers {
		scores[gene] = LinkerPValue
	}
	return scores, nil
}

func sortedDesc(m map[string]float64) []float64 {
	vals := make([]float64, 0, len(m))
	for _, v := range m {
		vals = append(vals, v)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(vals)))
	return vals
}
