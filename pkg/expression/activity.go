package expression

import (
	"math"

	"github.com/dd0wney/cluso-sigpath/pkg/network"
	"github.com/dd0wney/cluso-sigpath/pkg/sign"
)

// ActivityScores infers regulator activity from the expression of the
// genes they regulate. data is indexed by sample then gene. For every gene
// with |v| >= threshold, each of its parents that is in tfs receives v
// (activating) or -v (repressing). The score of a regulator is the mean of
// what it received in that sample.
func ActivityScores(data Matrix, tfs network.NodeSet, parents map[string]*network.Parents, threshold float64) Matrix {
	scores := make(Matrix, len(data))
	for sample, genes := range data {
		sums := make(map[string]float64)
		counts := make(map[string]int)
		for gene, v := range genes {
			if math.Abs(v) < threshold {
				continue
			}
			p, ok := parents[gene]
			if !ok {
				continue
			}
			for tf := range p.Regulators {
				if !tfs.Has(tf) {
					continue
				}
				contribution := v
				if p.Mode[tf] == network.Represses {
					contribution = -v
				}
				sums[tf] += contribution
				counts[tf]++
			}
		}

		means := make(map[string]float64, len(sums))
		for tf, sum := range sums {
			means[tf] = sum / float64(counts[tf])
		}
		scores[sample] = means
	}
	return scores
}

// NormalizeHeats scales the absolute values so they sum to total, and
// returns the sign of each original value (zero counts as positive).
func NormalizeHeats(values map[string]float64, total float64) (map[string]float64, map[string]sign.Sign, error) {
	var sum float64
	for _, v := range values {
		sum += math.Abs(v)
	}
	if sum == 0 {
		return nil, nil, ErrZeroTotal
	}

	heats := make(map[string]float64, len(values))
	signs := make(map[string]sign.Sign, len(values))
	for k, v := range values {
		heats[k] = total * math.Abs(v) / sum
		if v < 0 {
			signs[k] = sign.Negative
		} else {
			signs[k] = sign.Positive
		}
	}
	return heats, signs, nil
}
