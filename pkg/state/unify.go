// Package state merges upstream perturbation signs and downstream
// expression signs into per-gene sign states.
package state

import "github.com/dd0wney/cluso-sigpath/pkg/sign"

// GeneStates maps a gene to its +1/-1 state.
type GeneStates map[string]sign.Sign

// Get returns the state of gene and whether it is known.
func (g GeneStates) Get(gene string) (sign.Sign, bool) {
	s, ok := g[gene]
	return s, ok
}

// States is the result of Unify.
type States struct {
	// Combined holds every gene with an upstream or downstream sign.
	// Upstream signs win on conflict.
	Combined GeneStates
	// Transcriptional holds downstream (expression) signs only.
	Transcriptional GeneStates
}

// Unify applies downstream signs first, then overwrites Combined with
// upstream signs. Anything other than Positive maps to -1.
func Unify(up, down map[string]sign.Sign) States {
	st := States{
		Combined:        make(GeneStates, len(up)+len(down)),
		Transcriptional: make(GeneStates, len(down)),
	}

	for gene, s := range down {
		v := normalize(s)
		st.Combined[gene] = v
		st.Transcriptional[gene] = v
	}
	for gene, s := range up {
		st.Combined[gene] = normalize(s)
	}
	return st
}

func normalize(s sign.Sign) sign.Sign {
	if s == sign.Positive {
		return sign.Positive
	}
	return sign.Negative
}
