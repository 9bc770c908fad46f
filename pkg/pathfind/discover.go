package pathfind

import (
	"fmt"

	"github.com/dd0wney/cluso-sigpath/pkg/interaction"
	"github.com/dd0wney/cluso-sigpath/pkg/network"
	"github.com/dd0wney/cluso-sigpath/pkg/parallel"
	"github.com/dd0wney/cluso-sigpath/pkg/sign"
	"github.com/dd0wney/cluso-sigpath/pkg/state"
)

// Options configures a discovery run.
type Options struct {
	MaxDepth int // hops per branch; 0 discovers nothing
	Workers  int // > 1 searches sources concurrently

	// NegateInhibitory makes -1 edges negate the action instead of leaving
	// it undefined.
	NegateInhibitory bool
}

// Result accumulates the output of one Discover call.
type Result struct {
	Discovered *network.EdgeSet
	// TruePaths and FalsePaths hold matched targets in discovery order.
	TruePaths  []string
	FalsePaths []string
	// Visits counts recursive search invocations.
	Visits int
}

func newResult() *Result {
	return &Result{Discovered: network.NewEdgeSet()}
}

func (r *Result) merge(other *Result) {
	r.Discovered.Merge(other.Discovered)
	r.TruePaths = append(r.TruePaths, other.TruePaths...)
	r.FalsePaths = append(r.FalsePaths, other.FalsePaths...)
	r.Visits += other.Visits
}

// Discover searches from every source that has a known state, in the order
// given (duplicates ignored). The parallel mode merges per-source results in
// source order, so its output is identical to the sequential one.
func Discover(net *network.Network, sources []string, targets network.NodeSet, states state.GeneStates, opts Options) (*Result, error) {
	if net == nil {
		return nil, ErrNilNetwork
	}
	if opts.MaxDepth < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNegativeDepth, opts.MaxDepth)
	}

	seen := make(network.NodeSet, len(sources))
	starts := make([]string, 0, len(sources))
	for _, src := range sources {
		if seen.Has(src) {
			continue
		}
		seen.Add(src)
		if _, ok := states.Get(src); ok {
			starts = append(starts, src)
		}
	}

	result := newResult()
	s := &searcher{net: net, targets: targets, states: states, negate: opts.NegateInhibitory}

	if opts.Workers <= 1 || len(starts) < 2 {
		for _, src := range starts {
			s.run(src, opts.MaxDepth, result)
		}
		return result, nil
	}

	partials := make([]*Result, len(starts))
	err := parallel.ForEach(len(starts), opts.Workers, func(i int) {
		partials[i] = newResult()
		s.run(starts[i], opts.MaxDepth, partials[i])
	})
	if err != nil {
		return nil, fmt.Errorf("parallel discovery: %w", err)
	}
	for _, p := range partials {
		result.merge(p)
	}
	return result, nil
}

// searcher holds the read-only inputs shared by every branch.
type searcher struct {
	net     *network.Network
	targets network.NodeSet
	states  state.GeneStates
	negate  bool
}

func (s *searcher) run(source string, depth int, into *Result) {
	action, _ := s.states.Get(source)
	s.search(into, source, action, nil, depth, false)
}

func (s *searcher) search(res *Result, current string, action sign.Sign, linkers chain, depth int, falsePath bool) {
	res.Visits++

	if depth == 0 || !s.net.HasSource(current) {
		return
	}

	for _, in := range s.net.Interactions(current) {
		c := interaction.Classify(in.Label)
		pathFalse := falsePath || interaction.IsRewired(in.Label)

		if c.Structural() {
			continue
		}

		next := propagate(action, c.Sign, s.negate)
		edge := network.Edge{Source: current, Label: in.Label, Target: in.Target}

		var nextLinkers chain
		if s.matches(in.Target, next) {
			for _, e := range linkers {
				res.Discovered.Add(e)
			}
			res.Discovered.Add(edge)
			// Committed edges leave the chain for later siblings too.
			linkers = nil

			if pathFalse {
				res.FalsePaths = append(res.FalsePaths, in.Target)
			} else {
				res.TruePaths = append(res.TruePaths, in.Target)
			}
		} else {
			nextLinkers = linkers.extend(edge)
		}

		// A transcriptional step is an attribution endpoint; this cuts
		// cycles through transcriptional feedback.
		if c.Transcriptional() {
			continue
		}

		s.search(res, in.Target, next, nextLinkers, depth-1, pathFalse)
	}
}

func (s *searcher) matches(target string, action sign.Sign) bool {
	st, ok := s.states.Get(target)
	return ok && s.targets.Has(target) && action.Defined() && action == st
}

// propagate returns the action carried past an edge of the given sign.
func propagate(action, edge sign.Sign, negateInhibitory bool) sign.Sign {
	switch edge {
	case sign.Positive:
		return action
	case sign.Negative:
		if negateInhibitory {
			return action.Negate()
		}
	}
	return sign.None
}

// chain is the set of unvalidated linker edges on one branch, oldest first.
// It is never modified in place, so branches can share prefixes.
type chain []network.Edge

func (c chain) extend(e network.Edge) chain {
	for _, have := range c {
		if have == e {
			return c
		}
	}
	out := make(chain, len(c), len(c)+1)
	copy(out, c)
	return append(out, e)
}
