// Package network holds the forward adjacency index of a directed,
// multiply-labeled interaction network.
//
// Each source maps to a set of (label, target) pairs. Iteration over sources
// and over a source's interactions follows insertion order, so every
// traversal built on top of the index is deterministic for a given input.
package network

// Network is the forward adjacency index: source -> set of (label, target).
// It is not safe for concurrent mutation; concurrent reads are fine once
// construction is done.
type Network struct {
	sources []string
	adj     map[string]*interactionSet
	edges   int
}

type interactionSet struct {
	items []Interaction
	index map[Interaction]struct{}
}

// New returns an empty network.
func New() *Network {
	return &Network{adj: make(map[string]*interactionSet)}
}

// Build indexes the given edges. When restrictTo is non-empty, any edge with
// an endpoint outside it is dropped. Duplicate (source, label, target)
// triples collapse into one.
func Build(edges []Edge, restrictTo NodeSet) *Network {
	n := New()
	for _, e := range edges {
		if len(restrictTo) > 0 && (!restrictTo.Has(e.Source) || !restrictTo.Has(e.Target)) {
			continue
		}
		n.Add(e.Source, e.Label, e.Target)
	}
	return n
}

// Add inserts a labeled edge and reports whether it was new.
func (n *Network) Add(source, label, target string) bool {
	set := n.ensure(source)
	in := Interaction{Label: label, Target: target}
	if _, ok := set.index[in]; ok {
		return false
	}
	set.index[in] = struct{}{}
	set.items = append(set.items, in)
	n.edges++
	return true
}

// AddSource registers a source with no outgoing edges yet.
func (n *Network) AddSource(source string) {
	n.ensure(source)
}

func (n *Network) ensure(source string) *interactionSet {
	set, ok := n.adj[source]
	if !ok {
		set = &interactionSet{index: make(map[Interaction]struct{})}
		n.adj[source] = set
		n.sources = append(n.sources, source)
	}
	return set
}

// HasSource reports whether source is a key of the index, even with an
// empty interaction set.
func (n *Network) HasSource(source string) bool {
	_, ok := n.adj[source]
	return ok
}

// Interactions returns the outgoing (label, target) pairs of source in
// insertion order, or nil. The slice must not be modified.
func (n *Network) Interactions(source string) []Interaction {
	if set, ok := n.adj[source]; ok {
		return set.items
	}
	return nil
}

// Has reports whether the exact labeled edge exists.
func (n *Network) Has(source, label, target string) bool {
	set, ok := n.adj[source]
	if !ok {
		return false
	}
	_, ok = set.index[Interaction{Label: label, Target: target}]
	return ok
}

// Sources returns the index keys in insertion order.
func (n *Network) Sources() []string {
	return n.sources
}

// Len returns the number of labeled edges.
func (n *Network) Len() int {
	return n.edges
}

// Edges flattens the index into edge triples, source by source.
func (n *Network) Edges() []Edge {
	out := make([]Edge, 0, n.edges)
	for _, s := range n.sources {
		for _, in := range n.adj[s].items {
			out = append(out, Edge{Source: s, Label: in.Label, Target: in.Target})
		}
	}
	return out
}

// Nodes returns the union of all sources and all targets.
func (n *Network) Nodes() NodeSet {
	nodes := make(NodeSet, len(n.sources))
	for _, s := range n.sources {
		nodes.Add(s)
		for _, in := range n.adj[s].items {
			nodes.Add(in.Target)
		}
	}
	return nodes
}

// OrderedNodes returns every node once, in first-seen order (a source before
// its targets).
func (n *Network) OrderedNodes() []string {
	seen := make(NodeSet, len(n.sources))
	out := make([]string, 0, len(n.sources))
	visit := func(node string) {
		if !seen.Has(node) {
			seen.Add(node)
			out = append(out, node)
		}
	}
	for _, s := range n.sources {
		visit(s)
		for _, in := range n.adj[s].items {
			visit(in.Target)
		}
	}
	return out
}

// OutDegrees counts outgoing (label, target) pairs per source. Targets that
// are not sources themselves get degree 0.
func (n *Network) OutDegrees() map[string]int {
	degrees := make(map[string]int, len(n.sources))
	for _, s := range n.sources {
		degrees[s] = len(n.adj[s].items)
	}
	for _, s := range n.sources {
		for _, in := range n.adj[s].items {
			if _, ok := degrees[in.Target]; !ok {
				degrees[in.Target] = 0
			}
		}
	}
	return degrees
}
