package network

import "sort"

// Edge is a directed, labeled interaction.
type Edge struct {
	Source string
	Label  string
	Target string
}

// Interaction is an outgoing (label, target) entry of a source node.
type Interaction struct {
	Label  string
	Target string
}

// Pair is an unlabeled (source, target) edge.
type Pair struct {
	Source string
	Target string
}

// NodeSet is an unordered set of node identifiers.
type NodeSet map[string]struct{}

// NewNodeSet returns a set holding the given nodes.
func NewNodeSet(nodes ...string) NodeSet {
	s := make(NodeSet, len(nodes))
	for _, n := range nodes {
		s[n] = struct{}{}
	}
	return s
}

// Add inserts a node.
func (s NodeSet) Add(node string) {
	s[node] = struct{}{}
}

// Has reports membership. A nil set contains nothing.
func (s NodeSet) Has(node string) bool {
	_, ok := s[node]
	return ok
}

// Sorted returns the members in lexical order.
func (s NodeSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// EdgeSet is an insertion-ordered set of edges. Edges are only ever added.
type EdgeSet struct {
	edges []Edge
	index map[Edge]struct{}
}

// NewEdgeSet returns an empty edge set.
func NewEdgeSet() *EdgeSet {
	return &EdgeSet{index: make(map[Edge]struct{})}
}

// Add inserts e and reports whether it was new.
func (s *EdgeSet) Add(e Edge) bool {
	if _, ok := s.index[e]; ok {
		return false
	}
	s.index[e] = struct{}{}
	s.edges = append(s.edges, e)
	return true
}

// Has reports membership.
func (s *EdgeSet) Has(e Edge) bool {
	_, ok := s.index[e]
	return ok
}

// Len returns the number of edges.
func (s *EdgeSet) Len() int {
	return len(s.edges)
}

// Edges returns the edges in insertion order. The slice must not be modified.
func (s *EdgeSet) Edges() []Edge {
	return s.edges
}

// Merge adds every edge of other, preserving other's order for new entries.
func (s *EdgeSet) Merge(other *EdgeSet) {
	for _, e := range other.edges {
		s.Add(e)
	}
}

// Nodes returns every endpoint of the set.
func (s *EdgeSet) Nodes() NodeSet {
	nodes := make(NodeSet)
	for _, e := range s.edges {
		nodes.Add(e.Source)
		nodes.Add(e.Target)
	}
	return nodes
}

// Network converts the set into an adjacency index.
func (s *EdgeSet) Network() *Network {
	return Build(s.edges, nil)
}
