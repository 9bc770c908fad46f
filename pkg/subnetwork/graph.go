package subnetwork

import (
	"sort"
	"strconv"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/dd0wney/cluso-sigpath/pkg/network"
)

// LabelAttr is the edge attribute holding the interaction label.
const LabelAttr = "i"

// Graph is a network materialised as a gonum simple graph. Parallel labeled
// edges between the same pair collapse to one edge carrying the label seen
// last; in the undirected form a reverse edge also replaces the forward one.
type Graph struct {
	g        graph.Graph
	directed bool
	ids      *idMap
}

type geneNode struct {
	id   int64
	name string
}

func (n geneNode) ID() int64     { return n.id }
func (n geneNode) DOTID() string { return n.name }

type labeledEdge struct {
	F, T  geneNode
	Label string
}

func (e labeledEdge) From() graph.Node         { return e.F }
func (e labeledEdge) To() graph.Node           { return e.T }
func (e labeledEdge) ReversedEdge() graph.Edge { return labeledEdge{F: e.T, T: e.F, Label: e.Label} }

func (e labeledEdge) Attributes() []encoding.Attribute {
	return []encoding.Attribute{{Key: LabelAttr, Value: strconv.Quote(e.Label)}}
}

type edgeSetter interface {
	graph.Graph
	AddNode(graph.Node)
	SetEdge(graph.Edge)
}

// ToGraph converts net into a directed or undirected graph. Self-loops are
// skipped.
func ToGraph(net *network.Network, directed bool) *Graph {
	var g edgeSetter
	if directed {
		g = simple.NewDirectedGraph()
	} else {
		g = simple.NewUndirectedGraph()
	}
	out := &Graph{g: g, directed: directed, ids: newIDMap()}

	node := func(name string) geneNode {
		id, created := out.ids.id(name)
		n := geneNode{id: id, name: name}
		if created {
			g.AddNode(n)
		}
		return n
	}

	for _, s := range net.Sources() {
		for _, in := range net.Interactions(s) {
			if s == in.Target {
				continue
			}
			g.SetEdge(labeledEdge{F: node(s), T: node(in.Target), Label: in.Label})
		}
	}
	return out
}

// Directed reports whether the graph is directed.
func (g *Graph) Directed() bool {
	return g.directed
}

// Nodes returns node names in insertion order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.ids.names))
	copy(out, g.ids.names)
	return out
}

// HasNode reports whether name is a node of the graph.
func (g *Graph) HasNode(name string) bool {
	_, ok := g.ids.ids[name]
	return ok
}

// Label returns the interaction label of the edge from s to t. For an
// undirected graph the direction is ignored.
func (g *Graph) Label(s, t string) (string, bool) {
	sid, ok := g.ids.ids[s]
	if !ok {
		return "", false
	}
	tid, ok := g.ids.ids[t]
	if !ok {
		return "", false
	}
	e := g.g.Edge(sid, tid)
	if e == nil {
		return "", false
	}
	le, ok := e.(labeledEdge)
	if !ok {
		return "", false
	}
	return le.Label, true
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	n := 0
	nodes := g.g.Nodes()
	for nodes.Next() {
		u := nodes.Node()
		n += g.g.From(u.ID()).Len()
	}
	if !g.directed {
		n /= 2
	}
	return n
}

// Components returns the connected components, ignoring edge direction.
// Components are ordered largest first, then by their first node name;
// names inside a component are sorted.
func (g *Graph) Components() [][]string {
	var u graph.Undirected
	if d, ok := g.g.(graph.Directed); ok && g.directed {
		u = graph.Undirect{G: d}
	} else {
		u = g.g.(graph.Undirected)
	}

	var out [][]string
	for _, comp := range topo.ConnectedComponents(u) {
		names := make([]string, 0, len(comp))
		for _, n := range comp {
			names = append(names, g.ids.names[n.ID()])
		}
		sort.Strings(names)
		out = append(out, names)
	}
	sortComponents(out)
	return out
}

// MarshalDOT renders the graph in Graphviz DOT format with each edge's
// label in the "i" attribute.
func (g *Graph) MarshalDOT(name string) ([]byte, error) {
	return dot.Marshal(g.g, name, "", "\t")
}

func sortComponents(comps [][]string) {
	sort.SliceStable(comps, func(i, j int) bool {
		if len(comps[i]) != len(comps[j]) {
			return len(comps[i]) > len(comps[j])
		}
		return comps[i][0] < comps[j][0]
	})
}
