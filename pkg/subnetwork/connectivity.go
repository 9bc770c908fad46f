package subnetwork

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/dd0wney/cluso-sigpath/pkg/network"
)

// Connectivity computes the connected components of the undirected simple
// graph spanned by a list of pairs. Each component lists node names.
type Connectivity interface {
	Components(pairs []network.Pair) [][]string
}

// GonumConnectivity answers component queries with gonum's simple graph and
// topo packages.
type GonumConnectivity struct{}

// Components implements Connectivity. Self pairs are ignored; repeated and
// reversed pairs collapse into one undirected edge.
func (GonumConnectivity) Components(pairs []network.Pair) [][]string {
	g := simple.NewUndirectedGraph()
	ids := newIDMap()

	for _, p := range pairs {
		if p.Source == p.Target {
			continue
		}
		u := ids.node(g, p.Source)
		v := ids.node(g, p.Target)
		g.SetEdge(g.NewEdge(u, v))
	}

	var out [][]string
	for _, comp := range topo.ConnectedComponents(g) {
		names := make([]string, 0, len(comp))
		for _, n := range comp {
			names = append(names, ids.names[n.ID()])
		}
		out = append(out, names)
	}
	return out
}

// idMap assigns dense int64 IDs to node names in first-seen order.
type idMap struct {
	ids   map[string]int64
	names []string
}

func newIDMap() *idMap {
	return &idMap{ids: make(map[string]int64)}
}

func (m *idMap) id(name string) (int64, bool) {
	if id, ok := m.ids[name]; ok {
		return id, false
	}
	id := int64(len(m.names))
	m.ids[name] = id
	m.names = append(m.names, name)
	return id, true
}

func (m *idMap) node(g *simple.UndirectedGraph, name string) geneNode {
	id, created := m.id(name)
	n := geneNode{id: id, name: name}
	if created {
		g.AddNode(n)
	}
	return n
}
