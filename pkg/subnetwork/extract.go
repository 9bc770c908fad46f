// Package subnetwork extracts connected, typed subnetworks from an
// interaction network and materialises networks as graph objects for
// export.
package subnetwork

import "github.com/dd0wney/cluso-sigpath/pkg/network"

// Extractor filters a network down to the edges among a node set. The
// connectivity computation is delegated to a Connectivity implementation.
type Extractor struct {
	conn Connectivity
}

// NewExtractor returns an Extractor backed by conn, or by
// GonumConnectivity when conn is nil.
func NewExtractor(conn Connectivity) *Extractor {
	if conn == nil {
		conn = GonumConnectivity{}
	}
	return &Extractor{conn: conn}
}

// ConnectedEdges returns the (source, target) pairs of net with both
// endpoints in nodes, self-loops excluded, keeping a pair only when both
// endpoints are nodes of the undirected view built from those pairs. The
// check is node membership, not a largest-component cut: edges of separate
// components are all kept. Pairs come out in network order.
func (x *Extractor) ConnectedEdges(net *network.Network, nodes network.NodeSet) []network.Pair {
	var edgeList []network.Pair
	seen := make(map[network.Pair]struct{})
	var undirected []network.Pair

	for _, s := range net.Sources() {
		for _, in := range net.Interactions(s) {
			t := in.Target
			if s == t || !nodes.Has(s) || !nodes.Has(t) {
				continue
			}
			p := network.Pair{Source: s, Target: t}
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			edgeList = append(edgeList, p)
			if _, ok := seen[network.Pair{Source: t, Target: s}]; !ok {
				undirected = append(undirected, p)
			}
		}
	}

	inGraph := make(network.NodeSet)
	for _, comp := range x.conn.Components(undirected) {
		for _, n := range comp {
			inGraph.Add(n)
		}
	}

	validated := make([]network.Pair, 0, len(edgeList))
	for _, p := range edgeList {
		if inGraph.Has(p.Source) && inGraph.Has(p.Target) {
			validated = append(validated, p)
		}
	}
	return validated
}

// ConnectedNodes returns the endpoints of ConnectedEdges.
func (x *Extractor) ConnectedNodes(net *network.Network, nodes network.NodeSet) network.NodeSet {
	out := make(network.NodeSet)
	for _, p := range x.ConnectedEdges(net, nodes) {
		out.Add(p.Source)
		out.Add(p.Target)
	}
	return out
}

// Subnetwork maps ConnectedEdges back onto net, keeping original labels.
func (x *Extractor) Subnetwork(net *network.Network, nodes network.NodeSet) *network.Network {
	return MapEdgesToNetwork(x.ConnectedEdges(net, nodes), net)
}

// MapEdgesToNetwork looks every undirected pair up in net in both directions
// and copies each matching labeled edge into a new network. Pairs with no
// directed counterpart are dropped; no label is ever invented.
func MapEdgesToNetwork(pairs []network.Pair, net *network.Network) *network.Network {
	sub := network.New()
	copyMatches := func(from, to string) {
		for _, in := range net.Interactions(from) {
			if in.Target == to {
				sub.Add(from, in.Label, to)
			}
		}
	}
	for _, p := range pairs {
		copyMatches(p.Source, p.Target)
		copyMatches(p.Target, p.Source)
	}
	return sub
}
