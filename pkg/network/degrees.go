package network

// EdgeDegrees returns the total undirected degree of every node in a list of
// (source, target) pairs. Parallel and reversed pairs count once.
func EdgeDegrees(pairs []Pair) map[string]int {
	neighbours := make(map[string]NodeSet)
	link := func(a, b string) {
		if _, ok := neighbours[a]; !ok {
			neighbours[a] = make(NodeSet)
		}
		neighbours[a].Add(b)
	}
	for _, p := range pairs {
		link(p.Source, p.Target)
		link(p.Target, p.Source)
	}

	degrees := make(map[string]int, len(neighbours))
	for node, ns := range neighbours {
		degrees[node] = len(ns)
	}
	return degrees
}
