package render

// Stats summarizes a graph description for the run report.
type Stats struct {
	Nodes      int `json:"nodes"`
	Edges      int `json:"edges"`
	Predicates int `json:"predicates"`
	Components int `json:"components"`
}

// Stats computes node, edge, distinct-predicate and weakly-connected
// component counts.
func (g *Graph) Stats() Stats {
	preds := make(map[string]bool, len(g.edges))
	uf := newUnionFind(g.nodes)
	for _, e := range g.edges {
		preds[e.Label] = true
		uf.union(e.From, e.To)
	}
	return Stats{
		Nodes:      len(g.nodes),
		Edges:      len(g.edges),
		Predicates: len(preds),
		Components: uf.count(),
	}
}
