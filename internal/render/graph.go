// Package render turns recovered triples into a directed-graph
// description and hands it to the system graphviz renderer.
package render

import (
	"fmt"
	"strings"

	"knowviz/internal/triple"
)

// Edge is one labeled, directed edge of the description.
type Edge struct {
	From  string
	To    string
	Label string
}

// Graph is the transient node/edge description handed to the renderer.
// Nodes are kept in first-seen order so the emitted DOT is stable
// across runs with identical input.
type Graph struct {
	name  string
	nodes []string
	seen  map[string]bool
	edges []Edge
}

// FromTriples builds a description with one node per distinct subject
// or object and one labeled edge per triple.
func FromTriples(name string, triples []triple.Triple) *Graph {
	g := &Graph{name: name, seen: make(map[string]bool)}
	for _, t := range triples {
		g.addNode(t.Subject)
		g.addNode(t.Object)
		g.edges = append(g.edges, Edge{From: t.Subject, To: t.Object, Label: t.Predicate})
	}
	return g
}

func (g *Graph) addNode(id string) {
	if g.seen[id] {
		return
	}
	g.seen[id] = true
	g.nodes = append(g.nodes, id)
}

// Nodes returns the node identifiers in first-seen order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Edges returns the labeled edges in input order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// DOT renders the description as graphviz DOT source.
func (g *Graph) DOT() string {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph %s {\n", quote(g.name))
	for _, n := range g.nodes {
		fmt.Fprintf(&b, "  %s [label=%s];\n", quote(n), quote(n))
	}
	for _, e := range g.edges {
		fmt.Fprintf(&b, "  %s -> %s [label=%s];\n", quote(e.From), quote(e.To), quote(e.Label))
	}
	b.WriteString("}\n")
	return b.String()
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func quote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}
