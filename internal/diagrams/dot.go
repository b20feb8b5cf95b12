package diagrams

import (
	"bytes"
	"fmt"
)

// node is a single box in a diagram.
type node struct {
	id    string
	label string
}

// cluster is a labeled grouping of nodes, possibly nested.
type cluster struct {
	id       string
	label    string
	nodes    []node
	clusters []cluster
}

// edge is a directed connection between two node IDs.
type edge struct {
	from string
	to   string
}

// graph is the source model a diagram is built from before it is
// serialized to DOT.
type graph struct {
	title    string
	rankdir  string
	splines  string
	nodes    []node
	clusters []cluster
	edges    []edge
}

// dot serializes the graph to Graphviz DOT. Cluster subgraph names
// carry the cluster_ prefix so Graphviz draws their borders.
func (g *graph) dot() string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  label=%q;\n", g.title)
	buf.WriteString("  labelloc=t;\n")
	buf.WriteString("  fontsize=20;\n")
	rankdir := g.rankdir
	if rankdir == "" {
		rankdir = "LR"
	}
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	if g.splines != "" {
		fmt.Fprintf(&buf, "  splines=%s;\n", g.splines)
	}
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, n := range g.nodes {
		writeNode(&buf, "  ", n)
	}
	for _, c := range g.clusters {
		writeCluster(&buf, "  ", c)
	}

	buf.WriteString("\n")
	for _, e := range g.edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.from, e.to)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeNode(buf *bytes.Buffer, indent string, n node) {
	label := n.label
	if label == "" {
		label = n.id
	}
	fmt.Fprintf(buf, "%s%q [label=%q];\n", indent, n.id, label)
}

func writeCluster(buf *bytes.Buffer, indent string, c cluster) {
	fmt.Fprintf(buf, "%ssubgraph \"cluster_%s\" {\n", indent, c.id)
	fmt.Fprintf(buf, "%s  label=%q;\n", indent, c.label)
	fmt.Fprintf(buf, "%s  style=rounded;\n", indent)
	for _, n := range c.nodes {
		writeNode(buf, indent+"  ", n)
	}
	for _, nested := range c.clusters {
		writeCluster(buf, indent+"  ", nested)
	}
	fmt.Fprintf(buf, "%s}\n", indent)
}
