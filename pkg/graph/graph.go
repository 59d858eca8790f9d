package graph

import (
	"github.com/doublelucky/compass/pkg/common"
)

// NodeName is the identity of a node in the graph. Identity is the
// entity's display name, case-sensitive and compared exactly; wrapping
// it keeps graph keys from being confused with arbitrary display text.
type NodeName string

// Layer is the distance of a node from the center of the graph.
type Layer int

const (
	// LayerCenter is the analysis subject itself.
	LayerCenter Layer = 0
	// LayerRelation is a direct relation of the center.
	LayerRelation Layer = 1
	// LayerSubRelation is a relation of a relation.
	LayerSubRelation Layer = 2
)

// Node is a single deduplicated entity in the graph. Rationale is empty
// for the center node; its descriptive text lives in Graph.Center.
type Node struct {
	Name      NodeName `json:"name"`
	Layer     Layer    `json:"layer"`
	Rationale string   `json:"rationale,omitempty"`
}

// Edge is a directed connection discovered between two nodes. Direction
// always points from the node discovered earlier (lower layer) toward
// the one discovered through it.
type Edge struct {
	Source NodeName `json:"source"`
	Target NodeName `json:"target"`
}

// Graph is the deduplicated node/edge model synthesized from one
// AnalysisResult. It is replaced wholesale on every successful fetch and
// only ever read afterwards.
type Graph struct {
	Center common.Center     `json:"center"`
	Nodes  map[NodeName]Node `json:"nodes"`
	Edges  []Edge            `json:"edges"`

	edgeSet map[Edge]struct{}
}

// CenterName returns the identity of the layer-0 node.
func (g *Graph) CenterName() NodeName {
	return NodeName(g.Center.Name)
}

// HasNode reports whether the graph contains a node with the given name.
func (g *Graph) HasNode(name NodeName) bool {
	if g == nil || g.Nodes == nil {
		return false
	}
	_, ok := g.Nodes[name]
	return ok
}

// HasEdge reports whether the exact directed edge exists.
func (g *Graph) HasEdge(source, target NodeName) bool {
	if g == nil || g.edgeSet == nil {
		return false
	}
	_, ok := g.edgeSet[Edge{Source: source, Target: target}]
	return ok
}

// OutNeighbors returns the targets of all edges leaving name, in
// discovery order.
func (g *Graph) OutNeighbors(name NodeName) []NodeName {
	var out []NodeName
	for _, e := range g.Edges {
		if e.Source == name {
			out = append(out, e.Target)
		}
	}
	return out
}

// InNeighbors returns the sources of all edges pointing at name, in
// discovery order.
func (g *Graph) InNeighbors(name NodeName) []NodeName {
	var in []NodeName
	for _, e := range g.Edges {
		if e.Target == name {
			in = append(in, e.Source)
		}
	}
	return in
}

func (g *Graph) addNode(n Node) bool {
	if _, ok := g.Nodes[n.Name]; ok {
		return false
	}
	g.Nodes[n.Name] = n
	return true
}

func (g *Graph) addEdge(source, target NodeName) bool {
	if source == target {
		return false
	}
	e := Edge{Source: source, Target: target}
	if _, ok := g.edgeSet[e]; ok {
		return false
	}
	g.edgeSet[e] = struct{}{}
	g.Edges = append(g.Edges, e)
	return true
}
