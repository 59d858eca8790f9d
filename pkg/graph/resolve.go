package graph

// PayloadKind identifies which shape of detail a resolved selection carries.
type PayloadKind string

const (
	PayloadCenter      PayloadKind = "center"
	PayloadRelation    PayloadKind = "relation"
	PayloadSubRelation PayloadKind = "sub_relation"
	PayloadNotFound    PayloadKind = "not_found"
)

// DisplayPayload is the detail-panel content for a selected node.
//
// For the center node, Summary/PositiveSignal/RiskSignal are set. For a
// layer-1 node, Rationale and Neighbors (its discovered connections) are
// set. For a layer-2 node, Rationale and Parents (every layer-1 relation
// that points at it) are set.
type DisplayPayload struct {
	Kind           PayloadKind `json:"kind"`
	Name           NodeName    `json:"name"`
	Summary        string      `json:"summary,omitempty"`
	PositiveSignal string      `json:"positive_signal,omitempty"`
	RiskSignal     string      `json:"risk_signal,omitempty"`
	Rationale      string      `json:"rationale,omitempty"`
	Neighbors      []NodeName  `json:"neighbors,omitempty"`
	Parents        []NodeName  `json:"parents,omitempty"`
}

// Resolve locates the descriptive text for a selected node and its
// relationship to neighboring nodes.
//
// Layer-1 nodes are searched before layer-2 nodes, so a name that exists
// at both layers (the multi-parent collision case) resolves as a
// relation. A name found in no layer yields a NotFound payload; given
// the synthesizer's invariants this should not occur for names taken
// from the graph itself, but it is handled rather than treated as fatal.
func Resolve(g *Graph, selected NodeName) DisplayPayload {
	if g == nil || !g.HasNode(selected) {
		return DisplayPayload{Kind: PayloadNotFound, Name: selected}
	}

	if selected == g.CenterName() {
		return DisplayPayload{
			Kind:           PayloadCenter,
			Name:           selected,
			Summary:        g.Center.Summary,
			PositiveSignal: g.Center.PositiveSignal,
			RiskSignal:     g.Center.RiskSignal,
		}
	}

	node := g.Nodes[selected]
	switch node.Layer {
	case LayerRelation:
		return DisplayPayload{
			Kind:      PayloadRelation,
			Name:      selected,
			Rationale: node.Rationale,
			Neighbors: g.OutNeighbors(selected),
		}
	case LayerSubRelation:
		// A sub-relation can have multiple parents when its name was
		// reused under several relations; report all of them.
		return DisplayPayload{
			Kind:      PayloadSubRelation,
			Name:      selected,
			Rationale: node.Rationale,
			Parents:   g.InNeighbors(selected),
		}
	}

	return DisplayPayload{Kind: PayloadNotFound, Name: selected}
}
