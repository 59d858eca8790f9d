package graph

// LayerStyle is the visual mapping handed to the rendering collaborator
// for each layer.
type LayerStyle struct {
	Size  int    `json:"size"`
	Color string `json:"color"`
	Shape string `json:"shape"`
}

var layerStyles = map[Layer]LayerStyle{
	LayerCenter:      {Size: 45, Color: "#FF4B4B", Shape: "dot"},
	LayerRelation:    {Size: 25, Color: "#00C0F2", Shape: "dot"},
	LayerSubRelation: {Size: 15, Color: "#1DB954", Shape: "diamond"},
}

// StyleForLayer returns the visual style for a layer. Unknown layers get
// the sub-relation style.
func StyleForLayer(l Layer) LayerStyle {
	if s, ok := layerStyles[l]; ok {
		return s
	}
	return layerStyles[LayerSubRelation]
}

// RenderNode is one node prepared for the rendering collaborator: label,
// layer, hover text and visual style.
type RenderNode struct {
	ID    NodeName   `json:"id"`
	Label string     `json:"label"`
	Layer Layer      `json:"layer"`
	Title string     `json:"title,omitempty"`
	Style LayerStyle `json:"style"`
}

// RenderNodes returns the graph's nodes in render form: center first,
// then the remaining nodes in discovery order along the edge list.
func (g *Graph) RenderNodes() []RenderNode {
	if g == nil || g.Nodes == nil {
		return nil
	}

	out := make([]RenderNode, 0, len(g.Nodes))
	seen := make(map[NodeName]struct{}, len(g.Nodes))

	appendNode := func(name NodeName) {
		if _, ok := seen[name]; ok {
			return
		}
		node, ok := g.Nodes[name]
		if !ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, RenderNode{
			ID:    node.Name,
			Label: string(node.Name),
			Layer: node.Layer,
			Title: node.Rationale,
			Style: StyleForLayer(node.Layer),
		})
	}

	appendNode(g.CenterName())
	for _, e := range g.Edges {
		appendNode(e.Source)
		appendNode(e.Target)
	}
	// Isolated nodes cannot occur given the synthesizer's invariants,
	// but a graph with only a center has no edges at all.
	for name := range g.Nodes {
		appendNode(name)
	}

	return out
}
