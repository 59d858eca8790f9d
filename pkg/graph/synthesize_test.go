package graph

import (
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/doublelucky/compass/pkg/common"
)

func discoveryResult() *common.AnalysisResult {
	return &common.AnalysisResult{
		Center: common.Center{
			Name:           "OpenAI",
			Category:       "Company",
			Summary:        "AI research lab",
			PositiveSignal: "strong product velocity",
			RiskSignal:     "regulatory scrutiny",
		},
		Relations: []common.Relation{
			{
				Name:      "Anthropic",
				Rationale: "direct competitor",
				SubRelations: []common.SubRelation{
					{Name: "Google", Rationale: "investor"},
					{Name: "Amazon", Rationale: "investor"},
				},
			},
			{
				Name:      "Microsoft",
				Rationale: "primary partner",
				SubRelations: []common.SubRelation{
					{Name: "GitHub", Rationale: "subsidiary"},
				},
			},
		},
	}
}

func TestSynthesize_CenterOnly(t *testing.T) {
	g, err := Synthesize(&common.AnalysisResult{
		Center: common.Center{Name: "OpenAI"},
	})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if len(g.Nodes) != 1 {
		t.Fatalf("Synthesize() nodes = %d, want 1", len(g.Nodes))
	}
	if len(g.Edges) != 0 {
		t.Fatalf("Synthesize() edges = %d, want 0", len(g.Edges))
	}
	node, ok := g.Nodes["OpenAI"]
	if !ok || node.Layer != LayerCenter {
		t.Fatalf("Synthesize() center node = %+v, ok = %v", node, ok)
	}
}

func TestSynthesize_EmptyCenterName(t *testing.T) {
	tests := []struct {
		name   string
		result *common.AnalysisResult
	}{
		{name: "nil result", result: nil},
		{name: "empty name", result: &common.AnalysisResult{}},
		{name: "whitespace name", result: &common.AnalysisResult{Center: common.Center{Name: "  "}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Synthesize(tc.result); !errors.Is(err, common.ErrInvalidInput) {
				t.Fatalf("Synthesize() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestSynthesize_LayersAndEdges(t *testing.T) {
	g, err := Synthesize(discoveryResult())
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	wantLayers := map[NodeName]Layer{
		"OpenAI":    LayerCenter,
		"Anthropic": LayerRelation,
		"Microsoft": LayerRelation,
		"Google":    LayerSubRelation,
		"Amazon":    LayerSubRelation,
		"GitHub":    LayerSubRelation,
	}
	if len(g.Nodes) != len(wantLayers) {
		t.Fatalf("Synthesize() nodes = %d, want %d", len(g.Nodes), len(wantLayers))
	}
	for name, layer := range wantLayers {
		node, ok := g.Nodes[name]
		if !ok {
			t.Fatalf("Synthesize() missing node %q", name)
		}
		if node.Layer != layer {
			t.Errorf("Synthesize() node %q layer = %d, want %d", name, node.Layer, layer)
		}
	}

	wantEdges := []Edge{
		{Source: "OpenAI", Target: "Anthropic"},
		{Source: "Anthropic", Target: "Google"},
		{Source: "Anthropic", Target: "Amazon"},
		{Source: "OpenAI", Target: "Microsoft"},
		{Source: "Microsoft", Target: "GitHub"},
	}
	if !reflect.DeepEqual(g.Edges, wantEdges) {
		t.Fatalf("Synthesize() edges = %v, want %v", g.Edges, wantEdges)
	}

	// Every edge has both endpoints present and increasing layers.
	for _, e := range g.Edges {
		src, ok := g.Nodes[e.Source]
		if !ok {
			t.Fatalf("edge %v has unknown source", e)
		}
		dst, ok := g.Nodes[e.Target]
		if !ok {
			t.Fatalf("edge %v has unknown target", e)
		}
		if src.Layer >= dst.Layer {
			t.Errorf("edge %v layers = %d -> %d, want increasing", e, src.Layer, dst.Layer)
		}
	}
}

func TestSynthesize_DedupAcrossLayers(t *testing.T) {
	// "Anthropic" appears as a relation and again as a sub-relation of
	// another relation; "Google" appears as a sub-relation twice. The
	// first occurrence wins and later ones only add edges.
	result := &common.AnalysisResult{
		Center: common.Center{Name: "OpenAI"},
		Relations: []common.Relation{
			{
				Name:      "Anthropic",
				Rationale: "competitor",
				SubRelations: []common.SubRelation{
					{Name: "Google", Rationale: "investor"},
				},
			},
			{
				Name:      "Microsoft",
				Rationale: "partner",
				SubRelations: []common.SubRelation{
					{Name: "Anthropic", Rationale: "also a partner"},
					{Name: "Google", Rationale: "rival"},
				},
			},
		},
	}

	g, err := Synthesize(result)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	distinct := map[string]struct{}{}
	distinct[result.Center.Name] = struct{}{}
	for _, rel := range result.Relations {
		distinct[rel.Name] = struct{}{}
		for _, sub := range rel.SubRelations {
			distinct[sub.Name] = struct{}{}
		}
	}
	if len(g.Nodes) != len(distinct) {
		t.Fatalf("Synthesize() nodes = %d, want %d distinct names", len(g.Nodes), len(distinct))
	}

	// Anthropic keeps its first (layer 1) record and rationale.
	anthropic := g.Nodes["Anthropic"]
	if anthropic.Layer != LayerRelation {
		t.Errorf("Anthropic layer = %d, want %d", anthropic.Layer, LayerRelation)
	}
	if anthropic.Rationale != "competitor" {
		t.Errorf("Anthropic rationale = %q, want first occurrence to win", anthropic.Rationale)
	}

	// The colliding sub-relation still contributed its edge.
	if !g.HasEdge("Microsoft", "Anthropic") {
		t.Errorf("missing collision edge Microsoft -> Anthropic")
	}

	// Google gained a second parent.
	parents := g.InNeighbors("Google")
	if len(parents) != 2 {
		t.Fatalf("Google parents = %v, want 2", parents)
	}
}

func TestSynthesize_DuplicateRelationAddsNoDuplicateEdge(t *testing.T) {
	result := &common.AnalysisResult{
		Center: common.Center{Name: "X"},
		Relations: []common.Relation{
			{Name: "Y", Rationale: "first"},
			{Name: "Y", Rationale: "second"},
		},
	}

	g, err := Synthesize(result)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if len(g.Nodes) != 2 {
		t.Fatalf("Synthesize() nodes = %d, want 2", len(g.Nodes))
	}
	if len(g.Edges) != 1 {
		t.Fatalf("Synthesize() edges = %v, want exactly one X -> Y", g.Edges)
	}
	if g.Nodes["Y"].Rationale != "first" {
		t.Errorf("Y rationale = %q, want first occurrence to win", g.Nodes["Y"].Rationale)
	}
}

func TestSynthesize_Idempotent(t *testing.T) {
	first, err := Synthesize(discoveryResult())
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	second, err := Synthesize(discoveryResult())
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	if !reflect.DeepEqual(first.Nodes, second.Nodes) {
		t.Errorf("node sets differ between identical inputs")
	}

	sortEdges := func(edges []Edge) []Edge {
		out := append([]Edge(nil), edges...)
		sort.Slice(out, func(i, j int) bool {
			if out[i].Source != out[j].Source {
				return out[i].Source < out[j].Source
			}
			return out[i].Target < out[j].Target
		})
		return out
	}
	if !reflect.DeepEqual(sortEdges(first.Edges), sortEdges(second.Edges)) {
		t.Errorf("edge sets differ between identical inputs")
	}
}

func TestSynthesize_SkipsEmptyNames(t *testing.T) {
	result := &common.AnalysisResult{
		Center: common.Center{Name: "X"},
		Relations: []common.Relation{
			{Name: "", Rationale: "nameless"},
			{
				Name: "Y",
				SubRelations: []common.SubRelation{
					{Name: "", Rationale: "nameless"},
					{Name: "Z"},
				},
			},
		},
	}

	g, err := Synthesize(result)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if len(g.Nodes) != 3 {
		t.Fatalf("Synthesize() nodes = %d, want 3", len(g.Nodes))
	}
	if len(g.Edges) != 2 {
		t.Fatalf("Synthesize() edges = %v, want 2", g.Edges)
	}
}

func TestRenderNodes_CenterFirstWithStyle(t *testing.T) {
	g, err := Synthesize(discoveryResult())
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	rendered := g.RenderNodes()
	if len(rendered) != len(g.Nodes) {
		t.Fatalf("RenderNodes() = %d nodes, want %d", len(rendered), len(g.Nodes))
	}
	if rendered[0].ID != "OpenAI" {
		t.Errorf("RenderNodes()[0] = %q, want center first", rendered[0].ID)
	}
	if rendered[0].Style != StyleForLayer(LayerCenter) {
		t.Errorf("center style = %+v, want %+v", rendered[0].Style, StyleForLayer(LayerCenter))
	}
	for _, rn := range rendered {
		if rn.Style != StyleForLayer(rn.Layer) {
			t.Errorf("node %q style = %+v, want layer style", rn.ID, rn.Style)
		}
	}
}
