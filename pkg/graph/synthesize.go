package graph

import (
	"fmt"
	"strings"

	"github.com/doublelucky/compass/pkg/common"
)

// Synthesize converts one AnalysisResult into a deduplicated Graph.
//
// Node identity is the entity name; the first occurrence of a name wins
// and later occurrences only contribute edges. The center is inserted at
// layer 0, relations at layer 1, sub-relations at layer 2. A sub-relation
// whose name collides with an existing layer-0 or layer-1 node creates no
// new node but the edge from the current relation is still added, so a
// node can end up with multiple parents.
//
// Synthesize is a pure function of its input. The only error condition is
// an empty center name.
func Synthesize(result *common.AnalysisResult) (*Graph, error) {
	if result == nil || strings.TrimSpace(result.Center.Name) == "" {
		return nil, fmt.Errorf("%w: analysis result has no center name", common.ErrInvalidInput)
	}

	g := &Graph{
		Center:  result.Center,
		Nodes:   make(map[NodeName]Node),
		Edges:   []Edge{},
		edgeSet: make(map[Edge]struct{}),
	}

	center := NodeName(result.Center.Name)
	g.addNode(Node{
		Name:  center,
		Layer: LayerCenter,
	})

	for _, rel := range result.Relations {
		relName := NodeName(rel.Name)
		if relName == "" {
			continue
		}
		g.addNode(Node{
			Name:      relName,
			Layer:     LayerRelation,
			Rationale: rel.Rationale,
		})
		g.addEdge(center, relName)

		for _, sub := range rel.SubRelations {
			subName := NodeName(sub.Name)
			if subName == "" {
				continue
			}
			g.addNode(Node{
				Name:      subName,
				Layer:     LayerSubRelation,
				Rationale: sub.Rationale,
			})
			g.addEdge(relName, subName)
		}
	}

	return g, nil
}
