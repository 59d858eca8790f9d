package session

import (
	"errors"
	"testing"

	"github.com/doublelucky/compass/pkg/common"
)

func result(center string, relations ...common.Relation) *common.AnalysisResult {
	return &common.AnalysisResult{
		Center:    common.Center{Name: center, Summary: "about " + center},
		Relations: relations,
	}
}

func relation(name string, subs ...string) common.Relation {
	rel := common.Relation{Name: name, Rationale: "related to " + name}
	for _, s := range subs {
		rel.SubRelations = append(rel.SubRelations, common.SubRelation{Name: s, Rationale: "via " + name})
	}
	return rel
}

func TestApply_SubmitQuery(t *testing.T) {
	s := NewState("OpenAI")

	next, intent := Apply(s, SubmitQuery{Focus: "Anthropic", Mode: common.ModeDiscovery, Filters: common.DefaultFilters()})

	if next.Phase != PhaseFetching {
		t.Fatalf("phase = %q, want fetching", next.Phase)
	}
	if next.Focus != "Anthropic" {
		t.Errorf("focus = %q, want Anthropic", next.Focus)
	}
	if next.Graph != nil {
		t.Errorf("graph should be cleared while fetching")
	}
	if intent == nil || intent.Focus != "Anthropic" {
		t.Fatalf("intent = %+v, want fetch for Anthropic", intent)
	}
}

func TestApply_FetchSuccessCanonicalizesFocus(t *testing.T) {
	s := NewState("")
	s, intent := Apply(s, SubmitQuery{Focus: "OpenAI", Mode: common.ModeDiscovery})

	s, _ = Apply(s, FetchSucceeded{Seq: intent.Seq, Focus: intent.Focus, Result: result("OpenAI, Inc.", relation("Microsoft"))})

	if s.Phase != PhaseDisplayed {
		t.Fatalf("phase = %q, want displayed", s.Phase)
	}
	if s.Focus != "OpenAI, Inc." {
		t.Errorf("focus = %q, want the service's canonical name", s.Focus)
	}
	if s.Graph == nil || s.Graph.CenterName() != "OpenAI, Inc." {
		t.Fatalf("graph center = %v", s.Graph)
	}
	if len(s.History) != 1 || s.History[0] != "OpenAI, Inc." {
		t.Errorf("history = %v, want [OpenAI, Inc.]", s.History)
	}
}

func TestApply_StaleResponseSuppression(t *testing.T) {
	s := NewState("")
	s, intentA := Apply(s, SubmitQuery{Focus: "A", Mode: common.ModeDiscovery})
	s, intentB := Apply(s, SubmitQuery{Focus: "B", Mode: common.ModeDiscovery})

	// A's late result must not alter anything.
	afterA, _ := Apply(s, FetchSucceeded{Seq: intentA.Seq, Focus: intentA.Focus, Result: result("A")})
	if afterA.Graph != nil || afterA.Focus != "B" || afterA.Phase != PhaseFetching {
		t.Fatalf("stale result applied: %+v", afterA)
	}

	// B's result wins.
	afterB, _ := Apply(afterA, FetchSucceeded{Seq: intentB.Seq, Focus: intentB.Focus, Result: result("B")})
	if afterB.Phase != PhaseDisplayed || afterB.Focus != "B" {
		t.Fatalf("phase = %q focus = %q, want displayed B", afterB.Phase, afterB.Focus)
	}
}

func TestApply_StaleFailureSuppressed(t *testing.T) {
	s := NewState("")
	s, intentA := Apply(s, SubmitQuery{Focus: "A", Mode: common.ModeDiscovery})
	s, _ = Apply(s, SubmitQuery{Focus: "B", Mode: common.ModeDiscovery})

	next, _ := Apply(s, FetchFailed{Seq: intentA.Seq, Focus: intentA.Focus, Err: errors.New("boom")})
	if next.Phase != PhaseFetching || next.LastError != "" {
		t.Fatalf("stale failure applied: %+v", next)
	}
}

func TestApply_FetchFailure(t *testing.T) {
	s := NewState("OpenAI")
	s, intent := Apply(s, SubmitQuery{Focus: "OpenAI", Mode: common.ModeDiscovery})

	s, _ = Apply(s, FetchFailed{Seq: intent.Seq, Focus: intent.Focus, Err: &common.ServiceError{Err: errors.New("timeout")}})

	if s.Phase != PhaseIdle {
		t.Fatalf("phase = %q, want idle after service error", s.Phase)
	}
	if s.Graph != nil {
		t.Errorf("graph should be nil after failure")
	}
	if s.LastError == "" {
		t.Errorf("expected a recoverable error message")
	}
}

func TestApply_MalformedKeepsLastGoodGraph(t *testing.T) {
	s := NewState("")
	s, intent := Apply(s, SubmitQuery{Focus: "OpenAI", Mode: common.ModeDiscovery})
	s, _ = Apply(s, FetchSucceeded{Seq: intent.Seq, Focus: intent.Focus, Result: result("OpenAI", relation("Microsoft"))})

	s, intent = Apply(s, SubmitQuery{Focus: "Anthropic", Mode: common.ModeDiscovery})
	s, _ = Apply(s, FetchFailed{
		Seq: intent.Seq, Focus: intent.Focus,
		Err: &common.MalformedResponseError{Err: errors.New("no json")},
	})

	if s.Phase != PhaseDisplayed {
		t.Fatalf("phase = %q, want displayed with last good graph", s.Phase)
	}
	if s.Graph == nil || s.Graph.CenterName() != "OpenAI" {
		t.Fatalf("graph = %v, want the prior OpenAI graph", s.Graph)
	}
	if s.Focus != "OpenAI" {
		t.Errorf("focus = %q, want reverted to displayed center", s.Focus)
	}
	if s.LastError == "" {
		t.Errorf("expected the parse error to surface")
	}
}

func TestApply_SelectNode(t *testing.T) {
	s := NewState("")
	s, intent := Apply(s, SubmitQuery{Focus: "OpenAI", Mode: common.ModeDiscovery})
	s, _ = Apply(s, FetchSucceeded{Seq: intent.Seq, Focus: intent.Focus, Result: result("OpenAI", relation("Microsoft", "GitHub"))})

	t.Run("non-center node re-centers", func(t *testing.T) {
		next, intent := Apply(s, SelectNode{Name: "Microsoft"})
		if next.Phase != PhaseFetching || next.Focus != "Microsoft" {
			t.Fatalf("phase = %q focus = %q, want fetching Microsoft", next.Phase, next.Focus)
		}
		if next.Mode != common.ModeDiscovery {
			t.Errorf("mode = %q, want discovery after click", next.Mode)
		}
		if intent == nil || intent.Focus != "Microsoft" {
			t.Fatalf("intent = %+v", intent)
		}
	})

	t.Run("center node is display-only", func(t *testing.T) {
		next, intent := Apply(s, SelectNode{Name: "OpenAI"})
		if intent != nil {
			t.Fatalf("center selection must not fetch")
		}
		if next.Phase != PhaseDisplayed {
			t.Fatalf("phase = %q, want unchanged", next.Phase)
		}
	})

	t.Run("unknown node is ignored", func(t *testing.T) {
		next, intent := Apply(s, SelectNode{Name: "Nonexistent"})
		if intent != nil || next.Phase != PhaseDisplayed {
			t.Fatalf("unknown selection changed state")
		}
	})

	t.Run("no graph is ignored", func(t *testing.T) {
		idle := NewState("")
		next, intent := Apply(idle, SelectNode{Name: "Microsoft"})
		if intent != nil || next.Phase != PhaseIdle {
			t.Fatalf("selection without graph changed state")
		}
	})
}

func TestApply_SyncFocus(t *testing.T) {
	s := NewState("")
	s, intent := Apply(s, SubmitQuery{Focus: "OpenAI", Mode: common.ModeDiscovery})
	s, _ = Apply(s, FetchSucceeded{Seq: intent.Seq, Focus: intent.Focus, Result: result("OpenAI")})

	t.Run("matching focus is a no-op", func(t *testing.T) {
		next, intent := Apply(s, SyncFocus{Desired: "OpenAI"})
		if intent != nil || next.Phase != PhaseDisplayed {
			t.Fatalf("matching sync changed state")
		}
	})

	t.Run("mismatch marks stale and refetches", func(t *testing.T) {
		next, intent := Apply(s, SyncFocus{Desired: "Anthropic"})
		if next.Phase != PhaseStale {
			t.Fatalf("phase = %q, want stale", next.Phase)
		}
		if intent == nil || intent.Focus != "Anthropic" {
			t.Fatalf("intent = %+v, want fetch for Anthropic", intent)
		}

		// The stale graph is replaced when the fetch lands.
		after, _ := Apply(next, FetchSucceeded{Seq: intent.Seq, Focus: intent.Focus, Result: result("Anthropic")})
		if after.Phase != PhaseDisplayed || after.Graph.CenterName() != "Anthropic" {
			t.Fatalf("after = %+v", after.Phase)
		}
	})

	t.Run("ignored outside displayed", func(t *testing.T) {
		idle := NewState("")
		if next, intent := Apply(idle, SyncFocus{Desired: "X"}); intent != nil || next.Phase != PhaseIdle {
			t.Fatalf("sync from idle changed state")
		}
	})
}

func TestApply_Clear(t *testing.T) {
	phases := []struct {
		name  string
		setup func() (State, *FetchIntent)
	}{
		{
			name: "from idle",
			setup: func() (State, *FetchIntent) {
				return NewState("OpenAI"), nil
			},
		},
		{
			name: "from fetching",
			setup: func() (State, *FetchIntent) {
				s, intent := Apply(NewState("OpenAI"), SubmitQuery{Focus: "Anthropic", Mode: common.ModeDiscovery})
				return s, intent
			},
		},
		{
			name: "from displayed",
			setup: func() (State, *FetchIntent) {
				s, intent := Apply(NewState("OpenAI"), SubmitQuery{Focus: "Anthropic", Mode: common.ModeDiscovery})
				s, _ = Apply(s, FetchSucceeded{Seq: intent.Seq, Focus: intent.Focus, Result: result("Anthropic")})
				return s, intent
			},
		},
	}

	for _, tc := range phases {
		t.Run(tc.name, func(t *testing.T) {
			s, intent := tc.setup()
			cleared, fetch := Apply(s, Clear{})

			if fetch != nil {
				t.Fatalf("clear must not fetch")
			}
			if cleared.Phase != PhaseIdle || cleared.Graph != nil {
				t.Fatalf("cleared = %+v, want idle without graph", cleared.Phase)
			}
			if cleared.Focus != "OpenAI" {
				t.Errorf("focus = %q, want default", cleared.Focus)
			}
			if len(cleared.History) != 0 {
				t.Errorf("history = %v, want empty", cleared.History)
			}

			if intent != nil {
				// A completion from before the clear must be discarded.
				after, _ := Apply(cleared, FetchSucceeded{Seq: intent.Seq, Focus: intent.Focus, Result: result("Anthropic")})
				if after.Graph != nil || after.Phase != PhaseIdle {
					t.Fatalf("pre-clear completion applied")
				}
			}
		})
	}
}

func TestApply_HistoryRecordsDistinctCenters(t *testing.T) {
	s := NewState("")

	visit := func(focus, center string) {
		var intent *FetchIntent
		s, intent = Apply(s, SubmitQuery{Focus: focus, Mode: common.ModeDiscovery})
		s, _ = Apply(s, FetchSucceeded{Seq: intent.Seq, Focus: intent.Focus, Result: result(center)})
	}

	visit("openai", "OpenAI")
	visit("anthropic", "Anthropic")
	visit("OpenAI", "OpenAI")

	want := []string{"OpenAI", "Anthropic"}
	if len(s.History) != len(want) {
		t.Fatalf("history = %v, want %v", s.History, want)
	}
	for i := range want {
		if s.History[i] != want[i] {
			t.Fatalf("history = %v, want %v", s.History, want)
		}
	}
}
