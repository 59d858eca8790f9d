// Package session owns the navigation state machine: a single session's
// focus, graph, and fetch lifecycle. Transitions are pure functions over
// a State value plus a side-effect intent; all I/O lives in Manager.
package session

import (
	"errors"

	"github.com/doublelucky/compass/pkg/common"
	"github.com/doublelucky/compass/pkg/graph"
)

// Phase is the navigation state machine's current state.
type Phase string

const (
	// PhaseIdle: no graph, no pending fetch.
	PhaseIdle Phase = "idle"
	// PhaseFetching: a fetch is in flight, no graph shown.
	PhaseFetching Phase = "fetching"
	// PhaseDisplayed: a graph is present and no fetch is pending.
	PhaseDisplayed Phase = "displayed"
	// PhaseStale: a graph is present but the focus no longer matches its
	// center; a fetch has been requested before it may be displayed again.
	PhaseStale Phase = "stale"
)

// State is the complete session value threaded through Apply. It is
// never mutated in place; Apply returns the successor value.
type State struct {
	Phase   Phase
	Focus   string
	Mode    common.QueryMode
	Filters common.FilterSet

	// Graph is the currently displayable graph (Displayed and Stale).
	Graph *graph.Graph

	// lastGood retains the previous graph across a fetch so a malformed
	// reply can fall back to it instead of leaving nothing.
	lastGood *graph.Graph

	// fetchSeq identifies the only fetch whose completion will be
	// applied; completions carrying an older seq are discarded.
	fetchSeq   uint64
	fetchFocus string

	// History records each distinct canonical center name once, in
	// first-visit order.
	History []string

	DefaultFocus string
	LastError    string
}

// NewState returns an Idle state with the given default focus.
func NewState(defaultFocus string) State {
	return State{
		Phase:        PhaseIdle,
		Focus:        defaultFocus,
		Mode:         common.ModeDiscovery,
		Filters:      common.DefaultFilters(),
		DefaultFocus: defaultFocus,
	}
}

// FetchIntent asks the surrounding runtime to issue one analysis fetch.
// Seq ties the eventual completion back to the state that requested it.
type FetchIntent struct {
	Seq     uint64
	Focus   string
	Mode    common.QueryMode
	Filters common.FilterSet
}

// Action is a user action or fetch completion fed into Apply.
type Action interface {
	isAction()
}

// SubmitQuery sets a new focus and starts a fetch, discarding the
// displayed graph so a stale subject is never shown while scoring.
type SubmitQuery struct {
	Focus   string
	Mode    common.QueryMode
	Filters common.FilterSet
}

// SelectNode is a click on a node of the displayed graph. A non-center
// node re-centers the session on it; the center is display-only.
type SelectNode struct {
	Name graph.NodeName
}

// FetchSucceeded delivers the parsed result of the fetch issued with Seq.
type FetchSucceeded struct {
	Seq    uint64
	Focus  string
	Result *common.AnalysisResult
}

// FetchFailed delivers the failure of the fetch issued with Seq.
type FetchFailed struct {
	Seq   uint64
	Focus string
	Err   error
}

// SyncFocus reports the externally observed desired focus; a mismatch
// with the displayed center marks the graph stale and requests a fetch.
type SyncFocus struct {
	Desired string
}

// Clear resets the session to Idle and its default focus.
type Clear struct{}

func (SubmitQuery) isAction()    {}
func (SelectNode) isAction()     {}
func (FetchSucceeded) isAction() {}
func (FetchFailed) isAction()    {}
func (SyncFocus) isAction()      {}
func (Clear) isAction()          {}

// Apply computes the successor state for one action. A non-nil
// FetchIntent instructs the caller to issue exactly one fetch; Apply
// itself performs no I/O.
func Apply(s State, a Action) (State, *FetchIntent) {
	switch act := a.(type) {
	case SubmitQuery:
		return s.startFetch(act.Focus, act.Mode, act.Filters, PhaseFetching)

	case SelectNode:
		if s.Graph == nil || !s.Graph.HasNode(act.Name) {
			return s, nil
		}
		if act.Name == s.Graph.CenterName() {
			// Display selection only; resolution happens on read.
			return s, nil
		}
		// Click-to-re-center always restarts in discovery mode: the
		// clicked entity is a subject name, not a resume or scenario.
		return s.startFetch(string(act.Name), common.ModeDiscovery, s.Filters, PhaseFetching)

	case FetchSucceeded:
		if !s.acceptsFetch(act.Seq, act.Focus) {
			return s, nil
		}
		g, err := graph.Synthesize(act.Result)
		if err != nil {
			return s.failFetch(&common.MalformedResponseError{Err: err}), nil
		}
		s.Graph = g
		s.lastGood = nil
		s.Phase = PhaseDisplayed
		s.LastError = ""
		// The service may canonicalize the query; its name wins.
		if center := act.Result.Center.Name; center != s.Focus {
			s.Focus = center
		}
		s.History = appendOnce(s.History, act.Result.Center.Name)
		return s, nil

	case FetchFailed:
		if !s.acceptsFetch(act.Seq, act.Focus) {
			return s, nil
		}
		return s.failFetch(act.Err), nil

	case SyncFocus:
		if s.Phase != PhaseDisplayed || s.Graph == nil {
			return s, nil
		}
		if act.Desired == "" || act.Desired == string(s.Graph.CenterName()) {
			return s, nil
		}
		return s.startFetch(act.Desired, s.Mode, s.Filters, PhaseStale)

	case Clear:
		cleared := NewState(s.DefaultFocus)
		// Invalidate any in-flight fetch so its completion is discarded.
		cleared.fetchSeq = s.fetchSeq + 1
		return cleared, nil
	}

	return s, nil
}

func (s State) startFetch(focus string, mode common.QueryMode, filters common.FilterSet, phase Phase) (State, *FetchIntent) {
	s.Focus = focus
	s.Mode = mode
	s.Filters = filters
	if s.Graph != nil {
		s.lastGood = s.Graph
	}
	if phase != PhaseStale {
		s.Graph = nil
	}
	s.Phase = phase
	s.LastError = ""
	s.fetchSeq++
	s.fetchFocus = focus

	return s, &FetchIntent{
		Seq:     s.fetchSeq,
		Focus:   focus,
		Mode:    mode,
		Filters: filters,
	}
}

// acceptsFetch reports whether a completion belongs to the in-flight
// fetch: stale-response suppression discards any completion whose seq or
// originating focus has been superseded.
func (s State) acceptsFetch(seq uint64, focus string) bool {
	if s.Phase != PhaseFetching && s.Phase != PhaseStale {
		return false
	}
	return seq == s.fetchSeq && focus == s.fetchFocus
}

func (s State) failFetch(err error) State {
	s.LastError = errMessage(err)

	// A malformed reply keeps the last good graph on display instead of
	// clearing it; everything else falls back to Idle.
	var me *common.MalformedResponseError
	if errors.As(err, &me) && s.lastGood != nil {
		s.Graph = s.lastGood
		s.lastGood = nil
		s.Focus = s.Graph.Center.Name
		s.Phase = PhaseDisplayed
		return s
	}

	s.Graph = nil
	s.lastGood = nil
	s.Phase = PhaseIdle
	return s
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func appendOnce(history []string, name string) []string {
	for _, h := range history {
		if h == name {
			return history
		}
	}
	return append(history, name)
}
