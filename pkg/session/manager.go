package session

import (
	"context"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/doublelucky/compass/pkg/ai"
	"github.com/doublelucky/compass/pkg/common"
	"github.com/doublelucky/compass/pkg/graph"
	"github.com/doublelucky/compass/pkg/logger"
)

// Fetcher issues one analysis. Satisfied by analysis.Analyzer.
type Fetcher interface {
	Analyze(
		ctx context.Context,
		mode common.QueryMode,
		focus string,
		filters common.FilterSet,
	) (*common.AnalysisResult, error)
	Metrics() ai.ModelMetrics
	ResetMetrics()
}

// Manager owns one session's State and serializes every user action and
// fetch completion through it. The wrapped state is never handed out for
// mutation; Snapshot returns an immutable view for rendering.
type Manager struct {
	id      string
	fetcher Fetcher

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
}

// NewManagerParams defines the configuration parameters for creating a
// new Manager.
type NewManagerParams struct {
	Fetcher      Fetcher
	DefaultFocus string
}

// NewManager creates a session manager starting Idle at the default focus.
func NewManager(params NewManagerParams) *Manager {
	id, err := gonanoid.New()
	if err != nil {
		id = "session"
	}
	return &Manager{
		id:      id,
		fetcher: params.Fetcher,
		state:   NewState(params.DefaultFocus),
	}
}

// ID returns the session's identifier.
func (m *Manager) ID() string {
	return m.id
}

// SubmitQuery sets a new focus and starts a fetch.
func (m *Manager) SubmitQuery(focus string, mode common.QueryMode, filters common.FilterSet) Snapshot {
	return m.dispatch(SubmitQuery{Focus: focus, Mode: mode, Filters: filters})
}

// SelectNode handles a node click. Clicking a non-center node re-centers
// the session and starts a fetch; clicking the center only resolves its
// detail payload, returned alongside the unchanged snapshot.
func (m *Manager) SelectNode(name graph.NodeName) (Snapshot, *graph.DisplayPayload) {
	m.mu.Lock()
	if m.state.Graph != nil && name == m.state.Graph.CenterName() {
		payload := graph.Resolve(m.state.Graph, name)
		snap := m.snapshotLocked()
		m.mu.Unlock()
		return snap, &payload
	}
	m.mu.Unlock()

	return m.dispatch(SelectNode{Name: name}), nil
}

// SyncFocus applies the re-entry check against an externally observed
// desired focus.
func (m *Manager) SyncFocus(desired string) Snapshot {
	return m.dispatch(SyncFocus{Desired: desired})
}

// Clear resets the session to Idle immediately, even while a fetch is
// suspended; the in-flight result is discarded when it arrives.
func (m *Manager) Clear() Snapshot {
	return m.dispatch(Clear{})
}

// Selection resolves the detail payload for a node of the current graph.
func (m *Manager) Selection(name graph.NodeName) graph.DisplayPayload {
	m.mu.Lock()
	defer m.mu.Unlock()
	return graph.Resolve(m.state.Graph, name)
}

// Usage returns the accumulated model usage for this session.
func (m *Manager) Usage() ai.ModelMetrics {
	return m.fetcher.Metrics()
}

func (m *Manager) dispatch(a Action) Snapshot {
	m.mu.Lock()

	next, intent := Apply(m.state, a)
	m.state = next

	if intent != nil || isReset(a) {
		// A new fetch or a reset supersedes the in-flight one.
		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}
	}

	var fetchCtx context.Context
	if intent != nil {
		fetchCtx, m.cancel = context.WithCancel(context.Background())
	}
	snap := m.snapshotLocked()
	m.mu.Unlock()

	if intent != nil {
		go m.runFetch(fetchCtx, *intent)
	}
	return snap
}

func isReset(a Action) bool {
	_, ok := a.(Clear)
	return ok
}

func (m *Manager) runFetch(ctx context.Context, intent FetchIntent) {
	logger.Debug("[Session] Fetch started",
		"session", m.id, "focus", intent.Focus, "mode", intent.Mode, "seq", intent.Seq)

	result, err := m.fetcher.Analyze(ctx, intent.Mode, intent.Focus, intent.Filters)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		logger.Warn("[Session] Fetch failed",
			"session", m.id, "focus", intent.Focus, "err", err)
		m.state, _ = Apply(m.state, FetchFailed{Seq: intent.Seq, Focus: intent.Focus, Err: err})
		return
	}

	logger.Debug("[Session] Fetch succeeded",
		"session", m.id, "focus", intent.Focus, "center", result.Center.Name)
	m.state, _ = Apply(m.state, FetchSucceeded{Seq: intent.Seq, Focus: intent.Focus, Result: result})
}

// SnapshotGraph is the immutable render view of the current graph.
type SnapshotGraph struct {
	Center common.Center      `json:"center"`
	Nodes  []graph.RenderNode `json:"nodes"`
	Edges  []graph.Edge       `json:"edges"`
}

// Snapshot is an immutable view of the session for rendering.
type Snapshot struct {
	SessionID string           `json:"session_id"`
	Phase     Phase            `json:"phase"`
	Focus     string           `json:"focus"`
	Mode      common.QueryMode `json:"mode"`
	Filters   common.FilterSet `json:"filters"`
	Graph     *SnapshotGraph   `json:"graph,omitempty"`
	History   []string         `json:"history,omitempty"`
	LastError string           `json:"last_error,omitempty"`
}

// Snapshot returns the current immutable view of the session.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() Snapshot {
	snap := Snapshot{
		SessionID: m.id,
		Phase:     m.state.Phase,
		Focus:     m.state.Focus,
		Mode:      m.state.Mode,
		Filters:   m.state.Filters,
		History:   append([]string(nil), m.state.History...),
		LastError: m.state.LastError,
	}
	if g := m.state.Graph; g != nil && m.state.Phase == PhaseDisplayed {
		snap.Graph = &SnapshotGraph{
			Center: g.Center,
			Nodes:  g.RenderNodes(),
			Edges:  append([]graph.Edge(nil), g.Edges...),
		}
	}
	return snap
}
