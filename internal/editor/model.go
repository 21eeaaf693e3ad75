package editor

import (
	"maps"
	"slices"

	"go.uber.org/zap"

	"nodework/internal/dag"
	"nodework/internal/domain"
	"nodework/internal/geometry"
	"nodework/internal/library"
	"nodework/internal/viewport"
)

// Mode is the canvas interaction mode
type Mode int

const (
	ModeNormal Mode = iota
	// ModeDrag pans the canvas while the pointer moves
	ModeDrag
)

func (m Mode) String() string {
	if m == ModeDrag {
		return "DRAG"
	}
	return "NORMAL"
}

// Menu is the spawn menu; Position is in world space
type Menu struct {
	Open     bool            `json:"open"`
	Position geometry.Vector `json:"position"`
}

// Model is the whole editor state. Update never mutates a Model it is given.
type Model struct {
	Library *library.Library `json:"-"`
	Graph   domain.Graph     `json:"graph"`
	// Selected holds the ids of selected nodes
	Selected map[string]bool `json:"selected"`

	Window  geometry.Vector  `json:"window"`
	ViewBox viewport.ViewBox `json:"viewbox"`
	Limits  viewport.Limits  `json:"-"`

	// Cursor is the pointer position scaled by zoom but not yet panned;
	// CursorWorld adds the pan offset.
	Cursor      geometry.Vector `json:"cursor"`
	LastClicked geometry.Vector `json:"last_clicked"`
	MouseDown   bool            `json:"mouse_down"`
	Mode        Mode            `json:"mode"`
	Menu        Menu            `json:"menu"`

	DAG    *dag.Graph    `json:"-"`
	Output library.Value `json:"output"`
	// Rejected lists the connections dropped by the last resync to keep the
	// graph acyclic
	Rejected []string `json:"-"`

	logger *zap.Logger
}

// New creates an empty editor for the given window size
func New(lib *library.Library, window geometry.Vector, limits viewport.Limits, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := Model{
		Library:  lib,
		Graph:    domain.NewGraph(),
		Selected: make(map[string]bool),
		Window:   window,
		ViewBox:  viewport.New(window),
		Limits:   limits,
		Mode:     ModeNormal,
		Output:   library.NoOutput,
		logger:   logger,
	}
	return m.resync()
}

// WithGraph replaces nodes and connections, dropping anything that does not
// fit (unknown sockets, duplicate targets, cycles), and re-evaluates.
func (m Model) WithGraph(g domain.Graph) Model {
	m = m.clone()
	m.Graph = g.Clone()
	m.Selected = make(map[string]bool)
	m.Menu = Menu{}
	m.MouseDown = false
	m.Mode = ModeNormal
	m.Graph.Connections = domain.Unique(finalizedOnly(m.Graph.Connections))
	m.Graph.Prune()
	for i, c := range m.Graph.Connections {
		target, _ := m.Graph.Node(c.ToNode())
		if in, ok := target.Input(c.To); ok {
			c.Payload = in.Label
			m.Graph.Connections[i] = c
		}
	}
	m = m.hoverInput("").hoverOutput("").resync()
	return m.withEndpoints()
}

// WithViewBox restores a saved view box, clamping zoom to the model limits
func (m Model) WithViewBox(vb viewport.ViewBox) Model {
	m = m.clone()
	vb.Zoom = m.Limits.ClampZoom(vb.Zoom)
	vb.Offset = vb.Offset.Bounded(m.Limits.PanLimit)
	m.ViewBox = vb.Resize(m.Window)
	return m
}

// WithLogger returns a copy that logs diagnostics to logger
func (m Model) WithLogger(logger *zap.Logger) Model {
	m.logger = logger
	return m
}

// CursorWorld is the cursor in world space
func (m Model) CursorWorld() geometry.Vector {
	return m.ViewBox.Translate(m.Cursor)
}

// SelectedIDs returns the selected node ids in spawn order
func (m Model) SelectedIDs() []string {
	var ids []string
	for _, id := range m.Graph.NodeIDs() {
		if m.Selected[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

// HoveredInput returns the hovered input socket and its node, if any
func (m Model) HoveredInput() (domain.Node, domain.Input, bool) {
	for _, n := range m.Graph.Nodes {
		if in, ok := n.HoveredInput(); ok {
			return n, in, true
		}
	}
	return domain.Node{}, domain.Input{}, false
}

func (m Model) log() *zap.Logger {
	if m.logger == nil {
		return zap.NewNop()
	}
	return m.logger
}

func (m Model) clone() Model {
	m.Graph = m.Graph.Clone()
	m.Selected = maps.Clone(m.Selected)
	if m.Selected == nil {
		m.Selected = make(map[string]bool)
	}
	m.Rejected = slices.Clone(m.Rejected)
	return m
}

func finalizedOnly(conns []domain.Connection) []domain.Connection {
	out := make([]domain.Connection, 0, len(conns))
	for _, c := range conns {
		if c.Finalized() {
			out = append(out, c)
		}
	}
	return out
}
