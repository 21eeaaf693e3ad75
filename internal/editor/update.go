package editor

import (
	"slices"

	"go.uber.org/zap"

	"nodework/internal/domain"
	"nodework/internal/geometry"
	"nodework/internal/library"
	"nodework/internal/viewport"
)

// Update applies one action and returns the next model. The given model is
// left untouched.
func Update(m Model, a Action) Model {
	m = m.clone()

	switch a := a.(type) {
	case PointerMoved:
		return m.pointerMoved(a.Position)
	case PointerReleased:
		return m.pointerReleased()
	case CanvasPressed:
		return m.canvasPressed(a.Shift)
	case CanvasReleased:
		m.Mode = ModeNormal
		return m
	case NodePressed:
		return m.nodePressed(a.NodeID, a.Shift)
	case NodeReleased:
		m.MouseDown = false
		return m
	case OutputPressed:
		return m.outputPressed(a.NodeID)
	case ConnectionPressed:
		return m.connectionPressed(a.ConnectionID)
	case InputHovered:
		return m.hoverInput(a.SocketID)
	case InputUnhovered:
		return m.hoverInput("")
	case OutputHovered:
		return m.hoverOutput(a.SocketID)
	case OutputUnhovered:
		return m.hoverOutput("")
	case KeyPressed:
		return m.keyPressed(a.Key)
	case MenuItemClicked:
		return m.spawn(a.Key)
	case Scrolled:
		m.ViewBox = m.ViewBox.UpdateZoom(a.DeltaY, m.Window, m.Limits)
		return m.withEndpoints()
	case WindowResized:
		m.Window = geometry.New(a.Width, a.Height)
		m.ViewBox = m.ViewBox.Resize(m.Window)
		return m
	case SetDragMode:
		m.Mode = ModeDrag
		return m
	case SetNormalMode:
		m.Mode = ModeNormal
		return m
	case ClearSelection:
		m.Selected = make(map[string]bool)
		return m
	case AddNodeToSelection:
		if _, ok := m.Graph.Node(a.NodeID); ok {
			m.Selected[a.NodeID] = true
		}
		return m
	case SetNodeAsSelection:
		m.Selected = make(map[string]bool)
		if _, ok := m.Graph.Node(a.NodeID); ok {
			m.Selected[a.NodeID] = true
		}
		return m
	default:
		m.log().Warn("unhandled action", zap.Any("action", a))
		return m
	}
}

func (m Model) pointerMoved(screen geometry.Vector) Model {
	m.Cursor = m.ViewBox.Scale(screen)

	if m.Mode == ModeDrag {
		offset := viewport.BoundedOffset(m.LastClicked, m.Cursor, m.Limits.PanLimit)
		m.ViewBox = m.ViewBox.WithOffset(offset)
	}

	if m.MouseDown {
		cursor := m.CursorWorld()
		for id := range m.Selected {
			m.Graph.UpdateNode(id, func(n domain.Node) domain.Node {
				n.Position = cursor.Add(n.DragOffset)
				return n
			})
		}
	}

	return m.withEndpoints()
}

func (m Model) canvasPressed(shift bool) Model {
	m.Menu.Open = false
	m.LastClicked = m.CursorWorld()
	if shift {
		m.Mode = ModeDrag
	} else {
		m.Selected = make(map[string]bool)
	}
	return m
}

func (m Model) nodePressed(id string, shift bool) Model {
	if _, ok := m.Graph.Node(id); !ok {
		return m
	}

	m.Menu.Open = false
	m.MouseDown = true
	if !shift {
		m.Selected = make(map[string]bool)
	}
	m.Selected[id] = true

	cursor := m.CursorWorld()
	for i, n := range m.Graph.Nodes {
		n.DragOffset = n.Position.Sub(cursor)
		m.Graph.Nodes[i] = n
	}
	return m
}

func (m Model) outputPressed(nodeID string) Model {
	n, ok := m.Graph.Node(nodeID)
	if !ok {
		return m
	}

	m.Menu.Open = false
	c := domain.NewDraggedConnection(n.Output.ID, n.OutputAt(), m.CursorWorld())
	m.Graph.Connections = append(m.Graph.Connections, c)
	return m
}

func (m Model) connectionPressed(id string) Model {
	m.Menu.Open = false

	for i, c := range m.Graph.Connections {
		if c.ID != id {
			continue
		}
		c.To = ""
		c.Payload = ""
		c.Dragged = true
		c.P1 = m.CursorWorld()
		m.Graph.Connections[i] = c
		return m.resync()
	}
	return m
}

// pointerReleased finalizes every dragged connection onto the hovered input
// when that input belongs to a different node, and discards the rest.
func (m Model) pointerReleased() Model {
	m.MouseDown = false

	target, in, hovered := m.HoveredInput()

	var kept, finalized []domain.Connection
	dragging := false
	for _, c := range m.Graph.Connections {
		if !c.Dragged {
			kept = append(kept, c)
			continue
		}
		dragging = true
		if !hovered || target.ID == c.FromNode() {
			continue
		}
		c.To = in.ID
		c.Payload = in.Label
		c.Dragged = false
		finalized = append(finalized, c)
	}
	if !dragging {
		return m
	}

	next := m
	next.Graph.Connections = domain.Unique(append(slices.Clone(kept), finalized...))
	next = next.resync()
	if len(next.Rejected) == 0 {
		return next.withEndpoints()
	}

	// a released wire closed a cycle: refuse the release as a whole so the
	// wires it would have superseded survive
	m.Graph.Connections = kept
	m = m.resync()
	m.Rejected = make([]string, 0, len(finalized))
	for _, c := range finalized {
		m.log().Warn("connection would close a cycle, refusing it",
			zap.String("connection", c.ID),
			zap.String("from", c.From),
			zap.String("to", c.To))
		m.Rejected = append(m.Rejected, c.ID)
	}
	return m.withEndpoints()
}

func (m Model) hoverInput(socketID string) Model {
	for i, n := range m.Graph.Nodes {
		for j := range n.Inputs {
			n.Inputs[j].Hovered = socketID != "" && n.Inputs[j].ID == socketID
		}
		m.Graph.Nodes[i] = n
	}
	return m
}

func (m Model) hoverOutput(socketID string) Model {
	for i, n := range m.Graph.Nodes {
		n.Output.Hovered = socketID != "" && n.Output.ID == socketID
		m.Graph.Nodes[i] = n
	}
	return m
}

func (m Model) keyPressed(key string) Model {
	switch key {
	case "a":
		m.Menu = Menu{Open: true, Position: m.CursorWorld()}
		return m
	case "Backspace", "Delete":
		return m.deleteSelected()
	default:
		return m
	}
}

func (m Model) deleteSelected() Model {
	if len(m.Selected) == 0 {
		return m
	}
	m.Graph.RemoveNodes(m.Selected)
	m.Selected = make(map[string]bool)
	m.MouseDown = false
	return m.resync()
}

// spawn places a node for key at the menu position. An unknown key only
// closes the menu.
func (m Model) spawn(key string) Model {
	position := m.Menu.Position
	m.Menu.Open = false

	def, err := m.Library.Lookup(key)
	if err != nil {
		m.log().Warn("cannot spawn node", zap.String("key", key), zap.Error(err))
		return m
	}

	n := domain.NewNode(domain.NewNodeID(def), def, position)
	m.Graph.PutNode(n)
	return m.resync().withEndpoints()
}

// Definitions lists the spawn menu entries
func (m Model) Definitions() []library.Definition {
	return m.Library.Definitions()
}
