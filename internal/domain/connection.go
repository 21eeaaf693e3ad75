package domain

import (
	"github.com/google/uuid"

	"nodework/internal/geometry"
)

// Connection wires an output socket to an input socket.
//
// P0 and P1 are the rendered end points in world space. A dragged connection
// has an empty To and a P1 that follows the cursor.
type Connection struct {
	ID      string          `json:"id"`
	P0      geometry.Vector `json:"p0"`
	P1      geometry.Vector `json:"p1"`
	From    string          `json:"from"`
	To      string          `json:"to"`
	Payload string          `json:"payload"`
	Dragged bool            `json:"dragged"`
}

// NewDraggedConnection starts a connection from an output socket at p0
func NewDraggedConnection(from string, p0, cursor geometry.Vector) Connection {
	return Connection{
		ID:      uuid.NewString(),
		P0:      p0,
		P1:      cursor,
		From:    from,
		Dragged: true,
	}
}

// Finalized reports whether the connection is attached at both ends
func (c Connection) Finalized() bool {
	return !c.Dragged && c.To != ""
}

// FromNode returns the id of the source node
func (c Connection) FromNode() string {
	return NodeIDFromSocket(c.From)
}

// ToNode returns the id of the target node, or "" while dragged
func (c Connection) ToNode() string {
	if c.To == "" {
		return ""
	}
	return NodeIDFromSocket(c.To)
}

// Touches reports whether either end belongs to one of the given nodes
func (c Connection) Touches(nodeIDs map[string]bool) bool {
	if nodeIDs[c.FromNode()] {
		return true
	}
	to := c.ToNode()
	return to != "" && nodeIDs[to]
}

// Unique drops every connection superseded by a later one with the same
// target input. Connections without a target are kept. The relative order
// of the survivors is preserved.
func Unique(conns []Connection) []Connection {
	last := make(map[string]int, len(conns))
	for i, c := range conns {
		if c.To != "" {
			last[c.To] = i
		}
	}

	out := make([]Connection, 0, len(conns))
	for i, c := range conns {
		if c.To != "" && last[c.To] != i {
			continue
		}
		out = append(out, c)
	}
	return out
}
