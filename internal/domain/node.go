package domain

import (
	"slices"

	"github.com/google/uuid"

	"nodework/internal/geometry"
	"nodework/internal/library"
)

// OutputNodeID is the reserved id of the graph sink
const OutputNodeID = "node-output"

// Input is an input socket
type Input struct {
	ID       string          `json:"id"`
	Label    string          `json:"label"`
	Position geometry.Vector `json:"position"`
	Hovered  bool            `json:"hovered"`
}

// Output is the output socket of a node
type Output struct {
	ID       string          `json:"id"`
	Position geometry.Vector `json:"position"`
	Hovered  bool            `json:"hovered"`
}

// Node is a library definition placed on the canvas
type Node struct {
	ID       string          `json:"id"`
	Key      string          `json:"key"`
	Label    string          `json:"label"`
	Inputs   []Input         `json:"inputs"`
	Output   Output          `json:"output"`
	Position geometry.Vector `json:"position"`
	// DragOffset is Position minus the cursor at the moment a drag started
	DragOffset geometry.Vector `json:"drag_offset"`
}

// NewNodeID picks the id for a node spawned from def: the reserved sink id
// for output definitions, a random one otherwise.
func NewNodeID(def library.Definition) string {
	if library.IsOutput(def) {
		return OutputNodeID
	}
	return uuid.NewString()
}

// NewNode creates a node for def at position, with one input socket per
// declared input name in declaration order.
func NewNode(id string, def library.Definition, position geometry.Vector) Node {
	names := def.Inputs()
	inputs := make([]Input, len(names))
	for i, name := range names {
		inputs[i] = Input{
			ID:       InputID(id, i),
			Label:    name,
			Position: InputPosition(i),
		}
	}

	return Node{
		ID:     id,
		Key:    def.Key(),
		Label:  def.Label(),
		Inputs: inputs,
		Output: Output{
			ID:       OutputID(id),
			Position: OutputPosition(),
		},
		Position: position,
	}
}

// Clone returns a deep copy
func (n Node) Clone() Node {
	n.Inputs = slices.Clone(n.Inputs)
	return n
}

// Input looks up one of the node's inputs by socket id
func (n Node) Input(socketID string) (Input, bool) {
	for _, in := range n.Inputs {
		if in.ID == socketID {
			return in, true
		}
	}
	return Input{}, false
}

// InputAt returns the world position of an input socket
func (n Node) InputAt(in Input) geometry.Vector {
	return n.Position.Add(in.Position)
}

// OutputAt returns the world position of the output socket
func (n Node) OutputAt() geometry.Vector {
	return n.Position.Add(n.Output.Position)
}

// HoveredInput returns the node's hovered input, if any
func (n Node) HoveredInput() (Input, bool) {
	for _, in := range n.Inputs {
		if in.Hovered {
			return in, true
		}
	}
	return Input{}, false
}

// IsOutput reports whether n is the graph sink
func (n Node) IsOutput() bool {
	return n.ID == OutputNodeID
}
