package editor

import "nodework/internal/geometry"

// Action is a semantic user action decoded from a raw UI event.
// The set of actions is closed; Update switches over every implementation.
type Action interface {
	// Kind is the wire name of the action
	Kind() string
	action()
}

// Action kinds
const (
	KindPointerMoved       = "pointer_moved"
	KindPointerReleased    = "pointer_released"
	KindCanvasPressed      = "canvas_pressed"
	KindCanvasReleased     = "canvas_released"
	KindNodePressed        = "node_pressed"
	KindNodeReleased       = "node_released"
	KindOutputPressed      = "output_pressed"
	KindConnectionPressed  = "connection_pressed"
	KindInputHovered       = "input_hovered"
	KindInputUnhovered     = "input_unhovered"
	KindOutputHovered      = "output_hovered"
	KindOutputUnhovered    = "output_unhovered"
	KindKeyPressed         = "key_pressed"
	KindMenuItemClicked    = "menu_item_clicked"
	KindScrolled           = "scrolled"
	KindWindowResized      = "window_resized"
	KindSetDragMode        = "set_drag_mode"
	KindSetNormalMode      = "set_normal_mode"
	KindClearSelection     = "clear_selection"
	KindAddNodeToSelection = "add_node_to_selection"
	KindSetNodeAsSelection = "set_node_as_selection"
)

// PointerMoved carries the pointer position in screen space
type PointerMoved struct{ Position geometry.Vector }

// PointerReleased is the global pointer-up
type PointerReleased struct{}

// CanvasPressed is a pointer-down on empty canvas
type CanvasPressed struct{ Shift bool }

// CanvasReleased is a pointer-up on the canvas
type CanvasReleased struct{}

// NodePressed is a pointer-down on a node body
type NodePressed struct {
	NodeID string
	Shift  bool
}

// NodeReleased is a pointer-up on a node body
type NodeReleased struct{ NodeID string }

// OutputPressed is a pointer-down on a node's output socket
type OutputPressed struct{ NodeID string }

// ConnectionPressed is a pointer-down on an existing wire
type ConnectionPressed struct{ ConnectionID string }

// InputHovered marks an input socket as hovered
type InputHovered struct{ SocketID string }

// InputUnhovered clears every input hover
type InputUnhovered struct{}

// OutputHovered marks an output socket as hovered
type OutputHovered struct{ SocketID string }

// OutputUnhovered clears every output hover
type OutputUnhovered struct{}

// KeyPressed carries a key name as reported by the browser ("a", "Delete")
type KeyPressed struct{ Key string }

// MenuItemClicked spawns a node for a library key
type MenuItemClicked struct{ Key string }

// Scrolled carries the wheel delta
type Scrolled struct{ DeltaY float64 }

// WindowResized carries the new window size
type WindowResized struct{ Width, Height int }

type SetDragMode struct{}
type SetNormalMode struct{}
type ClearSelection struct{}
type AddNodeToSelection struct{ NodeID string }
type SetNodeAsSelection struct{ NodeID string }

func (PointerMoved) Kind() string       { return KindPointerMoved }
func (PointerReleased) Kind() string    { return KindPointerReleased }
func (CanvasPressed) Kind() string      { return KindCanvasPressed }
func (CanvasReleased) Kind() string     { return KindCanvasReleased }
func (NodePressed) Kind() string        { return KindNodePressed }
func (NodeReleased) Kind() string       { return KindNodeReleased }
func (OutputPressed) Kind() string      { return KindOutputPressed }
func (ConnectionPressed) Kind() string  { return KindConnectionPressed }
func (InputHovered) Kind() string       { return KindInputHovered }
func (InputUnhovered) Kind() string     { return KindInputUnhovered }
func (OutputHovered) Kind() string      { return KindOutputHovered }
func (OutputUnhovered) Kind() string    { return KindOutputUnhovered }
func (KeyPressed) Kind() string         { return KindKeyPressed }
func (MenuItemClicked) Kind() string    { return KindMenuItemClicked }
func (Scrolled) Kind() string           { return KindScrolled }
func (WindowResized) Kind() string      { return KindWindowResized }
func (SetDragMode) Kind() string        { return KindSetDragMode }
func (SetNormalMode) Kind() string      { return KindSetNormalMode }
func (ClearSelection) Kind() string     { return KindClearSelection }
func (AddNodeToSelection) Kind() string { return KindAddNodeToSelection }
func (SetNodeAsSelection) Kind() string { return KindSetNodeAsSelection }

func (PointerMoved) action()       {}
func (PointerReleased) action()    {}
func (CanvasPressed) action()      {}
func (CanvasReleased) action()     {}
func (NodePressed) action()        {}
func (NodeReleased) action()       {}
func (OutputPressed) action()      {}
func (ConnectionPressed) action()  {}
func (InputHovered) action()       {}
func (InputUnhovered) action()     {}
func (OutputHovered) action()      {}
func (OutputUnhovered) action()    {}
func (KeyPressed) action()         {}
func (MenuItemClicked) action()    {}
func (Scrolled) action()           {}
func (WindowResized) action()      {}
func (SetDragMode) action()        {}
func (SetNormalMode) action()      {}
func (ClearSelection) action()     {}
func (AddNodeToSelection) action() {}
func (SetNodeAsSelection) action() {}
