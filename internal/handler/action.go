package handler

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"nodework/internal/editor"
	"nodework/internal/geometry"
)

var validate = validator.New()

// ActionRequest is the wire form of an editor action. Only the fields the
// action type needs are read.
type ActionRequest struct {
	Type         string  `json:"type" validate:"required,oneof=pointer_moved pointer_released canvas_pressed canvas_released node_pressed node_released output_pressed connection_pressed input_hovered input_unhovered output_hovered output_unhovered key_pressed menu_item_clicked scrolled window_resized set_drag_mode set_normal_mode clear_selection add_node_to_selection set_node_as_selection"`
	NodeID       string  `json:"node_id,omitempty"`
	SocketID     string  `json:"socket_id,omitempty"`
	ConnectionID string  `json:"connection_id,omitempty"`
	X            int     `json:"x,omitempty"`
	Y            int     `json:"y,omitempty"`
	Shift        bool    `json:"shift,omitempty"`
	DeltaY       float64 `json:"delta_y,omitempty"`
	Key          string  `json:"key,omitempty"`
	Width        int     `json:"width,omitempty" validate:"gte=0"`
	Height       int     `json:"height,omitempty" validate:"gte=0"`
}

// Validate checks the request and that the fields its type needs are set
func (req ActionRequest) Validate() error {
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	var missing string
	switch req.Type {
	case editor.KindNodePressed, editor.KindNodeReleased, editor.KindOutputPressed,
		editor.KindAddNodeToSelection, editor.KindSetNodeAsSelection:
		if req.NodeID == "" {
			missing = "node_id"
		}
	case editor.KindConnectionPressed:
		if req.ConnectionID == "" {
			missing = "connection_id"
		}
	case editor.KindInputHovered, editor.KindOutputHovered:
		if req.SocketID == "" {
			missing = "socket_id"
		}
	case editor.KindKeyPressed, editor.KindMenuItemClicked:
		if req.Key == "" {
			missing = "key"
		}
	case editor.KindWindowResized:
		if req.Width == 0 || req.Height == 0 {
			missing = "width and height"
		}
	}
	if missing != "" {
		return fmt.Errorf("%s required for %s", missing, req.Type)
	}
	return nil
}

// Action converts a validated request into an editor action
func (req ActionRequest) Action() editor.Action {
	switch req.Type {
	case editor.KindPointerMoved:
		return editor.PointerMoved{Position: geometry.New(req.X, req.Y)}
	case editor.KindPointerReleased:
		return editor.PointerReleased{}
	case editor.KindCanvasPressed:
		return editor.CanvasPressed{Shift: req.Shift}
	case editor.KindCanvasReleased:
		return editor.CanvasReleased{}
	case editor.KindNodePressed:
		return editor.NodePressed{NodeID: req.NodeID, Shift: req.Shift}
	case editor.KindNodeReleased:
		return editor.NodeReleased{NodeID: req.NodeID}
	case editor.KindOutputPressed:
		return editor.OutputPressed{NodeID: req.NodeID}
	case editor.KindConnectionPressed:
		return editor.ConnectionPressed{ConnectionID: req.ConnectionID}
	case editor.KindInputHovered:
		return editor.InputHovered{SocketID: req.SocketID}
	case editor.KindInputUnhovered:
		return editor.InputUnhovered{}
	case editor.KindOutputHovered:
		return editor.OutputHovered{SocketID: req.SocketID}
	case editor.KindOutputUnhovered:
		return editor.OutputUnhovered{}
	case editor.KindKeyPressed:
		return editor.KeyPressed{Key: req.Key}
	case editor.KindMenuItemClicked:
		return editor.MenuItemClicked{Key: req.Key}
	case editor.KindScrolled:
		return editor.Scrolled{DeltaY: req.DeltaY}
	case editor.KindWindowResized:
		return editor.WindowResized{Width: req.Width, Height: req.Height}
	case editor.KindSetDragMode:
		return editor.SetDragMode{}
	case editor.KindSetNormalMode:
		return editor.SetNormalMode{}
	case editor.KindClearSelection:
		return editor.ClearSelection{}
	case editor.KindAddNodeToSelection:
		return editor.AddNodeToSelection{NodeID: req.NodeID}
	case editor.KindSetNodeAsSelection:
		return editor.SetNodeAsSelection{NodeID: req.NodeID}
	default:
		return nil
	}
}

// formatValidationError formats validation errors into readable messages
func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, formatFieldError(e))
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return err
}

// formatFieldError formats a single field validation error
func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s %q is not a known action", field, e.Value())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
