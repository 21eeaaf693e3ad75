package view

import (
	"strconv"

	"nodework/internal/domain"
	"nodework/internal/editor"
	"nodework/internal/geometry"
)

const (
	socketRadius      = 10
	menuItemHeight    = 24
	menuWidth         = 160
	gridSmall         = 10
	gridLarge         = 100
	strokeHovered     = "3"
	strokeNotHovered  = "1"
	classSelectedNode = "node selected"
)

// Render builds the element tree for m. It is a pure function of the model.
func Render(m editor.Model) *Node {
	svg := El("svg",
		"class", "graph",
		"viewBox", m.ViewBox.Attr(),
		"width", itoa(m.Window.X),
		"height", itoa(m.Window.Y),
	).
		On("mousedown", Handler{Type: editor.KindCanvasPressed}).
		On("mouseup", Handler{Type: editor.KindCanvasReleased}).
		On("mousemove", Handler{Type: editor.KindPointerMoved}).
		On("wheel", Handler{Type: editor.KindScrolled})

	svg.Append(
		grid(m.Limits.PanLimit, m.Window),
		connections(m),
		nodes(m),
		menu(m),
	)

	return El("div", "class", "nodework", "tabindex", "0").
		On("keydown", Handler{Type: editor.KindKeyPressed}).
		Append(
			svg,
			El("div", "class", "mode").Append(Text(m.Mode.String())),
			El("div", "class", "output-value").Append(Text("Output: "+m.Output.String())),
		)
}

func grid(limit int, window geometry.Vector) *Node {
	small := El("pattern", "id", "smallGrid", "width", itoa(gridSmall), "height", itoa(gridSmall), "patternUnits", "userSpaceOnUse").
		Append(El("path", "d", "M "+itoa(gridSmall)+" 0 L 0 0 0 "+itoa(gridSmall), "fill", "none", "stroke", "gray", "stroke-width", "0.5"))
	large := El("pattern", "id", "grid", "width", itoa(gridLarge), "height", itoa(gridLarge), "patternUnits", "userSpaceOnUse").
		Append(
			El("rect", "width", itoa(gridLarge), "height", itoa(gridLarge), "fill", "url(#smallGrid)"),
			El("path", "d", "M "+itoa(gridLarge)+" 0 L 0 0 0 "+itoa(gridLarge), "fill", "none", "stroke", "gray", "stroke-width", "1"),
		)

	// cover every point the view box can reach
	extent := window.Scale(3).Add(geometry.New(2*limit, 2*limit))
	return El("g", "class", "grid").Append(
		El("defs").Append(small, large),
		El("rect",
			"x", itoa(-limit), "y", itoa(-limit),
			"width", itoa(extent.X), "height", itoa(extent.Y),
			"fill", "url(#grid)"),
	)
}

func connections(m editor.Model) *Node {
	g := El("g", "class", "connections")
	for _, c := range m.Graph.Connections {
		class := "connection"
		if c.Dragged {
			class += " dragged"
		}
		line := El("line",
			"id", c.ID,
			"class", class,
			"x1", itoa(c.P0.X), "y1", itoa(c.P0.Y),
			"x2", itoa(c.P1.X), "y2", itoa(c.P1.Y),
			"stroke", "black", "stroke-width", "3",
		).On("mousedown", Handler{Type: editor.KindConnectionPressed, ConnectionID: c.ID})
		if c.Payload != "" {
			line.Attrs["data-payload"] = c.Payload
		}
		g.Append(line)
	}
	return g
}

func nodes(m editor.Model) *Node {
	g := El("g", "class", "nodes")
	for _, n := range m.Graph.Nodes {
		g.Append(node(n, m.Selected[n.ID]))
	}
	return g
}

func node(n domain.Node, selected bool) *Node {
	class := "node"
	stroke := "black"
	if selected {
		class = classSelectedNode
		stroke = "red"
	}

	group := El("g", "id", n.ID, "class", class, "transform", n.Position.SVG(geometry.Translate))

	body := El("rect",
		"class", "node-body",
		"width", itoa(domain.NodeWidth), "height", itoa(domain.NodeHeight),
		"rx", "8", "fill", "white", "stroke", stroke,
	).
		On("mousedown", Handler{Type: editor.KindNodePressed, NodeID: n.ID}).
		On("mouseup", Handler{Type: editor.KindNodeReleased, NodeID: n.ID})

	group.Append(body, El("text", "class", "node-label", "x", "10", "y", "24").Append(Text(n.Label)))

	for _, in := range n.Inputs {
		group.Append(
			El("circle",
				"id", in.ID,
				"class", "socket input",
				"cx", itoa(in.Position.X), "cy", itoa(in.Position.Y),
				"r", itoa(socketRadius),
				"fill", "white", "stroke", "black", "stroke-width", strokeWidth(in.Hovered),
			).
				On("mouseenter", Handler{Type: editor.KindInputHovered, SocketID: in.ID}).
				On("mouseleave", Handler{Type: editor.KindInputUnhovered}),
			El("text", "class", "socket-label", "x", itoa(in.Position.X+socketRadius+4), "y", itoa(in.Position.Y+4)).
				Append(Text(in.Label)),
		)
	}

	group.Append(
		El("circle",
			"id", n.Output.ID,
			"class", "socket output",
			"cx", itoa(n.Output.Position.X), "cy", itoa(n.Output.Position.Y),
			"r", itoa(socketRadius),
			"fill", "white", "stroke", "black", "stroke-width", strokeWidth(n.Output.Hovered),
		).
			On("mousedown", Handler{Type: editor.KindOutputPressed, NodeID: n.ID}).
			On("mouseenter", Handler{Type: editor.KindOutputHovered, SocketID: n.Output.ID}).
			On("mouseleave", Handler{Type: editor.KindOutputUnhovered}),
	)
	return group
}

func menu(m editor.Model) *Node {
	if !m.Menu.Open {
		return nil
	}

	defs := m.Definitions()
	g := El("g", "class", "menu", "transform", m.Menu.Position.SVG(geometry.Translate))
	g.Append(El("rect",
		"width", itoa(menuWidth), "height", itoa(len(defs)*menuItemHeight),
		"fill", "white", "stroke", "black"))

	for i, def := range defs {
		y := i * menuItemHeight
		g.Append(
			El("g", "class", "menu-item", "transform", geometry.New(0, y).SVG(geometry.Translate)).
				On("mousedown", Handler{Type: editor.KindMenuItemClicked, Key: def.Key()}).
				Append(
					El("rect", "width", itoa(menuWidth), "height", itoa(menuItemHeight), "fill", "transparent"),
					El("text", "x", "8", "y", "16").Append(Text(def.Key())),
				),
		)
	}
	return g
}

func strokeWidth(hovered bool) string {
	if hovered {
		return strokeHovered
	}
	return strokeNotHovered
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
