// Package view renders an editor model into a declarative element tree.
//
// The tree is plain data: an external UI runtime diffs it against the DOM
// and turns the Events on each element back into editor actions.
package view

import (
	"slices"
	"strings"
)

// Handler names the action an element emits for a DOM event. Fields that
// the runtime fills from the event itself (pointer position, key name,
// wheel delta, shift state) are left empty.
type Handler struct {
	Type         string `json:"type"`
	NodeID       string `json:"node_id,omitempty"`
	SocketID     string `json:"socket_id,omitempty"`
	ConnectionID string `json:"connection_id,omitempty"`
	Key          string `json:"key,omitempty"`
}

// Node is one element of the tree; Text nodes have an empty Tag.
type Node struct {
	Tag      string             `json:"tag,omitempty"`
	Attrs    map[string]string  `json:"attrs,omitempty"`
	Events   map[string]Handler `json:"events,omitempty"`
	Text     string             `json:"text,omitempty"`
	Children []*Node            `json:"children,omitempty"`
}

// El creates an element from alternating attribute name/value pairs
func El(tag string, attrs ...string) *Node {
	n := &Node{Tag: tag}
	if len(attrs) > 0 {
		n.Attrs = make(map[string]string, len(attrs)/2)
		for i := 0; i+1 < len(attrs); i += 2 {
			n.Attrs[attrs[i]] = attrs[i+1]
		}
	}
	return n
}

// Text creates a text node
func Text(s string) *Node {
	return &Node{Text: s}
}

// On attaches a handler for event
func (n *Node) On(event string, h Handler) *Node {
	if n.Events == nil {
		n.Events = make(map[string]Handler)
	}
	n.Events[event] = h
	return n
}

// Append adds children, skipping nils
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// Walk visits n and its descendants depth first until fn returns false
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// FindAll returns every element whose "class" attribute contains class
func (n *Node) FindAll(class string) []*Node {
	var out []*Node
	n.Walk(func(e *Node) bool {
		if hasClass(e.Attrs["class"], class) {
			out = append(out, e)
		}
		return true
	})
	return out
}

// Find returns the first element with class, or nil
func (n *Node) Find(class string) *Node {
	var found *Node
	n.Walk(func(e *Node) bool {
		if hasClass(e.Attrs["class"], class) {
			found = e
			return false
		}
		return true
	})
	return found
}

// InnerText concatenates every text node below n
func (n *Node) InnerText() string {
	var s string
	n.Walk(func(e *Node) bool {
		s += e.Text
		return true
	})
	return s
}

func hasClass(attr, class string) bool {
	return slices.Contains(strings.Fields(attr), class)
}
