package domain

import (
	"fmt"
	"strings"

	"nodework/internal/geometry"
)

// Node box layout, in world units
const (
	NodeWidth    = 200
	NodeHeight   = 150
	InputOffsetY = 50
	InputSpacing = 30
)

// InputPosition returns the position of the index-th input relative to its node
func InputPosition(index int) geometry.Vector {
	return geometry.New(0, InputOffsetY+index*InputSpacing)
}

// OutputPosition returns the position of the output relative to its node
func OutputPosition() geometry.Vector {
	return geometry.New(NodeWidth, InputOffsetY)
}

// InputID derives the id of a node's index-th input socket
func InputID(nodeID string, index int) string {
	return fmt.Sprintf("%s.in.%d", nodeID, index)
}

// OutputID derives the id of a node's output socket
func OutputID(nodeID string) string {
	return nodeID + ".out"
}

// NodeIDFromSocket extracts the owning node id from a socket id.
// Ids that are not socket ids are returned unchanged.
func NodeIDFromSocket(socketID string) string {
	if i := strings.LastIndex(socketID, ".in."); i >= 0 {
		return socketID[:i]
	}
	if id, ok := strings.CutSuffix(socketID, ".out"); ok {
		return id
	}
	return socketID
}
