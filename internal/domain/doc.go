// Package domain defines the records the node editor manipulates: placed
// nodes, their input and output sockets, and the connections wiring an
// output to an input.
//
// # Core Types
//
// Node is a library definition placed on the canvas. It owns an ordered list
// of Input sockets (one per declared input name) and a single Output socket.
// Socket ids are derived from the node id, so a socket id always names its
// owner: "<node>.in.<index>" and "<node>.out".
//
// Connection runs from an output socket to an input socket. While the user is
// still dragging it, it has no target and its far end follows the cursor.
//
// Graph holds the nodes in spawn order and the connections with the most
// recently finalized one last.
//
// # Invariants
//
// - At most one connection terminates at a given input (last writer wins)
// - Only the node with id OutputNodeID is the graph sink
// - No connection references a socket of a node that is not in the graph
//
// # Design Principles
//
// - Value types; every mutation returns a fresh copy
// - No infrastructure dependencies
package domain
