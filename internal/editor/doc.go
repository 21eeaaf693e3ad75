// Package editor is the interaction state machine of the node editor.
//
// Model holds the whole editor state and Update is a pure reducer: it takes
// a model and one Action and returns the next model without touching its
// input. Every structural change (spawn, delete, connect, rewire) rebuilds
// the DAG and re-evaluates the output before Update returns.
//
// The canvas has two modes, Normal and Drag (pan). Orthogonally, any
// connection may be in the dragged state, following the cursor until the
// pointer is released over an input socket.
package editor
