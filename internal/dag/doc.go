// Package dag is the evaluation engine behind the editor.
//
// A Graph is never edited directly. Build derives it wholesale from the
// editor's nodes and connections: one Vertex per node, one Edge per finalized
// connection. SyncVertexInputs then records, for every vertex, which upstream
// vertex feeds each named input.
//
// TopologicalSort orders the vertices with Kahn's algorithm, peeling off the
// zero in-degree layer until nothing is left. When a layer comes up empty
// while vertices remain, the graph has a cycle and the sort fails with a
// *CycleError; it never returns a partial order as a result.
//
// Evaluate walks the sorted vertices, resolving each input from values
// already computed and applying the library definition. Unwired inputs and
// unknown definitions degrade to the domain zero, so only a cycle can make
// evaluation fail.
package dag
