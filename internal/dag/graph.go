package dag

import (
	"nodework/internal/domain"
)

// Vertex is the engine's view of a placed node
type Vertex struct {
	ID  string `json:"id"`
	Key string `json:"key"`
	// Inputs maps an input name to the id of the vertex feeding it
	Inputs map[string]string `json:"inputs"`
}

// Edge is the engine's view of a finalized connection
type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Input string `json:"input"`
}

// Graph is the derived vertex/edge structure. Order holds vertex ids in the
// enumeration order used to break ties during sorting.
type Graph struct {
	Vertices map[string]Vertex `json:"vertices"`
	Order    []string          `json:"order"`
	Edges    []Edge            `json:"edges"`
}

// New creates an empty graph
func New() *Graph {
	return &Graph{
		Vertices: make(map[string]Vertex),
		Order:    []string{},
		Edges:    []Edge{},
	}
}

// AddVertex adds a vertex with no inputs. Re-adding an id is a no-op.
func (g *Graph) AddVertex(id, key string) {
	if _, ok := g.Vertices[id]; ok {
		return
	}
	g.Vertices[id] = Vertex{ID: id, Key: key, Inputs: make(map[string]string)}
	g.Order = append(g.Order, id)
}

// AddEdge records that input of vertex to is fed by vertex from
func (g *Graph) AddEdge(from, to, input string) {
	g.Edges = append(g.Edges, Edge{From: from, To: to, Input: input})
}

// Build derives the graph from the editor's nodes and connections and syncs
// vertex inputs. Connections that are still dragged, or whose ends no longer
// resolve to a node socket, produce no edge.
func Build(src domain.Graph) *Graph {
	g := New()
	for _, n := range src.Nodes {
		g.AddVertex(n.ID, n.Key)
	}

	for _, c := range src.Connections {
		if !c.Finalized() {
			continue
		}
		from := c.FromNode()
		if _, ok := g.Vertices[from]; !ok {
			continue
		}
		target, ok := src.Node(c.ToNode())
		if !ok {
			continue
		}
		in, ok := target.Input(c.To)
		if !ok {
			continue
		}
		g.AddEdge(from, target.ID, in.Label)
	}

	g.SyncVertexInputs()
	return g
}

// SyncVertexInputs rebuilds every vertex's input map from the edges
func (g *Graph) SyncVertexInputs() {
	for id, v := range g.Vertices {
		v.Inputs = make(map[string]string)
		g.Vertices[id] = v
	}
	for _, e := range g.Edges {
		if v, ok := g.Vertices[e.To]; ok {
			v.Inputs[e.Input] = e.From
		}
	}
}

// Vertex looks up a vertex by id
func (g *Graph) Vertex(id string) (Vertex, bool) {
	v, ok := g.Vertices[id]
	return v, ok
}
