package domain

// Graph is the editable structure: nodes in spawn order and connections with
// the most recently finalized one last.
type Graph struct {
	Nodes       []Node       `json:"nodes" yaml:"nodes"`
	Connections []Connection `json:"connections" yaml:"connections"`
}

// NewGraph creates an empty graph
func NewGraph() Graph {
	return Graph{
		Nodes:       []Node{},
		Connections: []Connection{},
	}
}

// Clone returns a deep copy
func (g Graph) Clone() Graph {
	nodes := make([]Node, len(g.Nodes))
	for i, n := range g.Nodes {
		nodes[i] = n.Clone()
	}
	return Graph{
		Nodes:       nodes,
		Connections: append([]Connection{}, g.Connections...),
	}
}

// Node looks up a node by id
func (g Graph) Node(id string) (Node, bool) {
	if i := g.nodeIndex(id); i >= 0 {
		return g.Nodes[i], true
	}
	return Node{}, false
}

func (g Graph) nodeIndex(id string) int {
	for i, n := range g.Nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// NodeIDs returns node ids in spawn order
func (g Graph) NodeIDs() []string {
	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// PutNode adds n, or replaces the node with the same id in place. Connections
// left pointing at sockets the node no longer has are dropped.
func (g *Graph) PutNode(n Node) {
	if i := g.nodeIndex(n.ID); i >= 0 {
		g.Nodes[i] = n
		g.Prune()
		return
	}
	g.Nodes = append(g.Nodes, n)
}

// UpdateNode applies fn to the node with the given id, if present
func (g *Graph) UpdateNode(id string, fn func(Node) Node) {
	if i := g.nodeIndex(id); i >= 0 {
		g.Nodes[i] = fn(g.Nodes[i])
	}
}

// RemoveNodes deletes the given nodes and every connection touching them
func (g *Graph) RemoveNodes(ids map[string]bool) {
	nodes := make([]Node, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		if !ids[n.ID] {
			nodes = append(nodes, n)
		}
	}
	g.Nodes = nodes

	conns := make([]Connection, 0, len(g.Connections))
	for _, c := range g.Connections {
		if !c.Touches(ids) {
			conns = append(conns, c)
		}
	}
	g.Connections = conns
}

// Connection looks up a connection by id
func (g Graph) Connection(id string) (Connection, bool) {
	for _, c := range g.Connections {
		if c.ID == id {
			return c, true
		}
	}
	return Connection{}, false
}

// Finalized returns the connections attached at both ends, in order
func (g Graph) Finalized() []Connection {
	out := make([]Connection, 0, len(g.Connections))
	for _, c := range g.Connections {
		if c.Finalized() {
			out = append(out, c)
		}
	}
	return out
}

// Prune drops connections that do not start at the output socket of a node
// in the graph or whose target input no longer exists.
func (g *Graph) Prune() {
	conns := make([]Connection, 0, len(g.Connections))
	for _, c := range g.Connections {
		source, ok := g.Node(c.FromNode())
		if !ok || c.From != source.Output.ID {
			continue
		}
		if c.To != "" {
			target, ok := g.Node(c.ToNode())
			if !ok {
				continue
			}
			if _, ok := target.Input(c.To); !ok {
				continue
			}
		}
		conns = append(conns, c)
	}
	g.Connections = conns
}
