package editor

import (
	"errors"

	"go.uber.org/zap"

	"nodework/internal/dag"
	"nodework/internal/domain"
	"nodework/internal/library"
)

// resync rebuilds the DAG from nodes and connections and re-evaluates it.
//
// When the rebuilt graph has a cycle, the most recently finalized connection
// running between two blocked vertices is dropped and the rebuild retried,
// so a connection that would close a cycle is never committed.
func (m Model) resync() Model {
	m.Rejected = nil

	for {
		g := dag.Build(m.Graph)
		res, err := g.Evaluate(m.Library, m.log())
		if err == nil {
			m.DAG = g
			m.Output = res.Output
			return m
		}

		var cycle *dag.CycleError
		if !errors.As(err, &cycle) {
			m.log().Error("evaluation failed", zap.Error(err))
			m.DAG = g
			m.Output = library.NoOutput
			return m
		}

		i := newestBlocked(m.Graph.Connections, cycle.Remaining)
		if i < 0 {
			// every vertex is blocked yet no connection joins two of them;
			// cannot happen for a graph derived by dag.Build
			m.DAG = g
			m.Output = library.NoOutput
			return m
		}

		dropped := m.Graph.Connections[i]
		m.log().Warn("connection would close a cycle, dropping it",
			zap.String("connection", dropped.ID),
			zap.String("from", dropped.From),
			zap.String("to", dropped.To))
		m.Rejected = append(m.Rejected, dropped.ID)
		m.Graph.Connections = append(m.Graph.Connections[:i:i], m.Graph.Connections[i+1:]...)
	}
}

func newestBlocked(conns []domain.Connection, remaining []string) int {
	blocked := make(map[string]bool, len(remaining))
	for _, id := range remaining {
		blocked[id] = true
	}
	for i := len(conns) - 1; i >= 0; i-- {
		c := conns[i]
		if c.Finalized() && blocked[c.FromNode()] && blocked[c.ToNode()] {
			return i
		}
	}
	return -1
}

// withEndpoints recomputes the rendered end points of every connection from
// the current node positions and cursor.
func (m Model) withEndpoints() Model {
	cursor := m.CursorWorld()
	for i, c := range m.Graph.Connections {
		if from, ok := m.Graph.Node(c.FromNode()); ok {
			c.P0 = from.OutputAt()
		}
		switch {
		case c.Dragged:
			c.P1 = cursor
		case c.To != "":
			if to, ok := m.Graph.Node(c.ToNode()); ok {
				if in, ok := to.Input(c.To); ok {
					c.P1 = to.InputAt(in)
				}
			}
		}
		m.Graph.Connections[i] = c
	}
	return m
}
