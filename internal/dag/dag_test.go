package dag

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"nodework/internal/domain"
	"nodework/internal/geometry"
	"nodework/internal/library"
)

func graphOf(ids []string, edges ...Edge) *Graph {
	g := New()
	for _, id := range ids {
		g.AddVertex(id, "int.one")
	}
	for _, e := range edges {
		g.AddEdge(e.From, e.To, e.Input)
	}
	g.SyncVertexInputs()
	return g
}

func position(order []string) map[string]int {
	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	return pos
}

func TestTopologicalSort(t *testing.T) {
	t.Run("empty graph", func(t *testing.T) {
		order, err := New().TopologicalSort()
		require.NoError(t, err)
		assert.Empty(t, order)
	})

	t.Run("chain", func(t *testing.T) {
		g := graphOf([]string{"c", "b", "a"},
			Edge{From: "a", To: "b", Input: "a"},
			Edge{From: "b", To: "c", Input: "a"})

		order, err := g.TopologicalSort()
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, order)
	})

	t.Run("ties follow enumeration order", func(t *testing.T) {
		g := graphOf([]string{"x", "y", "z"})

		order, err := g.TopologicalSort()
		require.NoError(t, err)
		assert.Equal(t, []string{"x", "y", "z"}, order)
	})

	t.Run("diamond", func(t *testing.T) {
		g := graphOf([]string{"d", "c", "b", "a"},
			Edge{From: "a", To: "b", Input: "a"},
			Edge{From: "a", To: "c", Input: "a"},
			Edge{From: "b", To: "d", Input: "a"},
			Edge{From: "c", To: "d", Input: "b"})

		order, err := g.TopologicalSort()
		require.NoError(t, err)
		require.Len(t, order, 4)
		pos := position(order)
		for _, e := range g.Edges {
			assert.Less(t, pos[e.From], pos[e.To])
		}
	})

	t.Run("two cycle", func(t *testing.T) {
		g := graphOf([]string{"a", "b", "c"},
			Edge{From: "a", To: "b", Input: "x"},
			Edge{From: "b", To: "a", Input: "y"})

		order, err := g.TopologicalSort()
		require.Error(t, err)
		assert.Nil(t, order)
		assert.True(t, errors.Is(err, ErrCycle))

		var cycle *CycleError
		require.True(t, errors.As(err, &cycle))
		assert.Equal(t, []string{"c"}, cycle.Sorted)
		assert.Equal(t, []string{"a", "b"}, cycle.Remaining)
	})

	t.Run("self loop", func(t *testing.T) {
		g := graphOf([]string{"a"}, Edge{From: "a", To: "a", Input: "x"})

		_, err := g.TopologicalSort()
		assert.ErrorIs(t, err, ErrCycle)
	})

	t.Run("cycle downstream of a sorted prefix", func(t *testing.T) {
		g := graphOf([]string{"a", "b", "c"},
			Edge{From: "a", To: "b", Input: "x"},
			Edge{From: "b", To: "c", Input: "x"},
			Edge{From: "c", To: "b", Input: "y"})

		_, err := g.TopologicalSort()
		var cycle *CycleError
		require.True(t, errors.As(err, &cycle))
		assert.Equal(t, []string{"a"}, cycle.Sorted)
		assert.ElementsMatch(t, []string{"b", "c"}, cycle.Remaining)
	})
}

func TestTopologicalSortRandomAcyclic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 50; round++ {
		n := 2 + rng.Intn(12)
		ids := make([]string, n)
		for i := range ids {
			ids[i] = fmt.Sprintf("v%d", i)
		}

		// edges only run from lower to higher index, so the graph is acyclic
		var edges []Edge
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if rng.Intn(3) == 0 {
					edges = append(edges, Edge{From: ids[i], To: ids[j], Input: "a"})
				}
			}
		}

		shuffled := append([]string(nil), ids...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		g := graphOf(shuffled, edges...)
		order, err := g.TopologicalSort()
		require.NoError(t, err)
		require.Len(t, order, n)

		pos := position(order)
		for _, e := range edges {
			assert.Less(t, pos[e.From], pos[e.To], "round %d edge %s->%s", round, e.From, e.To)
		}
	}
}

func TestTopologicalSortRandomCyclic(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for round := 0; round < 50; round++ {
		n := 2 + rng.Intn(10)
		ids := make([]string, n)
		for i := range ids {
			ids[i] = fmt.Sprintf("v%d", i)
		}

		var edges []Edge
		for i := 0; i+1 < n; i++ {
			edges = append(edges, Edge{From: ids[i], To: ids[i+1], Input: "a"})
		}
		back := rng.Intn(n - 1)
		edges = append(edges, Edge{From: ids[n-1], To: ids[back], Input: "b"})

		order, err := graphOf(ids, edges...).TopologicalSort()
		assert.ErrorIs(t, err, ErrCycle, "round %d", round)
		assert.Nil(t, order)
	}
}

func editorGraph(t *testing.T, lib *library.Library, nodes map[string]string, conns ...domain.Connection) domain.Graph {
	t.Helper()
	g := domain.NewGraph()
	for _, id := range []string{"ten", "one", "add", "double", domain.OutputNodeID, "hello", "cap"} {
		key, ok := nodes[id]
		if !ok {
			continue
		}
		def, err := lib.Lookup(key)
		require.NoError(t, err)
		g.PutNode(domain.NewNode(id, def, geometry.Zero))
	}
	g.Connections = conns
	return g
}

func wire(id, from, to string) domain.Connection {
	return domain.Connection{ID: id, From: domain.OutputID(from), To: to}
}

func TestBuild(t *testing.T) {
	lib := library.Builtin()
	src := editorGraph(t, lib, map[string]string{
		"ten": "int.ten",
		"one": "int.one",
		"add": "int.add",
	},
		wire("c1", "ten", "add.in.0"),
		wire("c2", "one", "add.in.1"),
		domain.Connection{ID: "c3", From: "one.out", Dragged: true},
		wire("c4", "ghost", "add.in.0"),
		wire("c5", "one", "add.in.7"),
	)

	g := Build(src)

	assert.Equal(t, []string{"ten", "one", "add"}, g.Order)
	assert.Equal(t, []Edge{
		{From: "ten", To: "add", Input: "a"},
		{From: "one", To: "add", Input: "b"},
	}, g.Edges)

	add, ok := g.Vertex("add")
	require.True(t, ok)
	assert.Equal(t, "int.add", add.Key)
	assert.Equal(t, map[string]string{"a": "ten", "b": "one"}, add.Inputs)

	ten, _ := g.Vertex("ten")
	assert.Empty(t, ten.Inputs)
}

func TestEvaluate(t *testing.T) {
	lib := library.Builtin()

	t.Run("ten doubled into the output", func(t *testing.T) {
		src := editorGraph(t, lib, map[string]string{
			"ten":               "int.ten",
			"double":            "int.double",
			domain.OutputNodeID: "int.output",
		},
			wire("c1", "ten", "double.in.0"),
			wire("c2", "double", "node-output.in.0"),
		)

		res, err := Build(src).Evaluate(lib, nil)
		require.NoError(t, err)
		assert.Equal(t, library.Int(20), res.Output)
		assert.Equal(t, library.Int(10), res.Values["ten"])
		assert.Equal(t, []string{"ten", "double", domain.OutputNodeID}, res.Order)
	})

	t.Run("no output node", func(t *testing.T) {
		src := editorGraph(t, lib, map[string]string{"ten": "int.ten"})

		res, err := Build(src).Evaluate(lib, nil)
		require.NoError(t, err)
		assert.True(t, res.Output.IsNone())
	})

	t.Run("unwired inputs default to zero", func(t *testing.T) {
		src := editorGraph(t, lib, map[string]string{
			"add":               "int.add",
			domain.OutputNodeID: "int.output",
		}, wire("c1", "add", "node-output.in.0"))

		res, err := Build(src).Evaluate(lib, nil)
		require.NoError(t, err)
		assert.Equal(t, library.Int(0), res.Output)
	})

	t.Run("values are coerced across domains", func(t *testing.T) {
		src := editorGraph(t, lib, map[string]string{
			"ten":               "int.ten",
			"cap":               "string.capitalise",
			domain.OutputNodeID: "string.output",
		},
			wire("c1", "ten", "cap.in.0"),
			wire("c2", "cap", "node-output.in.0"),
		)

		res, err := Build(src).Evaluate(lib, nil)
		require.NoError(t, err)
		assert.Equal(t, library.String("10"), res.Output)
	})

	t.Run("deterministic", func(t *testing.T) {
		src := editorGraph(t, lib, map[string]string{
			"ten":               "int.ten",
			"one":               "int.one",
			"add":               "int.add",
			domain.OutputNodeID: "int.output",
		},
			wire("c1", "ten", "add.in.0"),
			wire("c2", "one", "add.in.1"),
			wire("c3", "add", "node-output.in.0"),
		)

		g := Build(src)
		first, err := g.Evaluate(lib, nil)
		require.NoError(t, err)
		second, err := g.Evaluate(lib, nil)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, library.Int(11), first.Output)
	})

	t.Run("cycle", func(t *testing.T) {
		g := graphOf([]string{"a", "b"},
			Edge{From: "a", To: "b", Input: "a"},
			Edge{From: "b", To: "a", Input: "a"})

		res, err := g.Evaluate(lib, nil)
		assert.ErrorIs(t, err, ErrCycle)
		assert.True(t, res.Output.IsNone())
	})
}

func TestEvaluateMissingDefinition(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core)

	g := New()
	g.AddVertex("x", "int.gone")
	g.AddVertex(domain.OutputNodeID, "int.output")
	g.AddEdge("x", domain.OutputNodeID, "value")
	g.SyncVertexInputs()

	res, err := g.Evaluate(library.Builtin(), logger)
	require.NoError(t, err)
	assert.Equal(t, library.Int(0), res.Values["x"])
	assert.Equal(t, library.Int(0), res.Output)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "int.gone", entry.ContextMap()["key"])
	assert.Equal(t, "x", entry.ContextMap()["vertex"])

	g = New()
	g.AddVertex("s", "string.gone")
	res, err = g.Evaluate(library.Builtin(), logger)
	require.NoError(t, err)
	assert.Equal(t, library.String(""), res.Values["s"])
}
