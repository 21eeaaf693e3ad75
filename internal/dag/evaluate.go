package dag

import (
	"strings"

	"go.uber.org/zap"

	"nodework/internal/domain"
	"nodework/internal/library"
)

// Result is the outcome of one evaluation pass
type Result struct {
	// Output is the value of the sink vertex, or library.NoOutput
	Output library.Value
	// Values holds every evaluated vertex
	Values map[string]library.Value
	// Order is the topological order that was walked
	Order []string
}

// Evaluate sorts the graph and computes every vertex. The only error is a
// cycle (wrapping ErrCycle); missing definitions and unwired inputs degrade
// to the domain zero.
func (g *Graph) Evaluate(lib *library.Library, logger *zap.Logger) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	order, err := g.TopologicalSort()
	if err != nil {
		return Result{Output: library.NoOutput}, err
	}

	values := make(map[string]library.Value, len(order))
	for _, id := range order {
		v := g.Vertices[id]

		def, err := lib.Lookup(v.Key)
		if err != nil {
			logger.Warn("definition missing, emitting zero value",
				zap.String("vertex", v.ID),
				zap.String("key", v.Key),
				zap.Error(err))
			values[id] = library.Zero(keyDomain(v.Key))
			continue
		}

		inputs := make(map[string]library.Value, len(v.Inputs))
		for name, from := range v.Inputs {
			if val, ok := values[from]; ok {
				inputs[name] = val
			}
		}
		values[id] = def.Evaluate(inputs)
	}

	out, ok := values[domain.OutputNodeID]
	if !ok {
		out = library.NoOutput
	}

	return Result{Output: out, Values: values, Order: order}, nil
}

func keyDomain(key string) library.Domain {
	ns, _, _ := strings.Cut(key, ".")
	d, _ := library.ParseDomain(ns)
	return d
}
