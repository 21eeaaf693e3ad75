package dag

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCycle is returned when the graph cannot be fully ordered
var ErrCycle = errors.New("graph contains a cycle")

// CycleError reports a failed sort. Sorted is the prefix that could be
// ordered; Remaining holds the vertices blocked by the cycle.
type CycleError struct {
	Sorted    []string
	Remaining []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: blocked vertices [%s]", ErrCycle, strings.Join(e.Remaining, ", "))
}

func (e *CycleError) Unwrap() error {
	return ErrCycle
}

// TopologicalSort orders vertex ids so that every edge runs from an earlier
// vertex to a later one. Ties follow Order.
func (g *Graph) TopologicalSort() ([]string, error) {
	unsorted := append([]string(nil), g.Order...)
	return kahn(nil, unsorted, g.Edges)
}

func kahn(sorted, unsorted []string, edges []Edge) ([]string, error) {
	remaining := make(map[string]bool, len(unsorted))
	for _, id := range unsorted {
		remaining[id] = true
	}

	// edges touching sorted vertices no longer block anything
	live := make([]Edge, 0, len(edges))
	indegree := make(map[string]int, len(unsorted))
	for _, e := range edges {
		if remaining[e.From] && remaining[e.To] {
			live = append(live, e)
			indegree[e.To]++
		}
	}

	var source, rest []string
	for _, id := range unsorted {
		if indegree[id] == 0 {
			source = append(source, id)
		} else {
			rest = append(rest, id)
		}
	}

	switch {
	case len(source) == 0 && len(rest) == 0:
		return sorted, nil
	case len(rest) == 0:
		return append(sorted, source...), nil
	case len(source) == 0:
		return nil, &CycleError{Sorted: sorted, Remaining: rest}
	default:
		return kahn(append(sorted, source...), rest, live)
	}
}
