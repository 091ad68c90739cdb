package crew

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCycleDetected indicates a circular dependency was found in the crew's
// dependency graph.
var ErrCycleDetected = errors.New("circular dependency detected")

// Schedule computes a topological order over the crew's agents using
// Kahn's algorithm. Every agent appears after all of its dependencies;
// ties among simultaneously ready agents are broken by registration
// order, so a fixed construction sequence always yields the same order.
//
// Returns ErrCycleDetected if the graph contains a cycle, or if an agent
// depends on an agent outside the crew (that dependency can never be
// satisfied, which is the same class of failure). Runs in O(V+E).
func (c *Crew) Schedule() ([]*Agent, error) {
	// In-degree per agent, keyed by identity. Two agents sharing a name
	// are separate nodes.
	inDegree := make(map[*Agent]int, len(c.agents))
	for _, a := range c.agents {
		inDegree[a] = len(a.dependencies)
	}

	// Seed the FIFO queue with ready agents in registration order.
	queue := make([]*Agent, 0, len(c.agents))
	for _, a := range c.agents {
		if inDegree[a] == 0 {
			queue = append(queue, a)
		}
	}

	order := make([]*Agent, 0, len(c.agents))
	for len(queue) > 0 {
		a := queue[0]
		queue = queue[1:]
		order = append(order, a)

		// Unblock dependents in the order their edges were added.
		for _, dep := range a.dependents {
			if _, member := inDegree[dep]; !member {
				// Dependent outside this crew; nothing to unblock here.
				continue
			}
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if len(order) < len(c.agents) {
		debugLog("[scheduler] cycle: scheduled %d of %d agents", len(order), len(c.agents))
		if stuck := c.stuckNames(inDegree); len(stuck) > 0 {
			return nil, fmt.Errorf("%w involving: %s", ErrCycleDetected, strings.Join(stuck, ", "))
		}
		return nil, fmt.Errorf("%w: scheduled %d of %d agents", ErrCycleDetected, len(order), len(c.agents))
	}

	return order, nil
}

// stuckNames returns the names of agents whose in-degree never reached
// zero, in registration order. Used for cycle diagnostics.
func (c *Crew) stuckNames(inDegree map[*Agent]int) []string {
	var names []string
	for _, a := range c.agents {
		if inDegree[a] > 0 {
			names = append(names, a.Name)
		}
	}
	return names
}
