package crew

import (
	"errors"
	"fmt"
)

// ErrNilAgent indicates an edge mutation received a nil agent.
var ErrNilAgent = errors.New("nil agent")

// ErrSelfDependency indicates an agent was linked to itself.
var ErrSelfDependency = errors.New("agent cannot depend on itself")

// Agent is a node in the dependency graph representing one unit of work.
// Edges to other agents are always symmetric: if B is a dependency of A,
// then A is a dependent of B. Both sides are maintained by AddDependency
// and AddDependent; the slices are never assigned directly.
type Agent struct {
	// Name identifies the agent. Names are labels for display and
	// persistence; graph bookkeeping is keyed by agent identity, so two
	// distinct agents sharing a name remain separate nodes.
	Name string
	// Backstory describes who the agent is, included in its prompt.
	Backstory string
	// Task is the work the agent is asked to perform.
	Task string
	// ExpectedOutput describes the desired shape of the result. May be empty.
	ExpectedOutput string

	// context holds upstream results in arrival order. Append-only;
	// written exclusively by the executor.
	context []string
	// dependencies are agents that must complete before this one runs.
	dependencies []*Agent
	// dependents are agents waiting on this one's output.
	dependents []*Agent
}

// AgentConfig contains the static fields for a new agent.
type AgentConfig struct {
	// Name identifies the agent.
	Name string
	// Backstory describes who the agent is.
	Backstory string
	// Task is the work the agent performs.
	Task string
	// ExpectedOutput describes the desired result. May be empty.
	ExpectedOutput string
}

// NewAgent creates an agent and registers it with the active crew, if one
// is active. With no active crew the agent belongs to no crew and must be
// added explicitly via Crew.Add.
func NewAgent(cfg AgentConfig) *Agent {
	a := &Agent{
		Name:           cfg.Name,
		Backstory:      cfg.Backstory,
		Task:           cfg.Task,
		ExpectedOutput: cfg.ExpectedOutput,
	}
	registerActive(a)
	return a
}

// AddDependency records that a must wait for each of deps, updating both
// sides of every edge. Re-adding an existing edge is a no-op. Processing
// is in argument order and stops at the first invalid element; edges
// already added by that point remain.
func (a *Agent) AddDependency(deps ...*Agent) error {
	for i, dep := range deps {
		if err := a.checkEdge(dep, i); err != nil {
			return err
		}
		appendMissing(&a.dependencies, dep)
		appendMissing(&dep.dependents, a)
	}
	return nil
}

// AddDependent records that each of deps waits for a, updating both sides
// of every edge. Mirror of AddDependency.
func (a *Agent) AddDependent(deps ...*Agent) error {
	for i, dep := range deps {
		if err := a.checkEdge(dep, i); err != nil {
			return err
		}
		appendMissing(&a.dependents, dep)
		appendMissing(&dep.dependencies, a)
	}
	return nil
}

// Then declares that next runs after a, feeding a's output into next's
// context. Equivalent to next.AddDependency(a).
func (a *Agent) Then(next *Agent) error {
	if next == nil {
		return fmt.Errorf("agent %q: %w", a.Name, ErrNilAgent)
	}
	return next.AddDependency(a)
}

// After declares that a runs after prev. Equivalent to a.AddDependency(prev).
func (a *Agent) After(prev *Agent) error {
	return a.AddDependency(prev)
}

// Dependencies returns the agents this agent waits for, in the order the
// edges were added.
func (a *Agent) Dependencies() []*Agent {
	out := make([]*Agent, len(a.dependencies))
	copy(out, a.dependencies)
	return out
}

// Dependents returns the agents waiting on this agent, in the order the
// edges were added.
func (a *Agent) Dependents() []*Agent {
	out := make([]*Agent, len(a.dependents))
	copy(out, a.dependents)
	return out
}

// Context returns the accumulated upstream results in arrival order.
func (a *Agent) Context() []string {
	out := make([]string, len(a.context))
	copy(out, a.context)
	return out
}

// checkEdge validates one element of an edge-mutation argument list.
func (a *Agent) checkEdge(other *Agent, pos int) error {
	if other == nil {
		return fmt.Errorf("agent %q: argument %d: %w", a.Name, pos, ErrNilAgent)
	}
	if other == a {
		return fmt.Errorf("agent %q: %w", a.Name, ErrSelfDependency)
	}
	return nil
}

// appendContext appends one upstream result. Called by the executor when
// a dependency of this agent completes.
func (a *Agent) appendContext(entry string) {
	a.context = append(a.context, entry)
}

// appendMissing appends agent to the slice unless it is already present.
// Presence is by identity, not name.
func appendMissing(agents *[]*Agent, agent *Agent) {
	for _, existing := range *agents {
		if existing == agent {
			return
		}
	}
	*agents = append(*agents, agent)
}
