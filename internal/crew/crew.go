package crew

import "sync"

// Crew is an ordered collection of agents scheduled and run together.
// Registration order is preserved; it is the tie-break when the scheduler
// has several ready agents.
type Crew struct {
	// agents in registration order.
	agents []*Agent
}

// New creates an empty crew.
func New() *Crew {
	return &Crew{}
}

// Add appends agents to the crew. No dedup check is performed; adding the
// same agent twice is a caller error surfaced at scheduling time.
func (c *Crew) Add(agents ...*Agent) {
	c.agents = append(c.agents, agents...)
}

// NewAgent creates an agent and adds it to this crew, regardless of which
// crew (if any) is active. This is the explicit-handle alternative to the
// Activate/NewAgent pattern.
func (c *Crew) NewAgent(cfg AgentConfig) *Agent {
	a := &Agent{
		Name:           cfg.Name,
		Backstory:      cfg.Backstory,
		Task:           cfg.Task,
		ExpectedOutput: cfg.ExpectedOutput,
	}
	c.Add(a)
	return a
}

// Agents returns the crew's agents in registration order.
func (c *Crew) Agents() []*Agent {
	out := make([]*Agent, len(c.agents))
	copy(out, c.agents)
	return out
}

// Size returns the number of registered agents.
func (c *Crew) Size() int {
	return len(c.agents)
}

// active is the process-wide active crew. At most one crew is active at a
// time; activating a second crew overwrites the pointer.
var (
	activeMu sync.Mutex
	active   *Crew
)

// Activate makes c the active crew, so that subsequent NewAgent calls
// self-register into it. The returned release function clears the active
// pointer; callers must invoke it on every exit path, normal or not:
//
//	release := c.Activate()
//	defer release()
func (c *Crew) Activate() (release func()) {
	activeMu.Lock()
	active = c
	activeMu.Unlock()
	return func() {
		activeMu.Lock()
		active = nil
		activeMu.Unlock()
	}
}

// registerActive adds a to the active crew, if any. No-op otherwise.
func registerActive(a *Agent) {
	activeMu.Lock()
	defer activeMu.Unlock()
	if active != nil {
		active.agents = append(active.agents, a)
	}
}
