package crew

import (
	"context"
	"fmt"
)

// Generator is the external text-generation contract. Implementations
// turn one composed prompt into one result string.
type Generator interface {
	// Generate produces text for the composed prompt. A non-nil error is
	// fatal for the calling agent's turn.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Composer builds the single prompt string passed to the Generator.
// Implementations choose the textual framing; all inputs must be
// represented and context entries must keep their arrival order.
type Composer interface {
	Compose(backstory, task, expectedOutput string, contextEntries []string) string
}

// Result is one agent's completed output.
type Result struct {
	// Name is the agent's name at completion time.
	Name string
	// Output is the exact string produced by the generator, as delivered
	// to the agent's dependents.
	Output string
}

// Executor drives a crew through its topological order, one agent at a
// time. After each agent completes, its output is appended to every
// dependent's context before the next agent runs, so an agent's context
// is fully populated by the time its own turn arrives.
type Executor struct {
	gen      Generator
	composer Composer
	// observer, if set, receives each result as it completes.
	observer func(Result)
}

// NewExecutor creates an executor. A nil composer falls back to a plain
// sectioned framing; callers normally pass prompt.NewComposer().
func NewExecutor(gen Generator, composer Composer) *Executor {
	if composer == nil {
		composer = fallbackComposer{}
	}
	return &Executor{gen: gen, composer: composer}
}

// SetObserver sets a callback invoked with each agent's result as it
// completes, before the next agent runs.
func (e *Executor) SetObserver(fn func(Result)) {
	e.observer = fn
}

// Run schedules the crew and executes every agent in order. If
// scheduling fails no agent runs. A generator failure aborts the run:
// the results produced so far are returned alongside the error, and no
// further agent executes.
func (e *Executor) Run(ctx context.Context, c *Crew) ([]Result, error) {
	order, err := c.Schedule()
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(order))
	for _, a := range order {
		if err := ctx.Err(); err != nil {
			return results, fmt.Errorf("run canceled before agent %q: %w", a.Name, err)
		}

		prompt := e.composer.Compose(a.Backstory, a.Task, a.ExpectedOutput, a.Context())
		debugLog("[executor] running agent %q (%d context entries)", a.Name, len(a.context))

		output, err := e.gen.Generate(ctx, prompt)
		if err != nil {
			// Halting here keeps downstream contexts consistent: a
			// dependent never runs with a silently missing entry.
			return results, fmt.Errorf("agent %q: generate: %w", a.Name, err)
		}

		for _, dep := range a.dependents {
			dep.appendContext(output)
		}

		r := Result{Name: a.Name, Output: output}
		results = append(results, r)
		if e.observer != nil {
			e.observer(r)
		}
	}

	return results, nil
}

// fallbackComposer is the framing used when no Composer is supplied:
// labeled sections, context entries delimited one per block.
type fallbackComposer struct{}

func (fallbackComposer) Compose(backstory, task, expectedOutput string, contextEntries []string) string {
	out := ""
	if backstory != "" {
		out += "Backstory:\n" + backstory + "\n\n"
	}
	out += "Task:\n" + task + "\n"
	if expectedOutput != "" {
		out += "\nExpected output:\n" + expectedOutput + "\n"
	}
	for i, entry := range contextEntries {
		out += fmt.Sprintf("\nContext %d:\n%s\n", i+1, entry)
	}
	return out
}
