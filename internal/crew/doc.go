// Package crew implements dependency-ordered agent coordination.
//
// The crew package provides functionality for:
//   - Agent declaration: Work units with a task, a backstory, and an
//     accumulated context of upstream results
//   - Dependency management: Symmetric dependency/dependent edges with
//     cycle detection and deterministic topological scheduling
//   - Execution: Driving agents through the schedule one at a time,
//     forwarding each agent's output to its dependents before they run
//
// A Crew is an ordered collection of agents. Agents join a crew either
// explicitly through Crew.Add (or the Crew.NewAgent constructor), or
// implicitly by being constructed while the crew is active:
//
//	c := crew.New()
//	release := c.Activate()
//	defer release()
//
//	researcher := crew.NewAgent(crew.AgentConfig{Name: "researcher", Task: "..."})
//	writer := crew.NewAgent(crew.AgentConfig{Name: "writer", Task: "..."})
//	writer.AddDependency(researcher)
//
//	results, err := crew.NewExecutor(gen, nil).Run(ctx, c)
package crew
