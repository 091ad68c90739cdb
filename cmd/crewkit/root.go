package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "crewkit",
	Short: "Dependency-ordered agent orchestration",
	Long: `Crewkit runs a crew of LLM agents whose tasks depend on each other.

A crew is declared in a YAML file: each agent has a task, and may depend
on other agents. Crewkit schedules the agents so every agent runs after
all of its dependencies, feeding each agent's output into the prompts of
the agents that depend on it.

Core capabilities:
- Validates the dependency graph and rejects cycles before any API call
- Deterministic execution order for a fixed crew file
- Forwards each agent's output to its dependents' context
- Records runs and per-agent results in a local SQLite history`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
