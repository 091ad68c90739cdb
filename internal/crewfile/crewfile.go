// Package crewfile loads declarative crew definitions from YAML.
//
// A crew file lists agents with their task, optional backstory and
// expected output, and the names of agents they depend on:
//
//	agents:
//	  - name: researcher
//	    task: Research the topic
//	  - name: writer
//	    task: Write the article
//	    depends_on: [researcher]
package crewfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ShayCichocki/crewkit/internal/crew"
)

// File is a parsed crew definition.
type File struct {
	// Agents in declaration order; this becomes crew registration order.
	Agents []AgentDef `yaml:"agents"`
}

// AgentDef declares one agent.
type AgentDef struct {
	// Name identifies the agent within the file. The core keys agents by
	// identity, but the file format resolves depends_on by name, so
	// names must be unique within a file.
	Name string `yaml:"name"`
	// Backstory describes who the agent is.
	Backstory string `yaml:"backstory"`
	// Task is the work the agent performs.
	Task string `yaml:"task"`
	// ExpectedOutput describes the desired result.
	ExpectedOutput string `yaml:"expected_output"`
	// DependsOn lists names of agents whose output this agent needs.
	DependsOn []string `yaml:"depends_on"`
}

// Load reads and parses a crew file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read crew file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return f, nil
}

// Parse parses and validates a crew definition.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// validate checks the definition before any agents are constructed.
// Cycles are not checked here; that is the scheduler's job.
func (f *File) validate() error {
	if len(f.Agents) == 0 {
		return fmt.Errorf("crew file declares no agents")
	}

	names := make(map[string]bool, len(f.Agents))
	for i, def := range f.Agents {
		if def.Name == "" {
			return fmt.Errorf("agent %d: missing name", i)
		}
		if def.Task == "" {
			return fmt.Errorf("agent %q: missing task", def.Name)
		}
		if names[def.Name] {
			return fmt.Errorf("duplicate agent name %q", def.Name)
		}
		names[def.Name] = true
	}

	for _, def := range f.Agents {
		for _, dep := range def.DependsOn {
			if !names[dep] {
				return fmt.Errorf("agent %q depends on unknown agent %q", def.Name, dep)
			}
			if dep == def.Name {
				return fmt.Errorf("agent %q depends on itself", def.Name)
			}
		}
	}

	return nil
}

// Build constructs a crew from the definition. Agents are registered in
// declaration order and dependency edges are linked by name.
func (f *File) Build() (*crew.Crew, error) {
	c := crew.New()
	byName := make(map[string]*crew.Agent, len(f.Agents))

	for _, def := range f.Agents {
		byName[def.Name] = c.NewAgent(crew.AgentConfig{
			Name:           def.Name,
			Backstory:      def.Backstory,
			Task:           def.Task,
			ExpectedOutput: def.ExpectedOutput,
		})
	}

	for _, def := range f.Agents {
		for _, dep := range def.DependsOn {
			if err := byName[def.Name].AddDependency(byName[dep]); err != nil {
				return nil, fmt.Errorf("link %q after %q: %w", def.Name, dep, err)
			}
		}
	}

	return c, nil
}
