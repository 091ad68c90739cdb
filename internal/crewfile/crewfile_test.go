package crewfile

import (
	"errors"
	"strings"
	"testing"

	"github.com/ShayCichocki/crewkit/internal/crew"
)

const sampleYAML = `
agents:
  - name: researcher
    backstory: You are a meticulous researcher.
    task: Research the history of the topic
    expected_output: A bullet list of findings
  - name: writer
    task: Write an article from the research
    depends_on: [researcher]
  - name: editor
    task: Edit the article
    depends_on: [writer]
`

func TestParseSample(t *testing.T) {
	f, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.Agents) != 3 {
		t.Fatalf("expected 3 agents, got %d", len(f.Agents))
	}
	if f.Agents[0].Name != "researcher" || f.Agents[0].ExpectedOutput == "" {
		t.Errorf("unexpected first agent: %+v", f.Agents[0])
	}
	if len(f.Agents[1].DependsOn) != 1 || f.Agents[1].DependsOn[0] != "researcher" {
		t.Errorf("unexpected depends_on for writer: %v", f.Agents[1].DependsOn)
	}
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("agents: ["))
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestParseNoAgents(t *testing.T) {
	_, err := Parse([]byte("agents: []"))
	if err == nil || !strings.Contains(err.Error(), "no agents") {
		t.Fatalf("expected no-agents error, got %v", err)
	}
}

func TestParseMissingName(t *testing.T) {
	_, err := Parse([]byte("agents:\n  - task: do it\n"))
	if err == nil || !strings.Contains(err.Error(), "missing name") {
		t.Fatalf("expected missing-name error, got %v", err)
	}
}

func TestParseMissingTask(t *testing.T) {
	_, err := Parse([]byte("agents:\n  - name: a\n"))
	if err == nil || !strings.Contains(err.Error(), "missing task") {
		t.Fatalf("expected missing-task error, got %v", err)
	}
}

func TestParseDuplicateName(t *testing.T) {
	_, err := Parse([]byte("agents:\n  - name: a\n    task: t\n  - name: a\n    task: t\n"))
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate-name error, got %v", err)
	}
}

func TestParseUnknownDependency(t *testing.T) {
	_, err := Parse([]byte("agents:\n  - name: a\n    task: t\n    depends_on: [ghost]\n"))
	if err == nil || !strings.Contains(err.Error(), "unknown agent") {
		t.Fatalf("expected unknown-dependency error, got %v", err)
	}
}

func TestParseSelfDependency(t *testing.T) {
	_, err := Parse([]byte("agents:\n  - name: a\n    task: t\n    depends_on: [a]\n"))
	if err == nil || !strings.Contains(err.Error(), "depends on itself") {
		t.Fatalf("expected self-dependency error, got %v", err)
	}
}

func TestBuildLinksEdges(t *testing.T) {
	f, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatal(err)
	}

	c, err := f.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Size() != 3 {
		t.Fatalf("expected 3 agents, got %d", c.Size())
	}

	order, err := c.Schedule()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"researcher", "writer", "editor"}
	for i, name := range want {
		if order[i].Name != name {
			t.Errorf("position %d: expected %q, got %q", i, name, order[i].Name)
		}
	}
}

func TestBuildCycleSurfacesAtSchedule(t *testing.T) {
	f, err := Parse([]byte("agents:\n  - name: a\n    task: t\n    depends_on: [b]\n  - name: b\n    task: t\n    depends_on: [a]\n"))
	if err != nil {
		t.Fatalf("cycles are a scheduler concern, parse should pass: %v", err)
	}

	c, err := f.Build()
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	_, err = c.Schedule()
	if !errors.Is(err, crew.ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected, got %v", err)
	}
}
