// Package models defines the data types shared between the crew runtime
// and persistence.
package models

import "time"

// RunStatus represents the state of a crew run.
type RunStatus string

const (
	// RunRunning indicates the run is in progress.
	RunRunning RunStatus = "running"
	// RunCompleted indicates every agent finished.
	RunCompleted RunStatus = "completed"
	// RunFailed indicates the run aborted before completion.
	RunFailed RunStatus = "failed"
)

// Valid returns true if the status is a known value.
func (s RunStatus) Valid() bool {
	switch s {
	case RunRunning, RunCompleted, RunFailed:
		return true
	default:
		return false
	}
}

// Run records one execution of a crew.
type Run struct {
	// ID is the unique identifier for this run.
	ID string `json:"id"`
	// CrewFile is the definition file the crew was built from.
	CrewFile string `json:"crew_file"`
	// Model is the model name used for agent turns.
	Model string `json:"model"`
	// Status is the current state of the run.
	Status RunStatus `json:"status"`
	// Error holds the failure message if the run failed.
	Error string `json:"error,omitempty"`
	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`
	// FinishedAt is when the run ended, if it has.
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// AgentResult records one agent's output within a run.
type AgentResult struct {
	// RunID is the run this result belongs to.
	RunID string `json:"run_id"`
	// Position is the agent's place in the execution order, 0-based.
	Position int `json:"position"`
	// AgentName is the agent's name at completion time.
	AgentName string `json:"agent_name"`
	// Output is the exact string the agent produced.
	Output string `json:"output"`
}
