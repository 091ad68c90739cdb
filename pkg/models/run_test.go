package models

import "testing"

func TestRunStatusValid(t *testing.T) {
	valid := []RunStatus{RunRunning, RunCompleted, RunFailed}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}

	if RunStatus("paused").Valid() {
		t.Error("expected unknown status to be invalid")
	}
	if RunStatus("").Valid() {
		t.Error("expected empty status to be invalid")
	}
}
