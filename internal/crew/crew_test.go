package crew

import "testing"

func TestCrewAddPreservesOrder(t *testing.T) {
	c := New()
	a := newTestAgent("a")
	b := newTestAgent("b")
	c.Add(a, b)

	agents := c.Agents()
	if len(agents) != 2 || agents[0] != a || agents[1] != b {
		t.Errorf("expected [a b] in registration order, got %v", agents)
	}
}

func TestCrewNewAgentRegisters(t *testing.T) {
	c := New()
	a := c.NewAgent(AgentConfig{Name: "a", Task: "do a"})

	if c.Size() != 1 {
		t.Fatalf("expected size 1, got %d", c.Size())
	}
	if c.Agents()[0] != a {
		t.Error("expected NewAgent to register the returned agent")
	}
}

func TestActivateScopesRegistration(t *testing.T) {
	c := New()
	release := c.Activate()
	inside := NewAgent(AgentConfig{Name: "inside", Task: "t"})
	release()
	outside := NewAgent(AgentConfig{Name: "outside", Task: "t"})

	if c.Size() != 1 {
		t.Fatalf("expected 1 member, got %d", c.Size())
	}
	if c.Agents()[0] != inside {
		t.Error("expected the agent constructed inside the scope to be a member")
	}
	_ = outside
}

func TestReleaseIsUnconditional(t *testing.T) {
	c := New()

	func() {
		release := c.Activate()
		defer release()
		panicThenRecover(t)
	}()

	after := NewAgent(AgentConfig{Name: "after", Task: "t"})
	if c.Size() != 0 {
		t.Errorf("expected no members after scope exit, got %d", c.Size())
	}
	_ = after
}

// panicThenRecover simulates a scope body that fails.
func panicThenRecover(t *testing.T) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected a panic")
		}
	}()
	panic("scope body failed")
}

func TestSecondActivateOverwrites(t *testing.T) {
	c1 := New()
	c2 := New()

	release1 := c1.Activate()
	release2 := c2.Activate()
	a := NewAgent(AgentConfig{Name: "a", Task: "t"})
	release2()
	release1()

	if c1.Size() != 0 {
		t.Errorf("expected c1 empty, got %d members", c1.Size())
	}
	if c2.Size() != 1 || c2.Agents()[0] != a {
		t.Error("expected a registered into the most recently activated crew")
	}
}

func TestCrewNewAgentIgnoresActiveCrew(t *testing.T) {
	c := New()
	other := New()
	release := other.Activate()
	defer release()

	a := c.NewAgent(AgentConfig{Name: "a", Task: "t"})

	if c.Size() != 1 || c.Agents()[0] != a {
		t.Error("expected explicit-handle construction to register into c")
	}
	if other.Size() != 0 {
		t.Errorf("expected the active crew untouched, got %d members", other.Size())
	}
}
