package engine

import "testing"

func TestGuardRejectsNestedEntry(t *testing.T) {
	var g guard
	release, ok := g.enter()
	if !ok || !g.active() {
		t.Fatal("expected first entry to succeed")
	}
	nested, ok := g.enter()
	if ok {
		t.Fatal("expected nested entry to be rejected")
	}
	nested()
	if !g.active() {
		t.Fatal("nested release must not clear the guard")
	}
	release()
	if g.active() {
		t.Fatal("expected guard to be released")
	}
}

func TestGateTransitions(t *testing.T) {
	var g gate
	if g.disarm() {
		t.Fatal("disarm on idle gate must fail")
	}
	if !g.arm() {
		t.Fatal("expected arm to succeed")
	}
	if g.arm() {
		t.Fatal("arm on armed gate must fail")
	}
	if !g.disarm() {
		t.Fatal("expected disarm to succeed")
	}
}
