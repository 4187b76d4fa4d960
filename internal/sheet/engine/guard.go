package engine

// guard marks a section that must not be re-entered. Nested attempts are
// dropped rather than queued.
type guard struct {
	held bool
}

// enter claims the guard. When ok is false the caller is nested inside an
// active section and must return without side effects.
func (g *guard) enter() (release func(), ok bool) {
	if g.held {
		return func() {}, false
	}
	g.held = true
	return func() { g.held = false }, true
}

func (g *guard) active() bool { return g.held }

// gate is a two-state latch for confirmation dialogs: idle or armed.
type gate struct {
	armed bool
}

// arm moves idle to armed and reports whether it did.
func (g *gate) arm() bool {
	if g.armed {
		return false
	}
	g.armed = true
	return true
}

// disarm moves armed to idle and reports whether it did.
func (g *gate) disarm() bool {
	if !g.armed {
		return false
	}
	g.armed = false
	return true
}
