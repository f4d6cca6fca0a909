package auth

import "strings"

// GateState is the page-guard state for one guarded route.
type GateState string

const (
	GateChecking GateState = "checking"
	GateAllowed  GateState = "allowed"
	GateDenied   GateState = "denied"
)

// GateEvent drives the gate out of Checking.
type GateEvent int

const (
	// EventResolved is delivered when reconciliation produced a principal.
	EventResolved GateEvent = iota + 1
	// EventUnauthenticated is delivered when reconciliation produced no principal.
	EventUnauthenticated
)

// Gate is the page-guard state machine. The zero value is not usable; use NewGate.
type Gate struct {
	state      GateState
	path       string
	signInPath string
}

// NewGate returns a gate in the Checking state for the given route.
func NewGate(path, signInPath string) *Gate {
	return &Gate{state: GateChecking, path: path, signInPath: signInPath}
}

// State returns the current state.
func (g *Gate) State() GateState { return g.state }

// Apply transitions the gate. Allowed and Denied are terminal; further events are ignored.
func (g *Gate) Apply(ev GateEvent) GateState {
	if g.state != GateChecking {
		return g.state
	}
	switch ev {
	case EventResolved:
		g.state = GateAllowed
	case EventUnauthenticated:
		g.state = GateDenied
	}
	return g.state
}

// OnSignInRoute reports whether the guarded path is the sign-in route itself.
func (g *Gate) OnSignInRoute() bool {
	p := strings.TrimSuffix(g.path, "/")
	s := strings.TrimSuffix(g.signInPath, "/")
	return p == s
}

// ShouldPromptSignIn reports whether the client should show the sign-in prompt
// that links to the sign-in route. Denied on the sign-in route itself renders the
// form in place instead.
func (g *Gate) ShouldPromptSignIn() bool {
	return g.state == GateDenied && !g.OnSignInRoute()
}
