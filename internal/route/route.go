// ABOUTME: Named routes and the guard gating authenticated views
// ABOUTME: Admission is based on token presence only, never validity

package route

import "fmt"

// Name identifies a view
type Name int

const (
	NameHome Name = iota
	NameCallback
	NameDashboard
	NameResume
)

// Route is a navigation target
type Route struct {
	Name     Name
	ResumeID int64
}

var (
	Home      = Route{Name: NameHome}
	Callback  = Route{Name: NameCallback}
	Dashboard = Route{Name: NameDashboard}
)

// Resume targets the detail view for id
func Resume(id int64) Route {
	return Route{Name: NameResume, ResumeID: id}
}

// Protected reports whether the route needs a session
func (r Route) Protected() bool {
	return r.Name == NameDashboard || r.Name == NameResume
}

func (r Route) String() string {
	switch r.Name {
	case NameHome:
		return "/"
	case NameCallback:
		return "/callback"
	case NameDashboard:
		return "/dashboard"
	case NameResume:
		return fmt.Sprintf("/resume/%d", r.ResumeID)
	default:
		return "unknown"
	}
}

// TokenReader is the read side of the session store
type TokenReader interface {
	Token() (string, bool)
}

// Guard decides where a navigation actually lands
type Guard struct {
	tokens TokenReader
}

// NewGuard creates a guard reading from tokens
func NewGuard(tokens TokenReader) *Guard {
	return &Guard{tokens: tokens}
}

// Resolve admits r, or redirects protected routes to Home when no token is stored
func (g *Guard) Resolve(r Route) Route {
	if !r.Protected() {
		return r
	}
	if _, ok := g.tokens.Token(); ok {
		return r
	}
	return Home
}

// NavigateMsg asks the application to switch views
type NavigateMsg struct {
	To Route
}
