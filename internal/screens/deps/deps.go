// Package deps carries what screens share: the session, the gateway and
// factories for screens that would otherwise import each other.
package deps

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/learnlab/internal/gateway"
	"github.com/abhisek/learnlab/internal/screen"
	"github.com/abhisek/learnlab/internal/session"
	"github.com/abhisek/learnlab/internal/store"
)

// Deps is shared by every screen of one program run.
type Deps struct {
	State        *session.SessionState
	Gateway      gateway.Gateway
	Log          *zap.Logger
	NumQuestions int

	// Calls is the call log; nil when the store is disabled.
	Calls store.EventRepo

	// Ctx bounds every gateway call. Defaults to context.Background.
	Ctx context.Context

	// Screen factories, set by the app.
	NewCreatePlan func() screen.Screen
	NewViewPlan   func() screen.Screen
}

// Context returns the context gateway calls run under.
func (d *Deps) Context() context.Context {
	if d.Ctx == nil {
		return context.Background()
	}
	return d.Ctx
}

// Logger returns the logger, never nil.
func (d *Deps) Logger() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}

// Cmd runs f off the UI loop. The app applies the Result it produces.
func (d *Deps) Cmd(f session.Fetch) tea.Cmd {
	ctx := d.Context()
	return func() tea.Msg {
		return f(ctx)
	}
}
