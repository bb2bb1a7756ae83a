package command

import (
	"context"
	"fmt"

	"github.com/mwizard/mwiz-cli/internal/api"
	"github.com/mwizard/mwiz-cli/internal/config"
	"github.com/mwizard/mwiz-cli/internal/generate"
	"github.com/mwizard/mwiz-cli/internal/history"
	"github.com/mwizard/mwiz-cli/internal/review"
	"github.com/mwizard/mwiz-cli/internal/tasks"
)

// Deps bundles the shared dependencies commands pull from the cobra
// context. History may be nil when the local database cannot be opened.
type Deps struct {
	Config     *config.Config
	Client     *api.Client
	Tracker    *tasks.Tracker
	History    *history.Store
	Dispatcher *generate.Dispatcher
	Session    *review.Session
}

type depsKey struct{}

// WithDeps returns a new context carrying the dependency bundle
func WithDeps(ctx context.Context, deps *Deps) context.Context {
	return context.WithValue(ctx, depsKey{}, deps)
}

// GetDeps retrieves the dependency bundle from the context
func GetDeps(ctx context.Context) *Deps {
	if deps, ok := ctx.Value(depsKey{}).(*Deps); ok {
		return deps
	}
	return nil
}

// RequireDeps retrieves the dependency bundle and returns an error if not found
func RequireDeps(ctx context.Context) (*Deps, error) {
	deps := GetDeps(ctx)
	if deps == nil {
		return nil, fmt.Errorf("command context not initialized")
	}
	return deps, nil
}
