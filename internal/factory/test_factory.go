package factory

import (
	"context"

	"github.com/mcoot/playerstore/internal/model"
	"github.com/mcoot/playerstore/internal/services/registry"
	"github.com/mcoot/playerstore/internal/storage/memory"
	"github.com/mcoot/playerstore/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Direct access to the backing provider for assertions and fault injection
	MemoryProvider *memory.Provider
}

// NewTestApp creates an App on an in-memory provider seeded with players
func NewTestApp(ctx context.Context, cfg registry.Config, seed ...model.Player) (*TestApp, error) {
	provider := memory.NewWithPlayers(seed)

	app, err := newWithDependencies(ctx, provider, cfg, testutil.NopLogger())
	if err != nil {
		return nil, err
	}

	return &TestApp{
		App:            app,
		MemoryProvider: provider,
	}, nil
}
