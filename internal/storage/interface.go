package storage

import (
	"context"

	"github.com/mcoot/playerstore/internal/model"
)

// Provider persists the full player registry as a single snapshot.
//
// Load returns the last saved snapshot in the order it was saved, or an empty
// slice if nothing has been persisted yet. Save replaces any previously
// persisted snapshot; it never appends.
type Provider interface {
	Load(ctx context.Context) ([]model.Player, error)
	Save(ctx context.Context, players []model.Player) error
}
