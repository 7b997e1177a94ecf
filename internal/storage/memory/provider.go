package memory

import (
	"context"
	"sync"

	"github.com/mcoot/playerstore/internal/model"
	"github.com/mcoot/playerstore/internal/storage"
)

// Provider is an in-memory implementation of the provider interface.
// It keeps a private copy of the last saved snapshot.
type Provider struct {
	mu sync.Mutex

	players []model.Player
	saves   int

	// Injected failures, returned instead of touching the snapshot
	loadErr error
	saveErr error
}

// New creates an empty in-memory provider
func New() *Provider {
	return &Provider{}
}

// NewWithPlayers creates a provider pre-seeded with a snapshot
func NewWithPlayers(players []model.Player) *Provider {
	return &Provider{players: clonePlayers(players)}
}

// Ensure Provider implements the interface
var _ storage.Provider = (*Provider)(nil)

func (p *Provider) Load(ctx context.Context) ([]model.Player, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loadErr != nil {
		return nil, p.loadErr
	}
	return clonePlayers(p.players), nil
}

func (p *Provider) Save(ctx context.Context, players []model.Player) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.saveErr != nil {
		return p.saveErr
	}
	p.players = clonePlayers(players)
	p.saves++
	return nil
}

// Snapshot returns a copy of the last saved snapshot
func (p *Provider) Snapshot() []model.Player {
	p.mu.Lock()
	defer p.mu.Unlock()
	return clonePlayers(p.players)
}

// Saves returns how many successful saves have happened
func (p *Provider) Saves() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saves
}

// FailLoad makes subsequent loads return err (nil clears it)
func (p *Provider) FailLoad(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loadErr = err
}

// FailSave makes subsequent saves return err (nil clears it)
func (p *Provider) FailSave(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saveErr = err
}

func clonePlayers(players []model.Player) []model.Player {
	out := make([]model.Player, len(players))
	copy(out, players)
	return out
}
