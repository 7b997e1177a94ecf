package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mcoot/playerstore/internal/model"
	"github.com/mcoot/playerstore/internal/storage"
)

// DefaultPath is where the top-level default instantiation keeps its data
const DefaultPath = "./data.json"

// Provider stores the registry as a JSON array in a single file
type Provider struct {
	path string
}

// New creates a file provider for the given path.
// An empty path falls back to DefaultPath.
func New(path string) *Provider {
	if path == "" {
		path = DefaultPath
	}
	return &Provider{path: path}
}

// Ensure Provider implements the interface
var _ storage.Provider = (*Provider)(nil)

// Path returns the file path used by this provider
func (p *Provider) Path() string {
	return p.path
}

// Load reads the snapshot. A missing or empty file is an empty registry.
func (p *Provider) Load(ctx context.Context) ([]model.Player, error) {
	f, err := os.Open(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return []model.Player{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 {
		return []model.Player{}, nil
	}

	var players []model.Player
	if err := json.NewDecoder(f).Decode(&players); err != nil {
		return nil, fmt.Errorf("decode %s: %w", p.path, err)
	}
	if players == nil {
		// A literal "null" in the file
		players = []model.Player{}
	}
	return players, nil
}

// Save overwrites the file with the given snapshot
func (p *Provider) Save(ctx context.Context, players []model.Player) error {
	if players == nil {
		players = []model.Player{}
	}

	if dir := filepath.Dir(p.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.Create(p.path)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(f).Encode(players); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", p.path, err)
	}
	return f.Close()
}
