package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/playerstore/internal/model"
	"github.com/mcoot/playerstore/internal/storage"
)

// Provider keeps the registry snapshot as a JSON array under a single Redis key.
// The value uses the same encoding as the file provider.
type Provider struct {
	client *redis.Client
	key    string
}

// New creates a new Redis provider and verifies the connection
func New(cfg Config) (*Provider, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis provider with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Provider {
	return &Provider{
		client: client,
		key:    playersKey(cfg.Namespace),
	}
}

// Close closes the Redis connection
func (p *Provider) Close() error {
	return p.client.Close()
}

// Ensure Provider implements the interface
var _ storage.Provider = (*Provider)(nil)

func (p *Provider) Load(ctx context.Context) ([]model.Player, error) {
	data, err := p.client.Get(ctx, p.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []model.Player{}, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return []model.Player{}, nil
	}

	var players []model.Player
	if err := json.Unmarshal(data, &players); err != nil {
		return nil, fmt.Errorf("decode %s: %w", p.key, err)
	}
	if players == nil {
		players = []model.Player{}
	}
	return players, nil
}

func (p *Provider) Save(ctx context.Context, players []model.Player) error {
	if players == nil {
		players = []model.Player{}
	}
	data, err := json.Marshal(players)
	if err != nil {
		return err
	}

	// No TTL: the snapshot is the registry's only durable copy
	return p.client.Set(ctx, p.key, data, 0).Err()
}
