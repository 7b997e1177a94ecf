package registry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"github.com/mcoot/playerstore/internal/model"
	"github.com/mcoot/playerstore/internal/storage"
)

// DefaultMaxNicknameLength is the longest nickname accepted in strict mode
const DefaultMaxNicknameLength = 15

// Config holds configuration for the registry service
type Config struct {
	// StrictValidation enforces the nickname length bound and positive point
	// deltas. When false only empty nicknames are rejected.
	StrictValidation bool
	// MaxNicknameLength is measured in runes and only applies in strict mode
	MaxNicknameLength int
}

// DefaultConfig returns default registry configuration
func DefaultConfig() Config {
	return Config{
		StrictValidation:  false,
		MaxNicknameLength: DefaultMaxNicknameLength,
	}
}

// Service owns the in-memory player registry and mirrors every mutation to
// its provider before returning. It is not safe for concurrent use.
type Service struct {
	provider storage.Provider
	cfg      Config
	logger   *slog.Logger

	players map[model.PlayerID]*model.Player
	order   []model.PlayerID // insertion order, used for snapshots
	nextID  model.PlayerID
}

// New creates a registry service seeded from the provider's last snapshot
func New(ctx context.Context, provider storage.Provider, cfg Config, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if cfg.MaxNicknameLength <= 0 {
		cfg.MaxNicknameLength = DefaultMaxNicknameLength
	}

	s := &Service{
		provider: provider,
		cfg:      cfg,
		logger:   logger.With(slog.String("component", "registry")),
	}
	s.reset(nil)

	if err := s.InitStorages(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// CreatePlayer registers a new online player with zero points and returns its id
func (s *Service) CreatePlayer(ctx context.Context, nick string) (model.PlayerID, error) {
	if err := s.validateNickname(nick); err != nil {
		return 0, err
	}
	for _, p := range s.players {
		if p.Nick == nick {
			return 0, fmt.Errorf("%w: %s", model.ErrDuplicateNickname, nick)
		}
	}

	player := model.NewPlayer(s.nextID, nick)
	s.players[player.ID] = player
	s.order = append(s.order, player.ID)
	s.nextID++

	s.logger.Debug("player created",
		slog.Int("player_id", int(player.ID)),
		slog.String("nick", nick),
	)

	if err := s.persist(ctx); err != nil {
		return 0, err
	}
	return player.ID, nil
}

// GetPlayerByID returns a copy of the player with the given id
func (s *Service) GetPlayerByID(id model.PlayerID) (model.Player, error) {
	player, err := s.lookup(id)
	if err != nil {
		return model.Player{}, err
	}
	return player.Clone(), nil
}

// DeletePlayer removes a player and returns its final state.
// The id is never handed out again.
func (s *Service) DeletePlayer(ctx context.Context, id model.PlayerID) (model.Player, error) {
	player, err := s.lookup(id)
	if err != nil {
		return model.Player{}, err
	}

	delete(s.players, id)
	for i, pid := range s.order {
		if pid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	s.logger.Debug("player deleted", slog.Int("player_id", int(id)))

	removed := player.Clone()
	if err := s.persist(ctx); err != nil {
		return model.Player{}, err
	}
	return removed, nil
}

// AddPoints adds delta to a player's score and returns the new total
func (s *Service) AddPoints(ctx context.Context, id model.PlayerID, delta int) (int, error) {
	player, err := s.lookup(id)
	if err != nil {
		return 0, err
	}
	if s.cfg.StrictValidation && delta <= 0 {
		return 0, fmt.Errorf("%w: points delta must be positive, got %d", model.ErrInvalidArgument, delta)
	}

	player.Points += delta

	s.logger.Debug("points added",
		slog.Int("player_id", int(id)),
		slog.Int("delta", delta),
		slog.Int("points", player.Points),
	)

	if err := s.persist(ctx); err != nil {
		return 0, err
	}
	return player.Points, nil
}

// InitStorages replaces the in-memory registry with the provider's snapshot.
// Unsaved in-memory changes are discarded. On failure the current state is kept.
// The id counter never moves backwards, so ids handed out earlier in this
// process stay retired even if the snapshot no longer mentions them.
func (s *Service) InitStorages(ctx context.Context) error {
	players, err := s.provider.Load(ctx)
	if err != nil {
		s.logger.Error("failed to load players", slog.String("error", err.Error()))
		return model.NewStorageError("load", err)
	}

	floor := s.nextID
	s.reset(players)
	if floor > s.nextID {
		s.nextID = floor
	}

	s.logger.Info("registry loaded",
		slog.Int("players", len(s.order)),
		slog.Int("next_id", int(s.nextID)),
	)
	return nil
}

// Players returns copies of all players in insertion order
func (s *Service) Players() []model.Player {
	out := make([]model.Player, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.players[id].Clone())
	}
	return out
}

// Len returns the number of registered players
func (s *Service) Len() int {
	return len(s.order)
}

// NextID returns the id the next created player will receive
func (s *Service) NextID() model.PlayerID {
	return s.nextID
}

func (s *Service) validateNickname(nick string) error {
	if nick == "" {
		return fmt.Errorf("%w: nickname must not be empty", model.ErrInvalidArgument)
	}
	if s.cfg.StrictValidation && utf8.RuneCountInString(nick) > s.cfg.MaxNicknameLength {
		return fmt.Errorf("%w: nickname longer than %d characters: %s",
			model.ErrInvalidArgument, s.cfg.MaxNicknameLength, nick)
	}
	return nil
}

// reset rebuilds the registry from a snapshot and reseeds the id counter.
// Later duplicates of an id overwrite earlier ones but keep the first position.
func (s *Service) reset(players []model.Player) {
	s.players = make(map[model.PlayerID]*model.Player, len(players))
	s.order = make([]model.PlayerID, 0, len(players))
	s.nextID = 1

	for _, p := range players {
		player := p
		if _, seen := s.players[player.ID]; !seen {
			s.order = append(s.order, player.ID)
		}
		s.players[player.ID] = &player
		if player.ID >= s.nextID {
			s.nextID = player.ID + 1
		}
	}
}

// persist writes the full registry through the provider.
// A failure leaves memory ahead of storage until the next successful save
// or InitStorages.
func (s *Service) persist(ctx context.Context) error {
	if err := s.provider.Save(ctx, s.Players()); err != nil {
		s.logger.Error("failed to save players; memory and storage have diverged",
			slog.Int("players", len(s.order)),
			slog.String("error", err.Error()),
		)
		return model.NewStorageError("save", err)
	}
	return nil
}

// lookup finds a live player. Ids below 1 are never assigned.
func (s *Service) lookup(id model.PlayerID) (*model.Player, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("%w: id %d", model.ErrPlayerNotFound, id)
	}
	player, ok := s.players[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", model.ErrPlayerNotFound, id)
	}
	return player, nil
}
