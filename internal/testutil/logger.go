package testutil

import (
	"io"
	"log/slog"

	"github.com/mcoot/playerstore/internal/model"
)

// NopLogger returns a logger that discards all output.
// Use this in tests to avoid log noise.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// SamplePlayers returns the registry left behind by creating player1 and
// player2 and giving them 10 and 20 points
func SamplePlayers() []model.Player {
	return []model.Player{
		{ID: 1, Nick: "player1", Points: 10, Online: true},
		{ID: 2, Nick: "player2", Points: 20, Online: true},
	}
}
