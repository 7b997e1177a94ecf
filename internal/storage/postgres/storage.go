package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/mcoot/playerstore/internal/model"
	"github.com/mcoot/playerstore/internal/storage"
)

// Provider stores the registry in a PostgreSQL table, one row per player.
// Rows carry their snapshot position so Load can restore insertion order.
type Provider struct {
	db    *sql.DB
	table string
}

// New opens a connection pool and verifies it
func New(cfg Config) (*Provider, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return NewWithDB(db, cfg), nil
}

// NewWithDB creates a provider on an existing pool (for testing)
func NewWithDB(db *sql.DB, cfg Config) *Provider {
	table := cfg.Table
	if table == "" {
		table = DefaultConfig().Table
	}
	return &Provider{db: db, table: table}
}

// Close closes the connection pool
func (p *Provider) Close() error {
	return p.db.Close()
}

// Ensure Provider implements the interface
var _ storage.Provider = (*Provider)(nil)

// EnsureSchema creates the players table if it does not exist
func (p *Provider) EnsureSchema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, createTableSQL(p.table))
	return err
}

func (p *Provider) Load(ctx context.Context) ([]model.Player, error) {
	rows, err := p.db.QueryContext(ctx, selectPlayersSQL(p.table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := []model.Player{}
	for rows.Next() {
		var pl model.Player
		if err := rows.Scan(&pl.ID, &pl.Nick, &pl.Points, &pl.Online); err != nil {
			return nil, err
		}
		players = append(players, pl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

// Save replaces every row in one transaction, bulk loading with COPY
func (p *Provider) Save(ctx context.Context, players []model.Player) (err error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, deletePlayersSQL(p.table)); err != nil {
		return err
	}

	if len(players) > 0 {
		stmt, err := tx.PrepareContext(ctx, pq.CopyIn(p.table, "id", "nick", "points", "online", "position"))
		if err != nil {
			return err
		}
		for i, pl := range players {
			if _, err := stmt.ExecContext(ctx, int(pl.ID), pl.Nick, pl.Points, pl.Online, i); err != nil {
				_ = stmt.Close()
				return err
			}
		}
		// Flush the COPY buffer
		if _, err := stmt.ExecContext(ctx); err != nil {
			_ = stmt.Close()
			return err
		}
		if err := stmt.Close(); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func createTableSQL(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id       INTEGER PRIMARY KEY,
	nick     TEXT    NOT NULL,
	points   INTEGER NOT NULL DEFAULT 0,
	online   BOOLEAN NOT NULL DEFAULT TRUE,
	position INTEGER NOT NULL
)`, pq.QuoteIdentifier(table))
}

func selectPlayersSQL(table string) string {
	return fmt.Sprintf("SELECT id, nick, points, online FROM %s ORDER BY position", pq.QuoteIdentifier(table))
}

func deletePlayersSQL(table string) string {
	return fmt.Sprintf("DELETE FROM %s", pq.QuoteIdentifier(table))
}
