package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lol-tracker/internal/domain"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

type PlayerRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewPlayerRepository(db *sql.DB, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		db:     db,
		logger: logger,
	}
}

const playerColumns = `discord_id, server_id, username, tag, puuid, summoner_id, account_id,
	start_tier, start_division, start_lp, start_value,
	current_tier, current_division, current_lp, current_value, value_change,
	created_at, updated_at`

// Create inserts a new player row. Uniqueness of (discord_id, server_id)
// is enforced by the primary key in a single statement, so two concurrent
// registrations for the same key cannot both succeed.
func (r *PlayerRepository) Create(ctx context.Context, player *domain.Player) error {
	now := time.Now()
	player.CreatedAt = now
	player.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO players (`+playerColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		player.DiscordID, player.ServerID, player.Username, player.Tag,
		player.Puuid, player.SummonerID, player.AccountID,
		player.StartTier, player.StartDivision, player.StartLP, player.StartValue,
		player.CurrentTier, player.CurrentDivision, player.CurrentLP, player.CurrentValue, player.ValueChange,
		player.CreatedAt, player.UpdatedAt,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return domain.ErrAlreadyRegistered
		}
		r.logger.Error().Err(err).
			Str("discord_id", player.DiscordID).
			Str("server_id", player.ServerID).
			Msg("failed to insert player")
		return fmt.Errorf("failed to insert player: %w", err)
	}

	return nil
}

// Get returns the player registered for the (discordID, serverID) pair.
func (r *PlayerRepository) Get(ctx context.Context, discordID, serverID string) (*domain.Player, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+playerColumns+`
		FROM players
		WHERE discord_id = ? AND server_id = ?`,
		discordID, serverID,
	)

	player, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotRegistered
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return player, nil
}

// ListByServer returns every player registered in a server in insertion
// order, which is the retrieval order leaderboard tie-breaking relies on.
func (r *PlayerRepository) ListByServer(ctx context.Context, serverID string) ([]domain.Player, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+playerColumns+`
		FROM players
		WHERE server_id = ?
		ORDER BY rowid`,
		serverID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, *player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

// UpdateCurrentRank overwrites the current standing and derived fields.
// Start fields are never touched.
func (r *PlayerRepository) UpdateCurrentRank(ctx context.Context, player *domain.Player) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE players
		SET current_tier = ?, current_division = ?, current_lp = ?,
		    current_value = ?, value_change = ?, updated_at = ?
		WHERE discord_id = ? AND server_id = ?`,
		player.CurrentTier, player.CurrentDivision, player.CurrentLP,
		player.CurrentValue, player.ValueChange, time.Now(),
		player.DiscordID, player.ServerID,
	)
	if err != nil {
		r.logger.Error().Err(err).
			Str("discord_id", player.DiscordID).
			Str("server_id", player.ServerID).
			Msg("failed to update current rank")
		return fmt.Errorf("failed to update current rank: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update current rank: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotRegistered
	}
	return nil
}

// Delete removes every row for the (discordID, serverID) pair. More than
// one should never exist, but deletion tolerates that state.
func (r *PlayerRepository) Delete(ctx context.Context, discordID, serverID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM players
		WHERE discord_id = ? AND server_id = ?`,
		discordID, serverID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotRegistered
	}

	r.logger.Debug().
		Str("discord_id", discordID).
		Str("server_id", serverID).
		Int64("rows", affected).
		Msg("player deleted")
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row rowScanner) (*domain.Player, error) {
	var p domain.Player
	err := row.Scan(
		&p.DiscordID, &p.ServerID, &p.Username, &p.Tag,
		&p.Puuid, &p.SummonerID, &p.AccountID,
		&p.StartTier, &p.StartDivision, &p.StartLP, &p.StartValue,
		&p.CurrentTier, &p.CurrentDivision, &p.CurrentLP, &p.CurrentValue, &p.ValueChange,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
