package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"luckymint/internal/models"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteStore persists rounds and participants in a local SQLite file.
type SQLiteStore struct {
	conn *sql.DB
}

// OpenSQLite opens the database at path and applies the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteStore{conn: conn}, nil
}

func (s *SQLiteStore) Close() error { return s.conn.Close() }

func (s *SQLiteStore) CreateRound(ctx context.Context, round models.Round) (models.Round, error) {
	if round.ID == "" {
		round.ID = uuid.New().String()
	}
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO rounds (id, start_time, remaining_supply, jackpot_pool, total_mints, lucky_number)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		round.ID, toUnix(round.StartTime), round.RemainingSupply, round.JackpotPool, round.TotalMints, round.LuckyNumber)
	if err != nil {
		return models.Round{}, fmt.Errorf("insert round: %w", err)
	}
	return round, nil
}

func (s *SQLiteStore) GetRound(ctx context.Context, roundID string) (models.Round, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT id, start_time, remaining_supply, jackpot_pool, total_mints, lucky_number
		 FROM rounds WHERE id = ?`, roundID)

	var round models.Round
	var startTime int64
	err := row.Scan(&round.ID, &startTime, &round.RemainingSupply, &round.JackpotPool, &round.TotalMints, &round.LuckyNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Round{}, ErrRoundNotFound
	}
	if err != nil {
		return models.Round{}, fmt.Errorf("scan round: %w", err)
	}
	round.StartTime = fromUnix(startTime)
	return round, nil
}

func (s *SQLiteStore) GetOrCreateParticipant(ctx context.Context, participantID string) (models.Participant, error) {
	participant, err := s.GetParticipant(ctx, participantID)
	if err == nil {
		return participant, nil
	}
	if !errors.Is(err, ErrParticipantNotFound) {
		return models.Participant{}, err
	}

	_, err = s.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO participants (id) VALUES (?)`, participantID)
	if err != nil {
		return models.Participant{}, fmt.Errorf("insert participant: %w", err)
	}
	return models.Participant{ID: participantID}, nil
}

func (s *SQLiteStore) GetParticipant(ctx context.Context, participantID string) (models.Participant, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT id, last_mint_time, total_mints, best_probability, current_combo, best_combo
		 FROM participants WHERE id = ?`, participantID)

	var participant models.Participant
	var lastMint int64
	err := row.Scan(&participant.ID, &lastMint, &participant.TotalMints,
		&participant.BestProbability, &participant.CurrentCombo, &participant.BestCombo)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Participant{}, ErrParticipantNotFound
	}
	if err != nil {
		return models.Participant{}, fmt.Errorf("scan participant: %w", err)
	}
	participant.LastMintTime = fromUnix(lastMint)

	rows, err := s.conn.QueryContext(ctx,
		`SELECT name FROM badges WHERE participant_id = ? ORDER BY granted_at, rowid`, participantID)
	if err != nil {
		return models.Participant{}, fmt.Errorf("query badges: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return models.Participant{}, fmt.Errorf("scan badge: %w", err)
		}
		participant.Badges = append(participant.Badges, name)
	}
	if err := rows.Err(); err != nil {
		return models.Participant{}, fmt.Errorf("iterate badges: %w", err)
	}
	return participant, nil
}

func (s *SQLiteStore) CommitMint(ctx context.Context, round models.Round, participant models.Participant) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin commit: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE rounds SET remaining_supply = ?, jackpot_pool = ?, total_mints = ? WHERE id = ?`,
		round.RemainingSupply, round.JackpotPool, round.TotalMints, round.ID)
	if err != nil {
		return fmt.Errorf("update round: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrRoundNotFound
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO participants (id, last_mint_time, total_mints, best_probability, current_combo, best_combo)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   last_mint_time = excluded.last_mint_time,
		   total_mints = excluded.total_mints,
		   best_probability = excluded.best_probability,
		   current_combo = excluded.current_combo,
		   best_combo = excluded.best_combo`,
		participant.ID, toUnix(participant.LastMintTime), participant.TotalMints,
		participant.BestProbability, participant.CurrentCombo, participant.BestCombo)
	if err != nil {
		return fmt.Errorf("upsert participant: %w", err)
	}

	for _, badge := range participant.Badges {
		_, err = tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO badges (participant_id, name, granted_at) VALUES (?, ?, ?)`,
			participant.ID, badge, toUnix(participant.LastMintTime))
		if err != nil {
			return fmt.Errorf("insert badge: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit mint: %w", err)
	}
	return nil
}

// Timestamps are stored as unix seconds; zero means "never".

func toUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func fromUnix(v int64) time.Time {
	if v == 0 {
		return time.Time{}
	}
	return time.Unix(v, 0).UTC()
}
