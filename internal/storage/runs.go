package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/dinorun/internal/achievements"
	"github.com/vovakirdan/dinorun/internal/games/dino/sim"
)

// Ensure Store can back the achievements recorder
var _ achievements.Store = (*Store)(nil)

// Progress returns the store as an achievements.Store, or nil for a nil
// store so callers can tell persistence is off.
func (s *Store) Progress() achievements.Store {
	if s == nil {
		return nil
	}
	return s
}

// RunEntry is one finished run.
type RunEntry struct {
	ID         int64
	GameID     string
	Difficulty string
	Stats      sim.SessionStats
	CreatedAt  time.Time
}

// SaveRun records a finished run, its score, its share of the totals and the
// tracker's achievement progress in one transaction. Totals are added in SQL
// so sessions sharing the database accumulate instead of overwriting.
func (s *Store) SaveRun(gameID string, run achievements.Run, snap achievements.Snapshot) error {
	stats, difficulty := run.Stats, run.Difficulty

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(
		`INSERT INTO runs (game_id, difficulty, score, jumps, ducks, obstacles_avoided, power_ups_collected, max_combo, ticks)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		gameID, string(difficulty), stats.Score, stats.Jumps, stats.Ducks,
		stats.ObstaclesAvoided, stats.PowerUpsCollected, stats.MaxCombo, stats.Ticks,
	); err != nil {
		return fmt.Errorf("storage: cannot save run: %w", err)
	}

	if _, err := tx.Exec(
		"INSERT INTO scores (game_id, difficulty, score) VALUES (?, ?, ?)",
		gameID, string(difficulty), stats.Score,
	); err != nil {
		return fmt.Errorf("storage: cannot save score: %w", err)
	}

	if err := saveSnapshot(tx, gameID, snap); err != nil {
		return err
	}
	if err := addTotals(tx, gameID, run.Totals); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return nil
}

func saveSnapshot(tx *sql.Tx, gameID string, snap achievements.Snapshot) error {
	for id, p := range snap.Achievements {
		if _, err := tx.Exec(
			`INSERT INTO achievements (game_id, achievement_id, progress, unlocked, unlocked_at)
			 VALUES (?, ?, ?, ?, CASE WHEN ? THEN CURRENT_TIMESTAMP END)
			 ON CONFLICT (game_id, achievement_id) DO UPDATE SET
			   progress = MAX(progress, excluded.progress),
			   unlocked = MAX(unlocked, excluded.unlocked),
			   unlocked_at = COALESCE(unlocked_at, excluded.unlocked_at)`,
			gameID, id, p.Progress, p.Unlocked, p.Unlocked,
		); err != nil {
			return fmt.Errorf("storage: cannot save achievement %s: %w", id, err)
		}
	}
	return nil
}

func addTotals(tx *sql.Tx, gameID string, t achievements.Totals) error {
	if _, err := tx.Exec(
		`INSERT INTO totals (game_id, games_played, total_score, jumps, ducks, obstacles_avoided, longest_combo, play_time_seconds)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (game_id) DO UPDATE SET
		   games_played = games_played + excluded.games_played,
		   total_score = total_score + excluded.total_score,
		   jumps = jumps + excluded.jumps,
		   ducks = ducks + excluded.ducks,
		   obstacles_avoided = obstacles_avoided + excluded.obstacles_avoided,
		   longest_combo = MAX(longest_combo, excluded.longest_combo),
		   play_time_seconds = play_time_seconds + excluded.play_time_seconds`,
		gameID, t.GamesPlayed, t.TotalScore, t.Jumps, t.Ducks, t.ObstaclesAvoided, t.LongestCombo, t.PlayTimeSeconds,
	); err != nil {
		return fmt.Errorf("storage: cannot save totals: %w", err)
	}
	return nil
}

// LoadSnapshot returns the stored achievement progress and totals.
// A game with no saved runs yields an empty snapshot.
func (s *Store) LoadSnapshot(gameID string) (achievements.Snapshot, error) {
	snap := achievements.Snapshot{Achievements: make(map[string]achievements.Progress)}

	rows, err := s.db.Query(
		"SELECT achievement_id, progress, unlocked FROM achievements WHERE game_id = ?",
		gameID,
	)
	if err != nil {
		return snap, fmt.Errorf("storage: cannot query achievements: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var p achievements.Progress
		if err := rows.Scan(&id, &p.Progress, &p.Unlocked); err != nil {
			return snap, fmt.Errorf("storage: cannot scan achievement: %w", err)
		}
		snap.Achievements[id] = p
	}
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("storage: row iteration error: %w", err)
	}

	totals, err := s.Totals(gameID)
	if err != nil {
		return snap, err
	}
	snap.Totals = totals
	return snap, nil
}

// Totals returns the cumulative statistics for a game.
func (s *Store) Totals(gameID string) (achievements.Totals, error) {
	var t achievements.Totals
	err := s.db.QueryRow(
		`SELECT games_played, total_score, jumps, ducks, obstacles_avoided, longest_combo, play_time_seconds
		 FROM totals WHERE game_id = ?`,
		gameID,
	).Scan(&t.GamesPlayed, &t.TotalScore, &t.Jumps, &t.Ducks, &t.ObstaclesAvoided, &t.LongestCombo, &t.PlayTimeSeconds)
	if errors.Is(err, sql.ErrNoRows) {
		return t, nil
	}
	if err != nil {
		return t, fmt.Errorf("storage: cannot query totals: %w", err)
	}
	return t, nil
}

// RecentRuns returns the latest runs for a game, newest first.
func (s *Store) RecentRuns(gameID string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, difficulty, score, jumps, ducks, obstacles_avoided, power_ups_collected, max_combo, ticks, created_at
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunEntry
	for rows.Next() {
		var r RunEntry
		var createdAt any
		st := &r.Stats
		if err := rows.Scan(&r.ID, &r.GameID, &r.Difficulty, &st.Score, &st.Jumps, &st.Ducks,
			&st.ObstaclesAvoided, &st.PowerUpsCollected, &st.MaxCombo, &st.Ticks, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan run: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}
