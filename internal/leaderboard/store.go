// Package leaderboard is a reference implementation of the score store
// REST API, backed by SQLite. It exists so the client can be exercised
// end to end without external infrastructure.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package leaderboard

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"scoresync/pkg/record"
)

// Store manages the SQLite database holding score records
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path and runs
// migrations. Use ":memory:" for an ephemeral store.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("leaderboard: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("leaderboard: migration failed: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player_name TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(score DESC, id ASC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// List returns one page of records ordered by score descending, plus
// the total record count
func (s *Store) List(page, pageSize int) ([]record.ScoreRecord, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 100
	}

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM scores`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.db.Query(
		`SELECT id, player_name, score, created_at FROM scores
		 ORDER BY score DESC, id ASC LIMIT ? OFFSET ?`,
		pageSize, (page-1)*pageSize,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	records := []record.ScoreRecord{}
	for rows.Next() {
		var rec record.ScoreRecord
		if err := rows.Scan(&rec.ID, &rec.PlayerName, &rec.Score, &rec.CreatedAt); err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	return records, total, rows.Err()
}

// Get fetches one record by id. Returns (nil, nil) when absent.
func (s *Store) Get(id int) (*record.ScoreRecord, error) {
	var rec record.ScoreRecord
	err := s.db.QueryRow(
		`SELECT id, player_name, score, created_at FROM scores WHERE id = ?`, id,
	).Scan(&rec.ID, &rec.PlayerName, &rec.Score, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Create inserts a record and returns it with its assigned id
func (s *Store) Create(rec record.ScoreRecord) (*record.ScoreRecord, error) {
	res, err := s.db.Exec(
		`INSERT INTO scores (player_name, score, created_at) VALUES (?, ?, ?)`,
		rec.PlayerName, rec.Score, rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	rec.ID = int(id)
	return &rec, nil
}

// Update replaces a record's mutable fields. Returns false when the id
// does not exist.
func (s *Store) Update(rec record.ScoreRecord) (bool, error) {
	res, err := s.db.Exec(
		`UPDATE scores SET player_name = ?, score = ?, created_at = ? WHERE id = ?`,
		rec.PlayerName, rec.Score, rec.CreatedAt, rec.ID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Delete removes a record by id. Returns false when the id does not exist.
func (s *Store) Delete(id int) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM scores WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Rank computes a player's dense rank by score descending. The name
// match is case-sensitive; returns (nil, nil) when the player is absent.
func (s *Store) Rank(name string) (*record.RankRecord, error) {
	var score int
	err := s.db.QueryRow(
		`SELECT score FROM scores WHERE player_name = ? ORDER BY score DESC LIMIT 1`, name,
	).Scan(&score)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var better int
	if err := s.db.QueryRow(
		`SELECT COUNT(DISTINCT score) FROM scores WHERE score > ?`, score,
	).Scan(&better); err != nil {
		return nil, err
	}

	return &record.RankRecord{Player: name, Score: score, Rank: better + 1}, nil
}
