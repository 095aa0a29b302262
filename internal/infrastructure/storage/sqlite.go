package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"svw.info/gridoku/internal/domain"
)

// SQLite keeps puzzles in a single-file database. Grids and the
// strategy list travel as JSON columns; everything queryable stays
// relational.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at path and migrates the
// schema.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS puzzles (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		seed INTEGER NOT NULL,
		size INTEGER NOT NULL,
		requested INTEGER NOT NULL,
		actual INTEGER NOT NULL,
		strategies TEXT NOT NULL DEFAULT '[]',
		givens TEXT NOT NULL,
		solution TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_puzzles_created_at ON puzzles(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) Save(ctx context.Context, p *domain.Puzzle) error {
	if p == nil || strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("invalid puzzle: missing ID")
	}
	givens, err := json.Marshal(p.Givens)
	if err != nil {
		return fmt.Errorf("encode givens: %w", err)
	}
	solution, err := json.Marshal(p.Solution)
	if err != nil {
		return fmt.Errorf("encode solution: %w", err)
	}
	strategies, err := json.Marshal(p.Strategies)
	if err != nil {
		return fmt.Errorf("encode strategies: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO puzzles (id, name, seed, size, requested, actual, strategies, givens, solution, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			seed = excluded.seed,
			size = excluded.size,
			requested = excluded.requested,
			actual = excluded.actual,
			strategies = excluded.strategies,
			givens = excluded.givens,
			solution = excluded.solution`,
		p.ID, p.Name, p.Seed, p.Size, int(p.Requested), int(p.Actual),
		string(strategies), string(givens), string(solution), p.CreatedAt)
	if err != nil {
		return fmt.Errorf("save puzzle: %w", err)
	}
	return nil
}

func (s *SQLite) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, seed, size, requested, actual, strategies, givens, solution, created_at
		FROM puzzles WHERE id = ?`, id)
	var p domain.Puzzle
	var requested, actual int
	var strategies, givens, solution string
	err := row.Scan(&p.ID, &p.Name, &p.Seed, &p.Size, &requested, &actual,
		&strategies, &givens, &solution, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("load puzzle %s: %w", id, err)
	}
	p.Requested = domain.Difficulty(requested)
	p.Actual = domain.Difficulty(actual)
	if err := json.Unmarshal([]byte(strategies), &p.Strategies); err != nil {
		return nil, fmt.Errorf("decode strategies: %w", err)
	}
	if err := json.Unmarshal([]byte(givens), &p.Givens); err != nil {
		return nil, fmt.Errorf("decode givens: %w", err)
	}
	if err := json.Unmarshal([]byte(solution), &p.Solution); err != nil {
		return nil, fmt.Errorf("decode solution: %w", err)
	}
	return &p, nil
}

func (s *SQLite) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, size, actual, created_at
		FROM puzzles ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list puzzles: %w", err)
	}
	defer rows.Close()
	var out []domain.PuzzleMeta
	for rows.Next() {
		var m domain.PuzzleMeta
		var actual int
		if err := rows.Scan(&m.ID, &m.Name, &m.Size, &actual, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Actual = domain.Difficulty(actual)
		out = append(out, m)
	}
	return out, rows.Err()
}
