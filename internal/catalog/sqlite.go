package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"outcomepicker/internal/domain"
	"outcomepicker/internal/pagination"
)

// SQLiteStore is an outcome catalog backed by a SQLite database
type SQLiteStore struct {
	conn *sql.DB
	path string
	mu   sync.RWMutex
}

// OpenSQLite opens the database at path, creating parent directories.
// WAL mode is enabled so `import` can run while a picker is open.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		conn.SetMaxOpenConns(1)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	return &SQLiteStore{conn: conn, path: path}, nil
}

// Path returns the path to the database file
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.Close()
}

// Migrate applies all pending schema migrations
func (s *SQLiteStore) Migrate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_version table: %w", err)
	}

	var currentVersion int
	row := s.conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("get schema version: %w", err)
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, `
			CREATE TABLE IF NOT EXISTS outcomes (
				id          TEXT PRIMARY KEY,
				label       TEXT NOT NULL DEFAULT '',
				title       TEXT NOT NULL DEFAULT '',
				description TEXT NOT NULL DEFAULT ''
			)
		`},
		{2, `CREATE INDEX IF NOT EXISTS idx_outcomes_title ON outcomes(title COLLATE NOCASE)`},
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		tx, err := s.conn.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.version, err)
		}
		if _, err := tx.Exec(m.sql); err != nil {
			tx.Rollback()
			return fmt.Errorf("apply migration %d: %w", m.version, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", m.version); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.version, err)
		}
	}
	return nil
}

// Upsert inserts or replaces outcomes in a single transaction
func (s *SQLiteStore) Upsert(ctx context.Context, outcomes []domain.Outcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO outcomes (id, label, title, description) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			label = excluded.label,
			title = excluded.title,
			description = excluded.description
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, o := range outcomes {
		if _, err := stmt.ExecContext(ctx, o.ID, o.Label, o.Title, o.Description); err != nil {
			tx.Rollback()
			return fmt.Errorf("upsert outcome %s: %w", o.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}
	return nil
}

// Count returns the number of stored outcomes
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM outcomes").Scan(&n); err != nil {
		return 0, fmt.Errorf("count outcomes: %w", err)
	}
	return n, nil
}

// Search matches the query against id, label, title and description and
// returns one page ordered by label then title
func (s *SQLiteStore) Search(ctx context.Context, q Query) (domain.ResultPage, error) {
	q = normalize(q)
	s.mu.RLock()
	defer s.mu.RUnlock()

	where := ""
	var args []any
	if text := strings.TrimSpace(q.Text); text != "" {
		pattern := "%" + escapeLike(text) + "%"
		where = `WHERE id LIKE ? ESCAPE '\' OR label LIKE ? ESCAPE '\' OR title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\'`
		args = []any{pattern, pattern, pattern, pattern}
	}

	var page domain.ResultPage
	if err := s.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM outcomes "+where, args...).Scan(&page.Total); err != nil {
		return domain.ResultPage{}, fmt.Errorf("count matches: %w", err)
	}

	query := "SELECT id, label, title, description FROM outcomes " + where +
		" ORDER BY label COLLATE NOCASE, title COLLATE NOCASE, id LIMIT ? OFFSET ?"
	rows, err := s.conn.QueryContext(ctx, query, append(args, q.PageSize, pagination.Offset(q.Page, q.PageSize))...)
	if err != nil {
		return domain.ResultPage{}, fmt.Errorf("search outcomes: %w", err)
	}
	defer rows.Close()

	entries, err := scanOutcomes(rows)
	if err != nil {
		return domain.ResultPage{}, err
	}
	page.Entries = entries
	return page, nil
}

// Get returns the outcomes for ids in the order given, skipping unknown ids
func (s *SQLiteStore) Get(ctx context.Context, ids []string) ([]domain.Outcome, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := s.conn.QueryContext(ctx,
		"SELECT id, label, title, description FROM outcomes WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return nil, fmt.Errorf("get outcomes: %w", err)
	}
	defer rows.Close()

	found, err := scanOutcomes(rows)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Outcome, len(found))
	for _, o := range found {
		byID[o.ID] = o
	}
	ordered := make([]domain.Outcome, 0, len(found))
	for _, id := range ids {
		if o, ok := byID[id]; ok {
			ordered = append(ordered, o)
			delete(byID, id)
		}
	}
	return ordered, nil
}

func scanOutcomes(rows *sql.Rows) ([]domain.Outcome, error) {
	var out []domain.Outcome
	for rows.Next() {
		var o domain.Outcome
		if err := rows.Scan(&o.ID, &o.Label, &o.Title, &o.Description); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outcomes: %w", err)
	}
	return out, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
