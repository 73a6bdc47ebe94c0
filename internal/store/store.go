// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/verte-zerg/kanjicurve/internal/kanji"
	"github.com/verte-zerg/kanjicurve/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotFound is returned when an analysis id does not exist.
var ErrNotFound = errors.New("analysis not found")

// Store wraps SQLite access for saved analyses.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id INTEGER PRIMARY KEY,
			created_at TEXT NOT NULL,
			source TEXT NOT NULL,
			total_occurrences INTEGER NOT NULL,
			total_unique INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS analysis_kanji (
			analysis_id INTEGER NOT NULL,
			kanji TEXT NOT NULL,
			occurrences INTEGER NOT NULL,
			level INTEGER NOT NULL,
			PRIMARY KEY (analysis_id, kanji)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// createdAtLayout is fixed width so that created_at sorts in time order as text.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// InsertAnalysis stores an analysis with its per-kanji counts and returns its id.
func (s *Store) InsertAnalysis(ctx context.Context, source string, createdAt time.Time, a kanji.TextAnalysis) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO analyses (created_at, source, total_occurrences, total_unique)
		 VALUES (?, ?, ?, ?)`,
		createdAt.UTC().Format(createdAtLayout),
		source,
		a.TotalOccurrences,
		a.TotalUniqueKanji,
	)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	entries := a.Entries()
	if len(entries) > 0 {
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx,
			`INSERT INTO analysis_kanji (analysis_id, kanji, occurrences, level)
			 VALUES (?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, e := range entries {
			if _, err = stmt.ExecContext(ctx, id, string(e.Kanji), e.Occurrences, int(e.Level)); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListAnalyses returns the most recent analyses, newest first.
// A non-positive limit returns all of them.
func (s *Store) ListAnalyses(ctx context.Context, limit int) ([]model.AnalysisSummary, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, source, total_occurrences, total_unique
		 FROM analyses
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.AnalysisSummary
	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(row scanner) (model.AnalysisSummary, error) {
	var summary model.AnalysisSummary
	var createdAt string
	if err := row.Scan(&summary.ID, &createdAt, &summary.Source, &summary.TotalOccurrences, &summary.TotalUniqueKanji); err != nil {
		return model.AnalysisSummary{}, err
	}
	parsed, err := time.Parse(createdAtLayout, createdAt)
	if err != nil {
		// Rows written before the fixed-width layout.
		if parsed, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return model.AnalysisSummary{}, err
		}
	}
	summary.CreatedAt = parsed
	return summary, nil
}

// LoadAnalysis returns a saved analysis rebuilt from its per-kanji rows.
func (s *Store) LoadAnalysis(ctx context.Context, id int64) (model.AnalysisSummary, kanji.TextAnalysis, error) {
	summary, err := scanSummary(s.db.QueryRowContext(ctx,
		`SELECT id, created_at, source, total_occurrences, total_unique
		 FROM analyses WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.AnalysisSummary{}, kanji.TextAnalysis{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return model.AnalysisSummary{}, kanji.TextAnalysis{}, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT kanji, occurrences, level
		 FROM analysis_kanji
		 WHERE analysis_id = ?
		 ORDER BY rowid ASC`, id)
	if err != nil {
		return model.AnalysisSummary{}, kanji.TextAnalysis{}, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var entries []kanji.StoredKanji
	for rows.Next() {
		var text string
		var occurrences, level int
		if err := rows.Scan(&text, &occurrences, &level); err != nil {
			return model.AnalysisSummary{}, kanji.TextAnalysis{}, err
		}
		r, size := utf8.DecodeRuneInString(text)
		if r == utf8.RuneError || size != len(text) {
			return model.AnalysisSummary{}, kanji.TextAnalysis{}, fmt.Errorf("analysis %d: invalid kanji %q", id, text)
		}
		entries = append(entries, kanji.StoredKanji{Kanji: r, Occurrences: occurrences, Level: kanji.Level(level)})
	}
	if err := rows.Err(); err != nil {
		return model.AnalysisSummary{}, kanji.TextAnalysis{}, err
	}
	return summary, kanji.Rebuild(entries), nil
}

// DeleteAnalysis removes a saved analysis.
func (s *Store) DeleteAnalysis(ctx context.Context, id int64) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()
	res, err := tx.ExecContext(ctx, `DELETE FROM analyses WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		err = fmt.Errorf("%w: %d", ErrNotFound, id)
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM analysis_kanji WHERE analysis_id = ?`, id); err != nil {
		return err
	}
	err = tx.Commit()
	return err
}
