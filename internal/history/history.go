// Package history keeps past transformations in a SQLite database so they
// can be listed, re-rendered and deleted later.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/segmentio/ksuid"
	"github.com/tliron/commonlog"

	"github.com/dacharyc/wordiff/internal/transform"
)

var log = commonlog.GetLogger("wordiff.history")

// ErrNotFound is returned when no record has the requested ID.
var ErrNotFound = errors.New("history record not found")

// Record is one stored transformation.
type Record struct {
	ID            string
	OriginalText  string
	HumanizedText string
	Settings      transform.Settings
	CreatedAt     time.Time
}

// FromResponse converts a provider response into a record.
func FromResponse(resp *transform.Response) Record {
	return Record{
		ID:            resp.ID,
		OriginalText:  resp.OriginalText,
		HumanizedText: resp.HumanizedText,
		Settings:      resp.Settings,
		CreatedAt:     resp.Timestamp,
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS transformations (
	id                TEXT PRIMARY KEY,
	original_text     TEXT NOT NULL,
	humanized_text    TEXT NOT NULL,
	mode              TEXT NOT NULL,
	formality         INTEGER NOT NULL,
	audience          TEXT NOT NULL,
	verbosity         TEXT NOT NULL,
	deep_humanization INTEGER NOT NULL,
	created_at        INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transformations_created ON transformations(created_at);
`

// Store is a SQLite-backed history.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path, along with
// its parent directory.
func Open(path string) (*Store, error) {
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	// One connection keeps ":memory:" databases coherent and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set PRAGMA: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	log.Debugf("opened history at %s", path)
	return &Store{db: db}, nil
}

// Add stores rec. An empty ID is replaced by a new one and a zero CreatedAt
// by the current time. The stored record is returned.
func (s *Store) Add(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = ksuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transformations
			(id, original_text, humanized_text, mode, formality, audience, verbosity, deep_humanization, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			original_text = excluded.original_text,
			humanized_text = excluded.humanized_text,
			mode = excluded.mode,
			formality = excluded.formality,
			audience = excluded.audience,
			verbosity = excluded.verbosity,
			deep_humanization = excluded.deep_humanization,
			created_at = excluded.created_at
	`, rec.ID, rec.OriginalText, rec.HumanizedText,
		string(rec.Settings.Mode), rec.Settings.Formality, string(rec.Settings.Audience),
		string(rec.Settings.Verbosity), rec.Settings.DeepHumanization, rec.CreatedAt.UnixMilli())
	if err != nil {
		return Record{}, fmt.Errorf("failed to insert record: %w", err)
	}

	// Round-trip precision matches what Get returns.
	rec.CreatedAt = time.UnixMilli(rec.CreatedAt.UnixMilli())
	return rec, nil
}

const selectColumns = `SELECT id, original_text, humanized_text, mode, formality, audience, verbosity, deep_humanization, created_at FROM transformations`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		rec                       Record
		mode, audience, verbosity string
		createdAt                 int64
	)
	err := row.Scan(&rec.ID, &rec.OriginalText, &rec.HumanizedText,
		&mode, &rec.Settings.Formality, &audience, &verbosity,
		&rec.Settings.DeepHumanization, &createdAt)
	if err != nil {
		return Record{}, err
	}
	rec.Settings.Mode = transform.Mode(mode)
	rec.Settings.Audience = transform.Audience(audience)
	rec.Settings.Verbosity = transform.Verbosity(verbosity)
	rec.CreatedAt = time.UnixMilli(createdAt)
	return rec, nil
}

// Get returns the record with the given ID.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	rec, err := scanRecord(s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to query record: %w", err)
	}
	return rec, nil
}

// List returns up to limit records, newest first. A limit below 1 returns
// every record.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	if limit < 1 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}
	return records, nil
}

// Delete removes the record with the given ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM transformations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear removes every record and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM transformations`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	log.Infof("cleared %d history records", n)
	return n, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
