package runstore

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"luft/internal/config"
	"luft/internal/intake"
	"luft/internal/services"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; older databases are rejected rather than migrated.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Store persists intake run history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Record is one persisted intake run.
type Record struct {
	ID           string
	Source       string
	FileHash     string
	RowCount     int
	ColumnCount  int
	QualityScore float64
	Passed       bool
	ErrorCount   int
	WarningCount int
	InfoCount    int
	ProfileJSON  string
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Open initializes or connects to the run history database at the configured
// path.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, services.Wrap(services.ErrStore, "runstore", "open", "ensure directories", err)
	}

	db, err := sql.Open("sqlite", cfg.Paths.DBPath)
	if err != nil {
		return nil, services.Wrap(services.ErrStore, "runstore", "open", "open sqlite db", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, services.Wrap(services.ErrStore, "runstore", "open", "apply "+pragma, execErr)
		}
	}

	store := &Store{db: db, path: cfg.Paths.DBPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return services.Wrap(services.ErrStore, "runstore", "schema", "check schema_version table", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return services.Wrap(services.ErrStore, "runstore", "schema", "read schema version", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return services.Wrap(services.ErrStore, "runstore", "schema", "begin schema tx", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return services.Wrap(services.ErrStore, "runstore", "schema", "create schema", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return services.Wrap(services.ErrStore, "runstore", "schema", "record schema version", err)
	}
	if err := tx.Commit(); err != nil {
		return services.Wrap(services.ErrStore, "runstore", "schema", "commit schema", err)
	}
	return nil
}

// SaveResult converts an intake result to a run record and inserts it.
func (s *Store) SaveResult(ctx context.Context, result *intake.Result) (*Record, error) {
	profileJSON, err := json.Marshal(result.Profile)
	if err != nil {
		return nil, services.Wrap(services.ErrStore, "runstore", "save", "encode profile", err)
	}

	record := &Record{
		ID:           result.RunID,
		Source:       result.Source,
		FileHash:     result.FileHash,
		RowCount:     result.Profile.TotalRecords,
		ColumnCount:  len(result.Profile.Fields),
		QualityScore: result.Profile.QualityScore(),
		Passed:       result.Verdict.Passed,
		ErrorCount:   len(result.Verdict.Errors()),
		WarningCount: len(result.Verdict.Warnings()),
		InfoCount:    len(result.Verdict.Infos()),
		ProfileJSON:  string(profileJSON),
		StartedAt:    result.StartedAt,
		FinishedAt:   result.FinishedAt,
	}
	if err := s.Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Save inserts a run record.
func (s *Store) Save(ctx context.Context, record *Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (
			id, source, file_hash, row_count, column_count, quality_score,
			passed, error_count, warning_count, info_count, profile_json,
			started_at, finished_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.Source, record.FileHash, record.RowCount,
		record.ColumnCount, record.QualityScore, boolToInt(record.Passed),
		record.ErrorCount, record.WarningCount, record.InfoCount,
		record.ProfileJSON,
		record.StartedAt.UTC().Format(time.RFC3339Nano),
		record.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return services.Wrap(services.ErrStore, "runstore", "save", "insert run "+record.ID, err)
	}
	return nil
}

// List returns the most recent runs, newest first. A non-positive limit
// defaults to 20.
func (s *Store) List(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, selectColumns+" ORDER BY started_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, services.Wrap(services.ErrStore, "runstore", "list", "query runs", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, services.Wrap(services.ErrStore, "runstore", "list", "iterate runs", err)
	}
	return records, nil
}

// GetByID fetches one run, or services.ErrNotFound when absent.
func (s *Store) GetByID(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, services.Wrap(services.ErrNotFound, "runstore", "get", "run "+id, nil)
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

const selectColumns = `
	SELECT id, source, file_hash, row_count, column_count, quality_score,
	       passed, error_count, warning_count, info_count, profile_json,
	       started_at, finished_at
	FROM runs`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var (
		record            Record
		passed            int
		started, finished string
	)
	err := row.Scan(
		&record.ID, &record.Source, &record.FileHash, &record.RowCount,
		&record.ColumnCount, &record.QualityScore, &passed,
		&record.ErrorCount, &record.WarningCount, &record.InfoCount,
		&record.ProfileJSON, &started, &finished,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, services.Wrap(services.ErrStore, "runstore", "scan", "scan run row", err)
	}
	record.Passed = passed != 0
	if record.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return nil, services.Wrap(services.ErrStore, "runstore", "scan", "parse started_at", err)
	}
	if record.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
		return nil, services.Wrap(services.ErrStore, "runstore", "scan", "parse finished_at", err)
	}
	return &record, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
