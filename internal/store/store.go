package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"adpod/internal/config"
	"adpod/internal/pod"
)

// Store manages pod record persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the pod database and verifies the schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "pods.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
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
func (s *Store) Path() string {
	return s.path
}

// Save inserts a pod record. A missing id or created-at timestamp is
// assigned; the record is not updatable afterwards.
func (s *Store) Save(ctx context.Context, record *pod.Record) error {
	if record == nil {
		return errors.New("record is nil")
	}
	if !pod.KnownStatus(record.Status) {
		return fmt.Errorf("unknown pod status %q", record.Status)
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	configJSON, err := json.Marshal(record.Configuration)
	if err != nil {
		return fmt.Errorf("marshal configuration: %w", err)
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO pods (
            id, pod_name, configuration_json, status, created_at, generated_at, error_message
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.PodName,
		string(configJSON),
		record.Status,
		record.CreatedAt.UTC().Format(time.RFC3339Nano),
		nullableTime(record.GeneratedAt),
		nullableString(record.ErrorMessage),
	)
	if err != nil {
		return fmt.Errorf("insert pod: %w", err)
	}
	return nil
}

// GetByID fetches a pod record by identifier, or nil when absent.
func (s *Store) GetByID(ctx context.Context, id string) (*pod.Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+podColumns+` FROM pods WHERE id = ?`, id)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pod: %w", err)
	}
	return record, nil
}

// GetByName returns the first pod record matching a pod name.
func (s *Store) GetByName(ctx context.Context, podName string) (*pod.Record, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+podColumns+` FROM pods WHERE pod_name = ? ORDER BY created_at LIMIT 1`,
		podName,
	)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pod by name: %w", err)
	}
	return record, nil
}

// List returns pod records filtered by status set (or all records when no
// status is provided), newest first.
func (s *Store) List(ctx context.Context, statuses ...pod.Status) ([]*pod.Record, error) {
	var (
		rows *sql.Rows
		err  error
	)

	baseQuery := `SELECT ` + podColumns + ` FROM pods`
	orderClause := ` ORDER BY created_at DESC`

	if len(statuses) == 0 {
		rows, err = s.db.QueryContext(ctx, baseQuery+orderClause)
	} else {
		placeholders := makePlaceholders(len(statuses))
		args := make([]any, len(statuses))
		for i, status := range statuses {
			args[i] = status
		}
		query := baseQuery + ` WHERE status IN (` + placeholders + `)` + orderClause
		rows, err = s.db.QueryContext(ctx, query, args...)
	}
	if err != nil {
		return nil, fmt.Errorf("list pods: %w", err)
	}
	defer rows.Close()

	var records []*pod.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Remove deletes a pod record by identifier and reports whether a record
// existed.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM pods WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete pod: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Stats returns a count of pod records grouped by status.
func (s *Store) Stats(ctx context.Context) (map[pod.Status]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(1) FROM pods GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("pod stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[pod.Status]int)
	for rows.Next() {
		var status pod.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, rows.Err()
}

// DatabaseHealth captures diagnostic information about the pod database.
type DatabaseHealth struct {
	DBPath           string
	DatabaseExists   bool
	DatabaseReadable bool
	TableExists      bool
	IntegrityCheck   bool
	TotalPods        int
	Error            string
}

// CheckHealth returns diagnostic information about the pod database.
func (s *Store) CheckHealth(ctx context.Context) (DatabaseHealth, error) {
	health := DatabaseHealth{DBPath: s.path}

	if s.path == "" {
		return health, errors.New("pod database path is unknown")
	}

	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return health, nil
		}
		return health, fmt.Errorf("stat pod database: %w", err)
	}
	if info.IsDir() {
		return health, fmt.Errorf("pod database path %q is a directory", s.path)
	}
	health.DatabaseExists = true

	if s.db == nil {
		return health, errors.New("pod database connection unavailable")
	}

	connCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(connCtx); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("ping pod database: %w", err)
	}
	health.DatabaseReadable = true

	var tableName string
	row := s.db.QueryRowContext(connCtx, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'pods'")
	if err := row.Scan(&tableName); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			health.Error = err.Error()
			return health, fmt.Errorf("query table info: %w", err)
		}
	} else {
		health.TableExists = true
	}

	if health.TableExists {
		row = s.db.QueryRowContext(connCtx, "SELECT COUNT(*) FROM pods")
		if err := row.Scan(&health.TotalPods); err != nil {
			health.Error = err.Error()
			return health, fmt.Errorf("count pods: %w", err)
		}
	}

	row = s.db.QueryRowContext(connCtx, "PRAGMA integrity_check")
	var integrityResult string
	if err := row.Scan(&integrityResult); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("integrity check: %w", err)
	}
	health.IntegrityCheck = strings.EqualFold(integrityResult, "ok")

	return health, nil
}

const podColumns = "id, pod_name, configuration_json, status, created_at, generated_at, error_message"

func scanRecord(scanner interface{ Scan(dest ...any) error }) (*pod.Record, error) {
	var (
		id           string
		podName      string
		configJSON   string
		statusStr    string
		createdRaw   string
		generatedRaw sql.NullString
		errorMessage sql.NullString
	)

	if err := scanner.Scan(&id, &podName, &configJSON, &statusStr, &createdRaw, &generatedRaw, &errorMessage); err != nil {
		return nil, err
	}

	record := &pod.Record{
		ID:           id,
		PodName:      podName,
		Status:       pod.Status(statusStr),
		ErrorMessage: errorMessage.String,
	}

	if err := json.Unmarshal([]byte(configJSON), &record.Configuration); err != nil {
		return nil, fmt.Errorf("unmarshal configuration for pod %s: %w", id, err)
	}

	if created, err := parseTimeString(createdRaw); err == nil {
		record.CreatedAt = created
	}
	if generatedRaw.Valid {
		if generated, err := parseTimeString(generatedRaw.String); err == nil {
			record.GeneratedAt = &generated
		}
	}
	return record, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return value.UTC().Format(time.RFC3339Nano)
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	return time.Parse(time.RFC3339Nano, value)
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}
