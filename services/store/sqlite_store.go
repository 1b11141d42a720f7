package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"speedsense/models"
	"speedsense/utils"

	_ "modernc.org/sqlite"
)

var tables = map[models.SensorKind]string{
	models.Accelerometer: "accelerometer_data",
	models.Gyroscope:     "gyroscope_data",
}

// SQLiteStore persists uploaded samples, one table per sensor kind.
type SQLiteStore struct {
	db *sql.DB
}

func Open(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single connection keeps :memory: databases coherent
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.ensureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	utils.L().Info("sqlite store ready  (path=%s)", dbPath)
	return s, nil
}

func (s *SQLiteStore) ensureSchema(ctx context.Context) error {
	for _, kind := range models.SensorKinds {
		table := tables[kind]
		ddl := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %[1]s (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  unique_timestamp REAL NOT NULL UNIQUE,
  timestamp_ns INTEGER NOT NULL,
  x REAL,
  y REAL,
  z REAL,
  magnitude REAL
);
CREATE INDEX IF NOT EXISTS idx_%[1]s_timestamp ON %[1]s (timestamp_ns);
`, table)
		if _, err := s.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("create %s table: %w", table, err)
		}
	}
	return nil
}

func tableFor(kind models.SensorKind) (string, error) {
	table, ok := tables[kind]
	if !ok {
		return "", fmt.Errorf("unknown sensor type: %s", kind)
	}
	return table, nil
}

// Insert stores rows in a single transaction and fills in their IDs.
func (s *SQLiteStore) Insert(ctx context.Context, kind models.SensorKind, rows []models.StoredSample) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (unique_timestamp, timestamp_ns, x, y, z, magnitude) VALUES (?, ?, ?, ?, ?, ?)`, table))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range rows {
		r := &rows[i]
		res, err := stmt.ExecContext(ctx, r.UniqueTimestamp, r.Timestamp.UnixNano(), r.X, r.Y, r.Z, r.Magnitude)
		if err != nil {
			return fmt.Errorf("insert %s row %d: %w", table, i, err)
		}
		if id, err := res.LastInsertId(); err == nil {
			r.ID = id
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert: %w", err)
	}
	return nil
}

// List returns every row of kind ordered by id.
func (s *SQLiteStore) List(ctx context.Context, kind models.SensorKind) ([]models.StoredSample, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	return s.query(ctx, fmt.Sprintf(
		`SELECT id, unique_timestamp, timestamp_ns, x, y, z, magnitude FROM %s ORDER BY id`, table))
}

// ListBetween returns rows of kind captured within [start, end], ordered by id.
func (s *SQLiteStore) ListBetween(ctx context.Context, kind models.SensorKind, start, end time.Time) ([]models.StoredSample, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	return s.query(ctx, fmt.Sprintf(
		`SELECT id, unique_timestamp, timestamp_ns, x, y, z, magnitude FROM %s
WHERE timestamp_ns >= ? AND timestamp_ns <= ? ORDER BY id`, table),
		start.UnixNano(), end.UnixNano())
}

func (s *SQLiteStore) query(ctx context.Context, q string, args ...any) ([]models.StoredSample, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	out := []models.StoredSample{}
	for rows.Next() {
		var (
			r            models.StoredSample
			ns           int64
			x, y, z, mag sql.NullFloat64
		)
		if err := rows.Scan(&r.ID, &r.UniqueTimestamp, &ns, &x, &y, &z, &mag); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		r.Timestamp = utils.NanoToTime(ns)
		r.X, r.Y, r.Z, r.Magnitude = x.Float64, y.Float64, z.Float64, mag.Float64
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate samples: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
