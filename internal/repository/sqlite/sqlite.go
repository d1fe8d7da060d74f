package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	_ "modernc.org/sqlite"

	"hostident/internal/domain"
	"hostident/internal/repository"
)

// Repository implements repository.SnapshotRepository using SQLite
type Repository struct {
	db *sql.DB
}

var _ repository.SnapshotRepository = (*Repository)(nil)

// New opens (creating if needed) the database at dbPath. ":memory:" gives a
// private in-memory database.
func New(dbPath string) (*Repository, error) {
	dsn := dbPath
	if dbPath != ":memory:" {
		dsn = "file:" + dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps :memory: databases shared and writes serialized.
	db.SetMaxOpenConns(1)

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		return nil, multierr.Append(fmt.Errorf("failed to migrate database: %w", err), db.Close())
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		hostname TEXT NOT NULL DEFAULT '',
		primary_addr TEXT,
		ipv4 TEXT,
		ipv6 TEXT,
		address_hex TEXT NOT NULL,
		source TEXT NOT NULL,
		recorded_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_recorded ON snapshots(recorded_at);
	`

	_, err := r.db.Exec(schema)
	return err
}

// Record stores s, assigning an ID when it has none
func (r *Repository) Record(ctx context.Context, s domain.Snapshot) (domain.Snapshot, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.RecordedAt.IsZero() {
		s.RecordedAt = time.Now()
	}
	s.RecordedAt = s.RecordedAt.UTC()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO snapshots (id, hostname, primary_addr, ipv4, ipv6, address_hex, source, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		s.ID,
		s.Hostname,
		addrToNull(s.Primary),
		addrToNull(s.IPv4),
		addrToNull(s.IPv6),
		s.AddressHex,
		s.Source,
		formatTime(s.RecordedAt),
	)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	return s, nil
}

// Latest returns the most recently recorded snapshot
func (r *Repository) Latest(ctx context.Context) (domain.Snapshot, error) {
	list, err := r.List(ctx, 1)
	if err != nil {
		return domain.Snapshot{}, err
	}
	if len(list) == 0 {
		return domain.Snapshot{}, repository.ErrNotFound
	}
	return list[0], nil
}

// List returns snapshots newest first
func (r *Repository) List(ctx context.Context, limit int) ([]domain.Snapshot, error) {
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, hostname, primary_addr, ipv4, ipv6, address_hex, source, recorded_at
		FROM snapshots
		ORDER BY recorded_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := make([]domain.Snapshot, 0)
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}

	return snapshots, nil
}

// Close releases the database
func (r *Repository) Close() error {
	return r.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (domain.Snapshot, error) {
	var (
		s                   domain.Snapshot
		primary, ipv4, ipv6 sql.NullString
		recorded            string
	)

	if err := row.Scan(&s.ID, &s.Hostname, &primary, &ipv4, &ipv6, &s.AddressHex, &s.Source, &recorded); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Snapshot{}, repository.ErrNotFound
		}
		return domain.Snapshot{}, fmt.Errorf("failed to scan snapshot: %w", err)
	}

	var err error
	if s.Primary, err = nullToAddr(primary); err != nil {
		return domain.Snapshot{}, err
	}
	if s.IPv4, err = nullToAddr(ipv4); err != nil {
		return domain.Snapshot{}, err
	}
	if s.IPv6, err = nullToAddr(ipv6); err != nil {
		return domain.Snapshot{}, err
	}
	if s.RecordedAt, err = parseTime(recorded); err != nil {
		return domain.Snapshot{}, err
	}

	return s, nil
}
