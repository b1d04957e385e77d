package history

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/osse101/HarvestBot_Go/internal/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Record is one persisted strategy decision with its confirmed effects.
type Record struct {
	ID           int64               `json:"id"`
	DecidedAt    time.Time           `json:"decidedAt"`
	Kind         domain.DecisionKind `json:"kind"`
	Reason       string              `json:"reason"`
	CropType     string              `json:"cropType,omitempty"`
	PlotRow      int                 `json:"plotRow"`
	PlotCol      int                 `json:"plotCol"`
	WaterDelta   int                 `json:"waterDelta"`
	CreditsDelta float64             `json:"creditsDelta"`
}

// Store keeps the decision history in a local sqlite database so a session's
// behavior can be inspected after the fact.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path and applies pending migrations.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty history db path", domain.ErrFatal)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db %s: %w", path, err)
	}

	// The worker goroutines share one connection; sqlite handles locking.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set migration dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordDecision appends one decision to the history.
func (s *Store) RecordDecision(ctx context.Context, rec Record) error {
	const q = `INSERT INTO decisions
		(decided_at, kind, reason, crop_type, plot_row, plot_col, water_delta, credits_delta)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, q,
		rec.DecidedAt.UTC(), string(rec.Kind), rec.Reason, rec.CropType,
		rec.PlotRow, rec.PlotCol, rec.WaterDelta, rec.CreditsDelta)
	if err != nil {
		return fmt.Errorf("record decision: %w", err)
	}
	return nil
}

// RecentDecisions returns up to limit decisions, newest first.
func (s *Store) RecentDecisions(ctx context.Context, limit int) ([]Record, error) {
	const q = `SELECT id, decided_at, kind, reason, crop_type, plot_row, plot_col, water_delta, credits_delta
		FROM decisions ORDER BY decided_at DESC, id DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("query decisions: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec  Record
			kind string
		)
		if err := rows.Scan(&rec.ID, &rec.DecidedAt, &kind, &rec.Reason, &rec.CropType,
			&rec.PlotRow, &rec.PlotCol, &rec.WaterDelta, &rec.CreditsDelta); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		rec.Kind = domain.DecisionKind(kind)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate decisions: %w", err)
	}
	return records, nil
}
