// Package history records successful training runs in a SQLite database.
package history

import (
	"context"
	"database/sql"
	"math"
	"time"

	"github.com/YuminosukeSato/linreg/app"
	"github.com/YuminosukeSato/linreg/pkg/errors"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// DefaultLimit is the number of runs List returns when limit <= 0.
const DefaultLimit = 20

// Run is one row of the training_runs table.
type Run struct {
	ID           string
	StartedAt    time.Time
	Duration     time.Duration
	DataPath     string
	ModelPath    string
	Samples      int
	Theta0       float64
	Theta1       float64
	Iterations   int
	Precision    float64 // NaN when undefined
	R2           float64 // NaN when undefined
	MSE          float64
	LearningRate float64
	Tolerance    float64
	MaxIter      int
	WarmStart    string
}

// RunFromReport converts a fit report into a history row. A report without
// a run ID gets a new one.
func RunFromReport(r app.FitReport) Run {
	id := r.RunID
	if id == "" {
		id = uuid.NewString()
	}
	return Run{
		ID:           id,
		StartedAt:    r.StartedAt,
		Duration:     r.Duration,
		DataPath:     r.DataPath,
		ModelPath:    r.ModelPath,
		Samples:      r.Samples.Len(),
		Theta0:       r.Params.Theta0,
		Theta1:       r.Params.Theta1,
		Iterations:   r.Iterations,
		Precision:    r.Precision,
		R2:           r.R2,
		MSE:          r.MSE,
		LearningRate: r.LearningRate,
		Tolerance:    r.Tolerance,
		MaxIter:      r.MaxIter,
		WarmStart:    r.WarmStart,
	}
}

// Store is a SQLite-backed run history.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, errors.Wrapf(err, "open history %s", path)
	}
	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS training_runs (
			id TEXT PRIMARY KEY,
			started_at INTEGER NOT NULL,
			duration_ns INTEGER NOT NULL,
			data_path TEXT NOT NULL,
			model_path TEXT NOT NULL,
			samples INTEGER NOT NULL,
			theta0 REAL NOT NULL,
			theta1 REAL NOT NULL,
			iterations INTEGER NOT NULL,
			precision REAL,
			r2 REAL,
			mse REAL,
			learning_rate REAL NOT NULL,
			tolerance REAL NOT NULL,
			max_iterations INTEGER NOT NULL,
			warm_start TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_training_runs_started_at ON training_runs(started_at)`,
	}
	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			return errors.Wrap(err, "create history tables")
		}
	}
	return nil
}

// Record inserts run.
func (s *Store) Record(ctx context.Context, run Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO training_runs (
			id, started_at, duration_ns, data_path, model_path, samples,
			theta0, theta1, iterations, precision, r2, mse,
			learning_rate, tolerance, max_iterations, warm_start
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.StartedAt.UnixNano(), int64(run.Duration), run.DataPath, run.ModelPath, run.Samples,
		run.Theta0, run.Theta1, run.Iterations, nullable(run.Precision), nullable(run.R2), nullable(run.MSE),
		run.LearningRate, run.Tolerance, run.MaxIter, run.WarmStart)
	if err != nil {
		return errors.Wrapf(err, "record run %s", run.ID)
	}
	return nil
}

// List returns the most recent runs first.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, duration_ns, data_path, model_path, samples,
		       theta0, theta1, iterations, precision, r2, mse,
		       learning_rate, tolerance, max_iterations, warm_start
		FROM training_runs
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run                 Run
			startedAt, duration int64
			precision, r2, mse  sql.NullFloat64
		)
		err := rows.Scan(
			&run.ID, &startedAt, &duration, &run.DataPath, &run.ModelPath, &run.Samples,
			&run.Theta0, &run.Theta1, &run.Iterations, &precision, &r2, &mse,
			&run.LearningRate, &run.Tolerance, &run.MaxIter, &run.WarmStart,
		)
		if err != nil {
			return nil, errors.Wrap(err, "scan run")
		}
		run.StartedAt = time.Unix(0, startedAt).UTC()
		run.Duration = time.Duration(duration)
		run.Precision = fromNullable(precision)
		run.R2 = fromNullable(r2)
		run.MSE = fromNullable(mse)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list runs")
	}
	return runs, nil
}

// Name implements app.Observer.
func (s *Store) Name() string { return "history" }

// OnFit implements app.Observer.
func (s *Store) OnFit(ctx context.Context, report app.FitReport) error {
	return s.Record(ctx, RunFromReport(report))
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SQLite stores NaN as NULL, so non-finite values are written as NULL
// explicitly and read back as NaN.
func nullable(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: !math.IsNaN(v) && !math.IsInf(v, 0)}
}

func fromNullable(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

var _ app.Observer = (*Store)(nil)
