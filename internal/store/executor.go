// Package store runs generated SQL against the local patient database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/marcboeker/go-duckdb/v2"
	_ "modernc.org/sqlite"

	"github.com/medquery/medquery/internal/config"
)

var (
	// ErrExecution wraps every failure between opening the database and reading the last row.
	ErrExecution = errors.New("query execution failed")

	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// Executor opens the database for each call and closes it before returning. It keeps
// no connection between calls, so one value can serve concurrent requests.
type Executor struct {
	driver string
	path   string
	open   func(driver, dsn string) (*sql.DB, error)
}

func NewExecutor(cfg config.DatabaseConfig) (*Executor, error) {
	switch cfg.Driver {
	case config.DriverSQLite, config.DriverDuckDB:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
	return &Executor{driver: cfg.Driver, path: cfg.Path, open: sql.Open}, nil
}

// Driver returns the database/sql driver name.
func (e *Executor) Driver() string { return e.driver }

func (e *Executor) connect() (*sql.DB, error) {
	db, err := e.open(e.driver, e.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s database %q: %w", ErrExecution, e.driver, e.path, err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// Execute runs a single statement and returns every row in column order. Statements that
// return no rows yield an empty, non-nil slice. Chained statements are refused before the
// database is opened, since both drivers would otherwise run all of them.
func (e *Executor) Execute(ctx context.Context, query string) ([][]any, error) {
	if hasTrailingStatement(query) {
		return nil, fmt.Errorf("%w: execute query: %w", ErrExecution, ErrMultipleStatements)
	}
	db, err := e.connect()
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: execute query: %w", ErrExecution, err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: query columns: %w", ErrExecution, err)
	}

	results := make([][]any, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		scanTargets := make([]any, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, fmt.Errorf("%w: scan row: %w", ErrExecution, err)
		}
		results = append(results, normalizeValues(values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate rows: %w", ErrExecution, err)
	}
	return results, nil
}

// Ping opens the database and checks it answers.
func (e *Executor) Ping(ctx context.Context) error {
	db, err := e.connect()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: ping: %w", ErrExecution, err)
	}
	return nil
}

// Open returns a handle for maintenance tasks such as seeding. The caller closes it.
func (e *Executor) Open() (*sql.DB, error) {
	return e.connect()
}

// normalizeValues converts driver values to what the database stores: text for blobs
// and for DATE/DATETIME columns, which modernc and DuckDB both hand back as time.Time.
func normalizeValues(values []any) []any {
	normalized := make([]any, len(values))
	for i, value := range values {
		switch typed := value.(type) {
		case []byte:
			normalized[i] = string(typed)
		case time.Time:
			normalized[i] = formatTime(typed)
		default:
			normalized[i] = typed
		}
	}
	return normalized
}

func formatTime(t time.Time) string {
	if t.Location() == time.UTC && t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.DateTime)
}
