package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/medquery/medquery/internal/config"
	"github.com/medquery/medquery/internal/store"
)

func seededExecutor(t *testing.T) *store.Executor {
	t.Helper()
	return seededExecutorFor(t, config.DriverSQLite, "patients.db")
}

func seededExecutorFor(t *testing.T, driver, file string) *store.Executor {
	t.Helper()
	e, err := store.NewExecutor(config.DatabaseConfig{
		Driver: driver,
		Path:   filepath.Join(t.TempDir(), file),
	})
	if err != nil {
		t.Fatalf("NewExecutor() error = %v", err)
	}
	db, err := e.Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	n, err := store.Seed(context.Background(), db, true)
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if n != len(store.DemoPatients) {
		t.Fatalf("Seed() inserted %d, want %d", n, len(store.DemoPatients))
	}
	return e
}

func TestSQLiteRoundTrip(t *testing.T) {
	e := seededExecutor(t)

	rows, err := e.Execute(context.Background(), "SELECT name, age FROM PATIENT WHERE age > 60 ORDER BY id;")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	want := []string{"Alice Morgan", "Carla Diaz", "Emma Novak", "Henry Walsh"}
	if len(rows) != len(want) {
		t.Fatalf("rows = %v", rows)
	}
	for i, name := range want {
		if rows[i][0] != name {
			t.Errorf("row %d name = %v, want %s", i, rows[i][0], name)
		}
		if _, ok := rows[i][1].(int64); !ok {
			t.Errorf("row %d age type = %T, want int64", i, rows[i][1])
		}
	}
}

func TestSQLiteBooleanColumns(t *testing.T) {
	e := seededExecutor(t)

	rows, err := e.Execute(context.Background(),
		"SELECT COUNT(id) FROM PATIENT WHERE lab_results_pending = 1 AND emergency_visit_today = 1")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(rows) != 1 || rows[0][0] != int64(2) {
		t.Fatalf("rows = %#v, want [[2]]", rows)
	}
}

func TestSQLiteSeedIsIdempotent(t *testing.T) {
	e := seededExecutor(t)
	db, err := e.Open()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	n, err := store.Seed(context.Background(), db, true)
	if err != nil {
		t.Fatalf("second Seed() error = %v", err)
	}
	if n != 0 {
		t.Errorf("second Seed() inserted %d rows", n)
	}
}

func TestSQLiteUnknownTable(t *testing.T) {
	e := seededExecutor(t)

	_, err := e.Execute(context.Background(), "SELECT name FROM PATIENTS")
	if !errors.Is(err, store.ErrExecution) {
		t.Fatalf("error = %v, want ErrExecution", err)
	}
}

func TestSQLitePing(t *testing.T) {
	e := seededExecutor(t)
	if err := e.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
}

func countPatients(t *testing.T, e *store.Executor) any {
	t.Helper()
	rows, err := e.Execute(context.Background(), "SELECT COUNT(id) FROM PATIENT;")
	if err != nil {
		t.Fatalf("count error = %v", err)
	}
	return rows[0][0]
}

func TestSQLiteRejectsChainedStatements(t *testing.T) {
	e := seededExecutor(t)

	rows, err := e.Execute(context.Background(), "SELECT name FROM PATIENT WHERE id = 1; DELETE FROM PATIENT;")
	if !errors.Is(err, store.ErrExecution) || !errors.Is(err, store.ErrMultipleStatements) {
		t.Fatalf("error = %v, want ErrExecution wrapping ErrMultipleStatements", err)
	}
	if rows != nil {
		t.Errorf("rows = %v, want nil", rows)
	}
	if got := countPatients(t, e); got != int64(len(store.DemoPatients)) {
		t.Errorf("patients after rejected query = %v, want %d", got, len(store.DemoPatients))
	}
}

func TestSQLiteTrailingSemicolonAllowed(t *testing.T) {
	e := seededExecutor(t)

	rows, err := e.Execute(context.Background(), "SELECT name FROM PATIENT WHERE condition = 'COPD';  \n")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(rows) != 1 || rows[0][0] != "Henry Walsh" {
		t.Fatalf("rows = %v", rows)
	}
}

func TestSQLiteDatesKeepStoredText(t *testing.T) {
	e := seededExecutor(t)

	rows, err := e.Execute(context.Background(),
		"SELECT name, admitted_date, lab_results_pending FROM PATIENT WHERE id = 1")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %v", rows)
	}
	if rows[0][1] != "2024-01-10" {
		t.Errorf("admitted_date = %#v, want \"2024-01-10\"", rows[0][1])
	}
	if rows[0][2] != int64(1) {
		t.Errorf("lab_results_pending = %#v, want int64(1)", rows[0][2])
	}

	body, err := json.Marshal(rows)
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != `[["Alice Morgan","2024-01-10",1]]` {
		t.Errorf("json = %s", body)
	}
}
