package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/medquery/medquery/internal/config"
	"github.com/medquery/medquery/internal/store"
)

func TestDuckDBRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("duckdb opens a native database")
	}
	e := seededExecutorFor(t, config.DriverDuckDB, "patients.duckdb")

	rows, err := e.Execute(context.Background(),
		"SELECT name, admitted_date FROM PATIENT WHERE age > 60 ORDER BY id;")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	want := [][]any{
		{"Alice Morgan", "2024-01-10"},
		{"Carla Diaz", "2024-02-14"},
		{"Emma Novak", "2024-03-09"},
		{"Henry Walsh", "2024-04-18"},
	}
	if len(rows) != len(want) {
		t.Fatalf("rows = %v", rows)
	}
	for i := range want {
		if rows[i][0] != want[i][0] || rows[i][1] != want[i][1] {
			t.Errorf("row %d = %#v, want %#v", i, rows[i], want[i])
		}
	}

	rows, err = e.Execute(context.Background(),
		"SELECT COUNT(id) FROM PATIENT WHERE lab_results_pending AND emergency_visit_today")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(rows) != 1 || rows[0][0] != int64(2) {
		t.Errorf("rows = %#v, want [[2]]", rows)
	}

	_, err = e.Execute(context.Background(), "SELECT 1; DELETE FROM PATIENT")
	if !errors.Is(err, store.ErrMultipleStatements) {
		t.Errorf("error = %v, want ErrMultipleStatements", err)
	}
	if err := e.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}
