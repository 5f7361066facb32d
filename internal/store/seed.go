package store

import (
	"context"
	"database/sql"
	"fmt"
)

// PatientSchema is valid for both SQLite and DuckDB.
const PatientSchema = `CREATE TABLE IF NOT EXISTS PATIENT (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    age INTEGER,
    gender TEXT,
    condition TEXT,
    admitted_date DATE,
    lab_results_pending BOOLEAN,
    emergency_visit_today BOOLEAN
)`

type Patient struct {
	ID                  int64
	Name                string
	Age                 int
	Gender              string
	Condition           string
	AdmittedDate        string // YYYY-MM-DD
	LabResultsPending   bool
	EmergencyVisitToday bool
}

var DemoPatients = []Patient{
	{1, "Alice Morgan", 67, "Female", "Hypertension", "2024-01-10", true, false},
	{2, "Brian Chen", 45, "Male", "Diabetes", "2024-02-03", false, true},
	{3, "Carla Diaz", 72, "Female", "Heart Disease", "2024-02-14", true, true},
	{4, "David Okafor", 29, "Male", "Asthma", "2024-03-01", false, false},
	{5, "Emma Novak", 61, "Female", "Pneumonia", "2024-03-09", false, true},
	{6, "Farid Haddad", 54, "Male", "Fracture", "2024-03-22", true, false},
	{7, "Grace Kim", 38, "Female", "Migraine", "2024-04-05", false, false},
	{8, "Henry Walsh", 80, "Male", "COPD", "2024-04-18", true, true},
}

// Seed creates the PATIENT table and, when demo is set and the table is empty, loads
// DemoPatients. It returns the number of rows inserted.
func Seed(ctx context.Context, db *sql.DB, demo bool) (int, error) {
	if _, err := db.ExecContext(ctx, PatientSchema); err != nil {
		return 0, fmt.Errorf("create PATIENT table: %w", err)
	}
	if !demo {
		return 0, nil
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM PATIENT`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count patients: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	// the date is bound as text so SQLite keeps it verbatim and DuckDB casts it on insert
	inserted := 0
	for _, p := range DemoPatients {
		_, err := db.ExecContext(ctx,
			`INSERT INTO PATIENT (id, name, age, gender, condition, admitted_date, lab_results_pending, emergency_visit_today)
VALUES (?, ?, ?, ?, ?, CAST(? AS TEXT), ?, ?)`,
			p.ID, p.Name, p.Age, p.Gender, p.Condition, p.AdmittedDate, p.LabResultsPending, p.EmergencyVisitToday)
		if err != nil {
			return inserted, fmt.Errorf("insert patient %d: %w", p.ID, err)
		}
		inserted++
	}
	return inserted, nil
}
