package translator

// PromptTemplate is sent ahead of every question. It pins the model to the PATIENT
// table and to bare SQLite output.
const PromptTemplate = `# SQL Query Generation Instructions
## Database Schema
Table: PATIENT
- id: integer (primary key)
- name: string
- age: integer
- gender: string
- condition: string
- admitted_date: date
- lab_results_pending: boolean
- emergency_visit_today: boolean

## Task
Generate an accurate SQL query for natural language questions about patient data.
Unless the question asks for other columns, return columns in the order:
id, name, age, gender, condition.

## Key Guidelines
1. Use explicit column selection (avoid SELECT *)
2. Ensure SQLite compatibility
3. Output raw SQL query only
4. No markdown or additional formatting
5. Use single-line or simple line breaks
6. Include appropriate WHERE, ORDER BY clauses as needed

## Example Queries

### Simple Query
SELECT name, age, condition FROM PATIENT WHERE age > 30;

### Complex Query
SELECT
    name,
    age,
    condition,
    CASE
        WHEN lab_results_pending = 1 THEN 'Pending'
        ELSE 'Completed'
    END AS lab_status,
    CASE
        WHEN emergency_visit_today = 1 THEN 'Yes'
        ELSE 'No'
    END AS emergency_visit,
    STRFTIME('%Y-%m-%d', admitted_date) AS admitted_date,
    DATE('now') AS current_date,
    (JULIANDAY('now') - JULIANDAY(admitted_date)) AS days_admitted
FROM PATIENT
WHERE age > 30 AND lab_results_pending = 1
ORDER BY days_admitted DESC;

Rules:
- Output the bare SQL query only, no markdown, no formatting
- Do not use ` + "```sql```" + ` tags or any other markdown
- Ensure the query is syntactically correct for SQLite
- The query should be on a single line or use simple line breaks
- Always specify column names explicitly in SELECT statements (avoid SELECT *)
`
