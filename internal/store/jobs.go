package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"plugboard-engine/internal/domain"
)

// InsertJobIgnore inserts a record, relying on the UNIQUE url constraint for
// dedupe. added reports whether a new row landed; false means the URL was
// seen before and the existing row (and its review state) is untouched.
func InsertJobIgnore(db *sql.DB, rec domain.JobRecord) (id int64, added bool, err error) {
	issuesB, _ := json.Marshal(issuesOrEmpty(rec.Issues))

	approvedAt := ""
	if rec.ApprovedAt != nil {
		approvedAt = rec.ApprovedAt.UTC().Format(time.RFC3339)
	}

	_, err = db.Exec(`
INSERT OR IGNORE INTO jobs (url, title, company, modifier, category, confidence, status, issues, created_at, approved_at, approved_by)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		rec.URL, rec.Title, rec.Company, rec.Modifier, rec.Category, rec.Confidence,
		string(rec.Status), string(issuesB), rec.CreatedAt.UTC().Format(time.RFC3339),
		approvedAt, rec.ApprovedBy,
	)
	if err != nil {
		return 0, false, fmt.Errorf("insert job: %w", err)
	}

	// INSERT OR IGNORE does not report rows affected reliably across
	// drivers; SELECT changes() does.
	var changes int
	if e := db.QueryRow(`SELECT changes();`).Scan(&changes); e == nil && changes == 0 {
		return 0, false, nil
	}

	err = db.QueryRow(`SELECT id FROM jobs WHERE url = ? LIMIT 1;`, rec.URL).Scan(&id)
	if err != nil {
		return 0, true, fmt.Errorf("insert job: read back id: %w", err)
	}
	return id, true, nil
}

const jobColumns = `id, url, title, company, modifier, category, confidence, status, issues, created_at, approved_at, approved_by`

// GetJob returns sql.ErrNoRows when the id is unknown.
func GetJob(ctx context.Context, db *sql.DB, id int64) (domain.JobRecord, error) {
	row := db.QueryRowContext(ctx, `
SELECT `+jobColumns+`
FROM jobs
WHERE id = ?;`, id)
	return scanJob(row)
}

// ListByStatus returns all records in one review state. Approved records come
// back newest-approval-first; everything else newest-import-first.
func ListByStatus(ctx context.Context, db *sql.DB, status domain.Status) ([]domain.JobRecord, error) {
	order := "created_at DESC, id DESC"
	if status == domain.StatusApproved {
		order = "approved_at DESC, id DESC"
	}

	rows, err := db.QueryContext(ctx, `
SELECT `+jobColumns+`
FROM jobs
WHERE status = ?
ORDER BY `+order+`;`, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.JobRecord
	for rows.Next() {
		rec, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// CountByStatus powers the import/status and health surfaces.
func CountByStatus(ctx context.Context, db *sql.DB) (map[domain.Status]int, error) {
	rows, err := db.QueryContext(ctx, `
SELECT status, COUNT(*)
FROM jobs
GROUP BY status;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[domain.Status]int{}
	for rows.Next() {
		var s string
		var n int
		if err := rows.Scan(&s, &n); err != nil {
			return nil, err
		}
		out[domain.Status(s)] = n
	}
	return out, rows.Err()
}

// ApproveJob moves a pending record to approved and stamps the reviewer.
// moved is false when the record was not pending (or does not exist).
func ApproveJob(ctx context.Context, db *sql.DB, id int64, by string) (moved bool, err error) {
	res, err := db.ExecContext(ctx, `
UPDATE jobs
SET status = 'approved', approved_at = ?, approved_by = ?
WHERE id = ? AND status = 'pending';`,
		time.Now().UTC().Format(time.RFC3339), by, id)
	if err != nil {
		return false, fmt.Errorf("approve job %d: %w", id, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// RejectJob moves a pending or approved record to rejected, persisting the
// (possibly amended) issue list. Rejected is terminal.
func RejectJob(ctx context.Context, db *sql.DB, id int64, issues []domain.Issue) (moved bool, err error) {
	issuesB, _ := json.Marshal(issuesOrEmpty(issues))
	res, err := db.ExecContext(ctx, `
UPDATE jobs
SET status = 'rejected', issues = ?
WHERE id = ? AND status IN ('pending', 'approved');`,
		string(issuesB), id)
	if err != nil {
		return false, fmt.Errorf("reject job %d: %w", id, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// UpdateJobFields rewrites the editable fields of a pending record. Records
// past review keep whatever the reviewer signed off on.
func UpdateJobFields(ctx context.Context, db *sql.DB, rec domain.JobRecord) (updated bool, err error) {
	res, err := db.ExecContext(ctx, `
UPDATE jobs
SET title = ?, company = ?, modifier = ?, category = ?
WHERE id = ? AND status = 'pending';`,
		rec.Title, rec.Company, rec.Modifier, rec.Category, rec.ID)
	if err != nil {
		return false, fmt.Errorf("update job %d: %w", rec.ID, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (domain.JobRecord, error) {
	var rec domain.JobRecord
	var status, issuesJSON, createdAt, approvedAt string

	if err := row.Scan(
		&rec.ID,
		&rec.URL,
		&rec.Title,
		&rec.Company,
		&rec.Modifier,
		&rec.Category,
		&rec.Confidence,
		&status,
		&issuesJSON,
		&createdAt,
		&approvedAt,
		&rec.ApprovedBy,
	); err != nil {
		return domain.JobRecord{}, err
	}

	st, err := domain.ParseStatus(status)
	if err != nil {
		return domain.JobRecord{}, fmt.Errorf("scan job %d: %w", rec.ID, err)
	}
	rec.Status = st
	if rec.Confidence < 0 {
		rec.Confidence = 0
	} else if rec.Confidence > 1 {
		rec.Confidence = 1
	}
	_ = json.Unmarshal([]byte(issuesJSON), &rec.Issues)
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if approvedAt != "" {
		t, err := time.Parse(time.RFC3339, approvedAt)
		if err == nil {
			rec.ApprovedAt = &t
		}
	}
	return rec, nil
}

func issuesOrEmpty(issues []domain.Issue) []domain.Issue {
	if issues == nil {
		return []domain.Issue{}
	}
	return issues
}
