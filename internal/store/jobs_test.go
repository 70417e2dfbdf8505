package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"plugboard-engine/internal/domain"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := Migrate(db.Pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db.Pool
}

func testRecord(url string) domain.JobRecord {
	return domain.JobRecord{
		URL:        url,
		Title:      "Python Developer",
		Company:    "WeWorkRemotely",
		Modifier:   "General",
		Category:   "I.T.",
		Confidence: 0.9,
		Status:     domain.StatusPending,
		CreatedAt:  time.Now().UTC(),
	}
}

func TestInsertJobIgnore_Dedupe(t *testing.T) {
	db := setupTestDB(t)

	id, added, err := InsertJobIgnore(db, testRecord("https://example.com/jobs/a"))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if !added || id == 0 {
		t.Fatalf("expected insert, got added=%v id=%d", added, id)
	}

	// Same URL again: skipped, existing row untouched.
	_, added, err = InsertJobIgnore(db, testRecord("https://example.com/jobs/a"))
	if err != nil {
		t.Fatalf("insert dup: %v", err)
	}
	if added {
		t.Fatal("expected duplicate to be skipped")
	}

	jobs, err := ListByStatus(context.Background(), db, domain.StatusPending)
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
}

func TestInsertAndGetRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	rec := testRecord("https://example.com/jobs/b")
	rec.Issues = []domain.Issue{
		{Type: "short_title", Severity: domain.SeverityMedium, Description: "Title too short"},
	}
	id, _, err := InsertJobIgnore(db, rec)
	if err != nil {
		t.Fatal(err)
	}

	got, err := GetJob(context.Background(), db, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.URL != rec.URL || got.Title != rec.Title || got.Category != rec.Category {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.Confidence != 0.9 {
		t.Errorf("expected confidence 0.9, got %v", got.Confidence)
	}
	if len(got.Issues) != 1 || got.Issues[0].Type != "short_title" {
		t.Errorf("expected issues to round trip, got %v", got.Issues)
	}
	if got.ApprovedAt != nil {
		t.Error("expected no approval timestamp")
	}
}

func TestGetJob_NotFound(t *testing.T) {
	db := setupTestDB(t)
	_, err := GetJob(context.Background(), db, 999)
	if err != sql.ErrNoRows {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
}

func TestApproveJob(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	id, _, err := InsertJobIgnore(db, testRecord("https://example.com/jobs/c"))
	if err != nil {
		t.Fatal(err)
	}

	moved, err := ApproveJob(ctx, db, id, "admin")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if !moved {
		t.Fatal("expected approval")
	}

	got, _ := GetJob(ctx, db, id)
	if got.Status != domain.StatusApproved {
		t.Errorf("expected approved, got %s", got.Status)
	}
	if got.ApprovedAt == nil || got.ApprovedBy != "admin" {
		t.Errorf("expected approval stamp, got %+v", got)
	}

	// Approving again is a no-op: the record is no longer pending.
	moved, err = ApproveJob(ctx, db, id, "admin")
	if err != nil {
		t.Fatal(err)
	}
	if moved {
		t.Error("expected second approve to be refused")
	}
}

func TestRejectJob(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	id, _, err := InsertJobIgnore(db, testRecord("https://example.com/jobs/d"))
	if err != nil {
		t.Fatal(err)
	}

	issues := []domain.Issue{
		{Type: "manual_rejection", Severity: domain.SeverityHigh, Description: "Rejected by reviewer"},
	}
	moved, err := RejectJob(ctx, db, id, issues)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if !moved {
		t.Fatal("expected rejection")
	}

	got, _ := GetJob(ctx, db, id)
	if got.Status != domain.StatusRejected {
		t.Errorf("expected rejected, got %s", got.Status)
	}
	if len(got.Issues) != 1 || got.Issues[0].Type != "manual_rejection" {
		t.Errorf("expected persisted issues, got %v", got.Issues)
	}

	// Rejected is terminal.
	moved, _ = RejectJob(ctx, db, id, nil)
	if moved {
		t.Error("expected reject on rejected record to be refused")
	}
	moved, _ = ApproveJob(ctx, db, id, "admin")
	if moved {
		t.Error("expected approve on rejected record to be refused")
	}
}

func TestRejectApprovedRecord(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	id, _, err := InsertJobIgnore(db, testRecord("https://example.com/jobs/e"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ApproveJob(ctx, db, id, "admin"); err != nil {
		t.Fatal(err)
	}

	moved, err := RejectJob(ctx, db, id, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !moved {
		t.Fatal("expected approved record to be rejectable")
	}
}

func TestListByStatusOrdering(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, u := range []string{
		"https://example.com/jobs/one",
		"https://example.com/jobs/two",
		"https://example.com/jobs/three",
	} {
		rec := testRecord(u)
		rec.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		if _, _, err := InsertJobIgnore(db, rec); err != nil {
			t.Fatal(err)
		}
	}

	jobs, err := ListByStatus(ctx, db, domain.StatusPending)
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 3 {
		t.Fatalf("expected 3, got %d", len(jobs))
	}
	// Newest import first.
	if jobs[0].URL != "https://example.com/jobs/three" {
		t.Errorf("expected newest first, got %s", jobs[0].URL)
	}

	approved, err := ListByStatus(ctx, db, domain.StatusApproved)
	if err != nil {
		t.Fatal(err)
	}
	if len(approved) != 0 {
		t.Errorf("expected no approved, got %d", len(approved))
	}
}

func TestUpdateJobFields(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	id, _, err := InsertJobIgnore(db, testRecord("https://example.com/jobs/f"))
	if err != nil {
		t.Fatal(err)
	}

	rec, _ := GetJob(ctx, db, id)
	rec.Title = "Backend Developer (Senior Level)"
	rec.Company = "Acme"
	rec.Category = "I.T."
	rec.Modifier = "Senior Level"

	updated, err := UpdateJobFields(ctx, db, rec)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated {
		t.Fatal("expected update")
	}

	got, _ := GetJob(ctx, db, id)
	if got.Title != "Backend Developer (Senior Level)" || got.Company != "Acme" {
		t.Errorf("update did not stick: %+v", got)
	}

	// Approved records are frozen.
	if _, err := ApproveJob(ctx, db, id, "admin"); err != nil {
		t.Fatal(err)
	}
	rec.Title = "Something Else"
	updated, _ = UpdateJobFields(ctx, db, rec)
	if updated {
		t.Error("expected edit on approved record to be refused")
	}
}

func TestCountByStatus(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for _, u := range []string{"https://a.com/1", "https://a.com/2"} {
		if _, _, err := InsertJobIgnore(db, testRecord(u)); err != nil {
			t.Fatal(err)
		}
	}
	id, _, _ := InsertJobIgnore(db, testRecord("https://a.com/3"))
	if _, err := ApproveJob(ctx, db, id, "admin"); err != nil {
		t.Fatal(err)
	}

	counts, err := CountByStatus(ctx, db)
	if err != nil {
		t.Fatal(err)
	}
	if counts[domain.StatusPending] != 2 || counts[domain.StatusApproved] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
}
