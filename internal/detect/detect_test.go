package detect

import (
	"strings"
	"testing"

	"plugboard-engine/internal/config"
	"plugboard-engine/internal/domain"
)

func testDetector() Detector {
	return Detector{Cfg: config.Default()}
}

func cleanRecord() domain.JobRecord {
	return domain.JobRecord{
		URL:      "https://weworkremotely.com/remote-jobs/senior-backend-engineer",
		Title:    "Senior Backend Engineer",
		Company:  "WeWorkRemotely",
		Category: "I.T.",
	}
}

func TestDetectCleanRecord(t *testing.T) {
	issues := testDetector().Detect(cleanRecord())
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestDetectNumericID(t *testing.T) {
	rec := cleanRecord()
	rec.Title = "4297605256"
	rec.Category = "Operations"

	issues := testDetector().Detect(rec)
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %v", issues)
	}
	if issues[0].Type != TypeWeirdTitle || issues[0].Severity != domain.SeverityHigh {
		t.Errorf("expected HIGH weird_title, got %+v", issues[0])
	}
}

func TestDetectWeirdTitlePatterns(t *testing.T) {
	d := testDetector()
	weird := []string{
		"1234567890123",
		"12345678",
		"deadbeef1234",
		"ABCDEF0123456789XYZ",
		"xx12345 position",
		"Senior Dev ?source=import",
		"role &new=yes",
	}
	for _, title := range weird {
		rec := cleanRecord()
		rec.Title = title
		rec.Category = "Operations"
		if !hasIssueType(d.Detect(rec), TypeWeirdTitle) {
			t.Errorf("%q: expected weird_title", title)
		}
	}

	notWeird := []string{"Senior Backend Engineer", "Customer Support Rep"}
	for _, title := range notWeird {
		rec := cleanRecord()
		rec.Title = title
		rec.Category = "Operations"
		if hasIssueType(d.Detect(rec), TypeWeirdTitle) {
			t.Errorf("%q: did not expect weird_title", title)
		}
	}
}

func TestDetectInvalidURL(t *testing.T) {
	rec := cleanRecord()
	rec.URL = "ftp://example.com/job"
	if !hasIssueType(testDetector().Detect(rec), TypeInvalidURL) {
		t.Error("expected invalid_url")
	}
}

func TestDetectTitleLengthBounds(t *testing.T) {
	d := testDetector()

	rec := cleanRecord()
	rec.Title = "Dev"
	if !hasIssueType(d.Detect(rec), TypeShortTitle) {
		t.Error("expected short_title")
	}

	rec = cleanRecord()
	rec.Title = "Engineer " + strings.Repeat("very ", 25) + "long role"
	if !hasIssueType(d.Detect(rec), TypeLongTitle) {
		t.Error("expected long_title")
	}
}

func TestDetectSuspiciousDomain(t *testing.T) {
	rec := cleanRecord()
	rec.URL = "https://recruitcrm.io/jobs/senior-backend-engineer"
	if !hasIssueType(testDetector().Detect(rec), TypeSuspiciousDomain) {
		t.Error("expected suspicious_domain")
	}

	rec.URL = "https://www.recruitcrm.io/jobs/senior-backend-engineer"
	if !hasIssueType(testDetector().Detect(rec), TypeSuspiciousDomain) {
		t.Error("expected suspicious_domain with www prefix")
	}
}

func TestDetectCategoryMismatch(t *testing.T) {
	d := testDetector()

	rec := cleanRecord()
	rec.Title = "Remote Position"
	rec.Category = "I.T."
	issues := d.Detect(rec)
	if !hasIssueType(issues, TypeCategoryMismatch) {
		t.Error("expected category_mismatch for I.T. without tech words")
	}
	if !domain.HasHighSeverity(issues) {
		t.Error("mismatch should be HIGH")
	}

	rec.Category = "Sales"
	if !hasIssueType(d.Detect(rec), TypeCategoryMismatch) {
		t.Error("expected category_mismatch for Sales without sales words")
	}

	// Other categories are not cross-checked.
	rec.Category = "Marketing"
	if hasIssueType(d.Detect(rec), TypeCategoryMismatch) {
		t.Error("did not expect mismatch for Marketing")
	}
}

func TestDetectGenericCompany(t *testing.T) {
	rec := cleanRecord()
	rec.Company = "Remote Company"
	issues := testDetector().Detect(rec)
	if !hasIssueType(issues, TypeGenericCompany) {
		t.Fatal("expected generic_company")
	}
	for _, is := range issues {
		if is.Type == TypeGenericCompany && is.Severity != domain.SeverityLow {
			t.Errorf("expected LOW, got %s", is.Severity)
		}
	}
}

func hasIssueType(issues []domain.Issue, typ string) bool {
	for _, is := range issues {
		if is.Type == typ {
			return true
		}
	}
	return false
}
