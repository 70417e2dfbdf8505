package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/time/rate"

	"plugboard-engine/internal/classify"
	"plugboard-engine/internal/config"
	"plugboard-engine/internal/detect"
	"plugboard-engine/internal/domain"
	"plugboard-engine/internal/events"
	"plugboard-engine/internal/notify"
	"plugboard-engine/internal/rank"
	"plugboard-engine/internal/store"
)

var (
	ErrNotFound      = errors.New("job not found")
	ErrBadTransition = errors.New("illegal status transition")
)

// Pipeline turns a raw listing URL into a reviewed-or-pending JobRecord. It
// is built per request from the live config so edits to categories or scoring
// apply to the next import without a restart.
type Pipeline struct {
	Cfg        config.Config
	Classifier classify.Classifier
	Scorer     rank.Scorer
	Detector   detect.Detector
	Notifier   notify.Notifier

	// TitleFor overrides the slug-derived title when set (page enrichment).
	// Best-effort: an empty result keeps the slug title.
	TitleFor func(ctx context.Context, rawURL string) string
}

func NewPipeline(cfg config.Config) Pipeline {
	return Pipeline{
		Cfg:        cfg,
		Classifier: classify.Classifier{Cfg: cfg},
		Scorer:     rank.ConfidenceScorer{Cfg: cfg},
		Detector:   detect.Detector{Cfg: cfg},
		Notifier:   notify.Notifier{Cfg: cfg},
	}
}

// Build runs extraction, classification, scoring and issue detection on one
// URL. The returned record is not yet persisted. Clean records start out
// approved when the auto-approve policy is on; everything else is pending.
func (p Pipeline) Build(ctx context.Context, rawURL string) domain.JobRecord {
	title := classify.ExtractTitle(rawURL)
	if p.TitleFor != nil && titleLooksWeak(title, p.Cfg) {
		if t := p.TitleFor(ctx, rawURL); t != "" {
			title = t
		}
	}

	rec := domain.JobRecord{
		URL:       rawURL,
		Title:     title,
		Company:   classify.ExtractCompany(rawURL, p.Cfg.Boards),
		Modifier:  classify.ExtractModifier(rawURL, title, p.Cfg.Modifiers),
		CreatedAt: time.Now().UTC(),
		Status:    domain.StatusPending,
	}
	rec.Category = p.Classifier.Classify(rawURL, rec.Title)
	rec.Confidence = p.Scorer.Score(rawURL, rec.Title)
	rec.Issues = p.Detector.Detect(rec)

	if rec.Clean() && p.Cfg.Review.AutoApproveClean {
		now := time.Now().UTC()
		rec.Status = domain.StatusApproved
		rec.ApprovedAt = &now
		rec.ApprovedBy = "auto"
	}
	return rec
}

// AddResult reports what happened to one imported URL.
type AddResult struct {
	Record domain.JobRecord `json:"record"`
	Added  bool             `json:"added"`

	// AlertLink is a wa.me click-to-chat URL, set when the notify trigger
	// policy fires for this record.
	AlertLink string `json:"alertLink,omitempty"`
}

// Add builds and persists one URL. Duplicates (by URL) are skipped without
// touching the existing record's review state.
func (p Pipeline) Add(ctx context.Context, db *sql.DB, rawURL string) (AddResult, error) {
	rec := p.Build(ctx, rawURL)

	id, added, err := store.InsertJobIgnore(db, rec)
	if err != nil {
		return AddResult{}, err
	}
	if !added {
		return AddResult{Record: rec, Added: false}, nil
	}
	rec.ID = id

	res := AddResult{Record: rec, Added: true}
	if p.Notifier.ShouldAlert(rec.Issues) {
		res.AlertLink = p.Notifier.Link(p.Notifier.JobAlert(rec, rec.CreatedAt))
	}
	return res, nil
}

// Summary is the outcome of one full import run.
type Summary struct {
	Fetched  int `json:"fetched"`
	Added    int `json:"added"`
	Approved int `json:"approved"`
	Pending  int `json:"pending"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`

	// BatchLink is the wa.me digest link, set when any record landed in
	// pending.
	BatchLink string `json:"batchLink,omitempty"`
}

// ImportAll pushes a batch of URLs through the pipeline sequentially, paced
// by the configured insert delay. Per-URL failures are logged and counted,
// never fatal to the batch.
func (p Pipeline) ImportAll(ctx context.Context, db *sql.DB, hub *events.Hub, urls []string) Summary {
	sum := Summary{Fetched: len(urls)}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if d := p.Cfg.Importing.InsertDelayMS; d > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Duration(d)*time.Millisecond), 1)
	}

	highPriority := 0
	weirdTitles := 0

	for _, u := range urls {
		if err := limiter.Wait(ctx); err != nil {
			break
		}

		res, err := p.Add(ctx, db, u)
		if err != nil {
			log.Printf("[import] insert error url=%s err=%v", u, err)
			sum.Failed++
			continue
		}
		if !res.Added {
			sum.Skipped++
			continue
		}

		sum.Added++
		switch res.Record.Status {
		case domain.StatusApproved:
			sum.Approved++
		default:
			sum.Pending++
			if domain.HasHighSeverity(res.Record.Issues) {
				highPriority++
			}
			for _, is := range res.Record.Issues {
				if is.Type == detect.TypeWeirdTitle {
					weirdTitles++
					break
				}
			}
		}

		if hub != nil {
			hub.Publish(events.MakeEvent("", events.TypeJobImported, 1, res))
		}
	}

	if sum.Pending > 0 {
		sum.BatchLink = p.Notifier.Link(p.Notifier.BatchSummary(sum.Pending, highPriority, weirdTitles))
	}
	if hub != nil {
		hub.Publish(events.MakeEvent("", events.TypeImportComplete, 1, sum))
	}
	return sum
}

// Approve moves a pending record to approved, stamping who did it.
func Approve(ctx context.Context, db *sql.DB, hub *events.Hub, id int64, by string) (domain.JobRecord, error) {
	rec, err := loadJob(ctx, db, id)
	if err != nil {
		return domain.JobRecord{}, err
	}
	if !domain.CanTransition(rec.Status, domain.StatusApproved) {
		return domain.JobRecord{}, fmt.Errorf("%w: %s -> approved", ErrBadTransition, rec.Status)
	}

	moved, err := store.ApproveJob(ctx, db, id, by)
	if err != nil {
		return domain.JobRecord{}, err
	}
	if !moved {
		return domain.JobRecord{}, fmt.Errorf("%w: %s -> approved", ErrBadTransition, rec.Status)
	}

	rec, err = loadJob(ctx, db, id)
	if err != nil {
		return domain.JobRecord{}, err
	}
	if hub != nil {
		hub.Publish(events.MakeEvent("", events.TypeJobApproved, 1, rec))
	}
	return rec, nil
}

// Reject moves a pending or approved record to rejected. Rejecting a record
// with no detected issues records a manual_rejection marker so the history
// explains why it is off the board.
func Reject(ctx context.Context, db *sql.DB, hub *events.Hub, id int64, reason string) (domain.JobRecord, error) {
	rec, err := loadJob(ctx, db, id)
	if err != nil {
		return domain.JobRecord{}, err
	}
	if !domain.CanTransition(rec.Status, domain.StatusRejected) {
		return domain.JobRecord{}, fmt.Errorf("%w: %s -> rejected", ErrBadTransition, rec.Status)
	}

	issues := rec.Issues
	if len(issues) == 0 {
		desc := "Rejected by reviewer"
		if reason != "" {
			desc = "Rejected by reviewer: " + reason
		}
		issues = append(issues, domain.Issue{
			Type:        "manual_rejection",
			Severity:    domain.SeverityHigh,
			Description: desc,
		})
	}

	moved, err := store.RejectJob(ctx, db, id, issues)
	if err != nil {
		return domain.JobRecord{}, err
	}
	if !moved {
		return domain.JobRecord{}, fmt.Errorf("%w: %s -> rejected", ErrBadTransition, rec.Status)
	}

	rec, err = loadJob(ctx, db, id)
	if err != nil {
		return domain.JobRecord{}, err
	}
	if hub != nil {
		hub.Publish(events.MakeEvent("", events.TypeJobRejected, 1, rec))
	}
	return rec, nil
}

// Edit rewrites the reviewer-editable fields of a pending record. A modifier
// other than the generic one is folded into the display title, mirroring how
// reviewers fix slug-derived titles.
type Edit struct {
	Title    *string `json:"title,omitempty"`
	Company  *string `json:"company,omitempty"`
	Modifier *string `json:"modifier,omitempty"`
	Category *string `json:"category,omitempty"`
}

func ApplyEdit(ctx context.Context, db *sql.DB, cfg config.Config, hub *events.Hub, id int64, e Edit) (domain.JobRecord, error) {
	rec, err := loadJob(ctx, db, id)
	if err != nil {
		return domain.JobRecord{}, err
	}
	if rec.Status != domain.StatusPending {
		return domain.JobRecord{}, fmt.Errorf("%w: edit on %s record", ErrBadTransition, rec.Status)
	}

	base := rec.Title
	if e.Title != nil {
		base = *e.Title
	}
	if e.Company != nil {
		rec.Company = *e.Company
	}
	if e.Modifier != nil {
		rec.Modifier = *e.Modifier
	}
	if e.Category != nil {
		if !cfg.HasCategory(*e.Category) {
			return domain.JobRecord{}, fmt.Errorf("unknown category %q", *e.Category)
		}
		rec.Category = *e.Category
	}

	rec.Title = base
	if e.Modifier != nil && rec.Modifier != "" && rec.Modifier != classify.GenericModifier {
		rec.Title = fmt.Sprintf("%s (%s)", base, rec.Modifier)
	}

	updated, err := store.UpdateJobFields(ctx, db, rec)
	if err != nil {
		return domain.JobRecord{}, err
	}
	if !updated {
		return domain.JobRecord{}, fmt.Errorf("%w: edit on %s record", ErrBadTransition, rec.Status)
	}

	rec, err = loadJob(ctx, db, id)
	if err != nil {
		return domain.JobRecord{}, err
	}
	if hub != nil {
		hub.Publish(events.MakeEvent("", events.TypeJobEdited, 1, rec))
	}
	return rec, nil
}

// titleLooksWeak gates page enrichment: only slugs that came out as IDs or
// stubs are worth a network round trip.
func titleLooksWeak(title string, cfg config.Config) bool {
	return len(title) < cfg.Detect.MinTitleLen || detect.LooksLikeID(title)
}

func loadJob(ctx context.Context, db *sql.DB, id int64) (domain.JobRecord, error) {
	rec, err := store.GetJob(ctx, db, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.JobRecord{}, ErrNotFound
	}
	return rec, err
}
