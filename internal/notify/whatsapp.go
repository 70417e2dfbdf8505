package notify

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"plugboard-engine/internal/config"
	"plugboard-engine/internal/domain"
)

// Trigger policies for per-record alerts.
const (
	TriggerEvery     = "every"
	TriggerHighOnly  = "high_only"
	TriggerBatchOnly = "batch_only"
)

// Notifier renders wa.me click-to-chat links for the admin. The engine never
// talks to WhatsApp itself; it hands the link to whoever is looking at the
// admin surface (API response or event stream) to open.
type Notifier struct {
	Cfg config.Config
}

// ShouldAlert applies the configured trigger policy to one record's issues.
func (n Notifier) ShouldAlert(issues []domain.Issue) bool {
	switch n.Cfg.Notify.Trigger {
	case TriggerEvery:
		return len(issues) > 0
	case TriggerHighOnly:
		return domain.HasHighSeverity(issues)
	case TriggerBatchOnly:
		return false
	}
	return domain.HasHighSeverity(issues)
}

// JobAlert renders the per-record review message.
func (n Notifier) JobAlert(rec domain.JobRecord, detectedAt time.Time) string {
	var b strings.Builder

	b.WriteString("🚨 BORDERLESS PLUG ALERT\n\n")
	if domain.HasHighSeverity(rec.Issues) {
		b.WriteString("⚠️ HIGH PRIORITY - NEEDS REVIEW\n\n")
	}

	fmt.Fprintf(&b, "📋 JOB: %s\n", rec.Title)
	fmt.Fprintf(&b, "🏢 COMPANY: %s\n", rec.Company)
	fmt.Fprintf(&b, "🏷️ CATEGORY: %s\n", rec.Category)
	fmt.Fprintf(&b, "🔗 URL: %s\n\n", rec.URL)

	if len(rec.Issues) > 0 {
		b.WriteString("🔍 ISSUES DETECTED:\n")
		for _, is := range rec.Issues {
			fmt.Fprintf(&b, "%s %s\n", severityEmoji(is.Severity), is.Description)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "⏰ DETECTED: %s\n\n", detectedAt.Format("15:04:05"))
	fmt.Fprintf(&b, "💻 REVIEW: %s\n\n", n.Cfg.Notify.ReviewURL)
	b.WriteString("Quick Actions:\n")
	b.WriteString("✅ Reply \"OK\" if looks good\n")
	b.WriteString("❌ Reply \"REJECT\" to remove\n")
	b.WriteString("📝 Reply \"EDIT\" to fix title")

	return b.String()
}

// BatchSummary renders the post-import digest.
func (n Notifier) BatchSummary(total, highPriority, weirdTitles int) string {
	return fmt.Sprintf(
		"📊 JOB IMPORT SUMMARY\n\n"+
			"• %d jobs imported for review\n"+
			"• %d need urgent review\n"+
			"• %d have weird titles\n\n"+
			"🔗 REVIEW PANEL: %s\n\n"+
			"Have a productive day! 🚀",
		total, highPriority, weirdTitles, n.Cfg.Notify.ReviewURL)
}

// Link wraps a rendered message in a wa.me click-to-chat URL. Empty when no
// admin phone is configured.
func (n Notifier) Link(message string) string {
	phone := strings.TrimPrefix(strings.TrimSpace(n.Cfg.Notify.AdminPhone), "+")
	if phone == "" {
		return ""
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(message))
}

func severityEmoji(s domain.Severity) string {
	switch s {
	case domain.SeverityHigh:
		return "🔥"
	case domain.SeverityMedium:
		return "⚠️"
	}
	return "ℹ️"
}
