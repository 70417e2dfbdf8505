package classify

import (
	"testing"

	"plugboard-engine/internal/config"
)

func TestClassifyPriorityOrder(t *testing.T) {
	c := Classifier{Cfg: config.Default()}

	cases := []struct {
		url, title string
		want       string
	}{
		// "sales" wins over "engineer" because Sales is checked first
		{"https://example.com/jobs/sales-engineer", "Sales Engineer", "Sales"},
		{"https://example.com/jobs/hr-manager", "Hr Manager", "H.R."},
		{"https://weworkremotely.com/remote-jobs/python-developer", "Python Developer", "I.T."},
		{"https://example.com/jobs/virtual-assistant", "Virtual Assistant", "Virtual Assistant"},
		// "support" belongs to Virtual Assistant, which is checked before
		// Customer Service; only "customer success"/"customer service"
		// phrasing reaches the Customer Service list.
		{"https://example.com/jobs/customer-support-rep", "Customer Support Rep", "Virtual Assistant"},
		{"https://example.com/jobs/customer-success-manager", "Customer Success Manager", "Customer Service"},
		{"https://example.com/jobs/graphic-designer", "Graphic Designer", "Design"},
		{"https://example.com/jobs/seo-specialist", "Seo Specialist", "Marketing"},
	}
	for _, c2 := range cases {
		if got := c.Classify(c2.url, c2.title); got != c2.want {
			t.Errorf("%s: expected %s, got %s", c2.url, c2.want, got)
		}
	}
}

func TestClassifyFallback(t *testing.T) {
	c := Classifier{Cfg: config.Default()}
	if got := c.Classify("https://acme.io/xyz", "Xyz"); got != "Operations" {
		t.Errorf("expected Operations fallback, got %s", got)
	}
}

func TestClassifyMatchesURLNotJustTitle(t *testing.T) {
	c := Classifier{Cfg: config.Default()}
	// Keyword lives only in the URL slug.
	if got := c.Classify("https://example.com/jobs/recruiting-lead", "Lead"); got != "H.R." {
		t.Errorf("expected H.R., got %s", got)
	}
}
