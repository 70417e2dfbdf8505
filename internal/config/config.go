package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// CategoryRule is one of the fixed board categories. Slice order in
// Config.Categories is the classification priority order; the last entry is
// the unconditional fallback.
type CategoryRule struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
	Icon     string   `yaml:"icon" json:"icon"`
	Color    string   `yaml:"color" json:"color"`
}

// ModifierRule maps a phrase group to a secondary descriptive tag
// ("Healthcare", "Senior Level", ...). First match in slice order wins.
type ModifierRule struct {
	Label string   `yaml:"label" json:"label"`
	Any   []string `yaml:"any" json:"any"`
}

// BoardLabel maps a known job-board URL fragment to a friendly company label.
type BoardLabel struct {
	Match string `yaml:"match" json:"match"`
	Label string `yaml:"label" json:"label"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Categories []CategoryRule `yaml:"categories" json:"categories"`
	Modifiers  []ModifierRule `yaml:"modifiers" json:"modifiers"`
	Boards     []BoardLabel   `yaml:"boards" json:"boards"`

	Scoring struct {
		Base           float64  `yaml:"base" json:"base"`
		TierOneDomains []string `yaml:"tier_one_domains" json:"tier_one_domains"`
		TierOneBonus   float64  `yaml:"tier_one_bonus" json:"tier_one_bonus"`
		TierTwoDomains []string `yaml:"tier_two_domains" json:"tier_two_domains"`
		TierTwoBonus   float64  `yaml:"tier_two_bonus" json:"tier_two_bonus"`
		LongTitleBonus float64  `yaml:"long_title_bonus" json:"long_title_bonus"`
		SeniorityBonus float64  `yaml:"seniority_bonus" json:"seniority_bonus"`
	} `yaml:"scoring" json:"scoring"`

	Detect struct {
		MinTitleLen       int      `yaml:"min_title_len" json:"min_title_len"`
		MaxTitleLen       int      `yaml:"max_title_len" json:"max_title_len"`
		SuspiciousDomains []string `yaml:"suspicious_domains" json:"suspicious_domains"`
		TechWords         []string `yaml:"tech_words" json:"tech_words"`
		SalesWords        []string `yaml:"sales_words" json:"sales_words"`
	} `yaml:"detect" json:"detect"`

	Importing struct {
		Sources       []string `yaml:"sources" json:"sources"`
		InsertDelayMS int      `yaml:"insert_delay_ms" json:"insert_delay_ms"`
		EnrichTitles  bool     `yaml:"enrich_titles" json:"enrich_titles"`
	} `yaml:"importing" json:"importing"`

	Review struct {
		// Auto-approve records with zero detected issues. When false every
		// import lands in pending and waits for a human.
		AutoApproveClean bool `yaml:"auto_approve_clean" json:"auto_approve_clean"`
	} `yaml:"review" json:"review"`

	Notify struct {
		AdminPhone string `yaml:"admin_phone" json:"admin_phone"`
		ReviewURL  string `yaml:"review_url" json:"review_url"`
		Trigger    string `yaml:"trigger" json:"trigger"` // every | high_only | batch_only
	} `yaml:"notify" json:"notify"`

	Admin struct {
		// Password is a convenience gate shared with the front-end, not a
		// security boundary. The keychain copy wins when present.
		Password       string `yaml:"password" json:"password"`
		KeyringAccount string `yaml:"keyring_account" json:"keyring_account"`
	} `yaml:"admin" json:"admin"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// FallbackCategory is the label classification returns when nothing matches.
func (c Config) FallbackCategory() string {
	if len(c.Categories) == 0 {
		return ""
	}
	return c.Categories[len(c.Categories)-1].Name
}

func (c Config) CategoryNames() []string {
	out := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		out = append(out, cat.Name)
	}
	return out
}

func (c Config) HasCategory(name string) bool {
	for _, cat := range c.Categories {
		if cat.Name == name {
			return true
		}
	}
	return false
}
