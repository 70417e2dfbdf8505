package config

// Default returns the built-in configuration. It is what ships in
// config/config.yml and what tests run against; EnsureUserConfig copies the
// yaml variant into the data dir on first start.
//
// Category order matters: H.R. and Sales are checked first because their
// keyword sets overlap generic business terms used by the other categories,
// and Operations sits last as the unconditional fallback.
func Default() Config {
	var cfg Config

	cfg.App.Port = 38471
	cfg.App.DataDir = "."

	cfg.Categories = []CategoryRule{
		{
			Name: "H.R.",
			Keywords: []string{
				"hr", "human resources", "recruiting", "recruiter", "talent",
				"hiring", "people operations", "people", "talent acquisition",
				"hr manager", "hr-manager", "hrmanager", "human-resources",
			},
			Icon:  "Award",
			Color: "#ec4899",
		},
		{
			Name: "Sales",
			Keywords: []string{
				"sales", "business development", "bdr", "sdr",
				"account executive", "account manager",
				"business development rep", "sales development rep",
				"sales development representative", "revenue", "partnerships",
				"lead generation",
			},
			Icon:  "TrendingUp",
			Color: "#10b981",
		},
		{
			Name: "I.T.",
			Keywords: []string{
				"dev", "developer", "engineer", "programming", "coding",
				"software", "frontend", "backend", "fullstack", "javascript",
				"python", "react", "node", "database", "devops", "system",
				"technical", "tech", "web", "mobile", "app",
			},
			Icon:  "Briefcase",
			Color: "#3b82f6",
		},
		{
			Name: "Virtual Assistant",
			Keywords: []string{
				"admin", "assistant", "personal", "executive", "data analyst",
				"virtual assistant", "va", "support", "coordinator",
				"scheduler", "research", "entry",
			},
			Icon:  "Users",
			Color: "#8b5cf6",
		},
		{
			Name: "Customer Service",
			Keywords: []string{
				"customer service", "customer support", "help desk",
				"client support", "customer success", "support specialist",
				"call center",
			},
			Icon:  "MessageCircle",
			Color: "#f59e0b",
		},
		{
			Name: "Design",
			Keywords: []string{
				"design", "designer", "graphic", "video", "editing", "ui",
				"ux", "creative", "visual", "multimedia", "animation",
				"branding",
			},
			Icon:  "Star",
			Color: "#6366f1",
		},
		{
			Name: "Marketing",
			Keywords: []string{
				"marketing", "social media", "content", "seo",
				"digital marketing", "growth", "campaign", "brand",
				"advertising", "copywriting",
			},
			Icon:  "Globe",
			Color: "#ef4444",
		},
		{
			Name: "Operations",
			Keywords: []string{
				"accounting", "operations", "manager", "finance", "business",
				"project", "logistics", "procurement", "project manager",
				"project management",
			},
			Icon:  "CheckCircle",
			Color: "#6b7280",
		},
	}

	cfg.Modifiers = []ModifierRule{
		{Label: "Healthcare", Any: []string{"healthcare", "medical"}},
		{Label: "Finance", Any: []string{"fintech", "finance", "accounting"}},
		{Label: "E-commerce", Any: []string{"e-commerce", "ecommerce"}},
		{Label: "SaaS", Any: []string{"saas"}},
		{Label: "Senior Level", Any: []string{"senior", "lead", "principal"}},
		{Label: "Entry Level", Any: []string{"entry level", "entry-level", "junior"}},
		{Label: "Part-time", Any: []string{"part-time", "part time"}},
	}

	cfg.Boards = []BoardLabel{
		{Match: "remote.co", Label: "Remote.co"},
		{Match: "weworkremotely", Label: "WeWorkRemotely"},
		{Match: "flexjobs", Label: "FlexJobs"},
		{Match: "remoteok", Label: "RemoteOK"},
		{Match: "angel.co", Label: "AngelList"},
		{Match: "upwork", Label: "Upwork"},
		{Match: "indeed", Label: "Indeed"},
		{Match: "linkedin", Label: "LinkedIn"},
		{Match: "glassdoor", Label: "Glassdoor"},
		{Match: "ziprecruiter", Label: "ZipRecruiter"},
		{Match: "monster", Label: "Monster"},
		{Match: "careerbuilder", Label: "CareerBuilder"},
		{Match: "dice", Label: "Dice"},
		{Match: "stackoverflow", Label: "Stack Overflow"},
		{Match: "github", Label: "GitHub Jobs"},
		{Match: "freelancer", Label: "Freelancer"},
		{Match: "fiverr", Label: "Fiverr"},
	}

	cfg.Scoring.Base = 0.5
	cfg.Scoring.TierOneDomains = []string{"remote.co", "weworkremotely"}
	cfg.Scoring.TierOneBonus = 0.3
	cfg.Scoring.TierTwoDomains = []string{"indeed", "linkedin"}
	cfg.Scoring.TierTwoBonus = 0.2
	cfg.Scoring.LongTitleBonus = 0.1
	cfg.Scoring.SeniorityBonus = 0.1

	cfg.Detect.MinTitleLen = 5
	cfg.Detect.MaxTitleLen = 100
	cfg.Detect.SuspiciousDomains = []string{"recruitcrm.io"}
	cfg.Detect.TechWords = []string{
		"developer", "engineer", "tech", "programming", "coding", "software",
	}
	cfg.Detect.SalesWords = []string{"sales", "business", "account", "bdr", "sdr"}

	cfg.Importing.InsertDelayMS = 200
	cfg.Importing.EnrichTitles = false

	cfg.Review.AutoApproveClean = true

	cfg.Notify.Trigger = "high_only"

	cfg.Admin.KeyringAccount = "plugboard:admin"

	return cfg
}
