package domain

// FixPlan lists the files touched by keyword normalization.
type FixPlan struct {
	DryRun  bool         `json:"dry_run"`
	Applied []AppliedFix `json:"applied"`
}

type AppliedFix struct {
	Type        string `json:"type"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

const FixTypeNormalizeKeywords = "normalize_keywords"
