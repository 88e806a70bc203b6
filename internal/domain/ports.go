package domain

// SourceScanner finds SCL source files below a project directory.
type SourceScanner interface {
	Scan(projectPath string, cfg ProjectConfig) (*ScanResult, error)
}

// ScanResult holds the result of scanning a project directory.
type ScanResult struct {
	RootPath    string   `json:"root_path"`
	SourceFiles []string `json:"source_files"`
}

// ConfigLoader loads the project configuration.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// ReportCache stores reports keyed by content hash. Reports are a pure
// function of source and config, so a hit can be returned as-is.
type ReportCache interface {
	Load(projectPath string) (*ReportCacheEntry, error)
	Save(projectPath string, entry *ReportCacheEntry) error
	Invalidate(projectPath string) error
}

// RunHistory persists one entry per project validation run.
type RunHistory interface {
	Save(projectPath string, entry RunEntry) error
	Load(projectPath string) ([]RunEntry, error)
}

// GitInfo exposes repository metadata for a project.
type GitInfo interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
	ChangedFiles(projectPath string) ([]string, error)
}
