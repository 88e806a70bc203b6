package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abdidvp/sclkraft/internal/domain"
	"github.com/abdidvp/sclkraft/internal/domain/rules"
	"github.com/abdidvp/sclkraft/internal/logger"
)

// ErrNotGitRepo is returned when changed-only validation runs outside a repository.
var ErrNotGitRepo = errors.New("not a git repository")

// ProjectOptions tune a project validation run.
type ProjectOptions struct {
	// Files restricts the run to these project-relative paths. Empty means scan.
	Files       []string
	ChangedOnly bool
	Strict      bool
	NoCache     bool
	// Record appends the run to the project history. Changed-only runs are
	// never recorded.
	Record bool
	// Jobs caps concurrent file validations. Zero uses GOMAXPROCS.
	Jobs int
}

// ValidateService runs the rule engine over sources, files and whole projects.
type ValidateService struct {
	scanner      domain.SourceScanner
	configLoader domain.ConfigLoader
	cache        domain.ReportCache
	history      domain.RunHistory
	git          domain.GitInfo
	log          *zap.Logger
	version      string
	now          func() time.Time
	engineFor    func(domain.ProjectConfig) *rules.Engine
}

const devVersion = "dev"

// NewValidateService creates a new ValidateService with all required dependencies.
func NewValidateService(
	scanner domain.SourceScanner,
	configLoader domain.ConfigLoader,
	cache domain.ReportCache,
	history domain.RunHistory,
	git domain.GitInfo,
	log *zap.Logger,
) *ValidateService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ValidateService{
		scanner: scanner, configLoader: configLoader, cache: cache,
		history: history, git: git,
		log:       log.Named(logger.ComponentValidate),
		version:   devVersion,
		now:       time.Now,
		engineFor: engineForConfig,
	}
}

// WithVersion sets the tool version cached reports are keyed by, so an
// upgrade never serves reports produced by older rules.
func (s *ValidateService) WithVersion(version string) *ValidateService {
	if version != "" {
		s.version = version
	}
	return s
}

// ValidateSource validates in-memory source under cfg.
func (s *ValidateService) ValidateSource(name, source string, cfg domain.ProjectConfig) (domain.ValidationReport, error) {
	report, err := s.engineFor(cfg).Validate(source)
	if err != nil {
		s.log.Error("engine fault", zap.String("source", name), zap.Error(err))
		return domain.ValidationReport{}, err
	}
	s.log.Debug("validated source",
		zap.String("source", name),
		zap.Int("errors", len(report.Errors)),
		zap.Int("warnings", len(report.Warnings)))
	return report, nil
}

// ValidateFile validates one project-relative file, consulting the report cache.
// An engine fault is reported in FileReport.Fault, not as an error.
func (s *ValidateService) ValidateFile(projectPath, rel string) (*domain.FileReport, error) {
	cfg, err := s.configLoader.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rel, err = resolveSourceFile(projectPath, rel, cfg)
	if err != nil {
		return nil, err
	}

	entry := s.loadCache(projectPath, cfg, false)
	res, err := s.checkFile(s.engineFor(cfg), projectPath, rel, entry)
	if err != nil {
		return nil, err
	}
	if res.fresh {
		entry.Store(res.hash, *res.report.Report)
		s.saveCache(projectPath, entry)
	}
	return &res.report, nil
}

// ValidateProject validates every source file of a project concurrently and
// aggregates the results into a pass/warn/fail status.
func (s *ValidateService) ValidateProject(ctx context.Context, projectPath string, opts ProjectOptions) (*domain.ProjectReport, error) {
	cfg, err := s.configLoader.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	files, err := s.selectFiles(projectPath, cfg, opts)
	if err != nil {
		return nil, err
	}
	s.log.Info("validating project", zap.String("path", projectPath), zap.Int("files", len(files)))

	engine := s.engineFor(cfg)
	entry := s.loadCache(projectPath, cfg, opts.NoCache)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine owns its slot; the cache entry is only read until Wait.
	results := make([]fileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(files))))
	for i, rel := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := s.checkFile(engine, projectPath, rel, entry)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &domain.ProjectReport{
		ID:    uuid.NewString(),
		Files: make([]domain.FileReport, 0, len(results)),
	}
	stored := 0
	for _, res := range results {
		report.Files = append(report.Files, res.report)
		if res.report.Fault != "" {
			report.Faults++
			continue
		}
		report.Errors += len(res.report.Report.Errors)
		report.Warnings += len(res.report.Report.Warnings)
		if res.fresh {
			entry.Store(res.hash, *res.report.Report)
			stored++
		}
	}
	if !opts.NoCache && stored > 0 {
		s.saveCache(projectPath, entry)
	}

	report.Status = domain.ComputeStatus(report.Errors, report.Warnings, report.Faults, opts.Strict || cfg.Strict)
	if s.git != nil && s.git.IsGitRepo(projectPath) {
		if hash, err := s.git.CommitHash(projectPath); err == nil {
			report.CommitHash = hash
		}
	}

	// Partial runs would skew the error trend of full ones.
	if opts.Record && !opts.ChangedOnly {
		if err := s.record(projectPath, report); err != nil {
			return nil, fmt.Errorf("saving history: %w", err)
		}
	}

	s.log.Info("project validated",
		zap.String("status", report.Status),
		zap.Int("errors", report.Errors),
		zap.Int("warnings", report.Warnings),
		zap.Int("faults", report.Faults))
	return report, nil
}

// History returns the recorded runs of a project, oldest first.
func (s *ValidateService) History(projectPath string) ([]domain.RunEntry, error) {
	return s.history.Load(projectPath)
}

type fileResult struct {
	report domain.FileReport
	hash   string
	fresh  bool
}

func (s *ValidateService) checkFile(engine *rules.Engine, root, rel string, entry *domain.ReportCacheEntry) (fileResult, error) {
	data, err := os.ReadFile(filepath.Join(root, rel))
	if err != nil {
		return fileResult{}, fmt.Errorf("reading %s: %w", rel, err)
	}

	hash := contentHash(data)
	if cached, ok := entry.Lookup(hash); ok {
		s.log.Debug("cache hit", zap.String("file", rel))
		return fileResult{
			report: domain.FileReport{File: rel, Report: &cached, Cached: true},
			hash:   hash,
		}, nil
	}

	report, err := engine.Validate(string(data))
	if err != nil {
		s.log.Error("engine fault", zap.String("file", rel), zap.Error(err))
		return fileResult{
			report: domain.FileReport{File: rel, Fault: err.Error()},
			hash:   hash,
		}, nil
	}
	return fileResult{
		report: domain.FileReport{File: rel, Report: &report},
		hash:   hash,
		fresh:  true,
	}, nil
}

func (s *ValidateService) selectFiles(projectPath string, cfg domain.ProjectConfig, opts ProjectOptions) ([]string, error) {
	var candidates []string
	if len(opts.Files) > 0 {
		files, err := resolveSourceFiles(projectPath, opts.Files, cfg)
		if err != nil {
			return nil, err
		}
		candidates = files
	} else {
		scan, err := s.scanner.Scan(projectPath, cfg)
		if err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		candidates = scan.SourceFiles
	}
	if !opts.ChangedOnly {
		return candidates, nil
	}

	if s.git == nil || !s.git.IsGitRepo(projectPath) {
		return nil, ErrNotGitRepo
	}
	changed, err := s.git.ChangedFiles(projectPath)
	if err != nil {
		return nil, fmt.Errorf("listing changed files: %w", err)
	}
	set := make(map[string]bool, len(changed))
	for _, f := range changed {
		set[f] = true
	}
	files := []string{}
	for _, f := range candidates {
		if set[f] {
			files = append(files, f)
		}
	}
	return files, nil
}

// loadCache returns the usable cache entry for cfg. A disabled, missing,
// unreadable or stale cache yields a fresh empty entry.
func (s *ValidateService) loadCache(projectPath string, cfg domain.ProjectConfig, disabled bool) *domain.ReportCacheEntry {
	hash := configHash(cfg, s.version)
	fresh := &domain.ReportCacheEntry{ConfigHash: hash}
	if disabled || s.cache == nil {
		return fresh
	}

	entry, err := s.cache.Load(projectPath)
	if err != nil {
		s.log.Warn("ignoring unreadable report cache", zap.String("path", projectPath), zap.Error(err))
		return fresh
	}
	if entry == nil || entry.IsInvalidated(hash) {
		return fresh
	}
	return entry
}

func (s *ValidateService) saveCache(projectPath string, entry *domain.ReportCacheEntry) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Save(projectPath, entry); err != nil {
		s.log.Named(logger.ComponentCache).Warn("saving report cache", zap.Error(err))
	}
}

func (s *ValidateService) record(projectPath string, report *domain.ProjectReport) error {
	if s.history == nil {
		return nil
	}
	validated := 0
	for _, f := range report.Files {
		if f.Fault == "" {
			validated++
		}
	}
	return s.history.Save(projectPath, domain.RunEntry{
		ID:         report.ID,
		Timestamp:  s.now().UTC().Format(time.RFC3339),
		CommitHash: report.CommitHash,
		Status:     report.Status,
		Files:      validated,
		Errors:     report.Errors,
		Warnings:   report.Warnings,
	})
}

func engineForConfig(cfg domain.ProjectConfig) *rules.Engine {
	return rules.NewEngine(rules.ForConfig(cfg)...)
}

func contentHash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// configHash fingerprints the tool version and everything in cfg that can
// change a report.
func configHash(cfg domain.ProjectConfig, version string) string {
	data, _ := json.Marshal(struct {
		Version  string   `json:"version"`
		Disabled []string `json:"disabled"`
		Extra    []string `json:"extra"`
	}{version, cfg.Rules.Disabled, cfg.Types.Extra})
	return contentHash(data)
}
