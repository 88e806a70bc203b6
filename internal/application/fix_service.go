package application

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/abdidvp/sclkraft/internal/domain"
	"github.com/abdidvp/sclkraft/internal/domain/normalize"
	"github.com/abdidvp/sclkraft/internal/logger"
)

// FixService rewrites source files into canonical keyword case.
type FixService struct {
	scanner      domain.SourceScanner
	configLoader domain.ConfigLoader
	log          *zap.Logger
}

func NewFixService(scanner domain.SourceScanner, configLoader domain.ConfigLoader, log *zap.Logger) *FixService {
	if log == nil {
		log = zap.NewNop()
	}
	return &FixService{scanner: scanner, configLoader: configLoader, log: log.Named(logger.ComponentFix)}
}

// Normalize uppercases IEC keywords in files, or in every source file of
// the project when files is empty. With dryRun set nothing is written and
// the plan lists the files that would change.
func (s *FixService) Normalize(projectPath string, files []string, dryRun bool) (*domain.FixPlan, error) {
	cfg, err := s.configLoader.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if len(files) == 0 {
		scan, err := s.scanner.Scan(projectPath, cfg)
		if err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		files = scan.SourceFiles
	} else if files, err = resolveSourceFiles(projectPath, files, cfg); err != nil {
		return nil, err
	}

	plan := &domain.FixPlan{DryRun: dryRun, Applied: []domain.AppliedFix{}}
	for _, rel := range files {
		path := filepath.Join(projectPath, rel)
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", rel, err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", rel, err)
		}

		normalized := normalize.KeywordCase(string(data))
		if normalized == string(data) {
			continue
		}

		if !dryRun {
			if err := os.WriteFile(path, []byte(normalized), info.Mode().Perm()); err != nil {
				return nil, fmt.Errorf("writing %s: %w", rel, err)
			}
			s.log.Info("normalized keywords", zap.String("file", rel))
		}
		plan.Applied = append(plan.Applied, domain.AppliedFix{
			Type:        domain.FixTypeNormalizeKeywords,
			Path:        rel,
			Description: "uppercased IEC 61131-3 keywords",
		})
	}
	return plan, nil
}
