package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abdidvp/sclkraft/internal/domain"
)

var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	".git":         true,
	".sclkraft":    true,
	"dist":         true,
	"bin":          true,
	"build":        true,
}

// FileScanner implements domain.SourceScanner by walking the filesystem.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

// Scan collects files whose extension matches the config, relative to
// projectPath and sorted so runs are reproducible.
func (s *FileScanner) Scan(projectPath string, cfg domain.ProjectConfig) (*domain.ScanResult, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, err
	}

	// Merge extra excludes with built-in skip dirs.
	extraSkip := make(map[string]bool, len(cfg.ExcludePaths))
	for _, p := range cfg.ExcludePaths {
		extraSkip[filepath.ToSlash(strings.TrimSuffix(p, "/"))] = true
	}

	exts := make(map[string]bool)
	for _, e := range cfg.SourceExtensions() {
		exts[strings.ToLower(e)] = true
	}

	result := &domain.ScanResult{
		RootPath:    absPath,
		SourceFiles: []string{},
	}

	err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, _ := filepath.Rel(absPath, path)
		if d.IsDir() {
			if path == absPath {
				return nil
			}
			if skipDirs[d.Name()] || extraSkip[d.Name()] || extraSkip[filepath.ToSlash(relPath)] {
				return filepath.SkipDir
			}
			return nil
		}

		if exts[strings.ToLower(filepath.Ext(d.Name()))] {
			result.SourceFiles = append(result.SourceFiles, relPath)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(result.SourceFiles)
	return result, nil
}
