package application

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/abdidvp/sclkraft/internal/domain"
)

var (
	// ErrOutsideProject is returned for a file path that leaves the project root.
	ErrOutsideProject = errors.New("path is outside the project")
	// ErrNotSourceFile is returned for a file whose extension is not configured.
	ErrNotSourceFile = errors.New("not a configured source file")
)

// resolveSourceFile confines a caller-supplied path to root and to the
// configured extensions. It returns the cleaned project-relative path.
func resolveSourceFile(root, rel string, cfg domain.ProjectConfig) (string, error) {
	if filepath.IsAbs(rel) {
		return "", fmt.Errorf("%w: %s", ErrOutsideProject, rel)
	}
	clean, err := filepath.Rel(root, filepath.Join(root, rel))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrOutsideProject, rel)
	}
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		return "", fmt.Errorf("%w: %s", ErrOutsideProject, rel)
	}

	ext := filepath.Ext(clean)
	for _, want := range cfg.SourceExtensions() {
		if strings.EqualFold(ext, want) {
			return clean, nil
		}
	}
	return "", fmt.Errorf("%w: %s (extensions: %s)", ErrNotSourceFile, rel, strings.Join(cfg.SourceExtensions(), ", "))
}

func resolveSourceFiles(root string, files []string, cfg domain.ProjectConfig) ([]string, error) {
	out := make([]string, 0, len(files))
	for _, f := range files {
		clean, err := resolveSourceFile(root, f, cfg)
		if err != nil {
			return nil, err
		}
		out = append(out, clean)
	}
	return out, nil
}
