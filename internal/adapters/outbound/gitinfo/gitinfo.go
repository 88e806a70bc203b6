package gitinfo

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
)

// GitInfoAdapter implements domain.GitInfo using go-git.
type GitInfoAdapter struct{}

func New() *GitInfoAdapter {
	return &GitInfoAdapter{}
}

func (g *GitInfoAdapter) IsGitRepo(projectPath string) bool {
	_, err := open(projectPath)
	return err == nil
}

func (g *GitInfoAdapter) CommitHash(projectPath string) (string, error) {
	repo, err := open(projectPath)
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}

	return head.Hash().String(), nil
}

// ChangedFiles lists modified, added and untracked files relative to
// projectPath. Deleted files are left out since there is nothing to read.
func (g *GitInfoAdapter) ChangedFiles(projectPath string) ([]string, error) {
	repo, err := open(projectPath)
	if err != nil {
		return nil, fmt.Errorf("opening git repo: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("reading status: %w", err)
	}

	absProject, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, err
	}
	absProject, err = filepath.EvalSymlinks(absProject)
	if err != nil {
		return nil, err
	}
	root, err := filepath.EvalSymlinks(wt.Filesystem.Root())
	if err != nil {
		return nil, err
	}
	prefix, err := filepath.Rel(root, absProject)
	if err != nil {
		return nil, err
	}
	prefix = filepath.ToSlash(prefix)

	files := []string{}
	for path, st := range status {
		if st.Worktree == git.Unmodified && st.Staging == git.Unmodified {
			continue
		}
		if st.Worktree == git.Deleted || st.Staging == git.Deleted {
			continue
		}
		rel := path
		if prefix != "." {
			if !strings.HasPrefix(path, prefix+"/") {
				continue
			}
			rel = strings.TrimPrefix(path, prefix+"/")
		}
		files = append(files, filepath.FromSlash(rel))
	}
	sort.Strings(files)
	return files, nil
}

func open(projectPath string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(projectPath, &git.PlainOpenOptions{DetectDotGit: true})
}
