package application

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abdidvp/sclkraft/internal/adapters/outbound/cache"
	"github.com/abdidvp/sclkraft/internal/adapters/outbound/config"
	"github.com/abdidvp/sclkraft/internal/adapters/outbound/history"
	"github.com/abdidvp/sclkraft/internal/adapters/outbound/scanner"
	"github.com/abdidvp/sclkraft/internal/domain"
	"github.com/abdidvp/sclkraft/internal/domain/rules"
)

const (
	cleanBlock = `FUNCTION_BLOCK FB_Valve
VAR_INPUT
    open : BOOL;
END_VAR
END_FUNCTION_BLOCK
`
	staticFunction = `FUNCTION FC_Scale : REAL
VAR
    last : REAL;
END_VAR
END_FUNCTION
`
	unboundProgram = `PROGRAM Main
VAR
    speed : INT;
END_VAR
END_PROGRAM
`
)

type fakeGit struct {
	repo    bool
	hash    string
	changed []string
}

func (f *fakeGit) IsGitRepo(string) bool { return f.repo }

func (f *fakeGit) CommitHash(string) (string, error) {
	if !f.repo {
		return "", errors.New("no repo")
	}
	return f.hash, nil
}

func (f *fakeGit) ChangedFiles(string) ([]string, error) { return f.changed, nil }

func newValidateService(git domain.GitInfo) *ValidateService {
	svc := NewValidateService(scanner.New(), config.New(), cache.New(), history.New(), git, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func TestValidateSource(t *testing.T) {
	svc := newValidateService(&fakeGit{})

	report, err := svc.ValidateSource("scale", staticFunction, domain.DefaultConfig())
	require.NoError(t, err)
	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, domain.DocumentLine, report.Errors[0].Line)
}

func TestValidateSource_ConfigDisablesRule(t *testing.T) {
	svc := newValidateService(&fakeGit{})
	cfg := domain.DefaultConfig()
	cfg.Rules.Disabled = []string{domain.RuleHardwareMapping}

	report, err := svc.ValidateSource("main", unboundProgram, cfg)
	require.NoError(t, err)
	assert.Empty(t, report.Warnings)
}

func TestValidateProject_AggregatesFiles(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"valve.scl":        cleanBlock,
		"math/scale.scl":   staticFunction,
		"main.st":          unboundProgram,
		"notes/readme.txt": "not source",
	})
	svc := newValidateService(&fakeGit{})

	report, err := svc.ValidateProject(context.Background(), dir, ProjectOptions{})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusFail, report.Status)
	assert.Equal(t, 1, report.Errors)
	assert.Equal(t, 1, report.Warnings)
	assert.Zero(t, report.Faults)
	assert.NotEmpty(t, report.ID)
	require.Len(t, report.Files, 3)
	assert.Equal(t, "main.st", report.Files[0].File)
	assert.Equal(t, filepath.Join("math", "scale.scl"), report.Files[1].File)
	assert.Equal(t, "valve.scl", report.Files[2].File)
}

func TestValidateProject_WarnAndStrict(t *testing.T) {
	dir := writeProject(t, map[string]string{"main.scl": unboundProgram})
	svc := newValidateService(&fakeGit{})

	report, err := svc.ValidateProject(context.Background(), dir, ProjectOptions{NoCache: true})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusWarn, report.Status)

	report, err = svc.ValidateProject(context.Background(), dir, ProjectOptions{NoCache: true, Strict: true})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFail, report.Status)
}

func TestValidateProject_StrictFromConfig(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"main.scl":       unboundProgram,
		".sclkraft.yaml": "strict: true\n",
	})
	svc := newValidateService(&fakeGit{})

	report, err := svc.ValidateProject(context.Background(), dir, ProjectOptions{})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFail, report.Status)
}

func TestValidateProject_CachesReports(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"valve.scl": cleanBlock,
		"main.scl":  unboundProgram,
	})
	svc := newValidateService(&fakeGit{})

	first, err := svc.ValidateProject(context.Background(), dir, ProjectOptions{})
	require.NoError(t, err)
	for _, f := range first.Files {
		assert.False(t, f.Cached, f.File)
	}

	second, err := svc.ValidateProject(context.Background(), dir, ProjectOptions{})
	require.NoError(t, err)
	for _, f := range second.Files {
		assert.True(t, f.Cached, f.File)
	}
	assert.Equal(t, first.Warnings, second.Warnings)
	assert.Equal(t, first.Status, second.Status)
}

func TestValidateProject_ConfigChangeInvalidatesCache(t *testing.T) {
	dir := writeProject(t, map[string]string{"main.scl": unboundProgram})
	svc := newValidateService(&fakeGit{})

	_, err := svc.ValidateProject(context.Background(), dir, ProjectOptions{})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".sclkraft.yaml"),
		[]byte("rules:\n  disabled: [\"hardware-mapping\"]\n"), 0644))

	report, err := svc.ValidateProject(context.Background(), dir, ProjectOptions{})
	require.NoError(t, err)
	require.Len(t, report.Files, 1)
	assert.False(t, report.Files[0].Cached)
	assert.Equal(t, domain.StatusPass, report.Status)
}

func TestValidateProject_NoCacheWritesNothing(t *testing.T) {
	dir := writeProject(t, map[string]string{"valve.scl": cleanBlock})
	svc := newValidateService(&fakeGit{})

	_, err := svc.ValidateProject(context.Background(), dir, ProjectOptions{NoCache: true})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, ".sclkraft", "cache", "reports.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestValidateProject_RecordsHistory(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"valve.scl": cleanBlock,
		"main.scl":  unboundProgram,
	})
	svc := newValidateService(&fakeGit{repo: true, hash: "0123456789abcdef"})

	report, err := svc.ValidateProject(context.Background(), dir, ProjectOptions{Record: true})
	require.NoError(t, err)
	assert.Equal(t, "0123456789abcdef", report.CommitHash)

	entries, err := svc.History(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, report.ID, entries[0].ID)
	assert.Equal(t, "2026-03-01T12:00:00Z", entries[0].Timestamp)
	assert.Equal(t, "0123456789abcdef", entries[0].CommitHash)
	assert.Equal(t, domain.StatusWarn, entries[0].Status)
	assert.Equal(t, 2, entries[0].Files)
	assert.Equal(t, 1, entries[0].Warnings)
}

func TestValidateProject_ChangedOnly(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"valve.scl": cleanBlock,
		"main.scl":  unboundProgram,
	})
	git := &fakeGit{repo: true, hash: "abc", changed: []string{"valve.scl", "README.md"}}
	svc := newValidateService(git)

	report, err := svc.ValidateProject(context.Background(), dir, ProjectOptions{ChangedOnly: true})
	require.NoError(t, err)
	require.Len(t, report.Files, 1)
	assert.Equal(t, "valve.scl", report.Files[0].File)
	assert.Equal(t, domain.StatusPass, report.Status)
}

func TestValidateProject_ChangedOnlyFiltersExplicitFiles(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"valve.scl": cleanBlock,
		"main.scl":  unboundProgram,
	})
	svc := newValidateService(&fakeGit{repo: true, hash: "abc", changed: []string{"valve.scl"}})

	report, err := svc.ValidateProject(context.Background(), dir, ProjectOptions{
		Files:       []string{"valve.scl", "main.scl"},
		ChangedOnly: true,
	})
	require.NoError(t, err)
	require.Len(t, report.Files, 1)
	assert.Equal(t, "valve.scl", report.Files[0].File)
}

func TestValidateProject_ChangedOnlyIsNotRecorded(t *testing.T) {
	dir := writeProject(t, map[string]string{"valve.scl": cleanBlock})
	svc := newValidateService(&fakeGit{repo: true, hash: "abc", changed: []string{"valve.scl"}})

	_, err := svc.ValidateProject(context.Background(), dir, ProjectOptions{ChangedOnly: true, Record: true})
	require.NoError(t, err)

	entries, err := svc.History(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestValidateProject_ChangedOnlyOutsideRepo(t *testing.T) {
	dir := writeProject(t, map[string]string{"valve.scl": cleanBlock})
	svc := newValidateService(&fakeGit{})

	_, err := svc.ValidateProject(context.Background(), dir, ProjectOptions{ChangedOnly: true})
	assert.ErrorIs(t, err, ErrNotGitRepo)
}

func TestValidateProject_ExplicitFiles(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"valve.scl": cleanBlock,
		"main.scl":  unboundProgram,
	})
	svc := newValidateService(&fakeGit{})

	report, err := svc.ValidateProject(context.Background(), dir, ProjectOptions{Files: []string{"valve.scl"}})
	require.NoError(t, err)
	require.Len(t, report.Files, 1)
	assert.Equal(t, domain.StatusPass, report.Status)
}

func TestValidateProject_MissingFile(t *testing.T) {
	dir := writeProject(t, map[string]string{"valve.scl": cleanBlock})
	svc := newValidateService(&fakeGit{})

	_, err := svc.ValidateProject(context.Background(), dir, ProjectOptions{Files: []string{"gone.scl"}})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidateProject_FaultsAreIsolated(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"valve.scl": cleanBlock,
		"boom.scl":  "FUNCTION_BLOCK FB_Boom\nPANIC\nEND_FUNCTION_BLOCK\n",
	})
	svc := newValidateService(&fakeGit{repo: true, hash: "abc"})
	svc.engineFor = func(domain.ProjectConfig) *rules.Engine {
		return rules.NewEngine(rules.RuleFunc{
			ID: "explodes",
			Fn: func(source string) ([]domain.Issue, error) {
				if strings.Contains(source, "PANIC") {
					panic("boom")
				}
				return nil, nil
			},
		})
	}

	report, err := svc.ValidateProject(context.Background(), dir, ProjectOptions{Record: true})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFail, report.Status)
	assert.Equal(t, 1, report.Faults)
	require.Len(t, report.Files, 2)
	assert.Equal(t, "boom.scl", report.Files[0].File)
	assert.Contains(t, report.Files[0].Fault, "panicked")
	assert.Nil(t, report.Files[0].Report)
	assert.NotNil(t, report.Files[1].Report)

	entry, err := cache.New().Load(dir)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Len(t, entry.Reports, 1, "faulted files are not cached")

	entries, err := svc.History(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Files)
	assert.Equal(t, domain.StatusFail, entries[0].Status)
}

func TestValidateProject_Cancelled(t *testing.T) {
	dir := writeProject(t, map[string]string{"valve.scl": cleanBlock})
	svc := newValidateService(&fakeGit{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ValidateProject(ctx, dir, ProjectOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidateFile_UsesCache(t *testing.T) {
	dir := writeProject(t, map[string]string{"scale.scl": staticFunction})
	svc := newValidateService(&fakeGit{})

	first, err := svc.ValidateFile(dir, "scale.scl")
	require.NoError(t, err)
	assert.False(t, first.Cached)
	require.NotNil(t, first.Report)
	assert.Len(t, first.Report.Errors, 1)

	second, err := svc.ValidateFile(dir, "scale.scl")
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Report, second.Report)
}

func TestValidateFile_ContentChangeMisses(t *testing.T) {
	dir := writeProject(t, map[string]string{"scale.scl": staticFunction})
	svc := newValidateService(&fakeGit{})

	_, err := svc.ValidateFile(dir, "scale.scl")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "scale.scl"), []byte(cleanBlock), 0644))
	report, err := svc.ValidateFile(dir, "scale.scl")
	require.NoError(t, err)
	assert.False(t, report.Cached)
	assert.True(t, report.Report.Valid)
}

func TestValidateFile_Missing(t *testing.T) {
	svc := newValidateService(&fakeGit{})
	_, err := svc.ValidateFile(t.TempDir(), "nope.scl")
	assert.Error(t, err)
}

func TestConfigHash_IgnoresScanSettings(t *testing.T) {
	a := domain.DefaultConfig()
	b := domain.DefaultConfig()
	b.ExcludePaths = []string{"build"}
	b.Strict = true
	assert.Equal(t, configHash(a, "1.0.0"), configHash(b, "1.0.0"))

	b.Types.Extra = []string{"TON"}
	assert.NotEqual(t, configHash(a, "1.0.0"), configHash(b, "1.0.0"))
}

func TestConfigHash_CoversVersion(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.NotEqual(t, configHash(cfg, "1.0.0"), configHash(cfg, "1.1.0"))
}

func TestValidateFile_UpgradeInvalidatesCache(t *testing.T) {
	dir := writeProject(t, map[string]string{"scale.scl": staticFunction})

	old := newValidateService(&fakeGit{}).WithVersion("1.0.0")
	_, err := old.ValidateFile(dir, "scale.scl")
	require.NoError(t, err)

	same, err := newValidateService(&fakeGit{}).WithVersion("1.0.0").ValidateFile(dir, "scale.scl")
	require.NoError(t, err)
	assert.True(t, same.Cached)

	upgraded, err := newValidateService(&fakeGit{}).WithVersion("1.1.0").ValidateFile(dir, "scale.scl")
	require.NoError(t, err)
	assert.False(t, upgraded.Cached)
}

func TestValidateFile_RejectsPathsOutsideProject(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "plc")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(parent, "secret.scl"), []byte(cleanBlock), 0644))
	svc := newValidateService(&fakeGit{})

	for _, rel := range []string{"../secret.scl", "a/../../secret.scl", filepath.Join(parent, "secret.scl")} {
		_, err := svc.ValidateFile(dir, rel)
		assert.ErrorIs(t, err, ErrOutsideProject, rel)
	}
}

func TestValidateFile_RejectsNonSourceFiles(t *testing.T) {
	dir := writeProject(t, map[string]string{"notes.txt": "if you read this\n"})
	svc := newValidateService(&fakeGit{})

	_, err := svc.ValidateFile(dir, "notes.txt")
	assert.ErrorIs(t, err, ErrNotSourceFile)
}

func TestValidateProject_ExplicitFilesAreConfined(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "plc")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(parent, "other.scl"), []byte(cleanBlock), 0644))
	svc := newValidateService(&fakeGit{})

	_, err := svc.ValidateProject(context.Background(), dir, ProjectOptions{Files: []string{"../other.scl"}})
	assert.ErrorIs(t, err, ErrOutsideProject)
}

func TestResolveSourceFile(t *testing.T) {
	cfg := domain.DefaultConfig()
	root := filepath.Join(t.TempDir(), "plc")

	tests := []struct {
		rel  string
		want string
		err  error
	}{
		{rel: "main.scl", want: "main.scl"},
		{rel: "./blocks/../main.scl", want: "main.scl"},
		{rel: filepath.Join("blocks", "Valve.SCL"), want: filepath.Join("blocks", "Valve.SCL")},
		{rel: "..", err: ErrOutsideProject},
		{rel: "../main.scl", err: ErrOutsideProject},
		{rel: "..main.scl", want: "..main.scl"},
		{rel: "main.txt", err: ErrNotSourceFile},
		{rel: "blocks", err: ErrNotSourceFile},
	}
	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			got, err := resolveSourceFile(root, tt.rel, cfg)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
