package app

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academic_style/internal/config"
	"academic_style/internal/db"
	"academic_style/internal/ingest"
	"academic_style/internal/style"
	"academic_style/internal/workspace"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Output:   config.OutputConfig{WrapWidth: 90, Format: "text"},
		Humanise: config.HumaniseConfig{ConnectorProbability: 0.35},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestServiceAnalyseWithClean(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.Clean = true
	svc, err := NewService(cfg, quietLogger())
	require.NoError(t, err)

	out, err := svc.Analyse(&ingest.Parsed{Title: "stdin", Text: "There is a lot of stuff here. It's fine."})
	require.NoError(t, err)
	assert.Equal(t, "stdin", out.Source)
	assert.Len(t, out.Result.Sentences, 2)
	assert.Contains(t, out.Cleaned, "It is fine.")
	assert.Contains(t, out.Cleaned, "a lot (a substantial amount)")
	assert.Empty(t, out.RunID)
}

func TestServiceAnalyseEmpty(t *testing.T) {
	svc, err := NewService(testConfig(t), quietLogger())
	require.NoError(t, err)

	_, err = svc.Analyse(&ingest.Parsed{Text: "   \n"})
	assert.ErrorIs(t, err, style.ErrEmptyInput)
}

func TestServiceRecordsHistoryAndWorkspace(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t)
	cfg.Workspace = config.WorkspaceConfig{Enabled: true, Root: filepath.Join(dir, workspace.BaseDirName)}
	svc, err := NewService(cfg, quietLogger())
	require.NoError(t, err)

	doc := &ingest.Parsed{Title: "essay", SourceBytes: []byte("I don't know."), Text: "I don't know."}
	out, err := svc.Analyse(doc)
	require.NoError(t, err)
	require.NotEmpty(t, out.RunID)
	require.NotEmpty(t, out.ReportPath)

	rep, err := workspace.LoadReport(out.ReportPath)
	require.NoError(t, err)
	assert.Equal(t, out.RunID, rep.RunID)
	assert.Equal(t, len(out.Result.Issues), rep.IssueCount)

	runs, err := svc.History(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, out.RunID, runs[0].ID)

	stored, err := db.RunIssues(workspace.HistoryPath(cfg.Workspace.Root), out.RunID)
	require.NoError(t, err)
	assert.Equal(t, out.Result.Issues, stored)
}

func TestServiceHistoryDisabled(t *testing.T) {
	svc, err := NewService(testConfig(t), quietLogger())
	require.NoError(t, err)
	_, err = svc.History(5)
	assert.Error(t, err)
}

func TestServiceBatch(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.txt"),
		filepath.Join(dir, "empty.txt"),
	}
	require.NoError(t, os.WriteFile(paths[0], []byte("We don't agree. This is short."), 0o644))
	require.NoError(t, os.WriteFile(paths[1], []byte("The evidence presented here supports the hypothesis."), 0o644))
	require.NoError(t, os.WriteFile(paths[2], []byte("  \n"), 0o644))

	cfg := testConfig(t)
	cfg.Store.Path = filepath.Join(dir, "history.db")
	cfg.Batch.Workers = 2
	svc, err := NewService(cfg, quietLogger())
	require.NoError(t, err)

	outcomes, errs := svc.Batch(paths)
	require.Len(t, outcomes, 3)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], style.ErrEmptyInput)

	require.NotNil(t, outcomes[0])
	require.NotNil(t, outcomes[1])
	assert.Nil(t, outcomes[2])
	assert.Equal(t, paths[0], outcomes[0].Source)
	assert.Empty(t, outcomes[1].Result.Issues)

	count, err := db.CountRows(cfg.Store.Path, "runs")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

type neverSource struct{}

func (neverSource) Float64() float64 { return 0.99 }
func (neverSource) IntN(int) int     { return 0 }

func TestServiceHumanise(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.WrapWidth = 20
	svc, err := NewService(cfg, quietLogger())
	require.NoError(t, err)

	got := svc.Humanise("The first claim holds. The second claim also holds.", neverSource{})
	assert.Equal(t, "The first claim holds. The second claim also holds.", strings.ReplaceAll(got, "\n", " "))
	for _, line := range strings.Split(got, "\n") {
		assert.LessOrEqual(t, len(line), 20)
	}

	cfg.Humanise.Seed = 11
	assert.Equal(t,
		svc.Humanise("One point. Two points. Three points. Four points.", nil),
		svc.Humanise("One point. Two points. Three points. Four points.", nil))
}

func TestServiceCustomTerms(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terms.yaml")
	raw := []byte("contractions: {\"ain't\": \"is not\"}\ninformal: {\"awesome\": \"impressive\"}\nconnectors: [\"Thus, \"]\n")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	cfg := testConfig(t)
	cfg.Terms.Path = path
	cfg.Output.Clean = true
	svc, err := NewService(cfg, quietLogger())
	require.NoError(t, err)

	out, err := svc.Analyse(&ingest.Parsed{Text: "This result ain't awesome at all, frankly speaking."})
	require.NoError(t, err)
	assert.Equal(t, "This result is not awesome (impressive) at all, frankly speaking.", out.Cleaned)
}
