package workspace

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Report struct {
	Title         string `json:"title"`
	RunID         string `json:"run_id,omitempty"`
	WordCount     int    `json:"word_count"`
	SentenceCount int    `json:"sentence_count"`
	IssueCount    int    `json:"issue_count"`
	Cleaned       string `json:"cleaned,omitempty"`
	Analysis      any    `json:"analysis,omitempty"`
}

type ProjectInfo struct {
	ID         string
	Root       string
	SourcePath string
	ReportPath string
}

func CreateProject(workspaceRoot, title string, source []byte) (*ProjectInfo, error) {
	return CreateProjectWithSource(workspaceRoot, title, "source.txt", source)
}

func CreateProjectWithSource(workspaceRoot, title, sourceFileName string, source []byte) (*ProjectInfo, error) {
	id := titleHash(title)
	projectRoot := filepath.Join(workspaceRoot, "projects", id)
	if err := os.MkdirAll(projectRoot, 0o755); err != nil {
		return nil, fmt.Errorf("create project dir: %w", err)
	}

	sourceFileName = sanitizeSourceName(sourceFileName)
	sourcePath := filepath.Join(projectRoot, sourceFileName)
	if len(source) > 0 {
		if err := os.WriteFile(sourcePath, source, 0o644); err != nil {
			return nil, fmt.Errorf("write source file: %w", err)
		}
	} else if _, err := os.Stat(sourcePath); os.IsNotExist(err) {
		if err := os.WriteFile(sourcePath, nil, 0o644); err != nil {
			return nil, fmt.Errorf("create empty source file: %w", err)
		}
	}

	reportPath := filepath.Join(projectRoot, "report.json")
	if _, err := os.Stat(reportPath); os.IsNotExist(err) {
		if err := SaveReport(reportPath, Report{Title: strings.TrimSpace(title)}); err != nil {
			return nil, err
		}
	}

	return &ProjectInfo{
		ID:         id,
		Root:       projectRoot,
		SourcePath: sourcePath,
		ReportPath: reportPath,
	}, nil
}

func SaveReport(path string, report Report) error {
	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func LoadReport(path string) (Report, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if err := json.Unmarshal(raw, &r); err != nil {
		return Report{}, fmt.Errorf("decode report: %w", err)
	}
	return r, nil
}

func titleHash(title string) string {
	trimmed := strings.TrimSpace(strings.ToLower(title))
	sum := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(sum[:])[:12]
}

func sanitizeSourceName(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "source.txt"
	}
	return strings.ReplaceAll(base, "..", "")
}
