package app

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"academic_style/internal/config"
	"academic_style/internal/db"
	"academic_style/internal/ingest"
	"academic_style/internal/pipeline"
	"academic_style/internal/report"
	"academic_style/internal/rewrite"
	"academic_style/internal/style"
	"academic_style/internal/terms"
	"academic_style/internal/workspace"
)

// Outcome is everything produced for one document.
type Outcome struct {
	Source     string
	Result     style.Result
	Cleaned    string
	RunID      string
	ReportPath string
}

// Service wires ingestion, analysis, rewriting and the optional history and
// workspace outputs together.
type Service struct {
	cfg      *config.Config
	logger   *slog.Logger
	set      terms.Set
	analyzer *style.Analyzer
	cleaner  *rewrite.Cleaner
	now      func() time.Time

	// sqlite and the workspace are written by one document at a time.
	persistMu sync.Mutex
}

func NewService(cfg *config.Config, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	set := terms.Default()
	if cfg.Terms.Path != "" {
		custom, err := terms.LoadFile(cfg.Terms.Path)
		if err != nil {
			return nil, fmt.Errorf("load term tables: %w", err)
		}
		set = custom
		logger.Info("custom term tables loaded",
			slog.String("path", cfg.Terms.Path),
			slog.Int("contractions", set.Contractions.Len()),
			slog.Int("informal", set.Informal.Len()))
	}
	return &Service{
		cfg:      cfg,
		logger:   logger,
		set:      set,
		analyzer: style.NewAnalyzer(set),
		cleaner:  rewrite.NewCleaner(set),
		now:      time.Now,
	}, nil
}

// Analyse checks one document. Blank input yields style.ErrEmptyInput.
func (s *Service) Analyse(doc *ingest.Parsed) (*Outcome, error) {
	res, err := s.analyzer.Analyze(doc.Text)
	if err != nil {
		return nil, err
	}
	out := &Outcome{Source: sourceName(doc), Result: res}
	s.logger.Debug("document analysed",
		slog.String("source", out.Source),
		slog.Int("sentences", len(res.Sentences)),
		slog.Int("issues", len(res.Issues)))

	if s.cfg.Output.Clean {
		out.Cleaned = s.cleaner.Clean(doc.Text, rewrite.Options{
			Width:  s.cfg.Output.WrapWidth,
			NoWrap: s.cfg.Output.NoWrap,
		})
	}

	if err := s.persist(doc, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Humanise rewrites text with connector insertion. A nil src draws from the
// configured seed, or a time-based one when the seed is 0.
func (s *Service) Humanise(text string, src rewrite.Source) string {
	if src == nil {
		seed := uint64(s.cfg.Humanise.Seed)
		if seed == 0 {
			seed = uint64(s.now().UnixNano())
		}
		src = rewrite.NewSeededSource(seed)
	}
	width := s.cfg.Output.WrapWidth
	if s.cfg.Output.NoWrap {
		width = 0
	}
	h := rewrite.NewHumaniser(s.set, src, s.cfg.Humanise.ConnectorProbability)
	return h.Humanise(text, width)
}

// Batch analyses every path on the worker pool. Outcomes keep the order of
// paths; a failed or empty document leaves a nil slot and an error.
func (s *Service) Batch(paths []string) ([]*Outcome, []error) {
	outcomes := make([]*Outcome, len(paths))
	errs := pipeline.Run(pipeline.JobsFromPaths(paths), s.cfg.Batch.Workers, func(job pipeline.Job) error {
		doc, err := ingest.ParseFile(job.Path)
		if err != nil {
			return fmt.Errorf("%s: %w", job.Path, err)
		}
		out, err := s.Analyse(doc)
		if err != nil {
			return fmt.Errorf("%s: %w", job.Path, err)
		}
		outcomes[job.Index] = out
		return nil
	})
	for _, err := range errs {
		s.logger.Warn("batch document failed", slog.Any("error", err))
	}
	return outcomes, errs
}

func (s *Service) historyPath() (string, error) {
	if s.cfg.Store.Path != "" {
		return s.cfg.Store.Path, nil
	}
	if !s.cfg.Workspace.Enabled {
		return "", nil
	}
	root, err := s.workspaceRoot()
	if err != nil {
		return "", err
	}
	return workspace.HistoryPath(root), nil
}

func (s *Service) workspaceRoot() (string, error) {
	if s.cfg.Workspace.Root != "" {
		return workspace.EnsureAt(s.cfg.Workspace.Root)
	}
	return workspace.EnsureDefault()
}

// History lists stored runs, newest first.
func (s *Service) History(limit int) ([]db.Run, error) {
	path, err := s.historyPath()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, errors.New("run history is disabled: set store.path or enable the workspace")
	}
	return db.ListRuns(path, limit)
}

func (s *Service) persist(doc *ingest.Parsed, out *Outcome) error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	path, err := s.historyPath()
	if err != nil {
		return fmt.Errorf("workspace: %w", err)
	}
	if path != "" {
		run, err := db.PersistRun(path, out.Source, out.Result, s.now())
		if err != nil {
			return fmt.Errorf("record run: %w", err)
		}
		out.RunID = run.ID
		s.logger.Info("run recorded", slog.String("run_id", run.ID), slog.String("db", path))
	}

	if !s.cfg.Workspace.Enabled {
		return nil
	}
	root, err := s.workspaceRoot()
	if err != nil {
		return fmt.Errorf("workspace: %w", err)
	}
	sourceFile := "source.txt"
	if doc.SourcePath != "" {
		sourceFile = filepath.Base(doc.SourcePath)
	}
	project, err := workspace.CreateProjectWithSource(root, doc.Title, sourceFile, doc.SourceBytes)
	if err != nil {
		return fmt.Errorf("workspace: %w", err)
	}
	rep := workspace.Report{
		Title:         doc.Title,
		RunID:         out.RunID,
		WordCount:     out.Result.Stats.WordCount,
		SentenceCount: len(out.Result.Sentences),
		IssueCount:    len(out.Result.Issues),
		Cleaned:       out.Cleaned,
		Analysis:      report.NewDocument(out.Source, out.Result),
	}
	if err := workspace.SaveReport(project.ReportPath, rep); err != nil {
		return fmt.Errorf("workspace: %w", err)
	}
	out.ReportPath = project.ReportPath
	s.logger.Info("workspace report saved", slog.String("path", project.ReportPath))
	return nil
}

func sourceName(doc *ingest.Parsed) string {
	if doc.SourcePath != "" {
		return doc.SourcePath
	}
	if doc.Title != "" {
		return doc.Title
	}
	return "stdin"
}
