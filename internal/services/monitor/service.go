// Package monitor wires configuration, logging, the cleaning pipeline and
// the ingestion history into the operations the CLI commands run.
package monitor

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"nathanbeddoewebdev/sapmon/internal/analysis"
	"nathanbeddoewebdev/sapmon/internal/config"
	"nathanbeddoewebdev/sapmon/internal/filter"
	"nathanbeddoewebdev/sapmon/internal/history"
	"nathanbeddoewebdev/sapmon/internal/logging"
	"nathanbeddoewebdev/sapmon/internal/pipeline"
	"nathanbeddoewebdev/sapmon/internal/sources"

	"go.uber.org/zap"
)

// Settings are the resolved inputs of one invocation.
type Settings struct {
	DataDir  string
	Manifest string
	// Files overrides individual sources, keyed by source name.
	Files    map[string]string
	LogLevel string
	// NoHistory disables recording load outcomes.
	NoHistory bool
}

// Resolve layers flag values over persisted config: a non-empty flag wins,
// then the config value, then the built-in default.
func Resolve(flags Settings, cfg *config.Config) Settings {
	if cfg == nil {
		cfg = &config.Config{}
	}
	out := flags
	out.DataDir = firstNonEmpty(flags.DataDir, cfg.DataDir, ".")
	out.Manifest = firstNonEmpty(flags.Manifest, cfg.Manifest)
	out.LogLevel = firstNonEmpty(flags.LogLevel, cfg.LogLevel, logging.DefaultLevel)
	return out
}

// BuildManifest turns the settings into a manifest: defaults under
// DataDir, then the manifest file if any, then per-source overrides.
func (s Settings) BuildManifest() (pipeline.Manifest, error) {
	m := pipeline.DefaultManifest(s.DataDir)
	if s.Manifest != "" {
		loaded, err := pipeline.LoadManifest(s.Manifest, s.DataDir)
		if err != nil {
			return m, err
		}
		m = loaded
	}

	keys := make([]string, 0, len(s.Files))
	for k := range s.Files {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		src, err := sources.ParseSource(k)
		if err != nil {
			return m, fmt.Errorf("monitor: --file %s: %w", k, err)
		}
		m = m.With(src, s.Files[k])
	}
	return m, nil
}

// Service runs loads and builds reports for the CLI.
type Service struct {
	settings Settings
	manifest pipeline.Manifest
	logger   *zap.Logger
	history  history.Repository
	pipeline *pipeline.Pipeline
}

// Option customizes a Service.
type Option func(*Service)

// WithLogger replaces the logger built from Settings.LogLevel.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithHistory replaces the default history repository.
func WithHistory(repo history.Repository) Option {
	return func(s *Service) { s.history = repo }
}

// NewService resolves the manifest and opens the logger and history. A
// history database that cannot be opened is logged and skipped; loads
// still work without it.
func NewService(settings Settings, opts ...Option) (*Service, error) {
	m, err := settings.BuildManifest()
	if err != nil {
		return nil, err
	}
	s := &Service{settings: settings, manifest: m}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger, err = logging.New(settings.LogLevel)
		if err != nil {
			return nil, err
		}
	}

	if s.history == nil && !settings.NoHistory {
		repo, err := history.Open()
		if err != nil {
			s.logger.Warn("load history disabled", zap.Error(err))
		} else {
			s.history = repo
		}
	}

	pipeOpts := []pipeline.Option{pipeline.WithLogger(s.logger)}
	if s.history != nil && !settings.NoHistory {
		pipeOpts = append(pipeOpts, pipeline.WithHistory(s.history))
	}
	s.pipeline = pipeline.New(pipeOpts...)
	return s, nil
}

// Manifest returns the resolved manifest.
func (s *Service) Manifest() pipeline.Manifest { return s.manifest }

// Settings returns the resolved settings.
func (s *Service) Settings() Settings { return s.settings }

// Logger returns the service logger.
func (s *Service) Logger() *zap.Logger { return s.logger }

// Load reads and cleans srcs (every source when none are given). command
// labels the run in the history.
func (s *Service) Load(ctx context.Context, command string, srcs ...sources.Source) *pipeline.Dataset {
	ctx = history.WithRun(ctx, history.NewRun(command))
	if len(srcs) == 0 {
		return s.pipeline.Load(ctx, s.manifest)
	}
	return s.pipeline.LoadSources(ctx, s.manifest, srcs...)
}

// Report is the analysed view of a dataset under a filter selection.
type Report struct {
	Selection filter.Selection   `json:"selection,omitempty"`
	KPIs      []analysis.KPI     `json:"kpis"`
	Sections  []analysis.Section `json:"sections"`
	Sources   []pipeline.Status  `json:"sources"`
}

// BuildReport filters ds by sel and computes KPIs and sections over the
// result. ds itself is not modified.
func BuildReport(ds *pipeline.Dataset, sel filter.Selection) Report {
	view := ds
	if !sel.IsEmpty() {
		view = ds.Filtered(sel)
	}
	return Report{
		Selection: sel,
		KPIs:      analysis.KPIs(view),
		Sections:  analysis.Sections(view),
		Sources:   ds.Statuses(),
	}
}

// Close flushes the logger and closes the history database.
func (s *Service) Close() error {
	if s.logger != nil {
		_ = s.logger.Sync()
	}
	if s.history != nil {
		return s.history.Close()
	}
	return nil
}

// History returns the history repository, opening the default one when
// the service was built without it.
func (s *Service) History() (history.Repository, error) {
	if s.history != nil {
		return s.history, nil
	}
	repo, err := history.Open()
	if err != nil {
		return nil, err
	}
	s.history = repo
	return repo, nil
}

// ParseSelection builds a selection from comma-separated flag values keyed
// by dimension. Blank entries are ignored.
func ParseSelection(values map[filter.Dimension][]string) filter.Selection {
	sel := make(filter.Selection)
	for dim, raw := range values {
		var vals []string
		for _, v := range raw {
			for _, part := range strings.Split(v, ",") {
				if part = strings.TrimSpace(part); part != "" {
					vals = append(vals, part)
				}
			}
		}
		if len(vals) > 0 {
			sel[dim] = vals
		}
	}
	return sel
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
