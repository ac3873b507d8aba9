// Package pipeline loads every source export, cleans it, and assembles the
// cleaned tables into a Dataset. A source that cannot be loaded becomes an
// empty table; loading never fails as a whole.
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"nathanbeddoewebdev/sapmon/internal/cache"
	"nathanbeddoewebdev/sapmon/internal/history"
	"nathanbeddoewebdev/sapmon/internal/loader"
	"nathanbeddoewebdev/sapmon/internal/sources"
	"nathanbeddoewebdev/sapmon/internal/table"
)

// Pipeline loads and cleans source exports.
type Pipeline struct {
	logger  *zap.Logger
	cache   *cache.Cache
	history history.Repository
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithCache sets the cleaned-table cache. Nil disables caching.
func WithCache(c *cache.Cache) Option {
	return func(p *Pipeline) { p.cache = c }
}

// WithHistory records every load outcome in repo. Recording failures are
// logged and otherwise ignored.
func WithHistory(repo history.Repository) Option {
	return func(p *Pipeline) { p.history = repo }
}

// New returns a pipeline with a fresh in-memory cache.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{logger: zap.NewNop(), cache: cache.New()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type cleaned struct {
	table  *table.Table
	report sources.Report
}

// Load loads every source in m concurrently.
func (p *Pipeline) Load(ctx context.Context, m Manifest) *Dataset {
	return p.LoadSources(ctx, m, sources.All()...)
}

// LoadSources loads the given sources concurrently. Sources share no state,
// so each runs in its own goroutine; none of them can fail the group.
func (p *Pipeline) LoadSources(ctx context.Context, m Manifest, srcs ...sources.Source) *Dataset {
	ds := newDataset(srcs)
	results := make([]Status, len(srcs))
	tables := make([]*table.Table, len(srcs))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range srcs {
		g.Go(func() error {
			tables[i], results[i] = p.loadOne(gctx, src, m.Path(src))
			return nil
		})
	}
	_ = g.Wait()

	for i, src := range srcs {
		ds.tables[src] = tables[i]
		ds.status[src] = results[i]
	}

	p.record(ctx, results)
	return ds
}

func (p *Pipeline) loadOne(ctx context.Context, src sources.Source, path string) (*table.Table, Status) {
	start := time.Now()
	st := Status{Source: src, Path: path}
	log := p.logger.With(zap.String("source", src.String()), zap.String("path", path))

	unavailable := func(err error) (*table.Table, Status) {
		st.Detail = err.Error()
		st.Duration = time.Since(start)
		log.Warn("source unavailable", zap.Error(err))
		return table.Empty(), st
	}

	if err := ctx.Err(); err != nil {
		return unavailable(err)
	}

	f, err := loader.Open(path)
	if err != nil {
		return unavailable(err)
	}
	st.Fingerprint = f.Fingerprint

	key := cache.Key{Source: src.String(), Path: path, Fingerprint: f.Fingerprint}
	res, hit, err := cache.GetOrLoad(p.cache, key, func() (cleaned, error) {
		raw, err := f.Table()
		if err != nil {
			return cleaned{}, err
		}
		t, rep := sources.Clean(src, raw)
		return cleaned{table: t, report: rep}, nil
	})
	if err != nil {
		return unavailable(err)
	}

	st.Available = true
	st.Cached = hit
	st.Report = res.report
	st.Duration = time.Since(start)

	if !hit {
		if len(res.report.MissingMandatory) > 0 {
			log.Warn("mandatory columns absent, rows not checked against them",
				zap.Strings("columns", res.report.MissingMandatory))
		}
		if len(res.report.MissingColumns) > 0 {
			log.Debug("declared columns absent, cleaning skipped",
				zap.Strings("columns", res.report.MissingColumns))
		}
		if res.report.Dropped() > 0 {
			log.Info("dropped rows",
				zap.Int("missing_value", res.report.DroppedMissing),
				zap.Int("invalid_timestamp", res.report.DroppedTimestamp))
		}
	}
	log.Debug("source loaded",
		zap.Bool("cached", hit),
		zap.Int("rows", res.table.Len()),
		zap.Duration("duration", st.Duration))

	return res.table, st
}

// record saves one history entry per status. Entries are written after the
// group finishes so the database sees a single writer.
func (p *Pipeline) record(ctx context.Context, statuses []Status) {
	if p.history == nil {
		return
	}
	run, _ := history.RunFromContext(ctx)
	for _, st := range statuses {
		entry := &history.Entry{
			RunID:       run.ID,
			Command:     run.Command,
			Source:      st.Source.String(),
			Path:        st.Path,
			Fingerprint: st.Fingerprint,
			RowsIn:      st.Report.RowsIn,
			RowsOut:     st.Report.RowsOut,
			Outcome:     st.Outcome(),
			Detail:      st.Detail,
			DurationMs:  st.Duration.Milliseconds(),
		}
		if err := p.history.Save(entry); err != nil {
			p.logger.Warn("failed to record load history",
				zap.String("source", st.Source.String()), zap.Error(err))
		}
	}
}

// Outcome names how the source was obtained, using the history vocabulary.
func (st Status) Outcome() string {
	switch {
	case !st.Available:
		return history.OutcomeUnavailable
	case st.Cached:
		return history.OutcomeCached
	default:
		return history.OutcomeLoaded
	}
}
