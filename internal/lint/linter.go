package lint

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rancher-sandbox/i18n-lint/internal/catalog"
	"github.com/rancher-sandbox/i18n-lint/internal/logger"
	"github.com/rancher-sandbox/i18n-lint/internal/rules"
	"github.com/rancher-sandbox/i18n-lint/internal/usage"
	"github.com/rancher-sandbox/i18n-lint/internal/worker"
)

// Linter checks a fixed set of view files against a fixed set of locale
// documents. All input is read before construction; a Linter performs no
// I/O and may be run any number of times.
type Linter struct {
	views       []usage.File
	locales     []catalog.Source
	cfg         rules.Config
	extractor   *usage.Extractor
	classifier  *classifier
	log         logger.Logger
	concurrency int
}

// Option configures a Linter.
type Option func(*Linter)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logger.Logger) Option {
	return func(li *Linter) { li.log = l }
}

// WithConcurrency bounds the number of files processed at once.
func WithConcurrency(n int) Option {
	return func(li *Linter) { li.concurrency = n }
}

// New validates cfg and compiles the usage patterns. It returns a
// *rules.ValidationError for a bad config and a *usage.PatternError for a
// bad custom pattern.
func New(views []usage.File, locales []catalog.Source, cfg rules.Config, opts ...Option) (*Linter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	extractor, err := usage.NewExtractor(cfg.CustomPatterns)
	if err != nil {
		return nil, err
	}
	ignored, err := newKeyMatcher("ignoredKeys", cfg.IgnoredKeys)
	if err != nil {
		return nil, err
	}
	ignoredMisprint, err := newKeyMatcher("ignoredMisprintKeys", cfg.IgnoredMisprintKeys)
	if err != nil {
		return nil, err
	}

	l := &Linter{
		views:     views,
		locales:   locales,
		cfg:       cfg,
		extractor: extractor,
		classifier: &classifier{
			cfg:             cfg,
			ignored:         ignored,
			ignoredMisprint: ignoredMisprint,
		},
		log: logger.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

type runOptions struct {
	maxWarning *int
}

// RunOption adjusts a single Lint call.
type RunOption func(*runOptions)

// WithMaxWarning overrides the configured warning budget for one call.
func WithMaxWarning(n int) RunOption {
	return func(o *runOptions) { o.maxWarning = &n }
}

// Lint scans every locale and view file and classifies the discrepancies.
// A negative budget override or a parse error in any locale document aborts
// the run. Discrepancies are
// data: a completed run always returns a Result.
func (l *Linter) Lint(ctx context.Context, opts ...RunOption) (*Result, error) {
	var ro runOptions
	for _, opt := range opts {
		opt(&ro)
	}
	maxWarning := l.cfg.MaxWarning
	if ro.maxWarning != nil {
		if *ro.maxWarning < 0 {
			return nil, &rules.ValidationError{Field: "maxWarning", Value: *ro.maxWarning, Reason: "must not be negative"}
		}
		maxWarning = *ro.maxWarning
	}

	cat, usages, err := l.scan(ctx)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	discrepancies := l.classifier.classify(cat, usages)
	l.log.Debug("classified", "discrepancies", len(discrepancies), "took", time.Since(started))

	return NewResult(discrepancies, maxWarning, Stats{
		Views:     len(l.views),
		Languages: len(cat.Languages()),
		Keys:      cat.Len(),
		Usages:    len(usages),
	}), nil
}

// Languages returns a summary of every locale file.
func (l *Linter) Languages(ctx context.Context) ([]catalog.Language, error) {
	cat, err := l.catalog(ctx)
	if err != nil {
		return nil, err
	}
	return cat.Languages(), nil
}

// Keys returns every catalog key with the locale files that define it and
// those that lack it.
func (l *Linter) Keys(ctx context.Context) ([]catalog.Presence, error) {
	cat, err := l.catalog(ctx)
	if err != nil {
		return nil, err
	}
	return cat.Presence(), nil
}

// Usages returns every distinct key literal found in the views.
func (l *Linter) Usages(ctx context.Context) ([]*usage.Usage, error) {
	pool, err := l.pool()
	if err != nil {
		return nil, err
	}
	defer pool.Release(time.Second)
	return l.extractUsages(ctx, pool)
}

func (l *Linter) catalog(ctx context.Context) (*catalog.Catalog, error) {
	pool, err := l.pool()
	if err != nil {
		return nil, err
	}
	defer pool.Release(time.Second)
	return l.loadCatalog(ctx, pool)
}

func (l *Linter) pool() (*worker.Pool, error) {
	return worker.New("lint", l.concurrency, l.log)
}

// scan runs the locale and view passes side by side and waits for both.
func (l *Linter) scan(ctx context.Context) (*catalog.Catalog, []*usage.Usage, error) {
	pool, err := l.pool()
	if err != nil {
		return nil, nil, err
	}
	defer pool.Release(time.Second)
	l.log.Debug("scanning", "locales", len(l.locales), "views", len(l.views), "workers", pool.Cap())

	var (
		cat    *catalog.Catalog
		usages []*usage.Usage
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cat, err = l.loadCatalog(gctx, pool)
		return err
	})
	g.Go(func() error {
		var err error
		usages, err = l.extractUsages(gctx, pool)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return cat, usages, nil
}

func (l *Linter) loadCatalog(ctx context.Context, pool *worker.Pool) (*catalog.Catalog, error) {
	flattened := make([]catalog.Flattened, len(l.locales))
	err := pool.Each(ctx, len(l.locales), func(_ context.Context, i int) error {
		src := l.locales[i]
		entries, err := catalog.Flatten(src)
		if err != nil {
			return err
		}
		flattened[i] = catalog.Flattened{ID: src.ID, Origin: src.Origin, Entries: entries}
		return nil
	})
	if err != nil {
		l.log.Error("catalog load failed", "error", err)
		return nil, err
	}
	cat := catalog.Merge(flattened)
	l.log.Debug("catalog loaded", "languages", len(cat.Languages()), "keys", cat.Len())
	return cat, nil
}

func (l *Linter) extractUsages(ctx context.Context, pool *worker.Pool) ([]*usage.Usage, error) {
	matches := make([][]usage.Match, len(l.views))
	err := pool.Each(ctx, len(l.views), func(_ context.Context, i int) error {
		matches[i] = l.extractor.Extract(l.views[i])
		return nil
	})
	if err != nil {
		return nil, err
	}
	var all []usage.Match
	for _, m := range matches {
		all = append(all, m...)
	}
	usages := usage.Collect(all)
	l.log.Debug("views scanned", "files", len(l.views), "usages", len(usages))
	return usages, nil
}
