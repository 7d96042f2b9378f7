package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/arloliu/endfx"
	"github.com/arloliu/endfx/export"
	"github.com/arloliu/endfx/format"
	"github.com/arloliu/endfx/internal/options"
	"github.com/arloliu/endfx/spectrum"
)

// Result is the outcome of converting one file.
type Result struct {
	Path        string
	Material    string
	Fingerprint string
	Artifacts   []export.Artifact
	// Skipped is set when the manifest showed the material unchanged since the
	// last export.
	Skipped  bool
	Duration time.Duration
	Err      error
}

// Summary collects the results of one Run.
type Summary struct {
	RunID   string
	Results []Result
}

// Failed returns the results that carry an error.
func (s *Summary) Failed() []Result {
	var failed []Result
	for _, r := range s.Results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}

	return failed
}

// Count returns the number of exported, skipped and failed files.
func (s *Summary) Count() (exported, skipped, failed int) {
	for _, r := range s.Results {
		switch {
		case r.Err != nil:
			failed++
		case r.Skipped:
			skipped++
		default:
			exported++
		}
	}

	return exported, skipped, failed
}

// Err joins the errors of all failed files, or returns nil.
func (s *Summary) Err() error {
	var errs []error
	for _, r := range s.Failed() {
		errs = append(errs, r.Err)
	}

	return errors.Join(errs...)
}

// Processor converts ENDF-6 files into bundles under a fixed output root.
//
// A Processor is safe for concurrent use; concurrent runs share the manifest.
type Processor struct {
	root     string
	cfg      *config
	manifest *Manifest
}

// New creates a Processor writing under root and loads its manifest.
func New(root string, opts ...Option) (*Processor, error) {
	cfg := &config{
		logger:      zap.NewNop(),
		workers:     1,
		patterns:    slices.Clone(DefaultPatterns),
		channels:    spectrum.DefaultChannels(),
		compression: format.CompressionNone,
		debounce:    defaultDebounce,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if len(cfg.channels) == 0 {
		return nil, errors.New("batch: at least one channel is required")
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create output root: %w", err)
	}
	manifest, err := LoadManifest(root)
	if err != nil {
		return nil, err
	}

	return &Processor{root: root, cfg: cfg, manifest: manifest}, nil
}

// Manifest returns the processor's manifest.
func (p *Processor) Manifest() *Manifest {
	return p.manifest
}

// Discover lists the files directly inside dir whose names match any of the
// configured patterns, sorted by path.
func (p *Processor) Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !p.matches(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}

	return files, nil
}

func (p *Processor) matches(name string) bool {
	for _, pattern := range p.cfg.patterns {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}

	return false
}

// RunDir discovers the input files of dir and runs them.
func (p *Processor) RunDir(ctx context.Context, dir string) (*Summary, error) {
	files, err := p.Discover(dir)
	if err != nil {
		return nil, err
	}

	return p.Run(ctx, files)
}

// Run converts files with the configured number of workers.
//
// Per-file failures are reported in the Summary and do not stop other files. The
// returned error is non-nil only if ctx is cancelled or the manifest cannot be
// saved; the Summary is still returned in that case with the results gathered so
// far.
func (p *Processor) Run(ctx context.Context, files []string) (*Summary, error) {
	runID := uuid.NewString()
	logger := p.cfg.logger.With(zap.String("run_id", runID))
	logger.Info("batch started", zap.Int("files", len(files)), zap.Int("workers", p.cfg.workers))

	start := time.Now()
	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.workers)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = Result{Path: path, Err: err}
				return err
			}
			results[i] = p.process(gctx, runID, logger, path)

			return nil
		})
	}
	runErr := g.Wait()

	summary := &Summary{RunID: runID, Results: results}
	if err := p.manifest.Save(); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("save manifest: %w", err))
	}

	exported, skipped, failed := summary.Count()
	logger.Info("batch finished",
		zap.Int("exported", exported),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed),
		zap.Duration("elapsed", time.Since(start)))

	return summary, runErr
}

// Process converts a single file outside of a Run and persists the manifest.
func (p *Processor) Process(ctx context.Context, path string) Result {
	runID := uuid.NewString()
	r := p.process(ctx, runID, p.cfg.logger.With(zap.String("run_id", runID)), path)
	if r.Err == nil && !r.Skipped {
		if err := p.manifest.Save(); err != nil {
			p.cfg.logger.Warn("saving manifest failed", zap.Error(err))
		}
	}

	return r
}

func (p *Processor) process(ctx context.Context, runID string, logger *zap.Logger, path string) Result {
	start := time.Now()
	r := p.convert(ctx, runID, path)
	r.Duration = time.Since(start)

	switch {
	case r.Err != nil:
		logger.Warn("file failed", zap.String("file", path), zap.Error(r.Err))
	case r.Skipped:
		logger.Debug("file unchanged", zap.String("file", path), zap.String("material", r.Material))
	default:
		logger.Info("file exported",
			zap.String("file", path),
			zap.String("material", r.Material),
			zap.Int("artifacts", len(r.Artifacts)),
			zap.Duration("elapsed", r.Duration))
	}

	if p.cfg.onResult != nil {
		p.cfg.onResult(r)
	}

	return r
}

func (p *Processor) convert(ctx context.Context, runID, path string) Result {
	r := Result{Path: path}

	m, err := endfx.ParseFile(path, endfx.WithLogger(p.cfg.logger))
	if err != nil {
		r.Err = err
		return r
	}
	r.Material = m.Name()
	r.Fingerprint = fingerprint(m, p.cfg)

	if !p.cfg.force {
		if prev, ok := p.manifest.Lookup(path); ok && prev.upToDate(r.Fingerprint) {
			r.Skipped = true
			return r
		}
	}

	report, err := endfx.Export(ctx, m, p.root, p.cfg.exportOptions()...)
	if err != nil {
		r.Err = err
		return r
	}
	r.Artifacts = report.Artifacts

	paths := make([]string, 0, len(report.Artifacts))
	for _, a := range report.Artifacts {
		paths = append(paths, a.Path)
	}
	p.manifest.Record(Entry{
		Source:      path,
		Material:    m.Name(),
		Fingerprint: r.Fingerprint,
		Artifacts:   paths,
		RunID:       runID,
		UpdatedAt:   time.Now().UTC(),
	})

	return r
}
