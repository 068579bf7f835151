// Package preprocess implements the multi-stage cleaning pipeline that
// turns raw, heterogeneous review records into a normalized, validated
// table for downstream sentiment analysis.
//
// The pipeline runs six ordered stages over a working table it owns
// exclusively: audit missing values, repair missing values, normalize
// dates, sanitize text, validate ratings, assemble the final projection.
// Each stage may drop rows or add columns; removed rows are counted, never
// resurrected. Row-level problems are recovered locally; only the load and
// save steps can fail the run.
package preprocess

import (
	"fmt"

	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/config"
	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/dataset"
	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/logger"
)

// Stats accumulates row counts across the pipeline stages. It is mutated
// additively by each stage and read-only after Run returns.
type Stats struct {
	MissingBefore          map[string]int
	OriginalCount          int
	RowsRemovedMissing     int
	UnparsableDatesRemoved int
	EmptyReviewsRemoved    int
	RatingCoercionFailures int
	InvalidRatingsRemoved  int
	UnknownBanksRemoved    int
	FinalCount             int
}

// RetentionRate returns the fraction of input rows that survived, in
// [0, 1]. An empty input yields 0.
func (s *Stats) RetentionRate() float64 {
	if s.OriginalCount == 0 {
		return 0
	}

	return float64(s.FinalCount) / float64(s.OriginalCount)
}

// Pipeline owns the working table for one batch run.
type Pipeline struct {
	cfg        *config.Config
	log        *logger.Logger
	ds         *dataset.Dataset
	inputPath  string
	outputPath string
	stats      Stats
}

// New creates a pipeline using the configured input/output paths.
func New(cfg *config.Config, log *logger.Logger) *Pipeline {
	return NewWithPaths(cfg, cfg.RawReviewsPath(), cfg.ProcessedReviewsPath(), log)
}

// NewWithPaths creates a pipeline with explicit input/output paths.
func NewWithPaths(cfg *config.Config, inputPath, outputPath string, log *logger.Logger) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		log:        log,
		inputPath:  inputPath,
		outputPath: outputPath,
	}
}

// Run executes the full pipeline: load, six cleaning stages, save, report.
// It returns the final table and statistics. A load or save failure aborts
// the run; row-level problems never do.
func (p *Pipeline) Run() (*dataset.Dataset, *Stats, error) {
	if err := p.load(); err != nil {
		return nil, nil, err
	}

	p.auditMissing()
	p.repairMissing()
	p.normalizeDates()
	p.sanitizeText()
	p.validateRatings()
	p.assemble()

	if err := p.save(); err != nil {
		return nil, &p.stats, err
	}

	p.report()

	return p.ds, &p.stats, nil
}

// Stats returns the statistics accumulated so far.
func (p *Pipeline) Stats() *Stats {
	return &p.stats
}

func (p *Pipeline) load() error {
	p.log.Info("Loading raw data...")

	ds, err := dataset.ReadCSV(p.inputPath)
	if err != nil {
		return fmt.Errorf("failed to load raw reviews: %w", err)
	}

	p.ds = ds
	p.stats.OriginalCount = ds.Len()
	p.log.Info(fmt.Sprintf("Loaded %d reviews from %s", ds.Len(), p.inputPath))

	return nil
}

func (p *Pipeline) save() error {
	p.log.Info("Saving processed data...")

	if err := p.ds.WriteCSV(p.outputPath); err != nil {
		return fmt.Errorf("failed to save processed reviews: %w", err)
	}

	p.log.Info(fmt.Sprintf("Data saved to: %s", p.outputPath))

	return nil
}
