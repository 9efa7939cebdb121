package intake

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"luft/internal/config"
	"luft/internal/inference"
	"luft/internal/logging"
	"luft/internal/profile"
	"luft/internal/rows"
	"luft/internal/services"
	"luft/internal/validate"
)

// Options tunes a single intake run.
type Options struct {
	// MaxRows caps how many data rows are read; zero reads everything.
	MaxRows int
}

// Result is everything one intake run produces. Re-running the pipeline on
// the same file and config yields an identical result apart from RunID and
// the two timestamps.
type Result struct {
	RunID      string
	Source     string
	FileHash   string
	StartedAt  time.Time
	FinishedAt time.Time

	Table     *rows.Table
	Types     map[string]inference.Descriptor
	Profile   profile.Profile
	Verdict   validate.Verdict
	RowErrors []string
	Warnings  []string
}

// Pipeline runs the intake sequence over CSV files: read, infer column
// types, profile, validate.
type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewPipeline wires an intake pipeline against a loaded configuration.
func NewPipeline(cfg *config.Config, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "intake"),
	}
}

// Run ingests one CSV file and returns the profiling result and verdict.
// A failing verdict is a normal result, not an error; errors are reserved
// for unreadable or structurally broken input.
func (p *Pipeline) Run(ctx context.Context, path string, opts Options) (*Result, error) {
	result := &Result{
		RunID:     uuid.New().String(),
		Source:    path,
		StartedAt: time.Now().UTC(),
	}
	ctx = services.WithRunID(ctx, result.RunID)
	logger := p.logger.With(logging.String(logging.FieldRunID, result.RunID))

	hash, err := FileHash(path)
	if err != nil {
		return nil, err
	}
	result.FileHash = hash

	read, err := rows.ReadCSV(path, rows.ReadCSVOptions{MaxRows: opts.MaxRows})
	if err != nil {
		return nil, err
	}
	result.Table = read.Table
	result.RowErrors = read.Errors
	result.Warnings = append(result.Warnings, read.Warnings...)
	logger.InfoContext(ctx, "csv loaded",
		logging.String(logging.FieldDataset, path),
		logging.Int("rows", read.Table.RowCount()),
		logging.Int("columns", read.Table.ColumnCount()),
		logging.Int("row_errors", len(read.Errors)))

	types, warnings := inference.Infer(read.Table)
	result.Types = types
	result.Warnings = append(result.Warnings, warnings...)

	result.Profile = profile.Build(read.Table, types)
	logger.InfoContext(ctx, "profiling complete",
		logging.Float64("quality_score", result.Profile.QualityScore()),
		logging.Int("total_missing", result.Profile.TotalMissing()))

	result.Verdict = validate.Run(read.Table, result.Profile, p.cfg)
	result.FinishedAt = time.Now().UTC()

	if result.Verdict.Passed {
		logger.InfoContext(ctx, "validation passed",
			logging.Int("warnings", len(result.Verdict.Warnings())))
	} else {
		logger.WarnContext(ctx, "validation failed",
			logging.Int("errors", len(result.Verdict.Errors())),
			logging.Int("warnings", len(result.Verdict.Warnings())))
	}
	return result, nil
}

// Duration reports the wall-clock time of the run.
func (r *Result) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
