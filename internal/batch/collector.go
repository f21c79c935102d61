package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/invoice-extract/constants"
	"github.com/joseph-ayodele/invoice-extract/internal/common"
	"github.com/joseph-ayodele/invoice-extract/internal/entity"
)

// FileProcessor extracts the line items of a single invoice file.
type FileProcessor interface {
	ProcessFile(ctx context.Context, path string) ([]entity.LineItem, error)
}

// Outcome is the result of one document in a run.
type Outcome struct {
	Path    string
	Status  constants.DocumentStatus
	Records int
	Err     error
}

// Summary counts document outcomes and records of one run.
type Summary struct {
	RunID     string
	Documents int
	Processed int
	Empty     int
	Failed    int
	Records   int
	Outcomes  []Outcome
}

// Collector runs the processor over a list of files and merges the records
// in file order, regardless of the order documents finish in.
type Collector struct {
	proc    FileProcessor
	logger  *slog.Logger
	workers int
	timeout time.Duration
}

// Option configures a Collector.
type Option func(*Collector)

// WithWorkers bounds how many documents are processed at once. n < 1 is ignored.
func WithWorkers(n int) Option {
	return func(c *Collector) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithDocumentTimeout limits the time spent on one document. d <= 0 is ignored.
func WithDocumentTimeout(d time.Duration) Option {
	return func(c *Collector) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewCollector returns a sequential collector with a two-minute document
// timeout unless opts say otherwise.
func NewCollector(proc FileProcessor, logger *slog.Logger, opts ...Option) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Collector{
		proc:    proc,
		logger:  logger,
		workers: 1,
		timeout: 2 * time.Minute,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Run processes paths and returns all records. A failing document is logged
// and contributes nothing; only cancellation of ctx fails the run.
func (c *Collector) Run(ctx context.Context, paths []string) ([]entity.LineItem, Summary, error) {
	runID := uuid.NewString()
	ctx = common.WithRunID(ctx, runID)
	start := time.Now()

	slots := make([][]entity.LineItem, len(paths))
	outcomes := make([]Outcome, len(paths))

	g := new(errgroup.Group)
	g.SetLimit(c.workers)
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			items, err := c.processOne(ctx, path)
			outcomes[i] = Outcome{Path: path, Records: len(items), Err: err}
			switch {
			case err != nil:
				outcomes[i].Status = constants.DocumentStatusFailed
				c.logger.Error("batch.document.failed", "run_id", runID, "path", path, "error", err)
			case len(items) == 0:
				outcomes[i].Status = constants.DocumentStatusEmpty
				c.logger.Warn("batch.document.empty", "run_id", runID, "path", path)
			default:
				outcomes[i].Status = constants.DocumentStatusProcessed
				slots[i] = items
			}
			return nil
		})
	}
	_ = g.Wait()

	summary := Summary{RunID: runID, Documents: len(paths), Outcomes: outcomes}
	var records []entity.LineItem
	for i, o := range outcomes {
		switch o.Status {
		case constants.DocumentStatusProcessed:
			summary.Processed++
		case constants.DocumentStatusEmpty:
			summary.Empty++
		case constants.DocumentStatusFailed:
			summary.Failed++
		}
		records = append(records, slots[i]...)
	}
	summary.Records = len(records)

	if err := ctx.Err(); err != nil {
		return records, summary, fmt.Errorf("batch run %s: %w", runID, err)
	}

	c.logger.Info("batch.run.ok",
		"run_id", runID,
		"documents", summary.Documents,
		"processed", summary.Processed,
		"empty", summary.Empty,
		"failed", summary.Failed,
		"records", summary.Records,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return records, summary, nil
}

func (c *Collector) processOne(ctx context.Context, path string) (items []entity.LineItem, err error) {
	defer func() {
		if r := recover(); r != nil {
			items, err = nil, fmt.Errorf("panic processing %s: %v", path, r)
		}
	}()
	ctx, cancel := common.WithTimeout(common.WithDocument(ctx, path), c.timeout)
	defer cancel()
	return c.proc.ProcessFile(ctx, path)
}
