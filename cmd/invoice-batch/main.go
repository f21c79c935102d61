package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/invoice-extract/constants"
	"github.com/joseph-ayodele/invoice-extract/internal/batch"
	"github.com/joseph-ayodele/invoice-extract/internal/common"
	"github.com/joseph-ayodele/invoice-extract/internal/core"
	"github.com/joseph-ayodele/invoice-extract/internal/export"
	"github.com/joseph-ayodele/invoice-extract/internal/ingest"
	"github.com/joseph-ayodele/invoice-extract/internal/logging"
	"github.com/joseph-ayodele/invoice-extract/internal/pdftext"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

var rootCmd = &cobra.Command{
	Use:   "invoice-batch [pdf-dir] [output.xlsx]",
	Short: "Extract line items from 01GTKT VAT invoice PDFs into one workbook",
	Long: `Reads every PDF in pdf-dir, extracts the invoice header fields and the
goods/services table of each document, and writes all line items to a
single XLSX workbook.

Defaults: pdf-dir = ` + constants.DefaultInputDir + `, output = ` + constants.DefaultOutputFile + `

Examples:
  invoice-batch
  invoice-batch ./hoadon
  invoice-batch ./hoadon ./Ket_qua.xlsx`,
	Args:         cobra.RangeArgs(0, 2),
	SilenceUsage: true,
	RunE:         runBatch,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveArgs applies the default input directory and output file.
func resolveArgs(args []string) (dir, out string) {
	dir, out = constants.DefaultInputDir, constants.DefaultOutputFile
	if len(args) > 0 && args[0] != "" {
		dir = args[0]
	}
	if len(args) > 1 && args[1] != "" {
		out = args[1]
	}
	return dir, out
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir, out := resolveArgs(args)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	paths, walkErrs, stats, err := ingest.ListDirectory(dir, ingest.Options{
		Recursive:  cfg.Batch.Recursive,
		SkipHidden: cfg.Batch.SkipHidden,
	})
	if err != nil {
		return fmt.Errorf("list %s: %w", dir, err)
	}
	for _, r := range walkErrs {
		logger.Warn("ingest.entry.failed", "path", r.Path, "error", r.Err)
	}
	logger.Info("ingest.directory.ok",
		"dir", dir,
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"failed", stats.Failed,
	)

	collector := batch.NewCollector(newProcessor(cfg, logger), logger,
		batch.WithWorkers(cfg.Batch.Workers),
		batch.WithDocumentTimeout(cfg.Batch.DocTimeout),
	)
	items, summary, err := collector.Run(ctx, paths)
	if err != nil {
		return err
	}

	written, err := export.NewService(cfg.Export.Sheet, logger).WriteFile(items, out)
	if err != nil {
		return err
	}

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Files found: %d\n", summary.Documents)
	fmt.Printf("- Files processed: %d\n", summary.Processed+summary.Empty)
	fmt.Printf("- Failures: %d\n", summary.Failed)
	fmt.Printf("- Line items: %d\n", summary.Records)
	fmt.Printf("- Output: %s\n", written)
	return nil
}

func newProcessor(cfg *common.Config, logger *slog.Logger) *core.Processor {
	layout := pdftext.DefaultLayout()
	layout.MinColumns = cfg.PDF.MinColumns
	opener := pdftext.NewLedongthucOpener(layout, cfg.PDF.Preflight, logger)

	var fallback pdftext.TextSource
	if cfg.PDF.TextFallbackEnabled() {
		fallback = pdftext.NewCommandText(cfg.PDF.Pdftotext, logger)
	}
	return core.NewProcessor(logger, opener, fallback)
}
