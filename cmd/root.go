package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AirplaneConcept/BatchOCR/pkg/config"
	"github.com/AirplaneConcept/BatchOCR/pkg/logger"
	"github.com/AirplaneConcept/BatchOCR/pkg/ocr"
	"github.com/AirplaneConcept/BatchOCR/pkg/pdftext"
	"github.com/AirplaneConcept/BatchOCR/pkg/pipeline"
	"github.com/AirplaneConcept/BatchOCR/pkg/report"
	"github.com/AirplaneConcept/BatchOCR/pkg/scan"
	"github.com/AirplaneConcept/BatchOCR/pkg/types"
)

var (
	rootDir       string
	execute       bool
	logPath       string
	lang          string
	renderer      string
	ocrJobs       int
	parallelFiles int
	samplePages   int
	pageMinChars  int
	minCoverage   float64
	deskew        bool
	deskewMode    string
	extraArgs     []string
	verbose       bool
)

// AppHandler wires configuration, collaborators and the scheduler for
// one run
type AppHandler struct {
	config *config.Config
	logger *logger.Logger
}

// NewAppHandler creates an application handler
func NewAppHandler() *AppHandler {
	return &AppHandler{}
}

// Run executes the full scan-and-convert pipeline. The returned error
// is a usage/configuration problem (process exit 2); per-file failures
// are aggregated and never fail the run.
func (h *AppHandler) Run(cmd *cobra.Command) error {
	if err := h.initialize(cmd); err != nil {
		return err
	}

	files, err := scan.Candidates(h.config.Root)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", h.config.Root, err)
	}

	runner := ocr.NewExecRunner(h.logger)
	converter := ocr.NewConverter(runner, h.config.OCRmyPDFPath, h.logger)
	if h.config.Execute && !converter.Available() {
		return fmt.Errorf("%s not found in PATH; install it or set OCRPIPE_OCRMYPDF_PATH", h.config.OCRmyPDFPath)
	}

	reporter, err := report.NewReporter(h.config.LogPath, h.logger)
	if err != nil {
		return err
	}
	defer reporter.Close()

	h.printBanner(len(files), reporter.RunID())

	task := pipeline.NewTask(h.config, pdftext.NewOpener(), converter, h.logger)
	scheduler := pipeline.NewScheduler(task, h.config.ParallelFiles)
	scheduler.Run(context.Background(), files, reporter.Consume)

	reporter.Summary(len(files), h.config.Execute, h.config.LogPath)
	return nil
}

// initialize validates the root argument and assembles the effective
// configuration from defaults, environment overrides and flags.
func (h *AppHandler) initialize(cmd *cobra.Command) error {
	if rootDir == "" {
		return fmt.Errorf("--root is required; add --execute only when you are satisfied with the dry-run")
	}
	if _, err := os.Stat(rootDir); err != nil {
		return fmt.Errorf("root not found: %s", rootDir)
	}

	h.config = config.LoadConfigWithEnvOverrides()
	h.applyFlagOverrides(cmd)

	if err := h.config.Validate(); err != nil {
		return err
	}

	h.logger = logger.NewLogger(h.config.LogLevel, h.config.EnableVerbose)
	return nil
}

// applyFlagOverrides copies explicitly set flags over the env-derived
// config, so precedence is flags > environment > defaults.
func (h *AppHandler) applyFlagOverrides(cmd *cobra.Command) {
	h.config.Root = rootDir
	h.config.Execute = execute
	h.config.LogPath = logPath
	h.config.Deskew = deskew
	h.config.ExtraArgs = extraArgs

	flags := cmd.Flags()
	if flags.Changed("lang") {
		h.config.Lang = lang
	}
	if flags.Changed("renderer") {
		h.config.Renderer = renderer
	}
	if flags.Changed("ocr-jobs") {
		h.config.OCRJobs = ocrJobs
	}
	if flags.Changed("parallel-files") {
		h.config.ParallelFiles = parallelFiles
	}
	if flags.Changed("sample-pages") {
		h.config.SamplePages = samplePages
	}
	if flags.Changed("page-min-chars") {
		h.config.PageMinChars = pageMinChars
	}
	if flags.Changed("min-coverage") {
		h.config.MinCoverage = minCoverage
	}
	if flags.Changed("deskew-mode") {
		h.config.DeskewMode = types.DeskewMode(deskewMode)
	}
	if verbose {
		h.config.EnableVerbose = true
	}
}

// printBanner shows the run parameters before processing starts
func (h *AppHandler) printBanner(candidates int, runID string) {
	mode := "DRY-RUN"
	if h.config.Execute {
		mode = "EXECUTE"
	}
	h.logger.ProgressAlways("Mode: %s", mode)
	h.logger.ProgressAlways("Root: %s", h.config.Root)
	h.logger.ProgressAlways("Run ID: %s", runID)
	h.logger.ProgressAlways("Found %d untagged PDFs", candidates)
	h.logger.ProgressAlways("Parallel files: %d | Per-file ocrmypdf --jobs: %d",
		h.config.ParallelFiles, h.config.OCRJobs)
	if h.config.Deskew {
		h.logger.ProgressAlways("Deskew: ON (%s)", h.config.DeskewMode)
	} else {
		h.logger.ProgressAlways("Deskew: OFF")
	}
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "batchocr",
	Short: "Safely OCR every image-only PDF under a directory tree",
	Long: `batchocr scans a directory tree for PDF files without a usable embedded
text layer and converts them into searchable PDFs by driving the
external ocrmypdf tool.

The swap protocol is strictly non-destructive: the OCR result is
written to a temp-tagged sibling first, the original is renamed to an
orig-tagged sibling only after the output is verified, and the temp is
then promoted to its final ocr-tagged name. No file is ever deleted or
overwritten, and tagged files are skipped on re-scans.

The default mode is a dry-run that only reports what would happen.

Examples:
  batchocr --root ~/books                               # dry-run report
  batchocr --root ~/books --execute --log run.jsonl     # convert, log JSONL
  batchocr --root ~/books --execute --deskew            # deskew on retry
  batchocr --root ~/books --min-coverage 0.5 --sample-pages 40
  batchocr --root ~/books --execute --extra --rotate-pages`,
	Run: func(cmd *cobra.Command, args []string) {
		handler := NewAppHandler()
		if err := handler.Run(cmd); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			os.Exit(2)
		}
	},
}

// NewRootCmd returns the root command
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&rootDir, "root", "", "Root folder to scan recursively for PDFs (required)")
	flags.BoolVar(&execute, "execute", false, "Actually make changes. Otherwise DRY-RUN")
	flags.StringVar(&logPath, "log", "", "Optional path to append a JSON Lines log")

	flags.StringVar(&lang, "lang", "eng", "OCR language passed to ocrmypdf -l")
	flags.StringVar(&renderer, "renderer", "sandwich", "ocrmypdf --pdf-renderer engine")
	flags.IntVar(&ocrJobs, "ocr-jobs", 2, "Per-file ocrmypdf --jobs")
	flags.IntVar(&parallelFiles, "parallel-files", 4, "Number of PDFs processed concurrently")

	flags.IntVar(&samplePages, "sample-pages", 20, "Number of pages sampled for text detection")
	flags.IntVar(&pageMinChars, "page-min-chars", 150, "Minimum characters for a page to count as texty")
	flags.Float64Var(&minCoverage, "min-coverage", 0.30, "Minimum texty-page fraction to skip OCR")

	flags.BoolVar(&deskew, "deskew", false, "Enable deskew per the chosen mode")
	flags.StringVar(&deskewMode, "deskew-mode", "retry",
		"If --deskew is set: deskew only on retry (default) or always")

	flags.StringArrayVar(&extraArgs, "extra", nil, "Extra arg passed through to ocrmypdf, repeatable (advanced)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}
