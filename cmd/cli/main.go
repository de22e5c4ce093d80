package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/limaJavier/coursegrid/pkg/config"
	"github.com/limaJavier/coursegrid/pkg/csvio"
	"github.com/limaJavier/coursegrid/pkg/export"
	"github.com/limaJavier/coursegrid/pkg/logger"
	"github.com/limaJavier/coursegrid/pkg/model"
	"github.com/limaJavier/coursegrid/pkg/pipeline"
)

// Exit codes: every occurrence placed and verified, verification failed, some occurrences left unplaced
const (
	exitComplete   = 10
	exitUnverified = 15
	exitIncomplete = 20
)

var validFormats = []string{"csv", "pdf", "all"}

type options struct {
	file           string
	dir            string
	out            string
	format         string
	strategy       string
	seed           uint64
	electives      bool
	electivesOnly  bool
	simulateDemand bool
}

func main() {
	exitCode := exitComplete
	opts := &options{}

	root := &cobra.Command{
		Use:           "coursegrid",
		Short:         "Build weekly course and elective timetables",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			code, err := run(cmd, opts)
			exitCode = code
			return err
		},
	}

	flags := root.Flags()
	flags.StringVar(&opts.file, "file", "", "Path to a JSON input file")
	flags.StringVar(&opts.dir, "dir", "", "Path to a directory of CSV exports (roadmaps, capacities, cohort sheets, rooms, electives, demand)")
	flags.StringVar(&opts.out, "out", "", "Directory where the outputs are written; defaults to OUTPUT_DIR")
	flags.StringVar(&opts.format, "format", "csv", `Output format: "csv", "pdf" or "all"`)
	flags.StringVar(&opts.strategy, "strategy", "", `Placement strategy: "random" (bounded probing) or "exhaustive"; defaults to STRATEGY`)
	flags.Uint64Var(&opts.seed, "seed", 0, "Random seed; defaults to SEED")
	flags.BoolVar(&opts.electives, "electives", false, "Also build the elective timetable")
	flags.BoolVar(&opts.electivesOnly, "electives-only", false, "Build only the elective timetable")
	flags.BoolVar(&opts.simulateDemand, "simulate-demand", false, "Simulate student preferences when the input carries no elective demand")
	root.MarkFlagsMutuallyExclusive("file", "dir")
	root.MarkFlagsOneRequired("file", "dir")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}

func run(cmd *cobra.Command, opts *options) (int, error) {
	opts.format = strings.ToLower(opts.format)
	if !slices.Contains(validFormats, opts.format) {
		return 0, fmt.Errorf("%v is not a valid format", opts.format)
	}

	//** Configuration
	cfg, err := config.Load()
	if err != nil {
		return 0, fmt.Errorf("cannot load configuration: %w", err)
	}
	if cmd.Flags().Changed("strategy") {
		cfg.Scheduler.Strategy = strings.ToLower(opts.strategy)
	}
	if cmd.Flags().Changed("seed") {
		cfg.Scheduler.Seed = opts.seed
	}
	if opts.out == "" {
		opts.out = cfg.OutputDir
	}
	params, err := cfg.Parameters()
	if err != nil {
		return 0, err
	}

	log, err := logger.New(cfg)
	if err != nil {
		return 0, fmt.Errorf("cannot build logger: %w", err)
	}
	defer log.Sync()

	//** Input
	var input model.ModelInput
	if opts.file != "" {
		input, err = model.InputFromJson(opts.file, params.StudentsPerSection)
	} else {
		input, err = csvio.InputFromDirectory(opts.dir, params.StudentsPerSection)
	}
	if err != nil {
		return 0, fmt.Errorf("cannot parse input: %w", err)
	}
	log.Info("input loaded",
		zap.Int("batches", len(input.Batches)),
		zap.Int("courses", len(input.Courses)),
		zap.Int("cohort", len(input.Cohort)),
		zap.Int("electives", len(input.Electives)),
		zap.Any("skipped", input.Skipped),
	)

	//** Build
	engines := []model.Engine{model.CoreEngine}
	if opts.electivesOnly {
		engines = []model.Engine{model.ElectiveEngine}
	} else if opts.electives {
		engines = append(engines, model.ElectiveEngine)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	result, err := pipeline.Execute(ctx, pipeline.Request{
		Input:          input,
		Parameters:     params,
		Engines:        engines,
		SimulateDemand: opts.simulateDemand,
	}, log)
	if err != nil {
		return 0, fmt.Errorf("an error occurred during timetable construction: %w", err)
	}

	//** Output
	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		return 0, fmt.Errorf("cannot create output directory: %w", err)
	}
	for _, engineResult := range result.Results {
		if err := write(engineResult, result.Input, opts); err != nil {
			return 0, fmt.Errorf("an error occurred while writing the %v outputs: %w", engineResult.Engine, err)
		}
		log.Info("timetable written",
			zap.String("engine", string(engineResult.Engine)),
			zap.Bool("verified", engineResult.Verified),
			zap.Float64("successRate", engineResult.Timetable.Stats.SuccessRate()),
			zap.Duration("duration", engineResult.Duration),
		)
	}

	if lo.SomeBy(result.Results, func(r pipeline.Result) bool { return !r.Verified }) {
		return exitUnverified, nil
	} else if lo.SomeBy(result.Results, func(r pipeline.Result) bool { return !r.Complete() }) {
		return exitIncomplete, nil
	}
	return exitComplete, nil
}

func write(result pipeline.Result, input model.ModelInput, opts *options) error {
	base := filepath.Join(opts.out, string(result.Engine))
	summary := export.Summarize(result.Timetable, input)

	summaryFile, err := os.Create(base + "_summary.txt")
	if err != nil {
		return err
	}
	defer summaryFile.Close()
	if err := summary.WriteText(summaryFile); err != nil {
		return err
	}
	if result.Engine == model.ElectiveEngine {
		fmt.Fprintf(summaryFile, "%-24v %v\n", "Elective Overlaps:", len(export.ElectiveOverlaps(result.Timetable)))
	}
	if result.Timetable.Stats.Overbooked > 0 {
		contentions, err := model.AnalyzeContention(result.Timetable, input)
		if err != nil {
			return err
		}
		resolvable := lo.CountBy(contentions, func(contention model.Contention) bool { return contention.Resolvable })
		fmt.Fprintf(summaryFile, "%-24v %v (%v resolvable)\n", "Contended Cells:", len(contentions), resolvable)
	}

	if opts.format == "csv" || opts.format == "all" {
		if err := csvio.ExportTimetable(result.Timetable, base+"_timetable.csv"); err != nil {
			return err
		}
	}
	if (opts.format == "pdf" || opts.format == "all") && len(result.Timetable.Sections) > 0 {
		exporter := export.NewPDFExporter()
		content, err := exporter.RenderTimetable(result.Timetable, string(result.Engine)+" timetable")
		if err != nil {
			return err
		}
		if err := os.WriteFile(base+"_timetable.pdf", content, 0o666); err != nil {
			return err
		}
	}
	return nil
}
