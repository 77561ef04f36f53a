package digitfactor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/varalys/digitfactor/internal/cache"
	"github.com/varalys/digitfactor/internal/config"
	"github.com/varalys/digitfactor/internal/engine"
	"github.com/varalys/digitfactor/internal/journal"
	"github.com/varalys/digitfactor/internal/prompt"
	"github.com/varalys/digitfactor/internal/report"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var (
	flagQuiet       bool
	flagWorkers     int
	flagMaxFrontier int
	flagTimeBudget  time.Duration
	flagJSON        bool
	flagText        bool
	flagJournal     string
	flagCacheDir    string
)

func init() {
	cmd := &cobra.Command{
		Use:   "factor [N]",
		Short: "Find digit-consistent factor pairs of N",
		Long: `Factor N by extending candidate pairs one decimal digit at a time.
When N is omitted it is read from the terminal (or one line of stdin).`,
		Args: cobra.MaximumNArgs(1),
		RunE: runFactor,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "only print the verified pairs and timing")
	cmd.Flags().IntVar(&flagWorkers, "workers", 0, "worker count (0 = GOMAXPROCS, 1 = sequential)")
	cmd.Flags().IntVar(&flagMaxFrontier, "max-frontier", 0, "abort when an iteration keeps more candidate pairs than this (0 = unlimited)")
	cmd.Flags().DurationVar(&flagTimeBudget, "time-budget", 0, "abort the search after this long (e.g. 30s, 0 = unlimited)")
	cmd.Flags().BoolVar(&flagJSON, "json", false, "emit JSON")
	cmd.Flags().BoolVar(&flagText, "text", false, "emit plain match lines instead of a table")
	cmd.Flags().StringVar(&flagJournal, "journal", "", "append a record of this run to a JSON-lines file")
	cmd.Flags().StringVar(&flagCacheDir, "cache-dir", "", "reuse and store verified results in this directory")
}

// loadConfigs returns the global and local file configs. Missing files are
// not an error; unreadable or invalid ones are.
func loadConfigs() (global, local config.FileConfig, err error) {
	global, err = config.LoadGlobal()
	if err != nil && !errors.Is(err, config.ErrNotFound) {
		return global, local, err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return global, local, err
	}
	local, err = config.LoadLocal(cwd)
	if err != nil && !errors.Is(err, config.ErrNotFound) {
		return global, local, err
	}
	return global, local, nil
}

func runFactor(cmd *cobra.Command, args []string) error {
	// Load configs: CLI > local > global
	gcfg, lcfg, err := loadConfigs()
	if err != nil {
		return err
	}
	lb, _ := lcfg.TimeBudgetDuration()
	gb, _ := gcfg.TimeBudgetDuration()

	workers := pickInt(flagWorkers, lcfg.Workers, gcfg.Workers)
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	quiet := pickBool(flagQuiet, lcfg.Quiet, gcfg.Quiet)
	journalPath := pickString(flagJournal, lcfg.Journal, gcfg.Journal)
	var store *cache.Store
	if dir := pickString(flagCacheDir, lcfg.Cache, gcfg.Cache); dir != "" {
		store = cache.New(dir)
	}

	format := pickString("", lcfg.Format, gcfg.Format)
	switch {
	case flagJSON:
		format = config.FormatJSON
	case flagText:
		format = config.FormatText
	case format == "":
		format = config.FormatTable
	}

	cfg := engine.Config{
		Workers:     workers,
		MaxFrontier: pickInt(flagMaxFrontier, lcfg.MaxFrontier, gcfg.MaxFrontier),
		TimeBudget:  pickDuration(flagTimeBudget, lb, gb),
		Logger:      logger,
	}
	if !quiet {
		cfg.Progress = report.NewProgress(cmd.ErrOrStderr(), noColor).Handle
	}

	var input string
	if len(args) == 1 {
		input = args[0]
	} else if input, err = readInput(cmd); err != nil {
		return err
	}

	logger.Debug("starting search",
		zap.String("input", strings.TrimSpace(input)),
		zap.Int("workers", cfg.Workers),
		zap.Int("max_frontier", cfg.MaxFrontier),
		zap.Duration("time_budget", cfg.TimeBudget))

	res, err := factorInput(cmd.Context(), input, cfg, store)
	if journalPath != "" {
		rec := journal.NewRunRecord(strings.TrimSpace(input), res.Digits, res.Pairs, res.PeakFrontier, res.Duration, err)
		if jerr := journal.New(journalPath).LogRun(rec); jerr != nil {
			logger.Warn("journal write failed", zap.String("path", journalPath), zap.Error(jerr))
		}
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	opts := report.PrintOptions{NoColor: noColor, Duration: res.Duration}
	switch format {
	case config.FormatJSON:
		return report.WriteJSON(out, report.NewDocument(res))
	case config.FormatText:
		report.PrintText(out, res.Pairs, opts)
		return nil
	default:
		return report.PrintTable(out, res.Pairs, opts)
	}
}

// factorInput runs a search, consulting store first when one is set.
// Only successful searches are stored.
func factorInput(ctx context.Context, input string, cfg engine.Config, store *cache.Store) (engine.Result, error) {
	if store == nil {
		return engine.FactorString(ctx, input, cfg)
	}
	n, err := engine.ParseInput(input)
	if err != nil {
		return engine.Result{}, err
	}
	e, err := store.Load(n)
	switch {
	case err == nil:
		logger.Debug("cache hit", zap.String("n", n.String()))
		return engine.Result{N: n, Digits: e.Digits, Pairs: e.Pairs}, nil
	case !errors.Is(err, cache.ErrMiss):
		logger.Warn("cache read failed", zap.Error(err))
	}

	res, err := engine.FactorWithStats(ctx, n, cfg)
	if err != nil {
		return res, err
	}
	if err := store.Save(n, res.Digits, res.Pairs); err != nil {
		logger.Warn("cache write failed", zap.Error(err))
	}
	return res, nil
}

// readInput prompts on a terminal and otherwise reads one line from stdin.
func readInput(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return prompt.Ask(f, cmd.ErrOrStderr(), "Input: ")
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return line, nil
}
