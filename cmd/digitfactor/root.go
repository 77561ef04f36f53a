package digitfactor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/varalys/digitfactor/internal/engine"
	"github.com/varalys/digitfactor/internal/report"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	flagNoColor bool
	flagDebug   bool

	version = "0.1.0"

	logger = zap.NewNop()

	// noColor is the effective color setting: --no-color or no_color from
	// the local or global config.
	noColor bool
)

var buildLogger = func(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// rootCmd is the base Cobra command for the digitfactor CLI.
var rootCmd = &cobra.Command{
	Use:   "digitfactor",
	Short: "Factor integers one decimal digit at a time",
	Long: `digitfactor builds candidate factor pairs from the least significant digit
upwards, prunes pairs whose trailing digits cannot match the target, and
verifies the survivors by exact multiplication.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		l, err := buildLogger(flagDebug)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l

		// Config errors are reported by the commands that read the config.
		noColor = flagNoColor
		if gcfg, lcfg, err := loadConfigs(); err == nil {
			noColor = pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor)
		}
		return nil
	},
}

// Execute runs the digitfactor CLI. It should be called by the main package.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Stderr)
	stop()
	if code != 0 {
		os.Exit(code)
	}
}

// run executes the root command and returns the exit status. The logger is
// flushed on every path, including failed commands.
func run(ctx context.Context, stderr io.Writer) int {
	err := rootCmd.ExecuteContext(ctx)
	_ = logger.Sync()
	if err != nil {
		return handleError(stderr, err)
	}
	return 0
}

// handleError prints err for a human and returns the process exit status:
// 1 for malformed input, 2 for everything else.
func handleError(w io.Writer, err error) int {
	var inv *engine.InvalidInputError
	if errors.As(err, &inv) {
		fmt.Fprintln(w, report.Error(noColor, "Error: Input must be a valid positive integer"))
		return 1
	}
	fmt.Fprintln(w, report.Error(noColor, "error: "+err.Error()))
	return 2
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "emit debug logs to stderr")
}
