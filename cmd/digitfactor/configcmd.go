package digitfactor

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/varalys/digitfactor/internal/config"
	"gopkg.in/yaml.v3"
)

var (
	cfgOutput      string
	cfgWorkers     int
	cfgMaxFrontier int
	cfgTimeBudget  string
	cfgQuiet       bool
	cfgFormat      string
	cfgJournal     string
	cfgCache       string
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .digitfactor.yml with the selected options",
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&cfgOutput, "output", ".digitfactor.yml", "output file path")
	initCmd.Flags().IntVar(&cfgWorkers, "workers", 0, "worker count (0 = GOMAXPROCS)")
	initCmd.Flags().IntVar(&cfgMaxFrontier, "max-frontier", 0, "frontier ceiling (0 = unlimited)")
	initCmd.Flags().StringVar(&cfgTimeBudget, "time-budget", "", "search time budget (e.g. 30s)")
	initCmd.Flags().BoolVar(&cfgQuiet, "quiet", false, "suppress the progress stream by default")
	initCmd.Flags().StringVar(&cfgFormat, "format", config.FormatTable, "output format: table | text | json")
	initCmd.Flags().StringVar(&cfgJournal, "journal", "", "journal file for run history")
	initCmd.Flags().StringVar(&cfgCache, "cache-dir", "", "directory for memoized results")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	fc := config.FileConfig{
		Workers:     intPtr(cfgWorkers),
		MaxFrontier: intPtr(cfgMaxFrontier),
		TimeBudget:  optStrPtr(cfgTimeBudget),
		Quiet:       boolPtr(cfgQuiet),
		NoColor:     boolPtr(flagNoColor),
		Format:      optStrPtr(cfgFormat),
		Journal:     optStrPtr(cfgJournal),
		Cache:       optStrPtr(cfgCache),
	}
	if err := fc.Validate(); err != nil {
		return err
	}

	b, err := yaml.Marshal(&fc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfgOutput, b, 0o644); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", cfgOutput)
	return nil
}

func optStrPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
func intPtr(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
func boolPtr(v bool) *bool { return &v }
