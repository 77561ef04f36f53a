package digitfactor

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/varalys/digitfactor/internal/journal"
	"github.com/varalys/digitfactor/internal/report"
)

var (
	flagHistoryJournal string
	flagHistoryDelete  int
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or prune journaled factor runs",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVar(&flagHistoryJournal, "journal", "", "journal file (defaults to the configured journal)")
	cmd.Flags().IntVar(&flagHistoryDelete, "delete", -1, "delete the record at this index (as listed, newest first)")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	gcfg, lcfg, err := loadConfigs()
	if err != nil {
		return err
	}
	path := pickString(flagHistoryJournal, lcfg.Journal, gcfg.Journal)
	if path == "" {
		return errors.New("no journal configured: pass --journal or set journal in .digitfactor.yml")
	}
	j := journal.New(path)

	if flagHistoryDelete >= 0 {
		if err := j.DeleteRecord(flagHistoryDelete); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted record %d from %s\n", flagHistoryDelete, j.Path())
		return nil
	}

	records, err := j.LoadHistory()
	if err != nil {
		return err
	}
	return report.PrintHistory(cmd.OutOrStdout(), records)
}
