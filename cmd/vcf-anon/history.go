package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/vcf-anon/internal/duckdb"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Query stored verification results",
		Long:  "Query the DuckDB history written by verify --report-db (or report.db in the config).",
		Example: `  vcf-anon history runs --db ~/.vcf-anon/history.duckdb
  vcf-anon history failures high_0.01_anony_s1.vcf.gz`,
	}
	cmd.PersistentFlags().String("db", "", "DuckDB history file (default: report.db from config)")

	cmd.AddCommand(newHistoryRunsCmd())
	cmd.AddCommand(newHistoryFailuresCmd())
	return cmd
}

func openHistory(cmd *cobra.Command) (*duckdb.Store, error) {
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		path = viper.GetString("report.db")
	}
	if path == "" {
		return nil, usageErrorf("no history database: pass --db or set report.db")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return duckdb.Open(path)
}

func newHistoryRunsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "List verification runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openHistory(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Runs()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "RUN_ID\tCHECKED_AT\tPAIRS\tFAILED")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", r.RunID, r.CheckedAt.Format("2006-01-02 15:04:05"), r.Pairs, r.Failed)
			}
			return tw.Flush()
		},
	}
}

func newHistoryFailuresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "failures [filename]",
		Short: "List failed verifications, optionally for one anonymized file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			var filename string
			if len(args) == 1 {
				filename = args[0]
			}
			rows, err := store.Failures(filename)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "CHECKED_AT\tFILENAME\tLEVEL\tMASKED\tUNMASKED_POSITIONS")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d/%d\t%s\n",
					r.CheckedAt.Format("2006-01-02 15:04:05"), r.Filename, r.Level,
					r.MetadataMasked+r.VariantMasked, r.TotalTargets, r.UnmaskedPositions)
			}
			return tw.Flush()
		},
	}
}
