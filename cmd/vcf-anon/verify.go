package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/vcf-anon/internal/config"
	"github.com/inodb/vcf-anon/internal/duckdb"
	"github.com/inodb/vcf-anon/internal/report"
	"github.com/inodb/vcf-anon/internal/verify"
)

func newVerifyCmd() *cobra.Command {
	var (
		originDir string
		anonDir   string
		strict    bool
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify anonymized VCFs against their originals",
		Long: `Pair every original VCF with its anonymized copies (matched on the name
after "anony_") and check that header metadata, STR alleles and rare variants
were masked. Low-level copies are checked on metadata only.

A CSV report is written to the report directory; with --report-db results are
also appended to a DuckDB history database.`,
		Example: `  vcf-anon verify --origin ./input_vcfs --anony ./anony_vcfs
  vcf-anon verify --origin ./in --anony ./out --maf 0.005 --report-db ~/.vcf-anon/history.duckdb`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if originDir == "" || anonDir == "" {
				return usageErrorf("--origin and --anony are required")
			}
			bindings := map[string]string{
				"report.dir": "report-dir",
				"report.db":  "report-db",
			}
			for k, v := range heuristicBindings {
				bindings[k] = v
			}
			cfg, err := loadConfig(cmd, bindings)
			if err != nil {
				return err
			}

			verifier, err := verify.NewVerifier(cfg.Params())
			if err != nil {
				return &usageError{err: err}
			}
			verifier.SetLogger(logger)

			start := time.Now()
			pairing, err := verify.FindPairs(originDir, anonDir)
			if err != nil {
				return err
			}
			for _, u := range pairing.Unmatched {
				logger.Warn("no anonymized file found", zap.String("origin", filepath.Base(u)))
			}

			results, unreadable, err := runVerify(cmd, verifier, cfg, pairing.Pairs)
			if err != nil {
				return err
			}

			path, err := report.WriteFile(cfg.Report.Dir, results)
			if err != nil {
				return err
			}
			if cfg.Report.DB != "" {
				if err := storeResults(cfg.Report.DB, results, start); err != nil {
					return err
				}
			}

			report.WriteSummary(os.Stdout, results, path, time.Since(start))

			if unreadable > 0 {
				return fmt.Errorf("%d of %d pairs could not be read", unreadable, len(pairing.Pairs))
			}
			if strict {
				if n := report.Failed(results); n > 0 {
					return fmt.Errorf("%d pairs need re-anonymization", n)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&originDir, "origin", "o", "", "Directory containing original VCF files")
	cmd.Flags().StringVarP(&anonDir, "anony", "a", "", "Directory containing anonymized VCF files")
	cmd.Flags().String("report-dir", "./reports", "Directory for CSV reports")
	cmd.Flags().String("report-db", "", "DuckDB file to append results to (disabled when empty)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error when any pair fails verification")
	addHeuristicFlags(cmd)

	return cmd
}

func runVerify(cmd *cobra.Command, v *verify.Verifier, cfg *config.Config, pairs []verify.FilePair) ([]verify.Result, int, error) {
	bar := newProgress(cfg.Progress, len(pairs), "Verifying")
	var results []verify.Result
	unreadable := 0

	err := v.Run(cmd.Context(), pairs, cfg.Workers, func(r verify.PairResult) error {
		bar.add()
		if r.Err != nil {
			unreadable++
			logger.Error("verification failed",
				zap.String("origin", r.Pair.Origin),
				zap.String("anony", r.Pair.Anonymized),
				zap.Error(r.Err))
			return nil
		}
		results = append(results, r.Result)
		return nil
	})
	return results, unreadable, err
}

func storeResults(dbPath string, results []verify.Result, checkedAt time.Time) error {
	store, err := duckdb.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runID := duckdb.NewRunID()
	rows := make([]duckdb.ResultRow, len(results))
	for i, r := range results {
		rows[i] = duckdb.RowFromResult(runID, checkedAt, r)
	}
	if err := store.WriteResults(rows); err != nil {
		return fmt.Errorf("store results: %w", err)
	}
	logger.Info("stored verification results",
		zap.String("db", dbPath),
		zap.String("run_id", runID),
		zap.Int("pairs", len(rows)))
	return nil
}
