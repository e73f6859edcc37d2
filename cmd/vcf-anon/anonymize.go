package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/vcf-anon/internal/anonymize"
	"github.com/inodb/vcf-anon/internal/level"
	"github.com/inodb/vcf-anon/internal/report"
	"github.com/inodb/vcf-anon/internal/vcf"
)

// heuristicBindings maps config keys to the flags shared by anonymize and
// verify.
var heuristicBindings = map[string]string{
	"maf_threshold":  "maf",
	"str.min_motif":  "min-motif",
	"str.max_motif":  "max-motif",
	"str.min_repeat": "min-repeat",
	"workers":        "workers",
	"progress":       "progress",
}

func addHeuristicFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("maf", 0.01, "MAF threshold: high level suppresses variants rarer than this")
	cmd.Flags().Int("min-motif", 1, "Shortest STR motif length")
	cmd.Flags().Int("max-motif", 6, "Longest STR motif length")
	cmd.Flags().Int("min-repeat", 7, "Minimum contiguous motif copies for an STR")
	cmd.Flags().IntP("workers", "w", 0, "Files processed in parallel (0 = number of CPUs)")
	cmd.Flags().Bool("progress", false, "Show a progress bar on stderr")
}

func newAnonymizeCmd() *cobra.Command {
	var (
		inputDir  string
		outputDir string
		levelName string
	)

	cmd := &cobra.Command{
		Use:   "anonymize",
		Short: "Anonymize every VCF in a directory",
		Long: `Anonymize every .vcf.gz, .vcf.bgz and .vcf file in the input directory.

Outputs are written to the output directory as low_anony_<name> or
high_<maf>_anony_<name>. Compressed outputs are BGZF.`,
		Example: `  vcf-anon anonymize -i ./input_vcfs -o ./anony_vcfs --level low
  vcf-anon anonymize -i ./input_vcfs -o ./anony_vcfs --level high --maf 0.005`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if inputDir == "" || outputDir == "" {
				return usageErrorf("--input and --output are required")
			}
			l, err := level.Parse(levelName)
			if err != nil {
				return &usageError{err: err}
			}
			cfg, err := loadConfig(cmd, heuristicBindings)
			if err != nil {
				return err
			}

			engine, err := anonymize.NewEngine(l, cfg.Params())
			if err != nil {
				return &usageError{err: err}
			}
			engine.SetLogger(logger)

			inputs, err := vcf.ListPaths(inputDir)
			if err != nil {
				return err
			}
			if len(inputs) == 0 {
				logger.Warn("no VCF files found", zap.String("input", inputDir))
			}

			start := time.Now()
			bar := newProgress(cfg.Progress, len(inputs), "Anonymizing")
			var files []anonymize.FileResult
			failed := 0

			err = engine.Files(cmd.Context(), inputs, outputDir, cfg.Workers, func(r anonymize.FileResult) error {
				bar.add()
				files = append(files, r)
				if r.Err != nil {
					failed++
					logger.Error("anonymization failed", zap.String("input", r.Input), zap.Error(r.Err))
				}
				return nil
			})
			if err != nil {
				return err
			}

			report.WriteAnonymizeSummary(os.Stdout, files, time.Since(start))

			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(files))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputDir, "input", "i", "", "Directory containing input VCF files")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory for anonymized VCF files")
	cmd.Flags().StringVar(&levelName, "level", "", "Anonymization level: low or high")
	addHeuristicFlags(cmd)

	return cmd
}
