package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/popclean-cli/internal/analysis"
	"github.com/KaramelBytes/popclean-cli/internal/clean"
	"github.com/KaramelBytes/popclean-cli/internal/dataset"
	"github.com/KaramelBytes/popclean-cli/internal/utils"
)

var (
	clOutputPath string
	clReportPath string
	clDelimiter  string
	clSheet      string
)

var cleanCmd = &cobra.Command{
	Use:   "clean [input]",
	Short: "Clean a population dataset and write the distribution comparison",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := *cfg
		if err := applyReadFlags(cmd, &c, args, clDelimiter, clSheet); err != nil {
			return err
		}
		f := cmd.Flags()
		if f.Changed("output") {
			c.OutputPath = clOutputPath
		}
		if f.Changed("report") {
			c.ReportPath = clReportPath
		}
		if err := c.Validate(); err != nil {
			return err
		}
		logger := newLogger(cmd)

		raw, err := dataset.Load(c.InputPath, c.ReadOptions())
		if err != nil {
			return err
		}
		logger.Info("loaded input", "path", c.InputPath, "rows", raw.Len(), "columns", len(raw.Columns))

		res, err := clean.Run(cmd.Context(), raw, logger)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, line := range res.Summary.Lines() {
			fmt.Fprintln(out, line)
		}

		delim := c.Delim()
		if delim == 0 {
			delim = dataset.DelimiterFor(c.OutputPath)
		}
		body, err := dataset.Encode(res.Cleaned, delim)
		if err != nil {
			return fmt.Errorf("encode cleaned dataset: %w", err)
		}
		report := analysis.Compare(raw, res.Cleaned).Text()

		if err := writeOutputs(logger, c.ReportPath, []byte(report), c.OutputPath, body); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Saved distribution comparison to %s\n", c.ReportPath)
		fmt.Fprintf(out, "✓ Saved cleaned dataset to %s\n", c.OutputPath)
		return nil
	},
}

// writeOutputs writes both files atomically. If the second write fails the
// first file is removed again.
func writeOutputs(logger *slog.Logger, firstPath string, first []byte, secondPath string, second []byte) error {
	if err := utils.SafeWriteFile(firstPath, first); err != nil {
		return fmt.Errorf("write %s: %w", firstPath, err)
	}
	logger.Info("wrote file", "path", firstPath, "size", humanize.Bytes(uint64(len(first))))
	if err := utils.SafeWriteFile(secondPath, second); err != nil {
		if rmErr := os.Remove(firstPath); rmErr != nil {
			logger.Warn("remove partial output", "path", firstPath, "error", rmErr)
		}
		return fmt.Errorf("write %s: %w", secondPath, err)
	}
	logger.Info("wrote file", "path", secondPath, "size", humanize.Bytes(uint64(len(second))))
	return nil
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().StringVarP(&clOutputPath, "output", "o", "", "path for the cleaned dataset (default cleaned_population_data.csv)")
	cleanCmd.Flags().StringVarP(&clReportPath, "report", "r", "", "path for the distribution comparison (default data_distribution_comparison.txt)")
	cleanCmd.Flags().StringVar(&clDelimiter, "delimiter", "", "field delimiter: ',' | ';' | 'tab' (default by extension)")
	cleanCmd.Flags().StringVar(&clSheet, "sheet", "", "XLSX: sheet name to read (default first sheet)")
}
