package cmd

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/popclean-cli/internal/analysis"
	"github.com/KaramelBytes/popclean-cli/internal/dataset"
	"github.com/KaramelBytes/popclean-cli/internal/utils"
)

var (
	chkOutputPath string
	chkDelimiter  string
	chkSheet      string
	chkQuiet      bool
)

var checkCmd = &cobra.Command{
	Use:   "check [inputs...]",
	Short: "Profile one or more raw datasets without changing them",
	Long: `check prints data information, a numeric description, missing values per
column, the duplicate row count and value counts with proportions for every
categorical column. Arguments may be glob patterns.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := *cfg
		if err := applyReadFlags(cmd, &c, nil, chkDelimiter, chkSheet); err != nil {
			return err
		}
		if err := c.Validate(); err != nil {
			return err
		}
		files := expandInputs(args, c.InputPath)
		logger := newLogger(cmd)
		out := cmd.OutOrStdout()

		var b strings.Builder
		total := len(files)
		for i, path := range files {
			if total > 1 && !chkQuiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			d, err := dataset.Load(path, c.ReadOptions())
			if err != nil {
				return err
			}
			rep := analysis.Profile(d)
			logger.Debug("profiled input", "path", path, "rows", rep.Rows, "duplicates", rep.Duplicates)
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(rep.Text())
		}

		if chkOutputPath != "" {
			if err := utils.SafeWriteFile(chkOutputPath, []byte(b.String())); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(out, "✓ Wrote profile to %s\n", chkOutputPath)
			return nil
		}
		fmt.Fprint(out, b.String())
		return nil
	},
}

// expandInputs resolves glob patterns to a sorted, de-duplicated file list.
// With no patterns the configured input is used.
func expandInputs(args []string, fallback string) []string {
	if len(args) == 0 {
		return []string{fallback}
	}
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// treat as literal path so Load reports the real error
			matches = []string{arg}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVarP(&chkOutputPath, "output", "o", "", "optional path to write the profile")
	checkCmd.Flags().StringVar(&chkDelimiter, "delimiter", "", "field delimiter: ',' | ';' | 'tab' (default by extension)")
	checkCmd.Flags().StringVar(&chkSheet, "sheet", "", "XLSX: sheet name to read (default first sheet)")
	checkCmd.Flags().BoolVar(&chkQuiet, "quiet", false, "suppress progress output")
}
