package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/popclean-cli/internal/config"
	"github.com/KaramelBytes/popclean-cli/internal/logging"
)

var (
	// Global flags
	cfgFile   string
	debug     bool
	logFormat string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "popclean",
	Short: "popclean: clean a population dataset and report what changed",
	Long: `popclean removes duplicate rows from a population dataset, fills missing values,
recodes gender and income groups into labelled categories, corrects century typos
in years, and writes the cleaned file plus a before/after distribution report.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.popclean/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text | json (overrides config)")
}

func loadConfig(cmd *cobra.Command) error {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("log-format") {
		c.LogFormat = logFormat
		if err := c.Validate(); err != nil {
			return err
		}
	}
	cfg = c
	return nil
}

// newLogger builds the run logger on the command's stderr. Every line carries
// the same run_id.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	return logging.New(level, cfg.LogFormat, cmd.ErrOrStderr()).With("run_id", uuid.NewString())
}

// applyReadFlags copies the input flags shared by clean and check onto c.
func applyReadFlags(cmd *cobra.Command, c *cfgpkg.Global, args []string, delim, sheet string) error {
	if len(args) > 0 {
		c.InputPath = args[0]
	}
	f := cmd.Flags()
	if f.Changed("delimiter") {
		name, err := delimiterName(delim)
		if err != nil {
			return err
		}
		c.Delimiter = name
	}
	if f.Changed("sheet") {
		c.Sheet = sheet
	}
	return nil
}

func delimiterName(s string) (string, error) {
	switch s {
	case ",", "comma":
		return "comma", nil
	case ";", "semicolon":
		return "semicolon", nil
	case "\t", "\\t", "tab":
		return "tab", nil
	case "":
		return "", nil
	}
	return "", fmt.Errorf("unsupported --delimiter: %s (use ',' | ';' | 'tab')", s)
}
