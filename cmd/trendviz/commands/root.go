// Package commands wires the trendviz CLI: load a dataset, fit the
// trend model, and write detrended plots and summary tables.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"trendviz/pkg/logging"
)

var (
	cfgPath  string
	input    string
	outDir   string
	logLevel string

	cfg    Config
	logger *slog.Logger
)

func Execute() error {
	root := &cobra.Command{
		Use:           "trendviz",
		Short:         "Detrend data with regression residuals and plot what remains",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = loadConfig(cfgPath)
			if err != nil {
				return err
			}
			if input == "" {
				input = cfg.Input
			}
			if outDir == "" {
				outDir = cfg.Out
			}
			if outDir == "" {
				outDir = "out"
			}
			if logLevel == "" {
				logLevel = cfg.LogLevel
			}
			level, err := logging.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger = logging.New(level, os.Stderr)
			slog.SetDefault(logger)
			return os.MkdirAll(outDir, 0o755)
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&input, "input", "", "input CSV path")
	root.PersistentFlags().StringVar(&outDir, "out", "", "output directory (default ./out)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn, or error")

	root.AddCommand(diamondsCmd(), housingCmd())
	return root.Execute()
}

func requireInput() error {
	if input == "" {
		return fmt.Errorf("input CSV required (--input or config)")
	}
	return nil
}

// writeText writes a table or report file under the output directory and
// echoes its path on stdout.
func writeText(name, content string) error {
	path := filepath.Join(outDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func outPath(name string) string { return filepath.Join(outDir, name) }
