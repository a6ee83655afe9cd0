package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"symdoc/config"
	"symdoc/internal/logging"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "symdoc",
	Short: "Generate a reference of public symbols across a source tree",
	Long: `symdoc scans a source tree, detects public/exported symbols in
TypeScript, JavaScript, Python, Go, Rust, Java/Kotlin/Groovy and shell files
using per-language patterns, and writes them grouped by file into a single
document.

Example usage:
  symdoc generate                 # Write docs/API.md for the current directory
  symdoc generate -d ./service    # Document another directory
  symdoc symbols                  # Print the grouping as JSON
  symdoc watch                    # Regenerate on every change`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		rootDir, err = config.ResolveRoot(rootDir)
		if err != nil {
			return fmt.Errorf("failed to resolve root directory: %w", err)
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg.ApplyEnv()

		logger = logging.New(logging.LoadConfig(cfg.Logging.Level, cfg.Logging.Format))
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./symdoc.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is $WORKSPACE, then current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}
