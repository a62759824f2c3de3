// Command ham is a CLI driver over the workspace-analysis core: it is
// glue, not core — every subcommand reads plain files and prints
// something a human or a script can read; watch is the one that builds
// a workspace.Workspace from them.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	hsp3Root string
	verbose  bool
	logger   *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:          "ham",
	Short:        "ham analyzes HSP3 source without an editor attached",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		}
		l, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&hsp3Root, "hsp", "", "HSP3 install directory (overrides HSP3_ROOT)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(parseCmd, profileParseCmd, formatCommentsCmd, watchCmd)
}

// requireHSP3Root resolves --hsp, falling back to $HSP3_ROOT, and
// confirms the directory exists. Exit code 1 per the error-handling
// design's "invalid argument or missing required env".
func requireHSP3Root() (string, error) {
	root := hsp3Root
	if root == "" {
		root = os.Getenv("HSP3_ROOT")
	}
	if root == "" {
		return "", fmt.Errorf("HSP3 install directory not set: pass --hsp or set HSP3_ROOT")
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("HSP3 install directory not found: %s", root)
	}
	return root, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ham:", err)
		os.Exit(1)
	}
}
