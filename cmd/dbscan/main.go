package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TrevorS/dbscan/cmd/dbscan/commands"
	"github.com/TrevorS/dbscan/internal/errors"
	"github.com/TrevorS/dbscan/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "dbscan",
	Short: "Density-based clustering of point files and images",
	Long: `dbscan groups points that lie in dense regions and marks isolated
points as noise.

Available commands:
  run         - Cluster a CSV or JSON point file
  image       - Cluster the bright pixels of an image
  interactive - Re-cluster an image with parameters entered at a prompt
  config      - Manage configuration
  version     - Show version information

Examples:
  dbscan run points.csv --eps 0.5 --min-pts 5
  dbscan image shapes.png --eps 3 --min-pts 10 -v`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := commands.LoadConfig(cmd)
		if err != nil {
			return err
		}
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("json-logs")
		if err := logger.Initialize(jsonLogs || cfg.Log.JSON, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		cmd.SetContext(commands.WithConfig(cmd.Context(), cfg))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default ./dbscan.toml when present)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Write logs as JSON to stderr")

	rootCmd.AddCommand(commands.RunCmd)
	rootCmd.AddCommand(commands.ImageCmd)
	rootCmd.AddCommand(commands.InteractiveCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
