package commands

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/TrevorS/dbscan/internal/config"
	"github.com/TrevorS/dbscan/internal/errors"
)

// ConfigCmd groups the configuration subcommands.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage dbscan configuration",
	Long: `Configuration sources (later overrides earlier):
1. Built-in defaults
2. ./dbscan.toml, or the file given with --config
3. DBSCAN_* environment variables (DBSCAN_CLUSTER_EPS, DBSCAN_IMAGE_SPECKLE, ...)
4. Command line flags

Examples:
  dbscan config init              # Write ./dbscan.toml with defaults
  dbscan config show              # Show the effective configuration`,
}

var configInitCmd = &cobra.Command{
	Use:         "init [path]",
	Short:       "Write a configuration file with default values",
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{SkipConfigAnnotation: "true"},
	RunE:        runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration as TOML",
	RunE:  runConfigShow,
}

func init() {
	configInitCmd.Flags().BoolP("force", "f", false, "Overwrite an existing file")

	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.DefaultFileName
	if len(args) == 1 {
		path = args[0]
	}
	force, _ := cmd.Flags().GetBool("force")
	if err := config.Default().Save(path, force); err != nil {
		return err
	}
	pterm.Success.Printfln("Wrote %s", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	data, err := toml.Marshal(configFrom(cmd.Context()))
	if err != nil {
		return errors.Wrap(err, "failed to marshal config to TOML")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "# dbscan configuration\n%s", data)
	return nil
}
