package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/TrevorS/dbscan"
	"github.com/TrevorS/dbscan/internal/pointfile"
)

// RunCmd clusters a point file.
var RunCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Cluster a CSV or JSON point file",
	Long: `Cluster the points stored in a CSV or JSON file and print a summary of
every cluster found.

CSV files hold one point per row (an optional header row is skipped);
JSON files hold an array of coordinate arrays.

Examples:
  dbscan run points.csv --eps 0.3 --min-pts 4
  dbscan run points.json --metric manhattan --out labels.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	addClusterFlags(RunCmd)
	RunCmd.Flags().StringP("out", "o", "", "Write per-point labels as CSV to this file")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := configFrom(cmd.Context())

	ds, err := pointfile.Load(args[0])
	if err != nil {
		return err
	}
	res, err := clusterSource(ds, cfg)
	if err != nil {
		return err
	}
	summaries, err := dbscan.Summarize(ds, res)
	if err != nil {
		return err
	}
	if err := writeSummary(cmd.OutOrStdout(), res, summaries); err != nil {
		return err
	}

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		if err := pointfile.SaveLabels(out, res.Labels); err != nil {
			return err
		}
		pterm.Success.Printfln("Labels written to %s", out)
	}
	return nil
}
