package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/TrevorS/dbscan"
	"github.com/TrevorS/dbscan/internal/config"
	"github.com/TrevorS/dbscan/internal/errors"
	"github.com/TrevorS/dbscan/internal/raster"
)

// InteractiveCmd re-clusters one image with parameters read from the terminal.
var InteractiveCmd = &cobra.Command{
	Use:   "interactive <file>",
	Short: "Repeatedly cluster an image with parameters entered at a prompt",
	Long: `Load an image once, then prompt for epsilon and min_pts, cluster, and
render the result. Each round reuses the extracted points with fresh
clustering state. Submit an empty value to quit.

Example:
  dbscan interactive shapes.png --speckle 0.05 --out live.png`,
	Args: cobra.ExactArgs(1),
	RunE: runInteractive,
}

func init() {
	addClusterFlags(InteractiveCmd)
	addImageFlags(InteractiveCmd)
}

type promptFunc func(label, current string) (string, error)

func terminalPrompt(label, current string) (string, error) {
	return pterm.DefaultInteractiveTextInput.Show(fmt.Sprintf("%s [%s]", label, current))
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg := configFrom(cmd.Context())
	if err := applyImageFlags(cmd, cfg); err != nil {
		return err
	}
	grid, err := loadGrid(args[0], cfg)
	if err != nil {
		return err
	}
	out, _ := cmd.Flags().GetString("out")
	pterm.Info.Printfln("%d points loaded from %s", grid.Len(), args[0])
	return interactiveLoop(cmd.OutOrStdout(), terminalPrompt, grid, cfg, out)
}

// interactiveLoop runs rounds until a prompt returns an empty answer.
// Invalid parameters are reported and the round is asked again.
func interactiveLoop(w io.Writer, prompt promptFunc, grid *raster.Grid, cfg *config.Config, out string) error {
	for round := 1; ; round++ {
		epsText, err := prompt("epsilon", strconv.FormatFloat(cfg.Cluster.Eps, 'g', -1, 64))
		if err != nil || strings.TrimSpace(epsText) == "" {
			return err
		}
		minPtsText, err := prompt("min_pts", strconv.Itoa(cfg.Cluster.MinPts))
		if err != nil || strings.TrimSpace(minPtsText) == "" {
			return err
		}

		next := *cfg
		var n, noise int
		err = parseRound(&next, epsText, minPtsText)
		if err == nil {
			n, noise, err = clusterAndRender(grid, &next, out)
			if err != nil && !isParameterError(err) {
				return err
			}
		}
		if err != nil {
			fmt.Fprintf(w, "round %d: %v\n", round, err)
			if hint := errors.FlattenHints(err); hint != "" {
				fmt.Fprintf(w, "hint: %s\n", hint)
			}
			continue
		}

		*cfg = next
		fmt.Fprintf(w, "round %d: eps=%g min_pts=%d -> %d clusters, %d noise (%s)\n",
			round, cfg.Cluster.Eps, cfg.Cluster.MinPts, n, noise, out)
	}
}

// isParameterError reports whether the engine rejected the round's
// parameters, as opposed to failing on I/O.
func isParameterError(err error) bool {
	return errors.Is(err, dbscan.ErrInvalidRadius) || errors.Is(err, dbscan.ErrInvalidThreshold)
}

func parseRound(cfg *config.Config, epsText, minPtsText string) error {
	eps, err := strconv.ParseFloat(strings.TrimSpace(epsText), 64)
	if err != nil {
		return errors.WithHint(errors.Newf("epsilon %q is not a number", epsText), "enter a radius such as 2.5")
	}
	minPts, err := strconv.Atoi(strings.TrimSpace(minPtsText))
	if err != nil {
		return errors.WithHint(errors.Newf("min_pts %q is not an integer", minPtsText), "enter a count such as 4")
	}
	cfg.Cluster.Eps = eps
	cfg.Cluster.MinPts = minPts
	return cfg.Validate()
}
