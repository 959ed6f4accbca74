// Package commands implements the dbscan subcommands.
package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TrevorS/dbscan"
	"github.com/TrevorS/dbscan/internal/config"
	"github.com/TrevorS/dbscan/internal/logger"
)

// SkipConfigAnnotation marks commands that run on built-in defaults and
// must not fail on a broken config file.
const SkipConfigAnnotation = "dbscan/skip-config"

type configKey struct{}

// WithConfig attaches the loaded configuration to ctx.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

func configFrom(ctx context.Context) *config.Config {
	if ctx != nil {
		if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok && cfg != nil {
			return cfg
		}
	}
	return config.Default()
}

// LoadConfig loads the file named by --config and applies the command's
// cluster flags on top.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	if cmd.Annotations[SkipConfigAnnotation] == "true" {
		return config.Default(), nil
	}
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	applyClusterFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func addClusterFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("eps", 0, "Neighborhood radius (overrides cluster.eps)")
	cmd.Flags().Int("min-pts", 0, "Points needed for a core point, counting itself (overrides cluster.min_pts)")
	cmd.Flags().String("metric", "", "Distance metric: euclidean, manhattan, chebyshev, minkowski:<p>")
}

func applyClusterFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("eps") {
		cfg.Cluster.Eps, _ = flags.GetFloat64("eps")
	}
	if flags.Changed("min-pts") {
		cfg.Cluster.MinPts, _ = flags.GetInt("min-pts")
	}
	if flags.Changed("metric") {
		cfg.Cluster.Metric, _ = flags.GetString("metric")
	}
}

// clusterSource runs one clustering pass under a fresh run id.
func clusterSource(src dbscan.Source, cfg *config.Config) (*dbscan.Result, error) {
	engine, err := cfg.EngineConfig()
	if err != nil {
		return nil, err
	}
	runID := uuid.NewString()
	engine.Logger = logger.Named("engine").With(zap.String("run_id", runID))

	logger.Logger.Infow("clustering",
		"run_id", runID,
		"points", src.Len(),
		"eps", cfg.Cluster.Eps,
		"min_pts", cfg.Cluster.MinPts,
		"metric", cfg.Cluster.Metric)

	start := time.Now()
	res, err := dbscan.ClusterSource(src, engine)
	if err != nil {
		return nil, err
	}
	logger.Logger.Infow("clustered",
		"run_id", runID,
		"clusters", res.NumClusters,
		"noise", res.NumNoise(),
		"elapsed", time.Since(start))
	return res, nil
}

// writeSummary prints one table row per cluster followed by the noise count.
func writeSummary(w io.Writer, res *dbscan.Result, summaries []dbscan.ClusterSummary) error {
	fmt.Fprintf(w, "%d clusters, %d core points, %d noise points\n",
		res.NumClusters, res.NumCore(), res.NumNoise())
	if len(summaries) == 0 {
		return nil
	}

	data := pterm.TableData{{"Cluster", "Size", "Core", "Centroid", "Min", "Max"}}
	for _, s := range summaries {
		data = append(data, []string{
			strconv.FormatUint(uint64(s.ID), 10),
			strconv.Itoa(s.Size),
			strconv.Itoa(s.Core),
			formatVector(s.Centroid),
			formatVector(s.Min),
			formatVector(s.Max),
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, table)
	return err
}

func formatVector(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'g', 4, 64)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
