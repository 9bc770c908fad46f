package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-sigpath/pkg/config"
	"github.com/dd0wney/cluso-sigpath/pkg/logging"
	"github.com/dd0wney/cluso-sigpath/pkg/metrics"
	"github.com/dd0wney/cluso-sigpath/pkg/pipeline"
	"github.com/dd0wney/cluso-sigpath/pkg/sif"
)

func newDiscoverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Search for sign-consistent paths from upstream to downstream genes",
		Long: `Loads a run configuration (or builds one from flags), searches the network
from every signed upstream gene and writes the discovered subnetwork.
Without --out the subnetwork is printed to stdout in SIF format.`,
		Args: cobra.NoArgs,
		RunE: runDiscover,
	}

	f := cmd.Flags()
	f.StringP("config", "c", "", "YAML run configuration")
	f.String("network", "", "Pathway network (.sif, or .sif.sz)")
	f.String("up", "", "Upstream heat file")
	f.String("down", "", "Downstream heat file")
	f.String("targets", "", "Target gene list (default: every downstream gene)")
	f.String("restrict", "", "Node list limiting the network")
	f.Int("depth", config.DefaultMaxDepth, "Maximum search depth")
	f.Int("workers", config.DefaultWorkers, "Sources searched concurrently")
	f.Bool("negate-inhibitory", false, "Let inhibitory edges negate the carried sign")
	f.String("solver", "", "Steiner tree solver script")
	f.StringP("out", "o", "", "Write the subnetwork here instead of stdout")
	f.String("dot", "", "Write the subnetwork as Graphviz DOT")
	f.String("metrics", "", "Write Prometheus metrics in textfile format")
	return cmd
}

func runDiscover(cmd *cobra.Command, _ []string) error {
	cfg, err := discoverConfig(cmd)
	if err != nil {
		return err
	}

	logger := logging.DefaultLogger()
	if !cmd.Flags().Changed("log-level") {
		if level, err := logging.ParseLevel(cfg.LogLevel); err == nil {
			logger.SetLevel(level)
		}
	}

	report, err := pipeline.New(cfg, pipeline.WithLogger(logger), pipeline.WithMetrics(metrics.DefaultRegistry())).Run(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cfg.Output.Network == "" {
		return sif.WriteNetwork(out, report.Subnetwork)
	}
	fmt.Fprintf(out, "run %s: %d true paths, %d false paths, %d edges written to %s\n",
		report.RunID, len(report.TruePaths), len(report.FalsePaths), report.Subnetwork.Len(), cfg.Output.Network)
	return nil
}

// discoverConfig loads --config when given and lets explicitly set flags
// override it.
func discoverConfig(cmd *cobra.Command) (*config.Config, error) {
	f := cmd.Flags()
	cfg := config.Default()
	if path, _ := f.GetString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	strFlags := map[string]*string{
		"network":  &cfg.Network,
		"up":       &cfg.UpHeats,
		"down":     &cfg.DownHeats,
		"targets":  &cfg.Targets,
		"restrict": &cfg.Restrict,
		"solver":   &cfg.Solver.Script,
		"out":      &cfg.Output.Network,
		"dot":      &cfg.Output.DOT,
		"metrics":  &cfg.Output.Metrics,
	}
	for name, dst := range strFlags {
		if f.Changed(name) {
			*dst, _ = f.GetString(name)
		}
	}
	if f.Changed("depth") {
		cfg.Search.MaxDepth, _ = f.GetInt("depth")
	}
	if f.Changed("workers") {
		cfg.Search.Workers, _ = f.GetInt("workers")
	}
	if f.Changed("negate-inhibitory") {
		cfg.Search.NegateInhibitory, _ = f.GetBool("negate-inhibitory")
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration:\n%w", err)
	}
	return cfg, nil
}
