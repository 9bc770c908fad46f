package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-sigpath/pkg/logging"
	"github.com/dd0wney/cluso-sigpath/pkg/sif"
	"github.com/dd0wney/cluso-sigpath/pkg/subnetwork"
)

func newSubnetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subnet",
		Short: "Extract the subnetwork connecting a node list",
		Long: `Keeps every edge of the network whose endpoints are both in the node list
and prints it in SIF format, or writes it with --out.`,
		Args: cobra.NoArgs,
		RunE: runSubnet,
	}

	f := cmd.Flags()
	f.String("network", "", "Pathway network (.sif, or .sif.sz)")
	f.String("nodes", "", "Node list file")
	f.StringP("out", "o", "", "Write the subnetwork here instead of stdout")
	f.String("dot", "", "Write the subnetwork as Graphviz DOT")
	_ = cmd.MarkFlagRequired("network")
	_ = cmd.MarkFlagRequired("nodes")
	return cmd
}

func runSubnet(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	netPath, _ := f.GetString("network")
	nodesPath, _ := f.GetString("nodes")
	outPath, _ := f.GetString("out")
	dotPath, _ := f.GetString("dot")

	logger := logging.DefaultLogger().With(logging.Operation("subnet"))

	net, err := sif.OpenNetwork(netPath, nil)
	if err != nil {
		return err
	}
	nodes, err := sif.OpenNodeSet(nodesPath)
	if err != nil {
		return err
	}

	sub := subnetwork.NewExtractor(nil).Subnetwork(net, nodes)
	g := subnetwork.ToGraph(sub, false)
	logger.Info("subnetwork extracted",
		logging.Nodes(len(g.Nodes())),
		logging.Edges(sub.Len()),
		logging.Int("components", len(g.Components())),
	)

	if dotPath != "" {
		data, err := subnetwork.ToGraph(sub, true).MarshalDOT("subnet")
		if err != nil {
			return fmt.Errorf("encode dot: %w", err)
		}
		if err := os.WriteFile(dotPath, data, 0o644); err != nil {
			return err
		}
	}

	if outPath != "" {
		return sif.CreateNetworkFile(outPath, sub)
	}
	return sif.WriteNetwork(cmd.OutOrStdout(), sub)
}
