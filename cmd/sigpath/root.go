package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-sigpath/pkg/logging"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sigpath",
		Short: "sigpath finds sign-consistent causal paths in pathway networks",
		Long: `sigpath links upstream perturbations to downstream expression changes by
searching a signed, labeled interaction network for paths whose propagated
sign agrees with the observed state of the genes they reach.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			if level == "" {
				return nil
			}
			parsed, err := logging.ParseLevel(level)
			if err != nil {
				return err
			}
			logging.DefaultLogger().SetLevel(parsed)
			return nil
		},
	}

	// Persistent flags (available to all commands)
	root.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides LOG_LEVEL")

	root.AddCommand(newDiscoverCmd(), newSubnetCmd(), newClassifyCmd())
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
