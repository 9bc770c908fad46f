package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-sigpath/pkg/interaction"
)

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify [--] LABEL...",
		Short: "Show how interaction labels are interpreted",
		Long:  `Prints the sign, type tag and rewired flag the search assigns to each label.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "LABEL\tSIGN\tTYPE\tREWIRED")
			for _, label := range args {
				c := interaction.Classify(label)
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", label, c.Sign, c.Type, interaction.IsRewired(label))
			}
			return w.Flush()
		},
	}
}
