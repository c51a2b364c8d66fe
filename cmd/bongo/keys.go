package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/phanxgames/bongo"
	"github.com/spf13/cobra"
)

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List the key names usable in manifests and their codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCODE\tHAND")
			for _, name := range bongo.KeyNames() {
				code, _ := bongo.KeyCode(name)
				fmt.Fprintf(w, "%s\t%d\t%s\n", name, code, bongo.ClassifyHand("", code))
			}
			return w.Flush()
		},
	}
}
