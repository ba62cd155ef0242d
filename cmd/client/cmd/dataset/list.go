package dataset

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List datasets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := env(cmd)
		if err != nil {
			return err
		}

		items, err := e.Client.List(cmd.Context())
		if err != nil {
			return err
		}
		if e.JSON {
			return printJSON(cmd.OutOrStdout(), items)
		}

		if len(items) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No datasets")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tOPEN")
		for _, it := range items {
			fmt.Fprintf(w, "%d\t%s\t%s\n", it.ID, it.Name, yesNo(it.IsOpen))
		}
		return w.Flush()
	},
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
