package dataset

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var GetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a dataset and its sentences",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := env(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		ds, err := e.Client.Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		if e.JSON {
			return printJSON(cmd.OutOrStdout(), ds)
		}

		out := cmd.OutOrStdout()
		headColor.Fprintf(out, "%s", ds.Name)
		fmt.Fprintf(out, " (id %d, open: %s)\n\n", ds.ID, yesNo(ds.IsOpen))

		valueHeader := "VALUE"
		if ds.ValueName != nil && *ds.ValueName != "" {
			valueHeader = *ds.ValueName
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		if ds.UseValue {
			fmt.Fprintf(w, "ID\tTEXT\t%s\n", valueHeader)
		} else {
			fmt.Fprintln(w, "ID\tTEXT")
		}
		for _, s := range ds.Sentences {
			if ds.UseValue {
				fmt.Fprintf(w, "%d\t%s\t%d\n", s.ID, s.Text, s.Value)
			} else {
				fmt.Fprintf(w, "%d\t%s\n", s.ID, s.Text)
			}
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%d sentence(s)\n", len(ds.Sentences))
		return nil
	},
}
