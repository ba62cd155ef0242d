package dataset

import (
	"github.com/spf13/cobra"
)

var HealthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the server is up",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := env(cmd)
		if err != nil {
			return err
		}
		if err := e.Client.Health(cmd.Context()); err != nil {
			return err
		}
		if e.JSON {
			return printJSON(cmd.OutOrStdout(), map[string]string{"status": "OK"})
		}
		_, err = okColor.Fprintln(cmd.OutOrStdout(), "Server is healthy")
		return err
	},
}
