package dataset

import (
	"github.com/spf13/cobra"
)

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a dataset and all its sentences",
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
		pw, err := readPassword(cmd, e)
		if err != nil {
			return err
		}

		msg, err := e.Client.Delete(cmd.Context(), id, pw)
		if err != nil {
			return err
		}
		return printMessage(cmd, e, msg)
	},
}
