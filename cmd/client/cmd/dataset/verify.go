package dataset

import (
	"github.com/spf13/cobra"
)

var VerifyCmd = &cobra.Command{
	Use:   "verify <id>",
	Short: "Check a dataset password",
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

		msg, err := e.Client.Verify(cmd.Context(), id, pw)
		if err != nil {
			return err
		}
		return printMessage(cmd, e, msg)
	},
}
