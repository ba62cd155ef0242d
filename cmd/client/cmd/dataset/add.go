package dataset

import (
	"github.com/spf13/cobra"
)

var addValue string

var AddCmd = &cobra.Command{
	Use:   "add <id> <text>",
	Short: "Add a sentence to an open dataset",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := env(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		msg, err := e.Client.AddSentence(cmd.Context(), id, args[1], addValue)
		if err != nil {
			return err
		}
		return printMessage(cmd, e, msg)
	},
}

func init() {
	AddCmd.Flags().StringVar(&addValue, "value", "", "integer value of the sentence")
}
