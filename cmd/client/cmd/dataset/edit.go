package dataset

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"datasets/internal/app/client"
)

var (
	editName      string
	editOpen      bool
	editUseValue  bool
	editValueName string
	editAdd       []string
	editSet       []string
	editRemove    []int64
)

var EditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a dataset",
	Long: `Change dataset fields and sentences in one atomic request.
Only flags that are given are sent.`,
	Example: `  datasets edit 3 --name final --add "2:new one" --set "17=fixed text" --remove 12`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := env(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		req, err := buildEditRequest(cmd)
		if err != nil {
			return err
		}
		if req.Password, err = readPassword(cmd, e); err != nil {
			return err
		}

		msg, err := e.Client.Edit(cmd.Context(), id, req)
		if err != nil {
			return err
		}
		return printMessage(cmd, e, msg)
	},
}

func buildEditRequest(cmd *cobra.Command) (client.EditRequest, error) {
	var req client.EditRequest
	flags := cmd.Flags()

	if flags.Changed("name") {
		req.NewName = &editName
	}
	if flags.Changed("open") {
		req.NewIsOpen = &editOpen
	}
	if flags.Changed("use-value") {
		req.NewUseValue = &editUseValue
	}
	if flags.Changed("value-name") {
		req.NewValueName = &editValueName
	}

	for _, s := range editAdd {
		req.NewSentences = append(req.NewSentences, client.ParseSentence(s))
	}
	for _, s := range editSet {
		rawID, rest, ok := strings.Cut(s, "=")
		if !ok {
			return client.EditRequest{}, fmt.Errorf("--set %q: want id=[value:]text", s)
		}
		sentenceID, err := parseID(rawID)
		if err != nil {
			return client.EditRequest{}, fmt.Errorf("--set %q: bad sentence id", s)
		}
		in := client.ParseSentence(rest)
		req.EditedSentences = append(req.EditedSentences, client.EditedSentence{
			ID:    sentenceID,
			Text:  in.Text,
			Value: in.Value,
		})
	}
	for _, sid := range editRemove {
		req.SentencesToRemove = append(req.SentencesToRemove, sid)
	}
	return req, nil
}

func init() {
	f := EditCmd.Flags()
	f.StringVar(&editName, "name", "", "new dataset name")
	f.BoolVar(&editOpen, "open", false, "new open flag")
	f.BoolVar(&editUseValue, "use-value", false, "new use-value flag")
	f.StringVar(&editValueName, "value-name", "", "new value label")
	f.StringArrayVar(&editAdd, "add", nil, `new sentence as "[value:]text", repeatable`)
	f.StringArrayVar(&editSet, "set", nil, `replace sentence as "id=[value:]text", repeatable`)
	f.Int64SliceVar(&editRemove, "remove", nil, "sentence ids to remove")
}
