package dataset

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"datasets/internal/app/client"
)

var (
	createName      string
	createOpen      bool
	createUseValue  bool
	createValueName string
	createSentences []string
	createFile      string
)

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a dataset",
	Long: `Create a dataset from --sentence flags and/or a file with one
sentence per line. A sentence may carry a value as "value:text".`,
	Example: `  datasets create --name reviews --use-value --value-name stars \
    --sentence "5:great" --sentence "1:awful"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := env(cmd)
		if err != nil {
			return err
		}

		sentences := make([]client.SentenceInput, 0, len(createSentences))
		for _, s := range createSentences {
			sentences = append(sentences, client.ParseSentence(s))
		}
		if createFile != "" {
			f, err := os.Open(createFile)
			if err != nil {
				return fmt.Errorf("open sentences file: %w", err)
			}
			fromFile, err := client.ReadSentences(f)
			_ = f.Close()
			if err != nil {
				return err
			}
			sentences = append(sentences, fromFile...)
		}

		pw, err := readPassword(cmd, e)
		if err != nil {
			return err
		}

		req := client.CreateRequest{
			Name:      createName,
			Password:  pw,
			IsOpen:    createOpen,
			UseValue:  createUseValue,
			Sentences: sentences,
		}
		if createValueName != "" {
			req.ValueName = &createValueName
		}

		id, err := e.Client.Create(cmd.Context(), req)
		if err != nil {
			return err
		}
		if e.JSON {
			return printJSON(cmd.OutOrStdout(), map[string]any{"message": "Dataset added successfully", "id": id})
		}
		_, err = okColor.Fprintf(cmd.OutOrStdout(), "Dataset added successfully (id %d)\n", id)
		return err
	},
}

func init() {
	f := CreateCmd.Flags()
	f.StringVar(&createName, "name", "", "dataset name")
	f.BoolVar(&createOpen, "open", false, "let anyone add sentences")
	f.BoolVar(&createUseValue, "use-value", false, "sentences carry integer values")
	f.StringVar(&createValueName, "value-name", "", "label for sentence values")
	f.StringArrayVar(&createSentences, "sentence", nil, `sentence as "text" or "value:text", repeatable`)
	f.StringVar(&createFile, "file", "", "file with one sentence per line")
	_ = CreateCmd.MarkFlagRequired("name")
}
