package cli

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered source documents",
	RunE:  runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	docs, err := app.registry.List(cmd.Context())
	if err != nil {
		return err
	}

	if len(docs) == 0 {
		cmd.Println("no documents registered")
		return nil
	}
	for _, doc := range docs {
		cmd.Printf("%s  %s  (%d pages)\n", doc.ID, doc.Name, doc.PageCount)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(listCmd)
}
