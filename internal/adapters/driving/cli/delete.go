package cli

import (
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <document-id>",
	Short: "Remove a registered document and its stored bytes",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	if err := app.registry.Unregister(cmd.Context(), args[0]); err != nil {
		return err
	}
	cmd.Printf("deleted %s\n", args[0])
	return nil
}

var teardownCmd = &cobra.Command{
	Use:   "teardown",
	Short: "Remove all registered documents and stored bytes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := app.registry.Teardown(cmd.Context()); err != nil {
			return err
		}
		cmd.Println("all documents removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(teardownCmd)
}
