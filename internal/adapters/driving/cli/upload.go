package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file.pdf>",
	Short: "Register a PDF as a source document",
	Long: `Register a PDF file as a source document for later compositions.

Prints the new document id, which thumbnail, export, and delete
commands reference.

Examples:
  pastepdf upload report.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func runUpload(cmd *cobra.Command, args []string) error {
	path := args[0]
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return fmt.Errorf("%s: only PDF files are supported", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	result, err := app.registry.Register(cmd.Context(), filepath.Base(path), data)
	if err != nil {
		return err
	}

	cmd.Printf("%s  %s  (%d pages)\n", result.ID, result.Name, result.PageCount)
	for _, page := range result.Pages {
		cmd.Printf("  page %d: %.1f x %.1f pt\n", page.PageIndex, page.Width, page.Height)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}
