package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pastepdf/pastepdf/internal/core/domain"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <layout.json>",
	Short: "Export a composition as a merged PDF",
	Long: `Export a composition described by a JSON layout file.

The layout has the shape:

  {
    "canvas_width": 595,
    "canvas_height": 842,
    "background_color": "#ffffff",
    "items": [
      {"file_id": "...", "page_num": 0,
       "x": 0, "y": 0, "width": 100, "height": 100, "rotation": 0}
    ]
  }

Items paint in list order; later items draw on top of earlier ones.
Items referencing unknown documents or out-of-range pages are skipped.

Examples:
  pastepdf export layout.json -o merged.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	var model domain.CompositionModel
	if err := json.Unmarshal(data, &model); err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	result, err := app.composer.Export(cmd.Context(), model)
	if err != nil {
		return err
	}

	if err := os.WriteFile(exportOutput, result.PDF, 0600); err != nil {
		return err
	}
	cmd.Printf("wrote %s: %d items placed, %d skipped, %d bytes\n", exportOutput, result.Placed, result.Skipped, len(result.PDF))
	return nil
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "merged.pdf", "output PDF file")
	rootCmd.AddCommand(exportCmd)
}
