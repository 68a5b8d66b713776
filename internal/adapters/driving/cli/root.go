// Package cli provides the command-line driving adapter. Commands talk
// to the core exclusively through the driving ports; all wiring of
// stores and PDF backends happens here.
package cli

import (
	"github.com/spf13/cobra"

	configfile "github.com/pastepdf/pastepdf/internal/adapters/driven/config/file"
	"github.com/pastepdf/pastepdf/internal/adapters/driven/filestore/disk"
	"github.com/pastepdf/pastepdf/internal/adapters/driven/pdf/fitz"
	"github.com/pastepdf/pastepdf/internal/adapters/driven/pdf/fpdf"
	pdfvalidate "github.com/pastepdf/pastepdf/internal/adapters/driven/pdf/pdfcpu"
	"github.com/pastepdf/pastepdf/internal/adapters/driven/storage/sqlite"
	"github.com/pastepdf/pastepdf/internal/core/ports/driving"
	"github.com/pastepdf/pastepdf/internal/core/services"
	"github.com/pastepdf/pastepdf/internal/logger"
)

const version = "0.1.0"

var (
	configDir   string
	verboseMode bool

	// app holds the wired services, built once in the root
	// PersistentPreRunE and shared by all subcommands.
	app struct {
		cfg      configfile.Config
		registry driving.RegistryService
		renderer driving.RendererService
		composer driving.ComposerService
		closers  []func() error
	}
)

var rootCmd = &cobra.Command{
	Use:   "pastepdf",
	Short: "Compose new PDFs from pages of uploaded documents",
	Long: `PastePDF assembles a new PDF by arranging pages drawn from multiple
source PDFs onto a canvas (position, size, rotation, paint order) and
exports the composition as a single merged document, preserving vector
quality.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseMode)
		return initApp()
	},
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return closeApp()
	},
}

func initApp() error {
	configStore, err := configfile.NewConfigStore(configDir)
	if err != nil {
		return err
	}
	cfg, err := configStore.Load()
	if err != nil {
		return err
	}

	files, err := disk.NewFileStore(cfg.StorageDir)
	if err != nil {
		return err
	}
	store, err := sqlite.NewStore(cfg.DataDir)
	if err != nil {
		return err
	}

	pages := fitz.NewPageSource()
	leases := services.NewLeaseTable()

	app.cfg = cfg
	app.registry = services.NewRegistryService(store, files, pages, pdfvalidate.NewValidator(), leases, cfg.MaxUploadBytes)
	app.renderer = services.NewRendererService(store, pages, leases)
	app.composer = services.NewComposerService(store, fpdf.NewBuilder(), leases)
	app.closers = []func() error{store.Close}
	return nil
}

func closeApp() error {
	var firstErr error
	for _, close := range app.closers {
		if err := close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	app.closers = nil
	return firstErr
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.pastepdf)")
	rootCmd.PersistentFlags().BoolVarP(&verboseMode, "verbose", "v", false, "enable verbose logging")
}
