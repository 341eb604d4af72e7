package main

import (
	"github.com/meikuraledutech/flow/internal/config"
	"github.com/meikuraledutech/flow/internal/observability"
	"github.com/meikuraledutech/flow/internal/ui"
	"github.com/meikuraledutech/flow/palette"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "0.1.0"

var (
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "flowctl",
		Short: "flowctl — workflow canvas engine",
		Long: ui.Title.Sprint("flowctl") + " — serve and inspect the workflow canvas engine\n" +
			ui.Muted.Sprint("Browse node templates, manage the schema, and run the canvas API"),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.LoadFile(cfgFile)
			if err != nil {
				return err
			}
			l, err := observability.NewLogger(c.Logger)
			if err != nil {
				return err
			}
			cfg, logger = c, l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				observability.Sync(logger)
			}
		},
	}

	root.SetVersionTemplate("flowctl {{ .Version }}\n")
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to a TOML or YAML config file")

	root.AddCommand(
		serveCmd(),
		paletteCmd(),
		schemaCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	if err := newRootCmd().Execute(); err != nil {
		ui.Err.Printf("flowctl: %v\n", err)
		return err
	}
	return nil
}

func loadCatalog() (*palette.Catalog, error) {
	return palette.LoadAll(cfg.Palette.Dir, logger.Named("palette"))
}
