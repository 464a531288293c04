package qrgen

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Badsnus/qrgen-studio/internal/adapters/config"
	"github.com/Badsnus/qrgen-studio/pkg/logger"
)

var version = "dev"

// Execute runs the qrgen CLI.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var configPath string
	app := &App{}

	root := &cobra.Command{
		Use:           "qrgen",
		Short:         "Build, preview and export styled QR codes",
		Version:       version,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := config.InitLogger(); err != nil {
				return err
			}
			app.Config = cfg
			app.Logger = logger.MustNamed("cli")
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.Close()
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./config.yaml)")

	root.AddCommand(
		newEncodeCmd(app),
		newHintsCmd(app),
		newTypesCmd(),
		newPresetsCmd(),
		newExportCmd(app),
		newPreviewCmd(app),
		newHistoryCmd(app),
		newCheckoutCmd(app),
		newCaptureCmd(app),
		newClaimCmd(app),
		newStatsCmd(app),
	)
	return root
}
