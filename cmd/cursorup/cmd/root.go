package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"cursorup/internal/config"
	"cursorup/internal/logger"
	"cursorup/internal/service/updater"
	"cursorup/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// logLevel selects the minimum severity of log output.
	logLevel string

	// rootCmd represents the base command for checking and applying updates.
	rootCmd = &cobra.Command{
		Use:   "cursorup",
		Short: "Keep the installed Cursor AppImage up to date.",
		Long: `Check the release source for a newer version of the installed AppImage
and apply it when one exists.

The installed version is read from the artifact's file name, the latest
version from the release endpoint in the configuration file. When the
remote version is newer, the new artifact is downloaded next to the old
one, verified, swapped in atomically, and the desktop launcher entry is
rewritten to the new path. When both versions match, nothing is touched.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			options := &updater.Options{
				ConfigPath: configPath,
			}

			return updater.Run(ctx, options)
		},
	}
)

// Execute runs the cursorup CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "log level (debug, info, warn, error)")
}
