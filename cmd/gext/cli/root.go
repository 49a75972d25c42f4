// Package cli implements the gext command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gext-cli/gext"
	"github.com/gext-cli/gext/cmd/gext/cli/config"
)

// Build information set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var verbose bool

// envKeyReplacer maps config keys like catalog.url to GEXT_CATALOG_URL.
var envKeyReplacer = strings.NewReplacer(".", "_")

var rootCmd = &cobra.Command{
	Use:   "gext",
	Short: "Manage GNOME Shell extensions",
	Long: `Gext installs, removes, and toggles GNOME Shell extensions.

Extensions are identified by their UUID or by their extensions.gnome.org
page URL. Archives are downloaded from the catalog and extracted under the
per-user extensions directory unless told otherwise.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose debug logging")
	rootCmd.Version = version
}

// initConfig loads the XDG config file and environment overrides. A
// missing config file is fine; defaults apply.
func initConfig() {
	viper.SetDefault("catalog.url", "")
	viper.SetDefault("install.dir", "")
	viper.SetDefault("progress", "auto")

	viper.SetEnvPrefix("GEXT")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	configDir, err := config.Dir()
	if err != nil {
		return
	}
	viper.SetConfigFile(filepath.Join(configDir, "config.yaml"))
	//nolint:errcheck // a missing or unreadable config file means defaults
	viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
	}
	return err
}

// newClient creates a gext client with configured options.
func newClient(extra ...gext.ClientOption) (*gext.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	opts := []gext.ClientOption{
		gext.WithUserAgent("gext/" + version),
	}
	if cfg.Catalog.URL != "" {
		opts = append(opts, gext.WithCatalogBaseURL(cfg.Catalog.URL))
	}
	if verbose {
		opts = append(opts, gext.WithLogger(
			slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})),
		))
	} else {
		opts = append(opts, gext.WithLogger(
			slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
		))
	}
	opts = append(opts, extra...)
	return gext.NewClient(opts...)
}

// destinationDir picks the extensions directory from the install/uninstall
// destination flags, falling back to the configured or per-user default.
func destinationDir(system bool, installPath string) (string, error) {
	switch {
	case installPath != "":
		return installPath, nil
	case system:
		return config.SystemExtensionsDir, nil
	default:
		cfg, err := config.Load()
		if err != nil {
			return "", fmt.Errorf("load config: %w", err)
		}
		if cfg.Install.Dir != "" {
			return cfg.Install.Dir, nil
		}
		return config.UserExtensionsDir()
	}
}

// signalContext returns a context that is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// formatError converts gext errors to user-friendly messages.
func formatError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, gext.ErrInvalidIdentifier):
		return fmt.Sprintf("Error: %v (expected an extension UUID or an extensions.gnome.org URL)", err)
	case errors.Is(err, gext.ErrNotFound):
		return fmt.Sprintf("Error: %v", err)
	case errors.Is(err, gext.ErrAlreadyExists):
		return fmt.Sprintf("Error: %v", err)
	case errors.Is(err, gext.ErrPathTraversal),
		errors.Is(err, gext.ErrAbsolutePath),
		errors.Is(err, gext.ErrUnsafeTarget):
		return fmt.Sprintf("Error: refusing to extract unsafe archive: %v", err)
	case errors.Is(err, gext.ErrNoSession):
		return "Error: no GNOME Shell session reachable on the session bus"
	case errors.Is(err, gext.ErrRemote):
		return fmt.Sprintf("Error: %v", err)
	case errors.Is(err, context.Canceled):
		return "Error: operation canceled"
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
