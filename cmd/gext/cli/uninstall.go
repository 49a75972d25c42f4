package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	uninstallSystem bool
	uninstallPath   string
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <uuid-or-url>",
	Short: "Remove an installed extension",
	Long: `Uninstall disables the extension (best-effort) and removes its
directory from the extensions directory.

Examples:
  gext uninstall drive-menu@gnome-shell-extensions.gcampax.github.com
  gext uninstall --system drive-menu@gnome-shell-extensions.gcampax.github.com`,
	Args: cobra.ExactArgs(1),
	RunE: runUninstall,
}

func init() {
	uninstallCmd.Flags().BoolVar(&uninstallSystem, "system", false, "Remove from the system-wide extensions directory")
	uninstallCmd.Flags().StringVar(&uninstallPath, "install-path", "", "Remove from a custom extensions directory")
	uninstallCmd.MarkFlagsMutuallyExclusive("system", "install-path")
	rootCmd.AddCommand(uninstallCmd)
}

func runUninstall(_ *cobra.Command, args []string) error {
	destRoot, err := destinationDir(uninstallSystem, uninstallPath)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	if err := client.Uninstall(ctx, args[0], destRoot); err != nil {
		return err
	}
	fmt.Printf("Uninstalled %s\n", args[0])
	return nil
}
