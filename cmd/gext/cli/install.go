package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/gext-cli/gext"
)

var (
	installSystem   bool
	installPath     string
	installMultiple bool
	installNoEnable bool
)

var installCmd = &cobra.Command{
	Use:   "install <uuid-or-url>",
	Short: "Download and install an extension",
	Long: `Install resolves the identifier against the catalog, downloads the
packaged archive, and extracts it under the extensions directory.

The extension is enabled afterwards unless --no-enable is given; a failure
to enable (say, no running session) is reported as a warning and does not
undo the installation.

Examples:
  gext install drive-menu@gnome-shell-extensions.gcampax.github.com
  gext install https://extensions.gnome.org/extension/7/removable-drive-menu/
  gext install --system https://extensions.gnome.org/extension/7/removable-drive-menu/
  gext install --install-path /tmp/exts drive-menu@gnome-shell-extensions.gcampax.github.com`,
	Args: cobra.ExactArgs(1),
	RunE: runInstall,
}

func init() {
	installCmd.Flags().BoolVar(&installSystem, "system", false, "Install into the system-wide extensions directory")
	installCmd.Flags().StringVar(&installPath, "install-path", "", "Install into a custom extensions directory")
	installCmd.Flags().BoolVar(&installMultiple, "multiple", false, "Install even if the session already has the extension elsewhere")
	installCmd.Flags().BoolVar(&installNoEnable, "no-enable", false, "Do not enable the extension after installing")
	installCmd.MarkFlagsMutuallyExclusive("system", "install-path")
	rootCmd.AddCommand(installCmd)
}

func runInstall(_ *cobra.Command, args []string) error {
	destRoot, err := destinationDir(installSystem, installPath)
	if err != nil {
		return err
	}

	callback, finish := newDownloadProgress()
	client, err := newClient(gext.WithProgress(callback))
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	var opts []gext.InstallOption
	if installMultiple {
		opts = append(opts, gext.WithMultiple())
	}
	if installNoEnable {
		opts = append(opts, gext.WithoutEnable())
	}

	result, err := client.Install(ctx, args[0], destRoot, opts...)
	finish()
	if err != nil {
		return err
	}

	fmt.Printf("Installed %s (%s, %s) to %s\n",
		result.UUID, result.Name,
		//nolint:gosec // G115: io.Copy never returns a negative count
		humanize.IBytes(uint64(result.DownloadedBytes)),
		result.Path)
	if !installNoEnable && !result.Enabled {
		fmt.Println("Warning: the extension could not be enabled; run `gext enable` once a session is available")
	}
	return nil
}
