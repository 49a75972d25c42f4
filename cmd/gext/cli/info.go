package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gext-cli/gext"
)

var infoJSON bool

var infoCmd = &cobra.Command{
	Use:     "info <uuid-or-url>",
	Aliases: []string{"show"},
	Short:   "Show catalog metadata for an extension",
	Long: `Info fetches the extension's metadata from the catalog. When a
running session knows the extension, its local state and installation
path are shown as well.

Examples:
  gext info drive-menu@gnome-shell-extensions.gcampax.github.com
  gext info --json https://extensions.gnome.org/extension/7/removable-drive-menu/`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "Print machine-readable JSON")
	rootCmd.AddCommand(infoCmd)
}

// infoOutput is the JSON shape of the info command.
type infoOutput struct {
	gext.InfoResult
	Local *gext.Extension `json:"local,omitempty"`
}

func runInfo(_ *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	info, local, err := client.Info(ctx, args[0])
	if err != nil {
		return err
	}

	if infoJSON {
		return printJSON(os.Stdout, infoOutput{InfoResult: info, Local: local})
	}
	printInfo(os.Stdout, info, local)
	return nil
}

func printInfo(w io.Writer, info gext.InfoResult, local *gext.Extension) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "UUID:\t%s\n", info.UUID)
	fmt.Fprintf(tw, "Name:\t%s\n", info.Name)
	if info.Version != "" {
		fmt.Fprintf(tw, "Version:\t%s\n", info.Version)
	}
	if info.Link != "" {
		fmt.Fprintf(tw, "Link:\t%s\n", info.Link)
	}
	if info.CreatorURL != "" {
		fmt.Fprintf(tw, "Creator:\t%s\n", info.CreatorURL)
	}
	if local != nil {
		fmt.Fprintf(tw, "State:\t%s\n", local.State)
		if local.Path != "" {
			fmt.Fprintf(tw, "Path:\t%s\n", local.Path)
		}
	} else {
		fmt.Fprintf(tw, "State:\tnot in the running session\n")
	}
	tw.Flush()
	if info.Description != "" {
		fmt.Fprintf(w, "\n%s\n", info.Description)
	}
}
