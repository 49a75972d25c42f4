package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gext-cli/gext"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the extensions known to the running session",
	Long: `List shows every extension the running GNOME Shell session knows
about, including system-wide ones and extensions in an error state.

Examples:
  gext list
  gext list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print machine-readable JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	known, err := client.List()
	if err != nil {
		return err
	}

	extensions := make([]gext.Extension, 0, len(known))
	for _, ext := range known {
		extensions = append(extensions, ext)
	}
	slices.SortFunc(extensions, func(a, b gext.Extension) int {
		switch {
		case a.UUID < b.UUID:
			return -1
		case a.UUID > b.UUID:
			return 1
		}
		return 0
	})

	if listJSON {
		return printJSON(os.Stdout, extensions)
	}
	printExtensionTable(os.Stdout, extensions)
	return nil
}

// printExtensionTable renders UUID, state, type, and version columns.
func printExtensionTable(w io.Writer, extensions []gext.Extension) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "UUID\tSTATE\tTYPE\tVERSION")
	for _, ext := range extensions {
		version := ext.Version
		if version == "" {
			version = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", ext.UUID, ext.State, ext.Type, version)
	}
	tw.Flush()
}

// printJSON writes indented JSON followed by a newline.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
