package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reloadCmd = &cobra.Command{
	Use:   "reload <uuid-or-url>",
	Short: "Ask the running session to reload an extension",
	Args:  cobra.ExactArgs(1),
	RunE:  runReload,
}

func init() {
	rootCmd.AddCommand(reloadCmd)
}

func runReload(_ *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	if err := client.Reload(ctx, args[0]); err != nil {
		return err
	}
	fmt.Printf("Reloaded %s\n", args[0])
	return nil
}
