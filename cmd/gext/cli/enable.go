package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var enableCmd = &cobra.Command{
	Use:   "enable <uuid-or-url>",
	Short: "Enable an installed extension",
	Args:  cobra.ExactArgs(1),
	RunE:  runEnable,
}

func init() {
	rootCmd.AddCommand(enableCmd)
}

func runEnable(_ *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	changed, err := client.Enable(ctx, args[0])
	if err != nil {
		return err
	}
	if !changed {
		fmt.Printf("%s is already enabled\n", args[0])
		return nil
	}
	fmt.Printf("Enabled %s\n", args[0])
	return nil
}
