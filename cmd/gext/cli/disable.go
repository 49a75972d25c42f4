package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var disableCmd = &cobra.Command{
	Use:   "disable <uuid-or-url>",
	Short: "Disable an enabled extension",
	Args:  cobra.ExactArgs(1),
	RunE:  runDisable,
}

func init() {
	rootCmd.AddCommand(disableCmd)
}

func runDisable(_ *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	changed, err := client.Disable(ctx, args[0])
	if err != nil {
		return err
	}
	if !changed {
		fmt.Printf("%s was not enabled\n", args[0])
		return nil
	}
	fmt.Printf("Disabled %s\n", args[0])
	return nil
}
