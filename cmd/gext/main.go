// Command gext manages GNOME Shell extensions from the terminal.
package main

import (
	"os"

	"github.com/gext-cli/gext/cmd/gext/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
