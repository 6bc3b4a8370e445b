// Command admin manages Inkwell accounts from the command line.
package main

import (
	"os"

	"inkwell/cmd/admin/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
