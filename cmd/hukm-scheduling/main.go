// Command hukm-scheduling builds and solves nurse-roster scenarios on top
// of the internal/roster driver.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hukm-scheduling",
		Short: "Build and solve nurse-roster scheduling scenarios",
	}
	root.AddCommand(newBuildCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
