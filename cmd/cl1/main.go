// Command cl1 reads, checks and stores CL1 programs.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/cl1/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
