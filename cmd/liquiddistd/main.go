package main

import (
	"fmt"
	"os"

	"github.com/tokenize-x/liquiddist/cmd/liquiddistd/cosmoscmd"
)

func main() {
	rootCmd := cosmoscmd.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		//nolint:errcheck // we are already exiting the app so we don't check error.
		fmt.Fprintln(rootCmd.OutOrStderr(), err)
		os.Exit(1)
	}
}
