package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = ""
	GitCommit = ""
)

var rootCmd = &cobra.Command{
	Use:     "tinyss",
	Short:   "SOCKS5 and encrypted-relay proxy client",
	Version: Version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
