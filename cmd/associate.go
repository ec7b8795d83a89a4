package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tinyss/tinyss/address"
	"github.com/tinyss/tinyss/client"
)

var associateCmd = &cobra.Command{
	Use:     "associate <target:port>",
	Short:   "negotiate a UDP association and print the relay endpoint",
	Example: "  tinyss associate -s 127.0.0.1:1080 8.8.8.8:53",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := address.Parse(args[0])
		if err != nil {
			return err
		}
		c, bound, err := client.DialSocks5UDP(cmd.Context(), target, socksAddr)
		if err != nil {
			return err
		}
		defer c.Close()
		fmt.Println(bound.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(associateCmd)

	associateCmd.Flags().StringVarP(&socksAddr, "socks", "s", "127.0.0.1:1080", "SOCKS5 proxy address")
}
