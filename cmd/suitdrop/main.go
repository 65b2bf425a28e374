package main

import (
	"fmt"
	"os"

	"github.com/iov-one/suitdrop"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "suitdrop",
		Short:         "Merkle airdrop claim and nft redeem contracts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		merkleCmd(),
		runCmd(),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), suitdrop.Version())
		},
	}
}
