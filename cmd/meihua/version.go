package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/meihua"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of meihua",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "meihua version %s\n", strings.TrimSpace(meihua.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
