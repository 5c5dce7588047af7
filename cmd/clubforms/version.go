package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/clubforms"
	"github.com/aretw0/clubforms/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of clubforms",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if isTerminal(out) {
			tui.PrintBanner(out)
		}
		fmt.Fprintf(out, "clubforms version %s\n", strings.TrimSpace(clubforms.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
