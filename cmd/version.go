package cmd

import (
	"github.com/fancon-pi/fancon/internal/ui"
	"github.com/spf13/cobra"
)

// Version is overridden at build time using -ldflags "-X github.com/fancon-pi/fancon/cmd.Version=..."
var Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of fancon",
	Long:  `All software has versions. This is fancon's`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ui.Printfln(Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
