package cmd

import (
	"github.com/fancon-pi/fancon/cmd/config"
	"github.com/fancon-pi/fancon/cmd/global"
	"github.com/fancon-pi/fancon/cmd/sensor"
	"github.com/fancon-pi/fancon/internal"
	"github.com/fancon-pi/fancon/internal/configuration"
	"github.com/fancon-pi/fancon/internal/failure"
	"github.com/fancon-pi/fancon/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"os"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fancon",
	Short: "A daemon to switch a fan based on the CPU temperature.",
	Long: `fancon is a simple daemon that switches a fan connected to a GPIO pin
on and off based on the CPU temperature, using a hysteresis between
a switch-on and a switch-off threshold.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	// this is the default command to run when no subcommand is specified
	RunE: func(cmd *cobra.Command, args []string) error {
		setupUi()
		printHeader()
		return internal.RunDaemon()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&global.CfgFile, "config", "c", "", "config file (default is fancon.yaml in ., $HOME or /etc/fancon/)")
	rootCmd.PersistentFlags().BoolVarP(&global.NoColor, "no-color", "", false, "Disable all terminal output coloration")
	rootCmd.PersistentFlags().BoolVarP(&global.NoStyle, "no-style", "", false, "Disable all terminal output styling")
	rootCmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "More verbose output")

	rootCmd.AddCommand(config.Command)
	rootCmd.AddCommand(sensor.Command)
}

func setupUi() {
	ui.SetDebugEnabled(global.Verbose)

	if global.NoColor {
		pterm.DisableColor()
	}
	if global.NoStyle {
		pterm.DisableStyling()
	}
}

func printHeader() {
	pterm.DefaultHeader.Println("fancon")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.OnInitialize(func() {
		configuration.InitConfig(global.CfgFile)
	})

	if err := rootCmd.Execute(); err != nil {
		ui.Error("%v", err)
		os.Exit(failure.ExitCode(err))
	}
}
