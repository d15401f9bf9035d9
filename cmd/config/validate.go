package config

import (
	"github.com/fancon-pi/fancon/internal/configuration"
	"github.com/fancon-pi/fancon/internal/ui"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validates the current configuration",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// note: config file path parameter comes from the root command (-c)
		config, err := configuration.LoadConfig()
		if err != nil {
			return err
		}
		if path := configuration.ConfigFileUsed(); path != "" {
			ui.Info("Using configuration file at: %s", path)
		} else {
			ui.Info("Using environment variables only")
		}

		if err := configuration.Validate(config); err != nil {
			return err
		}

		ui.Success("Config looks good! :)")
		return nil
	},
}

func init() {
	Command.AddCommand(validateCmd)
}
