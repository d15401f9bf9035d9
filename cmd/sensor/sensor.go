package sensor

import (
	"fmt"

	"github.com/fancon-pi/fancon/internal/configuration"
	"github.com/fancon-pi/fancon/internal/failure"
	"github.com/fancon-pi/fancon/internal/sensors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var sensorPath string

var Command = &cobra.Command{
	Use:   "sensor",
	Short: "Print the current temperature in °C",
	Long: `Reads the temperature file once and prints the value in whole degrees Celsius.
By default the file configured as TEMPERATURE_FILE is used.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		path, err := resolvePath(sensorPath)
		if err != nil {
			return err
		}

		value, err := sensors.NewFileSensor(path).GetValue()
		if err != nil {
			return err
		}
		fmt.Printf("%d\n", value)
		return nil
	},
}

func init() {
	Command.Flags().StringVarP(
		&sensorPath,
		"path", "p",
		"",
		"Temperature file to read (default is the configured TEMPERATURE_FILE)",
	)
}

func resolvePath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	if err := configuration.ReadConfigFile(); err != nil {
		return "", err
	}
	path = viper.GetString(configuration.KeyTemperatureFile)
	if path == "" {
		return "", failure.Config(configuration.EnvName(configuration.KeyTemperatureFile), fmt.Errorf("missing required value, use --path to read a file directly"))
	}
	return path, nil
}
