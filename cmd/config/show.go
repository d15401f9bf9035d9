package config

import (
	"fmt"

	"github.com/fancon-pi/fancon/internal/configuration"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// view is the YAML representation of a Configuration. It uses the same keys
// and units as the config file, so the output can be used as one.
type view struct {
	TemperatureFile       string `yaml:"temperature_file"`
	FanPin                uint8  `yaml:"fan_pin"`
	FanOnTemp             uint32 `yaml:"fan_on_temp"`
	FanOffTemp            uint32 `yaml:"fan_off_temp"`
	CheckTempInterval     int64  `yaml:"check_temp_interval"`
	GpioChip              string `yaml:"gpio_chip"`
	TempRollingWindowSize int    `yaml:"temp_rolling_window_size"`
}

func newView(config configuration.Configuration) view {
	return view{
		TemperatureFile:       config.TemperatureFile,
		FanPin:                config.FanPin,
		FanOnTemp:             config.FanOnTemp,
		FanOffTemp:            config.FanOffTemp,
		CheckTempInterval:     int64(config.CheckTempInterval.Seconds()),
		GpioChip:              config.GpioChip,
		TempRollingWindowSize: config.TempRollingWindowSize,
	}
}

func render(config configuration.Configuration) (string, error) {
	out, err := yaml.Marshal(newView(config))
	if err != nil {
		return "", fmt.Errorf("unable to render configuration: %w", err)
	}
	return string(out), nil
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Prints the effective configuration",
	Long:  `Prints the configuration that results from the config file and environment variables, as YAML.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := configuration.LoadConfig()
		if err != nil {
			return err
		}
		out, err := render(config)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	Command.AddCommand(showCmd)
}
