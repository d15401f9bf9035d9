package configuration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fancon-pi/fancon/internal/failure"
	"github.com/fancon-pi/fancon/internal/ui"
)

// Validate checks a decoded configuration for values that cannot work.
//
// Inverted thresholds are reported but accepted: the fan then toggles on
// every check, which is what the configuration asks for.
func Validate(config Configuration) error {
	if len(strings.TrimSpace(config.TemperatureFile)) <= 0 {
		return failure.Config(EnvName(KeyTemperatureFile), errors.New("path must not be empty"))
	}
	if len(strings.TrimSpace(config.GpioChip)) <= 0 {
		return failure.Config(EnvName(KeyGpioChip), errors.New("chip name must not be empty"))
	}
	if config.TempRollingWindowSize <= 0 {
		return failure.Config(EnvName(KeyTempRollingWindowSize), fmt.Errorf("invalid window size %d, must be >= 1", config.TempRollingWindowSize))
	}

	if config.FanOnTemp < config.FanOffTemp {
		ui.Warning("Fan on temperature (%d°C) is below fan off temperature (%d°C), the fan will toggle on every check", config.FanOnTemp, config.FanOffTemp)
	}
	if config.CheckTempInterval <= 0 {
		ui.Warning("Temperature check interval is 0, the sensor will be polled continuously")
	}

	return nil
}
