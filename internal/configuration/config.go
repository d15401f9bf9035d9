package configuration

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fancon-pi/fancon/internal/failure"
	"github.com/fancon-pi/fancon/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	KeyTemperatureFile       = "temperature_file"
	KeyFanPin                = "fan_pin"
	KeyFanOnTemp             = "fan_on_temp"
	KeyFanOffTemp            = "fan_off_temp"
	KeyCheckTempInterval     = "check_temp_interval"
	KeyGpioChip              = "gpio_chip"
	KeyTempRollingWindowSize = "temp_rolling_window_size"
)

const (
	DefaultGpioChip              = "gpiochip0"
	DefaultTempRollingWindowSize = 10
)

// requiredKeys have no default, startup fails if any of them is absent.
var requiredKeys = []string{
	KeyTemperatureFile,
	KeyFanPin,
	KeyFanOnTemp,
	KeyFanOffTemp,
	KeyCheckTempInterval,
}

var optionalKeys = []string{
	KeyGpioChip,
	KeyTempRollingWindowSize,
}

var errMissing = errors.New("missing required value")

type Configuration struct {
	// TemperatureFile holds the CPU temperature in millidegrees Celsius.
	TemperatureFile string `mapstructure:"temperature_file"`
	// FanPin is the line offset on GpioChip, which matches BCM numbering on a Raspberry Pi.
	FanPin uint8 `mapstructure:"fan_pin"`
	// FanOnTemp is the temperature in °C at or above which the fan is switched on.
	FanOnTemp uint32 `mapstructure:"fan_on_temp"`
	// FanOffTemp is the temperature in °C at or below which the fan is switched off.
	FanOffTemp uint32 `mapstructure:"fan_off_temp"`
	// CheckTempInterval is the delay between two temperature checks.
	// It is configured in whole seconds.
	CheckTempInterval time.Duration `mapstructure:"check_temp_interval"`

	GpioChip              string `mapstructure:"gpio_chip"`
	TempRollingWindowSize int    `mapstructure:"temp_rolling_window_size"`
}

// EnvName returns the environment variable that sets the given key.
func EnvName(key string) string {
	return strings.ToUpper(key)
}

var explicitConfigFile bool

// InitConfig prepares the global viper instance to read configuration values
// from environment variables and an optional config file.
func InitConfig(cfgFile string) {
	viper.Reset()
	explicitConfigFile = cfgFile != ""

	if explicitConfigFile {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("fancon")
		viper.AddConfigPath(".")
		home, err := homedir.Dir()
		if err != nil {
			ui.Warning("Couldn't detect home directory: %v", err)
		} else {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath("/etc/fancon/")
	}

	setup(viper.GetViper())
}

func setup(v *viper.Viper) {
	v.AutomaticEnv()
	for _, key := range append(requiredKeys, optionalKeys...) {
		// BindEnv only fails without a key
		_ = v.BindEnv(key, EnvName(key))
	}
	setDefaultValues(v)
}

func setDefaultValues(v *viper.Viper) {
	v.SetDefault(KeyGpioChip, DefaultGpioChip)
	v.SetDefault(KeyTempRollingWindowSize, DefaultTempRollingWindowSize)
}

// ConfigFileUsed returns the path of the config file that was read, if any.
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}

// LoadConfig reads the config file (if present) and decodes the current
// configuration. Any missing or malformed value results in a failure.KindConfig error.
func LoadConfig() (Configuration, error) {
	if err := ReadConfigFile(); err != nil {
		return Configuration{}, err
	}
	return loadConfig(viper.GetViper())
}

// ReadConfigFile reads the config file, if one exists. A missing file is only
// an error when it was given explicitly.
func ReadConfigFile() error {
	return readConfigFile(viper.GetViper(), explicitConfigFile)
}

func readConfigFile(v *viper.Viper, required bool) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) && !required {
		// environment variables alone are a valid configuration
		return nil
	}
	return failure.Config("config file", err)
}

func loadConfig(v *viper.Viper) (Configuration, error) {
	for _, key := range requiredKeys {
		if !v.IsSet(key) {
			return Configuration{}, failure.Config(EnvName(key), errMissing)
		}
	}
	for _, key := range append(requiredKeys, optionalKeys...) {
		if err := checkValue(key, v.Get(key)); err != nil {
			return Configuration{}, failure.Config(EnvName(key), err)
		}
	}

	var config Configuration
	err := v.Unmarshal(&config, viper.DecodeHook(decodeHook()))
	if err != nil {
		return Configuration{}, failure.Config("configuration", fmt.Errorf("unable to decode into struct: %w", err))
	}
	return config, nil
}

// checkValue validates a raw value the same way decodeHook converts it, so
// that a malformed value is reported with the name of its key.
func checkValue(key string, raw interface{}) (err error) {
	switch key {
	case KeyTemperatureFile, KeyGpioChip:
		if strings.TrimSpace(fmt.Sprint(raw)) == "" {
			return errMissing
		}
	case KeyFanPin:
		_, err = parseUnsigned[uint8](raw)
	case KeyFanOnTemp, KeyFanOffTemp:
		_, err = parseUnsigned[uint32](raw)
	case KeyCheckTempInterval:
		_, err = parseSeconds(raw)
	case KeyTempRollingWindowSize:
		_, err = parseUnsigned[uint16](raw)
	}
	return err
}
