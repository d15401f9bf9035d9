package sensors

import (
	"github.com/fancon-pi/fancon/internal/failure"
	"github.com/fancon-pi/fancon/internal/util"
)

const milliDegreesPerDegree = 1000

// FileSensor reads a temperature in millidegrees Celsius from a file, like
// /sys/class/thermal/thermal_zone0/temp.
type FileSensor struct {
	Path string
}

func NewFileSensor(path string) *FileSensor {
	return &FileSensor{Path: path}
}

func (sensor FileSensor) GetId() string {
	return sensor.Path
}

// GetValue returns the temperature in whole degrees Celsius, truncated.
func (sensor FileSensor) GetValue() (uint32, error) {
	filePath, err := util.ExpandPath(sensor.Path)
	if err != nil {
		return 0, failure.SensorRead(sensor.Path, err)
	}

	milliDegrees, err := util.ReadUintFromFile(filePath, 32)
	if err != nil {
		return 0, failure.SensorRead(sensor.Path, err)
	}

	return uint32(milliDegrees / milliDegreesPerDegree), nil
}
