package sensors

// Sensor is a source of temperature readings in whole degrees Celsius.
type Sensor interface {
	GetId() string

	// GetValue returns the current value of this sensor
	GetValue() (uint32, error)
}
