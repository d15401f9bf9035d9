package util

import "github.com/asecurityteam/rolling"

// TemperatureWindow keeps the last readings of a sensor to report their average.
type TemperatureWindow struct {
	policy *rolling.PointPolicy
}

func NewTemperatureWindow(size int) *TemperatureWindow {
	return &TemperatureWindow{
		policy: rolling.NewPointPolicy(rolling.NewWindow(size)),
	}
}

func (w *TemperatureWindow) Append(value float64) {
	w.policy.Append(value)
}

// Avg returns the average of the readings currently held by the window.
func (w *TemperatureWindow) Avg() float64 {
	return w.policy.Reduce(rolling.Avg)
}
