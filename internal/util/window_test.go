package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemperatureWindow_Avg(t *testing.T) {
	// GIVEN
	window := NewTemperatureWindow(3)
	window.Append(40)
	window.Append(50)
	window.Append(60)

	// WHEN
	avg := window.Avg()

	// THEN
	assert.Equal(t, 50.0, avg)
}

func TestTemperatureWindow_DropsOldest(t *testing.T) {
	// GIVEN
	window := NewTemperatureWindow(3)
	for _, value := range []float64{40, 50, 60, 70} {
		window.Append(value)
	}

	// WHEN
	avg := window.Avg()

	// THEN
	assert.Equal(t, 60.0, avg)
}
