package controller

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fancon-pi/fancon/internal/configuration"
	"github.com/fancon-pi/fancon/internal/failure"
	"github.com/fancon-pi/fancon/internal/gpio"
	"github.com/stretchr/testify/assert"
)

// MockSensor returns Values in order and Err once they are exhausted.
type MockSensor struct {
	Values []uint32
	Err    error
	calls  int
}

func (sensor *MockSensor) GetId() string {
	return "mock"
}

func (sensor *MockSensor) GetValue() (uint32, error) {
	if sensor.calls >= len(sensor.Values) {
		sensor.calls++
		return 0, sensor.Err
	}
	value := sensor.Values[sensor.calls]
	sensor.calls++
	return value, nil
}

func testConfig() configuration.Configuration {
	return configuration.Configuration{
		TemperatureFile:       "/sys/class/thermal/thermal_zone0/temp",
		FanPin:                14,
		FanOnTemp:             70,
		FanOffTemp:            60,
		CheckTempInterval:     5 * time.Second,
		GpioChip:              configuration.DefaultGpioChip,
		TempRollingWindowSize: 3,
	}
}

func createController(t *testing.T, pin *gpio.FakeOutput, sensor *MockSensor) (*DefaultFanController, *atomic.Bool) {
	t.Helper()
	terminate := &atomic.Bool{}
	c, err := NewFanController(testConfig(), pin, sensor, terminate)
	assert.NoError(t, err)
	return c, terminate
}

// stopAfter makes the controller request termination after n sleeps and
// records the requested sleep durations.
func stopAfter(c *DefaultFanController, n int) *[]time.Duration {
	var sleeps []time.Duration
	c.sleep = func(d time.Duration) {
		sleeps = append(sleeps, d)
		if len(sleeps) >= n {
			c.Stop()
		}
	}
	return &sleeps
}

func TestNewFanController_AdoptsPinLevel(t *testing.T) {
	for _, high := range []bool{true, false} {
		// GIVEN
		pin := gpio.NewFakeOutput(high)

		// WHEN
		c, _ := createController(t, pin, &MockSensor{})

		// THEN
		assert.Equal(t, high, c.Energized())
		assert.Empty(t, pin.Writes)
	}
}

func TestNewFanController_PinReadError(t *testing.T) {
	// GIVEN
	pin := gpio.NewFakeOutput(false)
	pin.ReadError = errors.New("line closed")

	// WHEN
	_, err := NewFanController(testConfig(), pin, &MockSensor{}, &atomic.Bool{})

	// THEN
	assert.ErrorIs(t, err, failure.ErrHardware)
}

func TestEvaluate_LiteralSequence(t *testing.T) {
	// GIVEN
	pin := gpio.NewFakeOutput(false)
	c, _ := createController(t, pin, &MockSensor{})

	readings := []uint32{50, 65, 75, 68, 55}
	expected := []Transition{TransitionNone, TransitionNone, TransitionOn, TransitionNone, TransitionOff}

	// WHEN
	var transitions []Transition
	for _, temp := range readings {
		transition, err := c.Evaluate(temp)
		assert.NoError(t, err)
		transitions = append(transitions, transition)
	}

	// THEN
	assert.Equal(t, expected, transitions)
	assert.Equal(t, []bool{true, false}, pin.Writes)
	assert.False(t, c.Energized())
}

func TestEvaluate_SwitchesOnExactlyOnce(t *testing.T) {
	// GIVEN
	pin := gpio.NewFakeOutput(false)
	c, _ := createController(t, pin, &MockSensor{})

	// WHEN
	var transitions []Transition
	for _, temp := range []uint32{70, 80, 95, 70, 71} {
		transition, err := c.Evaluate(temp)
		assert.NoError(t, err)
		transitions = append(transitions, transition)
	}

	// THEN
	assert.Equal(t, []Transition{TransitionOn, TransitionNone, TransitionNone, TransitionNone, TransitionNone}, transitions)
	assert.Equal(t, []bool{true}, pin.Writes)
	assert.True(t, c.Energized())
}

func TestEvaluate_SwitchesOffExactlyOnce(t *testing.T) {
	// GIVEN
	pin := gpio.NewFakeOutput(true)
	c, _ := createController(t, pin, &MockSensor{})

	// WHEN
	var transitions []Transition
	for _, temp := range []uint32{60, 40, 0, 59} {
		transition, err := c.Evaluate(temp)
		assert.NoError(t, err)
		transitions = append(transitions, transition)
	}

	// THEN
	assert.Equal(t, []Transition{TransitionOff, TransitionNone, TransitionNone, TransitionNone}, transitions)
	assert.Equal(t, []bool{false}, pin.Writes)
	assert.False(t, c.Energized())
}

func TestEvaluate_DeadBandKeepsState(t *testing.T) {
	for _, high := range []bool{true, false} {
		// GIVEN
		pin := gpio.NewFakeOutput(high)
		c, _ := createController(t, pin, &MockSensor{})

		// WHEN
		for temp := uint32(61); temp < 70; temp++ {
			transition, err := c.Evaluate(temp)

			// THEN
			assert.NoError(t, err)
			assert.Equal(t, TransitionNone, transition)
		}
		assert.Equal(t, high, c.Energized())
		assert.Empty(t, pin.Writes)
	}
}

func TestEvaluate_StartupStateAdoption(t *testing.T) {
	// GIVEN
	pin := gpio.NewFakeOutput(true)
	c, _ := createController(t, pin, &MockSensor{})

	// WHEN
	transition, err := c.Evaluate(80)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, TransitionNone, transition)
	assert.True(t, c.Energized())
	assert.Empty(t, pin.Writes)
}

func TestEvaluate_PinWriteError(t *testing.T) {
	// GIVEN
	pin := gpio.NewFakeOutput(false)
	pin.WriteError = errors.New("device gone")
	c, _ := createController(t, pin, &MockSensor{})

	// WHEN
	transition, err := c.Evaluate(75)

	// THEN
	assert.Equal(t, TransitionOn, transition)
	assert.ErrorIs(t, err, failure.ErrHardware)
	assert.EqualError(t, err, "hardware error: switch fan on: device gone")
	assert.False(t, c.Energized())
}

func TestEvaluate_InvertedThresholdsToggle(t *testing.T) {
	// GIVEN
	config := testConfig()
	config.FanOnTemp = 50
	config.FanOffTemp = 60
	pin := gpio.NewFakeOutput(false)
	c, err := NewFanController(config, pin, &MockSensor{}, &atomic.Bool{})
	assert.NoError(t, err)

	// WHEN
	for i := 0; i < 4; i++ {
		_, err := c.Evaluate(55)
		assert.NoError(t, err)
	}

	// THEN
	assert.Equal(t, []bool{true, false, true, false}, pin.Writes)
}

func TestRun_SwitchesAndStopsGracefully(t *testing.T) {
	// GIVEN
	pin := gpio.NewFakeOutput(false)
	sensor := &MockSensor{Values: []uint32{50, 65, 75, 68, 55, 72}}
	c, _ := createController(t, pin, sensor)
	sleeps := stopAfter(c, len(sensor.Values))

	// WHEN
	err := c.Run()

	// THEN
	assert.NoError(t, err)
	// on at 75, off at 55, on at 72, off on shutdown
	assert.Equal(t, []bool{true, false, true, false}, pin.Writes)
	assert.False(t, c.Energized())
	assert.Len(t, *sleeps, len(sensor.Values))
	for _, d := range *sleeps {
		assert.Equal(t, 5*time.Second, d)
	}
}

func TestRun_TerminationCheckedBeforeRead(t *testing.T) {
	// GIVEN
	pin := gpio.NewFakeOutput(true)
	sensor := &MockSensor{Err: errors.New("must not be read")}
	c, terminate := createController(t, pin, sensor)
	terminate.Store(true)

	// WHEN
	err := c.Run()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 0, sensor.calls)
	assert.Equal(t, []bool{false}, pin.Writes)
}

func TestRun_SensorFailureSwitchesFanOff(t *testing.T) {
	for _, high := range []bool{true, false} {
		// GIVEN
		pin := gpio.NewFakeOutput(high)
		sensor := &MockSensor{Err: errors.New("no such file")}
		c, _ := createController(t, pin, sensor)
		sleeps := stopAfter(c, 100)

		// WHEN
		err := c.Run()

		// THEN
		assert.ErrorIs(t, err, failure.ErrSensorRead)
		assert.Equal(t, failure.KindSensorRead, failure.KindOf(err))
		assert.Equal(t, []bool{false}, pin.Writes)
		assert.False(t, c.Energized())
		assert.Empty(t, *sleeps)
	}
}

func TestRun_SensorFailureAfterReadings(t *testing.T) {
	// GIVEN
	pin := gpio.NewFakeOutput(false)
	sensor := &MockSensor{Values: []uint32{75, 72}, Err: errors.New("parse error")}
	c, _ := createController(t, pin, sensor)
	stopAfter(c, 100)

	// WHEN
	err := c.Run()

	// THEN
	assert.ErrorIs(t, err, failure.ErrSensorRead)
	assert.Equal(t, []bool{true, false}, pin.Writes)
}

func TestRun_SensorFailureKeepsClassifiedError(t *testing.T) {
	// GIVEN
	pin := gpio.NewFakeOutput(true)
	sensorErr := failure.SensorRead("/sys/class/thermal/thermal_zone0/temp", errors.New("file is empty"))
	c, _ := createController(t, pin, &MockSensor{Err: sensorErr})

	// WHEN
	err := c.Run()

	// THEN
	assert.EqualError(t, err, "read temperature: sensor read error: /sys/class/thermal/thermal_zone0/temp: file is empty")
}

func TestRun_ShutdownWriteError(t *testing.T) {
	// GIVEN
	pin := gpio.NewFakeOutput(true)
	c, terminate := createController(t, pin, &MockSensor{})
	terminate.Store(true)
	pin.WriteError = errors.New("device gone")

	// WHEN
	err := c.Run()

	// THEN
	assert.ErrorIs(t, err, failure.ErrHardware)
}
