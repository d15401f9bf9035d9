package controller

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fancon-pi/fancon/internal/configuration"
	"github.com/fancon-pi/fancon/internal/failure"
	"github.com/fancon-pi/fancon/internal/gpio"
	"github.com/fancon-pi/fancon/internal/sensors"
	"github.com/fancon-pi/fancon/internal/ui"
	"github.com/fancon-pi/fancon/internal/util"
)

type FanController interface {
	// Run switches the fan until Stop is called or an error occurs.
	Run() error
	// Stop asks Run to return at the start of its next iteration.
	Stop()
	// Energized reports whether the fan is currently switched on.
	Energized() bool
}

// DefaultFanController switches a fan on a single GPIO line based on a
// single temperature sensor. It is not safe for concurrent use, except for
// Stop which may be called from any goroutine.
type DefaultFanController struct {
	pin        gpio.Output
	sensor     sensors.Sensor
	hysteresis Hysteresis
	interval   time.Duration
	window     *util.TemperatureWindow

	// terminate is set once, from outside the control loop.
	terminate *atomic.Bool
	energized bool

	sleep func(time.Duration)
}

// NewFanController adopts the level the pin is currently driven at as the
// initial fan state, without writing to the pin.
func NewFanController(
	config configuration.Configuration,
	pin gpio.Output,
	sensor sensors.Sensor,
	terminate *atomic.Bool,
) (*DefaultFanController, error) {
	energized, err := pin.Value()
	if err != nil {
		return nil, failure.Hardware("read initial fan state", err)
	}

	windowSize := config.TempRollingWindowSize
	if windowSize <= 0 {
		windowSize = configuration.DefaultTempRollingWindowSize
	}

	return &DefaultFanController{
		pin:    pin,
		sensor: sensor,
		hysteresis: Hysteresis{
			OnTemp:  config.FanOnTemp,
			OffTemp: config.FanOffTemp,
		},
		interval:  config.CheckTempInterval,
		window:    util.NewTemperatureWindow(windowSize),
		terminate: terminate,
		energized: energized,
		sleep:     time.Sleep,
	}, nil
}

func (f *DefaultFanController) Run() error {
	ui.Info("Starting fan controller (on: %d°C, off: %d°C, interval: %s, fan initially %s)",
		f.hysteresis.OnTemp, f.hysteresis.OffTemp, f.interval, stateString(f.energized))

	for !f.terminate.Load() {
		temp, err := f.sensor.GetValue()
		if err != nil {
			f.switchOffAfterSensorFailure()
			if failure.KindOf(err) == failure.KindUnknown {
				err = failure.SensorRead(f.sensor.GetId(), err)
			}
			return fmt.Errorf("read temperature: %w", err)
		}

		f.window.Append(float64(temp))
		ui.Debug("Current temp: %d°C (avg: %.1f°C)", temp, f.window.Avg())

		if _, err := f.Evaluate(temp); err != nil {
			return err
		}

		f.sleep(f.interval)
	}

	ui.Info("Stopping fan controller, switching fan off")
	if err := f.pin.SetValue(false); err != nil {
		return failure.Hardware("switch fan off on shutdown", err)
	}
	f.energized = false
	return nil
}

// switchOffAfterSensorFailure forces the fan off, whatever state it is in.
// Without a temperature the fan state cannot be justified either way.
func (f *DefaultFanController) switchOffAfterSensorFailure() {
	if err := f.pin.SetValue(false); err != nil {
		ui.Warning("Unable to switch fan off after sensor failure: %v", err)
		return
	}
	f.energized = false
}

// Evaluate applies a temperature reading and switches the fan if the
// hysteresis requires it. The pin is only written on a transition.
func (f *DefaultFanController) Evaluate(temp uint32) (Transition, error) {
	energized, transition := f.hysteresis.Next(f.energized, temp)
	if transition == TransitionNone {
		return TransitionNone, nil
	}

	if err := f.pin.SetValue(energized); err != nil {
		return transition, failure.Hardware(fmt.Sprintf("switch fan %s", stateString(energized)), err)
	}
	f.energized = energized

	ui.Info("Fan %s (%d°C)", stateString(energized), temp)
	return transition, nil
}

func (f *DefaultFanController) Stop() {
	f.terminate.Store(true)
}

func (f *DefaultFanController) Energized() bool {
	return f.energized
}

func stateString(energized bool) string {
	if energized {
		return "on"
	}
	return "off"
}
