package internal

import (
	"errors"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/fancon-pi/fancon/internal/configuration"
	"github.com/fancon-pi/fancon/internal/controller"
	"github.com/fancon-pi/fancon/internal/device"
	"github.com/fancon-pi/fancon/internal/failure"
	"github.com/fancon-pi/fancon/internal/gpio"
	"github.com/fancon-pi/fancon/internal/sensors"
	"github.com/fancon-pi/fancon/internal/ui"
	"github.com/oklog/run"
)

var terminationSignals = []os.Signal{syscall.SIGTERM, os.Interrupt}

var openOutputFn = func(chip string, pin uint8) (gpio.Output, error) {
	out, err := gpio.NewRealOutput(chip, pin)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RunDaemon loads the configuration and runs the fan controller until a
// termination signal is received or an error occurs.
func RunDaemon() error {
	config, err := configuration.LoadConfig()
	if err != nil {
		return err
	}
	if path := configuration.ConfigFileUsed(); path != "" {
		ui.Info("Using configuration file at: %s", path)
	}
	if err := configuration.Validate(config); err != nil {
		return err
	}

	logDeviceModel()

	sig, err := notifyTermination(terminationSignals...)
	if err != nil {
		return err
	}
	defer signal.Stop(sig)

	return runDaemon(config, sig)
}

func logDeviceModel() {
	model, err := device.Model()
	if err != nil {
		ui.Warning("Unable to identify device: %v", err)
		return
	}
	ui.Info("Device: %s", model)
}

func notifyTermination(signals ...os.Signal) (chan os.Signal, error) {
	if len(signals) <= 0 {
		return nil, failure.SignalRegistration("notify", errors.New("no termination signals given"))
	}
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, signals...)
	return sig, nil
}

func runDaemon(config configuration.Configuration, sig <-chan os.Signal) error {
	pin, err := openOutputFn(config.GpioChip, config.FanPin)
	if err != nil {
		return err
	}
	defer func() {
		if err := pin.Close(); err != nil {
			ui.Warning("Unable to release pin %d: %v", config.FanPin, err)
		}
	}()
	ui.Info("Using GPIO pin %d on %s", config.FanPin, config.GpioChip)

	var terminate atomic.Bool
	sensor := sensors.NewFileSensor(config.TemperatureFile)
	fanController, err := controller.NewFanController(config, pin, sensor, &terminate)
	if err != nil {
		return err
	}

	var controllerErr error
	var received os.Signal
	var g run.Group
	{
		// === fan controller
		g.Add(func() error {
			controllerErr = fanController.Run()
			return controllerErr
		}, func(err error) {
			fanController.Stop()
		})
	}
	{
		// === termination signal
		done := make(chan struct{})
		g.Add(func() error {
			select {
			case received = <-sig:
			case <-done:
			}
			return nil
		}, func(err error) {
			close(done)
		})
	}

	err = g.Run()
	// pterm printers must not be used concurrently, log once both actors returned
	if received != nil {
		ui.Info("Received %v signal", received)
	}
	ui.Info("Fan controller stopped.")

	// a failure during shutdown must not be masked by the signal actor
	if controllerErr != nil {
		return controllerErr
	}
	return err
}
