//go:build linux

package gpio

import (
	"errors"
	"fmt"

	"github.com/fancon-pi/fancon/internal/failure"
	"github.com/warthog618/go-gpiocdev"
	"golang.org/x/sys/unix"
)

// RealOutput drives a line of a Linux GPIO character device.
type RealOutput struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
	pin  uint8
}

// NewRealOutput claims a line of the given chip as an output.
//
// The line is first requested as-is so that its current level can be read,
// and then switched to output at that same level. A restart therefore keeps
// the fan in whatever state it was left in.
func NewRealOutput(chipName string, pin uint8) (*RealOutput, error) {
	chip, err := gpiocdev.NewChip(chipName, gpiocdev.WithConsumer(Consumer))
	if err != nil {
		return nil, failure.Hardware(fmt.Sprintf("open gpio chip %s", chipName), describe(err))
	}

	offset := int(pin)
	line, err := chip.RequestLine(offset, gpiocdev.AsIs)
	if err != nil {
		chip.Close()
		return nil, failure.Hardware(fmt.Sprintf("request pin %d on %s", pin, chipName), describe(err))
	}

	value, err := line.Value()
	if err != nil {
		line.Close()
		chip.Close()
		return nil, failure.Hardware(fmt.Sprintf("read pin %d", pin), err)
	}

	if err := line.Reconfigure(gpiocdev.AsOutput(value)); err != nil {
		line.Close()
		chip.Close()
		return nil, failure.Hardware(fmt.Sprintf("configure pin %d as output", pin), err)
	}

	return &RealOutput{
		chip: chip,
		line: line,
		pin:  pin,
	}, nil
}

func describe(err error) error {
	switch {
	case errors.Is(err, unix.EBUSY):
		return fmt.Errorf("line is already in use: %w", err)
	case errors.Is(err, gpiocdev.ErrInvalidOffset):
		return fmt.Errorf("no such line on chip: %w", err)
	case errors.Is(err, unix.EACCES), errors.Is(err, unix.EPERM):
		return fmt.Errorf("permission denied, run as root or join the gpio group: %w", err)
	default:
		return err
	}
}

func (o *RealOutput) Value() (bool, error) {
	value, err := o.line.Value()
	if err != nil {
		return false, fmt.Errorf("read line %d: %w", o.pin, err)
	}
	return value != 0, nil
}

func (o *RealOutput) SetValue(high bool) error {
	if err := o.line.SetValue(level(high)); err != nil {
		return fmt.Errorf("set line %d: %w", o.pin, err)
	}
	return nil
}

func (o *RealOutput) Close() error {
	var errs []error
	if o.line != nil {
		if err := o.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close line: %w", err))
		}
		o.line = nil
	}
	if o.chip != nil {
		if err := o.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
		o.chip = nil
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
