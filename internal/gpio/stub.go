//go:build !linux

package gpio

import (
	"errors"
	"fmt"

	"github.com/fancon-pi/fancon/internal/failure"
)

var errUnsupported = errors.New("gpio: not supported on this platform (requires Linux)")

// RealOutput is not available on non-Linux platforms.
type RealOutput struct{}

// NewRealOutput returns an error on non-Linux platforms.
func NewRealOutput(chipName string, pin uint8) (*RealOutput, error) {
	return nil, failure.Hardware(fmt.Sprintf("request pin %d on %s", pin, chipName), errUnsupported)
}

func (o *RealOutput) Value() (bool, error) {
	return false, errUnsupported
}

func (o *RealOutput) SetValue(high bool) error {
	return errUnsupported
}

func (o *RealOutput) Close() error {
	return nil
}

// Detect is not implemented on non-Linux platforms.
func Detect() ([]ChipInfo, error) {
	return nil, errUnsupported
}
