// Package gpio drives the fan output line.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

import (
	"errors"

	"github.com/fancon-pi/fancon/internal/ui"
)

// Output is an exclusively owned GPIO line configured as an output.
type Output interface {
	// Value returns the level currently driven on the line, true = high.
	Value() (bool, error)

	// SetValue drives the line high (true) or low (false).
	SetValue(high bool) error

	// Close releases the line. It does not change the driven level.
	Close() error
}

// Consumer is the label the kernel shows for lines held by fancon.
const Consumer = "fancon"

func level(high bool) int {
	if high {
		return 1
	}
	return 0
}

// ChipInfo describes a GPIO chip found on the system.
type ChipInfo struct {
	Name  string
	Label string
	Lines []LineInfo
}

type LineInfo struct {
	Offset    int
	Name      string
	Consumer  string
	Used      bool
	Direction string
}

// collectChips describes every named chip. A chip that fails is skipped with
// a warning; an error is only returned if chips exist and none of them could
// be described.
func collectChips(names []string, describe func(name string) (ChipInfo, error)) ([]ChipInfo, error) {
	var result []ChipInfo
	var errs []error
	for _, name := range names {
		info, err := describe(name)
		if err != nil {
			ui.Warning("Skipping gpio chip %s: %v", name, err)
			errs = append(errs, err)
			continue
		}
		result = append(result, info)
	}
	if len(result) <= 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return result, nil
}
