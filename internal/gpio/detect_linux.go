//go:build linux

package gpio

import (
	"fmt"

	"github.com/fancon-pi/fancon/internal/ui"
	"github.com/warthog618/go-gpiocdev"
)

// Detect lists all GPIO chips and their lines. Chips that cannot be read
// are skipped with a warning.
func Detect() ([]ChipInfo, error) {
	return collectChips(gpiocdev.Chips(), describeChipByName)
}

func describeChipByName(name string) (ChipInfo, error) {
	chip, err := gpiocdev.NewChip(name)
	if err != nil {
		return ChipInfo{}, fmt.Errorf("open gpio chip %s: %w", name, err)
	}
	defer func() {
		if err := chip.Close(); err != nil {
			ui.Warning("Unable to close gpio chip %s: %v", name, err)
		}
	}()
	return describeChip(chip)
}

func describeChip(chip *gpiocdev.Chip) (ChipInfo, error) {
	info := ChipInfo{
		Name:  chip.Name,
		Label: chip.Label,
	}
	for offset := 0; offset < chip.Lines(); offset++ {
		li, err := chip.LineInfo(offset)
		if err != nil {
			return ChipInfo{}, fmt.Errorf("read line info %s:%d: %w", chip.Name, offset, err)
		}
		info.Lines = append(info.Lines, LineInfo{
			Offset:    li.Offset,
			Name:      li.Name,
			Consumer:  li.Consumer,
			Used:      li.Used,
			Direction: direction(li.Config.Direction),
		})
	}
	return info, nil
}

func direction(d gpiocdev.LineDirection) string {
	switch d {
	case gpiocdev.LineDirectionInput:
		return "input"
	case gpiocdev.LineDirectionOutput:
		return "output"
	default:
		return "unknown"
	}
}
