package gpio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func describeFrom(chips map[string]ChipInfo) func(name string) (ChipInfo, error) {
	return func(name string) (ChipInfo, error) {
		info, ok := chips[name]
		if !ok {
			return ChipInfo{}, errors.New("permission denied")
		}
		return info, nil
	}
}

func TestCollectChips_SkipsUnreadableChip(t *testing.T) {
	// GIVEN
	describe := describeFrom(map[string]ChipInfo{
		"gpiochip0": {Name: "gpiochip0", Label: "pinctrl-bcm2711"},
		"gpiochip2": {Name: "gpiochip2", Label: "raspberrypi-exp-gpio"},
	})

	// WHEN
	chips, err := collectChips([]string{"gpiochip0", "gpiochip1", "gpiochip2"}, describe)

	// THEN
	assert.NoError(t, err)
	assert.Len(t, chips, 2)
	assert.Equal(t, "gpiochip0", chips[0].Name)
	assert.Equal(t, "gpiochip2", chips[1].Name)
}

func TestCollectChips_AllUnreadable(t *testing.T) {
	// WHEN
	chips, err := collectChips([]string{"gpiochip0", "gpiochip1"}, describeFrom(nil))

	// THEN
	assert.Nil(t, chips)
	assert.ErrorContains(t, err, "permission denied")
}

func TestCollectChips_NoChips(t *testing.T) {
	// WHEN
	chips, err := collectChips(nil, describeFrom(nil))

	// THEN
	assert.NoError(t, err)
	assert.Empty(t, chips)
}
