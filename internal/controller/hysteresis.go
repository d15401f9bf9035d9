package controller

type Transition int

const (
	TransitionNone Transition = iota
	TransitionOn
	TransitionOff
)

func (t Transition) String() string {
	switch t {
	case TransitionOn:
		return "on"
	case TransitionOff:
		return "off"
	default:
		return "none"
	}
}

// Hysteresis switches on at OnTemp and off at OffTemp. Between the two
// thresholds the current state is kept.
//
// OnTemp is expected to be >= OffTemp. This is not enforced: with inverted
// thresholds a temperature between them toggles the state on every call.
type Hysteresis struct {
	OnTemp  uint32
	OffTemp uint32
}

// Next returns the state the fan should be in after reading temp.
func (h Hysteresis) Next(energized bool, temp uint32) (bool, Transition) {
	if temp >= h.OnTemp && !energized {
		return true, TransitionOn
	} else if temp <= h.OffTemp && energized {
		return false, TransitionOff
	}
	return energized, TransitionNone
}

// Sweep feeds temps through the hysteresis in order, starting from the given
// state, and returns the state after each reading.
func (h Hysteresis) Sweep(energized bool, temps []uint32) []bool {
	result := make([]bool, 0, len(temps))
	for _, temp := range temps {
		energized, _ = h.Next(energized, temp)
		result = append(result, energized)
	}
	return result
}
