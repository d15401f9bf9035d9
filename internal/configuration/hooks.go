package configuration

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"golang.org/x/exp/constraints"
)

// decodeHook converts raw environment and config file values into the
// strictly typed fields of Configuration.
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		secondsHookFunc(),
		unsignedHookFunc(),
	)
}

// secondsHookFunc decodes a whole number of seconds into a time.Duration.
func secondsHookFunc() mapstructure.DecodeHookFuncType {
	durationType := reflect.TypeOf(time.Duration(0))
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != durationType {
			return data, nil
		}
		return parseSeconds(data)
	}
}

// unsignedHookFunc range checks unsigned targets. mapstructure would
// otherwise silently wrap negative or oversized numbers.
func unsignedHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		switch t.Kind() {
		case reflect.Uint8:
			return parseUnsigned[uint8](data)
		case reflect.Uint16:
			return parseUnsigned[uint16](data)
		case reflect.Uint32:
			return parseUnsigned[uint32](data)
		default:
			return data, nil
		}
	}
}

// parseUnsigned parses a decimal string or a YAML number into T.
func parseUnsigned[T constraints.Unsigned](data interface{}) (T, error) {
	var zero T
	text := strings.TrimSpace(fmt.Sprint(data))
	bits := reflect.TypeOf(zero).Bits()
	value, err := strconv.ParseUint(text, 10, bits)
	if err != nil {
		return zero, fmt.Errorf("invalid value %q, expected an integer between 0 and %d", text, uint64(^zero))
	}
	return T(value), nil
}

func parseSeconds(data interface{}) (time.Duration, error) {
	seconds, err := parseUnsigned[uint64](data)
	if err != nil {
		return 0, err
	}
	if seconds > uint64(math.MaxInt64/int64(time.Second)) {
		return 0, fmt.Errorf("invalid value %d, interval is too large", seconds)
	}
	return time.Duration(seconds) * time.Second, nil
}
