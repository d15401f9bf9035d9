// Package failure classifies the fatal error causes of fancon.
//
// Every error that leaves the controller carries exactly one Kind, so callers
// can tell a broken configuration from a missing sensor without matching
// error strings.
package failure

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	// KindConfig is a missing or malformed startup input.
	KindConfig
	// KindHardware is a GPIO acquire, read or write failure.
	KindHardware
	// KindSensorRead is a temperature source open, read or parse failure.
	KindSensorRead
	// KindSignalRegistration means the termination handler could not be installed.
	KindSignalRegistration
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config error"
	case KindHardware:
		return "hardware error"
	case KindSensorRead:
		return "sensor read error"
	case KindSignalRegistration:
		return "signal registration error"
	default:
		return "error"
	}
}

// Error is a classified error. Op names the operation or configuration key
// that failed.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Op)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports a match for any *Error of the same kind, which allows
// errors.Is(err, failure.ErrSensorRead).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Err == nil && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrConfig             = &Error{Kind: KindConfig}
	ErrHardware           = &Error{Kind: KindHardware}
	ErrSensorRead         = &Error{Kind: KindSensorRead}
	ErrSignalRegistration = &Error{Kind: KindSignalRegistration}
)

func Config(key string, err error) error {
	return &Error{Kind: KindConfig, Op: key, Err: err}
}

func Hardware(op string, err error) error {
	return &Error{Kind: KindHardware, Op: op, Err: err}
}

func SensorRead(path string, err error) error {
	return &Error{Kind: KindSensorRead, Op: path, Err: err}
}

func SignalRegistration(op string, err error) error {
	return &Error{Kind: KindSignalRegistration, Op: op, Err: err}
}

// KindOf returns the kind of the outermost classified error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch KindOf(err) {
	case KindConfig:
		return 2
	case KindHardware:
		return 3
	case KindSensorRead:
		return 4
	case KindSignalRegistration:
		return 5
	default:
		return 1
	}
}
