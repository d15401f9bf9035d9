// Package device identifies the board fancon is running on.
package device

import (
	"errors"
	"os"
	"strings"
)

var ErrUnknownModel = errors.New("device model not available")

// modelPaths are tried in order. Both are exposed by the device tree on
// Raspberry Pi and most other ARM single-board computers.
var modelPaths = []string{
	"/sys/firmware/devicetree/base/model",
	"/proc/device-tree/model",
}

// Model returns the board model, e.g. "Raspberry Pi 4 Model B Rev 1.4".
func Model() (string, error) {
	return modelFromPaths(modelPaths)
}

func modelFromPaths(paths []string) (string, error) {
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		model := strings.Trim(strings.TrimSpace(string(b)), "\x00")
		if model != "" {
			return model, nil
		}
	}
	return "", ErrUnknownModel
}
