package util

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// ExpandPath resolves a leading "~" to the home directory of the current user.
func ExpandPath(path string) (string, error) {
	return homedir.Expand(path)
}

// ReadUintFromFile reads a single unsigned integer of at most bitSize bits
// from a file, ignoring surrounding whitespace.
func ReadUintFromFile(path string, bitSize int) (uint64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	text := strings.TrimSpace(string(data))
	if len(text) <= 0 {
		return 0, fmt.Errorf("file is empty: %s", path)
	}
	value, err := strconv.ParseUint(text, 10, bitSize)
	if err != nil {
		return 0, fmt.Errorf("unexpected content in %s: %w", path, err)
	}
	return value, nil
}
