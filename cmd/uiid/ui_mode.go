package main

import (
	"fmt"
	"strings"
)

// toggleMode is the value of an auto|on|off flag such as --color or --ui.
type toggleMode string

const (
	modeAuto toggleMode = "auto"
	modeOn   toggleMode = "on"
	modeOff  toggleMode = "off"
)

func readToggleMode(flag, value string) (toggleMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return modeAuto, nil
	case "on":
		return modeOn, nil
	case "off":
		return modeOff, nil
	default:
		return "", fmt.Errorf("invalid %s value %q (expected auto|on|off)", flag, value)
	}
}

// enabled resolves auto against whether the output is a terminal.
func (m toggleMode) enabled(tty bool) bool {
	switch m {
	case modeOn:
		return true
	case modeOff:
		return false
	default:
		return tty
	}
}
