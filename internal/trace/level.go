package trace

import (
	"fmt"
	"strings"
)

// Level selects the finest scope that is still recorded.
type Level uint8

const (
	LevelOff Level = iota
	LevelDriver
	LevelFile
	LevelPass
)

func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelDriver:
		return "driver"
	case LevelFile:
		return "file"
	case LevelPass:
		return "pass"
	}
	return "unknown"
}

func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "off", "":
		return LevelOff, nil
	case "driver":
		return LevelDriver, nil
	case "file":
		return LevelFile, nil
	case "pass", "all":
		return LevelPass, nil
	}
	return LevelOff, fmt.Errorf("invalid trace level %q (expected off|driver|file|pass)", s)
}

// ShouldEmit reports whether events of scope are recorded at level l.
func (l Level) ShouldEmit(scope Scope) bool {
	return l != LevelOff && uint8(scope) <= uint8(l)
}
