package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// WidthMode selects how the terminal width is resolved.
type WidthMode int

const (
	// WidthDisabled turns width reporting off; formatters see 0.
	WidthDisabled WidthMode = iota
	// WidthAuto probes the controlling terminal.
	WidthAuto
	// WidthFixed uses the configured column count verbatim.
	WidthFixed
)

// WidthSetting is the parsed form of the term_width option.
type WidthSetting struct {
	Mode    WidthMode
	Columns int
}

// ParseWidthSetting accepts "", "off", "false", "0" (disabled), "auto" or
// "automatic", or a positive integer.
func ParseWidthSetting(raw string) (WidthSetting, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "", "0", "off", "false", "none", "disabled":
		return WidthSetting{Mode: WidthDisabled}, nil
	case "auto", "automatic":
		return WidthSetting{Mode: WidthAuto}, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return WidthSetting{}, fmt.Errorf("term_width must be auto, a positive integer or empty, got %q", raw)
	}
	return WidthSetting{Mode: WidthFixed, Columns: n}, nil
}

// String renders the setting back into its config form.
func (w WidthSetting) String() string {
	switch w.Mode {
	case WidthAuto:
		return "auto"
	case WidthFixed:
		return strconv.Itoa(w.Columns)
	default:
		return ""
	}
}
