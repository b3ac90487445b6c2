package table

import (
	"fmt"
	"strconv"
	"strings"
)

// timeFactors converts half-life units to seconds.
var timeFactors = map[string]float64{
	"s":  1,
	"ms": 0.001,
	"m":  60,
	"h":  3600,
	"d":  86400,
	"y":  31536000,
	"ky": 31536000000,
}

// ToSeconds converts a half-life value in unit to seconds.
func ToSeconds(value float64, unit string) (float64, error) {
	f, ok := timeFactors[strings.TrimSpace(unit)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
	return value * f, nil
}

// ParseHalfLife converts text of the form "<value> <unit>" to seconds,
// e.g. "60 m" is 3600.
func ParseHalfLife(text string) (float64, error) {
	parts := strings.Fields(text)
	if len(parts) != 2 {
		return 0, fmt.Errorf("half-life %q: expected value and unit", text)
	}
	v, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, fmt.Errorf("half-life %q: %w", text, err)
	}
	return ToSeconds(v, parts[1])
}
