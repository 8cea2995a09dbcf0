package ui

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"asciiforge/internal/ascii"
	"asciiforge/internal/config"
)

// parseIntOrDefault attempts to parse a string as an integer.
// Returns the parsed value or defaultValue if parsing fails.
func parseIntOrDefault(s string, defaultValue int) int {
	if s == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}
	return val
}

// parseFloatOrDefault is parseIntOrDefault for decimals.
func parseFloatOrDefault(s string, defaultValue float64) float64 {
	if s == "" {
		return defaultValue
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return defaultValue
	}
	return val
}

// parseIntInRange parses a string as an integer and validates it's within the given range.
func parseIntInRange(s string, min, max int, fieldName string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("%s cannot be empty", fieldName)
	}

	val, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number", fieldName)
	}

	if val < min || val > max {
		return 0, fmt.Errorf("%s must be between %d and %d", fieldName, min, max)
	}

	return val, nil
}

// validateWidth is the entry validator for the output width in glyphs.
func validateWidth(s string) error {
	_, err := parseIntInRange(s, 1, config.MaxWidth, "width")
	return err
}

// validateRamp checks the glyph ramp has exactly ascii.RampSize glyphs.
func validateRamp(s string) error {
	if n := utf8.RuneCountInString(s); n != ascii.RampSize {
		return fmt.Errorf("ramp needs %d glyphs, has %d", ascii.RampSize, n)
	}
	return nil
}

// validateAspect accepts glyph aspect ratios in (0, 4].
func validateAspect(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("aspect must be a number")
	}
	if v <= 0 || v > 4 {
		return fmt.Errorf("aspect must be greater than 0 and at most 4")
	}
	return nil
}

// parsePort returns the port in s, or defaultPort if s is not a valid port.
func parsePort(s string, defaultPort int) int {
	port, err := parseIntInRange(s, 1, 65535, "port")
	if err != nil {
		return defaultPort
	}
	return port
}

// validatePort validates a port string and returns an error if invalid.
func validatePort(s string) error {
	_, err := parseIntInRange(s, 1, 65535, "port")
	return err
}
