package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// ValidatePath validates a file path supplied on the command line or in a
// config file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 1024 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 1024
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// hexColorRegex matches #rgb and #rrggbb colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// cssNameRegex matches bare CSS color keywords such as "steelblue".
var cssNameRegex = regexp.MustCompile(`^[a-zA-Z]{3,20}$`)

// ValidateColor accepts an empty string (renderer default), a hex color, or a
// CSS color keyword. Anything else could break out of an SVG attribute.
func ValidateColor(c string) error {
	if c == "" {
		return nil
	}
	if hexColorRegex.MatchString(c) || cssNameRegex.MatchString(c) {
		return nil
	}
	return New(ErrCodeInvalidInput, "invalid color %q (want #rgb, #rrggbb or a CSS color name)", c)
}

// ValidateFraction checks that v lies in [lo, hi] and is finite.
func ValidateFraction(name string, v, lo, hi float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidConfig, "%s must be a finite number", name)
	}
	if v < lo || v > hi {
		return New(ErrCodeInvalidConfig, "%s must be in [%g, %g], got %g", name, lo, hi, v)
	}
	return nil
}

// ValidateAngle checks that an angle in degrees lies in the [-180, 180]
// convention used for tree spans (0 = top, clockwise).
func ValidateAngle(deg float64) error {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return New(ErrCodeInvalidInput, "angle must be a finite number")
	}
	if deg < -180 || deg > 180 {
		return New(ErrCodeInvalidInput, "angle %g outside [-180, 180]", deg)
	}
	return nil
}

// ValidateFormatName rejects format strings that are empty or contain anything
// other than lowercase letters.
func ValidateFormatName(f string) error {
	if f == "" || strings.TrimFunc(f, unicode.IsLower) != "" {
		return New(ErrCodeInvalidFormat, "invalid format name: %q", f)
	}
	return nil
}
