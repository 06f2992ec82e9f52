// Package numeric converts CSV text tokens written with a comma or dot decimal
// separator into floats.
package numeric

import (
	"regexp"
	"strconv"
	"strings"
)

// Optional sign, digits with one optional decimal separator, optional exponent.
// Grouped thousands ("1.200,50"), hex floats and NaN/Inf words do not match.
var numberRegex = regexp.MustCompile(`^[+-]?(\d+([.,]\d*)?|[.,]\d+)([eE][+-]?\d+)?$`)

// IsNumber reports whether token is a decimal number.
func IsNumber(token string) bool {
	return numberRegex.MatchString(strings.TrimSpace(token))
}

// Parse converts token to a float, treating a comma as the decimal separator.
func Parse(token string) (float64, bool) {
	token = strings.TrimSpace(token)
	if !numberRegex.MatchString(token) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.Replace(token, ",", ".", 1), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Coerce maps an empty token to 0.0, a number to its float value and leaves
// everything else as the original string.
func Coerce(token string) any {
	if strings.TrimSpace(token) == "" {
		return 0.0
	}
	if v, ok := Parse(token); ok {
		return v
	}
	return token
}
