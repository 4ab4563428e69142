package topreport

import (
	"math"
	"strconv"
	"strings"
)

// numericPrefix splits token into its leading run of digits and '.' and the
// remaining suffix ("10.90s" -> "10.90", "s").
func numericPrefix(token string) (number, suffix string) {
	i := 0
	for i < len(token) && (token[i] == '.' || (token[i] >= '0' && token[i] <= '9')) {
		i++
	}
	return token[:i], token[i:]
}

func parseNumber(token string) (float64, error) {
	number, _ := numericPrefix(strings.TrimSpace(token))
	v, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, strconv.ErrRange
	}
	return v, nil
}

// headerNumber parses an advisory header value, falling back to 0.
func headerNumber(token string) float64 {
	v, err := parseNumber(token)
	if err != nil {
		return 0
	}
	return v
}

// bodyNumber parses a table column; failures name the column.
func bodyNumber(token, column string) (float64, error) {
	v, err := parseNumber(token)
	if err != nil {
		return 0, formatError("column %s: cannot parse %q as a number", column, token)
	}
	return v, nil
}

// valueUnit returns the unit suffix of a value token such as "10.90s".
func valueUnit(token string) string {
	_, suffix := numericPrefix(strings.TrimSpace(token))
	return suffix
}
