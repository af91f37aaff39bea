package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// IntValue converts a JSON value to int. Numbers truncate toward zero, numeric
// strings such as "12", "12.0" or "+5" are accepted, booleans map to 0/1.
// ok is false for missing, null or non-numeric values.
func IntValue(r gjson.Result) (int, bool) {
	switch r.Type {
	case gjson.Number:
		return int(r.Float()), true
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(r.Str), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return int(f), true
	case gjson.True:
		return 1, true
	case gjson.False:
		return 0, true
	default:
		return 0, false
	}
}

// SafeInt is IntValue defaulting to zero.
func SafeInt(r gjson.Result) int {
	v, _ := IntValue(r)
	return v
}

// SafeFloat converts a JSON number or numeric string to float64, else zero.
func SafeFloat(r gjson.Result) float64 {
	switch r.Type {
	case gjson.Number:
		return r.Float()
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(r.Str), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	default:
		return 0
	}
}

// SafeBool accepts JSON booleans, 0/1 and "true"/"false"-style strings.
func SafeBool(r gjson.Result) bool {
	switch r.Type {
	case gjson.True:
		return true
	case gjson.Number:
		return r.Float() != 0
	case gjson.String:
		b, err := strconv.ParseBool(strings.TrimSpace(r.Str))
		return err == nil && b
	default:
		return false
	}
}

// ParseMinutes reads minutes played from "MM:SS", a decimal string or a number.
// Anything else, including "Did Not Play", is zero.
func ParseMinutes(r gjson.Result) float64 {
	if r.Type != gjson.String {
		return SafeFloat(r)
	}
	s := strings.TrimSpace(r.Str)
	if i := strings.IndexByte(s, ':'); i >= 0 {
		m, err := strconv.Atoi(s[:i])
		if err != nil {
			return 0
		}
		sec := 0
		if rest := s[i+1:]; rest != "" {
			if sec, err = strconv.Atoi(rest); err != nil {
				return 0
			}
		}
		return float64(m) + float64(sec)/60
	}
	return SafeFloat(r)
}
