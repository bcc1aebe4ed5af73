package cgen

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Int renders an integer literal
func Int(v int) string {
	return strconv.Itoa(v)
}

// Bool renders a boolean as 1 or 0
func Bool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// Ref takes the address of a symbol
func Ref(name string) string {
	return "&" + name
}

// Mul renders the product of two integers without folding it
func Mul(a, b int) string {
	return fmt.Sprintf("%d * %d", a, b)
}

// Hex8 renders a byte as a two digit hex literal
func Hex8(v byte) string {
	return fmt.Sprintf("0x%02x", v)
}

// Float renders v as the shortest decimal that reads back to the same
// value, always with a fractional part. Magnitudes below 1e-4 or from 1e16
// upwards use exponent form.
func Float(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	if a := math.Abs(v); a != 0 && (a < 1e-4 || a >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
