// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 AeroAPI Project

package transform

import (
	"math"
	"strconv"
)

// Unit conversion factors
const (
	MetersToFeet = 3.28084
	MpsToKnots   = 1.943844
)

// FSUIPC scaling factors
const (
	scale65536 = 65536.0
	scale16383 = 16383.0
	scale256   = 256.0
	scale128   = 128.0
	scale16    = 16.0

	// Angular: raw values are fractions of a full turn in 65536*65536 units.
	turnToDegFactor = 360.0 / (scale65536 * scale65536)

	// Latitude: 90 degrees spans 10001750 * 65536 * 65536 units.
	latScale = 10001750.0 * scale65536 * scale65536

	// Longitude: 360 degrees spans 65536^4 units.
	lonScale = scale65536 * scale65536 * scale65536 * scale65536

	// Millibars*16 to inches of mercury.
	mbToInHg = 0.02953

	// Vertical speed: raw is m/s * 256; fused to ft/min in one constant to
	// avoid intermediate rounding drift.
	vsRawToFpm = 60.0 * MetersToFeet / scale256
)

// toFloat coerces a JSON-decoded raw value to float64.
func toFloat(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// toUint coerces a raw value to an unsigned integer, rejecting negatives
// and non-numeric input.
func toUint(raw interface{}) (uint64, bool) {
	f, ok := toFloat(raw)
	if !ok || f < 0 {
		return 0, false
	}
	return uint64(f), true
}

// Norm360 normalizes an angle in degrees into [0, 360).
func Norm360(deg float64) float64 {
	return math.Mod(math.Mod(deg, 360.0)+360.0, 360.0)
}

// Lower16 extracts the low 16 bits of a raw unsigned value. FSUIPC exposes
// several 16-bit offsets that only read reliably as 32-bit words.
func Lower16(raw uint64) uint64 {
	return raw & 0xFFFF
}

// Signed16 reinterprets the low 16 bits of raw as a signed value.
func Signed16(raw uint64) int64 {
	v := int64(Lower16(raw))
	if v >= 0x8000 {
		v -= 0x10000
	}
	return v
}

// ExtractBit reports whether the given bit of raw is set.
func ExtractBit(raw interface{}, bit uint) (bool, error) {
	v, ok := toUint(raw)
	if !ok {
		return false, &Error{Transform: "bit", Raw: raw, Reason: "not an unsigned integer"}
	}
	return (v>>bit)&1 != 0, nil
}

// DecodeBCD decodes nibbles of raw as BCD digits, most significant first,
// returning the digit-weighted decimal value. nibbles is the number of
// 4-bit groups to read starting from bit (nibbles*4 - 4).
func DecodeBCD(raw uint64, nibbles uint) (int64, error) {
	var result int64
	for i := int(nibbles) - 1; i >= 0; i-- {
		digit := (raw >> (uint(i) * 4)) & 0xF
		if digit > 9 {
			return 0, &Error{Transform: "bcd", Raw: raw,
				Reason: "nibble value exceeds 9"}
		}
		result = result*10 + int64(digit)
	}
	return result, nil
}

// Scale returns a linear transform computing raw / divisor.
func Scale(divisor float64) Func {
	return func(raw interface{}) (interface{}, error) {
		f, ok := toFloat(raw)
		if !ok {
			return nil, &Error{Transform: "scale", Raw: raw, Reason: "not numeric"}
		}
		return f / divisor, nil
	}
}

// ScaleMul returns a transform computing raw * factor.
func ScaleMul(factor float64) Func {
	return func(raw interface{}) (interface{}, error) {
		f, ok := toFloat(raw)
		if !ok {
			return nil, &Error{Transform: "scaleMul", Raw: raw, Reason: "not numeric"}
		}
		return f * factor, nil
	}
}
