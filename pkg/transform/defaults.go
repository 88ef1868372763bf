// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 AeroAPI Project

package transform

// Default transform set for the FSUIPC offset map. Numeric semantics follow
// the documented offset encodings: angles as turn fractions in 65536*65536
// units, speeds and altitudes as fixed-point scaled integers, radio
// frequencies as packed BCD.

// COM/NAV/transponder validity windows, kHz and squawk code respectively.
const (
	comFreqMinKhz = 118000
	comFreqMaxKhz = 136975
	navFreqMinKhz = 108000
	navFreqMaxKhz = 117950
	xpdrMaxCode   = 7777
)

// Barometric plausibility window for the fallback offset 0x0330, raw
// millibars*16 (~800-1100 mb).
const (
	baroRawMin = 12800
	baroRawMax = 17600
)

func registerDefaults(r *Registry) {
	// Linear scalings
	r.Register("knots128", Scale(scale128))
	r.Register("meters256", Scale(scale256))
	r.Register("meters256ToFeet", ScaleMul(MetersToFeet/scale256))
	r.Register("metersToFeet", ScaleMul(MetersToFeet))
	r.Register("manifoldInHg", Scale(1024.0))

	// Compound unit conversions (fused constants)
	r.Register("vsToFpm", ScaleMul(vsRawToFpm))
	r.Register("groundspeedKts", ScaleMul(MpsToKnots/scale65536))

	// Angular conversions
	r.Register("headingDeg", headingDeg)
	r.Register("pitchDegUp", angleDegNegated)
	r.Register("rollDegRight", angleDegNegated)
	r.Register("latToDeg", ScaleMul(90.0/latScale))
	r.Register("lonToDeg", ScaleMul(360.0/lonScale))
	r.Register("magVarDeg", magVarDeg)
	r.Register("headingBugDeg", ScaleMul(360.0/scale65536))
	r.Register("windDirDeg", ScaleMul(360.0/scale65536))

	// Booleans and percentages
	r.Register("nonzeroBool", nonzeroBool)
	r.Register("pct16383", pct16383)
	r.Register("leverPct", leverPct)
	r.Register("lower16", lower16Float)

	// Pressure
	r.Register("baroInHg", baroInHg(false))
	r.Register("baroInHgWindow", baroInHg(true))

	// Radios (BCD)
	r.Register("bcdFreqCom", bcdFreq("bcdFreqCom", comFreqMinKhz, comFreqMaxKhz))
	r.Register("bcdFreqNav", bcdFreq("bcdFreqNav", navFreqMinKhz, navFreqMaxKhz))
	r.Register("bcdTransponder", bcdTransponder)

	// Engine instruments
	r.Register("rpm", floatIdentity("rpm"))
	r.Register("egtCelsius", egtCelsius)
	r.Register("kelvin256Celsius", kelvin256Celsius)
	r.Register("tempCelsius", tempCelsius)

	// Identity-with-coercion passthroughs
	r.Register("feet", floatIdentity("feet"))
	r.Register("fpm", floatIdentity("fpm"))
	r.Register("knots", floatIdentity("knots"))
}

func floatIdentity(name string) Func {
	return func(raw interface{}) (interface{}, error) {
		f, ok := toFloat(raw)
		if !ok {
			return nil, &Error{Transform: name, Raw: raw, Reason: "not numeric"}
		}
		return f, nil
	}
}

func headingDeg(raw interface{}) (interface{}, error) {
	f, ok := toFloat(raw)
	if !ok {
		return nil, &Error{Transform: "headingDeg", Raw: raw, Reason: "not numeric"}
	}
	return Norm360(f * turnToDegFactor), nil
}

// angleDegNegated converts pitch/bank turn fractions. The simulator stores
// pitch-down and roll-left as positive; the client schema wants up/right
// positive, so the sign flips.
func angleDegNegated(raw interface{}) (interface{}, error) {
	f, ok := toFloat(raw)
	if !ok {
		return nil, &Error{Transform: "angleDeg", Raw: raw, Reason: "not numeric"}
	}
	return -f * turnToDegFactor, nil
}

// magVarDeg decodes the signed 16-bit magnetic variation word read as a
// 32-bit offset. East is positive.
func magVarDeg(raw interface{}) (interface{}, error) {
	u, ok := toUint(raw)
	if !ok {
		return nil, &Error{Transform: "magVarDeg", Raw: raw, Reason: "not an unsigned integer"}
	}
	return float64(Signed16(u)) * 360.0 / scale65536, nil
}

func nonzeroBool(raw interface{}) (interface{}, error) {
	f, ok := toFloat(raw)
	if !ok {
		return nil, &Error{Transform: "nonzeroBool", Raw: raw, Reason: "not numeric"}
	}
	return f != 0, nil
}

// pct16383 maps a 0..16383 handle position (read as u32) to 0..100 percent.
func pct16383(raw interface{}) (interface{}, error) {
	u, ok := toUint(raw)
	if !ok {
		return nil, &Error{Transform: "pct16383", Raw: raw, Reason: "not an unsigned integer"}
	}
	pct := float64(Lower16(u)) / scale16383 * 100.0
	if pct < 0 {
		pct = 0
	} else if pct > 100 {
		pct = 100
	}
	return pct, nil
}

// leverPct maps a signed 16-bit lever position to percent of 16384.
func leverPct(raw interface{}) (interface{}, error) {
	f, ok := toFloat(raw)
	if !ok {
		return nil, &Error{Transform: "leverPct", Raw: raw, Reason: "not numeric"}
	}
	v := int64(f)
	if v < 0 {
		v += 0x10000
	}
	return float64(v) / 16384.0 * 100.0, nil
}

func lower16Float(raw interface{}) (interface{}, error) {
	u, ok := toUint(raw)
	if !ok {
		return nil, &Error{Transform: "lower16", Raw: raw, Reason: "not an unsigned integer"}
	}
	return float64(Lower16(u)), nil
}

// baroInHg converts a millibars*16 word to inches of mercury. With the
// window enabled, raw values outside the plausible pressure range are
// rejected instead of producing a wild altimeter setting.
func baroInHg(window bool) Func {
	return func(raw interface{}) (interface{}, error) {
		u, ok := toUint(raw)
		if !ok {
			return nil, &Error{Transform: "baroInHg", Raw: raw, Reason: "not an unsigned integer"}
		}
		v := Lower16(u)
		if window && (v < baroRawMin || v > baroRawMax) {
			return nil, &Error{Transform: "baroInHg", Raw: raw,
				Reason: "raw pressure outside 800-1100 mb window"}
		}
		return float64(v) / scale16 * mbToInHg, nil
	}
}

// bcdFreq decodes a 4-digit BCD frequency word with an assumed leading "1":
// 0x2345 reads as 123.45 MHz, reported in kHz (123450).
func bcdFreq(name string, minKhz, maxKhz int64) Func {
	return func(raw interface{}) (interface{}, error) {
		u, ok := toUint(raw)
		if !ok {
			return nil, &Error{Transform: name, Raw: raw, Reason: "not an unsigned integer"}
		}
		digits, err := DecodeBCD(Lower16(u), 4)
		if err != nil {
			return nil, &Error{Transform: name, Raw: raw, Reason: "invalid BCD digit"}
		}
		khz := 100000 + digits*10
		if khz < minKhz || khz > maxKhz {
			return nil, &Error{Transform: name, Raw: raw,
				Reason: "frequency outside band"}
		}
		return khz, nil
	}
}

// bcdTransponder decodes a 4-digit BCD squawk code (0000-7777).
func bcdTransponder(raw interface{}) (interface{}, error) {
	u, ok := toUint(raw)
	if !ok {
		return nil, &Error{Transform: "bcdTransponder", Raw: raw, Reason: "not an unsigned integer"}
	}
	code, err := DecodeBCD(Lower16(u), 4)
	if err != nil {
		return nil, &Error{Transform: "bcdTransponder", Raw: raw, Reason: "invalid BCD digit"}
	}
	if code > xpdrMaxCode {
		return nil, &Error{Transform: "bcdTransponder", Raw: raw,
			Reason: "squawk code above 7777"}
	}
	return code, nil
}

// egtCelsius converts the EGT gauge word (16384 = 850 units) to Celsius.
func egtCelsius(raw interface{}) (interface{}, error) {
	f, ok := toFloat(raw)
	if !ok {
		return nil, &Error{Transform: "egtCelsius", Raw: raw, Reason: "not numeric"}
	}
	return f*850.0/16384.0 - 273.15, nil
}

// kelvin256Celsius converts a Kelvin*256 temperature word (cylinder head
// temperature) to Celsius, rejecting readings outside a plausible engine
// range rather than publishing garbage.
func kelvin256Celsius(raw interface{}) (interface{}, error) {
	f, ok := toFloat(raw)
	if !ok {
		return nil, &Error{Transform: "kelvin256Celsius", Raw: raw, Reason: "not numeric"}
	}
	c := f/scale256 - 273.15
	if c < -60 || c > 400 {
		return nil, &Error{Transform: "kelvin256Celsius", Raw: raw,
			Reason: "temperature outside plausible range"}
	}
	return c, nil
}

// tempCelsius converts degrees*256 to Celsius, rejecting readings outside
// a plausible outside-air range rather than publishing garbage.
func tempCelsius(raw interface{}) (interface{}, error) {
	f, ok := toFloat(raw)
	if !ok {
		return nil, &Error{Transform: "tempCelsius", Raw: raw, Reason: "not numeric"}
	}
	c := f / scale256
	if c < -60 || c > 60 {
		return nil, &Error{Transform: "tempCelsius", Raw: raw,
			Reason: "temperature outside plausible range"}
	}
	return c, nil
}
