// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 AeroAPI Project

package transform

import (
	"errors"
	"math"
	"testing"
)

func TestResolve_Unknown(t *testing.T) {
	r := NewRegistry()
	_, err := r.Resolve("noSuchTransform")
	if err == nil {
		t.Fatal("expected error for unregistered transform")
	}
	if !errors.Is(err, ErrUnknownTransform) {
		t.Errorf("expected ErrUnknownTransform, got %v", err)
	}
}

func TestApply_IdentityForEmptyName(t *testing.T) {
	r := NewRegistry()
	v, err := r.Apply("", 42.5)
	if err != nil {
		t.Fatalf("identity apply failed: %v", err)
	}
	if v != 42.5 {
		t.Errorf("identity should pass value through, got %v", v)
	}
}

func TestApply_Pure(t *testing.T) {
	// Identical raw input must always yield identical normalized output.
	r := NewRegistry()
	for _, name := range []string{"knots128", "headingDeg", "bcdFreqCom", "pct16383"} {
		raw := 0x2345
		first, err1 := r.Apply(name, float64(raw))
		second, err2 := r.Apply(name, float64(raw))
		if (err1 == nil) != (err2 == nil) {
			t.Errorf("%s: inconsistent errors: %v vs %v", name, err1, err2)
			continue
		}
		if err1 == nil && first != second {
			t.Errorf("%s: not pure: %v != %v", name, first, second)
		}
	}
}

func TestLinearScalings(t *testing.T) {
	r := NewRegistry()
	tests := []struct {
		name      string
		transform string
		raw       float64
		expected  float64
	}{
		{"airspeed 1/128 kt units", "knots128", 128 * 120, 120},
		{"ground elevation m*256", "meters256", 256 * 500, 500},
		{"manifold pressure", "manifoldInHg", 1024 * 24, 24},
		{"msl altitude meters to feet", "metersToFeet", 1000, 3280.84},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := r.Apply(tt.transform, tt.raw)
			if err != nil {
				t.Fatalf("apply error: %v", err)
			}
			if math.Abs(v.(float64)-tt.expected) > 1e-6 {
				t.Errorf("expected %v, got %v", tt.expected, v)
			}
		})
	}
}

func TestVerticalSpeedFusedConstant(t *testing.T) {
	// raw = 256 * m/s; 256 raw = 1 m/s = 60 m/min = 196.8504 ft/min.
	r := NewRegistry()
	v, err := r.Apply("vsToFpm", 256.0)
	if err != nil {
		t.Fatalf("apply error: %v", err)
	}
	if math.Abs(v.(float64)-196.8504) > 1e-4 {
		t.Errorf("expected 196.8504 fpm, got %v", v)
	}
}

func TestHeadingDeg_QuarterTurn(t *testing.T) {
	r := NewRegistry()
	raw := float64(uint64(1) << 30) // quarter of 2^32
	v, err := r.Apply("headingDeg", raw)
	if err != nil {
		t.Fatalf("apply error: %v", err)
	}
	if math.Abs(v.(float64)-90.0) > 1e-9 {
		t.Errorf("quarter turn should be 90 degrees, got %v", v)
	}
}

func TestDecodeBCD(t *testing.T) {
	tests := []struct {
		name     string
		raw      uint64
		nibbles  uint
		expected int64
		wantErr  bool
	}{
		{"four digits", 0x2345, 4, 2345, false},
		{"leading zero", 0x0042, 4, 42, false},
		{"all zeros", 0x0000, 4, 0, false},
		{"nibble above 9", 0x23A5, 4, 0, true},
		{"hex F nibble", 0xFFFF, 4, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := DecodeBCD(tt.raw, tt.nibbles)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error for invalid BCD nibble")
				}
				return
			}
			if err != nil {
				t.Fatalf("decode error: %v", err)
			}
			if v != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, v)
			}
		})
	}
}

func TestBCDFrequency_RoundTrip(t *testing.T) {
	// 0x2345 encodes 123.45 MHz with the leading 1 assumed -> 123450 kHz.
	r := NewRegistry()
	v, err := r.Apply("bcdFreqCom", float64(0x2345))
	if err != nil {
		t.Fatalf("apply error: %v", err)
	}
	if v.(int64) != 123450 {
		t.Errorf("expected 123450 kHz, got %v", v)
	}
}

func TestBCDFrequency_InvalidNibble(t *testing.T) {
	r := NewRegistry()
	_, err := r.Apply("bcdFreqCom", float64(0x2A45))
	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("expected *transform.Error, got %v", err)
	}
}

func TestBCDFrequency_OutOfBand(t *testing.T) {
	r := NewRegistry()
	// 0x9999 -> 199.99 MHz, far outside the COM band.
	if _, err := r.Apply("bcdFreqCom", float64(0x9999)); err == nil {
		t.Error("expected out-of-band COM frequency to be rejected")
	}
	// 113.45 is a valid NAV frequency but not a valid COM one.
	if _, err := r.Apply("bcdFreqNav", float64(0x1345)); err != nil {
		t.Errorf("valid NAV frequency rejected: %v", err)
	}
	if _, err := r.Apply("bcdFreqCom", float64(0x1345)); err == nil {
		t.Error("NAV-band frequency should be outside the COM window")
	}
}

func TestBCDTransponder(t *testing.T) {
	r := NewRegistry()
	v, err := r.Apply("bcdTransponder", float64(0x1200))
	if err != nil {
		t.Fatalf("apply error: %v", err)
	}
	if v.(int64) != 1200 {
		t.Errorf("expected squawk 1200, got %v", v)
	}
	if _, err := r.Apply("bcdTransponder", float64(0x8800)); err == nil {
		t.Error("squawk above 7777 should be rejected")
	}
}

func TestExtractBit_Independent(t *testing.T) {
	// Toggling bit 0 never changes the decoded value of bit 1.
	for _, base := range []uint64{0x0, 0x2, 0x4, 0xFC} {
		withBit0 := float64(base | 1)
		withoutBit0 := float64(base)

		b1a, err := ExtractBit(withBit0, 1)
		if err != nil {
			t.Fatalf("extract error: %v", err)
		}
		b1b, err := ExtractBit(withoutBit0, 1)
		if err != nil {
			t.Fatalf("extract error: %v", err)
		}
		if b1a != b1b {
			t.Errorf("bit 1 changed when bit 0 toggled (base=0x%X)", base)
		}

		b0, _ := ExtractBit(withBit0, 0)
		if !b0 {
			t.Errorf("bit 0 should read set (base=0x%X)", base)
		}
	}
}

func TestSigned16(t *testing.T) {
	tests := []struct {
		raw      uint64
		expected int64
	}{
		{0x0000, 0},
		{0x0001, 1},
		{0x7FFF, 32767},
		{0x8000, -32768},
		{0xFFFF, -1},
		{0xDEAD0001, 1}, // upper bits discarded
	}
	for _, tt := range tests {
		if v := Signed16(tt.raw); v != tt.expected {
			t.Errorf("Signed16(0x%X): expected %d, got %d", tt.raw, tt.expected, v)
		}
	}
}

func TestMagVarDeg_WestNegative(t *testing.T) {
	r := NewRegistry()
	// -1820 raw is about -10 degrees (west).
	raw := float64(0x10000 - 1820)
	v, err := r.Apply("magVarDeg", raw)
	if err != nil {
		t.Fatalf("apply error: %v", err)
	}
	if math.Abs(v.(float64)-(-9.9976)) > 0.01 {
		t.Errorf("expected about -10 degrees, got %v", v)
	}
}

func TestNorm360(t *testing.T) {
	tests := []struct {
		in       float64
		expected float64
	}{
		{0, 0},
		{360, 0},
		{365, 5},
		{-5, 355},
		{-365, 355},
		{720.5, 0.5},
	}
	for _, tt := range tests {
		if v := Norm360(tt.in); math.Abs(v-tt.expected) > 1e-9 {
			t.Errorf("Norm360(%v): expected %v, got %v", tt.in, tt.expected, v)
		}
	}
}

func TestBaroWindow(t *testing.T) {
	r := NewRegistry()
	// 16212 raw = 1013.25 mb = 29.92 inHg (standard pressure).
	v, err := r.Apply("baroInHgWindow", 16212.0)
	if err != nil {
		t.Fatalf("apply error: %v", err)
	}
	if math.Abs(v.(float64)-29.92) > 0.01 {
		t.Errorf("expected 29.92 inHg, got %v", v)
	}
	if _, err := r.Apply("baroInHgWindow", 400.0); err == nil {
		t.Error("raw pressure below window should be rejected")
	}
	// The unwindowed variant accepts the same value.
	if _, err := r.Apply("baroInHg", 400.0); err != nil {
		t.Errorf("unwindowed baro should accept any raw: %v", err)
	}
}

func TestKelvin256Celsius(t *testing.T) {
	r := NewRegistry()
	// 400 K * 256 is a realistic cylinder head temperature, 126.85 C.
	v, err := r.Apply("kelvin256Celsius", 102400.0)
	if err != nil {
		t.Fatalf("apply error: %v", err)
	}
	if math.Abs(v.(float64)-126.85) > 0.01 {
		t.Errorf("expected 126.85 C, got %v", v)
	}
	if _, err := r.Apply("kelvin256Celsius", 1e9); err == nil {
		t.Error("implausible temperature should be rejected")
	}
}

func TestPct16383_Clamped(t *testing.T) {
	r := NewRegistry()
	v, err := r.Apply("pct16383", 16383.0)
	if err != nil {
		t.Fatalf("apply error: %v", err)
	}
	if math.Abs(v.(float64)-100.0) > 1e-9 {
		t.Errorf("full deflection should be 100%%, got %v", v)
	}
	v, _ = r.Apply("pct16383", 0.0)
	if v.(float64) != 0 {
		t.Errorf("zero deflection should be 0%%, got %v", v)
	}
}

func TestNonNumericRawRejected(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"knots128", "headingDeg", "nonzeroBool", "bcdFreqCom"} {
		_, err := r.Apply(name, "not a number")
		var terr *Error
		if !errors.As(err, &terr) {
			t.Errorf("%s: expected *transform.Error for non-numeric raw, got %v", name, err)
		}
	}
}
