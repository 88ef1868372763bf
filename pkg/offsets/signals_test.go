// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 AeroAPI Project

package offsets

import (
	"errors"
	"testing"

	"github.com/aeroapi/simbridge/pkg/transform"
)

func TestNewSignalTable_Defaults(t *testing.T) {
	tbl, err := NewSignalTable(DefaultSignals(), transform.NewRegistry())
	if err != nil {
		t.Fatalf("default signal table failed validation: %v", err)
	}
	if tbl.Len() == 0 {
		t.Fatal("default table is empty")
	}

	sig, ok := tbl.Lookup("GearHandle")
	if !ok {
		t.Fatal("GearHandle missing from default table")
	}
	if sig.Address != 0x0BE8 {
		t.Errorf("GearHandle address: expected 0x0BE8, got 0x%04X", sig.Address)
	}
	if sig.Sink.Group != GroupLevers {
		t.Errorf("GearHandle group: expected levers, got %s", sig.Sink.Group)
	}

	// EGT and CHT share neither scale nor offset word; CHT is Kelvin*256.
	cht, ok := tbl.Lookup("Engine1Cht")
	if !ok {
		t.Fatal("Engine1Cht missing from default table")
	}
	if cht.Transform != "kelvin256Celsius" {
		t.Errorf("Engine1Cht transform: expected kelvin256Celsius, got %s", cht.Transform)
	}
}

func TestNewSignalTable_Rejections(t *testing.T) {
	reg := transform.NewRegistry()
	sink := &Sink{GroupPosition, "x"}

	tests := []struct {
		name    string
		signals []Signal
	}{
		{"duplicate name", []Signal{
			{Name: "A", Address: 1, RawType: RawUint, Size: 4, Sink: sink},
			{Name: "A", Address: 2, RawType: RawUint, Size: 4, Sink: sink},
		}},
		{"empty name", []Signal{
			{Address: 1, RawType: RawUint, Size: 4, Sink: sink},
		}},
		{"no sink", []Signal{
			{Name: "A", Address: 1, RawType: RawUint, Size: 4},
		}},
		{"unknown group", []Signal{
			{Name: "A", Address: 1, RawType: RawUint, Size: 4,
				Sink: &Sink{Group("bogus"), "x"}},
		}},
		{"unknown bit group", []Signal{
			{Name: "A", Address: 1, RawType: RawUint, Size: 4,
				Bits: []BitSink{{Bit: 0, Sink: Sink{Group("bogus"), "x"}}}},
		}},
		{"unresolvable transform", []Signal{
			{Name: "A", Address: 1, RawType: RawUint, Size: 4,
				Transform: "noSuchTransform", Sink: sink},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSignalTable(tt.signals, reg); err == nil {
				t.Error("expected construction to fail")
			}
		})
	}
}

func TestNewSignalTable_UnresolvableTransformIsUnknown(t *testing.T) {
	_, err := NewSignalTable([]Signal{
		{Name: "A", Address: 1, RawType: RawUint, Size: 4,
			Transform: "noSuchTransform", Sink: &Sink{GroupPosition, "x"}},
	}, transform.NewRegistry())
	if !errors.Is(err, transform.ErrUnknownTransform) {
		t.Errorf("expected ErrUnknownTransform, got %v", err)
	}
}

func TestSignals_DeclarationOrder(t *testing.T) {
	tbl, err := NewSignalTable(DefaultSignals(), transform.NewRegistry())
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	sigs := tbl.Signals()
	if sigs[0].Name != "LatitudeDeg" {
		t.Errorf("expected LatitudeDeg first, got %s", sigs[0].Name)
	}
	if sigs[len(sigs)-1].Name != "AircraftName" {
		t.Errorf("expected AircraftName last, got %s", sigs[len(sigs)-1].Name)
	}
}

func TestDefaultSignals_InputsNeverInBroadcastGroups(t *testing.T) {
	// Derivation-only signals must land in the inputs group so the store
	// can exclude them from snapshots.
	internal := map[string]bool{
		"MagneticVariation": true, "GroundElevation": true,
		"BrakeLeft": true, "BrakeRight": true, "ParkingBrake": true,
		"ApAltitudeHold": true, "ApVsHold": true, "BaroPressureFallback": true,
	}
	tbl, err := NewSignalTable(DefaultSignals(), transform.NewRegistry())
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	for _, sig := range tbl.Signals() {
		if sig.Sink == nil {
			continue
		}
		if internal[sig.Name] != (sig.Sink.Group == GroupInputs) {
			t.Errorf("%s: group %s does not match its derivation-only role",
				sig.Name, sig.Sink.Group)
		}
	}
}
