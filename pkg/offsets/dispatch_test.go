// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 AeroAPI Project

package offsets

import (
	"errors"
	"math"
	"testing"

	"github.com/aeroapi/simbridge/pkg/transform"
)

// fakeStore records UpdatePartial merges the way the real store does,
// plus a count of derive passes.
type fakeStore struct {
	groups  map[Group]map[string]interface{}
	derives int
}

func newFakeStore() *fakeStore {
	return &fakeStore{groups: make(map[Group]map[string]interface{})}
}

func (s *fakeStore) UpdatePartial(group Group, fields map[string]interface{}) {
	g := s.groups[group]
	if g == nil {
		g = make(map[string]interface{})
		s.groups[group] = g
	}
	for k, v := range fields {
		g[k] = v
	}
}

func (s *fakeStore) ComputeDerived() { s.derives++ }

func newTestDispatcher(t *testing.T, store Store) *Dispatcher {
	t.Helper()
	reg := transform.NewRegistry()
	tbl, err := NewSignalTable(DefaultSignals(), reg)
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	return NewDispatcher(tbl, reg, store, t.Logf)
}

func TestDispatch_SingleSignal(t *testing.T) {
	store := newFakeStore()
	d := newTestDispatcher(t, store)

	if err := d.Dispatch("IndicatedAirspeed", float64(128*95)); err != nil {
		t.Fatalf("dispatch error: %v", err)
	}
	v, ok := store.groups[GroupPosition]["indicatedAirspeedKts"]
	if !ok {
		t.Fatal("airspeed not stored")
	}
	if math.Abs(v.(float64)-95) > 1e-9 {
		t.Errorf("expected 95 kts, got %v", v)
	}
	if store.derives != 0 {
		t.Error("single dispatch must not trigger a derive pass")
	}
}

func TestDispatch_UnknownSignal(t *testing.T) {
	d := newTestDispatcher(t, newFakeStore())
	err := d.Dispatch("NoSuchOffset", float64(1))
	if !errors.Is(err, ErrUnknownSignal) {
		t.Errorf("expected ErrUnknownSignal, got %v", err)
	}
}

func TestDispatch_BitFanOut(t *testing.T) {
	store := newFakeStore()
	d := newTestDispatcher(t, store)

	// Bits 0 (nav) and 3 (taxi) set, 2 (landing) and 4 (strobe) clear.
	if err := d.Dispatch("LightsBits", float64(0b01001)); err != nil {
		t.Fatalf("dispatch error: %v", err)
	}
	lights := store.groups[GroupLights]
	expected := map[string]bool{
		"navigationLightsSwitchOn": true,
		"landingLightsSwitchOn":    false,
		"taxiLightsSwitchOn":       true,
		"strobeLightsSwitchOn":     false,
	}
	for field, want := range expected {
		got, ok := lights[field]
		if !ok {
			t.Errorf("%s missing from lights group", field)
			continue
		}
		if got != want {
			t.Errorf("%s: expected %v, got %v", field, want, got)
		}
	}
}

func TestDispatchBatch_BadFieldDoesNotPoisonBatch(t *testing.T) {
	store := newFakeStore()
	d := newTestDispatcher(t, store)

	d.DispatchBatch(map[string]interface{}{
		"IndicatedAirspeed": float64(128 * 80),
		"Com1Active":        float64(0x2A45), // invalid BCD nibble
		"BatteryMain":       float64(1),
	})

	if _, ok := store.groups[GroupPosition]["indicatedAirspeedKts"]; !ok {
		t.Error("valid airspeed dropped alongside the bad field")
	}
	if _, ok := store.groups[GroupSystems]["batteryOn"]; !ok {
		t.Error("valid battery flag dropped alongside the bad field")
	}
	if _, ok := store.groups[GroupRadios]; ok {
		t.Error("invalid radio frequency must not be stored")
	}
	if store.derives != 1 {
		t.Errorf("expected exactly one derive pass, got %d", store.derives)
	}
}

func TestDispatchBatch_PartialGroupMerge(t *testing.T) {
	store := newFakeStore()
	d := newTestDispatcher(t, store)

	d.DispatchBatch(map[string]interface{}{
		"LatitudeDeg":  47.4502,
		"LongitudeDeg": -122.3088,
	})
	d.DispatchBatch(map[string]interface{}{
		"IndicatedAirspeed": float64(128 * 70),
	})

	pos := store.groups[GroupPosition]
	if pos["latitudeDeg"] != 47.4502 {
		t.Errorf("latitude lost after later partial batch: %v", pos["latitudeDeg"])
	}
	if _, ok := pos["indicatedAirspeedKts"]; !ok {
		t.Error("second batch field missing")
	}
	if store.derives != 2 {
		t.Errorf("expected a derive pass per batch, got %d", store.derives)
	}
}

func TestDispatchBatch_InputsRouting(t *testing.T) {
	store := newFakeStore()
	d := newTestDispatcher(t, store)

	d.DispatchBatch(map[string]interface{}{
		"BrakeLeft":         float64(14000),
		"MagneticVariation": float64(0x10000 - 1820),
	})

	inputs := store.groups[GroupInputs]
	if inputs == nil {
		t.Fatal("derivation inputs not routed to the inputs group")
	}
	if _, ok := inputs["brakeLeft"]; !ok {
		t.Error("brakeLeft missing from inputs")
	}
	if _, ok := inputs["magVarDeg"]; !ok {
		t.Error("magVarDeg missing from inputs")
	}
}
