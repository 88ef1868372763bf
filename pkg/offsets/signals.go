// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 AeroAPI Project

// Package offsets holds the declarative mapping tables between FSUIPC
// offsets and the normalized client schema: read signals, write commands,
// and the dispatcher that routes incoming payload batches through the
// transform registry into the state store.
package offsets

import (
	"errors"
	"fmt"

	"github.com/aeroapi/simbridge/pkg/transform"
)

// Group identifies one block of the normalized telemetry schema.
type Group string

const (
	GroupPosition    Group = "position"
	GroupAttitude    Group = "attitude"
	GroupLights      Group = "lights"
	GroupSystems     Group = "systems"
	GroupLevers      Group = "levers"
	GroupRadios      Group = "radios"
	GroupAutopilot   Group = "autopilot"
	GroupEnvironment Group = "environment"
	GroupIndicators  Group = "indicators"
	GroupSimulation  Group = "simulation"

	// GroupInputs holds derivation-only values (brake pedals, magnetic
	// variation, ground elevation). It is never broadcast.
	GroupInputs Group = "inputs"
)

var validGroups = map[Group]bool{
	GroupPosition:    true,
	GroupAttitude:    true,
	GroupLights:      true,
	GroupSystems:     true,
	GroupLevers:      true,
	GroupRadios:      true,
	GroupAutopilot:   true,
	GroupEnvironment: true,
	GroupIndicators:  true,
	GroupSimulation:  true,
	GroupInputs:      true,
}

// Raw value types understood by the FSUIPC WebSocket Server.
const (
	RawInt    = "int"
	RawUint   = "uint"
	RawShort  = "short"
	RawFloat  = "float"
	RawString = "string"
	RawLat    = "lat"
	RawLon    = "lon"
)

// Sink names the (group, field) destination of a normalized value.
type Sink struct {
	Group Group
	Field string
}

// BitSink routes one bit of a raw word to a boolean field. A single raw
// read may fan out to several distinct fields this way.
type BitSink struct {
	Bit  uint
	Sink Sink
}

// Signal describes one upstream datum: where to read it, how the adapter
// should type it, and where its normalized value lands.
type Signal struct {
	Name      string
	Address   uint32
	RawType   string
	Size      int
	Transform string // empty means identity
	Sink      *Sink
	Bits      []BitSink
}

// SignalTable is the read-signal registry: immutable after construction,
// validated at load time.
type SignalTable struct {
	byName map[string]Signal
	order  []string
}

// NewSignalTable builds a table from signals, rejecting duplicate names,
// unknown sink groups, and unresolvable transform references so that a
// typo in the table is a startup failure rather than a silent runtime
// no-op.
func NewSignalTable(signals []Signal, transforms *transform.Registry) (*SignalTable, error) {
	t := &SignalTable{byName: make(map[string]Signal, len(signals))}
	for _, sig := range signals {
		if sig.Name == "" {
			return nil, errors.New("signal with empty name")
		}
		if _, dup := t.byName[sig.Name]; dup {
			return nil, fmt.Errorf("duplicate signal name %q", sig.Name)
		}
		if sig.Sink == nil && len(sig.Bits) == 0 {
			return nil, fmt.Errorf("signal %q has no sink", sig.Name)
		}
		if sig.Sink != nil && !validGroups[sig.Sink.Group] {
			return nil, fmt.Errorf("signal %q: unknown group %q", sig.Name, sig.Sink.Group)
		}
		for _, b := range sig.Bits {
			if !validGroups[b.Sink.Group] {
				return nil, fmt.Errorf("signal %q bit %d: unknown group %q",
					sig.Name, b.Bit, b.Sink.Group)
			}
		}
		if sig.Transform != "" {
			if _, err := transforms.Resolve(sig.Transform); err != nil {
				return nil, fmt.Errorf("signal %q: %w", sig.Name, err)
			}
		}
		t.byName[sig.Name] = sig
		t.order = append(t.order, sig.Name)
	}
	return t, nil
}

// Lookup returns the descriptor registered under name.
func (t *SignalTable) Lookup(name string) (Signal, bool) {
	sig, ok := t.byName[name]
	return sig, ok
}

// Signals returns all descriptors in declaration order.
func (t *SignalTable) Signals() []Signal {
	out := make([]Signal, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.byName[name])
	}
	return out
}

// Len returns the number of registered signals.
func (t *SignalTable) Len() int {
	return len(t.order)
}
