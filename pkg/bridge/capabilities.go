// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 AeroAPI Project

package bridge

import (
	"sort"

	"github.com/aeroapi/simbridge/pkg/offsets"
)

// ReadCapability advertises one readable field of the client schema.
type ReadCapability struct {
	Key   string `json:"key"`
	Group string `json:"group"`
	Field string `json:"field"`
}

// Capabilities is the first frame sent to every connecting client. It is
// computed from the registries, so a table edit changes the advertisement
// without touching this package.
type Capabilities struct {
	Type   string           `json:"type"`
	Reads  []ReadCapability `json:"reads"`
	Writes []string         `json:"writes"`
}

// NewCapabilities builds the advertisement from the live tables.
// Derivation-only signals are internal and not advertised.
func NewCapabilities(signals *offsets.SignalTable, commands *offsets.CommandTable) Capabilities {
	caps := Capabilities{Type: "Capabilities"}
	for _, sig := range signals.Signals() {
		if sig.Sink != nil && sig.Sink.Group != offsets.GroupInputs {
			caps.Reads = append(caps.Reads, ReadCapability{
				Key:   sig.Name,
				Group: string(sig.Sink.Group),
				Field: sig.Sink.Field,
			})
		}
		for _, b := range sig.Bits {
			if b.Sink.Group == offsets.GroupInputs {
				continue
			}
			caps.Reads = append(caps.Reads, ReadCapability{
				Key:   sig.Name,
				Group: string(b.Sink.Group),
				Field: b.Sink.Field,
			})
		}
	}
	for _, c := range commands.Commands() {
		caps.Writes = append(caps.Writes, c.Name)
	}
	sort.Strings(caps.Writes)
	return caps
}
