// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 AeroAPI Project

package offsets

import (
	"errors"
	"fmt"

	"github.com/aeroapi/simbridge/pkg/transform"
)

// ErrUnknownSignal is returned when an upstream payload names a signal
// that is not in the table.
var ErrUnknownSignal = errors.New("unknown signal")

// Store is the sink the dispatcher writes normalized values into.
type Store interface {
	// UpdatePartial merges fields into group without touching fields the
	// update does not name.
	UpdatePartial(group Group, fields map[string]interface{})
	// ComputeDerived recomputes values synthesized from stored state.
	ComputeDerived()
}

// Dispatcher routes upstream payload batches through the transform
// registry into the state store. A bad value affects only its own field;
// the rest of the batch still lands.
type Dispatcher struct {
	table      *SignalTable
	transforms *transform.Registry
	store      Store
	logf       func(format string, args ...interface{})
}

// NewDispatcher wires the signal table, transform registry and store
// together. logf receives per-field error reports; nil disables them.
func NewDispatcher(table *SignalTable, transforms *transform.Registry, store Store,
	logf func(format string, args ...interface{})) *Dispatcher {
	if logf == nil {
		logf = func(string, ...interface{}) {}
	}
	return &Dispatcher{table: table, transforms: transforms, store: store, logf: logf}
}

// Dispatch normalizes a single named raw value and merges it into the
// store. Derived values are not recomputed; batch callers do that once
// per batch.
func (d *Dispatcher) Dispatch(name string, raw interface{}) error {
	updates := make(map[Group]map[string]interface{})
	if err := d.stage(updates, name, raw); err != nil {
		return err
	}
	for group, fields := range updates {
		d.store.UpdatePartial(group, fields)
	}
	return nil
}

// DispatchBatch normalizes one upstream payload batch. Every decodable
// field is merged; fields that fail to decode are logged and skipped.
// Derived values are recomputed once after the merge.
func (d *Dispatcher) DispatchBatch(values map[string]interface{}) {
	updates := make(map[Group]map[string]interface{})
	for name, raw := range values {
		if err := d.stage(updates, name, raw); err != nil {
			d.logf("dispatch %s: %v", name, err)
		}
	}
	for group, fields := range updates {
		d.store.UpdatePartial(group, fields)
	}
	d.store.ComputeDerived()
}

func (d *Dispatcher) stage(updates map[Group]map[string]interface{}, name string, raw interface{}) error {
	sig, ok := d.table.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSignal, name)
	}
	if len(sig.Bits) > 0 {
		for _, b := range sig.Bits {
			set, err := transform.ExtractBit(raw, b.Bit)
			if err != nil {
				return err
			}
			stageField(updates, b.Sink, set)
		}
		return nil
	}
	v, err := d.transforms.Apply(sig.Transform, raw)
	if err != nil {
		return err
	}
	stageField(updates, *sig.Sink, v)
	return nil
}

func stageField(updates map[Group]map[string]interface{}, sink Sink, v interface{}) {
	fields := updates[sink.Group]
	if fields == nil {
		fields = make(map[string]interface{})
		updates[sink.Group] = fields
	}
	fields[sink.Field] = v
}
