// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 AeroAPI Project

package offsets

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrUnknownCommand is returned when a client names a command that is not
// in the table.
var ErrUnknownCommand = errors.New("unknown write command")

// InvalidValueError reports a client-supplied value the command's encoder
// could not represent. Unparseable input is always an error, never a
// default.
type InvalidValueError struct {
	Command string
	Value   interface{}
	Reason  string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("command %s: invalid value %v: %s", e.Command, e.Value, e.Reason)
}

// Target is the FSUIPC destination of an encoded command value.
type Target struct {
	Address uint32
	Size    int
	DType   string
}

// Encoder turns a client-schema value into the raw integer written to the
// target offset. Implementations are selected per command entry.
type Encoder interface {
	Encode(value interface{}) (int64, error)
}

// Command binds a client-facing command name to its offset target and
// encoding rule.
type Command struct {
	Name    string
	Target  Target
	Encoder Encoder
}

// BoolDiscrete encodes a boolean as one of two discrete raw values.
type BoolDiscrete struct {
	Off int64
	On  int64
}

func (b BoolDiscrete) Encode(value interface{}) (int64, error) {
	on, err := coerceBool(value)
	if err != nil {
		return 0, err
	}
	if on {
		return b.On, nil
	}
	return b.Off, nil
}

// AxisScale encodes a lever position. Values in [-1, 1] are normalized
// deflections mapped onto 0..Max; anything outside that range is a raw
// position passed through clamped to [-Max, Max], negative meaning
// reverse thrust.
type AxisScale struct {
	Max int64
}

func (a AxisScale) Encode(value interface{}) (int64, error) {
	f, err := coerceFloat(value)
	if err != nil {
		return 0, err
	}
	if f >= -1 && f <= 1 {
		return int64(math.Round((f + 1) / 2 * float64(a.Max))), nil
	}
	v := int64(math.Round(f))
	if v < -a.Max {
		v = -a.Max
	} else if v > a.Max {
		v = a.Max
	}
	return v, nil
}

// Passthrough encodes an integral value unchanged, rejecting anything
// outside [Min, Max].
type Passthrough struct {
	Min int64
	Max int64
}

func (p Passthrough) Encode(value interface{}) (int64, error) {
	f, err := coerceFloat(value)
	if err != nil {
		return 0, err
	}
	v := int64(math.Round(f))
	if v < p.Min || v > p.Max {
		return 0, fmt.Errorf("value %d outside [%d, %d]", v, p.Min, p.Max)
	}
	return v, nil
}

func coerceBool(value interface{}) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case float64:
		if v == 0 {
			return false, nil
		}
		if v == 1 {
			return true, nil
		}
	case string:
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b, nil
		}
	}
	return false, errors.New("not a boolean")
}

func coerceFloat(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f, nil
		}
	}
	return 0, errors.New("not numeric")
}

// CommandTable is the write-command registry, immutable after
// construction.
type CommandTable struct {
	byName map[string]Command
	order  []string
}

// NewCommandTable builds a table from cmds, rejecting duplicate names and
// entries with no encoder or an empty target.
func NewCommandTable(cmds []Command) (*CommandTable, error) {
	t := &CommandTable{byName: make(map[string]Command, len(cmds))}
	for _, c := range cmds {
		if c.Name == "" {
			return nil, errors.New("command with empty name")
		}
		if _, dup := t.byName[c.Name]; dup {
			return nil, fmt.Errorf("duplicate command name %q", c.Name)
		}
		if c.Encoder == nil {
			return nil, fmt.Errorf("command %q has no encoder", c.Name)
		}
		if c.Target.Size <= 0 {
			return nil, fmt.Errorf("command %q has no target size", c.Name)
		}
		t.byName[c.Name] = c
		t.order = append(t.order, c.Name)
	}
	return t, nil
}

// EncodeCommand resolves name and encodes value for its target. The
// returned error is ErrUnknownCommand for an unregistered name or an
// *InvalidValueError when the value cannot be represented.
func (t *CommandTable) EncodeCommand(name string, value interface{}) (Target, int64, error) {
	c, ok := t.byName[name]
	if !ok {
		return Target{}, 0, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	raw, err := c.Encoder.Encode(value)
	if err != nil {
		return Target{}, 0, &InvalidValueError{Command: name, Value: value, Reason: err.Error()}
	}
	return c.Target, raw, nil
}

// Lookup returns the command registered under name.
func (t *CommandTable) Lookup(name string) (Command, bool) {
	c, ok := t.byName[name]
	return c, ok
}

// Commands returns all entries in declaration order.
func (t *CommandTable) Commands() []Command {
	out := make([]Command, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.byName[name])
	}
	return out
}

// DefaultCommands returns the stock write-command set.
func DefaultCommands() []Command {
	return []Command{
		{Name: "GEAR_HANDLE",
			Target:  Target{Address: 0x0BE8, Size: 4, DType: RawInt},
			Encoder: BoolDiscrete{Off: 0, On: 16383}},
		// The lowercase name is the established wire name for this
		// command; renaming it would break existing clients.
		{Name: "throttle",
			Target:  Target{Address: 0x088C, Size: 2, DType: RawShort},
			Encoder: AxisScale{Max: 16384}},
		{Name: "PARKING_BRAKE",
			Target:  Target{Address: 0x0BC8, Size: 2, DType: RawShort},
			Encoder: BoolDiscrete{Off: 0, On: 32767}},
		{Name: "AP_MASTER",
			Target:  Target{Address: 0x07BC, Size: 4, DType: RawInt},
			Encoder: BoolDiscrete{Off: 0, On: 1}},
	}
}
