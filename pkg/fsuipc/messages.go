// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 AeroAPI Project

// Package fsuipc speaks the FSUIPC WebSocket Server protocol: offset
// declaration, interval reads and offset writes over a single JSON
// WebSocket connection with the "fsuipc" subprotocol.
package fsuipc

import (
	"encoding/json"

	"github.com/aeroapi/simbridge/pkg/offsets"
)

// Protocol command verbs.
const (
	CmdDeclare = "offsets.declare"
	CmdRead    = "offsets.read"
	CmdWrite   = "offsets.write"
)

// DeclareOffset is one entry of an offsets.declare command.
type DeclareOffset struct {
	Name    string `json:"name"`
	Address uint32 `json:"address"`
	Type    string `json:"type"`
	Size    int    `json:"size"`
}

// DeclareMessage registers a named offset group with the server.
type DeclareMessage struct {
	Command string          `json:"command"`
	Name    string          `json:"name"`
	Offsets []DeclareOffset `json:"offsets"`
}

// NewDeclare builds the declaration for every signal in the table, in
// declaration order.
func NewDeclare(groupName string, table *offsets.SignalTable) DeclareMessage {
	msg := DeclareMessage{Command: CmdDeclare, Name: groupName}
	for _, sig := range table.Signals() {
		msg.Offsets = append(msg.Offsets, DeclareOffset{
			Name:    sig.Name,
			Address: sig.Address,
			Type:    sig.RawType,
			Size:    sig.Size,
		})
	}
	return msg
}

// ReadMessage starts continuous interval reads of a declared group.
type ReadMessage struct {
	Command    string `json:"command"`
	Name       string `json:"name"`
	IntervalMs int    `json:"interval"`
}

// WriteValue is one offset write.
type WriteValue struct {
	Address uint32 `json:"address"`
	Type    string `json:"type"`
	Size    int    `json:"size"`
	Value   int64  `json:"value"`
}

// WriteMessage writes raw values to offsets.
type WriteMessage struct {
	Command string       `json:"command"`
	Values  []WriteValue `json:"values"`
}

// Status is a command acknowledgement frame.
type Status struct {
	Command      string `json:"command"`
	Success      bool   `json:"success"`
	ErrorMessage string `json:"errorMessage"`
}

// ParseIncoming classifies one server frame. Exactly one of the returns
// is non-nil for a recognized frame: a payload map of signal name to raw
// value, or a command status. Unrecognized frames yield (nil, nil, nil)
// and are skipped by the caller.
func ParseIncoming(data []byte) (map[string]interface{}, *Status, error) {
	var frame map[string]interface{}
	if err := json.Unmarshal(data, &frame); err != nil {
		return nil, nil, err
	}

	_, hasCmd := frame["command"]
	_, hasSuccess := frame["success"]
	_, hasData := frame["data"]
	_, hasValues := frame["values"]
	_, hasOffsets := frame["offsets"]
	if hasCmd && hasSuccess && !hasData && !hasValues && !hasOffsets {
		st := &Status{}
		if s, ok := frame["command"].(string); ok {
			st.Command = s
		}
		if b, ok := frame["success"].(bool); ok {
			st.Success = b
		}
		if s, ok := frame["errorMessage"].(string); ok {
			st.ErrorMessage = s
		}
		return nil, st, nil
	}

	payload := frame["data"]
	if payload == nil {
		payload = frame["values"]
	}
	if payload == nil {
		payload = frame
	}
	return normalizePayload(payload), nil, nil
}

// normalizePayload accepts both payload encodings the server emits: a
// plain name→value map, or a list of {name, value} objects.
func normalizePayload(payload interface{}) map[string]interface{} {
	switch p := payload.(type) {
	case map[string]interface{}:
		return p
	case []interface{}:
		out := make(map[string]interface{}, len(p))
		for _, item := range p {
			m, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			name, ok := m["name"].(string)
			if !ok {
				continue
			}
			out[name] = m["value"]
		}
		return out
	}
	return nil
}
