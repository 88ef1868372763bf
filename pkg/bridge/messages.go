// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 AeroAPI Project

package bridge

import "encoding/json"

// CommandRequest is one entry of a SetSimData batch.
type CommandRequest struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

// SetSimData is a client command frame. Current clients send a commands
// array; the legacy form carried a single control/value pair at the top
// level.
type SetSimData struct {
	Type     string           `json:"type"`
	Commands []CommandRequest `json:"commands"`
	Control  string           `json:"control"`
	Value    interface{}      `json:"value"`
}

// Requests returns the command list in canonical form, folding the
// legacy single-command shape into a one-element batch.
func (m *SetSimData) Requests() []CommandRequest {
	if len(m.Commands) > 0 {
		return m.Commands
	}
	if m.Control != "" {
		return []CommandRequest{{Name: m.Control, Value: m.Value}}
	}
	return nil
}

// CommandResult is the per-command outcome of a batch.
type CommandResult struct {
	Name string `json:"name"`
	OK   bool   `json:"ok"`
}

// SetSimDataAck acknowledges a SetSimData batch, one result per command
// in request order.
type SetSimDataAck struct {
	Type    string          `json:"type"`
	Results []CommandResult `json:"results"`
}

// parseClientFrame decodes one inbound client frame. Non-SetSimData
// frames return (nil, false) and are ignored.
func parseClientFrame(data []byte) (*SetSimData, bool) {
	var msg SetSimData
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, false
	}
	if msg.Type != "SetSimData" {
		return nil, false
	}
	return &msg, true
}
