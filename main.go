// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 AeroAPI Project
//
// Simbridge - FSUIPC to client-schema WebSocket bridge
//
// Translates raw simulator offsets from an FSUIPC WebSocket Server into a
// normalized grouped telemetry schema, and client commands back into raw
// offset writes.

package main

import (
	"os"

	"github.com/aeroapi/simbridge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
