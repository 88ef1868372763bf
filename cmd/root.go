// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 AeroAPI Project

package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

var (
	// Upstream (FSUIPC WebSocket Server) flags
	upstreamURL   string
	wsUsername    string
	wsNoSSLVerify bool

	// Downstream (client-facing) flags
	listenHost string
	listenPort int
	listenPath string
	interval   time.Duration

	// Optional NMEA serial output
	gpsoutPort string
	gpsoutBaud int
)

var rootCmd = &cobra.Command{
	Use:   "simbridge",
	Short: "FSUIPC to client-schema WebSocket bridge",
	Long: `Simbridge - A bidirectional bridge between an FSUIPC WebSocket Server
and flight-data consumers.

Upstream it declares the offset table, reads it on a fixed interval and
normalizes the raw values into a grouped client schema. Downstream it
serves a WebSocket endpoint that broadcasts state snapshots and accepts
SetSimData command batches, which are encoded and written back to the
simulator.

For upstream authentication, the password is read from the
SIMBRIDGE_PASSWORD environment variable, or prompted interactively if not
set. A --password flag is intentionally not provided to avoid leaking
credentials in shell history.`,
	Version: "1.0.0",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&upstreamURL, "upstream", "u",
		"ws://localhost:2048/fsuipc/", "FSUIPC WebSocket Server URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "",
		"Username for upstream HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false,
		"Skip TLS certificate verification (wss:// only)")

	rootCmd.PersistentFlags().StringVar(&listenHost, "listen-host", "0.0.0.0",
		"Downstream listen address")
	rootCmd.PersistentFlags().IntVar(&listenPort, "listen-port", 2992,
		"Downstream listen port")
	rootCmd.PersistentFlags().StringVar(&listenPath, "path", "/api/v1",
		"Downstream WebSocket path")
	rootCmd.PersistentFlags().DurationVar(&interval, "interval", 250*time.Millisecond,
		"Upstream read and downstream broadcast interval")

	rootCmd.PersistentFlags().StringVar(&gpsoutPort, "gpsout-port", "",
		"Serial port for NMEA position output (disabled when empty)")
	rootCmd.PersistentFlags().IntVar(&gpsoutBaud, "gpsout-baud", 4800,
		"Baud rate for NMEA output")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
