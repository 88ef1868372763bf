// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 AeroAPI Project

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aeroapi/simbridge/pkg/fsuipc"
	"github.com/aeroapi/simbridge/pkg/offsets"
	"github.com/aeroapi/simbridge/pkg/transform"
)

var probeTimeout int

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Test the upstream FSUIPC connection",
	Long: `Connect to the FSUIPC WebSocket Server, declare a single offset and
wait for the first payload to come back.

This is useful for verifying:
  - The server is reachable and speaks the fsuipc subprotocol
  - HTTP Basic authentication works
  - The simulator is actually producing data

Exit codes:
  0 - Payload received
  1 - Connected but no payload within the timeout
  2 - Connection error`,
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().IntVar(&probeTimeout, "timeout", 5, "Seconds to wait for the first payload")
}

func runProbe(cmd *cobra.Command, args []string) error {
	dialer, err := upstreamDialer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	header, err := upstreamHeader()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}

	fmt.Printf("Simbridge - Upstream Probe\n")
	fmt.Printf("URL: %s\n", upstreamURL)
	fmt.Printf("Timeout: %d seconds\n\n", probeTimeout)

	start := time.Now()
	conn, _, err := dialer.Dial(upstreamURL, header)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer conn.Close()
	fmt.Printf("Connected in %v (subprotocol=%s)\n", time.Since(start).Round(time.Millisecond), conn.Subprotocol())

	// One offset is enough to prove the whole declare/read path works.
	probeSignals := []offsets.Signal{
		{Name: "AircraftName", Address: 0x3D00, RawType: offsets.RawString, Size: 256,
			Sink: &offsets.Sink{Group: offsets.GroupSimulation, Field: "aircraftName"}},
	}
	table, err := offsets.NewSignalTable(probeSignals, transform.NewRegistry())
	if err != nil {
		return err
	}

	if err := conn.WriteJSON(fsuipc.NewDeclare("probe", table)); err != nil {
		fmt.Fprintf(os.Stderr, "Declare failed: %v\n", err)
		os.Exit(2)
	}
	if err := conn.WriteJSON(fsuipc.ReadMessage{
		Command:    fsuipc.CmdRead,
		Name:       "probe",
		IntervalMs: 250,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Read command failed: %v\n", err)
		os.Exit(2)
	}

	deadline := time.Now().Add(time.Duration(probeTimeout) * time.Second)
	conn.SetReadDeadline(deadline)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			fmt.Fprintf(os.Stderr, "No payload within %ds: %v\n", probeTimeout, err)
			os.Exit(1)
		}
		payload, status, err := fsuipc.ParseIncoming(data)
		if err != nil {
			continue
		}
		if status != nil {
			if !status.Success {
				fmt.Fprintf(os.Stderr, "Command rejected: %s\n", status.ErrorMessage)
				os.Exit(1)
			}
			fmt.Printf("Command %s acknowledged\n", status.Command)
			continue
		}
		if name, ok := payload["AircraftName"]; ok {
			fmt.Printf("Payload received after %v: AircraftName=%v\n",
				time.Since(start).Round(time.Millisecond), name)
			return nil
		}
	}
}
