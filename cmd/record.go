// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 AeroAPI Project

package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aeroapi/simbridge/pkg/recorder"
)

var recordCmd = &cobra.Command{
	Use:   "record <file>",
	Short: "Run the bridge and record snapshots to a CBOR log",
	Long: `Run the full bridge while appending every broadcast snapshot to a
CBOR-framed log file. Downstream clients can still connect as usual; the
recording is an extra consumer of the same broadcast.

Inspect a recording with the "replay" command.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecord,
}

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Print the frames of a recorded snapshot log",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplay,
}

func init() {
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(replayCmd)
}

func runRecord(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := recorder.NewWriter(f)
	if err != nil {
		return err
	}

	p, err := newPipeline(log.Printf)
	if err != nil {
		return err
	}
	p.server.AddSnapshotSink(w)

	log.Printf("recording to %s", args[0])
	runErr := p.run(ctx)

	log.Printf("recorded %d frames", w.Frames())
	if w.Err() != nil {
		return w.Err()
	}
	return runErr
}

func runReplay(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	r := recorder.NewReader(f)
	frames := 0
	for {
		frame, err := r.Next()
		if err != nil {
			break
		}
		frames++
		fmt.Printf("frame %d @ %d ms:\n", frames, frame.Timestamp)
		for group, fields := range frame.Snapshot {
			fmt.Printf("  %s:\n", group)
			for field, value := range fields {
				fmt.Printf("    %s = %v\n", field, value)
			}
		}
	}
	fmt.Printf("%d frames\n", frames)
	return nil
}
