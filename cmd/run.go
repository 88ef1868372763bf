// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 AeroAPI Project

package cmd

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aeroapi/simbridge/pkg/bridge"
	"github.com/aeroapi/simbridge/pkg/fsuipc"
	"github.com/aeroapi/simbridge/pkg/gpsout"
	"github.com/aeroapi/simbridge/pkg/offsets"
	"github.com/aeroapi/simbridge/pkg/simstate"
	"github.com/aeroapi/simbridge/pkg/transform"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the bridge",
	Long: `Connect to the FSUIPC WebSocket Server, normalize its offset reads
into the client schema, and serve the downstream WebSocket endpoint.

The upstream connection reconnects automatically; downstream clients keep
receiving the last known state while the simulator is away.`,
	RunE: runBridge,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// pipeline is the assembled bridge: registries, store, upstream client
// and downstream server.
type pipeline struct {
	registry *transform.Registry
	signals  *offsets.SignalTable
	commands *offsets.CommandTable
	store    *simstate.Store
	client   *fsuipc.Client
	server   *bridge.Server
}

// newPipeline builds and validates the full bridge from the root flags.
// Table errors (duplicate signals, unknown transforms) surface here, at
// startup.
func newPipeline(logf func(format string, args ...interface{})) (*pipeline, error) {
	registry := transform.NewRegistry()
	signals, err := offsets.NewSignalTable(offsets.DefaultSignals(), registry)
	if err != nil {
		return nil, err
	}
	commands, err := offsets.NewCommandTable(offsets.DefaultCommands())
	if err != nil {
		return nil, err
	}

	store := simstate.NewStore()
	dispatcher := offsets.NewDispatcher(signals, registry, store, logf)

	dialer, err := upstreamDialer()
	if err != nil {
		return nil, err
	}
	header, err := upstreamHeader()
	if err != nil {
		return nil, err
	}

	client := fsuipc.New(fsuipc.Config{
		URL:      upstreamURL,
		Header:   header,
		Dialer:   dialer,
		Table:    signals,
		Interval: interval,
		Sink:     dispatcher,
		Logf:     logf,
	})
	server := bridge.NewServer(bridge.Config{
		Host:     listenHost,
		Port:     listenPort,
		Path:     listenPath,
		Interval: interval,
		Store:    store,
		Signals:  signals,
		Commands: commands,
		Writer:   client,
		Logf:     logf,
	})

	return &pipeline{
		registry: registry,
		signals:  signals,
		commands: commands,
		store:    store,
		client:   client,
		server:   server,
	}, nil
}

// run drives both network loops until ctx is cancelled or one of them
// fails.
func (p *pipeline) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	go func() { errCh <- p.client.Run(ctx) }()
	go func() { errCh <- p.server.Run(ctx) }()

	err := <-errCh
	cancel()
	<-errCh
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runBridge(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := newPipeline(log.Printf)
	if err != nil {
		return err
	}

	if gpsoutPort != "" {
		out, err := gpsout.Open(gpsoutPort, gpsoutBaud, log.Printf)
		if err != nil {
			return err
		}
		defer out.Close()
		p.server.AddSnapshotSink(out)
		log.Printf("gpsout: NMEA output on %s @ %d baud", gpsoutPort, gpsoutBaud)
	}

	log.Printf("simbridge: upstream %s, downstream ws://%s:%d%s, interval %s",
		upstreamURL, listenHost, listenPort, listenPath, interval)
	return p.run(ctx)
}
