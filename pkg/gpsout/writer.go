// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 AeroAPI Project

package gpsout

import (
	"fmt"
	"io"
	"sync"
	"time"

	"go.bug.st/serial"
)

// Output writes RMC and GGA sentences for every published snapshot. It
// attaches to the broadcaster as a snapshot sink, so the sentence rate
// follows the broadcast interval.
type Output struct {
	mu   sync.Mutex
	port io.WriteCloser
	logf func(format string, args ...interface{})
	now  func() time.Time
}

// Open opens the named serial port at the given baud rate, 8N1.
func Open(portName string, baud int, logf func(format string, args ...interface{})) (*Output, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("gpsout: open %s: %w", portName, err)
	}
	if logf == nil {
		logf = func(string, ...interface{}) {}
	}
	return &Output{port: port, logf: logf, now: time.Now}, nil
}

// Publish emits one RMC/GGA pair for the snapshot. Snapshots without a
// position fix produce no output; write errors are logged and the next
// snapshot tries again.
func (o *Output) Publish(snapshot map[string]map[string]interface{}) {
	fix, ok := FixFromSnapshot(snapshot)
	if !ok {
		return
	}
	t := o.now()
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, sentence := range []string{RMC(fix, t), GGA(fix, t)} {
		if _, err := io.WriteString(o.port, sentence); err != nil {
			o.logf("gpsout: write: %v", err)
			return
		}
	}
}

// Close closes the serial port.
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.port.Close()
}
