// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 AeroAPI Project

package fsuipc

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/aeroapi/simbridge/pkg/offsets"
)

// ErrNotConnected is returned by WriteOffset while the upstream link is
// down. Writes fail fast instead of queueing against a dead simulator.
var ErrNotConnected = errors.New("fsuipc: not connected")

// Subprotocol required by the FSUIPC WebSocket Server.
const Subprotocol = "fsuipc"

const (
	defaultGroupName      = "flightData"
	defaultInterval       = 250 * time.Millisecond
	defaultReconnectDelay = 2 * time.Second
	defaultDialTimeout    = 4 * time.Second
)

// Sink receives normalized-or-raw payload batches from the read loop.
type Sink interface {
	DispatchBatch(values map[string]interface{})
}

// Config carries the upstream connection parameters.
type Config struct {
	URL    string
	Header http.Header
	Dialer *websocket.Dialer

	Table     *offsets.SignalTable
	GroupName string
	Interval  time.Duration

	ReconnectDelay time.Duration
	Sink           Sink
	Logf           func(format string, args ...interface{})
}

// Client maintains the upstream FSUIPC connection: declare on connect,
// continuous interval reads, reconnection with a fixed delay, and
// offset writes for commands.
type Client struct {
	cfg Config

	mu   sync.Mutex
	conn *websocket.Conn
}

// New returns an unconnected client. Run establishes and maintains the
// connection.
func New(cfg Config) *Client {
	if cfg.GroupName == "" {
		cfg.GroupName = defaultGroupName
	}
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = defaultReconnectDelay
	}
	if cfg.Dialer == nil {
		cfg.Dialer = &websocket.Dialer{HandshakeTimeout: defaultDialTimeout}
	}
	if cfg.Dialer.Subprotocols == nil {
		cfg.Dialer.Subprotocols = []string{Subprotocol}
	}
	if cfg.Logf == nil {
		cfg.Logf = func(string, ...interface{}) {}
	}
	return &Client{cfg: cfg}
}

// Run dials the server and pumps payload batches into the sink until ctx
// is cancelled. Connection loss triggers a reconnect after the configured
// delay; the declare and read commands are re-sent on every new
// connection.
func (c *Client) Run(ctx context.Context) error {
	for {
		if err := c.runOnce(ctx); err != nil && ctx.Err() == nil {
			c.cfg.Logf("upstream: %v, reconnecting in %s", err, c.cfg.ReconnectDelay)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.cfg.ReconnectDelay):
		}
	}
}

func (c *Client) runOnce(ctx context.Context) error {
	conn, _, err := c.cfg.Dialer.DialContext(ctx, c.cfg.URL, c.cfg.Header)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.WriteJSON(NewDeclare(c.cfg.GroupName, c.cfg.Table)); err != nil {
		return err
	}
	if err := conn.WriteJSON(ReadMessage{
		Command:    CmdRead,
		Name:       c.cfg.GroupName,
		IntervalMs: int(c.cfg.Interval / time.Millisecond),
	}); err != nil {
		return err
	}
	c.cfg.Logf("upstream: connected to %s, reading every %s", c.cfg.URL, c.cfg.Interval)

	c.setConn(conn)
	defer c.setConn(nil)

	// Unblock the read loop when the context goes away.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	return c.readLoop(conn)
}

func (c *Client) readLoop(conn *websocket.Conn) error {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		payload, status, err := ParseIncoming(data)
		if err != nil {
			c.cfg.Logf("upstream: undecodable frame: %v", err)
			continue
		}
		if status != nil {
			if !status.Success {
				c.cfg.Logf("upstream: command %s failed: %s", status.Command, status.ErrorMessage)
			}
			continue
		}
		if len(payload) > 0 && c.cfg.Sink != nil {
			c.cfg.Sink.DispatchBatch(payload)
		}
	}
}

func (c *Client) setConn(conn *websocket.Conn) {
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
}

// Connected reports whether the upstream link is currently up.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// WriteOffset sends one encoded command value to its target offset. It
// fails immediately with ErrNotConnected while the link is down.
func (c *Client) WriteOffset(target offsets.Target, value int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return ErrNotConnected
	}
	return c.conn.WriteJSON(WriteMessage{
		Command: CmdWrite,
		Values: []WriteValue{{
			Address: target.Address,
			Type:    target.DType,
			Size:    target.Size,
			Value:   value,
		}},
	})
}
