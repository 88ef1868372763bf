// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 AeroAPI Project

// Package bridge serves the consumer-facing WebSocket endpoint: state
// snapshots broadcast on a fixed interval, a capabilities advertisement
// on connect, and SetSimData command batches routed back to the
// simulator.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/aeroapi/simbridge/pkg/offsets"
)

const defaultInterval = 250 * time.Millisecond

// SnapshotSource yields the current state for broadcast.
type SnapshotSource interface {
	Snapshot() map[string]map[string]interface{}
}

// OffsetWriter carries encoded command values upstream.
type OffsetWriter interface {
	WriteOffset(target offsets.Target, value int64) error
}

// SnapshotSink receives every broadcast snapshot in addition to the
// connected WebSocket clients. The recorder and the NMEA output attach
// here.
type SnapshotSink interface {
	Publish(snapshot map[string]map[string]interface{})
}

// Config carries the downstream server parameters.
type Config struct {
	Host     string
	Port     int
	Path     string
	Interval time.Duration

	Store    SnapshotSource
	Signals  *offsets.SignalTable
	Commands *offsets.CommandTable
	Writer   OffsetWriter
	Logf     func(format string, args ...interface{})
}

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Server is the downstream WebSocket endpoint.
type Server struct {
	cfg      Config
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]bool
	sinks   []SnapshotSink
}

// NewServer wires the store and registries into a downstream endpoint.
func NewServer(cfg Config) *Server {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	if cfg.Path == "" {
		cfg.Path = "/api/v1"
	}
	if cfg.Logf == nil {
		cfg.Logf = func(string, ...interface{}) {}
	}
	return &Server{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*client]bool),
	}
}

// AddSnapshotSink attaches an extra consumer of broadcast snapshots.
// Must be called before Run.
func (s *Server) AddSnapshotSink(sink SnapshotSink) {
	s.sinks = append(s.sinks, sink)
}

// Run serves until ctx is cancelled. The broadcast ticker runs for the
// lifetime of the server regardless of how many clients are connected.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleWS)

	srv := &http.Server{
		Addr:    net.JoinHostPort(s.cfg.Host, fmt.Sprintf("%d", s.cfg.Port)),
		Handler: mux,
	}

	go s.broadcastLoop(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	s.cfg.Logf("downstream: serving at ws://%s%s", srv.Addr, s.cfg.Path)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// pathAllowed accepts the configured path and the bare root, with or
// without a trailing slash.
func (s *Server) pathAllowed(p string) bool {
	norm := func(p string) string {
		p = strings.TrimRight(p, "/")
		if p == "" {
			return "/"
		}
		return p
	}
	got := norm(p)
	return got == norm(s.cfg.Path) || got == "/"
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	if !s.pathAllowed(r.URL.Path) {
		http.NotFound(w, r)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.cfg.Logf("downstream: upgrade failed: %v", err)
		return
	}
	c := &client{conn: conn}

	caps := NewCapabilities(s.cfg.Signals, s.cfg.Commands)
	if err := c.writeJSON(caps); err != nil {
		conn.Close()
		return
	}

	s.mu.Lock()
	s.clients[c] = true
	n := len(s.clients)
	s.mu.Unlock()
	s.cfg.Logf("downstream: client %s connected (%d total)", conn.RemoteAddr(), n)

	defer func() {
		s.mu.Lock()
		delete(s.clients, c)
		s.mu.Unlock()
		conn.Close()
		s.cfg.Logf("downstream: client %s disconnected", conn.RemoteAddr())
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		msg, ok := parseClientFrame(data)
		if !ok {
			continue
		}
		ack := s.HandleSetSimData(msg)
		if err := c.writeJSON(ack); err != nil {
			return
		}
	}
}

// HandleSetSimData encodes and forwards every command of a batch. A
// command that fails to encode or forward yields ok=false in its slot;
// the rest of the batch still executes.
func (s *Server) HandleSetSimData(msg *SetSimData) SetSimDataAck {
	// Results starts non-nil so an empty batch still acks with an array,
	// not a JSON null.
	ack := SetSimDataAck{Type: "SetSimDataAck", Results: []CommandResult{}}
	for _, req := range msg.Requests() {
		ack.Results = append(ack.Results, CommandResult{
			Name: req.Name,
			OK:   s.execute(req),
		})
	}
	return ack
}

func (s *Server) execute(req CommandRequest) bool {
	target, raw, err := s.cfg.Commands.EncodeCommand(req.Name, req.Value)
	if err != nil {
		s.cfg.Logf("command %s: %v", req.Name, err)
		return false
	}
	if err := s.cfg.Writer.WriteOffset(target, raw); err != nil {
		s.cfg.Logf("command %s: write failed: %v", req.Name, err)
		return false
	}
	return true
}

func (s *Server) broadcastLoop(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.broadcast()
		}
	}
}

func (s *Server) broadcast() {
	snapshot := s.cfg.Store.Snapshot()
	for _, sink := range s.sinks {
		sink.Publish(snapshot)
	}

	s.mu.Lock()
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, c := range clients {
		if err := c.writeJSON(snapshot); err != nil {
			s.mu.Lock()
			delete(s.clients, c)
			s.mu.Unlock()
			c.conn.Close()
		}
	}
}
