// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 AeroAPI Project

// Package recorder logs broadcast snapshots as a stream of CBOR frames.
// CBOR keeps the files compact at 4 Hz over long flights and decodes
// without a schema, so recordings stay readable as the field set evolves.
package recorder

import (
	"io"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Frame is one recorded snapshot. Integer keys keep the per-frame
// overhead down.
type Frame struct {
	Timestamp int64                             `cbor:"1,keyasint"`
	Snapshot  map[string]map[string]interface{} `cbor:"2,keyasint"`
}

// Writer appends frames to a stream. It attaches to the broadcaster as
// a snapshot sink.
type Writer struct {
	mu  sync.Mutex
	enc *cbor.Encoder
	now func() time.Time

	frames int
	err    error
}

// NewWriter wraps w in a frame writer. The caller owns closing w.
func NewWriter(w io.Writer) (*Writer, error) {
	em, err := cbor.EncOptions{Sort: cbor.SortCanonical}.EncMode()
	if err != nil {
		return nil, err
	}
	return &Writer{enc: em.NewEncoder(w), now: time.Now}, nil
}

// Publish records one snapshot with the current timestamp in Unix
// milliseconds. Empty snapshots are skipped; after the first write error
// the writer goes inert and Err reports the cause.
func (w *Writer) Publish(snapshot map[string]map[string]interface{}) {
	if len(snapshot) == 0 {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return
	}
	w.err = w.enc.Encode(Frame{
		Timestamp: w.now().UnixMilli(),
		Snapshot:  snapshot,
	})
	if w.err == nil {
		w.frames++
	}
}

// Frames returns the number of frames written so far.
func (w *Writer) Frames() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.frames
}

// Err returns the first write error, if any.
func (w *Writer) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// Reader decodes a frame stream for playback inspection.
type Reader struct {
	dec *cbor.Decoder
}

// NewReader wraps r in a frame reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: cbor.NewDecoder(r)}
}

// Next returns the next frame, or io.EOF at the end of the stream.
func (r *Reader) Next() (Frame, error) {
	var f Frame
	err := r.dec.Decode(&f)
	return f, err
}
