// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 AeroAPI Project

// Package simstate holds the shared simulator state: the last known value
// of every normalized field, merged partially as upstream batches arrive,
// plus the values derived from them. One mutex guards the whole store;
// the ingest and broadcast loops serialize only through it and never hold
// it across I/O.
package simstate

import (
	"sync"
	"time"

	"github.com/aeroapi/simbridge/pkg/offsets"
)

// Store is the single source of truth between the upstream ingest loop
// and the downstream broadcaster.
type Store struct {
	mu     sync.Mutex
	groups map[offsets.Group]map[string]interface{}

	// GPS fix history for ground track and fallback vertical speed.
	lastLat, lastLon float64
	haveFix          bool
	trackDeg         float64
	haveTrack        bool

	lastAltFt  float64
	lastAltAt  time.Time
	haveAlt    bool
	vsRawSeen  bool
	derivedFpm float64
	haveFpm    bool

	baroRawSeen bool

	now func() time.Time
}

// NewStore returns an empty store. No group exists until the first write
// that touches it.
func NewStore() *Store {
	return &Store{
		groups: make(map[offsets.Group]map[string]interface{}),
		now:    time.Now,
	}
}

// UpdatePartial merges fields into group atomically. Fields the update
// does not name keep their previous values; the group is materialized on
// its first write.
func (s *Store) UpdatePartial(group offsets.Group, fields map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.groups[group]
	if g == nil {
		g = make(map[string]interface{})
		s.groups[group] = g
	}
	for k, v := range fields {
		g[k] = v
	}
	if group == offsets.GroupPosition {
		if _, ok := fields["verticalSpeedUpFpm"]; ok {
			// The raw VS offset has arrived at least once; the derived
			// fallback stays out of the way from now on.
			s.vsRawSeen = true
		}
	}
	if group == offsets.GroupEnvironment {
		if _, ok := fields["seaLevelPressureInHg"]; ok {
			s.baroRawSeen = true
		}
	}
}

// Snapshot returns a deep copy of all populated broadcast groups, keyed
// by group name. Derivation-only inputs are excluded. The copy shares no
// memory with the store, so callers may serialize it without a lock.
func (s *Store) Snapshot() map[string]map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]map[string]interface{}, len(s.groups))
	for group, fields := range s.groups {
		if group == offsets.GroupInputs {
			continue
		}
		cp := make(map[string]interface{}, len(fields))
		for k, v := range fields {
			cp[k] = v
		}
		out[string(group)] = cp
	}
	return out
}

func (s *Store) getFloat(group offsets.Group, field string) (float64, bool) {
	g, ok := s.groups[group]
	if !ok {
		return 0, false
	}
	v, ok := g[field]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

func (s *Store) getBool(group offsets.Group, field string) (bool, bool) {
	g, ok := s.groups[group]
	if !ok {
		return false, false
	}
	v, ok := g[field]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// setDerived writes a derived field without going through UpdatePartial,
// so derived writes never count as raw-offset arrivals.
func (s *Store) setDerived(group offsets.Group, field string, v interface{}) {
	g := s.groups[group]
	if g == nil {
		g = make(map[string]interface{})
		s.groups[group] = g
	}
	g[field] = v
}
