// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 AeroAPI Project

package simstate

import (
	"math"

	"github.com/aeroapi/simbridge/pkg/offsets"
	"github.com/aeroapi/simbridge/pkg/transform"
)

const (
	// Fixes closer than this in both axes count as the same point and
	// produce no ground track update.
	positionChangeEpsilon = 1e-7

	// Minimum Δt (minutes) for the fallback vertical speed, so a burst of
	// same-instant batches cannot divide by zero.
	minDtMinutes = 1e-6

	brakePedalThreshold   = 200
	parkingBrakeThreshold = 1000
)

// ComputeDerived recomputes every value synthesized from stored state.
// The dispatcher calls it once per ingest batch, after all per-key
// merges. It reads whatever is currently stored, so inputs that arrived
// in earlier batches still contribute.
func (s *Store) ComputeDerived() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deriveTrackAndVs()
	s.deriveAttitude()
	s.deriveAgl()
	s.deriveBrakes()
	s.deriveAltitudeMode()
	s.deriveBaroFallback()
}

func (s *Store) deriveTrackAndVs() {
	lat, okLat := s.getFloat(offsets.GroupPosition, "latitudeDeg")
	lon, okLon := s.getFloat(offsets.GroupPosition, "longitudeDeg")
	if okLat && okLon {
		if s.haveFix &&
			(math.Abs(lat-s.lastLat) > positionChangeEpsilon ||
				math.Abs(lon-s.lastLon) > positionChangeEpsilon) {
			s.trackDeg = bearingDeg(s.lastLat, s.lastLon, lat, lon)
			s.haveTrack = true
		}
		s.lastLat, s.lastLon = lat, lon
		s.haveFix = true
	}

	if alt, ok := s.getFloat(offsets.GroupPosition, "mslAltitudeFt"); ok {
		now := s.now()
		if s.haveAlt {
			dtMin := now.Sub(s.lastAltAt).Minutes()
			if dtMin < minDtMinutes {
				dtMin = minDtMinutes
			}
			s.derivedFpm = (alt - s.lastAltFt) / dtMin
			s.haveFpm = true
		}
		s.lastAltFt = alt
		s.lastAltAt = now
		s.haveAlt = true
	}
	// The raw VS offset always wins over the altitude-delta fallback.
	if !s.vsRawSeen && s.haveFpm {
		s.setDerived(offsets.GroupPosition, "verticalSpeedUpFpm", math.Round(s.derivedFpm))
	}
}

func (s *Store) deriveAttitude() {
	if s.haveTrack {
		s.setDerived(offsets.GroupAttitude, "trueGroundTrackDeg", transform.Norm360(s.trackDeg))
	}
	hdg, okHdg := s.getFloat(offsets.GroupAttitude, "trueHeadingDeg")
	magVar, okVar := s.getFloat(offsets.GroupInputs, "magVarDeg")
	if okHdg && okVar {
		s.setDerived(offsets.GroupAttitude, "magneticHeadingDeg", transform.Norm360(hdg-magVar))
	}
}

func (s *Store) deriveAgl() {
	msl, okMsl := s.getFloat(offsets.GroupPosition, "mslAltitudeFt")
	ground, okGround := s.getFloat(offsets.GroupInputs, "groundAltFt")
	if okMsl && okGround {
		agl := msl - ground
		if agl < 0 {
			agl = 0
		}
		s.setDerived(offsets.GroupPosition, "aglAltitudeFt", agl)
	}
}

func (s *Store) deriveBrakes() {
	left, okLeft := s.getFloat(offsets.GroupInputs, "brakeLeft")
	right, okRight := s.getFloat(offsets.GroupInputs, "brakeRight")
	parking, okParking := s.getFloat(offsets.GroupInputs, "parkingBrake")
	if !okLeft && !okRight && !okParking {
		return
	}
	on := false
	if okLeft && left > brakePedalThreshold {
		on = true
	}
	if okRight && right > brakePedalThreshold {
		on = true
	}
	if okParking && parking >= parkingBrakeThreshold {
		on = true
	}
	s.setDerived(offsets.GroupSystems, "brakesOn", on)
}

func (s *Store) deriveAltitudeMode() {
	altHold, okAlt := s.getBool(offsets.GroupInputs, "apAltHold")
	vsHold, okVs := s.getBool(offsets.GroupInputs, "apVsHold")
	_, haveAutopilot := s.groups[offsets.GroupAutopilot]
	if !okAlt && !okVs && !haveAutopilot {
		return
	}
	mode := "disabled"
	switch {
	case okAlt && altHold:
		mode = "altitudeHold"
	case okVs && vsHold:
		mode = "verticalSpeed"
	}
	s.setDerived(offsets.GroupAutopilot, "altitudeMode", mode)
}

// deriveBaroFallback publishes the windowed 0x0330 pressure only while
// the preferred 0x0332 offset has never arrived; new fallback readings
// keep refreshing the published value until then.
func (s *Store) deriveBaroFallback() {
	if s.baroRawSeen {
		return
	}
	fallback, ok := s.getFloat(offsets.GroupInputs, "baroFallbackInHg")
	if !ok {
		return
	}
	s.setDerived(offsets.GroupEnvironment, "seaLevelPressureInHg", fallback)
	s.setDerived(offsets.GroupIndicators, "altimeterSettingInHg", fallback)
}

// bearingDeg returns the great-circle initial bearing from point 1 to
// point 2, in degrees [0, 360).
func bearingDeg(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := lat1 * math.Pi / 180
	p2 := lat2 * math.Pi / 180
	dl := (lon2 - lon1) * math.Pi / 180

	y := math.Sin(dl) * math.Cos(p2)
	x := math.Cos(p1)*math.Sin(p2) - math.Sin(p1)*math.Cos(p2)*math.Cos(dl)
	return transform.Norm360(math.Atan2(y, x) * 180 / math.Pi)
}
