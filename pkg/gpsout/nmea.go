// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 AeroAPI Project

// Package gpsout emits NMEA-0183 position sentences over a serial port,
// mirroring the "GPSout" feature of FSUIPC itself. Moving-map software
// that reads a GPS receiver can follow the simulated aircraft this way.
package gpsout

import (
	"fmt"
	"time"
)

const feetToMeters = 0.3048

// Fix is the subset of a state snapshot that NMEA sentences carry.
type Fix struct {
	Lat, Lon float64

	GroundSpeedKts float64
	HaveSpeed      bool

	TrackDeg  float64
	HaveTrack bool

	AltFt   float64
	HaveAlt bool
}

// FixFromSnapshot extracts a fix from a broadcast snapshot. A fix needs
// at least a latitude and longitude; everything else is optional.
func FixFromSnapshot(snapshot map[string]map[string]interface{}) (Fix, bool) {
	pos, ok := snapshot["position"]
	if !ok {
		return Fix{}, false
	}
	lat, okLat := pos["latitudeDeg"].(float64)
	lon, okLon := pos["longitudeDeg"].(float64)
	if !okLat || !okLon {
		return Fix{}, false
	}
	fix := Fix{Lat: lat, Lon: lon}
	fix.GroundSpeedKts, fix.HaveSpeed = pos["gpsGroundSpeedKts"].(float64)
	fix.AltFt, fix.HaveAlt = pos["mslAltitudeFt"].(float64)
	if att, ok := snapshot["attitude"]; ok {
		fix.TrackDeg, fix.HaveTrack = att["trueGroundTrackDeg"].(float64)
	}
	return fix, true
}

// RMC builds a recommended-minimum sentence for the fix at t.
func RMC(fix Fix, t time.Time) string {
	t = t.UTC()
	var speed, track string
	if fix.HaveSpeed {
		speed = fmt.Sprintf("%.1f", fix.GroundSpeedKts)
	}
	if fix.HaveTrack {
		track = fmt.Sprintf("%.1f", fix.TrackDeg)
	}
	body := fmt.Sprintf("GPRMC,%s,A,%s,%s,%s,%s,%s,%s,%s,,,A",
		t.Format("150405.00"),
		latDDM(fix.Lat), latHemi(fix.Lat),
		lonDDM(fix.Lon), lonHemi(fix.Lon),
		speed, track,
		t.Format("020106"))
	return wrap(body)
}

// GGA builds a fix-data sentence for the fix at t. Altitude is reported
// in meters per the sentence definition.
func GGA(fix Fix, t time.Time) string {
	t = t.UTC()
	alt := ""
	if fix.HaveAlt {
		alt = fmt.Sprintf("%.1f", fix.AltFt*feetToMeters)
	}
	body := fmt.Sprintf("GPGGA,%s,%s,%s,%s,%s,1,08,0.9,%s,M,,M,,",
		t.Format("150405.00"),
		latDDM(fix.Lat), latHemi(fix.Lat),
		lonDDM(fix.Lon), lonHemi(fix.Lon),
		alt)
	return wrap(body)
}

// Checksum is the XOR of every sentence byte between "$" and "*".
func Checksum(body string) byte {
	var cs byte
	for i := 0; i < len(body); i++ {
		cs ^= body[i]
	}
	return cs
}

func wrap(body string) string {
	return fmt.Sprintf("$%s*%02X\r\n", body, Checksum(body))
}

// latDDM formats degrees as NMEA ddmm.mmmm.
func latDDM(deg float64) string {
	return ddm(deg, 2)
}

// lonDDM formats degrees as NMEA dddmm.mmmm.
func lonDDM(deg float64) string {
	return ddm(deg, 3)
}

func ddm(deg float64, degDigits int) string {
	if deg < 0 {
		deg = -deg
	}
	d := int(deg)
	m := (deg - float64(d)) * 60
	// %07.4f would round 59.99995+ minutes up to the invalid "60.0000";
	// carry the overflow into the degree field instead.
	if m >= 59.99995 {
		d++
		m = 0
	}
	return fmt.Sprintf("%0*d%07.4f", degDigits, d, m)
}

func latHemi(deg float64) string {
	if deg < 0 {
		return "S"
	}
	return "N"
}

func lonHemi(deg float64) string {
	if deg < 0 {
		return "W"
	}
	return "E"
}
