// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 AeroAPI Project

package gpsout

import (
	"strconv"
	"strings"
	"testing"
	"time"
)

var fixTime = time.Date(2026, 8, 27, 14, 30, 15, 0, time.UTC)

func seaTacFix() Fix {
	return Fix{
		Lat: 47.4502, Lon: -122.3088,
		GroundSpeedKts: 120.5, HaveSpeed: true,
		TrackDeg: 185.0, HaveTrack: true,
		AltFt: 433.0, HaveAlt: true,
	}
}

func verifyChecksum(t *testing.T, sentence string) {
	t.Helper()
	if !strings.HasPrefix(sentence, "$") || !strings.HasSuffix(sentence, "\r\n") {
		t.Fatalf("bad framing: %q", sentence)
	}
	star := strings.LastIndex(sentence, "*")
	if star < 0 {
		t.Fatalf("no checksum: %q", sentence)
	}
	body := sentence[1:star]
	want, err := strconv.ParseUint(sentence[star+1:star+3], 16, 8)
	if err != nil {
		t.Fatalf("unparseable checksum in %q: %v", sentence, err)
	}
	if got := Checksum(body); got != byte(want) {
		t.Errorf("checksum mismatch in %q: computed %02X, sentence says %02X",
			sentence, got, want)
	}
}

func TestRMC(t *testing.T) {
	sentence := RMC(seaTacFix(), fixTime)
	verifyChecksum(t, sentence)

	fields := strings.Split(strings.TrimSuffix(sentence[1:strings.LastIndex(sentence, "*")], "\r\n"), ",")
	if fields[0] != "GPRMC" {
		t.Errorf("talker: %s", fields[0])
	}
	if fields[1] != "143015.00" {
		t.Errorf("time field: %s", fields[1])
	}
	if fields[2] != "A" {
		t.Errorf("status field: %s", fields[2])
	}
	if fields[3] != "4727.0120" || fields[4] != "N" {
		t.Errorf("latitude fields: %s %s", fields[3], fields[4])
	}
	if fields[5] != "12218.5280" || fields[6] != "W" {
		t.Errorf("longitude fields: %s %s", fields[5], fields[6])
	}
	if fields[7] != "120.5" {
		t.Errorf("speed field: %s", fields[7])
	}
	if fields[8] != "185.0" {
		t.Errorf("track field: %s", fields[8])
	}
	if fields[9] != "270826" {
		t.Errorf("date field: %s", fields[9])
	}
}

func TestGGA_AltitudeInMeters(t *testing.T) {
	sentence := GGA(seaTacFix(), fixTime)
	verifyChecksum(t, sentence)

	fields := strings.Split(sentence[1:strings.LastIndex(sentence, "*")], ",")
	if fields[0] != "GPGGA" {
		t.Errorf("talker: %s", fields[0])
	}
	// 433 ft = 132.0 m
	if fields[9] != "132.0" {
		t.Errorf("altitude field: %s", fields[9])
	}
	if fields[10] != "M" {
		t.Errorf("altitude unit field: %s", fields[10])
	}
}

func TestRMC_MissingOptionalFields(t *testing.T) {
	fix := Fix{Lat: -33.9461, Lon: 151.1772}
	sentence := RMC(fix, fixTime)
	verifyChecksum(t, sentence)

	fields := strings.Split(sentence[1:strings.LastIndex(sentence, "*")], ",")
	if fields[4] != "S" || fields[6] != "E" {
		t.Errorf("southern/eastern hemisphere fields: %s %s", fields[4], fields[6])
	}
	if fields[7] != "" || fields[8] != "" {
		t.Errorf("missing speed/track should be empty fields: %q %q", fields[7], fields[8])
	}
}

func TestDDM_MinuteOverflowCarries(t *testing.T) {
	// 47.9999999 degrees is 47 deg 59.999994 min, which the minute field
	// would round to 60.0000; it must carry into the degrees instead.
	fix := Fix{Lat: 47.9999999, Lon: -122.9999999}
	sentence := RMC(fix, fixTime)
	verifyChecksum(t, sentence)

	fields := strings.Split(sentence[1:strings.LastIndex(sentence, "*")], ",")
	if fields[3] != "4800.0000" {
		t.Errorf("latitude minute overflow not carried: %s", fields[3])
	}
	if fields[5] != "12300.0000" {
		t.Errorf("longitude minute overflow not carried: %s", fields[5])
	}
	if strings.Contains(sentence, "60.0000") {
		t.Errorf("invalid 60-minute field emitted: %q", sentence)
	}
}

func TestFixFromSnapshot(t *testing.T) {
	snap := map[string]map[string]interface{}{
		"position": {
			"latitudeDeg":       47.45,
			"longitudeDeg":      -122.30,
			"gpsGroundSpeedKts": 100.0,
		},
		"attitude": {"trueGroundTrackDeg": 90.0},
	}
	fix, ok := FixFromSnapshot(snap)
	if !ok {
		t.Fatal("fix not extracted")
	}
	if !fix.HaveSpeed || fix.HaveAlt {
		t.Errorf("optional flags wrong: %+v", fix)
	}
	if !fix.HaveTrack || fix.TrackDeg != 90.0 {
		t.Errorf("track not extracted: %+v", fix)
	}

	if _, ok := FixFromSnapshot(map[string]map[string]interface{}{
		"position": {"latitudeDeg": 47.45},
	}); ok {
		t.Error("fix without longitude accepted")
	}
	if _, ok := FixFromSnapshot(map[string]map[string]interface{}{}); ok {
		t.Error("empty snapshot produced a fix")
	}
}
