// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 AeroAPI Project

package offsets

// DefaultSignals returns the stock FSUIPC offset map. Offsets marked as
// GroupInputs feed derived computations only and never appear in
// broadcast snapshots.
func DefaultSignals() []Signal {
	return []Signal{
		// Position. The lat/lon raw types are converted to degrees by the
		// FSUIPC WebSocket Server itself, so they need no transform here.
		{Name: "LatitudeDeg", Address: 0x0560, RawType: RawLat, Size: 8,
			Sink: &Sink{GroupPosition, "latitudeDeg"}},
		{Name: "LongitudeDeg", Address: 0x0568, RawType: RawLon, Size: 8,
			Sink: &Sink{GroupPosition, "longitudeDeg"}},
		{Name: "AltitudeM", Address: 0x6020, RawType: RawFloat, Size: 8,
			Transform: "metersToFeet", Sink: &Sink{GroupPosition, "mslAltitudeFt"}},
		{Name: "GroundSpeed", Address: 0x02B4, RawType: RawUint, Size: 4,
			Transform: "groundspeedKts", Sink: &Sink{GroupPosition, "gpsGroundSpeedKts"}},
		{Name: "IndicatedAirspeed", Address: 0x02BC, RawType: RawUint, Size: 4,
			Transform: "knots128", Sink: &Sink{GroupPosition, "indicatedAirspeedKts"}},
		{Name: "VerticalSpeed", Address: 0x02C8, RawType: RawInt, Size: 4,
			Transform: "vsToFpm", Sink: &Sink{GroupPosition, "verticalSpeedUpFpm"}},
		{Name: "GroundElevation", Address: 0x0020, RawType: RawInt, Size: 4,
			Transform: "meters256ToFeet", Sink: &Sink{GroupInputs, "groundAltFt"}},

		// Attitude
		{Name: "HeadingTrue", Address: 0x0580, RawType: RawUint, Size: 4,
			Transform: "headingDeg", Sink: &Sink{GroupAttitude, "trueHeadingDeg"}},
		{Name: "Pitch", Address: 0x0578, RawType: RawInt, Size: 4,
			Transform: "pitchDegUp", Sink: &Sink{GroupAttitude, "pitchAngleDegUp"}},
		{Name: "Bank", Address: 0x057C, RawType: RawInt, Size: 4,
			Transform: "rollDegRight", Sink: &Sink{GroupAttitude, "rollAngleDegRight"}},
		{Name: "MagneticVariation", Address: 0x02A0, RawType: RawUint, Size: 4,
			Transform: "magVarDeg", Sink: &Sink{GroupInputs, "magVarDeg"}},

		// Lights: one bitmask word fans out to four switch fields.
		{Name: "LightsBits", Address: 0x0D0C, RawType: RawUint, Size: 4,
			Bits: []BitSink{
				{Bit: 0, Sink: Sink{GroupLights, "navigationLightsSwitchOn"}},
				{Bit: 2, Sink: Sink{GroupLights, "landingLightsSwitchOn"}},
				{Bit: 3, Sink: Sink{GroupLights, "taxiLightsSwitchOn"}},
				{Bit: 4, Sink: Sink{GroupLights, "strobeLightsSwitchOn"}},
			}},

		// Systems
		{Name: "BatteryMain", Address: 0x281C, RawType: RawUint, Size: 4,
			Transform: "nonzeroBool", Sink: &Sink{GroupSystems, "batteryOn"}},
		{Name: "PitotHeat", Address: 0x029C, RawType: RawUint, Size: 4,
			Transform: "nonzeroBool", Sink: &Sink{GroupSystems, "pitotHeatSwitchOn"}},

		// Barometric pressure: 0x0332 is the primary source and feeds both
		// the environment and the altimeter indicator; 0x0330 is a
		// plausibility-windowed fallback resolved in the derive pass.
		{Name: "BaroPressure", Address: 0x0332, RawType: RawUint, Size: 4,
			Transform: "baroInHg", Sink: &Sink{GroupEnvironment, "seaLevelPressureInHg"}},
		{Name: "AltimeterSetting", Address: 0x0332, RawType: RawUint, Size: 4,
			Transform: "baroInHg", Sink: &Sink{GroupIndicators, "altimeterSettingInHg"}},
		{Name: "BaroPressureFallback", Address: 0x0330, RawType: RawUint, Size: 4,
			Transform: "baroInHgWindow", Sink: &Sink{GroupInputs, "baroFallbackInHg"}},

		// Brakes feed the derived systems.brakesOn flag.
		{Name: "BrakeLeft", Address: 0x0BC4, RawType: RawUint, Size: 4,
			Transform: "lower16", Sink: &Sink{GroupInputs, "brakeLeft"}},
		{Name: "BrakeRight", Address: 0x0BC6, RawType: RawUint, Size: 4,
			Transform: "lower16", Sink: &Sink{GroupInputs, "brakeRight"}},
		{Name: "ParkingBrake", Address: 0x0BC8, RawType: RawUint, Size: 4,
			Transform: "lower16", Sink: &Sink{GroupInputs, "parkingBrake"}},

		// Levers
		{Name: "FlapsHandle", Address: 0x0BDC, RawType: RawUint, Size: 4,
			Transform: "pct16383", Sink: &Sink{GroupLevers, "flapsHandlePercentDown"}},
		{Name: "GearHandle", Address: 0x0BE8, RawType: RawUint, Size: 4,
			Transform: "pct16383", Sink: &Sink{GroupLevers, "landingGearHandlePercentDown"}},
		{Name: "Throttle1", Address: 0x088C, RawType: RawShort, Size: 2,
			Transform: "leverPct", Sink: &Sink{GroupLevers, "throttle1Percent"}},
		{Name: "Throttle2", Address: 0x0924, RawType: RawShort, Size: 2,
			Transform: "leverPct", Sink: &Sink{GroupLevers, "throttle2Percent"}},
		{Name: "Mixture1", Address: 0x08A4, RawType: RawShort, Size: 2,
			Transform: "leverPct", Sink: &Sink{GroupLevers, "mixture1Percent"}},
		{Name: "Mixture2", Address: 0x093C, RawType: RawShort, Size: 2,
			Transform: "leverPct", Sink: &Sink{GroupLevers, "mixture2Percent"}},
		{Name: "PropLever1", Address: 0x08A8, RawType: RawShort, Size: 2,
			Transform: "leverPct", Sink: &Sink{GroupLevers, "prop1Percent"}},
		{Name: "PropLever2", Address: 0x0940, RawType: RawShort, Size: 2,
			Transform: "leverPct", Sink: &Sink{GroupLevers, "prop2Percent"}},
		{Name: "Speedbrake", Address: 0x0BD0, RawType: RawUint, Size: 4,
			Transform: "pct16383", Sink: &Sink{GroupLevers, "speedBrakesPercent"}},

		// Radios (packed BCD)
		{Name: "Com1Active", Address: 0x034E, RawType: RawUint, Size: 2,
			Transform: "bcdFreqCom", Sink: &Sink{GroupRadios, "com1ActiveKhz"}},
		{Name: "Com1Standby", Address: 0x311A, RawType: RawUint, Size: 2,
			Transform: "bcdFreqCom", Sink: &Sink{GroupRadios, "com1StandbyKhz"}},
		{Name: "Com2Active", Address: 0x3118, RawType: RawUint, Size: 2,
			Transform: "bcdFreqCom", Sink: &Sink{GroupRadios, "com2ActiveKhz"}},
		{Name: "Com2Standby", Address: 0x311C, RawType: RawUint, Size: 2,
			Transform: "bcdFreqCom", Sink: &Sink{GroupRadios, "com2StandbyKhz"}},
		{Name: "Nav1Active", Address: 0x0350, RawType: RawUint, Size: 2,
			Transform: "bcdFreqNav", Sink: &Sink{GroupRadios, "nav1ActiveKhz"}},
		{Name: "Nav1Standby", Address: 0x311E, RawType: RawUint, Size: 2,
			Transform: "bcdFreqNav", Sink: &Sink{GroupRadios, "nav1StandbyKhz"}},
		{Name: "Transponder", Address: 0x0354, RawType: RawUint, Size: 2,
			Transform: "bcdTransponder", Sink: &Sink{GroupRadios, "transponderCode"}},

		// Engine indicators
		{Name: "Engine1Rpm", Address: 0x0898, RawType: RawUint, Size: 4,
			Transform: "rpm", Sink: &Sink{GroupIndicators, "engine1Rpm"}},
		{Name: "Engine2Rpm", Address: 0x0930, RawType: RawUint, Size: 4,
			Transform: "rpm", Sink: &Sink{GroupIndicators, "engine2Rpm"}},
		{Name: "Prop1Rpm", Address: 0x089C, RawType: RawUint, Size: 4,
			Transform: "rpm", Sink: &Sink{GroupIndicators, "prop1Rpm"}},
		{Name: "Prop2Rpm", Address: 0x0934, RawType: RawUint, Size: 4,
			Transform: "rpm", Sink: &Sink{GroupIndicators, "prop2Rpm"}},
		{Name: "ManifoldPressure", Address: 0x08A0, RawType: RawUint, Size: 4,
			Transform: "manifoldInHg", Sink: &Sink{GroupIndicators, "manifoldPressureInHg"}},
		{Name: "Engine1N1", Address: 0x2010, RawType: RawFloat, Size: 8,
			Sink: &Sink{GroupIndicators, "engine1N1Percent"}},
		{Name: "Engine1Egt", Address: 0x08B8, RawType: RawUint, Size: 2,
			Transform: "egtCelsius", Sink: &Sink{GroupIndicators, "engine1EgtDegC"}},
		{Name: "Engine1Cht", Address: 0x08BA, RawType: RawUint, Size: 2,
			Transform: "kelvin256Celsius", Sink: &Sink{GroupIndicators, "engine1ChtDegC"}},

		// Autopilot. Altitude-hold and VS-hold feed the derived
		// altitudeMode field.
		{Name: "ApMaster", Address: 0x07BC, RawType: RawUint, Size: 4,
			Transform: "nonzeroBool", Sink: &Sink{GroupAutopilot, "isAutopilotEngaged"}},
		{Name: "ApHeadingSelect", Address: 0x07C8, RawType: RawUint, Size: 4,
			Transform: "nonzeroBool", Sink: &Sink{GroupAutopilot, "isHeadingSelectEnabled"}},
		{Name: "ApAltitudeHold", Address: 0x07D0, RawType: RawUint, Size: 4,
			Transform: "nonzeroBool", Sink: &Sink{GroupInputs, "apAltHold"}},
		{Name: "ApVsHold", Address: 0x07EC, RawType: RawUint, Size: 4,
			Transform: "nonzeroBool", Sink: &Sink{GroupInputs, "apVsHold"}},
		{Name: "ApHeadingBug", Address: 0x07CC, RawType: RawUint, Size: 2,
			Transform: "headingBugDeg", Sink: &Sink{GroupAutopilot, "magneticHeadingBugDeg"}},
		{Name: "ApAltitudeBug", Address: 0x07D4, RawType: RawUint, Size: 4,
			Transform: "feet", Sink: &Sink{GroupAutopilot, "altitudeBugFt"}},
		{Name: "ApVsTarget", Address: 0x07F2, RawType: RawShort, Size: 2,
			Transform: "fpm", Sink: &Sink{GroupAutopilot, "targetVerticalSpeedFpm"}},

		// Environment
		{Name: "WindSpeed", Address: 0x0E90, RawType: RawUint, Size: 2,
			Transform: "knots", Sink: &Sink{GroupEnvironment, "windSpeedKts"}},
		{Name: "WindDirection", Address: 0x0E92, RawType: RawUint, Size: 2,
			Transform: "windDirDeg", Sink: &Sink{GroupEnvironment, "windHeadingDeg"}},
		{Name: "OutsideTemp", Address: 0x0E8C, RawType: RawShort, Size: 2,
			Transform: "tempCelsius", Sink: &Sink{GroupEnvironment, "outsideTempDegC"}},

		// Simulation
		{Name: "AircraftName", Address: 0x3D00, RawType: RawString, Size: 256,
			Sink: &Sink{GroupSimulation, "aircraftName"}},
	}
}
