package wlkit

import "math"

// Inclination is the orientation of a stylus, expressible either as tilt
// angles over the X and Y axes (degrees in [-90, 90]) or as a spherical
// azimuth/altitude pair (radians). It stores whichever representation the
// hardware reported and converts to the other on demand, so a value never
// accumulates double rounding from an eager conversion.
//
// The conversions follow the W3C Pointer Events relationship between
// tiltX/tiltY and altitudeAngle/azimuthAngle. Round-tripping can lose
// precision at the axis-aligned boundaries (a tilt component of 90 degrees,
// or zero altitude) where the inverse mapping is not unique.
type Inclination struct {
	fromTilt     bool
	tiltX, tiltY int
	azimuth      float64
	altitude     float64
}

// TiltInclination returns an inclination reported by the hardware as tilt
// angles in degrees.
func TiltInclination(tiltX, tiltY int) Inclination {
	return Inclination{fromTilt: true, tiltX: tiltX, tiltY: tiltY}
}

// AngleInclination returns an inclination reported by the hardware as a
// spherical azimuth/altitude pair in radians.
func AngleInclination(azimuth, altitude float64) Inclination {
	return Inclination{azimuth: azimuth, altitude: altitude}
}

// Tilt returns the tilt-angle representation in degrees. If the hardware
// reported tilt, the stored values are returned unchanged.
func (in Inclination) Tilt() (tiltX, tiltY int) {
	if in.fromTilt {
		return in.tiltX, in.tiltY
	}
	return sphericalToTilt(in.azimuth, in.altitude)
}

// AzimuthAltitude returns the spherical representation in radians. If the
// hardware reported azimuth/altitude, the stored values are returned
// unchanged.
func (in Inclination) AzimuthAltitude() (azimuth, altitude float64) {
	if !in.fromTilt {
		return in.azimuth, in.altitude
	}
	return tiltToSpherical(in.tiltX, in.tiltY)
}

const degToRad = math.Pi / 180

// tiltToSpherical converts tilt angles in degrees to an azimuth/altitude
// pair in radians. The degenerate axis cases and the 90-degree pole are
// resolved by explicit case analysis; the pole carries too little
// information and maps to (0, 0).
func tiltToSpherical(tiltX, tiltY int) (azimuth, altitude float64) {
	txRad := float64(tiltX) * degToRad
	tyRad := float64(tiltY) * degToRad

	switch {
	case tiltX == 0:
		if tiltY > 0 {
			azimuth = math.Pi / 2
		} else if tiltY < 0 {
			azimuth = 3 * math.Pi / 2
		}
	case tiltY == 0:
		if tiltX < 0 {
			azimuth = math.Pi
		}
	case tiltX == 90 || tiltX == -90 || tiltY == 90 || tiltY == -90:
		azimuth = 0
	default:
		azimuth = math.Atan2(math.Tan(tyRad), math.Tan(txRad))
		if azimuth < 0 {
			azimuth += 2 * math.Pi
		}
	}

	switch {
	case tiltX == 90 || tiltX == -90 || tiltY == 90 || tiltY == -90:
		altitude = 0
	case tiltX == 0:
		altitude = math.Pi/2 - math.Abs(tyRad)
	case tiltY == 0:
		altitude = math.Pi/2 - math.Abs(txRad)
	default:
		tanX := math.Tan(txRad)
		tanY := math.Tan(tyRad)
		altitude = math.Atan(1 / math.Sqrt(tanX*tanX+tanY*tanY))
	}
	return azimuth, altitude
}

// sphericalToTilt converts an azimuth/altitude pair in radians to tilt
// angles, rounded to whole degrees. Zero altitude puts the pen in the
// surface plane, where tilt is fixed by which octant the azimuth falls in.
func sphericalToTilt(azimuth, altitude float64) (tiltX, tiltY int) {
	if altitude == 0 {
		var txRad, tyRad float64
		switch {
		case azimuth == 0 || azimuth == 2*math.Pi:
			txRad = math.Pi / 2
		case azimuth == math.Pi/2:
			tyRad = math.Pi / 2
		case azimuth == math.Pi:
			txRad = -math.Pi / 2
		case azimuth == 3*math.Pi/2:
			tyRad = -math.Pi / 2
		case azimuth > 0 && azimuth < math.Pi/2:
			txRad = math.Pi / 2
			tyRad = math.Pi / 2
		case azimuth > math.Pi/2 && azimuth < math.Pi:
			txRad = -math.Pi / 2
			tyRad = math.Pi / 2
		case azimuth > math.Pi && azimuth < 3*math.Pi/2:
			txRad = -math.Pi / 2
			tyRad = -math.Pi / 2
		case azimuth > 3*math.Pi/2 && azimuth < 2*math.Pi:
			txRad = math.Pi / 2
			tyRad = -math.Pi / 2
		}
		return int(math.Round(txRad / degToRad)), int(math.Round(tyRad / degToRad))
	}

	tanAlt := math.Tan(altitude)
	txRad := math.Atan(math.Cos(azimuth) / tanAlt)
	tyRad := math.Atan(math.Sin(azimuth) / tanAlt)
	return int(math.Round(txRad / degToRad)), int(math.Round(tyRad / degToRad))
}
