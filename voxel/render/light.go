package render

import (
	"math"

	"voxelbox/voxel/raster"
)

// NightFloor is the darkest the day/night factor gets.
const NightFloor = 0.3

// Face names the six sides of a block.
type Face uint8

const (
	FaceBottom Face = iota
	FaceTop
	FaceNorth // -Z
	FaceSouth // +Z
	FaceWest  // -X
	FaceEast  // +X
)

var faceFactor = [6]float64{
	FaceBottom: 0.5,
	FaceTop:    1.0,
	FaceNorth:  0.8,
	FaceSouth:  0.8,
	FaceWest:   0.65,
	FaceEast:   0.65,
}

// DayFactor is the global brightness for a world time. It rises with
// sin(2*pi*t/L) and never drops below NightFloor.
func DayFactor(worldTime, dayLength float64) float64 {
	if dayLength <= 0 {
		return 1
	}
	v := (math.Sin(2*math.Pi*worldTime/dayLength) + 1) / 2
	return math.Max(NightFloor, v)
}

// LightFactor is the shading multiplier of face f at worldTime.
func LightFactor(f Face, worldTime, dayLength float64) float64 {
	return faceFactor[f] * DayFactor(worldTime, dayLength)
}

// IsNight reports whether the sun is below the horizon.
func IsNight(worldTime, dayLength float64) bool {
	if dayLength <= 0 {
		return false
	}
	return math.Sin(2*math.Pi*worldTime/dayLength) < -0.05
}

var (
	skyDay   = raster.RGB(120, 180, 255)
	skyDawn  = raster.RGB(245, 150, 95)
	skyNight = raster.RGB(10, 12, 36)
)

// SkyColor interpolates between night, sunrise and day bands.
func SkyColor(worldTime, dayLength float64) raster.Color {
	if dayLength <= 0 {
		return skyDay
	}
	s := math.Sin(2 * math.Pi * worldTime / dayLength)
	switch {
	case s >= 0.25:
		return skyDay
	case s <= -0.25:
		return skyNight
	}
	k := (s + 0.25) / 0.5
	if k < 0.5 {
		return raster.Lerp(skyNight, skyDawn, k*2)
	}
	return raster.Lerp(skyDawn, skyDay, (k-0.5)*2)
}
