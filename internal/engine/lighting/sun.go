// Package lighting positions the light that shines on the globe.
package lighting

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
)

// SunDirectionECEF returns the unit vector from the Earth's center towards
// the sun at t, in Earth-fixed coordinates (x through 0° longitude on the
// equator, z through the north pole).
func SunDirectionECEF(t time.Time) [3]float64 {
	jd := julian.TimeToJD(t.UTC())

	ra, dec := solar.ApparentEquatorial(jd)
	x := dec.Cos() * ra.Cos()
	y := dec.Cos() * ra.Sin()
	z := dec.Sin()

	// inertial to Earth-fixed
	gst := sidereal.Apparent(jd).Angle()
	c, s := gst.Cos(), gst.Sin()
	return [3]float64{x*c + y*s, -x*s + y*c, z}
}

// GlobeFrame maps an Earth-fixed vector into the globe mesh frame, where the
// north pole is +Y, 0° longitude is -X and 90°E is +Z.
func GlobeFrame(v [3]float64) [3]float32 {
	return [3]float32{float32(-v[0]), float32(v[2]), float32(v[1])}
}

// Direction converts a longitude around Y and a latitude above the XZ plane,
// both in degrees, to a unit vector. (0, 0) is +Z.
func Direction(longitude, latitude float32) [3]float32 {
	sinLon, cosLon := math32.Sincos(longitude * math32.Pi / 180)
	sinLat, cosLat := math32.Sincos(latitude * math32.Pi / 180)
	return [3]float32{cosLat * sinLon, sinLat, cosLat * cosLon}
}

// Angles is the inverse of Direction. v need not be normalized.
func Angles(v [3]float32) (longitude, latitude float32) {
	l := math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if l == 0 {
		return 0, 0
	}
	latitude = math32.Asin(v[1]/l) * 180 / math32.Pi
	longitude = math32.Atan2(v[0], v[2]) * 180 / math32.Pi
	return longitude, latitude
}
