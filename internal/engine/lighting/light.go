package lighting

import "time"

// MaxLatitude keeps the light off the poles so longitude stays meaningful.
const MaxLatitude = 89

// Light is a point light orbiting the scene origin.
type Light struct {
	Longitude float32 // degrees, wrapped to (-180, 180]
	Latitude  float32 // degrees, clamped to ±MaxLatitude
	Distance  float32
}

// NewSunLight places a light at distance in the real sun's direction at t.
func NewSunLight(t time.Time, distance float32) *Light {
	lon, lat := Angles(GlobeFrame(SunDirectionECEF(t)))
	l := &Light{Distance: distance}
	l.Set(lon, lat)
	return l
}

// Set moves the light to the given angles.
func (l *Light) Set(longitude, latitude float32) {
	l.Longitude = wrap(longitude)
	l.Latitude = min(max(latitude, -MaxLatitude), MaxLatitude)
}

// Adjust moves the light by the given angle deltas in degrees.
func (l *Light) Adjust(dLon, dLat float32) {
	l.Set(l.Longitude+dLon, l.Latitude+dLat)
}

// Position returns the light's world position.
func (l *Light) Position() [3]float32 {
	d := Direction(l.Longitude, l.Latitude)
	return [3]float32{d[0] * l.Distance, d[1] * l.Distance, d[2] * l.Distance}
}

func wrap(deg float32) float32 {
	for deg > 180 {
		deg -= 360
	}
	for deg <= -180 {
		deg += 360
	}
	return deg
}
