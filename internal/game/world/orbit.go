package world

import (
	"github.com/chewxy/math32"
)

// Orbit mapping bounds. Distances are close-approach distances in km;
// radii are in globe radii.
const (
	NearKm    = 1e4
	FarKm     = 7.5e7
	MinRadius = 1.25
	MaxRadius = 3.0

	MinStep    = 0.0005
	MaxStep    = 0.01
	StepPerKmS = 0.0004
)

// OrbitRadius maps an approach distance to an orbit radius. The mapping is
// logarithmic, monotonic and clamped to [MinRadius, MaxRadius].
func OrbitRadius(km float64) float32 {
	switch {
	case km <= NearKm:
		return MinRadius
	case km >= FarKm:
		return MaxRadius
	}
	f := math32.Log(float32(km/NearKm)) / math32.Log(FarKm/NearKm)
	return MinRadius + f*(MaxRadius-MinRadius)
}

// OrbitStep maps a relative velocity to a per-frame orbit advance in radians.
func OrbitStep(kmS float64) float32 {
	return min(max(float32(kmS)*StepPerKmS, MinStep), MaxStep)
}
