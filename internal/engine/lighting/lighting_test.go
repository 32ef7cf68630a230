package lighting

import (
	"math"
	"testing"
	"time"
)

func near(a, b, eps float32) bool {
	d := a - b
	return d < eps && d > -eps
}

func TestDirection(t *testing.T) {
	tests := []struct {
		lon, lat float32
		want     [3]float32
	}{
		{0, 0, [3]float32{0, 0, 1}},
		{90, 0, [3]float32{1, 0, 0}},
		{0, 90, [3]float32{0, 1, 0}},
		{180, 0, [3]float32{0, 0, -1}},
	}
	for _, tt := range tests {
		got := Direction(tt.lon, tt.lat)
		for i := range got {
			if !near(got[i], tt.want[i], 1e-6) {
				t.Errorf("Direction(%v, %v) = %v, want %v", tt.lon, tt.lat, got, tt.want)
				break
			}
		}
	}
}

func TestAnglesRoundTrip(t *testing.T) {
	for _, c := range [][2]float32{{0, 0}, {45, 30}, {-120, -60}, {170, 10}} {
		lon, lat := Angles(Direction(c[0], c[1]))
		if !near(lon, c[0], 1e-3) || !near(lat, c[1], 1e-3) {
			t.Errorf("Angles(Direction(%v)) = (%v, %v)", c, lon, lat)
		}
	}
	if lon, lat := Angles([3]float32{}); lon != 0 || lat != 0 {
		t.Errorf("zero vector angles = (%v, %v)", lon, lat)
	}
}

func TestSunDeclination(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		z    float64
	}{
		{"march equinox", time.Date(2024, 3, 20, 3, 6, 0, 0, time.UTC), 0},
		{"june solstice", time.Date(2024, 6, 20, 20, 51, 0, 0, time.UTC), math.Sin(23.44 * math.Pi / 180)},
		{"december solstice", time.Date(2024, 12, 21, 9, 20, 0, 0, time.UTC), -math.Sin(23.44 * math.Pi / 180)},
	}
	for _, tt := range tests {
		v := SunDirectionECEF(tt.at)
		if math.Abs(v[2]-tt.z) > 0.005 {
			t.Errorf("%s: z = %f, want %f", tt.name, v[2], tt.z)
		}
		l := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
		if math.Abs(l-1) > 1e-9 {
			t.Errorf("%s: length %f", tt.name, l)
		}
	}
}

func TestSubsolarPointAtNoonUTC(t *testing.T) {
	// at 12:00 UTC the sun stands close to the Greenwich meridian
	v := SunDirectionECEF(time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC))
	if v[0] < 0.99 {
		t.Errorf("sun direction %v, want near +x", v)
	}
	g := GlobeFrame(v)
	if g[0] > -0.99 {
		t.Errorf("globe frame %v, want near -x", g)
	}
}

func TestLightAdjust(t *testing.T) {
	l := &Light{Distance: 10}
	l.Set(170, 80)
	l.Adjust(20, 20)
	if !near(l.Longitude, -170, 1e-4) {
		t.Errorf("longitude = %v, want -170", l.Longitude)
	}
	if l.Latitude != MaxLatitude {
		t.Errorf("latitude = %v, want clamp to %v", l.Latitude, MaxLatitude)
	}

	l.Set(0, 0)
	p := l.Position()
	if !near(p[2], 10, 1e-5) || !near(p[0], 0, 1e-5) {
		t.Errorf("position = %v, want (0,0,10)", p)
	}
}

func TestNewSunLight(t *testing.T) {
	at := time.Date(2024, 6, 20, 20, 51, 0, 0, time.UTC)
	l := NewSunLight(at, 50)
	if !near(l.Latitude, 23.44, 0.5) {
		t.Errorf("latitude = %v, want ~23.44", l.Latitude)
	}
	p := l.Position()
	d := float32(math.Sqrt(float64(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])))
	if !near(d, 50, 1e-3) {
		t.Errorf("distance = %v, want 50", d)
	}
}
