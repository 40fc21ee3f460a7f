package lighting

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name               string
		azimuth, elevation float32
		want               mgl32.Vec3
	}{
		{"horizon north", 0, 0, mgl32.Vec3{0, 0, 1}},
		{"horizon east", 90, 0, mgl32.Vec3{1, 0, 0}},
		{"zenith", 45, 90, mgl32.Vec3{0, 1, 0}},
		{"clamped past zenith", 0, 120, mgl32.Vec3{0, 1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SunDirection(tt.azimuth, tt.elevation)
			if got.Sub(tt.want).Len() > 1e-5 {
				t.Errorf("SunDirection(%v, %v) = %v, want %v", tt.azimuth, tt.elevation, got, tt.want)
			}
		})
	}
}

func TestLightDirectionOpposesSun(t *testing.T) {
	for az := float32(0); az < 360; az += 30 {
		sun := SunDirection(az, 50)
		light := LightDirection(az, 50)
		if math32.Abs(sun.Len()-1) > 1e-5 {
			t.Errorf("azimuth %v: sun not unit length (%v)", az, sun.Len())
		}
		if d := sun.Dot(light); math32.Abs(d+1) > 1e-5 {
			t.Errorf("azimuth %v: dot = %v, want -1", az, d)
		}
		if light.Y() >= 0 {
			t.Errorf("azimuth %v: light from an elevated sun should point down", az)
		}
	}
}
