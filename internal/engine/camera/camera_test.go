package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const epsilon = 1e-4

func near(a, b float32) bool {
	return math32.Abs(a-b) < epsilon
}

// nearVec compares with an absolute tolerance; trig leaves ~1e-8 noise on
// components that should be exactly zero.
func nearVec(a, b mgl32.Vec3) bool {
	return a.Sub(b).Len() < epsilon
}

func TestDirectionUnitLength(t *testing.T) {
	for yaw := float32(0); yaw < 360; yaw += 7.5 {
		for pitch := float32(-88.5); pitch < 89; pitch += 3.5 {
			d := Direction(yaw, pitch)
			if !near(d.Len(), 1) {
				t.Fatalf("Direction(%v, %v) length = %v, want 1", yaw, pitch, d.Len())
			}
		}
	}
}

func TestDirectionAxes(t *testing.T) {
	tests := []struct {
		yaw, pitch float32
		want       mgl32.Vec3
	}{
		{0, 0, mgl32.Vec3{1, 0, 0}},
		{90, 0, mgl32.Vec3{0, 0, 1}},
		{180, 0, mgl32.Vec3{-1, 0, 0}},
		{270, 0, mgl32.Vec3{0, 0, -1}},
	}
	for _, tt := range tests {
		got := Direction(tt.yaw, tt.pitch)
		if !nearVec(got, tt.want) {
			t.Errorf("Direction(%v, %v) = %v, want %v", tt.yaw, tt.pitch, got, tt.want)
		}
	}

	up := Direction(0, MaxPitch)
	if up.Y() < 0.99 {
		t.Errorf("pitch %v should look almost straight up, got %v", MaxPitch, up)
	}
}

func TestLookClampsPitch(t *testing.T) {
	c := NewFlyCamera(mgl32.Vec3{})

	deltas := []float32{-100000, 35, 2000, -4000, 1, 1e6, -1e6, 0}
	for _, dy := range deltas {
		c.Look(13, dy)
		if c.Pitch < -MaxPitch || c.Pitch > MaxPitch {
			t.Fatalf("pitch %v escaped clamp after dy=%v", c.Pitch, dy)
		}
	}
}

func TestLookSensitivity(t *testing.T) {
	c := NewFlyCamera(mgl32.Vec3{})
	c.Look(100, 40)

	// Moving the pointer down looks down
	if !near(c.Yaw, 5) {
		t.Errorf("yaw = %v, want 5", c.Yaw)
	}
	if !near(c.Pitch, -2) {
		t.Errorf("pitch = %v, want -2", c.Pitch)
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name string
		ctl  Controls
		want mgl32.Vec3
	}{
		{"forward", Controls{Forward: true}, mgl32.Vec3{2, 0, 0}},
		{"back", Controls{Back: true}, mgl32.Vec3{-2, 0, 0}},
		// center (1,0,0) x up (0,1,0) = (0,0,1)
		{"right", Controls{Right: true}, mgl32.Vec3{0, 0, 2}},
		{"left", Controls{Left: true}, mgl32.Vec3{0, 0, -2}},
		{"forward and back cancel", Controls{Forward: true, Back: true}, mgl32.Vec3{}},
		{"diagonal", Controls{Forward: true, Right: true}, mgl32.Vec3{2, 0, 2}},
		{"idle", Controls{}, mgl32.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewFlyCamera(mgl32.Vec3{})
			c.Speed = 2
			c.Update(tt.ctl, 1)
			if !nearVec(c.Eye, tt.want) {
				t.Errorf("eye = %v, want %v", c.Eye, tt.want)
			}
		})
	}
}

func TestMoveScalesWithFrameTime(t *testing.T) {
	c := NewFlyCamera(mgl32.Vec3{})
	c.Speed = 10
	c.Move(Controls{Forward: true}, 0.5)
	if !near(c.Eye.X(), 5) {
		t.Errorf("eye.x = %v, want 5", c.Eye.X())
	}
}

func TestReset(t *testing.T) {
	start := mgl32.Vec3{20, 0, 0}
	c := NewFlyCamera(start)
	c.Look(500, 300)
	c.Update(Controls{Forward: true, Left: true}, 1)

	c.Reset()
	if c.Eye != start {
		t.Errorf("eye = %v, want %v", c.Eye, start)
	}
	if c.Yaw != 0 || c.Pitch != 0 {
		t.Errorf("angles = (%v, %v), want (0, 0)", c.Yaw, c.Pitch)
	}
	if !nearVec(c.Center, mgl32.Vec3{1, 0, 0}) {
		t.Errorf("center = %v, want +X", c.Center)
	}
}

func TestLookAt(t *testing.T) {
	c := NewFlyCamera(mgl32.Vec3{0, 0, 0})
	c.LookAt(mgl32.Vec3{0, 0, 10})
	if !nearVec(c.Center, mgl32.Vec3{0, 0, 1}) {
		t.Errorf("center = %v, want +Z", c.Center)
	}

	// Straight up is clamped
	c.LookAt(mgl32.Vec3{0, 10, 0})
	if c.Pitch > MaxPitch {
		t.Errorf("pitch %v exceeds clamp", c.Pitch)
	}
}

func TestProjectionViewMapsCenterToOrigin(t *testing.T) {
	c := NewFlyCamera(mgl32.Vec3{20, 0, 0})
	pv := c.ProjectionView(16.0 / 9.0)

	// A point straight ahead projects onto the screen center
	p := pv.Mul4x1(mgl32.Vec4{30, 0, 0, 1})
	ndcX, ndcY := p.X()/p.W(), p.Y()/p.W()
	if !near(ndcX, 0) || !near(ndcY, 0) {
		t.Errorf("point ahead projected to (%v, %v), want (0, 0)", ndcX, ndcY)
	}
	if p.W() <= 0 {
		t.Error("point ahead should be in front of the camera")
	}
}

func TestProjectionBadAspect(t *testing.T) {
	c := NewFlyCamera(mgl32.Vec3{})
	if c.Projection(0) != c.Projection(1) {
		t.Error("non-positive aspect should fall back to 1")
	}
}
