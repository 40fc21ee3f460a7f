// Package camera provides the first-person camera used by every scene.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// MaxPitch bounds pitch away from the poles, where the view matrix would flip.
const MaxPitch = 89.0

// Controls holds the movement keys currently held down.
type Controls struct {
	Forward, Back, Left, Right bool
}

// Direction converts yaw/pitch in degrees to a unit look vector.
func Direction(yaw, pitch float32) mgl32.Vec3 {
	y := mgl32.DegToRad(yaw)
	p := mgl32.DegToRad(pitch)
	return mgl32.Vec3{
		math32.Cos(y) * math32.Cos(p),
		math32.Sin(p),
		math32.Sin(y) * math32.Cos(p),
	}.Normalize()
}

// ClampPitch restricts pitch to [-MaxPitch, MaxPitch].
func ClampPitch(pitch float32) float32 {
	return mgl32.Clamp(pitch, -MaxPitch, MaxPitch)
}

// FlyCamera is a free-fly first-person camera driven by yaw/pitch angles.
type FlyCamera struct {
	Eye    mgl32.Vec3
	Center mgl32.Vec3 // Unit look direction, derived from Yaw/Pitch
	Up     mgl32.Vec3

	// Angles in degrees
	Yaw   float32
	Pitch float32

	Sensitivity float32 // Degrees per pixel of pointer motion
	Speed       float32 // World units per second

	// Projection
	FOV  float32 // Vertical, degrees
	Near float32
	Far  float32

	start mgl32.Vec3
}

// NewFlyCamera creates a camera at eye looking down +X.
func NewFlyCamera(eye mgl32.Vec3) *FlyCamera {
	c := &FlyCamera{
		Sensitivity: 0.05,
		Speed:       20,
		FOV:         45,
		Near:        0.01,
		Far:         1000,
		start:       eye,
	}
	c.Reset()
	return c
}

// Reset restores the startup position and orientation.
func (c *FlyCamera) Reset() {
	c.Eye = c.start
	c.Up = mgl32.Vec3{0, 1, 0}
	c.Yaw, c.Pitch = 0, 0
	c.UpdateDirection()
}

// SetStart changes the position Reset returns to.
func (c *FlyCamera) SetStart(eye mgl32.Vec3) {
	c.start = eye
}

// Look applies a pointer delta in pixels.
func (c *FlyCamera) Look(dx, dy float32) {
	c.Yaw += c.Sensitivity * dx
	c.Pitch -= c.Sensitivity * dy
	c.Pitch = ClampPitch(c.Pitch)
}

// UpdateDirection re-derives Center from the current angles.
func (c *FlyCamera) UpdateDirection() {
	c.Center = Direction(c.Yaw, c.Pitch)
}

// Right returns the unit strafe vector.
func (c *FlyCamera) Right() mgl32.Vec3 {
	return c.Center.Cross(c.Up).Normalize()
}

// Move translates the eye along the look vector and its strafe vector.
// dt is the frame time in seconds.
func (c *FlyCamera) Move(ctl Controls, dt float32) {
	step := c.Speed * dt
	if ctl.Forward || ctl.Back {
		dist := c.Center.Mul(step)
		if ctl.Forward {
			c.Eye = c.Eye.Add(dist)
		}
		if ctl.Back {
			c.Eye = c.Eye.Sub(dist)
		}
	}
	if ctl.Left || ctl.Right {
		dist := c.Right().Mul(step)
		if ctl.Left {
			c.Eye = c.Eye.Sub(dist)
		}
		if ctl.Right {
			c.Eye = c.Eye.Add(dist)
		}
	}
}

// Update runs one frame of camera logic: direction first, then movement.
func (c *FlyCamera) Update(ctl Controls, dt float32) {
	c.UpdateDirection()
	c.Move(ctl, dt)
}

// View returns the view matrix.
func (c *FlyCamera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Eye.Add(c.Center), c.Up)
}

// Projection returns the perspective matrix for the given aspect ratio.
func (c *FlyCamera) Projection(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// ProjectionView returns projection * view.
func (c *FlyCamera) ProjectionView(aspect float32) mgl32.Mat4 {
	return c.Projection(aspect).Mul4(c.View())
}

// LookAt turns the camera toward target, keeping pitch inside the clamp.
func (c *FlyCamera) LookAt(target mgl32.Vec3) {
	d := target.Sub(c.Eye)
	if d.Len() == 0 {
		return
	}
	d = d.Normalize()
	c.Pitch = ClampPitch(mgl32.RadToDeg(math32.Asin(mgl32.Clamp(d.Y(), -1, 1))))
	c.Yaw = mgl32.RadToDeg(math32.Atan2(d.Z(), d.X()))
	c.UpdateDirection()
}
