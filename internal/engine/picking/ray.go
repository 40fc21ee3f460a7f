// Package picking provides ray casting against the block grid.
package picking

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/blockfield/internal/engine/terrain"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3 // Normalized direction
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj mgl32.Mat4) Ray {
	// Normalized device coords (-1 to 1), Y flipped
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH

	near := invViewProj.Mul4x1(mgl32.Vec4{ndcX, ndcY, -1, 1})
	far := invViewProj.Mul4x1(mgl32.Vec4{ndcX, ndcY, 1, 1})

	// Perspective divide
	if near[3] != 0 {
		near = near.Mul(1 / near[3])
	}
	if far[3] != 0 {
		far = far.Mul(1 / far[3])
	}

	origin := near.Vec3()
	dir := far.Vec3().Sub(origin)
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	return Ray{Origin: origin, Direction: dir}
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	for a := range 3 {
		if r.Direction[a] == 0 {
			if r.Origin[a] < box.Min[a] || r.Origin[a] > box.Max[a] {
				return 0, false
			}
			continue
		}
		t1 := (box.Min[a] - r.Origin[a]) / r.Direction[a]
		t2 := (box.Max[a] - r.Origin[a]) / r.Direction[a]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	// Entry point, or exit point if starting inside
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// NewAABB creates an AABB from two opposite corners in any order.
func NewAABB(a, b mgl32.Vec3) AABB {
	var box AABB
	for i := range 3 {
		box.Min[i] = min(a[i], b[i])
		box.Max[i] = max(a[i], b[i])
	}
	return box
}

// Contains reports whether p lies inside or on the box.
func (b AABB) Contains(p mgl32.Vec3) bool {
	for i := range 3 {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// BoundsBox converts mesh bounds to an AABB.
func BoundsBox(b terrain.Bounds) AABB {
	return NewAABB(b.Min, b.Max)
}

// Hit is a block struck by a ray.
type Hit struct {
	X, Y, Z  int
	Face     terrain.Face // Face the ray entered through
	Distance float32
}

// entryFaces[axis][0] is the face entered when stepping +axis, [1] for -axis.
var entryFaces = [3][2]terrain.Face{
	{terrain.FaceNegX, terrain.FacePosX},
	{terrain.FaceNegY, terrain.FacePosY},
	{terrain.FaceNegZ, terrain.FacePosZ},
}

// CastBlocks walks the unit cells along r, blocks centered on integer
// coordinates, and returns the first solid one within maxDist. The cell
// containing the origin is skipped so a camera inside a block still sees
// past it.
func CastBlocks(r Ray, occ terrain.Occluder, maxDist float32) (Hit, bool) {
	if occ == nil || r.Direction.Len() == 0 {
		return Hit{}, false
	}
	d := r.Direction.Normalize()
	p := r.Origin.Add(mgl32.Vec3{0.5, 0.5, 0.5})

	var (
		cell   [3]int
		step   [3]int
		tMax   [3]float32
		tDelta [3]float32
	)
	for a := range 3 {
		cell[a] = int(math32.Floor(p[a]))
		switch {
		case d[a] > 0:
			step[a] = 1
			tDelta[a] = 1 / d[a]
			tMax[a] = (float32(cell[a]+1) - p[a]) / d[a]
		case d[a] < 0:
			step[a] = -1
			tDelta[a] = -1 / d[a]
			tMax[a] = (p[a] - float32(cell[a])) / -d[a]
		default:
			tMax[a] = math32.Inf(1)
			tDelta[a] = math32.Inf(1)
		}
	}

	for {
		a := 0
		if tMax[1] < tMax[a] {
			a = 1
		}
		if tMax[2] < tMax[a] {
			a = 2
		}

		t := tMax[a]
		if t > maxDist {
			return Hit{}, false
		}
		cell[a] += step[a]
		tMax[a] += tDelta[a]

		if occ.Solid(cell[0], cell[1], cell[2]) {
			side := 0
			if step[a] < 0 {
				side = 1
			}
			return Hit{
				X: cell[0], Y: cell[1], Z: cell[2],
				Face:     entryFaces[a][side],
				Distance: t,
			}, true
		}
	}
}

// Pick casts r against occ, skipping the cell walk when the ray cannot reach
// the scene bounds within maxDist.
func Pick(r Ray, bounds terrain.Bounds, occ terrain.Occluder, maxDist float32) (Hit, bool) {
	box := BoundsBox(bounds)
	if !box.Contains(r.Origin) {
		t, ok := r.IntersectAABB(box)
		if !ok || t > maxDist {
			return Hit{}, false
		}
	}
	return CastBlocks(r, occ, maxDist)
}
