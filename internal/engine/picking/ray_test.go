package picking

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/blockfield/internal/engine/camera"
	"github.com/Faultbox/blockfield/internal/engine/terrain"
)

func approx(a, b float32) bool {
	return math32.Abs(a-b) < 1e-4
}

func TestCastBlocksStraightAhead(t *testing.T) {
	grid := terrain.NewColumnGrid(1, 1)
	grid.Set(0, 0, 0)

	r := Ray{Origin: mgl32.Vec3{0, 0, -5}, Direction: mgl32.Vec3{0, 0, 1}}
	hit, ok := CastBlocks(r, grid, 100)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.X != 0 || hit.Y != 0 || hit.Z != 0 {
		t.Errorf("hit block (%d,%d,%d), want origin", hit.X, hit.Y, hit.Z)
	}
	if hit.Face != terrain.FaceNegZ {
		t.Errorf("face = %v, want -z", hit.Face)
	}
	if !approx(hit.Distance, 4.5) {
		t.Errorf("distance = %v, want 4.5", hit.Distance)
	}
}

func TestCastBlocksDownOntoColumns(t *testing.T) {
	grid := terrain.NewColumnGrid(5, 5)
	for x := range 5 {
		for z := range 5 {
			grid.Set(x, z, 2)
		}
	}

	r := Ray{Origin: mgl32.Vec3{2, 10, 3}, Direction: mgl32.Vec3{0, -1, 0}}
	hit, ok := CastBlocks(r, grid, 100)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.X != 2 || hit.Y != 2 || hit.Z != 3 || hit.Face != terrain.FacePosY {
		t.Errorf("hit = %+v, want top face of (2,2,3)", hit)
	}
	if !approx(hit.Distance, 7.5) {
		t.Errorf("distance = %v, want 7.5", hit.Distance)
	}
}

func TestCastBlocksMisses(t *testing.T) {
	grid := terrain.NewColumnGrid(1, 1)
	grid.Set(0, 0, 0)

	tests := []struct {
		name string
		ray  Ray
		dist float32
	}{
		{"too far", Ray{Origin: mgl32.Vec3{0, 0, -5}, Direction: mgl32.Vec3{0, 0, 1}}, 3},
		{"pointing away", Ray{Origin: mgl32.Vec3{0, 0, -5}, Direction: mgl32.Vec3{0, 0, -1}}, 50},
		{"zero direction", Ray{Origin: mgl32.Vec3{0, 0, -5}}, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if hit, ok := CastBlocks(tt.ray, grid, tt.dist); ok {
				t.Errorf("unexpected hit %+v", hit)
			}
		})
	}

	if _, ok := CastBlocks(tests[0].ray, nil, 50); ok {
		t.Error("nil occluder should never hit")
	}
}

func TestCastBlocksSkipsOriginCell(t *testing.T) {
	grid := terrain.NewColumnGrid(3, 1)
	for x := range 3 {
		grid.Set(x, 0, 0)
	}

	// Starting inside block 0 looking +X hits block 1
	r := Ray{Origin: mgl32.Vec3{0, 0, 0}, Direction: mgl32.Vec3{1, 0, 0}}
	hit, ok := CastBlocks(r, grid, 10)
	if !ok || hit.X != 1 || hit.Face != terrain.FaceNegX {
		t.Errorf("hit = %+v,%v, want block 1 through -x", hit, ok)
	}
}

func TestScreenToRayCenter(t *testing.T) {
	cam := camera.NewFlyCamera(mgl32.Vec3{0, 0, 0})
	inv := cam.ProjectionView(16.0 / 9.0).Inv()

	r := ScreenToRay(400, 300, 800, 600, inv)
	if dot := r.Direction.Dot(cam.Center); dot < 0.999 {
		t.Errorf("center ray direction = %v, want %v (dot %v)", r.Direction, cam.Center, dot)
	}
}

func TestIntersectAABB(t *testing.T) {
	box := NewAABB(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{-1, -1, -1})
	if box.Min != (mgl32.Vec3{-1, -1, -1}) {
		t.Errorf("NewAABB should order corners, got %v", box)
	}

	outside := Ray{Origin: mgl32.Vec3{-5, 0, 0}, Direction: mgl32.Vec3{1, 0, 0}}
	if d, ok := outside.IntersectAABB(box); !ok || !approx(d, 4) {
		t.Errorf("entry = %v,%v, want 4,true", d, ok)
	}

	inside := Ray{Origin: mgl32.Vec3{0, 0, 0}, Direction: mgl32.Vec3{1, 0, 0}}
	if d, ok := inside.IntersectAABB(box); !ok || !approx(d, 1) {
		t.Errorf("exit = %v,%v, want 1,true", d, ok)
	}

	miss := Ray{Origin: mgl32.Vec3{-5, 3, 0}, Direction: mgl32.Vec3{1, 0, 0}}
	if _, ok := miss.IntersectAABB(box); ok {
		t.Error("offset ray should miss")
	}
}

// countingGrid records how many cells a cast inspects.
type countingGrid struct {
	*terrain.ColumnGrid
	calls int
}

func (g *countingGrid) Solid(x, y, z int) bool {
	g.calls++
	return g.ColumnGrid.Solid(x, y, z)
}

func TestPickSkipsRaysMissingBounds(t *testing.T) {
	grid := terrain.NewColumnGrid(4, 4)
	for x := range 4 {
		for z := range 4 {
			grid.Set(x, z, 1)
		}
	}
	occ := &countingGrid{ColumnGrid: grid}
	bounds := terrain.BuildBlocks(grid).Bounds

	// Passes high above the blocks
	over := Ray{Origin: mgl32.Vec3{-10, 20, 1}, Direction: mgl32.Vec3{1, 0, 0}}
	if _, ok := Pick(over, bounds, occ, 100); ok {
		t.Error("ray above the scene should miss")
	}
	if occ.calls != 0 {
		t.Errorf("missed ray walked %d cells, want 0", occ.calls)
	}

	// Reaches the box, but only beyond maxDist
	far := Ray{Origin: mgl32.Vec3{-50, 1, 1}, Direction: mgl32.Vec3{1, 0, 0}}
	if _, ok := Pick(far, bounds, occ, 10); ok || occ.calls != 0 {
		t.Errorf("out of range ray: ok=%v calls=%d, want miss without walking", ok, occ.calls)
	}

	down := Ray{Origin: mgl32.Vec3{2, 10, 2}, Direction: mgl32.Vec3{0, -1, 0}}
	hit, ok := Pick(down, bounds, occ, 100)
	if !ok || hit.X != 2 || hit.Y != 1 || hit.Z != 2 {
		t.Errorf("Pick = %+v,%v, want top of column (2,2)", hit, ok)
	}
}

func TestPickFromInsideBounds(t *testing.T) {
	grid := terrain.NewColumnGrid(3, 1)
	for x := range 3 {
		grid.Set(x, 0, 0)
	}
	bounds := terrain.BuildBlocks(grid).Bounds

	r := Ray{Origin: mgl32.Vec3{0, 0, 0}, Direction: mgl32.Vec3{1, 0, 0}}
	if hit, ok := Pick(r, bounds, grid, 10); !ok || hit.X != 1 {
		t.Errorf("Pick from inside = %+v,%v, want block 1", hit, ok)
	}
}
