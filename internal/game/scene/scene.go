// Package scene turns a scene kind and its inputs into a static mesh ready
// for upload, plus the camera placement that frames it.
package scene

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/blockfield/internal/assets"
	"github.com/Faultbox/blockfield/internal/config"
	"github.com/Faultbox/blockfield/internal/engine/terrain"
)

// ErrNoMap is returned when a map-driven scene is built without a map.
var ErrNoMap = errors.New("scene needs a map")

// EyeHeight keeps the camera this far above smooth terrain.
const EyeHeight = 1.5

// Scene is a built, immutable scene.
type Scene struct {
	Kind     string
	Name     string
	Mesh     *terrain.Mesh
	Colormap image.Image         // nil renders the flat mesh color
	Grid     *terrain.ColumnGrid // Block layout for picking; nil for smooth terrain
	Ground   *terrain.Heightmap  // Smooth terrain surface; nil for block scenes

	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Aim    bool // Point the camera at Target on load
}

// NeedsMap reports whether kind is driven by a heightmap/colormap pair.
func NeedsMap(kind string) bool {
	return kind == config.SceneBlockMap || kind == config.SceneTerrain
}

// Build generates the geometry for kind. Map scenes require m.
func Build(kind string, cfg *config.Config, m *assets.Map) (*Scene, error) {
	if NeedsMap(kind) && m == nil {
		return nil, fmt.Errorf("%s: %w", kind, ErrNoMap)
	}

	sc := cfg.Scene
	s := &Scene{Kind: kind, Name: kind}
	ch, err := terrain.ParseChannel(sc.HeightChannel)
	if err != nil {
		return nil, err
	}

	switch kind {
	case config.SceneCubes:
		s.Mesh = terrain.BuildCubeField(sc.CubeGrid)
		s.Grid = fullGrid(sc.CubeGrid)
		s.Eye = mgl32.Vec3(cfg.Camera.Eye)
		return s, nil

	case config.SceneBlocks:
		grid := terrain.GenerateColumns(terrain.DefaultNoise(sc.Seed), sc.BlockSize, sc.BlockSize, sc.BlockHeight)
		s.Mesh = terrain.BuildBlocks(grid)
		s.Grid = grid
		s.Colormap = grid.Colormap()
		s.Name = fmt.Sprintf("%s (seed %d)", kind, sc.Seed)

	case config.SceneBlockMap:
		hm := terrain.DecodeHeightmap(m.Heightmap, ch, float32(sc.BlockHeight))
		s.Grid = hm.Columns(1)
		s.Mesh = terrain.BuildBlocks(s.Grid)
		s.Colormap = m.Colormap
		s.Name = fmt.Sprintf("%s: %s", kind, m.Name)

	case config.SceneTerrain:
		s.Ground = terrain.DecodeHeightmap(m.Heightmap, ch, sc.HeightScale)
		s.Mesh = terrain.BuildSurfaceMesh(s.Ground)
		s.Colormap = m.Colormap
		s.Name = fmt.Sprintf("%s: %s", kind, m.Name)

	default:
		return nil, fmt.Errorf("unknown scene kind %q", kind)
	}

	s.Eye, s.Target = Overview(s.Mesh.Bounds)
	s.Aim = true
	return s, nil
}

// ClampEye lifts eye so it stays EyeHeight above smooth terrain while it is
// over the heightmap. Block scenes and positions off the map are unchanged.
func (s *Scene) ClampEye(eye mgl32.Vec3) mgl32.Vec3 {
	hm := s.Ground
	if hm == nil {
		return eye
	}
	x, z := eye.X(), eye.Z()
	if x < 0 || z < 0 || x > float32(hm.Width-1) || z > float32(hm.Depth-1) {
		return eye
	}
	if floor := hm.HeightAt(x, z) + EyeHeight; eye.Y() < floor {
		eye[1] = floor
	}
	return eye
}

// Overview places the eye behind the near edge of b, raised above its top,
// looking at the center.
func Overview(b terrain.Bounds) (eye, target mgl32.Vec3) {
	target = b.Center()
	size := b.Size()
	lift := max(size.X(), size.Z()) * 0.25
	eye = mgl32.Vec3{target.X(), b.Max.Y() + lift, b.Min.Z() - lift}
	return eye, target
}

// fullGrid describes a solid size^3 cube as columns.
func fullGrid(size int) *terrain.ColumnGrid {
	grid := terrain.NewColumnGrid(size, size)
	for x := range size {
		for z := range size {
			grid.Set(x, z, size-1)
		}
	}
	return grid
}
