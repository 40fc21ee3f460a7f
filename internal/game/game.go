// Package game implements the main loop: input, camera, scene lifecycle
// and the overlay UI.
package game

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/blockfield/internal/assets"
	"github.com/Faultbox/blockfield/internal/config"
	"github.com/Faultbox/blockfield/internal/engine/camera"
	"github.com/Faultbox/blockfield/internal/engine/debug"
	"github.com/Faultbox/blockfield/internal/engine/input"
	"github.com/Faultbox/blockfield/internal/engine/lighting"
	"github.com/Faultbox/blockfield/internal/engine/overlay"
	"github.com/Faultbox/blockfield/internal/engine/picking"
	"github.com/Faultbox/blockfield/internal/engine/renderer"
	"github.com/Faultbox/blockfield/internal/engine/text"
	"github.com/Faultbox/blockfield/internal/engine/window"
	"github.com/Faultbox/blockfield/internal/game/scene"
	"github.com/Faultbox/blockfield/internal/game/ui"
	"github.com/Faultbox/blockfield/internal/logger"
)

const (
	panelMargin = 10
	fontSize    = 14
	pickRange   = 64
)

// Game is the main viewer instance.
type Game struct {
	cfg     *config.Config
	running bool
	log     *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	overlay  *overlay.Overlay
	input    *input.Input
	camera   *camera.FlyCamera

	ctx    context.Context
	cancel context.CancelFunc
	assets *assets.Manager
	loader *assets.Loader

	kind    string
	current *scene.Scene
	mapData *assets.Map // Last loaded map, reused when switching scene kinds

	face       *text.Face
	stats      *ui.Stats
	selector   *ui.MapSelector
	statsPanel *overlay.Panel
	mapPanel   *overlay.Panel
	panelCache map[*overlay.Panel]string

	screenshot     *debug.ScreenshotCapture
	wantScreenshot bool
}

// New creates the window, GL resources and the startup scene.
func New(cfg *config.Config) (*Game, error) {
	log := logger.Named("game")
	log.Info("initializing viewer",
		zap.String("scene", cfg.Scene.Kind),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	g := &Game{
		cfg:        cfg,
		log:        log,
		panelCache: make(map[*overlay.Panel]string),
	}

	// Create window (this also creates OpenGL context)
	var err error
	g.window, err = window.New(window.Config{
		Title:      "blockfield",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer AFTER window, since OpenGL context must exist
	dw, dh := g.window.DrawableSize()
	g.renderer, err = renderer.New(renderer.Config{
		Width:      dw,
		Height:     dh,
		ClearColor: [4]float32{0.53, 0.70, 0.90, 1},
		MeshColor:  [4]float32{0.85, 0.55, 0.25, 1},
		LightDir:   lighting.LightDirection(cfg.Graphics.SunAzimuth, cfg.Graphics.SunElevation),
	})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.overlay, err = overlay.New(dw, dh)
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to create overlay: %w", err)
	}

	g.face, err = text.NewFace(fontSize)
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to load overlay font: %w", err)
	}
	g.statsPanel = g.overlay.NewPanel()
	g.mapPanel = g.overlay.NewPanel()
	g.stats = ui.NewStats(cfg.Scene.ShowStats)
	g.stats.ShowMemory = cfg.Scene.ShowMemory
	g.selector = ui.NewMapSelector()

	g.input = input.New()
	g.camera = camera.NewFlyCamera(cfg.Camera.Eye)
	g.camera.Sensitivity = cfg.Camera.Sensitivity
	g.camera.Speed = cfg.Camera.Speed
	g.camera.FOV = cfg.Graphics.FOV
	g.camera.Near = cfg.Graphics.Near
	g.camera.Far = cfg.Graphics.Far

	g.ctx, g.cancel = context.WithCancel(context.Background())
	g.assets = assets.NewDirManager(cfg.Data.MapDir)
	g.loader = assets.NewLoader(g.ctx, g.assets)
	g.screenshot = debug.NewScreenshotCapture(cfg.Data.ScreenshotDir, "blockfield")

	g.refreshMaps()
	if cfg.Scene.Map != "" {
		g.selector.SetSelected(cfg.Scene.Map)
	} else if items := g.selector.Items(); len(items) > 0 {
		g.selector.SetSelected(items[0])
	}

	g.switchScene(cfg.Scene.Kind)
	if g.loader.Pending() != "" {
		// Open on the startup map rather than an empty frame
		if m := g.loader.Wait(); m != nil {
			g.applyMap(m)
		}
	}

	log.Info("viewer initialized successfully")
	return g, nil
}

// Run starts the main loop and returns when the window is closed.
func (g *Game) Run() error {
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting main loop")

	for g.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Process input
		if g.input.Update() {
			g.running = false
			break
		}
		g.handleEvents()

		// 2. Update camera, pending loads and UI state
		g.update(dt)

		// 3. Render
		g.render()

		if g.wantScreenshot {
			g.wantScreenshot = false
			g.saveScreenshot()
		}

		// 4. Present (swap buffers)
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.log.Debug("fps", zap.Int("count", frameCount), zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up viewer resources.
func (g *Game) Close() {
	g.log.Info("closing viewer")

	if g.cancel != nil {
		g.loader.Cancel()
		g.cancel()
	}
	if g.overlay != nil {
		g.overlay.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}

func (g *Game) handleEvents() {
	for _, event := range g.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			w, h := g.window.DrawableSize()
			g.renderer.Resize(w, h)
			g.overlay.Resize(w, h)
		case input.EventKeyDown:
			g.handleKey(event.Key)
		case input.EventMouseDown:
			if event.Button == sdl.BUTTON_LEFT && !g.window.PointerLocked() {
				g.handleClick(event.MouseX, event.MouseY)
			}
		}
	}
}

func (g *Game) handleKey(key sdl.Scancode) {
	// Dropdown navigation takes priority while it is open
	if g.selector.Open {
		switch key {
		case sdl.SCANCODE_UP:
			g.selector.Prev()
			return
		case sdl.SCANCODE_DOWN:
			g.selector.Next()
			return
		case sdl.SCANCODE_RETURN, sdl.SCANCODE_KP_ENTER:
			if name, _ := g.selector.Confirm(); name != "" {
				g.requestMap(name)
			}
			return
		}
	}

	switch key {
	case sdl.SCANCODE_ESCAPE:
		switch {
		case g.selector.Open:
			g.selector.Toggle()
		case g.window.PointerLocked():
			g.window.SetPointerLock(false)
		default:
			g.running = false
		}
	case sdl.SCANCODE_L, sdl.SCANCODE_SPACE:
		g.window.SetPointerLock(true)
	case sdl.SCANCODE_T:
		g.stats.Enabled = !g.stats.Enabled
	case sdl.SCANCODE_M:
		if scene.NeedsMap(g.kind) {
			g.refreshMaps()
			g.selector.Toggle()
			if g.selector.Open {
				// The cursor is needed to pick from the list
				g.window.SetPointerLock(false)
			}
		}
	case sdl.SCANCODE_R:
		g.reload()
	case sdl.SCANCODE_1, sdl.SCANCODE_2, sdl.SCANCODE_3, sdl.SCANCODE_4:
		g.switchScene(config.SceneKinds[key-sdl.SCANCODE_1])
	case sdl.SCANCODE_F12:
		g.wantScreenshot = true
	}
}

// handleClick maps a window-space click onto the dropdown rows.
func (g *Game) handleClick(x, y int) {
	if !g.selector.Open {
		return
	}
	x, y = g.toDrawable(x, y)

	px, py := g.mapPanelOrigin()
	pw, ph := g.mapPanel.Size()
	if x < px || x >= px+pw || y < py || y >= py+ph {
		return
	}

	row := g.face.RowAt(y-py, len(g.selector.Lines()), text.DefaultStyle)
	if name, ok := g.selector.Click(row); ok {
		g.requestMap(name)
	}
}

// toDrawable converts window coordinates to drawable pixels, which differ on
// high-DPI displays.
func (g *Game) toDrawable(x, y int) (int, int) {
	ww, wh := g.window.GetSize()
	dw, dh := g.window.DrawableSize()
	if ww > 0 && wh > 0 {
		x = x * dw / ww
		y = y * dh / wh
	}
	return x, y
}

func (g *Game) update(dt float64) {
	if g.window.PointerLocked() {
		g.camera.Look(g.input.PointerDelta())
	}
	g.camera.Update(g.input.Controls(), float32(dt))
	if g.current != nil {
		g.camera.Eye = g.current.ClampEye(g.camera.Eye)
	}

	if m := g.loader.Poll(); m != nil {
		g.applyMap(m)
	}

	g.stats.Update(dt * 1000)
	g.stats.Yaw, g.stats.Pitch = g.camera.Yaw, g.camera.Pitch
	g.stats.Eye, g.stats.Center = g.camera.Eye, g.camera.Center
	g.stats.Triangles = g.renderer.Triangles()
	g.stats.Pending = g.loader.Pending()
	g.stats.PointerHint = !g.window.PointerLocked()
	g.stats.Target = g.target()
}

// applyMap makes m the current map and rebuilds map-driven scenes.
func (g *Game) applyMap(m *assets.Map) {
	g.mapData = m
	g.selector.SetSelected(m.Name)
	if scene.NeedsMap(g.kind) {
		g.buildScene()
	}
}

// target describes the block under the crosshair while the pointer is
// locked, or under the cursor otherwise.
func (g *Game) target() string {
	if g.current == nil || g.current.Grid == nil {
		return ""
	}
	ray := picking.Ray{Origin: g.camera.Eye, Direction: g.camera.Center}
	if !g.window.PointerLocked() {
		x, y := g.toDrawable(g.input.MousePosition())
		w, h := g.renderer.Size()
		if w > 0 && h > 0 {
			inv := g.camera.ProjectionView(g.renderer.Aspect()).Inv()
			ray = picking.ScreenToRay(float32(x)+0.5, float32(y)+0.5, float32(w), float32(h), inv)
		}
	}
	hit, ok := picking.Pick(ray, g.current.Mesh.Bounds, g.current.Grid, pickRange)
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%d, %d, %d (%s)", hit.X, hit.Y, hit.Z, hit.Face)
}

func (g *Game) render() {
	g.renderer.Begin()
	g.renderer.Draw(g.camera.ProjectionView(g.renderer.Aspect()))

	showMap := scene.NeedsMap(g.kind)
	if !g.stats.Enabled && !showMap {
		return
	}

	g.overlay.Begin()
	if g.stats.Enabled {
		g.refreshPanel(g.statsPanel, g.stats.Lines())
		g.overlay.Draw(g.statsPanel, panelMargin, panelMargin)
	}
	if showMap {
		g.refreshPanel(g.mapPanel, g.selector.Lines())
		x, y := g.mapPanelOrigin()
		g.overlay.Draw(g.mapPanel, x, y)
	}
	g.overlay.End()
}

// refreshPanel re-rasterizes a panel only when its text changed.
func (g *Game) refreshPanel(p *overlay.Panel, lines []text.Line) {
	var key strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&key, "%s|%v|%v\n", l.Text, l.Color, l.Highlight)
	}
	if g.panelCache[p] == key.String() {
		return
	}
	g.panelCache[p] = key.String()
	g.overlay.SetImage(p, g.face.Render(lines, text.DefaultStyle))
}

// mapPanelOrigin anchors the selector to the top-right corner.
func (g *Game) mapPanelOrigin() (int, int) {
	sw, _ := g.renderer.Size()
	pw, _ := g.mapPanel.Size()
	return sw - pw - panelMargin, panelMargin
}

// switchScene changes the scene kind, building immediately when the inputs
// are at hand and otherwise waiting for the map load.
func (g *Game) switchScene(kind string) {
	g.kind = kind
	g.selector.Open = false
	g.log.Info("switching scene", zap.String("kind", kind))

	if !scene.NeedsMap(kind) || g.mapData != nil {
		g.buildScene()
		return
	}
	if name := g.selector.Selected(); name != "" {
		g.requestMap(name)
		return
	}
	g.log.Warn("no maps available", zap.String("kind", kind), zap.String("dir", g.cfg.Data.MapDir))
}

// reload resets the camera and rebuilds the scene from fresh inputs.
func (g *Game) reload() {
	g.log.Info("reloading scene", zap.String("kind", g.kind))
	g.camera.Reset()
	if g.current != nil && g.current.Aim {
		g.camera.LookAt(g.current.Target)
	}

	if scene.NeedsMap(g.kind) {
		g.assets.Cache().Clear()
		g.refreshMaps()
		if name := g.selector.Selected(); name != "" {
			g.requestMap(name)
		}
		return
	}
	g.buildScene()
}

func (g *Game) requestMap(name string) {
	g.loader.Request(name)
}

func (g *Game) refreshMaps() {
	names, err := g.assets.Maps()
	if err != nil {
		g.log.Warn("listing maps failed", zap.String("dir", g.cfg.Data.MapDir), zap.Error(err))
		return
	}
	g.selector.SetItems(names)
}

// buildScene generates the mesh on the main thread and uploads it.
func (g *Game) buildScene() {
	start := time.Now()
	s, err := scene.Build(g.kind, g.cfg, g.mapData)
	if err != nil {
		g.log.Warn("scene build failed", zap.String("kind", g.kind), zap.Error(err))
		return
	}

	g.renderer.Upload(s.Mesh, s.Colormap)
	g.current = s

	g.camera.SetStart(s.Eye)
	g.camera.Reset()
	if s.Aim {
		g.camera.LookAt(s.Target)
	}
	g.stats.Scene = s.Name
	g.window.SetTitle("blockfield - " + s.Name)

	g.log.Info("scene ready",
		zap.String("scene", s.Name),
		zap.Int("vertices", s.Mesh.VertexCount()),
		zap.Int("triangles", s.Mesh.TriangleCount()),
		zap.Duration("elapsed", time.Since(start)),
	)
}

func (g *Game) saveScreenshot() {
	pixels, w, h := g.renderer.ReadPixels()
	path, err := g.screenshot.CaptureFromPixels(pixels, w, h)
	if err != nil {
		g.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}
