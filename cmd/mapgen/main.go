// Command mapgen writes procedural heightmap/colormap PNG pairs that the
// terrain and blockmap scenes can load.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/blockfield/internal/assets"
	"github.com/Faultbox/blockfield/internal/engine/terrain"
	"github.com/Faultbox/blockfield/internal/logger"
)

func main() {
	out := flag.String("out", "maps", "Output directory")
	name := flag.String("name", "", "Map name (default: noise-<seed>)")
	size := flag.Int("size", 256, "Width and depth in samples")
	seed := flag.Int64("seed", 123, "Noise seed")
	count := flag.Int("count", 1, "Number of maps, with consecutive seeds")
	scale := flag.Float64("scale", 0, "Feature size in samples (0 = size/4)")
	octaves := flag.Int("octaves", 5, "Noise octaves")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mapgen [options]\n\n")
		fmt.Fprintf(os.Stderr, "Writes <name>%s and <name>%s into -out.\n\n", assets.HeightSuffix, assets.ColorSuffix)
		flag.PrintDefaults()
	}
	flag.Parse()

	level := "info"
	if *verbose {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *size < 2 || *count < 1 {
		fmt.Fprintln(os.Stderr, "size must be >= 2 and count >= 1")
		os.Exit(2)
	}
	if err := os.MkdirAll(*out, 0755); err != nil {
		logger.Fatal("creating output dir", zap.String("dir", *out), zap.Error(err))
	}

	cfg := terrain.DefaultNoise(*seed)
	cfg.Octaves = *octaves
	cfg.Scale = float32(*scale)
	if cfg.Scale <= 0 {
		cfg.Scale = float32(*size) / 4
	}

	var g errgroup.Group
	for i := range *count {
		c := cfg
		c.Seed = *seed + int64(i)
		mapName := *name
		if mapName == "" || *count > 1 {
			mapName = fmt.Sprintf("%snoise-%d", prefix(*name), c.Seed)
		}
		g.Go(func() error {
			return generate(*out, mapName, c, *size)
		})
	}
	if err := g.Wait(); err != nil {
		logger.Fatal("map generation failed", zap.Error(err))
	}
}

func prefix(name string) string {
	if name == "" {
		return ""
	}
	return name + "-"
}

func generate(dir, name string, cfg terrain.NoiseConfig, size int) error {
	field := terrain.NoiseField(cfg, size, size)

	heightPath := filepath.Join(dir, name+assets.HeightSuffix)
	if err := writePNG(heightPath, terrain.HeightImage(field)); err != nil {
		return err
	}
	colorPath := filepath.Join(dir, name+assets.ColorSuffix)
	if err := writePNG(colorPath, terrain.Colormap(field)); err != nil {
		return err
	}

	logger.Info("map written",
		zap.String("name", name),
		zap.Int64("seed", cfg.Seed),
		zap.Int("size", size),
		zap.String("heightmap", heightPath),
		zap.String("colormap", colorPath),
	)
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
