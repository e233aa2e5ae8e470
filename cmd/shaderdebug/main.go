// Shader debug tool - renders the cloud shader to a PNG file for inspection.
//
// Usage: go run ./cmd/shaderdebug -out debug.png -time 12 -held 1
//
// With -software the CPU rasterizer output is written next to it, so the two
// pipelines can be compared pixel for pixel. -dump prints the generated GLSL.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sugarclouds/config"
	"github.com/pthm-cable/sugarclouds/game"
	"github.com/pthm-cable/sugarclouds/renderer"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "debug.png", "Output PNG path")
	width := flag.Int("width", 640, "Render width")
	height := flag.Int("height", 360, "Render height")
	seed := flag.Int64("seed", 1, "Scene seed")
	simTime := flag.Float64("time", 0, "Seconds to simulate before rendering")
	held := flag.Bool("held", false, "Hold the pointer at -pointer-x/-pointer-y while simulating")
	pointerX := flag.Float64("pointer-x", 0.5, "Pointer x in [0,1]")
	pointerY := flag.Float64("pointer-y", 0.5, "Pointer y in [0,1], origin bottom-left")
	software := flag.Bool("software", false, "Also write the CPU rasterizer output")
	dump := flag.Bool("dump", false, "Print the generated fragment shader and exit")
	flag.Parse()

	opts := options{
		configPath: *configPath,
		outPath:    *outPath,
		width:      *width,
		height:     *height,
		seed:       *seed,
		simTime:    *simTime,
		pointer:    game.Pointer{Pos: r2.Vec{X: *pointerX, Y: *pointerY}, Held: *held},
		software:   *software,
	}

	var err error
	if *dump {
		err = dumpShader()
	} else {
		err = run(opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	outPath    string
	width      int
	height     int
	seed       int64
	simTime    float64
	pointer    game.Pointer
	software   bool
}

func dumpShader() error {
	fs, err := renderer.FragmentSource()
	if err != nil {
		return fmt.Errorf("generating shader: %w", err)
	}
	fmt.Print(fs)
	return nil
}

// run renders the shader offscreen. Returning instead of exiting lets the
// deferred raylib cleanup run on every path.
func run(opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(opts.width), int32(opts.height), "Shader Debug")
	if err := game.CheckWindow(rl.IsWindowReady()); err != nil {
		return err
	}
	defer rl.CloseWindow()

	clouds, err := renderer.NewClouds(int32(opts.width), int32(opts.height))
	if err != nil {
		return fmt.Errorf("loading shader: %w", err)
	}
	defer clouds.Unload()

	cpu := renderer.NewSoftware(opts.width, opts.height, cfg.Render.Workers)
	defer cpu.Close()

	scene := game.NewScene(cfg, opts.width, opts.height, opts.seed)

	// Simulate in fixed steps, then upload the final state to both targets.
	steps := int(opts.simTime / cfg.Physics.HeadlessDT)
	for i := 0; i < steps; i++ {
		if _, err := scene.Step(cfg.Physics.HeadlessDT, opts.pointer, cpu); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	u := scene.Snapshot()
	clouds.Upload(&u)
	cpu.Upload(&u)

	// Create render texture
	target := rl.LoadRenderTexture(int32(opts.width), int32(opts.height))
	defer rl.UnloadRenderTexture(target)

	// Render shader to texture
	rl.BeginTextureMode(target)
	rl.ClearBackground(rl.Black)
	clouds.Draw()
	rl.EndTextureMode()

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)

	// Export to PNG
	success := rl.ExportImage(*img, opts.outPath)
	rl.UnloadImage(img)
	if !success {
		return fmt.Errorf("exporting %s failed", opts.outPath)
	}
	fmt.Printf("Shader rendered to: %s (%dx%d, sugar %.2f)\n", opts.outPath, opts.width, opts.height, scene.Sugar())

	if opts.software {
		cpuPath := strings.TrimSuffix(opts.outPath, ".png") + "_cpu.png"
		if err := cpu.WritePNG(cpuPath); err != nil {
			return fmt.Errorf("writing CPU render: %w", err)
		}
		fmt.Printf("CPU render written to: %s\n", cpuPath)
	}
	return nil
}
