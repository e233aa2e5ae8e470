package game

import (
	"errors"
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sugarclouds/config"
	"github.com/pthm-cable/sugarclouds/renderer"
	"github.com/pthm-cable/sugarclouds/shading"
	"github.com/pthm-cable/sugarclouds/telemetry"
	"github.com/pthm-cable/sugarclouds/ui"
)

// ErrWindowUnavailable means raylib could not create the window or its GL
// context. Nothing that touches GL may run after it.
var ErrWindowUnavailable = errors.New("window unavailable")

// CheckWindow reports ErrWindowUnavailable unless ready. Pass
// rl.IsWindowReady() right after rl.InitWindow, which only logs on failure.
func CheckWindow(ready bool) error {
	if !ready {
		return ErrWindowUnavailable
	}
	return nil
}

// Options configures a Game.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	SnapshotPath   string // PNG written on Unload, headless only
}

// Game drives the scene one frame at a time: input, physics, upload, draw.
type Game struct {
	cfg   *config.Config
	scene *Scene

	// Exactly one of these is the render target.
	clouds   *renderer.Clouds
	software *renderer.Software
	target   Target

	// UI
	uiRenderer *ui.Renderer
	hud        *ui.HUD
	colorPanel *ui.ColorPanel
	notice     *ui.Notice
	debug      bool

	pointer        Pointer
	pipelineWarned bool
	frame          int64
	width, height  int32

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool

	headless     bool
	snapshotPath string
}

// NewGameWithOptions creates a game. In graphics mode the raylib window must
// already exist; a shader that fails to build is returned as
// renderer.ErrShaderUnavailable.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	g := &Game{
		cfg:           cfg,
		collector:     telemetry.NewCollector(opts.StatsWindowSec),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:      opts.LogStats,
		headless:      opts.Headless,
		snapshotPath:  opts.SnapshotPath,
	}

	if opts.Headless {
		g.width = int32(cfg.Render.SnapshotWidth)
		g.height = int32(cfg.Render.SnapshotHeight)
		g.software = renderer.NewSoftware(int(g.width), int(g.height), cfg.Render.Workers)
		g.target = g.timed(g.software)
	} else {
		if err := CheckWindow(rl.IsWindowReady()); err != nil {
			return nil, err
		}
		g.width = int32(rl.GetScreenWidth())
		g.height = int32(rl.GetScreenHeight())
		clouds, err := renderer.NewClouds(g.width, g.height)
		if err != nil {
			return nil, err
		}
		g.clouds = clouds
		g.target = g.timed(clouds)

		g.uiRenderer = ui.NewRenderer()
		g.hud = ui.NewHUD()
		g.colorPanel = ui.NewColorPanel(g.width-250, 10)
	}

	g.scene = NewScene(cfg, int(g.width), int(g.height), opts.Seed)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		g.Unload()
		return nil, fmt.Errorf("creating output: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	return g, nil
}

// timedTarget charges uniform uploads to the upload phase.
type timedTarget struct {
	Target
	perf *telemetry.PerfCollector
}

func (t timedTarget) Upload(u *shading.Uniforms) {
	t.perf.StartPhase(telemetry.PhaseUpload)
	t.Target.Upload(u)
}

func (g *Game) timed(t Target) Target {
	return timedTarget{Target: t, perf: g.perfCollector}
}

// Update runs input and one physics step using the raylib frame time.
func (g *Game) Update() {
	g.perfCollector.StartFrame()

	g.perfCollector.StartPhase(telemetry.PhaseInput)
	g.handleInput()

	g.perfCollector.StartPhase(telemetry.PhasePhysics)
	g.step(float64(rl.GetFrameTime()))
}

// UpdateHeadless runs one fixed step without a window.
func (g *Game) UpdateHeadless() {
	g.perfCollector.StartFrame()

	g.perfCollector.StartPhase(telemetry.PhasePhysics)
	g.step(g.cfg.Physics.HeadlessDT)

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()
	g.perfCollector.EndFrame()
}

// step advances the scene. A missing pipeline is reported once and the
// frame is skipped.
func (g *Game) step(dt float64) {
	res, err := g.scene.Step(dt, g.pointer, g.target)
	if err != nil {
		if errors.Is(err, ErrPipelineUnavailable) && !g.pipelineWarned {
			g.pipelineWarned = true
			slog.Warn("skipping frame", "error", err, "frame", g.frame)
			g.notice = &ui.Notice{Level: ui.NoticeWarning, Text: "Rendering is unavailable, the scene is paused."}
		}
		return
	}

	g.frame++
	g.collector.Record(res.DT, res.Dissolved, g.pointer.Held)
}

// Draw renders the scene and the overlays.
func (g *Game) Draw() {
	g.perfCollector.StartPhase(telemetry.PhaseDraw)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.clouds.Draw()

	g.hud.Draw(ui.HUDData{
		Sugar:        g.scene.Sugar(),
		HeldTime:     g.scene.HeldTime(),
		FPS:          rl.GetFPS(),
		Debug:        g.debug,
		ScreenWidth:  g.width,
		ScreenHeight: g.height,
	})
	g.drawColorPanel()
	if g.debug {
		g.hud.DrawControls(g.height, "[C] colors  [D] debug  [F11] fullscreen")
	}
	if g.notice != nil {
		g.uiRenderer.DrawNotice(*g.notice, g.width, g.height)
	}

	rl.EndDrawing()
	g.perfCollector.RecordPresent()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()
	g.perfCollector.EndFrame()
}

// drawColorPanel applies a picked color to the scene.
func (g *Game) drawColorPanel() {
	slot, c, changed := g.colorPanel.Draw(g.scene.Palette())
	if !changed {
		return
	}
	if err := g.scene.SetColor(slot.String(), c); err != nil {
		slog.Error("failed to set color", "error", err)
	}
}

// Unload writes the headless snapshot, if requested, and frees resources.
func (g *Game) Unload() {
	if g.software != nil {
		if g.snapshotPath != "" {
			if err := g.software.WritePNG(g.snapshotPath); err != nil {
				slog.Error("failed to write snapshot", "error", err)
			} else {
				slog.Info("snapshot saved", "path", g.snapshotPath, "frame", g.frame)
			}
		}
		g.software.Close()
	}
	if g.clouds != nil {
		g.clouds.Unload()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// Frame returns the number of completed steps.
func (g *Game) Frame() int64 {
	return g.frame
}

// Scene returns the simulated scene.
func (g *Game) Scene() *Scene {
	return g.scene
}

// ShowFatal blocks on a full screen notice until the window is closed.
// Used when setup fails after the window exists.
func ShowFatal(err error) {
	r := ui.NewRenderer()
	n := ui.Notice{Level: ui.NoticeFatal, Text: err.Error()}
	for !rl.WindowShouldClose() {
		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		r.DrawNotice(n, int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
		rl.EndDrawing()
	}
}
