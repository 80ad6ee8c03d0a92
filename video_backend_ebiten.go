//go:build !headless

// video_backend_ebiten.go - windowed VideoOutput backed by ebiten
//
// Grounded on the donor engine's video_backend_ebiten.go: an
// ebiten.Image resized to the display config, fed by UpdateFrame, with
// Update() polling ebiten's key/cursor state and forwarding edges into a
// queue the emulator thread drains. Narrowed to plain keyboard/mouse
// (no clipboard paste, no on-screen OSD) since those aren't in scope
// here.
//
// License: GPLv3 or later

package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type EbitenOutput struct {
	mu          sync.Mutex
	running     bool
	screen      *ebiten.Image
	config      DisplayConfig
	frameCount  uint64
	input       *InputQueue

	prevMouseX, prevMouseY int
}

func NewEbitenOutput() (VideoOutput, error) {
	return &EbitenOutput{input: newInputQueue()}, nil
}

// NewVideoOutput is the build-tag-independent constructor main.go calls;
// this build returns the windowed ebiten backend, or no backend (nil)
// when cfg.Headless is set, so the machine runs without frame output.
func NewVideoOutput(cfg Config) (VideoOutput, error) {
	if cfg.Headless {
		return nil, nil
	}
	return NewEbitenOutput()
}

// runEventLoop runs the scheduler supervised in the background and
// blocks the calling (main) goroutine on ebiten's own event loop, which
// must run on the OS thread it was started from.
func runEventLoop(m *Machine) error {
	out, ok := m.video.(*EbitenOutput)
	if !ok {
		g, _, cancel := m.RunSupervised(context.Background())
		defer cancel()
		return g.Wait()
	}

	g, _, cancel := m.RunSupervised(context.Background())
	defer cancel()

	if err := out.Start(); err != nil {
		return err
	}
	if err := ebiten.RunGame(out); err != nil {
		cancel()
		return err
	}
	cancel()
	return g.Wait()
}

func (eo *EbitenOutput) Start() error {
	eo.mu.Lock()
	defer eo.mu.Unlock()
	eo.running = true
	ebiten.SetWindowSize(eo.config.Width*ClampScale(eo.config.Scale), eo.config.Height*ClampScale(eo.config.Scale))
	ebiten.SetWindowTitle("IBM PC/XT")
	return nil
}

func (eo *EbitenOutput) Stop() error {
	eo.mu.Lock()
	defer eo.mu.Unlock()
	eo.running = false
	return nil
}

func (eo *EbitenOutput) Close() error { return eo.Stop() }

func (eo *EbitenOutput) IsStarted() bool {
	eo.mu.Lock()
	defer eo.mu.Unlock()
	return eo.running
}

func (eo *EbitenOutput) SetDisplayConfig(config DisplayConfig) error {
	eo.mu.Lock()
	defer eo.mu.Unlock()
	eo.config = config
	if config.Width > 0 && config.Height > 0 {
		eo.screen = ebiten.NewImage(config.Width, config.Height)
	}
	return nil
}

func (eo *EbitenOutput) GetDisplayConfig() DisplayConfig {
	eo.mu.Lock()
	defer eo.mu.Unlock()
	return eo.config
}

// UpdateFrame expects RGBA bytes sized width*height*4 and blits them
// into the ebiten image Draw() presents.
func (eo *EbitenOutput) UpdateFrame(buffer []byte) error {
	eo.mu.Lock()
	defer eo.mu.Unlock()
	if eo.screen == nil {
		return fmt.Errorf("video: display config not set")
	}
	want := eo.config.Width * eo.config.Height * 4
	if len(buffer) != want {
		return fmt.Errorf("video: frame buffer size %d, want %d", len(buffer), want)
	}
	eo.screen.WritePixels(buffer)
	eo.frameCount++
	return nil
}

func (eo *EbitenOutput) GetFrameCount() uint64 {
	eo.mu.Lock()
	defer eo.mu.Unlock()
	return eo.frameCount
}

func (eo *EbitenOutput) GetRefreshRate() int {
	eo.mu.Lock()
	defer eo.mu.Unlock()
	if eo.config.RefreshRate == 0 {
		return 70
	}
	return eo.config.RefreshRate
}

func (eo *EbitenOutput) Input() *InputQueue { return eo.input }

// scancodeKeys maps the ebiten keys this adapter bothers tracking to
// their XT scancodes (make codes; break is make|0x80).
var scancodeKeys = map[ebiten.Key]byte{
	ebiten.KeyEscape: 0x01, ebiten.KeyEnter: 0x1C, ebiten.KeySpace: 0x39,
	ebiten.KeyBackspace: 0x0E, ebiten.KeyTab: 0x0F,
	ebiten.KeyArrowUp: 0x48, ebiten.KeyArrowDown: 0x50,
	ebiten.KeyArrowLeft: 0x4B, ebiten.KeyArrowRight: 0x4D,
}

// Update implements ebiten.Game: poll key edges and mouse motion, post
// them to the input queue for the emulator thread to drain.
func (eo *EbitenOutput) Update() error {
	for key, code := range scancodeKeys {
		if inpututil.IsKeyJustPressed(key) {
			eo.input.Post(inputEvent{kind: inputEventKeyDown, scancode: code})
		}
		if inpututil.IsKeyJustReleased(key) {
			eo.input.Post(inputEvent{kind: inputEventKeyUp, scancode: code | 0x80})
		}
	}

	x, y := ebiten.CursorPosition()
	dx, dy := x-eo.prevMouseX, y-eo.prevMouseY
	eo.prevMouseX, eo.prevMouseY = x, y
	if dx != 0 || dy != 0 {
		eo.input.Post(inputEvent{
			kind:      inputEventMouseMove,
			dx:        clampInt8(dx),
			dy:        clampInt8(dy),
			leftDown:  ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
			rightDown: ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		})
	}
	return nil
}

func clampInt8(v int) int8 {
	if v > 127 {
		return 127
	}
	if v < -128 {
		return -128
	}
	return int8(v)
}

func (eo *EbitenOutput) Draw(screen *ebiten.Image) {
	eo.mu.Lock()
	defer eo.mu.Unlock()
	if eo.screen != nil {
		screen.DrawImage(eo.screen, nil)
	}
}

func (eo *EbitenOutput) Layout(outsideWidth, outsideHeight int) (int, int) {
	eo.mu.Lock()
	defer eo.mu.Unlock()
	return eo.config.Width, eo.config.Height
}
