//go:build headless

// video_backend_headless.go - no-window VideoOutput for CI/archival runs
// without a display, grounded on the donor engine's file of the same
// name (same build tag, same counting-only Start/Stop/UpdateFrame shape).
//
// License: GPLv3 or later

package main

import "context"

type HeadlessVideoOutput struct {
	started     bool
	config      DisplayConfig
	frameCount  uint64
	refreshRate int
	input       *InputQueue
	keyboard    *stdinKeyboard
}

func NewHeadlessOutput() (VideoOutput, error) {
	return &HeadlessVideoOutput{refreshRate: 70, input: newInputQueue()}, nil
}

// NewVideoOutput is the build-tag-independent constructor main.go calls;
// this build always returns the headless backend regardless of cfg.
func NewVideoOutput(cfg Config) (VideoOutput, error) {
	return NewHeadlessOutput()
}

// runEventLoop drives the scheduler to completion without a host event
// loop to block on; this build has none since there is no window.
func runEventLoop(m *Machine) error {
	if err := m.video.Start(); err != nil {
		return err
	}
	defer m.video.Stop()
	g, _, cancel := m.RunSupervised(context.Background())
	defer cancel()
	return g.Wait()
}

func (h *HeadlessVideoOutput) Start() error {
	h.started = true
	h.keyboard = newStdinKeyboard()
	h.keyboard.Start(h.input)
	return nil
}

func (h *HeadlessVideoOutput) Stop() error {
	h.started = false
	if h.keyboard != nil {
		h.keyboard.Stop()
	}
	return nil
}

func (h *HeadlessVideoOutput) Close() error { return h.Stop() }
func (h *HeadlessVideoOutput) IsStarted() bool { return h.started }

func (h *HeadlessVideoOutput) SetDisplayConfig(config DisplayConfig) error {
	h.config = config
	return nil
}
func (h *HeadlessVideoOutput) GetDisplayConfig() DisplayConfig { return h.config }

func (h *HeadlessVideoOutput) UpdateFrame(buffer []byte) error {
	h.frameCount++
	return nil
}

func (h *HeadlessVideoOutput) GetFrameCount() uint64 { return h.frameCount }
func (h *HeadlessVideoOutput) GetRefreshRate() int   { return h.refreshRate }
func (h *HeadlessVideoOutput) Input() *InputQueue    { return h.input }
