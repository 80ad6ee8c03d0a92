//go:build !headless

// audio_backend_oto.go - oto-backed audio output pulling from the audio
// event queue (spec.md §5)
//
// Grounded on the donor engine's audio_backend_oto.go: an oto.Context/
// oto.Player pair driven by a Read([]byte) pull callback. That engine
// pulls finished samples from a synthesizer; this one instead drains
// {cycle-delta, event-type, payload} events (audio_event_queue.go) and
// renders a PC-speaker square wave plus the raw DMA channel-1 byte
// stream, since that — not sample-accurate mixdown — is what's in scope
// here (spec.md §1: "audio mixdown: a sample-rate callback" is the
// out-of-scope collaborator boundary).
//
// License: GPLv3 or later

package main

import (
	"math"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

type OtoPlayer struct {
	ctx    *oto.Context
	player *oto.Player
	queue  *AudioEventQueue

	speakerHigh atomic.Bool
	dmaSample   atomic.Int32 // last DMA byte, centered to [-128,127]

	started bool
}

func NewOtoPlayer(sampleRate int, queue *AudioEventQueue) (*OtoPlayer, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4,
	})
	if err != nil {
		return nil, err
	}
	<-ready
	return &OtoPlayer{ctx: ctx, queue: queue}, nil
}

func (op *OtoPlayer) SetupPlayer() {
	op.player = op.ctx.NewPlayer(op)
}

// drain folds every queued event into the player's current state; it's
// called from Read() so the mixer reflects the latest events without
// the emulator thread ever touching player state directly.
func (op *OtoPlayer) drain() {
	for {
		e, ok := op.queue.Pop()
		if !ok {
			return
		}
		switch e.kind {
		case audioEventSpeakerToggle:
			op.speakerHigh.Store(!op.speakerHigh.Load())
		case audioEventDMASample:
			op.dmaSample.Store(int32(e.payload) - 128)
		}
	}
}

func (op *OtoPlayer) Read(p []byte) (int, error) {
	op.drain()

	speaker := float32(0)
	if op.speakerHigh.Load() {
		speaker = 0.25
	}
	dma := float32(op.dmaSample.Load()) / 128.0

	sample := speaker + dma*0.5
	if sample > 1 {
		sample = 1
	}
	if sample < -1 {
		sample = -1
	}

	n := len(p) / 4
	for i := 0; i < n; i++ {
		writeFloat32LE(p[i*4:], sample)
	}
	return n * 4, nil
}

func writeFloat32LE(b []byte, f float32) {
	bits := math.Float32bits(f)
	b[0] = byte(bits)
	b[1] = byte(bits >> 8)
	b[2] = byte(bits >> 16)
	b[3] = byte(bits >> 24)
}

func (op *OtoPlayer) Start() {
	if op.player == nil {
		op.SetupPlayer()
	}
	op.player.Play()
	op.started = true
}

func (op *OtoPlayer) Stop() {
	if op.player != nil {
		op.player.Pause()
	}
	op.started = false
}

func (op *OtoPlayer) Close() {
	op.Stop()
}

func (op *OtoPlayer) IsStarted() bool { return op.started }
