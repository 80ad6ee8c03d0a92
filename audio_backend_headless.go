//go:build headless

// audio_backend_headless.go - no-op audio output for headless runs,
// grounded on the donor engine's file of the same name (same build tag,
// same do-nothing Read/Start/Stop shape).
//
// License: GPLv3 or later

package main

type OtoPlayer struct {
	queue   *AudioEventQueue
	started bool
}

func NewOtoPlayer(sampleRate int, queue *AudioEventQueue) (*OtoPlayer, error) {
	return &OtoPlayer{queue: queue}, nil
}

func (op *OtoPlayer) Read(p []byte) (int, error) {
	for {
		if _, ok := op.queue.Pop(); !ok {
			break
		}
	}
	return len(p), nil
}

func (op *OtoPlayer) Start()          { op.started = true }
func (op *OtoPlayer) Stop()           { op.started = false }
func (op *OtoPlayer) Close()          { op.started = false }
func (op *OtoPlayer) IsStarted() bool { return op.started }
