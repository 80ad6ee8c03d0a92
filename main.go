// main.go - process entry point
//
// Grounded on the donor engine's main.go construction order (system bus,
// then peripherals, then CPU, then frontend, then run); narrowed to this
// module's Machine, which already owns that wiring, so main.go's job is
// just flag parsing, backend selection, and supervising the run.
//
// License: GPLv3 or later

package main

import (
	"fmt"
	"os"
)

func main() {
	cfg, err := ParseConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	video, err := NewVideoOutput(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "video: %v\n", err)
		os.Exit(1)
	}

	m, err := NewMachine(cfg, video)
	if err != nil {
		fmt.Fprintf(os.Stderr, "machine: %v\n", err)
		os.Exit(1)
	}

	audio, err := NewOtoPlayer(44100, m.audio)
	if err != nil {
		fmt.Fprintf(os.Stderr, "audio: %v\n", err)
		os.Exit(1)
	}
	if err := audio.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "audio: %v\n", err)
		os.Exit(1)
	}
	defer audio.Close()

	if err := runEventLoop(m); err != nil {
		fmt.Fprintf(os.Stderr, "run: %v\n", err)
		os.Exit(1)
	}
}
