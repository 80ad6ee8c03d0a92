//go:build headless

// stdin_keyboard.go - raw-stdin keyboard source for the headless build
// (spec.md §1's "host windowing and input" collaborator, thin edge)
//
// Grounded directly on the donor engine's terminal_host.go: raw-mode
// stdin via golang.org/x/term.MakeRaw, non-blocking syscall.Read in a
// goroutine, CR->LF and DEL->BS translation. There the raw bytes feed a
// terminal MMIO device; here they're mapped to XT scancodes and posted
// to the same InputQueue the ebiten backend's Update() posts into, so a
// headless run still has a keyboard to drive BIOS/DOS input from stdin.
//
// License: GPLv3 or later

package main

import (
	"fmt"
	"os"
	"sync"
	"syscall"

	"golang.org/x/term"
)

// asciiScancodes covers the ASCII range a raw terminal actually sends;
// unmapped bytes are dropped rather than guessed at.
var asciiScancodes = map[byte]byte{
	'\n': 0x1C, '\r': 0x1C, ' ': 0x39, '\t': 0x0F, 0x08: 0x0E, 0x1B: 0x01,
	'a': 0x1E, 'b': 0x30, 'c': 0x2E, 'd': 0x20, 'e': 0x12, 'f': 0x21,
	'g': 0x22, 'h': 0x23, 'i': 0x17, 'j': 0x24, 'k': 0x25, 'l': 0x26,
	'm': 0x32, 'n': 0x31, 'o': 0x18, 'p': 0x19, 'q': 0x10, 'r': 0x13,
	's': 0x1F, 't': 0x14, 'u': 0x16, 'v': 0x2F, 'w': 0x11, 'x': 0x2D,
	'y': 0x15, 'z': 0x2C,
	'0': 0x0B, '1': 0x02, '2': 0x03, '3': 0x04, '4': 0x05,
	'5': 0x06, '6': 0x07, '7': 0x08, '8': 0x09, '9': 0x0A,
}

// stdinKeyboard reads raw stdin bytes and posts make/break scancode
// pairs into an InputQueue until Stop is called.
type stdinKeyboard struct {
	fd       int
	oldState *term.State
	stopCh   chan struct{}
	done     chan struct{}
	stopped  sync.Once
}

func newStdinKeyboard() *stdinKeyboard {
	return &stdinKeyboard{stopCh: make(chan struct{}), done: make(chan struct{})}
}

func (k *stdinKeyboard) Start(q *InputQueue) {
	k.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(k.fd)
	if err != nil {
		// Not an interactive terminal (piped input, CI); nothing to poll.
		close(k.done)
		return
	}
	k.oldState = oldState

	if err := syscall.SetNonblock(k.fd, true); err != nil {
		fmt.Fprintf(os.Stderr, "stdin_keyboard: nonblocking stdin: %v\n", err)
		_ = term.Restore(k.fd, k.oldState)
		close(k.done)
		return
	}

	go func() {
		defer close(k.done)
		buf := make([]byte, 1)
		for {
			select {
			case <-k.stopCh:
				return
			default:
			}
			n, _ := syscall.Read(k.fd, buf)
			if n <= 0 {
				continue
			}
			code, ok := asciiScancodes[buf[0]]
			if !ok {
				continue
			}
			q.Post(inputEvent{kind: inputEventKeyDown, scancode: code})
			q.Post(inputEvent{kind: inputEventKeyUp, scancode: code | 0x80})
		}
	}()
}

func (k *stdinKeyboard) Stop() {
	k.stopped.Do(func() {
		close(k.stopCh)
		if k.oldState != nil {
			_ = term.Restore(k.fd, k.oldState)
		}
	})
}
