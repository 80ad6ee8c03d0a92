// i8255_test.go - PPI scancode FIFO and speaker-gate wiring
//
// License: GPLv3 or later

package main

import "testing"

func TestPPI_ScancodeFIFOOrder(t *testing.T) {
	p := newPPI()
	p.PushScancode(0x1E)
	p.PushScancode(0x30)
	p.PushScancode(0x2E)

	p.LatchNextScancode()
	if p.PortIn(0x60) != 0x1E {
		t.Errorf("first latch: got 0x%02X, want 0x1E", p.PortIn(0x60))
	}
	p.LatchNextScancode()
	if p.PortIn(0x60) != 0x30 {
		t.Errorf("second latch: got 0x%02X, want 0x30", p.PortIn(0x60))
	}
	p.LatchNextScancode()
	if p.PortIn(0x60) != 0x2E {
		t.Errorf("third latch: got 0x%02X, want 0x2E", p.PortIn(0x60))
	}
}

func TestPPI_ScancodeFIFOOverflowDropsOldest(t *testing.T) {
	p := newPPI()
	for i := 0; i < scancodeFIFOCapacity+2; i++ {
		p.PushScancode(byte(i))
	}
	p.LatchNextScancode()
	if want := byte(2); p.PortIn(0x60) != want {
		t.Errorf("after overflow, oldest two dropped: got 0x%02X, want 0x%02X", p.PortIn(0x60), want)
	}
}

func TestPPI_SpeakerGateFiresOnEdgeOnly(t *testing.T) {
	p := newPPI()
	edges := 0
	p.SetSpeakerGateHook(func(level bool) { edges++ })

	p.PortOut(0x61, 0x01) // gate rises 0 -> 1
	p.PortOut(0x61, 0x01) // no change, no edge
	p.PortOut(0x61, 0x00) // gate falls

	if edges != 2 {
		t.Errorf("speaker gate edges: got %d, want 2", edges)
	}
}

func TestPPI_PortCEchoesPITChannel2(t *testing.T) {
	p := newPPI()
	p.sw2 = 0x00
	p.SetChannel2Output(true)
	if p.PortIn(0x62)&0x20 == 0 {
		t.Error("port C bit 5 should echo PIT channel 2 output when high")
	}
	p.SetChannel2Output(false)
	if p.PortIn(0x62)&0x20 != 0 {
		t.Error("port C bit 5 should clear when PIT channel 2 output is low")
	}
}
