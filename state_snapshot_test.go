// state_snapshot_test.go - per-component binary save/restore round trips
// (spec.md §8 "state snapshot save then load reproduces the next N
// retired instructions byte-for-byte")
//
// License: GPLv3 or later

package main

import (
	"bytes"
	"testing"
)

func TestSnapshot_CPURoundTrip(t *testing.T) {
	bus := newTestBus()
	cpu := NewCPU(bus, VariantV20)
	cpu.AX, cpu.BX, cpu.CX, cpu.DX = 0x1111, 0x2222, 0x3333, 0x4444
	cpu.SI, cpu.DI, cpu.BP, cpu.SP = 0x5555, 0x6666, 0x7777, 0x8888
	cpu.IP = 0x9999
	cpu.segs = [4]uint16{0xAAAA, 0xBBBB, 0xCCCC, 0xDDDD}
	cpu.SetFLAGS(flagCF | flagZF)
	cpu.Halted = true
	cpu.Cycles = 123456789

	var buf bytes.Buffer
	writeCPU(&buf, cpu)

	restored := NewCPU(bus, VariantV20)
	if err := readCPU(bytes.NewReader(buf.Bytes()), restored); err != nil {
		t.Fatalf("readCPU: %v", err)
	}

	if restored.AX != cpu.AX || restored.BX != cpu.BX || restored.CX != cpu.CX || restored.DX != cpu.DX {
		t.Errorf("general registers mismatch: got %+v, want AX/BX/CX/DX %04X/%04X/%04X/%04X", restored, cpu.AX, cpu.BX, cpu.CX, cpu.DX)
	}
	if restored.SI != cpu.SI || restored.DI != cpu.DI || restored.BP != cpu.BP || restored.SP != cpu.SP {
		t.Error("index/pointer registers mismatch after round trip")
	}
	if restored.IP != cpu.IP {
		t.Errorf("IP mismatch: got 0x%04X, want 0x%04X", restored.IP, cpu.IP)
	}
	if restored.segs != cpu.segs {
		t.Errorf("segment registers mismatch: got %v, want %v", restored.segs, cpu.segs)
	}
	if restored.FLAGS() != cpu.FLAGS() {
		t.Errorf("FLAGS mismatch: got 0x%04X, want 0x%04X", restored.FLAGS(), cpu.FLAGS())
	}
	if !restored.Halted {
		t.Error("Halted flag not restored")
	}
	if restored.Cycles != cpu.Cycles {
		t.Errorf("Cycles mismatch: got %d, want %d", restored.Cycles, cpu.Cycles)
	}
}

func TestSnapshot_VGARoundTrip(t *testing.T) {
	v := newVGAEngine(NewMemoryBus())
	v.SetMode(0x13)
	v.vram[0][100] = 0xAB
	v.vram[3][200] = 0xCD
	v.palette[9] = 0x2A
	v.latch[2] = 0x77

	var buf bytes.Buffer
	writeVGA(&buf, v)

	restored := newVGAEngine(NewMemoryBus())
	if err := readVGA(bytes.NewReader(buf.Bytes()), restored); err != nil {
		t.Fatalf("readVGA: %v", err)
	}

	if restored.vram[0][100] != 0xAB || restored.vram[3][200] != 0xCD {
		t.Error("VRAM contents not restored")
	}
	if restored.palette[9] != 0x2A {
		t.Error("palette not restored")
	}
	if restored.latch[2] != 0x77 {
		t.Error("latch not restored")
	}
	if restored.mode != v.mode || restored.cols != v.cols || restored.rows != v.rows {
		t.Error("mode/geometry not restored")
	}
}

func TestSnapshot_PITRoundTrip(t *testing.T) {
	p := newPIT()
	p.PortOut(0x43, 0x36)
	p.PortOut(0x40, 0x34)
	p.PortOut(0x40, 0x12)
	for i := 0; i < 7; i++ {
		p.stepOneTick()
	}

	var buf bytes.Buffer
	writePIT(&buf, p)

	restored := newPIT()
	if err := readPIT(bytes.NewReader(buf.Bytes()), restored); err != nil {
		t.Fatalf("readPIT: %v", err)
	}
	got, want := restored.channels[0], p.channels[0]
	if got.mode != want.mode || got.rwMode != want.rwMode || got.reload != want.reload ||
		got.counter != want.counter || got.started != want.started ||
		got.outputHigh != want.outputHigh || got.fired != want.fired || got.gate != want.gate {
		t.Errorf("channel 0 state mismatch: got %+v, want %+v", got, want)
	}
	if restored.residual != p.residual {
		t.Errorf("residual mismatch: got %d, want %d", restored.residual, p.residual)
	}
}

func TestSnapshot_PortMirrorRoundTrip(t *testing.T) {
	pb := NewPortBus()
	pb.Out(0x378, 0x5A)
	pb.Out(0x3F8, 0xFF)

	snap := pb.Snapshot()

	restored := NewPortBus()
	restored.Restore(snap)
	if restored.mirror[0x378] != 0x5A {
		t.Errorf("port mirror 0x378: got 0x%02X, want 0x5A", restored.mirror[0x378])
	}
	if restored.mirror[0x3F8] != 0xFF {
		t.Errorf("port mirror 0x3F8: got 0x%02X, want 0xFF", restored.mirror[0x3F8])
	}
}
