// i8237_test.go - DMA channel register programming and channel-1 audio
// pull (spec.md §4.5)
//
// License: GPLv3 or later

package main

import "testing"

func TestDMA_ChannelRegisterLoHiOrder(t *testing.T) {
	d := newDMA()
	d.PortOut(0x02, 0x34) // channel 1 address, lo
	d.PortOut(0x02, 0x12) // channel 1 address, hi
	if d.channels[1].baseAddress != 0x1234 {
		t.Errorf("channel 1 base address: got 0x%04X, want 0x1234", d.channels[1].baseAddress)
	}
	if d.channels[1].currentAddress != 0x1234 {
		t.Errorf("channel 1 current address: got 0x%04X, want 0x1234", d.channels[1].currentAddress)
	}
}

func TestDMA_NextAudioByteAdvancesAndExhausts(t *testing.T) {
	mem := NewMemoryBus()
	mem.Write(0x1000, 0xAA)
	mem.Write(0x1001, 0xBB)
	mem.Write(0x1002, 0xCC)

	d := newDMA()
	d.channels[1].page = 0x00
	d.channels[1].baseAddress = 0x1000
	d.channels[1].currentAddress = 0x1000
	d.channels[1].baseCount = 2
	d.channels[1].currentCount = 2
	d.channels[1].mode = 0 // no autoinit, no decrement

	b0, ok0 := d.NextAudioByte(mem)
	b1, ok1 := d.NextAudioByte(mem)
	b2, ok2 := d.NextAudioByte(mem)
	_, ok3 := d.NextAudioByte(mem)

	if !ok0 || !ok1 || !ok2 {
		t.Fatal("expected three successful pulls before exhaustion")
	}
	if b0 != 0xAA || b1 != 0xBB || b2 != 0xCC {
		t.Errorf("pulled bytes: got %02X %02X %02X, want AA BB CC", b0, b1, b2)
	}
	if ok3 {
		t.Error("fourth pull should fail: non-autoinit channel exhausted and masked")
	}
	if !d.channels[1].masked {
		t.Error("channel should be masked after exhausting a non-autoinit transfer")
	}
}

func TestDMA_AutoInitReloadsOnExhaustion(t *testing.T) {
	mem := NewMemoryBus()
	mem.Write(0x2000, 0x11)
	mem.Write(0x2001, 0x22)

	d := newDMA()
	d.channels[1].baseAddress = 0x2000
	d.channels[1].currentAddress = 0x2000
	d.channels[1].baseCount = 1
	d.channels[1].currentCount = 1
	d.channels[1].mode = 0x10 // autoinit

	d.NextAudioByte(mem)
	d.NextAudioByte(mem)
	if d.channels[1].currentAddress != 0x2000 {
		t.Errorf("autoinit reload address: got 0x%04X, want 0x2000", d.channels[1].currentAddress)
	}
	if d.channels[1].masked {
		t.Error("autoinit channel should not mask itself on exhaustion")
	}
	b, ok := d.NextAudioByte(mem)
	if !ok || b != 0x11 {
		t.Errorf("post-reload pull: got ok=%v b=0x%02X, want true 0x11", ok, b)
	}
}

func TestDMA_MasterClearResetsAllChannels(t *testing.T) {
	d := newDMA()
	d.channels[1].baseAddress = 0xBEEF
	d.PortOut(0x0D, 0) // master clear
	if d.channels[1].baseAddress != 0 {
		t.Error("master clear should zero all channel state")
	}
}
