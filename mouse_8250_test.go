// mouse_8250_test.go - Microsoft serial mouse packet encoding
// (spec.md §8 scenario 6)
//
// License: GPLv3 or later

package main

import "testing"

// TestMouse_PacketEncodingAndIRQ4 exercises scenario 6: lmb=1, rmb=0,
// dx=+5, dy=-3 produces three Microsoft-protocol bytes at 0x3F8 and one
// IRQ4 per buffered byte.
func TestMouse_PacketEncodingAndIRQ4(t *testing.T) {
	m := newSerialMouse()
	m.ier = 0x01 // enable "data available" interrupt so IRQ4 fires
	irqs := 0
	m.SetIRQ4Hook(func() { irqs++ })

	m.PostMovement(true, false, 5, -3)

	b1 := m.PortIn(portMouseBase)
	b2 := m.PortIn(portMouseBase)
	b3 := m.PortIn(portMouseBase)

	if b1&0xC0 != 0xC0 {
		t.Errorf("byte 1 header bits: got 0x%02X, want top two bits set", b1)
	}
	if b1&0x20 == 0 {
		t.Error("byte 1: left-button bit should be set")
	}
	if b1&0x10 != 0 {
		t.Error("byte 1: right-button bit should be clear")
	}

	gotDX := int8(b2<<2) >> 2 // sign-extend the low 6 bits
	gotDY := int8(b3<<2) >> 2
	if gotDX != 5 {
		t.Errorf("dx: got %d, want 5", gotDX)
	}
	if gotDY != -3 {
		t.Errorf("dy: got %d, want -3", gotDY)
	}

	if irqs != 3 {
		t.Errorf("IRQ4 assertions: got %d, want 3 (one per buffered byte)", irqs)
	}
}

func TestMouse_IdentificationByteOnDTRRisingEdge(t *testing.T) {
	m := newSerialMouse()
	m.PortOut(portMouseBase+4, 0x01) // MCR: DTR rises
	if got := m.PortIn(portMouseBase); got != 'M' {
		t.Errorf("identification byte: got 0x%02X, want 'M'", got)
	}

	m.PortOut(portMouseBase+4, 0x00) // DTR falls
	m.PortOut(portMouseBase+4, 0x01) // DTR rises again
	if got := m.PortIn(portMouseBase); got != 'M' {
		t.Errorf("second identification byte on re-rising DTR: got 0x%02X, want 'M'", got)
	}
}
