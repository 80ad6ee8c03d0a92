// i8259_test.go - PIC priority resolution, masking, and EOI handling
// (spec.md §4.2)
//
// License: GPLv3 or later

package main

import "testing"

func TestPIC_PriorityIsFixedLowToHigh(t *testing.T) {
	p := newPIC()
	p.PortOut(0x20, 0x13) // ICW1: edge, single, ICW4 needed
	p.PortOut(0x21, 0x08) // ICW2: vector base 0x08
	p.PortOut(0x21, 0x01) // ICW4: not auto-EOI

	p.RequestIRQ(3)
	p.RequestIRQ(1)

	vec, ok := p.NextInterrupt()
	if !ok || vec != 0x08+1 {
		t.Errorf("first resolved: got vec=0x%02X ok=%v, want 0x09 true (IRQ1 before IRQ3)", vec, ok)
	}
	vec, ok = p.NextInterrupt()
	if !ok || vec != 0x08+3 {
		t.Errorf("second resolved: got vec=0x%02X ok=%v, want 0x0B true", vec, ok)
	}
}

func TestPIC_MaskedLineNeverResolves(t *testing.T) {
	p := newPIC()
	p.PortOut(0x20, 0x13)
	p.PortOut(0x21, 0x08)
	p.PortOut(0x21, 0x01)

	p.PortOut(0x21, 1<<2) // mask IRQ2
	p.RequestIRQ(2)
	if _, ok := p.NextInterrupt(); ok {
		t.Error("masked IRQ2 should not resolve")
	}
}

func TestPIC_OnServiceFiresBeforeReturning(t *testing.T) {
	p := newPIC()
	p.PortOut(0x20, 0x13)
	p.PortOut(0x21, 0x08)
	p.PortOut(0x21, 0x01)

	fired := false
	p.OnService(1, func() { fired = true })
	p.RequestIRQ(1)
	p.NextInterrupt()
	if !fired {
		t.Error("OnService callback for IRQ1 should fire when IRQ1 is resolved")
	}
}

func TestPIC_NonSpecificEOIClearsLowestISRBit(t *testing.T) {
	p := newPIC()
	p.PortOut(0x20, 0x13)
	p.PortOut(0x21, 0x08)
	p.PortOut(0x21, 0x01)

	p.RequestIRQ(2)
	p.NextInterrupt() // moves bit 2 into ISR
	if p.isr == 0 {
		t.Fatal("ISR should have bit 2 set after NextInterrupt")
	}
	p.PortOut(0x20, 0x20) // non-specific EOI
	if p.isr != 0 {
		t.Errorf("ISR after non-specific EOI: got 0x%02X, want 0x00", p.isr)
	}
}
