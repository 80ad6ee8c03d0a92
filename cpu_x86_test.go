// cpu_x86_test.go - x86 CPU core unit tests
//
// Grounded on the donor engine's cpu_x86_test.go: a hand-rolled Bus
// fixture (flat 1MB memory, 64Ki ports) and plain Test* functions
// comparing register/flag state with t.Errorf("...: got 0x%04X, want
// 0x...").
//
// License: GPLv3 or later

package main

import "testing"

// testBus is a minimal Bus implementation for CPU tests: flat memory,
// no device behavior on the port side.
type testBus struct {
	mem   [1024 * 1024]byte
	ports [65536]byte
}

func newTestBus() *testBus { return &testBus{} }

func (b *testBus) Read(addr uint32) byte     { return b.mem[addr&0xFFFFF] }
func (b *testBus) Write(addr uint32, v byte) { b.mem[addr&0xFFFFF] = v }
func (b *testBus) In(port uint16) byte       { return b.ports[port] }
func (b *testBus) Out(port uint16, v byte)   { b.ports[port] = v }

// load places code at CS:0x0000/IP so Step() fetches it immediately;
// Reset() leaves CS=0xFFFF, so tests retarget CS/IP to a flat, easily
// addressed segment instead.
func (b *testBus) load(seg, off uint16, code ...byte) {
	addr := linear(seg, off)
	for i, c := range code {
		b.mem[addr+uint32(i)] = c
	}
}

func newTestCPU() (*CPU, *testBus) {
	bus := newTestBus()
	cpu := NewCPU(bus, VariantI8086)
	cpu.segs[segCS] = 0x0000
	cpu.segs[segSS] = 0x1000
	cpu.IP = 0
	cpu.SP = 0xFFFE
	return cpu, bus
}

func TestCPU_RegisterAccessors(t *testing.T) {
	cpu, _ := newTestCPU()

	cpu.AX = 0x1234
	if got := cpu.AL(); got != 0x34 {
		t.Errorf("AL: got 0x%02X, want 0x34", got)
	}
	if got := cpu.AH(); got != 0x12 {
		t.Errorf("AH: got 0x%02X, want 0x12", got)
	}

	cpu.SetAL(0xAB)
	if cpu.AX != 0x12AB {
		t.Errorf("SetAL: AX got 0x%04X, want 0x12AB", cpu.AX)
	}
	cpu.SetAH(0xCD)
	if cpu.AX != 0xCDAB {
		t.Errorf("SetAH: AX got 0x%04X, want 0xCDAB", cpu.AX)
	}
}

// TestCPU_ADD8Flags walks the ALU flag table spec.md §8 calls out: CF
// on unsigned overflow, OF on signed overflow, ZF/SF/PF straightforward,
// AF on a nibble carry.
func TestCPU_ADD8Flags(t *testing.T) {
	cases := []struct {
		a, b         byte
		wantCF, wantOF, wantZF, wantSF, wantAF bool
	}{
		{0x00, 0x00, false, false, true, false, false},
		{0xFF, 0x01, true, false, true, false, true},   // wraps to 0, carry + half-carry
		{0x7F, 0x01, false, true, false, true, true},   // 127+1 signed overflow
		{0x80, 0x80, true, true, true, false, false},   // -128 + -128 wraps to 0, overflow+carry
		{0x0F, 0x01, false, false, false, false, true}, // nibble carry only
	}
	for _, tc := range cases {
		cpu, _ := newTestCPU()
		cpu.alu8(0 /* ADD */, tc.a, tc.b)
		if cpu.CF() != tc.wantCF {
			t.Errorf("ADD8 %#x+%#x: CF got %v, want %v", tc.a, tc.b, cpu.CF(), tc.wantCF)
		}
		if cpu.OF() != tc.wantOF {
			t.Errorf("ADD8 %#x+%#x: OF got %v, want %v", tc.a, tc.b, cpu.OF(), tc.wantOF)
		}
		if cpu.ZF() != tc.wantZF {
			t.Errorf("ADD8 %#x+%#x: ZF got %v, want %v", tc.a, tc.b, cpu.ZF(), tc.wantZF)
		}
		if cpu.SF() != tc.wantSF {
			t.Errorf("ADD8 %#x+%#x: SF got %v, want %v", tc.a, tc.b, cpu.SF(), tc.wantSF)
		}
		if cpu.AF() != tc.wantAF {
			t.Errorf("ADD8 %#x+%#x: AF got %v, want %v", tc.a, tc.b, cpu.AF(), tc.wantAF)
		}
	}
}

func TestCPU_SUB8Flags(t *testing.T) {
	cpu, _ := newTestCPU()
	r := cpu.alu8(5 /* SUB */, 0x00, 0x01)
	if r != 0xFF {
		t.Errorf("SUB8 0-1: result got 0x%02X, want 0xFF", r)
	}
	if !cpu.CF() {
		t.Error("SUB8 0-1: CF should be set (borrow)")
	}
	if !cpu.SF() {
		t.Error("SUB8 0-1: SF should be set (result negative)")
	}
	if cpu.ZF() {
		t.Error("SUB8 0-1: ZF should be clear")
	}
}

// shiftCount masks the rotate/shift count to 5 bits on 80186+ and
// leaves it unmasked on 8086/V20 (spec.md §4.1's per-variant note).
func TestCPU_ShiftCountInvariant(t *testing.T) {
	bus := newTestBus()
	cpu8086 := NewCPU(bus, VariantI8086)
	if got := cpu8086.shiftCount(0xFF); got != 0xFF {
		t.Errorf("8086 shiftCount(0xFF): got %d, want 255 (unmasked)", got)
	}

	cpu186 := NewCPU(bus, VariantI80186)
	if got := cpu186.shiftCount(0xFF); got != 0x1F {
		t.Errorf("80186 shiftCount(0xFF): got %d, want 31 (5-bit masked)", got)
	}
}

// TestCPU_PushPopIdentity exercises the internal push16/pop16 pair
// spec.md §8 calls out: push then pop must return the same value and
// leave SP unchanged.
func TestCPU_PushPopIdentity(t *testing.T) {
	cpu, _ := newTestCPU()
	sp0 := cpu.SP
	cpu.push16(0xBEEF)
	if cpu.SP != sp0-2 {
		t.Errorf("push16: SP got 0x%04X, want 0x%04X", cpu.SP, sp0-2)
	}
	got := cpu.pop16()
	if got != 0xBEEF {
		t.Errorf("push16/pop16: got 0x%04X, want 0xBEEF", got)
	}
	if cpu.SP != sp0 {
		t.Errorf("push16/pop16: SP got 0x%04X, want 0x%04X (restored)", cpu.SP, sp0)
	}
}

// TestCPU_PUSHFPOPFRoundTrip exercises PUSHF (0x9C) / POPF (0x9D):
// flags pushed then popped must read back identical except for the
// always-1 reserved bit already folded into FLAGS().
func TestCPU_PUSHFPOPFRoundTrip(t *testing.T) {
	cpu, bus := newTestCPU()
	bus.load(cpu.segs[segCS], 0, 0x9C, 0x9D) // PUSHF; POPF

	cpu.SetFLAGS(flagCF | flagZF | flagSF | flagR1)
	want := cpu.FLAGS()
	cpu.Step() // PUSHF

	cpu.SetFLAGS(flagOF | flagR1) // scramble before POPF restores it
	cpu.Step()                   // POPF
	if cpu.FLAGS() != want {
		t.Errorf("PUSHF/POPF round trip: got 0x%04X, want 0x%04X", cpu.FLAGS(), want)
	}
}

// TestCPU_RepMovsb exercises REP MOVSB's invariant (spec.md §8): CX
// bytes copied from DS:SI to ES:DI, both pointers advancing by CX and
// CX itself landing on zero, honoring DF.
func TestCPU_RepMovsb(t *testing.T) {
	cpu, bus := newTestCPU()
	cpu.segs[segDS] = 0x2000
	cpu.segs[segES] = 0x3000
	cpu.SI = 0x0010
	cpu.DI = 0x0020
	cpu.CX = 5
	cpu.setFlag(flagDF, false)

	for i := 0; i < 5; i++ {
		bus.Write(linear(cpu.segs[segDS], cpu.SI)+uint32(i), byte(0xA0+i))
	}

	bus.load(cpu.segs[segCS], 0, 0xF3, 0xA4) // REP MOVSB
	for i := 0; i < 5; i++ {
		cpu.Step()
	}

	if cpu.CX != 0 {
		t.Errorf("REP MOVSB: CX got %d, want 0", cpu.CX)
	}
	if cpu.SI != 0x0015 {
		t.Errorf("REP MOVSB: SI got 0x%04X, want 0x0015", cpu.SI)
	}
	if cpu.DI != 0x0025 {
		t.Errorf("REP MOVSB: DI got 0x%04X, want 0x0025", cpu.DI)
	}
	for i := 0; i < 5; i++ {
		got := bus.Read(linear(cpu.segs[segES], 0x0020) + uint32(i))
		want := byte(0xA0 + i)
		if got != want {
			t.Errorf("REP MOVSB: byte %d got 0x%02X, want 0x%02X", i, got, want)
		}
	}
}

func TestCPU_RunSliceHaltFastForward(t *testing.T) {
	cpu, bus := newTestCPU()
	bus.load(cpu.segs[segCS], 0, 0xF4) // HLT
	preempt := false
	spent := cpu.RunSlice(100, &preempt)
	if !cpu.Halted {
		t.Fatal("RunSlice: CPU should be halted after executing HLT")
	}
	if spent != 100 {
		t.Errorf("RunSlice: spent got %d, want 100 (fast-forwarded to budget)", spent)
	}
}

// TestCPU_AddressWrapBoundary exercises spec.md §8's boundary case: a
// segment:offset pair that overruns the 20-bit address space wraps
// rather than overflowing, as real 8086 segmentation does.
func TestCPU_AddressWrapBoundary(t *testing.T) {
	if got := linear(0xFFFF, 0x0010); got != 0x00000 {
		t.Errorf("linear(0xFFFF, 0x0010): got 0x%05X, want 0x00000", got)
	}
}

// TestCPU_IncBoundary exercises "INC BX with BX=0x7FFF sets OF, AF,
// leaves CF untouched" (spec.md §8): INC never writes CF on real
// hardware, so a CF set beforehand must still read back set after.
func TestCPU_IncBoundary(t *testing.T) {
	cpu, _ := newTestCPU()
	cpu.setFlag(flagCF, true)
	r := cpu.inc16(0x7FFF)
	if r != 0x8000 {
		t.Errorf("inc16(0x7FFF): got 0x%04X, want 0x8000", r)
	}
	if !cpu.OF() {
		t.Error("inc16(0x7FFF): OF should be set")
	}
	if !cpu.AF() {
		t.Error("inc16(0x7FFF): AF should be set")
	}
	if !cpu.CF() {
		t.Error("inc16(0x7FFF): CF should be untouched (stayed set)")
	}
}

// TestCPU_DivByZeroFault exercises a byte DIV by a zero divisor (spec.md
// §8): INT 0 is raised and AX is left unchanged. AX holds 0x1234 rather
// than 0 so that any write to it would show.
func TestCPU_DivByZeroFault(t *testing.T) {
	cpu, _ := newTestCPU()
	cpu.AX = 0x1234
	sp0 := cpu.SP
	cpu.div8(0)
	if cpu.AX != 0x1234 {
		t.Errorf("div8(0) with AX=0x1234: AX got 0x%04X, want unchanged 0x1234", cpu.AX)
	}
	if cpu.SP != sp0-6 {
		t.Errorf("div8(0): SP got 0x%04X, want 0x%04X (FLAGS/CS/IP pushed)", cpu.SP, sp0-6)
	}
}

// TestCPU_ShlByZeroInvariant exercises "SHL by 0 with CF=1 and OF=0
// leaves both unchanged" (spec.md §8).
func TestCPU_ShlByZeroInvariant(t *testing.T) {
	cpu, _ := newTestCPU()
	cpu.setFlag(flagCF, true)
	cpu.setFlag(flagOF, false)
	r := cpu.rotShiftGrp8(4 /* SHL */, 0x55, 0)
	if r != 0x55 {
		t.Errorf("SHL 0x55 by 0: got 0x%02X, want unchanged 0x55", r)
	}
	if !cpu.CF() {
		t.Error("SHL by 0: CF should be unchanged (stayed set)")
	}
	if cpu.OF() {
		t.Error("SHL by 0: OF should be unchanged (stayed clear)")
	}
}

// TestCPU_BoundWithinRange exercises BOUND (opcode 0x62, 80186+) when the
// register operand falls within [lower, upper]: no INT 5 should fire, so
// execution simply continues past the instruction (spec.md §4.1).
func TestCPU_BoundWithinRange(t *testing.T) {
	bus := newTestBus()
	cpu := NewCPU(bus, VariantI80186)
	cpu.segs[segCS] = 0x0000
	cpu.segs[segSS] = 0x1000
	cpu.IP = 0
	cpu.SP = 0xFFFE

	bus.load(0, 0x2000, 0x05, 0x00, 0x0A, 0x00) // lower=5, upper=10
	bus.load(0, 0, 0x62, 0x06, 0x00, 0x20)       // BOUND AX, [0x2000]
	cpu.AX = 7

	sp0 := cpu.SP
	cpu.Step()
	if cpu.IP != 4 {
		t.Errorf("BOUND in range: IP got 0x%04X, want 0x0004 (no trap taken)", cpu.IP)
	}
	if cpu.SP != sp0 {
		t.Errorf("BOUND in range: SP got 0x%04X, want unchanged 0x%04X (no INT 5 entry)", cpu.SP, sp0)
	}
}

// TestCPU_BoundOutOfRangeRaisesInt5 exercises BOUND when the register
// operand falls outside [lower, upper]: INT 5 must fire, pushing
// FLAGS/CS/IP and loading CS:IP from the IVT entry at vector 5
// (spec.md §4.1, §7 error kind 1).
func TestCPU_BoundOutOfRangeRaisesInt5(t *testing.T) {
	bus := newTestBus()
	cpu := NewCPU(bus, VariantI80186)
	cpu.segs[segCS] = 0x0000
	cpu.segs[segSS] = 0x1000
	cpu.IP = 0
	cpu.SP = 0xFFFE

	const vec5CS, vec5IP = 0x0050, 0x0060
	bus.load(0, 5*4, byte(vec5IP), byte(vec5IP>>8), byte(vec5CS), byte(vec5CS>>8))
	bus.load(0, 0x2000, 0x05, 0x00, 0x0A, 0x00) // lower=5, upper=10
	bus.load(0, 0, 0x62, 0x06, 0x00, 0x20)       // BOUND AX, [0x2000]
	cpu.AX = 20                                 // above upper bound

	sp0 := cpu.SP
	cpu.Step()
	if cpu.SP != sp0-6 {
		t.Errorf("BOUND out of range: SP got 0x%04X, want 0x%04X (FLAGS/CS/IP pushed)", cpu.SP, sp0-6)
	}
	if cpu.segs[segCS] != vec5CS || cpu.IP != vec5IP {
		t.Errorf("BOUND out of range: CS:IP got %04X:%04X, want %04X:%04X", cpu.segs[segCS], cpu.IP, vec5CS, vec5IP)
	}
}
