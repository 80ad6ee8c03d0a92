// cpu_variant.go - CPU personality selection (8086/V20/80186/80286/80386)
//
// License: GPLv3 or later

package main

// CPUVariant selects which documented 8086-family quirks the CPU core
// honors. It is chosen once at construction time (NewCPU), not via a Go
// build tag, so a single binary can emulate any of the supported chips
// against the same BIOS image.
type CPUVariant int

const (
	VariantI8086 CPUVariant = iota
	VariantV20
	VariantI80186
	VariantI80286
	VariantI80386 // accepted, downgraded to 80286 behavior (32-bit decode is Non-goal)
)

// variantFeatures captures the per-variant behavioral switches spec.md §6
// enumerates. All of them are simple booleans resolved once and read on
// the hot path, mirroring the capability-flag shape of the teacher's
// features.go.
type variantFeatures struct {
	popCS          bool // POP CS (0F) valid only on 8086
	undefinedTraps bool // undefined opcode raises INT 6 (186+) vs NOP+log (8086)
	maskShiftCount bool // shift/rotate count masked to 5 bits (186+)
	pushSPPostDec  bool // PUSH SP pushes post-decrement value (286+) vs pre-decrement (8086/V20)
	mulClearsZF    bool // MUL/IMUL clear ZF (8086 only; 186+ leaves ZF unchanged)
	flagsHighOnes  bool // unused high FLAGS bits read back as 1 (186-) vs real semantics (286+)
	hasSALC        bool // undocumented D6 opcode exists (not on V20/V30)
	has186Ops      bool // PUSHA/POPA/ENTER/LEAVE/BOUND/imm multiply/shift-group immediates
	has286Ops      bool // additional 286-introduced forms (treated as has186Ops here; no protected mode)
}

func newVariantFeatures(v CPUVariant) variantFeatures {
	switch v {
	case VariantI8086:
		return variantFeatures{
			popCS:          true,
			undefinedTraps: false,
			maskShiftCount: false,
			pushSPPostDec:  false,
			mulClearsZF:    true,
			flagsHighOnes:  true,
			hasSALC:        true,
		}
	case VariantV20:
		return variantFeatures{
			popCS:          false,
			undefinedTraps: false,
			maskShiftCount: false,
			pushSPPostDec:  false,
			mulClearsZF:    true,
			flagsHighOnes:  true,
			hasSALC:        false,
		}
	case VariantI80186:
		return variantFeatures{
			popCS:          false,
			undefinedTraps: true,
			maskShiftCount: true,
			pushSPPostDec:  true,
			mulClearsZF:    false,
			flagsHighOnes:  true,
			hasSALC:        false,
			has186Ops:      true,
		}
	case VariantI80286, VariantI80386:
		return variantFeatures{
			popCS:          false,
			undefinedTraps: true,
			maskShiftCount: true,
			pushSPPostDec:  true,
			mulClearsZF:    false,
			flagsHighOnes:  false,
			hasSALC:        false,
			has186Ops:      true,
			has286Ops:      true,
		}
	}
	return newVariantFeatures(VariantI8086)
}
