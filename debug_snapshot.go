// debug_snapshot.go - point-in-time inspection bundle for a debugger
// shell (spec.md §1 collaborator boundary)
//
// Grounded on the donor engine's debug_snapshot.go capture-struct idiom;
// unlike state_snapshot.go (the binary save/restore format of spec.md
// §6), this is read-only and human-display-oriented, not a restorable
// format.
//
// License: GPLv3 or later

package main

// DebugSnapshot bundles enough machine state for a shell to render a
// register/peripheral inspection view without holding a live reference
// into the running Machine.
type DebugSnapshot struct {
	Registers []RegisterInfo
	Flags     uint16
	CS, IP    uint16
	Halted    bool

	PICMask    byte
	PICRequest byte
	PITCounter [3]uint16

	VGAMode  byte
	VGACols  int
	VGARows  int
}

// Snapshot captures a DebugSnapshot from the live machine components.
// It takes no locks: callers are expected to invoke it only between
// scheduler slices (spec.md §5's suspension points), the same
// discipline the emulator's own state_snapshot.go relies on.
func (m *Machine) Snapshot() DebugSnapshot {
	cs, ip := m.cpu.ProgramCounter()
	snap := DebugSnapshot{
		Registers:  m.cpu.Registers(),
		Flags:      m.cpu.Flags(),
		CS:         cs,
		IP:         ip,
		Halted:     m.cpu.IsHalted(),
		PICMask:    m.pic.imr,
		PICRequest: m.pic.irr,
	}
	for i := range m.pit.channels {
		snap.PITCounter[i] = m.pit.channels[i].counter
	}
	if m.vga != nil {
		snap.VGAMode = m.vga.mode
		snap.VGACols = m.vga.cols
		snap.VGARows = m.vga.rows
	}
	return snap
}
