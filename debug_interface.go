// debug_interface.go - read-only accessors for an external debugger
// shell (spec.md §1: "the on-screen debugger shell" is an out-of-scope
// collaborator, referenced only at its interface)
//
// Grounded on the donor engine's debug_interface.go RegisterInfo/
// DebuggableCPU shape, narrowed to what a shell outside this module's
// scope would need to pull: registers, flags, and peek access to memory
// and ports. No breakpoint/watchpoint machinery, since stepping control
// belongs to that external shell, not to this module.
//
// License: GPLv3 or later

package main

// RegisterInfo describes one CPU register for display.
type RegisterInfo struct {
	Name  string
	Value uint64
}

// DebuggableCPU is what an external debugger shell is given to inspect
// a running machine without being able to mutate it.
type DebuggableCPU interface {
	Registers() []RegisterInfo
	Flags() uint16
	ProgramCounter() (seg, ip uint16)
	IsHalted() bool
	PeekMemory(addr uint32) byte
	PeekPort(port uint16) byte
}

func (c *CPU) Registers() []RegisterInfo {
	return []RegisterInfo{
		{"AX", uint64(c.AX)}, {"BX", uint64(c.BX)},
		{"CX", uint64(c.CX)}, {"DX", uint64(c.DX)},
		{"SI", uint64(c.SI)}, {"DI", uint64(c.DI)},
		{"BP", uint64(c.BP)}, {"SP", uint64(c.SP)},
		{"CS", uint64(c.segs[segCS])}, {"DS", uint64(c.segs[segDS])},
		{"ES", uint64(c.segs[segES])}, {"SS", uint64(c.segs[segSS])},
		{"IP", uint64(c.IP)}, {"FLAGS", uint64(c.FLAGS())},
	}
}

func (c *CPU) Flags() uint16 { return c.FLAGS() }

func (c *CPU) ProgramCounter() (uint16, uint16) { return c.segs[segCS], c.IP }

func (c *CPU) IsHalted() bool { return c.Halted }

func (c *CPU) PeekMemory(addr uint32) byte { return c.bus.Read(addr) }

func (c *CPU) PeekPort(port uint16) byte { return c.bus.In(port) }
