// port_bus.go - 64 Ki 8-bit port space (spec.md §3 "Port bus", §6 "Port
// map (summary)")
//
// License: GPLv3 or later

package main

// portDevice is implemented by every chip the Machine wires onto the
// port bus: PIC, PIT, PPI, DMA, CMOS, the mouse UART, and the VGA
// register files. A device registers the exact ports it answers for;
// unmapped ports read back 0xFF and discard writes, matching an open
// bus on real hardware closely enough for BIOS POST probing.
type portDevice interface {
	PortIn(port uint16) byte
	PortOut(port uint16, value byte)
}

// PortBus is the CPU-facing Bus.In/Out half of the address space: 64 Ki
// single-byte ports, each optionally bound to a device. 16-bit in/out
// (opcodes ED/EF/E5/E7 etc.) are decomposed by the CPU core into two
// consecutive 8-bit accesses before reaching here (spec.md §3).
type PortBus struct {
	devices [65536]portDevice
	mirror  [65536]byte // last value written to each port (spec.md §6 "64 KiB port mirror")
}

// NewPortBus returns a port space with every port unmapped.
func NewPortBus() *PortBus {
	return &PortBus{}
}

// Map binds device to every port in [base, base+count).
func (p *PortBus) Map(base uint16, count int, device portDevice) {
	for i := 0; i < count; i++ {
		p.devices[int(base)+i] = device
	}
}

// In implements Bus.In.
func (p *PortBus) In(port uint16) byte {
	if d := p.devices[port]; d != nil {
		return d.PortIn(port)
	}
	return 0xFF
}

// Out implements Bus.Out.
func (p *PortBus) Out(port uint16, value byte) {
	p.mirror[port] = value
	if d := p.devices[port]; d != nil {
		d.PortOut(port, value)
	}
}

// Snapshot returns the 64 KiB write-mirror for state_snapshot.go. It
// records the last byte written to each port, not device-internal
// state (each device's own registers are snapshotted separately) —
// useful for a debugger shell replaying POST probes, and for the
// write-only ports no device read-back can otherwise reconstruct.
func (p *PortBus) Snapshot() []byte {
	return append([]byte(nil), p.mirror[:]...)
}

// Restore replaces the port write-mirror from a prior Snapshot.
func (p *PortBus) Restore(data []byte) {
	copy(p.mirror[:], data)
}

// Port ranges from spec.md §6 "Port map (summary)", used by machine.go
// when wiring each chip onto the bus.
const (
	portDMA1Base     = 0x00
	portDMA1Count    = 0x10
	portDMAPageBase  = 0x80
	portDMAPageCount = 0x10
	portPICBase      = 0x20
	portPICCount     = 0x02
	portPITBase      = 0x40
	portPITCount     = 0x04
	portPPIBase      = 0x60
	portPPICount     = 0x04
	portCMOSBase     = 0x70
	portCMOSCount    = 0x02
	portAdlibBase    = 0x388
	portAdlibCount   = 0x02
	portMouseBase    = 0x3F8
	portMouseCount   = 0x08
	portCGABase      = 0x3D0
	portCGACount     = 0x10
	portVGABase      = 0x3C0
	portVGACount     = 0x10
	portMDABase      = 0x3B0
	portMDACount     = 0x10
)
