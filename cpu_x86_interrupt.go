// cpu_x86_interrupt.go - interrupt entry/exit (spec.md §4.1 "Interrupts",
// §4.11 "BIOS interception")
//
// License: GPLv3 or later

package main

// InterruptHook lets a collaborator outside the CPU core (the BIOS
// interception layer, bios_dispatch.go) intercept an interrupt before
// the default IVT-vector dispatch runs. Handle returns true when it
// fully serviced the interrupt itself (no IRET expected from the
// guest's own vector handler), false to fall through to the normal path.
// Both software INT n (raiseInterrupt) and hardware IRQ delivery
// (injectInterrupt, driven by the PIC) consult the hook.
type InterruptHook interface {
	Handle(cpu *CPU, vector byte) bool
}

// raiseInterrupt is the software/fault entry point: INT n, INT3, INTO,
// divide error, undefined-opcode trap. It consults the installed
// InterruptHook first.
func (c *CPU) raiseInterrupt(vector byte) {
	if c.interruptHook != nil && c.interruptHook.Handle(c, vector) {
		return
	}
	c.deliverInterrupt(vector)
}

// injectInterrupt is the hardware IRQ entry point (called from Step when
// the PIC has a pending vector and IF is set). Like raiseInterrupt it
// offers the vector to the installed InterruptHook first; masking and
// priority are the PIC's job, already resolved before SetIRQ.
func (c *CPU) injectInterrupt(vector byte) {
	if c.interruptHook != nil && c.interruptHook.Handle(c, vector) {
		return
	}
	c.deliverInterrupt(vector)
}

// deliverInterrupt pushes FLAGS/CS/IP, clears IF and TF, and loads CS:IP
// from the four-byte real-mode IVT entry at physical address vector*4
// (spec.md §4.1).
func (c *CPU) deliverInterrupt(vector byte) {
	c.push16(c.FLAGS())
	c.push16(c.segs[segCS])
	c.push16(c.IP)
	c.setFlag(flagIF, false)
	c.setFlag(flagTF, false)

	vecAddr := uint32(vector) * 4
	off := uint16(c.bus.Read(vecAddr)) | uint16(c.bus.Read(vecAddr+1))<<8
	seg := uint16(c.bus.Read(vecAddr+2)) | uint16(c.bus.Read(vecAddr+3))<<8
	c.IP = off
	c.segs[segCS] = seg
}

// iret implements IRET: pop IP, CS, FLAGS in that order (spec.md §4.1).
func (c *CPU) iret() {
	c.IP = c.pop16()
	c.segs[segCS] = c.pop16()
	c.SetFLAGS(c.pop16())
}
