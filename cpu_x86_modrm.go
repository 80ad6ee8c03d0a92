// cpu_x86_modrm.go - ModR/M decode and effective-address computation
//
// Implements the documented 8086 ModR/M/displacement matrix (spec.md
// §4.1 "Decode and dispatch"). The effective address is always combined
// with the current useseg — DS by default, SS when the addressing
// expression uses BP (unless a segment override is active), or the
// overridden segment.
//
// License: GPLv3 or later

package main

func (c *CPU) fetchModRM() byte {
	if !c.modrmLoaded {
		c.modrm = c.fetch8()
		c.modrmLoaded = true
	}
	return c.modrm
}

func (c *CPU) modMod() byte { return c.fetchModRM() >> 6 & 3 }
func (c *CPU) modReg() byte { return c.fetchModRM() >> 3 & 7 }
func (c *CPU) modRM() byte  { return c.fetchModRM() & 7 }

// eaResult is the outcome of decoding a memory-form ModR/M operand: the
// segment to use (possibly overridden) and the 16-bit offset within it.
type eaResult struct {
	seg uint16
	off uint16
}

// effectiveAddress decodes the displacement bytes (if any) that follow
// the ModR/M byte and returns the segment:offset it names. Must only be
// called when modMod() != 3 (register-direct form).
func (c *CPU) effectiveAddress() eaResult {
	mod := c.modMod()
	rm := c.modRM()

	var off uint16
	useseg := segDS

	switch rm {
	case 0:
		off = c.BX + c.SI
	case 1:
		off = c.BX + c.DI
	case 2:
		off = c.BP + c.SI
		useseg = segSS
	case 3:
		off = c.BP + c.DI
		useseg = segSS
	case 4:
		off = c.SI
	case 5:
		off = c.DI
	case 6:
		if mod == 0 {
			off = c.fetch16() // direct disp16, no base register
		} else {
			off = c.BP
			useseg = segSS
		}
	case 7:
		off = c.BX
	}

	switch mod {
	case 1:
		disp := int8(c.fetch8())
		off = uint16(int32(off) + int32(disp))
	case 2:
		disp := int16(c.fetch16())
		off = uint16(int32(off) + int32(disp))
	}

	if c.prefixSeg >= 0 {
		useseg = c.prefixSeg
	}

	return eaResult{seg: c.segs[useseg], off: off}
}

func (c *CPU) readRM8() byte {
	if c.modMod() == 3 {
		return c.getReg8(c.modRM())
	}
	ea := c.effectiveAddress()
	return c.readMem8(ea.seg, ea.off)
}

func (c *CPU) writeRM8(v byte) {
	if c.modMod() == 3 {
		c.setReg8(c.modRM(), v)
		return
	}
	ea := c.effectiveAddress()
	c.writeMem8(ea.seg, ea.off, v)
}

func (c *CPU) readRM16() uint16 {
	if c.modMod() == 3 {
		return c.getReg16(c.modRM())
	}
	ea := c.effectiveAddress()
	return c.readMem16(ea.seg, ea.off)
}

func (c *CPU) writeRM16(v uint16) {
	if c.modMod() == 3 {
		c.setReg16(c.modRM(), v)
		return
	}
	ea := c.effectiveAddress()
	c.writeMem16(ea.seg, ea.off, v)
}

// rmOffset returns the effective address's 16-bit offset alone (for LEA,
// which never dereferences memory).
func (c *CPU) rmOffset() uint16 {
	return c.effectiveAddress().off
}
