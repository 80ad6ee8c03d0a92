// cpu_x86_string.go - string primitives and their REP-prefixed repetition
//
// A single Step() call executes at most one iteration of a string op.
// When a REP/REPE/REPNE prefix is active and iterations remain, the
// instruction's IP is rewound to the first prefix byte before returning,
// so the next Step() call re-decodes the prefix and opcode and continues
// where it left off. This is what lets a pending hardware interrupt
// (checked at the top of Step, spec.md §5 ordering guarantee 2) preempt
// a long REP MOVSB between bytes without any special-case unwind logic.
//
// License: GPLv3 or later

package main

func (c *CPU) strideDirection() int16 {
	if c.DF() {
		return -1
	}
	return 1
}

// execStringOp runs one iteration of a REP-only string primitive
// (MOVS/LODS/STOS/INS/OUTS): repeats purely on CX, no flag condition.
func (c *CPU) execStringOp(step func()) {
	if c.prefixRep == 0 {
		step()
		c.tick(9)
		return
	}
	if c.CX == 0 {
		return
	}
	step()
	c.CX--
	c.tick(9)
	if c.CX != 0 {
		c.IP = c.firstByteIP
	}
}

// execStringCompareOp runs one iteration of a REPE/REPNE-eligible string
// primitive (CMPS/SCAS): repeats on CX and, when a REP* prefix qualifies
// it, on ZF.
func (c *CPU) execStringCompareOp(step func()) {
	if c.prefixRep == 0 {
		step()
		c.tick(9)
		return
	}
	if c.CX == 0 {
		return
	}
	step()
	c.CX--
	c.tick(9)
	cont := c.CX != 0
	switch c.prefixRep {
	case 1: // REPE/REPZ
		cont = cont && c.ZF()
	case 2: // REPNE/REPNZ
		cont = cont && !c.ZF()
	}
	if cont {
		c.IP = c.firstByteIP
	}
}

func (c *CPU) movsStep() {
	d := c.strideDirection()
	v := c.readMem8(c.dataSeg(), c.SI)
	c.writeMem8(c.segs[segES], c.DI, v)
	c.SI = uint16(int32(c.SI) + int32(d))
	c.DI = uint16(int32(c.DI) + int32(d))
}

func (c *CPU) movswStep() {
	d := c.strideDirection()
	v := c.readMem16(c.dataSeg(), c.SI)
	c.writeMem16(c.segs[segES], c.DI, v)
	c.SI = uint16(int32(c.SI) + int32(d)*2)
	c.DI = uint16(int32(c.DI) + int32(d)*2)
}

func (c *CPU) cmpsStep() {
	d := c.strideDirection()
	a := c.readMem8(c.dataSeg(), c.SI)
	b := c.readMem8(c.segs[segES], c.DI)
	r := a - b
	c.setFlagsSub8(a, b, r)
	c.SI = uint16(int32(c.SI) + int32(d))
	c.DI = uint16(int32(c.DI) + int32(d))
}

func (c *CPU) cmpswStep() {
	d := c.strideDirection()
	a := c.readMem16(c.dataSeg(), c.SI)
	b := c.readMem16(c.segs[segES], c.DI)
	r := a - b
	c.setFlagsSub16(a, b, r)
	c.SI = uint16(int32(c.SI) + int32(d)*2)
	c.DI = uint16(int32(c.DI) + int32(d)*2)
}

func (c *CPU) scasStep() {
	d := c.strideDirection()
	a := c.AL()
	b := c.readMem8(c.segs[segES], c.DI)
	r := a - b
	c.setFlagsSub8(a, b, r)
	c.DI = uint16(int32(c.DI) + int32(d))
}

func (c *CPU) scaswStep() {
	d := c.strideDirection()
	a := c.AX
	b := c.readMem16(c.segs[segES], c.DI)
	r := a - b
	c.setFlagsSub16(a, b, r)
	c.DI = uint16(int32(c.DI) + int32(d)*2)
}

func (c *CPU) lodsStep() {
	d := c.strideDirection()
	c.SetAL(c.readMem8(c.dataSeg(), c.SI))
	c.SI = uint16(int32(c.SI) + int32(d))
}

func (c *CPU) lodswStep() {
	d := c.strideDirection()
	c.AX = c.readMem16(c.dataSeg(), c.SI)
	c.SI = uint16(int32(c.SI) + int32(d)*2)
}

func (c *CPU) stosStep() {
	d := c.strideDirection()
	c.writeMem8(c.segs[segES], c.DI, c.AL())
	c.DI = uint16(int32(c.DI) + int32(d))
}

func (c *CPU) stoswStep() {
	d := c.strideDirection()
	c.writeMem16(c.segs[segES], c.DI, c.AX)
	c.DI = uint16(int32(c.DI) + int32(d)*2)
}

// insStep/outsStep implement the 80186-introduced INS/OUTS primitives
// (width in bytes: 1 for INSB/OUTSB, 2 for INSW/OUTSW).
func (c *CPU) insStep(width int) {
	exec := func() {
		d := c.strideDirection()
		if width == 1 {
			c.writeMem8(c.segs[segES], c.DI, c.bus.In(c.DX))
			c.DI = uint16(int32(c.DI) + int32(d))
		} else {
			lo := c.bus.In(c.DX)
			hi := c.bus.In(c.DX + 1)
			c.writeMem16(c.segs[segES], c.DI, uint16(lo)|uint16(hi)<<8)
			c.DI = uint16(int32(c.DI) + int32(d)*2)
		}
	}
	c.execStringOp(exec)
}

func (c *CPU) outsStep(width int) {
	exec := func() {
		d := c.strideDirection()
		if width == 1 {
			c.bus.Out(c.DX, c.readMem8(c.dataSeg(), c.SI))
			c.SI = uint16(int32(c.SI) + int32(d))
		} else {
			v := c.readMem16(c.dataSeg(), c.SI)
			c.bus.Out(c.DX, byte(v))
			c.bus.Out(c.DX+1, byte(v>>8))
			c.SI = uint16(int32(c.SI) + int32(d)*2)
		}
	}
	c.execStringOp(exec)
}
