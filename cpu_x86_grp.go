// cpu_x86_grp.go - ModR/M-reg-field group dispatch: Grp1 (ALU imm),
// Grp2 (shift/rotate), Grp3 (TEST/NOT/NEG/MUL/IMUL/DIV/IDIV), Grp4/5
// (INC/DEC/CALL/JMP/PUSH r/m), and the 0F extended table (spec.md §4.1).
//
// License: GPLv3 or later

package main

// grp1 implements opcodes 80/81/83: ALU op selected by the ModR/M reg
// field, operating on r/m8 (width=1) or r/m16 (width=2), with an
// immediate that is either width-sized (signExtend=false) or a
// sign-extended imm8 (signExtend=true, opcode 83 only, always 16-bit).
func (c *CPU) grp1(width int, signExtend bool) {
	op := c.modReg()
	if width == 1 {
		rm := c.readRM8()
		imm := c.fetch8()
		r := c.alu8(op, rm, imm)
		if op != 7 {
			c.writeRM8(r)
		}
	} else {
		rm := c.readRM16()
		var imm uint16
		if signExtend {
			imm = uint16(int16(int8(c.fetch8())))
		} else {
			imm = c.fetch16()
		}
		r := c.alu16(op, rm, imm)
		if op != 7 {
			c.writeRM16(r)
		}
	}
	c.tick(4)
}

// grp2 implements opcodes C0/C1 (186+): shift/rotate selected by the
// ModR/M reg field, count is an immediate byte.
func (c *CPU) grp2(width int) {
	op := c.modReg()
	count := c.fetch8()
	if width == 1 {
		c.writeRM8(c.rotShiftGrp8(op, c.readRM8(), count))
	} else {
		c.writeRM16(c.rotShiftGrp16(op, c.readRM16(), count))
	}
	c.tick(6)
}

// grp2ByOne implements opcodes D0/D1: shift/rotate by a fixed count of 1.
func (c *CPU) grp2ByOne() {
	op := c.modReg()
	width := 1
	if c.opcode == 0xD1 {
		width = 2
	}
	if width == 1 {
		c.writeRM8(c.rotShiftGrp8(op, c.readRM8(), 1))
	} else {
		c.writeRM16(c.rotShiftGrp16(op, c.readRM16(), 1))
	}
	c.tick(2)
}

// grp2ByCL implements opcodes D2/D3: shift/rotate count taken from CL.
func (c *CPU) grp2ByCL() {
	op := c.modReg()
	width := 1
	if c.opcode == 0xD3 {
		width = 2
	}
	count := c.CL()
	if width == 1 {
		c.writeRM8(c.rotShiftGrp8(op, c.readRM8(), count))
	} else {
		c.writeRM16(c.rotShiftGrp16(op, c.readRM16(), count))
	}
	c.tick(8)
}

// grp3 implements opcodes F6/F7: TEST(0,1)/NOT(2)/NEG(3)/MUL(4)/IMUL(5)/
// DIV(6)/IDIV(7) selected by the ModR/M reg field.
func (c *CPU) grp3(width int) {
	op := c.modReg()
	if width == 1 {
		switch op {
		case 0, 1:
			v := c.readRM8() & c.fetch8()
			c.setFlagsAndOrXor8(v)
			c.tick(5)
		case 2:
			c.writeRM8(^c.readRM8())
			c.tick(3)
		case 3:
			c.writeRM8(c.neg8(c.readRM8()))
			c.tick(3)
		case 4:
			c.mul8(c.readRM8())
			c.tick(77)
		case 5:
			c.imul8(c.readRM8())
			c.tick(98)
		case 6:
			c.div8(c.readRM8())
			c.tick(90)
		case 7:
			c.idiv8(c.readRM8())
			c.tick(112)
		}
		return
	}
	switch op {
	case 0, 1:
		v := c.readRM16() & c.fetch16()
		c.setFlagsAndOrXor16(v)
		c.tick(5)
	case 2:
		c.writeRM16(^c.readRM16())
		c.tick(3)
	case 3:
		c.writeRM16(c.neg16(c.readRM16()))
		c.tick(3)
	case 4:
		c.mul16(c.readRM16())
		c.tick(133)
	case 5:
		c.imul16(c.readRM16())
		c.tick(154)
	case 6:
		c.div16(c.readRM16())
		c.tick(162)
	case 7:
		c.idiv16(c.readRM16())
		c.tick(184)
	}
}

// grp4 implements opcode FE: INC(0)/DEC(1) r/m8. Reg values 2-7 are
// undefined for this opcode.
func (c *CPU) grp4() {
	op := c.modReg()
	switch op {
	case 0:
		c.writeRM8(c.inc8(c.readRM8()))
	case 1:
		c.writeRM8(c.dec8(c.readRM8()))
	default:
		c.undefinedOpcode()
		return
	}
	c.tick(3)
}

// grp5 implements opcode FF: INC(0)/DEC(1)/CALL near indirect(2)/CALL far
// indirect(3)/JMP near indirect(4)/JMP far indirect(5)/PUSH(6) r/m16.
func (c *CPU) grp5() {
	op := c.modReg()
	switch op {
	case 0:
		c.writeRM16(c.inc16(c.readRM16()))
		c.tick(3)
	case 1:
		c.writeRM16(c.dec16(c.readRM16()))
		c.tick(3)
	case 2:
		target := c.readRM16()
		c.push16(c.IP)
		c.IP = target
		c.tick(20)
	case 3:
		ea := c.effectiveAddress()
		off := c.readMem16(ea.seg, ea.off)
		seg := c.readMem16(ea.seg, ea.off+2)
		c.push16(c.segs[segCS])
		c.push16(c.IP)
		c.IP = off
		c.segs[segCS] = seg
		c.tick(28)
	case 4:
		c.IP = c.readRM16()
		c.tick(18)
	case 5:
		ea := c.effectiveAddress()
		c.IP = c.readMem16(ea.seg, ea.off)
		c.segs[segCS] = c.readMem16(ea.seg, ea.off+2)
		c.tick(24)
	case 6:
		c.push16(c.readRM16())
		c.tick(5)
	default:
		c.undefinedOpcode()
	}
}

// initExtendedOps populates the two-byte 0F xx table reached on every
// variant but the 8086 (on 8086, 0F decodes as the undocumented POP CS
// instead — see ops[0x0F]
// in cpu_x86_ops.go). Real 80286 0F opcodes are all protected-mode
// descriptor-table instructions, a documented Non-goal (spec.md §1), so
// every entry here falls back to undefinedOpcode; the table exists so the
// dispatch path and cycle accounting stay uniform with the base table.
func (c *CPU) initExtendedOps() {
	// Intentionally left sparse: no protected-mode 0F opcodes are
	// implemented. c.undefinedOpcode() in ops[0x0F]'s fallback handles
	// every unrecognized second byte.
}
