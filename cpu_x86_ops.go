// cpu_x86_ops.go - base opcode table (spec.md §4.1 "Decode and dispatch")
//
// initBaseOps populates CPU.baseOps for every documented 8086/8088 opcode
// plus the 80186-introduced forms (gated behind c.features.has186Ops).
// Cycle counts are representative, not cycle-exact (spec.md Non-goals);
// tick() nudges c.Cycles by a plausible per-instruction cost so the PIT
// slice budget (spec.md §5) has something real to divide against.
//
// License: GPLv3 or later

package main

func (c *CPU) tick(n int) { c.Cycles += uint64(n) }

// -----------------------------------------------------------------------
// Jcc condition codes, shared by base-table Jcc and the LOOP family
// -----------------------------------------------------------------------

func (c *CPU) condO() bool  { return c.OF() }
func (c *CPU) condNO() bool { return !c.OF() }
func (c *CPU) condB() bool  { return c.CF() }
func (c *CPU) condNB() bool { return !c.CF() }
func (c *CPU) condE() bool  { return c.ZF() }
func (c *CPU) condNE() bool { return !c.ZF() }
func (c *CPU) condBE() bool { return c.CF() || c.ZF() }
func (c *CPU) condA() bool  { return !c.CF() && !c.ZF() }
func (c *CPU) condS() bool  { return c.SF() }
func (c *CPU) condNS() bool { return !c.SF() }
func (c *CPU) condP() bool  { return c.PF() }
func (c *CPU) condNP() bool { return !c.PF() }
func (c *CPU) condL() bool  { return c.SF() != c.OF() }
func (c *CPU) condGE() bool { return c.SF() == c.OF() }
func (c *CPU) condLE() bool { return c.ZF() || c.SF() != c.OF() }
func (c *CPU) condG() bool  { return !c.ZF() && c.SF() == c.OF() }

func (c *CPU) jccRel8(taken bool) {
	disp := int8(c.fetch8())
	if taken {
		c.IP = uint16(int32(c.IP) + int32(disp))
	}
	c.tick(4)
}

func (c *CPU) initBaseOps() {
	ops := &c.baseOps

	// --- ADD/OR/ADC/SBB/AND/SUB/XOR/CMP r/m,r and r,r/m and AL/AX,imm ---
	installAluFamily(ops, 0x00, 0) // ADD
	installAluFamily(ops, 0x08, 1) // OR
	installAluFamily(ops, 0x10, 2) // ADC
	installAluFamily(ops, 0x18, 3) // SBB
	installAluFamily(ops, 0x20, 4) // AND
	installAluFamily(ops, 0x28, 5) // SUB
	installAluFamily(ops, 0x30, 6) // XOR
	installAluFamily(ops, 0x38, 7) // CMP

	// --- segment PUSH/POP (ES/CS/SS/DS), gated by variant for POP CS ---
	ops[0x06] = func(c *CPU) { c.push16(c.segs[segES]); c.tick(4) }
	ops[0x07] = func(c *CPU) { c.segs[segES] = c.pop16(); c.tick(4) }
	ops[0x0E] = func(c *CPU) { c.push16(c.segs[segCS]); c.tick(4) }
	ops[0x0F] = func(c *CPU) {
		if c.features.popCS {
			c.segs[segCS] = c.pop16()
			c.tick(4)
			return
		}
		opcode2 := c.fetch8()
		if handler := c.extendedOps[opcode2]; handler != nil {
			handler(c)
		} else {
			c.undefinedOpcode()
		}
	}
	ops[0x16] = func(c *CPU) { c.push16(c.segs[segSS]); c.tick(4) }
	ops[0x17] = func(c *CPU) { c.segs[segSS] = c.pop16(); c.tick(4) }
	ops[0x1E] = func(c *CPU) { c.push16(c.segs[segDS]); c.tick(4) }
	ops[0x1F] = func(c *CPU) { c.segs[segDS] = c.pop16(); c.tick(4) }

	// --- DAA/DAS/AAA/AAS ---
	ops[0x27] = func(c *CPU) { c.daa(); c.tick(4) }
	ops[0x2F] = func(c *CPU) { c.das(); c.tick(4) }
	ops[0x37] = func(c *CPU) { c.aaa(); c.tick(4) }
	ops[0x3F] = func(c *CPU) { c.aas(); c.tick(4) }

	// --- INC/DEC r16 (40-4F) ---
	for i := byte(0); i < 8; i++ {
		idx := i
		ops[0x40+idx] = func(c *CPU) { c.setReg16(idx, c.inc16(c.getReg16(idx))); c.tick(2) }
		ops[0x48+idx] = func(c *CPU) { c.setReg16(idx, c.dec16(c.getReg16(idx))); c.tick(2) }
	}

	// --- PUSH/POP r16 (50-5F) ---
	for i := byte(0); i < 8; i++ {
		idx := i
		ops[0x50+idx] = func(c *CPU) {
			v := c.getReg16(idx)
			if idx == 4 && !c.features.pushSPPostDec { // PUSH SP pre-decrement quirk (8086/V20)
				v = c.SP - 2
			}
			c.push16(v)
			c.tick(4)
		}
		ops[0x58+idx] = func(c *CPU) { c.setReg16(idx, c.pop16()); c.tick(4) }
	}

	// --- 186+: PUSHA/POPA, PUSH imm, IMUL r,r/m,imm, BOUND ---
	ops[0x60] = func(c *CPU) {
		if !c.features.has186Ops {
			c.undefinedOpcode()
			return
		}
		sp := c.SP
		c.push16(c.AX)
		c.push16(c.CX)
		c.push16(c.DX)
		c.push16(c.BX)
		c.push16(sp)
		c.push16(c.BP)
		c.push16(c.SI)
		c.push16(c.DI)
		c.tick(19)
	}
	ops[0x61] = func(c *CPU) {
		if !c.features.has186Ops {
			c.undefinedOpcode()
			return
		}
		c.DI = c.pop16()
		c.SI = c.pop16()
		c.BP = c.pop16()
		c.pop16() // discard saved SP
		c.BX = c.pop16()
		c.DX = c.pop16()
		c.CX = c.pop16()
		c.AX = c.pop16()
		c.tick(19)
	}
	ops[0x62] = func(c *CPU) { // BOUND r16,m16&16 (spec.md §4.1, §7 kind 1)
		if !c.features.has186Ops {
			c.undefinedOpcode()
			return
		}
		reg := c.modReg()
		ea := c.effectiveAddress() // bounds operand is always memory-form
		lower := int16(c.readMem16(ea.seg, ea.off))
		upper := int16(c.readMem16(ea.seg, ea.off+2))
		idx := int16(c.getReg16(reg))
		if idx < lower || idx > upper {
			c.raiseInterrupt(5)
			return
		}
		c.tick(10)
	}
	ops[0x68] = func(c *CPU) {
		if !c.features.has186Ops {
			c.undefinedOpcode()
			return
		}
		c.push16(c.fetch16())
		c.tick(3)
	}
	ops[0x6A] = func(c *CPU) {
		if !c.features.has186Ops {
			c.undefinedOpcode()
			return
		}
		c.push16(uint16(int16(int8(c.fetch8()))))
		c.tick(3)
	}
	ops[0x69] = func(c *CPU) { // IMUL r16,r/m16,imm16
		if !c.features.has186Ops {
			c.undefinedOpcode()
			return
		}
		reg := c.modReg()
		src := c.readRM16()
		imm := c.fetch16()
		r := int32(int16(src)) * int32(int16(imm))
		c.setReg16(reg, uint16(r))
		overflow := r < -32768 || r > 32767
		c.setFlag(flagCF, overflow)
		c.setFlag(flagOF, overflow)
		c.tick(21)
	}
	ops[0x6B] = func(c *CPU) { // IMUL r16,r/m16,imm8
		if !c.features.has186Ops {
			c.undefinedOpcode()
			return
		}
		reg := c.modReg()
		src := c.readRM16()
		imm := int16(int8(c.fetch8()))
		r := int32(int16(src)) * int32(imm)
		c.setReg16(reg, uint16(r))
		overflow := r < -32768 || r > 32767
		c.setFlag(flagCF, overflow)
		c.setFlag(flagOF, overflow)
		c.tick(21)
	}
	ops[0x6C] = func(c *CPU) { c.insStep(1); c.tick(5) }  // INSB
	ops[0x6D] = func(c *CPU) { c.insStep(2); c.tick(5) }  // INSW
	ops[0x6E] = func(c *CPU) { c.outsStep(1); c.tick(5) } // OUTSB
	ops[0x6F] = func(c *CPU) { c.outsStep(2); c.tick(5) } // OUTSW
	for op := 0x6C; op <= 0x6F; op++ {
		inner := ops[op]
		ops[op] = func(c *CPU) {
			if !c.features.has186Ops {
				c.undefinedOpcode()
				return
			}
			inner(c)
		}
	}

	// --- Jcc rel8 (70-7F) ---
	ops[0x70] = func(c *CPU) { c.jccRel8(c.condO()) }
	ops[0x71] = func(c *CPU) { c.jccRel8(c.condNO()) }
	ops[0x72] = func(c *CPU) { c.jccRel8(c.condB()) }
	ops[0x73] = func(c *CPU) { c.jccRel8(c.condNB()) }
	ops[0x74] = func(c *CPU) { c.jccRel8(c.condE()) }
	ops[0x75] = func(c *CPU) { c.jccRel8(c.condNE()) }
	ops[0x76] = func(c *CPU) { c.jccRel8(c.condBE()) }
	ops[0x77] = func(c *CPU) { c.jccRel8(c.condA()) }
	ops[0x78] = func(c *CPU) { c.jccRel8(c.condS()) }
	ops[0x79] = func(c *CPU) { c.jccRel8(c.condNS()) }
	ops[0x7A] = func(c *CPU) { c.jccRel8(c.condP()) }
	ops[0x7B] = func(c *CPU) { c.jccRel8(c.condNP()) }
	ops[0x7C] = func(c *CPU) { c.jccRel8(c.condL()) }
	ops[0x7D] = func(c *CPU) { c.jccRel8(c.condGE()) }
	ops[0x7E] = func(c *CPU) { c.jccRel8(c.condLE()) }
	ops[0x7F] = func(c *CPU) { c.jccRel8(c.condG()) }

	// --- Grp1 ALU imm (80/81/83), Grp2 shift imm (C0/C1/D0-D3), Grp3 (F6/F7), Grp4/5 (FE/FF) ---
	ops[0x80] = func(c *CPU) { c.grp1(1, false) }
	ops[0x81] = func(c *CPU) { c.grp1(2, false) }
	ops[0x83] = func(c *CPU) { c.grp1(2, true) }

	// --- TEST r/m,r ; XCHG r/m,r ---
	ops[0x84] = func(c *CPU) {
		reg := c.modReg()
		v := c.readRM8() & c.getReg8(reg)
		c.setFlagsAndOrXor8(v)
		c.tick(3)
	}
	ops[0x85] = func(c *CPU) {
		reg := c.modReg()
		v := c.readRM16() & c.getReg16(reg)
		c.setFlagsAndOrXor16(v)
		c.tick(3)
	}
	ops[0x86] = func(c *CPU) {
		reg := c.modReg()
		a, b := c.readRM8(), c.getReg8(reg)
		c.writeRM8(b)
		c.setReg8(reg, a)
		c.tick(4)
	}
	ops[0x87] = func(c *CPU) {
		reg := c.modReg()
		a, b := c.readRM16(), c.getReg16(reg)
		c.writeRM16(b)
		c.setReg16(reg, a)
		c.tick(4)
	}

	// --- MOV r/m,r and r,r/m (88-8B) ---
	ops[0x88] = func(c *CPU) { c.writeRM8(c.getReg8(c.modReg())); c.tick(2) }
	ops[0x89] = func(c *CPU) { c.writeRM16(c.getReg16(c.modReg())); c.tick(2) }
	ops[0x8A] = func(c *CPU) { c.setReg8(c.modReg(), c.readRM8()); c.tick(2) }
	ops[0x8B] = func(c *CPU) { c.setReg16(c.modReg(), c.readRM16()); c.tick(2) }

	// --- MOV r/m16,segreg ; LEA ; MOV segreg,r/m16 ; POP r/m16 ---
	ops[0x8C] = func(c *CPU) { c.writeRM16(c.segs[c.modReg()&3]); c.tick(2) }
	ops[0x8D] = func(c *CPU) { c.setReg16(c.modReg(), c.rmOffset()); c.tick(2) }
	ops[0x8E] = func(c *CPU) { c.segs[c.modReg()&3] = c.readRM16(); c.tick(2) }
	ops[0x8F] = func(c *CPU) { c.writeRM16(c.pop16()); c.tick(4) }

	// --- NOP / XCHG AX,r16 (90-97) ---
	for i := byte(0); i < 8; i++ {
		idx := i
		ops[0x90+idx] = func(c *CPU) {
			if idx == 0 {
				c.tick(3)
				return
			}
			a, b := c.AX, c.getReg16(idx)
			c.AX, _ = b, a
			c.setReg16(idx, a)
			c.tick(3)
		}
	}

	// --- CBW/CWD, CALL far direct (9A handled below), WAIT, PUSHF/POPF, SAHF/LAHF ---
	ops[0x98] = func(c *CPU) { // CBW
		if c.AL()&0x80 != 0 {
			c.SetAH(0xFF)
		} else {
			c.SetAH(0)
		}
		c.tick(2)
	}
	ops[0x99] = func(c *CPU) { // CWD
		if c.AX&0x8000 != 0 {
			c.DX = 0xFFFF
		} else {
			c.DX = 0
		}
		c.tick(2)
	}
	ops[0x9A] = func(c *CPU) { // CALL far direct
		off := c.fetch16()
		seg := c.fetch16()
		c.push16(c.segs[segCS])
		c.push16(c.IP)
		c.segs[segCS] = seg
		c.IP = off
		c.tick(28)
	}
	ops[0x9B] = func(c *CPU) { c.tick(4) } // WAIT: no FPU, no-op
	ops[0x9C] = func(c *CPU) { c.push16(c.FLAGS()); c.tick(4) }
	ops[0x9D] = func(c *CPU) { c.SetFLAGS(c.pop16()); c.tick(4) }
	ops[0x9E] = func(c *CPU) { // SAHF
		c.flags = (c.flags &^ 0xFF) | uint16(c.AH())
		c.flags |= flagR1
		c.tick(4)
	}
	ops[0x9F] = func(c *CPU) { c.SetAH(byte(c.FLAGS())); c.tick(4) } // LAHF

	// --- MOV AL/AX,[moffs] and [moffs],AL/AX (A0-A3) ---
	ops[0xA0] = func(c *CPU) {
		off := c.fetch16()
		c.SetAL(c.readMem8(c.dataSeg(), off))
		c.tick(4)
	}
	ops[0xA1] = func(c *CPU) {
		off := c.fetch16()
		c.AX = c.readMem16(c.dataSeg(), off)
		c.tick(4)
	}
	ops[0xA2] = func(c *CPU) {
		off := c.fetch16()
		c.writeMem8(c.dataSeg(), off, c.AL())
		c.tick(4)
	}
	ops[0xA3] = func(c *CPU) {
		off := c.fetch16()
		c.writeMem16(c.dataSeg(), off, c.AX)
		c.tick(4)
	}

	// --- string ops (cpu_x86_string.go supplies the real bodies) ---
	ops[0xA4] = func(c *CPU) { c.execStringOp(c.movsStep) }
	ops[0xA5] = func(c *CPU) { c.execStringOp(c.movswStep) }
	ops[0xA6] = func(c *CPU) { c.execStringCompareOp(c.cmpsStep) }
	ops[0xA7] = func(c *CPU) { c.execStringCompareOp(c.cmpswStep) }
	ops[0xA8] = func(c *CPU) {
		v := c.AL() & c.fetch8()
		c.setFlagsAndOrXor8(v)
		c.tick(4)
	}
	ops[0xA9] = func(c *CPU) {
		v := c.AX & c.fetch16()
		c.setFlagsAndOrXor16(v)
		c.tick(4)
	}
	ops[0xAA] = func(c *CPU) { c.execStringOp(c.stosStep) }
	ops[0xAB] = func(c *CPU) { c.execStringOp(c.stoswStep) }
	ops[0xAC] = func(c *CPU) { c.execStringOp(c.lodsStep) }
	ops[0xAD] = func(c *CPU) { c.execStringOp(c.lodswStep) }
	ops[0xAE] = func(c *CPU) { c.execStringCompareOp(c.scasStep) }
	ops[0xAF] = func(c *CPU) { c.execStringCompareOp(c.scaswStep) }

	// --- MOV r8,imm8 (B0-B7) ; MOV r16,imm16 (B8-BF) ---
	for i := byte(0); i < 8; i++ {
		idx := i
		ops[0xB0+idx] = func(c *CPU) { c.setReg8(idx, c.fetch8()); c.tick(4) }
		ops[0xB8+idx] = func(c *CPU) { c.setReg16(idx, c.fetch16()); c.tick(4) }
	}

	// --- Grp2 shift imm8 count (C0/C1, 186+), RET imm16/near (C2/C3) ---
	ops[0xC0] = func(c *CPU) {
		if !c.features.has186Ops {
			c.undefinedOpcode()
			return
		}
		c.grp2(1)
	}
	ops[0xC1] = func(c *CPU) {
		if !c.features.has186Ops {
			c.undefinedOpcode()
			return
		}
		c.grp2(2)
	}
	ops[0xC2] = func(c *CPU) {
		n := c.fetch16()
		c.IP = c.pop16()
		c.SP += n
		c.tick(16)
	}
	ops[0xC3] = func(c *CPU) { c.IP = c.pop16(); c.tick(8) }

	// --- LES/LDS, MOV r/m,imm (C4-C7) ---
	ops[0xC4] = func(c *CPU) { // LES
		reg := c.modReg()
		ea := c.effectiveAddress()
		c.setReg16(reg, c.readMem16(ea.seg, ea.off))
		c.segs[segES] = c.readMem16(ea.seg, ea.off+2)
		c.tick(16)
	}
	ops[0xC5] = func(c *CPU) { // LDS
		reg := c.modReg()
		ea := c.effectiveAddress()
		c.setReg16(reg, c.readMem16(ea.seg, ea.off))
		c.segs[segDS] = c.readMem16(ea.seg, ea.off+2)
		c.tick(16)
	}
	ops[0xC6] = func(c *CPU) { c.writeRM8(c.fetch8()); c.tick(4) }
	ops[0xC7] = func(c *CPU) { c.writeRM16(c.fetch16()); c.tick(4) }

	// --- ENTER/LEAVE (186+) ---
	ops[0xC8] = func(c *CPU) {
		if !c.features.has186Ops {
			c.undefinedOpcode()
			return
		}
		size := c.fetch16()
		level := c.fetch8() & 0x1F
		c.push16(c.BP)
		frameTemp := c.SP
		if level > 0 {
			bp := c.BP
			for i := byte(1); i < level; i++ {
				bp -= 2
				c.push16(c.readMem16(c.segs[segSS], bp))
			}
			c.push16(frameTemp)
		}
		c.BP = frameTemp
		c.SP -= size
		c.tick(15)
	}
	ops[0xC9] = func(c *CPU) {
		if !c.features.has186Ops {
			c.undefinedOpcode()
			return
		}
		c.SP = c.BP
		c.BP = c.pop16()
		c.tick(8)
	}

	// --- RETF (CA/CB), INT3 (CC), INT imm8 (CD), INTO (CE), IRET (CF) ---
	ops[0xCA] = func(c *CPU) {
		n := c.fetch16()
		c.IP = c.pop16()
		c.segs[segCS] = c.pop16()
		c.SP += n
		c.tick(17)
	}
	ops[0xCB] = func(c *CPU) {
		c.IP = c.pop16()
		c.segs[segCS] = c.pop16()
		c.tick(18)
	}
	ops[0xCC] = func(c *CPU) { c.raiseInterrupt(3); c.tick(52) }
	ops[0xCD] = func(c *CPU) { c.raiseInterrupt(c.fetch8()); c.tick(51) }
	ops[0xCE] = func(c *CPU) {
		if c.OF() {
			c.raiseInterrupt(4)
			c.tick(53)
		} else {
			c.tick(4)
		}
	}
	ops[0xCF] = func(c *CPU) { c.iret(); c.tick(24) }

	// --- Grp2 shift by 1 / by CL (D0-D3), AAM/AAD, XLAT ---
	ops[0xD0] = func(c *CPU) { c.grp2ByOne() }
	ops[0xD1] = func(c *CPU) { c.grp2ByOne() }
	ops[0xD2] = func(c *CPU) { c.grp2ByCL() }
	ops[0xD3] = func(c *CPU) { c.grp2ByCL() }
	ops[0xD4] = func(c *CPU) { c.aam(c.fetch8()); c.tick(83) }
	ops[0xD5] = func(c *CPU) { c.aad(c.fetch8()); c.tick(60) }
	ops[0xD7] = func(c *CPU) { // XLAT
		off := c.BX + uint16(c.AL())
		c.SetAL(c.readMem8(c.dataSeg(), off))
		c.tick(11)
	}

	// --- ESC (D8-DF): consume ModR/M only, no x87 semantics (Non-goal) ---
	for i := byte(0xD8); i <= 0xDF; i++ {
		ops[i] = func(c *CPU) {
			if c.modMod() != 3 {
				c.effectiveAddress()
			}
			c.tick(2)
		}
	}

	// --- LOOP/LOOPE/LOOPNE/JCXZ (E0-E3) ---
	ops[0xE0] = func(c *CPU) {
		disp := int8(c.fetch8())
		c.CX--
		if c.CX != 0 && !c.ZF() {
			c.IP = uint16(int32(c.IP) + int32(disp))
		}
		c.tick(5)
	}
	ops[0xE1] = func(c *CPU) {
		disp := int8(c.fetch8())
		c.CX--
		if c.CX != 0 && c.ZF() {
			c.IP = uint16(int32(c.IP) + int32(disp))
		}
		c.tick(5)
	}
	ops[0xE2] = func(c *CPU) {
		disp := int8(c.fetch8())
		c.CX--
		if c.CX != 0 {
			c.IP = uint16(int32(c.IP) + int32(disp))
		}
		c.tick(5)
	}
	ops[0xE3] = func(c *CPU) {
		disp := int8(c.fetch8())
		if c.CX == 0 {
			c.IP = uint16(int32(c.IP) + int32(disp))
		}
		c.tick(6)
	}

	// --- IN/OUT fixed port (E4-E7), CALL/JMP near/short (E8-EB), IN/OUT DX (EC-EF) ---
	ops[0xE4] = func(c *CPU) { port := uint16(c.fetch8()); c.SetAL(c.bus.In(port)); c.tick(10) }
	ops[0xE5] = func(c *CPU) {
		port := uint16(c.fetch8())
		c.AX = uint16(c.bus.In(port)) | uint16(c.bus.In(port+1))<<8
		c.tick(10)
	}
	ops[0xE6] = func(c *CPU) { port := uint16(c.fetch8()); c.bus.Out(port, c.AL()); c.tick(10) }
	ops[0xE7] = func(c *CPU) {
		port := uint16(c.fetch8())
		c.bus.Out(port, byte(c.AX))
		c.bus.Out(port+1, byte(c.AX>>8))
		c.tick(10)
	}
	ops[0xE8] = func(c *CPU) { // CALL near relative
		disp := int16(c.fetch16())
		ret := c.IP
		c.push16(ret)
		c.IP = uint16(int32(ret) + int32(disp))
		c.tick(19)
	}
	ops[0xE9] = func(c *CPU) {
		disp := int16(c.fetch16())
		c.IP = uint16(int32(c.IP) + int32(disp))
		c.tick(15)
	}
	ops[0xEA] = func(c *CPU) { // JMP far direct
		off := c.fetch16()
		seg := c.fetch16()
		c.IP = off
		c.segs[segCS] = seg
		c.tick(15)
	}
	ops[0xEB] = func(c *CPU) {
		disp := int8(c.fetch8())
		c.IP = uint16(int32(c.IP) + int32(disp))
		c.tick(15)
	}
	ops[0xEC] = func(c *CPU) { c.SetAL(c.bus.In(c.DX)); c.tick(8) }
	ops[0xED] = func(c *CPU) {
		c.AX = uint16(c.bus.In(c.DX)) | uint16(c.bus.In(c.DX+1))<<8
		c.tick(8)
	}
	ops[0xEE] = func(c *CPU) { c.bus.Out(c.DX, c.AL()); c.tick(8) }
	ops[0xEF] = func(c *CPU) {
		c.bus.Out(c.DX, byte(c.AX))
		c.bus.Out(c.DX+1, byte(c.AX>>8))
		c.tick(8)
	}

	// --- LOCK/REPNE/REP already consumed as prefixes (F0/F2/F3); HLT, CMC ---
	ops[0xF4] = func(c *CPU) { c.Halted = true; c.tick(2) }
	ops[0xF5] = func(c *CPU) { c.setFlag(flagCF, !c.CF()); c.tick(2) }

	// --- Grp3 TEST/NOT/NEG/MUL/IMUL/DIV/IDIV (F6/F7) ---
	ops[0xF6] = func(c *CPU) { c.grp3(1) }
	ops[0xF7] = func(c *CPU) { c.grp3(2) }

	// --- CLC/STC/CLI/STI/CLD/STD (F8-FD) ---
	ops[0xF8] = func(c *CPU) { c.setFlag(flagCF, false); c.tick(2) }
	ops[0xF9] = func(c *CPU) { c.setFlag(flagCF, true); c.tick(2) }
	ops[0xFA] = func(c *CPU) { c.setFlag(flagIF, false); c.tick(2) }
	ops[0xFB] = func(c *CPU) { c.setFlag(flagIF, true); c.tick(2) }
	ops[0xFC] = func(c *CPU) { c.setFlag(flagDF, false); c.tick(2) }
	ops[0xFD] = func(c *CPU) { c.setFlag(flagDF, true); c.tick(2) }

	// --- Grp4 INC/DEC r/m8 (FE), Grp5 INC/DEC/CALL/JMP/PUSH r/m16 (FF) ---
	ops[0xFE] = func(c *CPU) { c.grp4() }
	ops[0xFF] = func(c *CPU) { c.grp5() }

	// undocumented SALC (8086/V20 only)
	ops[0xD6] = func(c *CPU) {
		if !c.features.hasSALC {
			c.undefinedOpcode()
			return
		}
		if c.CF() {
			c.SetAL(0xFF)
		} else {
			c.SetAL(0x00)
		}
		c.tick(2)
	}
}

// dataSeg returns the segment a moffs-style or string-style source operand
// uses: the prefix override if present, else DS.
func (c *CPU) dataSeg() uint16 {
	if c.prefixSeg >= 0 {
		return c.segs[c.prefixSeg]
	}
	return c.segs[segDS]
}

// installAluFamily wires the eight-opcode run each Grp1 ALU op occupies in
// the base table: r/m8,r8 ; r/m16,r16 ; r8,r/m8 ; r16,r/m16 ; AL,imm8 ;
// AX,imm16 (spec.md §4.1 "ALU core").
func installAluFamily(ops *[256]func(*CPU), base byte, aluOp byte) {
	op := aluOp
	ops[base+0] = func(c *CPU) {
		reg := c.modReg()
		r := c.alu8(op, c.readRM8(), c.getReg8(reg))
		if op != 7 {
			c.writeRM8(r)
		}
		c.tick(3)
	}
	ops[base+1] = func(c *CPU) {
		reg := c.modReg()
		r := c.alu16(op, c.readRM16(), c.getReg16(reg))
		if op != 7 {
			c.writeRM16(r)
		}
		c.tick(3)
	}
	ops[base+2] = func(c *CPU) {
		reg := c.modReg()
		r := c.alu8(op, c.getReg8(reg), c.readRM8())
		if op != 7 {
			c.setReg8(reg, r)
		}
		c.tick(3)
	}
	ops[base+3] = func(c *CPU) {
		reg := c.modReg()
		r := c.alu16(op, c.getReg16(reg), c.readRM16())
		if op != 7 {
			c.setReg16(reg, r)
		}
		c.tick(3)
	}
	ops[base+4] = func(c *CPU) {
		r := c.alu8(op, c.AL(), c.fetch8())
		if op != 7 {
			c.SetAL(r)
		}
		c.tick(4)
	}
	ops[base+5] = func(c *CPU) {
		r := c.alu16(op, c.AX, c.fetch16())
		if op != 7 {
			c.AX = r
		}
		c.tick(4)
	}
}
