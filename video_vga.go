// video_vga.go - VGA register files, DAC, and mode-set (spec.md §4.8)
//
// Grounded on the donor engine's VGAEngine struct (index/data register
// files, DAC write/read phase state machine, attribute-controller
// flip-flop, palette cache) and its setMode routine, extended to the
// INT 10h mode-set semantics §4.8 actually specifies.
//
// License: GPLv3 or later

package main

// modeInfo describes the fixed geometry INT 10h AH=00h selects (spec.md
// §4.8: "recomputes rows/cols/width/height/memory base").
type modeInfo struct {
	cols, rows     int
	width, height  int
	memoryBase     uint32
	text           bool
}

var vgaModes = map[byte]modeInfo{
	0x00: {40, 25, 320, 200, vgaTextWindow, true},
	0x01: {40, 25, 320, 200, vgaTextWindow, true},
	0x02: {80, 25, 640, 200, vgaTextWindow, true},
	0x03: {80, 25, 640, 200, vgaTextWindow, true},
	0x04: {40, 25, 320, 200, vgaTextWindow, false},
	0x05: {40, 25, 320, 200, vgaTextWindow, false},
	0x06: {80, 25, 640, 200, vgaTextWindow, false},
	0x07: {80, 25, 720, 350, 0xB0000, true},
	0x0D: {40, 25, 320, 200, vgaWindowBaseOffset, false},
	0x0E: {80, 25, 640, 200, vgaWindowBaseOffset, false},
	0x0F: {80, 25, 640, 350, vgaWindowBaseOffset, false},
	0x10: {80, 25, 640, 350, vgaWindowBaseOffset, false},
	0x11: {80, 30, 640, 480, vgaWindowBaseOffset, false},
	0x12: {80, 30, 640, 480, vgaWindowBaseOffset, false},
	0x13: {40, 25, 320, 200, vgaWindowBaseOffset, false},
}

const vgaWindowBaseOffset = 0xA0000

// VGAEngine is the whole video block: six register files behind their
// index/data port pairs, the DAC, and the four planes of display memory.
type VGAEngine struct {
	seqIndex byte
	seqRegs  [vgaSeqRegCount]byte

	crtcIndex byte
	crtcRegs  [vgaCRTCRegCount]byte

	gcIndex byte
	gcRegs  [vgaGCRegCount]byte

	attrIndex byte
	attrRegs  [vgaAttrRegCount]byte
	attrFlip  bool // false = next write/read is an index, true = data

	dacMask       byte
	dacReadIndex  byte
	dacReadPhase  byte
	dacWriteIndex byte
	dacWritePhase byte
	palette       [vgaPaletteSize * 3]byte // 6-bit R,G,B per entry

	cgaMode byte
	cgaPal  byte

	vram  [vgaPlaneCount][vgaPlaneSize]byte
	latch [vgaPlaneCount]byte

	mode       byte
	noBlanking bool
	cols, rows int
	width      int
	height     int
	memoryBase uint32
	text       bool

	mem    *MemoryBus
	timing *vgaTiming
}

func newVGAEngine(mem *MemoryBus) *VGAEngine {
	v := &VGAEngine{mem: mem}
	v.timing = newVGATiming()
	v.SetMode(0x03) // power-on default: 80x25 text
	return v
}

// SetMode implements INT 10h AH=00h: load the mode register, recompute
// geometry and memory base, and clear the selected framebuffer unless
// the mode number's high bit (no-blanking) is set (spec.md §4.8).
func (v *VGAEngine) SetMode(modeByte byte) {
	v.noBlanking = modeByte&0x80 != 0
	v.mode = modeByte &^ 0x80

	info, ok := vgaModes[v.mode]
	if !ok {
		info = vgaModes[0x03]
	}
	v.cols, v.rows = info.cols, info.rows
	v.width, v.height = info.width, info.height
	v.text = info.text
	if info.memoryBase == vgaWindowBaseOffset {
		v.memoryBase = vgaWindowBaseOffset
	} else {
		v.memoryBase = info.memoryBase
	}

	if v.noBlanking {
		return
	}
	if v.memoryBase == vgaWindowBaseOffset {
		for p := 0; p < vgaPlaneCount; p++ {
			for i := range v.vram[p] {
				v.vram[p][i] = 0
			}
		}
		return
	}
	if v.mem == nil {
		return
	}
	base := v.memoryBase
	size := uint32(0x8000)
	if v.memoryBase == 0xB0000 {
		size = 0x1000
	}
	for off := uint32(0); off < size; off++ {
		v.mem.Write(base+off, 0)
	}
}

// ReadWindow/WriteWindow satisfy memory_bus.go's vgaWindow interface and
// are implemented in vga_plane_engine.go.

func (v *VGAEngine) cursorPos() int {
	return int(v.crtcRegs[vgaCRTCCursorHi])<<8 | int(v.crtcRegs[vgaCRTCCursorLo])
}

func (v *VGAEngine) crtcPortIn(data bool) byte {
	if !data {
		return v.crtcIndex
	}
	if int(v.crtcIndex) >= vgaCRTCRegCount {
		return 0
	}
	return v.crtcRegs[v.crtcIndex]
}

func (v *VGAEngine) crtcPortOut(data bool, val byte) {
	if !data {
		v.crtcIndex = val
		return
	}
	if int(v.crtcIndex) < vgaCRTCRegCount {
		v.crtcRegs[v.crtcIndex] = val
	}
}

func (v *VGAEngine) seqPortIn(data bool) byte {
	if !data {
		return v.seqIndex
	}
	if int(v.seqIndex) >= vgaSeqRegCount {
		return 0
	}
	return v.seqRegs[v.seqIndex]
}

func (v *VGAEngine) seqPortOut(data bool, val byte) {
	if !data {
		v.seqIndex = val
		return
	}
	if int(v.seqIndex) < vgaSeqRegCount {
		v.seqRegs[v.seqIndex] = val
	}
}

func (v *VGAEngine) gcPortIn(data bool) byte {
	if !data {
		return v.gcIndex
	}
	if int(v.gcIndex) >= vgaGCRegCount {
		return 0
	}
	return v.gcRegs[v.gcIndex]
}

func (v *VGAEngine) gcPortOut(data bool, val byte) {
	if !data {
		v.gcIndex = val
		return
	}
	if int(v.gcIndex) < vgaGCRegCount {
		v.gcRegs[v.gcIndex] = val
	}
}

// attrPortWrite implements the single-port index/data flip-flop at 0x3C0
// (spec.md §4.8): alternating writes toggle between index and data mode;
// reading the input-status port resets the flip-flop to index mode.
func (v *VGAEngine) attrPortWrite(val byte) {
	if !v.attrFlip {
		v.attrIndex = val & 0x1F
		v.attrFlip = true
		return
	}
	if int(v.attrIndex) < vgaAttrRegCount {
		v.attrRegs[v.attrIndex] = val
	}
	v.attrFlip = false
}

func (v *VGAEngine) attrPortRead() byte {
	if int(v.attrIndex) < vgaAttrRegCount {
		return v.attrRegs[v.attrIndex]
	}
	return 0
}

func (v *VGAEngine) resetAttrFlip() { v.attrFlip = false }

func (v *VGAEngine) dacPortOut(port uint16, val byte) {
	switch port {
	case vgaPortDACMask:
		v.dacMask = val
	case vgaPortDACWIndex:
		v.dacWriteIndex = val
		v.dacWritePhase = 0
	case vgaPortDACRIndex:
		v.dacReadIndex = val
		v.dacReadPhase = 0
	case vgaPortDACData:
		base := int(v.dacWriteIndex) * 3
		v.palette[base+int(v.dacWritePhase)] = val & 0x3F
		v.dacWritePhase++
		if v.dacWritePhase == 3 {
			v.dacWritePhase = 0
			v.dacWriteIndex++
		}
	}
}

func (v *VGAEngine) dacPortIn(port uint16) byte {
	switch port {
	case vgaPortDACMask:
		return v.dacMask
	case vgaPortDACData:
		base := int(v.dacReadIndex) * 3
		val := v.palette[base+int(v.dacReadPhase)]
		v.dacReadPhase++
		if v.dacReadPhase == 3 {
			v.dacReadPhase = 0
			v.dacReadIndex++
		}
		return val
	default:
		return 0
	}
}

func (v *VGAEngine) PortIn(port uint16) byte {
	switch port {
	case vgaPortCRTCIndex, 0x3B4:
		return v.crtcPortIn(false)
	case vgaPortCRTCData, 0x3B5:
		return v.crtcPortIn(true)
	case vgaPortSeqIndex:
		return v.seqPortIn(false)
	case vgaPortSeqData:
		return v.seqPortIn(true)
	case vgaPortGCIndex:
		return v.gcPortIn(false)
	case vgaPortGCData:
		return v.gcPortIn(true)
	case vgaPortAttr:
		return v.attrPortRead()
	case vgaPortDACMask, vgaPortDACData:
		return v.dacPortIn(port)
	case vgaPortDACRIndex:
		return v.dacReadIndex
	case vgaPortDACWIndex:
		return v.dacWriteIndex
	case vgaPortCGAMode:
		return v.cgaMode
	case vgaPortCGAPal:
		return v.cgaPal
	case vgaPortInputStat, 0x3BA:
		v.resetAttrFlip()
		return v.timing.statusByte()
	default:
		return 0xFF
	}
}

func (v *VGAEngine) PortOut(port uint16, val byte) {
	switch port {
	case vgaPortCRTCIndex, 0x3B4:
		v.crtcPortOut(false, val)
	case vgaPortCRTCData, 0x3B5:
		v.crtcPortOut(true, val)
	case vgaPortSeqIndex:
		v.seqPortOut(false, val)
	case vgaPortSeqData:
		v.seqPortOut(true, val)
	case vgaPortGCIndex:
		v.gcPortOut(false, val)
	case vgaPortGCData:
		v.gcPortOut(true, val)
	case vgaPortAttr:
		v.attrPortWrite(val)
	case vgaPortDACMask, vgaPortDACWIndex, vgaPortDACRIndex, vgaPortDACData:
		v.dacPortOut(port, val)
	case vgaPortCGAMode:
		v.cgaMode = val
	case vgaPortCGAPal:
		v.cgaPal = val
	}
}
