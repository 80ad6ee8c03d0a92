// vga_constants.go - VGA port pairs and register-index constants
// (spec.md §4.8)
//
// License: GPLv3 or later

package main

// Real PC port pairs (spec.md §4.8 port-pair table), as opposed to the
// memory-mapped pseudo-ports an earlier single-chip rendition of this
// engine used.
const (
	vgaPortCRTCIndex = 0x3D4
	vgaPortCRTCData  = 0x3D5
	vgaPortSeqIndex  = 0x3C4
	vgaPortSeqData   = 0x3C5
	vgaPortGCIndex   = 0x3CE
	vgaPortGCData    = 0x3CF
	vgaPortAttr      = 0x3C0
	vgaPortDACMask   = 0x3C6
	vgaPortDACRIndex = 0x3C7
	vgaPortDACWIndex = 0x3C8
	vgaPortDACData   = 0x3C9
	vgaPortCGAMode   = 0x3D8
	vgaPortCGAPal    = 0x3D9
	vgaPortInputStat = 0x3DA // also readable as 0x3BA (MDA alias)
)

// Sequencer register indices.
const (
	vgaSeqReset    = 0x00
	vgaSeqClkMode  = 0x01
	vgaSeqMapMask  = 0x02
	vgaSeqCharMap  = 0x03
	vgaSeqMemMode  = 0x04
	vgaSeqRegCount = 5
)

const vgaSeqMemModeChain4 = 1 << 3

// CRTC register indices.
const (
	vgaCRTCHTotal      = 0x00
	vgaCRTCHDisplay    = 0x01
	vgaCRTCHBlankStart = 0x02
	vgaCRTCHBlankEnd   = 0x03
	vgaCRTCHRetraceSt  = 0x04
	vgaCRTCHRetraceEnd = 0x05
	vgaCRTCVTotal      = 0x06
	vgaCRTCOverflow    = 0x07
	vgaCRTCPresetRow   = 0x08
	vgaCRTCMaxScan     = 0x09
	vgaCRTCCursorStart = 0x0A
	vgaCRTCCursorEnd   = 0x0B
	vgaCRTCStartHi     = 0x0C
	vgaCRTCStartLo     = 0x0D
	vgaCRTCCursorHi    = 0x0E
	vgaCRTCCursorLo    = 0x0F
	vgaCRTCVRetraceSt  = 0x10
	vgaCRTCVRetraceEnd = 0x11
	vgaCRTCVDisplay    = 0x12
	vgaCRTCOffset      = 0x13
	vgaCRTCUnderline   = 0x14
	vgaCRTCVBlankStart = 0x15
	vgaCRTCVBlankEnd   = 0x16
	vgaCRTCModeCtrl    = 0x17
	vgaCRTCLineCompare = 0x18
	vgaCRTCRegCount    = 25
)

// Graphics Controller register indices (spec.md §4.8 row 3 /
// §4.9's GC[n] notation).
const (
	vgaGCSetReset    = 0x00
	vgaGCEnableSR    = 0x01
	vgaGCColorCmp    = 0x02
	vgaGCDataRotate  = 0x03
	vgaGCReadMap     = 0x04
	vgaGCMode        = 0x05
	vgaGCMisc        = 0x06
	vgaGCColorDont   = 0x07
	vgaGCBitMask     = 0x08
	vgaGCRegCount    = 9
	vgaGCModeWriteMk = 0x03
	vgaGCModeReadBit = 1 << 3
)

// Attribute Controller register indices.
const (
	vgaAttrPaletteBase = 0x00
	vgaAttrModeCtrl    = 0x10
	vgaAttrOverscan    = 0x11
	vgaAttrPlaneEnable = 0x12
	vgaAttrHPan        = 0x13
	vgaAttrColorSelect = 0x14
	vgaAttrRegCount    = 21
)

const (
	vgaPlaneCount    = 4
	vgaPlaneSize     = 65536
	vgaPaletteSize   = 256
	vgaTextWindow    = 0xB8000
	vgaTextWindowEnd = 0xBFFFF
)
