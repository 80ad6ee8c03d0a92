// video_render.go - planar VRAM / text framebuffer to RGBA conversion
// (spec.md §4.8, §4.9)
//
// Grounded on the donor engine's video_vga.go renderText/renderGraphics
// pixel-assembly loops (character-cell font blit with CGA/EGA palette
// lookup, plane-interleaved pixel fetch for 4bpp/8bpp graphics modes),
// rewritten against this package's own plane engine and register files
// instead of the donor's single combined VRAM slice.
//
// License: GPLv3 or later

package main

const vgaCharWidth, vgaCharHeight = 8, 16

// cgaPalette16 is the standard 16-color CGA/EGA RGB palette that text
// mode's 4-bit attribute colours index into directly; graphics modes
// resolve their colours through paletteColor and the DAC instead.
var cgaPalette16 = [16][3]byte{
	{0x00, 0x00, 0x00}, {0x00, 0x00, 0xAA}, {0x00, 0xAA, 0x00}, {0x00, 0xAA, 0xAA},
	{0xAA, 0x00, 0x00}, {0xAA, 0x00, 0xAA}, {0xAA, 0x55, 0x00}, {0xAA, 0xAA, 0xAA},
	{0x55, 0x55, 0x55}, {0x55, 0x55, 0xFF}, {0x55, 0xFF, 0x55}, {0x55, 0xFF, 0xFF},
	{0xFF, 0x55, 0x55}, {0xFF, 0x55, 0xFF}, {0xFF, 0xFF, 0x55}, {0xFF, 0xFF, 0xFF},
}

// FrameSize returns the actual pixel dimensions the current mode
// renders at: character-cell multiples for text modes (the modeInfo
// table's width/height fields track the CRT's analog raster, not the
// glyph grid), and the declared mode geometry for graphics modes.
func (v *VGAEngine) FrameSize() (w, h int) {
	if v.text {
		return v.cols * vgaCharWidth, v.rows * vgaCharHeight
	}
	return v.width, v.height
}

// RenderRGBA converts the current framebuffer (text character/attribute
// cells or planar graphics memory) into a tightly packed RGBA byte
// buffer, ready for a VideoOutput.UpdateFrame call.
func (v *VGAEngine) RenderRGBA() []byte {
	if v.text {
		return v.renderText()
	}
	return v.renderGraphics()
}

func (v *VGAEngine) renderText() []byte {
	w, h := v.FrameSize()
	buf := make([]byte, w*h*4)
	cursor := v.cursorPos()

	for row := 0; row < v.rows; row++ {
		for col := 0; col < v.cols; col++ {
			cellOff := uint32((row*v.cols + col) * 2)
			ch := v.mem.Read(vgaTextWindow + cellOff)
			attr := v.mem.Read(vgaTextWindow + cellOff + 1)
			fg := cgaPalette16[attr&0x0F]
			bg := cgaPalette16[attr>>4&0x07]
			blinkCursor := row*v.cols+col == cursor && (v.crtcRegs[vgaCRTCCursorStart]&0x20) == 0

			glyph := fontGlyph(ch)
			for gy := 0; gy < vgaCharHeight; gy++ {
				rowBits := glyph[gy]
				onCursorLine := blinkCursor && gy >= int(v.crtcRegs[vgaCRTCCursorStart]&0x1F) && gy <= int(v.crtcRegs[vgaCRTCCursorEnd]&0x1F)
				for gx := 0; gx < vgaCharWidth; gx++ {
					on := rowBits&(0x80>>uint(gx)) != 0 || onCursorLine
					px := col*vgaCharWidth + gx
					py := row*vgaCharHeight + gy
					c := bg
					if on {
						c = fg
					}
					putPixel(buf, w, px, py, c)
				}
			}
		}
	}
	return buf
}

func fontGlyph(ch byte) []byte {
	off := int(ch) * vgaCharHeight
	if off+vgaCharHeight > len(vgaFont8x16) {
		return vgaFont8x16[:vgaCharHeight]
	}
	return vgaFont8x16[off : off+vgaCharHeight]
}

func (v *VGAEngine) renderGraphics() []byte {
	w, h := v.FrameSize()
	buf := make([]byte, w*h*4)

	chain4 := v.seqRegs[vgaSeqMemMode]&vgaSeqMemModeChain4 != 0

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var idx byte
			if chain4 {
				// Mode 0x13: one byte per pixel, linear within a plane
				// determined by the low 2 bits of x (spec.md §4.9's
				// chain-4 addressing note).
				offset := uint32(y*w+x) / 4
				plane := (y*w + x) & 3
				idx = v.vram[plane][offset]
			} else {
				// 16-color planar modes: one bit per pixel per plane.
				offset := uint32(y*((w+7)/8) + x/8)
				bit := byte(0x80 >> uint(x%8))
				for p := 0; p < vgaPlaneCount; p++ {
					if v.vram[p][offset]&bit != 0 {
						idx |= 1 << uint(p)
					}
				}
			}
			putPixel(buf, w, x, y, v.paletteColor(idx))
		}
	}
	return buf
}

// paletteColor resolves a pixel index through the DAC palette (8-bit
// modes) or through the attribute controller's EGA-style palette
// registers feeding the DAC (16-color modes), per spec.md §4.8.
func (v *VGAEngine) paletteColor(idx byte) [3]byte {
	chain4 := v.seqRegs[vgaSeqMemMode]&vgaSeqMemModeChain4 != 0
	dacIndex := idx
	if !chain4 {
		dacIndex = v.attrRegs[idx&0x0F] & 0x3F
	}
	base := int(dacIndex) * 3
	if base+2 >= len(v.palette) {
		return [3]byte{0, 0, 0}
	}
	return [3]byte{
		scale6to8(v.palette[base]),
		scale6to8(v.palette[base+1]),
		scale6to8(v.palette[base+2]),
	}
}

func scale6to8(v byte) byte {
	return v<<2 | v>>4
}

func putPixel(buf []byte, w, x, y int, c [3]byte) {
	o := (y*w + x) * 4
	if o+3 >= len(buf) {
		return
	}
	buf[o], buf[o+1], buf[o+2], buf[o+3] = c[0], c[1], c[2], 0xFF
}
