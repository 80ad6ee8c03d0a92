// bios_dispatch.go - default InterruptHook: video mode-set, disk BIOS,
// bootstrap loader, DOS trace (spec.md §4.11)
//
// Grounded on the donor engine's "handler per address range, explicit
// fallthrough" idiom (machine_bus.go's MapIO callbacks, the coprocessor
// dispatch table) applied to software-interrupt interception instead of
// memory-mapped I/O.
//
// License: GPLv3 or later

package main

import (
	"fmt"
	"os"
)

const bdaHDDStatusMirror = 0x474

// BIOSDispatch is the default InterruptHook installed on the CPU
// (spec.md §4.11): it intercepts a fixed set of vectors and either
// services them itself or falls through to the guest's own handler via
// the real-mode IVT.
type BIOSDispatch struct {
	mem   *MemoryBus
	vga   *VGAEngine
	disks *DiskController

	lastStatus [2]byte // INT 13h AH=01h per-floppy last-operation status
}

func NewBIOSDispatch(mem *MemoryBus, vga *VGAEngine, disks *DiskController) *BIOSDispatch {
	return &BIOSDispatch{mem: mem, vga: vga, disks: disks}
}

func (h *BIOSDispatch) Handle(cpu *CPU, vector byte) bool {
	switch vector {
	case 0x10:
		return h.int10(cpu)
	case 0x13, 0xFD:
		return h.int13(cpu)
	case 0x19:
		return h.int19(cpu)
	case 0x21:
		return h.int21(cpu)
	default:
		return false
	}
}

// int10 handles AH=00h mode-set then falls through so guest video BIOS
// code still runs (spec.md §4.11).
func (h *BIOSDispatch) int10(cpu *CPU) bool {
	if cpu.AH() == 0x00 && h.vga != nil {
		h.vga.SetMode(cpu.AL())
	}
	return false
}

// int13 emulates the disk BIOS service entirely: reset, last-status,
// read/write sectors, get-parameters (spec.md §4.11).
func (h *BIOSDispatch) int13(cpu *CPU) bool {
	drive := cpu.DL()
	img := h.disks.driveFor(drive)

	switch cpu.AH() {
	case 0x00:
		cpu.setFlag(flagCF, false)
		cpu.SetAH(0x00)
	case 0x01:
		if drive < 2 {
			cpu.SetAL(h.lastStatus[drive])
		} else {
			cpu.SetAL(0x00)
		}
	case 0x02, 0x03:
		h.rwSectors(cpu, img, drive)
	case 0x08:
		h.getParameters(cpu, img, drive)
	default:
		cpu.setFlag(flagCF, true)
		cpu.SetAH(0x01)
	}

	if drive < 2 {
		h.lastStatus[drive] = cpu.AH()
	}
	if drive >= 0x80 {
		h.mem.Write(bdaHDDStatusMirror, cpu.AH())
	}
	return true
}

func (h *BIOSDispatch) rwSectors(cpu *CPU, img *DiskImage, drive byte) {
	if img == nil {
		cpu.setFlag(flagCF, true)
		cpu.SetAH(0x01) // invalid function / no such drive
		return
	}
	count := int(cpu.AL())
	if count == 0 {
		count = 1
	}
	cyl := int(cpu.CH()) | int(cpu.CL()&0xC0)<<2
	sect := int(cpu.CL() & 0x3F)
	head := int(cpu.DH())

	buf := make([]byte, count*bytesPerSector)
	esBase := linear(cpu.getSeg(segES), cpu.BX)

	var err error
	if cpu.AH() == 0x02 {
		err = img.ReadSectorsCHS(cyl, head, sect, count, buf)
		if err == nil {
			for i, b := range buf {
				h.mem.Write(esBase+uint32(i), b)
			}
		}
	} else {
		for i := range buf {
			buf[i] = h.mem.Read(esBase + uint32(i))
		}
		err = img.WriteSectorsCHS(cyl, head, sect, count, buf)
	}

	if err != nil {
		cpu.setFlag(flagCF, true)
		cpu.SetAH(0x04) // sector not found
		return
	}
	cpu.setFlag(flagCF, false)
	cpu.SetAH(0x00)
}

func (h *BIOSDispatch) getParameters(cpu *CPU, img *DiskImage, drive byte) {
	if img == nil {
		cpu.setFlag(flagCF, true)
		cpu.SetAH(0x01)
		return
	}
	geo := img.geometry
	maxCyl := geo.cylinders - 1
	cpu.SetCH(byte(maxCyl & 0xFF))
	cpu.SetCL(byte(geo.sectors&0x3F) | byte((maxCyl>>8)&0x03)<<6)
	cpu.SetDH(byte(geo.heads - 1))

	if drive >= 0x80 {
		cpu.SetDL(byte(len(h.disks.hard)))
	} else {
		cpu.SetDL(byte(len(h.disks.floppy)))
	}
	cpu.setFlag(flagCF, false)
	cpu.SetAH(0x00)
}

// int19 is the bootstrap loader: read sector 0/0/1 of the first inserted
// disk to 0x07C0:0000 and jump there, or fall back to the ROM-BASIC stub
// at F600:0000 (spec.md §4.11).
func (h *BIOSDispatch) int19(cpu *CPU) bool {
	_, img, ok := h.disks.FirstBootable()
	if !ok {
		cpu.segs[segCS] = 0xF600
		cpu.IP = 0x0000
		return true
	}

	buf := make([]byte, bytesPerSector)
	if err := img.ReadSectorsCHS(0, 0, 1, 1, buf); err != nil {
		cpu.segs[segCS] = 0xF600
		cpu.IP = 0x0000
		return true
	}

	base := linear(0x07C0, 0)
	for i, b := range buf {
		h.mem.Write(base+uint32(i), b)
	}
	cpu.segs[segCS] = 0x07C0
	cpu.IP = 0x0000
	return true
}

// int21 never emulates DOS; it only logs the call and always falls
// through to the guest's own handler (spec.md §4.11).
func (h *BIOSDispatch) int21(cpu *CPU) bool {
	fmt.Fprintf(os.Stderr, "dos trace: int21 ah=%02x al=%02x\n", cpu.AH(), cpu.AL())
	return false
}
