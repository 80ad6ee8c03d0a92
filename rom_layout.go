// rom_layout.go - BIOS/option-ROM/BASIC placement into the 1 MiB address
// space before reset (spec.md §6)
//
// Grounded on the donor engine's media_loader.go/file_io.go idiom of
// loading an opaque byte blob and placing it by size; BIOS and option-ROM
// binaries themselves are out of scope (spec.md §1) and arrive as bytes
// from the caller.
//
// License: GPLv3 or later

package main

import (
	"fmt"
	"os"
)

const (
	romVideoBIOSBase  = 0xC0000
	romOptionROMBase  = 0xD8000
	romOptionROMSize  = 8 * 1024
	romBasicBase      = 0xF6000
	romBasicMaxBIOS   = 8 * 1024
	bdaEquipmentList  = 0x410 // 0040:0010
	bdaHardDiskCount  = 0x475 // 0040:0075
)

// LoadBIOS places data so its last byte lands at physical 0xFFFFF; the
// blob's size determines where it starts (spec.md §6).
func LoadBIOS(mem *MemoryBus, data []byte) {
	if len(data) == 0 {
		return
	}
	base := uint32(0x100000 - len(data))
	mem.LoadImage(base, data)
}

// LoadBasic places ROM BASIC at 0xF6000, only meaningful when the BIOS
// image loaded alongside it is small enough to leave that region free
// (spec.md §6: "when BIOS is <=8 KiB").
func LoadBasic(mem *MemoryBus, data []byte, biosSize int) {
	if len(data) == 0 || biosSize > romBasicMaxBIOS {
		return
	}
	mem.LoadImage(romBasicBase, data)
}

// LoadVideoBIOS places the video option ROM at 0xC0000.
func LoadVideoBIOS(mem *MemoryBus, data []byte) {
	if len(data) == 0 {
		return
	}
	mem.LoadImage(romVideoBIOSBase, data)
}

// biosEquipmentWord is a plausible default BDA equipment-list value: bit
// 0 set (boot floppy present), bits 6:7 clear (one floppy drive).
const biosEquipmentWord = 0x0021

// BuildOptionROM synthesizes the 8 KiB option ROM at 0xD8000: signature
// 55 AA, size byte (16, i.e. 8 KiB in 512-byte units), a stub that writes
// the BDA equipment list and hard-disk count, a far return, and a final
// checksum byte making the whole image's byte sum a multiple of 256 so
// the BIOS option-ROM scan accepts it (spec.md §6).
func BuildOptionROM(hardDiskCount byte) []byte {
	rom := make([]byte, romOptionROMSize)
	rom[0] = 0x55
	rom[1] = 0xAA
	rom[2] = 0x10 // size in 512-byte blocks: 8192/512

	stub := []byte{
		0x06,                   // PUSH ES
		0xB8, 0x40, 0x00,       // MOV AX, 0x0040
		0x8E, 0xC0,             // MOV ES, AX
		0x26, 0xC7, 0x06, 0x10, 0x00, byte(biosEquipmentWord), byte(biosEquipmentWord >> 8), // MOV word [ES:0x10], equip
		0x26, 0xC6, 0x06, 0x75, 0x00, hardDiskCount, // MOV byte [ES:0x75], count
		0x07, // POP ES
		0xCB, // RETF
	}
	copy(rom[3:], stub)

	var sum byte
	for i := 0; i < romOptionROMSize-1; i++ {
		sum += rom[i]
	}
	rom[romOptionROMSize-1] = byte(0x100 - int(sum)&0xFF)
	return rom
}

// LoadOptionROM builds and places the synthesized option ROM.
func LoadOptionROM(mem *MemoryBus, hardDiskCount byte) {
	mem.LoadImage(romOptionROMBase, BuildOptionROM(hardDiskCount))
}

// readROM reads a ROM image file whole. BIOS/BASIC/video-BIOS binaries
// are themselves out of scope (spec.md §1); this just gets their bytes
// off disk for LoadBIOS/LoadBasic/LoadVideoBIOS to place.
func readROM(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rom: reading %s: %w", path, err)
	}
	return data, nil
}
