// registers.go - master port-map reference table (spec.md §6 "Port map
// (summary)")
//
// Grounded on the donor engine's registers.go "centralized I/O register
// address map" idiom: this one file gives a single place a reader (or a
// debugger shell) can go to resolve "what's at this address" without
// reading every chip. Only VGA has its own register-constants file
// (vga_constants.go); the other chips' port ranges are the constants in
// port_bus.go, as the table below shows. Unlike the engine's
// memory-mapped single address space, this system splits into a memory
// map and a port map (spec.md §3); this file covers the port map, since
// vga_constants.go already plays that role for VGA's own ports.
//
// License: GPLv3 or later

package main

// PORT MAP OVERVIEW
//
// Range           Device                          Constants file
// --------------------------------------------------------------------
// 0x000-0x00F     DMA controller, channel regs     port_bus.go
// 0x020-0x021     PIC (8259)                       port_bus.go
// 0x040-0x043     PIT (8253)                       port_bus.go
// 0x060-0x063     PPI (8255) / keyboard             port_bus.go
// 0x070-0x071     CMOS RAM / RTC index-data         port_bus.go
// 0x080-0x08F     DMA page registers                port_bus.go
// 0x388-0x389     Adlib (reserved, unimplemented)   port_bus.go
// 0x3B0-0x3BF     MDA alias (CRTC, input status)    vga_constants.go
// 0x3C0-0x3CF     VGA sequencer/GC/attribute/DAC    vga_constants.go
// 0x3D0-0x3DF     CGA alias (CRTC, mode, status)    vga_constants.go
// 0x3F8-0x3FF     Serial mouse (8250 subset)        port_bus.go

// portRegionName resolves a port number to the owning device's name, for
// debugger-shell display and POST-probe tracing; purely descriptive,
// never consulted by PortBus.In/Out itself.
func portRegionName(port uint16) string {
	switch {
	case port >= portDMA1Base && port < portDMA1Base+portDMA1Count:
		return "DMA"
	case port >= portPICBase && port < portPICBase+portPICCount:
		return "PIC"
	case port >= portPITBase && port < portPITBase+portPITCount:
		return "PIT"
	case port >= portPPIBase && port < portPPIBase+portPPICount:
		return "PPI"
	case port >= portCMOSBase && port < portCMOSBase+portCMOSCount:
		return "CMOS"
	case port >= portDMAPageBase && port < portDMAPageBase+portDMAPageCount:
		return "DMA page"
	case port >= portMDABase && port < portMDABase+portMDACount:
		return "VGA (MDA alias)"
	case port >= portVGABase && port < portVGABase+portVGACount:
		return "VGA"
	case port >= portCGABase && port < portCGABase+portCGACount:
		return "VGA (CGA alias)"
	case port >= portMouseBase && port < portMouseBase+portMouseCount:
		return "Serial mouse"
	default:
		return "unmapped"
	}
}
