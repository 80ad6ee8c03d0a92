// machine.go - top-level wiring and the single-threaded cooperative
// scheduler loop (spec.md §5 "Concurrency & resource model")
//
// Grounded on the donor engine's main.go construction order
// (NewSystemBus -> peripherals -> CPU -> frontend -> start) and
// coprocessor_manager.go's goroutine-per-worker lifecycle; uses
// golang.org/x/sync/errgroup (the engine's own indirect dependency,
// pulled in by ebiten, promoted here to a direct one) to supervise the
// emulator loop goroutine and its shutdown instead of a hand-rolled
// WaitGroup/channel pair.
//
// License: GPLv3 or later

package main

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// nominalSliceCycles is the un-capped scheduler slice budget; the
// PIT-driven cap (PIT.CyclesUntilNextIRQ0) is applied on top of it every
// iteration (spec.md §5 ordering guarantee 3).
const nominalSliceCycles = 4096

// Machine owns every chip and runs the scheduler loop described in
// spec.md §5: one thread alternates CPU slices with peripheral ticks;
// nothing else mutates chip state except through the audio-event and
// input queues.
type Machine struct {
	mem  *MemoryBus
	ports *PortBus
	cpu  *CPU

	pic   *pic8259
	pit   *PIT
	ppi   *PPI
	dma   *DMA
	cmos  *CMOS
	mouse *serialMouse
	vga   *VGAEngine

	disks *DiskController
	bios  *BIOSDispatch

	audio *AudioEventQueue
	video VideoOutput

	preempt bool
	running bool
}

// NewMachine constructs and wires every component (spec.md §3 module
// table, §5 ordering guarantees). video may be nil for a headless run
// with no frame output.
func NewMachine(cfg Config, video VideoOutput) (*Machine, error) {
	m := &Machine{
		mem:   NewMemoryBus(),
		ports: NewPortBus(),
		pic:   newPIC(),
		pit:   newPIT(),
		ppi:   newPPI(),
		dma:   newDMA(),
		cmos:  newCMOS(),
		mouse: newSerialMouse(),
		disks: newDiskController(),
		audio: newAudioEventQueue(),
		video: video,
	}
	m.vga = newVGAEngine(m.mem)
	m.mem.AttachVGA(m.vga)

	m.cpu = NewCPU(m, cfg.Variant)
	m.bios = NewBIOSDispatch(m.mem, m.vga, m.disks)
	m.cpu.SetInterruptHook(m.bios)

	m.wirePorts()
	m.wireCallbacks()

	if err := m.loadROMs(cfg); err != nil {
		return nil, err
	}
	if err := m.insertDisks(cfg); err != nil {
		return nil, err
	}

	m.cpu.Reset()
	m.running = true

	if m.video != nil {
		w, h := m.vga.FrameSize()
		_ = m.video.SetDisplayConfig(DisplayConfig{
			Width: w, Height: h, Scale: cfg.Scale,
			RefreshRate: 70, PixelFormat: PixelFormatRGBA,
		})
	}
	return m, nil
}

// Read/Write/In/Out implement the Bus interface the CPU core expects
// (cpu_x86.go); Machine is its own bus so BIOS dispatch and debug
// snapshots can reach memory/ports through one receiver.
func (m *Machine) Read(addr uint32) byte        { return m.mem.Read(addr) }
func (m *Machine) Write(addr uint32, v byte)    { m.mem.Write(addr, v) }
func (m *Machine) In(port uint16) byte          { return m.ports.In(port) }
func (m *Machine) Out(port uint16, v byte)      { m.ports.Out(port, v) }

func (m *Machine) wirePorts() {
	m.ports.Map(portDMA1Base, portDMA1Count, m.dma)
	m.ports.Map(portDMAPageBase, portDMAPageCount, m.dma)
	m.ports.Map(portPICBase, portPICCount, m.pic)
	m.ports.Map(portPITBase, portPITCount, m.pit)
	m.ports.Map(portPPIBase, portPPICount, m.ppi)
	m.ports.Map(portCMOSBase, portCMOSCount, m.cmos)
	m.ports.Map(portMouseBase, portMouseCount, m.mouse)
	m.ports.Map(portVGABase, portVGACount, m.vga)
	m.ports.Map(portCGABase, portCGACount, m.vga)
	m.ports.Map(portMDABase, portMDACount, m.vga)
}

func (m *Machine) wireCallbacks() {
	// PIT channel 0 terminal count raises IRQ0 (spec.md §4.3/§5).
	m.pit.SetChannel0IRQ(func() { m.pic.RequestIRQ(0) })

	// PIT channel 2's rising edge drives the speaker and, opportunistically,
	// the DMA channel-1 audio path (spec.md §4.5's "channel 1 used by audio").
	m.pit.SetChannel2Edge(func() {
		m.ppi.SetChannel2Output(m.pit.Channel2Output())
		m.audio.Push(0, audioEventSpeakerToggle, 0)
		if b, ok := m.dma.NextAudioByte(m.mem); ok {
			m.audio.Push(0, audioEventDMASample, b)
		}
	})

	// PPI port B bit 0 (speaker gate) gates PIT channel 2's own gate input.
	m.ppi.SetSpeakerGateHook(func(level bool) { m.pit.SetGate(2, level) })

	// §4.2/§4.4 resolution (documented in DESIGN.md): IRQ1, not IRQ9 (this
	// system has no cascaded second 8259), latches the next scancode.
	m.pic.OnService(1, m.ppi.LatchNextScancode)

	// IRQ4 on every mouse byte delivered to its RX FIFO (spec.md §4.6).
	m.mouse.SetIRQ4Hook(func() { m.pic.RequestIRQ(4) })
}

func (m *Machine) loadROMs(cfg Config) error {
	bios, err := readROM(cfg.BIOSPath)
	if err != nil {
		return fmt.Errorf("machine: loading bios: %w", err)
	}
	LoadBIOS(m.mem, bios)

	if cfg.BasicPath != "" {
		basic, err := readROM(cfg.BasicPath)
		if err != nil {
			return fmt.Errorf("machine: loading basic: %w", err)
		}
		LoadBasic(m.mem, basic, len(bios))
	}
	if cfg.VideoBIOSPath != "" {
		vbios, err := readROM(cfg.VideoBIOSPath)
		if err != nil {
			return fmt.Errorf("machine: loading video bios: %w", err)
		}
		LoadVideoBIOS(m.mem, vbios)
	}
	LoadOptionROM(m.mem, 0)
	return nil
}

func (m *Machine) insertDisks(cfg Config) error {
	slot := 0
	for _, path := range []string{cfg.Floppy0, cfg.Floppy1} {
		if path == "" {
			slot++
			continue
		}
		img, err := OpenDiskImage(path, false)
		if err != nil {
			return fmt.Errorf("machine: inserting floppy %s: %w", path, err)
		}
		m.disks.InsertFloppy(slot, img)
		slot++
	}
	if cfg.HardDisk != "" {
		img, err := OpenDiskImage(cfg.HardDisk, true)
		if err != nil {
			return fmt.Errorf("machine: inserting hard disk %s: %w", cfg.HardDisk, err)
		}
		m.disks.InsertHardDisk(0, img)
	}
	return nil
}

// Run is the scheduler loop proper (spec.md §5): bounded CPU slices
// capped by the PIT's next-IRQ0 deadline, then peripheral ticks by the
// cycles actually retired, until ctx is canceled or SetRunning(false).
func (m *Machine) Run(ctx context.Context) error {
	for m.cpu.Running() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if vector, ok := m.pic.NextInterrupt(); ok {
			m.cpu.SetIRQ(vector)
		}

		budget := nominalSliceCycles
		if cap := m.pit.CyclesUntilNextIRQ0(); cap < budget {
			budget = cap
		}
		if budget <= 0 {
			budget = 1
		}

		spent := m.cpu.RunSlice(budget, &m.preempt)
		m.preempt = false

		m.pit.Tick(spent)
		if flipped := m.vga.timing.Advance(spent); flipped && m.video != nil {
			m.drainInput()
			if w, h := m.vga.FrameSize(); w != m.video.GetDisplayConfig().Width || h != m.video.GetDisplayConfig().Height {
				cfg := m.video.GetDisplayConfig()
				cfg.Width, cfg.Height = w, h
				_ = m.video.SetDisplayConfig(cfg)
			}
			_ = m.video.UpdateFrame(m.vga.RenderRGBA())
		}
	}
	return nil
}

// drainInput replays queued host keyboard/mouse events into the PPI
// scancode FIFO and serial mouse (spec.md §5 "host input queue").
func (m *Machine) drainInput() {
	if m.video == nil {
		return
	}
	for _, e := range m.video.Input().DrainAll() {
		switch e.kind {
		case inputEventKeyDown, inputEventKeyUp:
			m.ppi.PushScancode(e.scancode)
		case inputEventMouseMove:
			m.mouse.PostMovement(e.leftDown, e.rightDown, e.dx, e.dy)
		}
	}
}

// RunSupervised starts Run in a goroutine supervised by an errgroup so
// a caller (main.go) blocking on a windowed VideoOutput's own event loop
// can still observe and propagate a scheduler error or cancellation.
func (m *Machine) RunSupervised(ctx context.Context) (*errgroup.Group, context.Context, context.CancelFunc) {
	g, gctx := errgroup.WithContext(ctx)
	gctx, cancel := context.WithCancel(gctx)
	g.Go(func() error {
		return m.Run(gctx)
	})
	return g, gctx, cancel
}

func (m *Machine) Stop() {
	m.cpu.SetRunning(false)
}
