// i8253.go - programmable interval timer (spec.md §4.3)
//
// cpuClockHz is the nominal 8086 clock the PIT's cycle-to-tick
// conversion divides against. spec.md names the PIT's own 1.193182 MHz
// crystal explicitly but leaves the CPU-side clock unstated; this uses
// the historical IBM PC/XT system clock of 4.77 MHz, the number every
// contemporary BIOS's delay loops were tuned against.
//
// License: GPLv3 or later

package main

const (
	pitHz      = 1193182
	cpuClockHz = 4772727
)

// pitChannel is one of the three independently-clocked 8253 counters
// (spec.md §4.3).
type pitChannel struct {
	mode   byte // 0-5; only 0, 2, 3 are modeled, the rest are stubs
	rwMode byte // 0=latch, 1=lo-only, 2=hi-only, 3=lo-then-hi
	bcd    bool

	reload  uint16
	counter uint16
	started bool // true once a reload value has been fully written

	loNextWrite bool // lo-then-hi write toggle
	loNextRead  bool // lo-then-hi read toggle

	latched     bool
	latchValue  uint16
	loadLoHalf  uint16 // holds the lo byte between the two halves of a lo-then-hi load
	haveLoHalf  bool

	outputHigh bool
	fired      bool // mode 0: true once the terminal-count edge has occurred
	gate       bool

	onRisingEdge func()
}

// PIT is the three-channel i8253 wired at ports 0x40-0x43 (spec.md §4.3).
type PIT struct {
	channels [3]pitChannel
	residual uint64 // cpu-cycle*PIT_HZ remainder carried across Tick calls
}

func newPIT() *PIT {
	p := &PIT{}
	for i := range p.channels {
		p.channels[i].gate = true
	}
	return p
}

// SetChannel0IRQ wires the callback fired on channel 0's rising output
// edge (the PIC's RequestIRQ(0), via machine.go).
func (p *PIT) SetChannel0IRQ(fn func()) { p.channels[0].onRisingEdge = fn }

// SetChannel2Edge wires the callback fired on channel 2's rising output
// edge (the speaker/audio event bridge, via machine.go).
func (p *PIT) SetChannel2Edge(fn func()) { p.channels[2].onRisingEdge = fn }

// SetGate sets channel ch's gate input (the PPI's speaker-gate bit for
// channel 2; channels 0 and 1 are always gated on in this system).
func (p *PIT) SetGate(ch int, level bool) { p.channels[ch].gate = level }

// Channel2Output reports channel 2's current output level, for the
// PPI's port-C readback of the PIT speaker channel (spec.md §4.4).
func (p *PIT) Channel2Output() bool { return p.channels[2].outputHigh }

func (p *PIT) PortIn(port uint16) byte {
	ch := &p.channels[port&3]
	if port&3 == 3 {
		return 0 // reading the control/mode port returns nothing meaningful
	}
	var v uint16
	if ch.latched {
		v = ch.latchValue
	} else {
		v = ch.counter
	}
	switch ch.rwMode {
	case 1:
		ch.latched = false
		return byte(v)
	case 2:
		ch.latched = false
		return byte(v >> 8)
	default: // lo-then-hi (and latch command mode, which always reads both halves)
		if !ch.loNextRead {
			ch.loNextRead = true
			return byte(v)
		}
		ch.loNextRead = false
		ch.latched = false
		return byte(v >> 8)
	}
}

func (p *PIT) PortOut(port uint16, v byte) {
	if port&3 == 3 {
		p.controlWrite(v)
		return
	}
	ch := &p.channels[port&3]
	switch ch.rwMode {
	case 1:
		ch.reload = uint16(v)
		p.load(ch)
	case 2:
		ch.reload = uint16(v) << 8
		p.load(ch)
	default:
		if !ch.loNextWrite {
			ch.loadLoHalf = uint16(v)
			ch.loNextWrite = true
		} else {
			ch.reload = ch.loadLoHalf | uint16(v)<<8
			ch.loNextWrite = false
			p.load(ch)
		}
	}
}

func (p *PIT) load(ch *pitChannel) {
	ch.counter = ch.reload
	if ch.counter == 0 {
		ch.counter = 0x10000 - 1 // 0 reload means "65536", tracked as the max uint16 value
	}
	ch.started = true
	ch.fired = false
}

func (p *PIT) controlWrite(v byte) {
	sel := v >> 6 & 3
	if sel == 3 {
		return // read-back command, not modeled
	}
	ch := &p.channels[sel]
	rw := v >> 4 & 3
	if rw == 0 { // counter-latch command: snapshot, don't touch mode
		ch.latched = true
		ch.latchValue = ch.counter
		ch.loNextRead = false
		return
	}
	ch.rwMode = rw
	ch.mode = v >> 1 & 7
	ch.bcd = v&1 != 0
	ch.loNextWrite = false
	ch.started = false
	ch.fired = false
	ch.outputHigh = ch.mode != 0 // modes other than 0 idle with output high until loaded
}

// Tick advances every channel by the PIT ticks equivalent to cpuCycles
// 8086 clock cycles, using the residual-carry conversion spec.md §4.3
// "Clock derivation" requires.
func (p *PIT) Tick(cpuCycles int) {
	p.residual += uint64(cpuCycles) * pitHz
	ticks := p.residual / cpuClockHz
	p.residual %= cpuClockHz
	for i := uint64(0); i < ticks; i++ {
		p.stepOneTick()
	}
}

func (p *PIT) stepOneTick() {
	for i := range p.channels {
		p.stepChannel(&p.channels[i])
	}
}

func (p *PIT) stepChannel(ch *pitChannel) {
	if !ch.started || !ch.gate {
		return
	}
	switch ch.mode {
	case 0: // interrupt on terminal count
		if ch.fired {
			ch.counter--
			return
		}
		ch.counter--
		if ch.counter == 0 {
			ch.fired = true
			wasHigh := ch.outputHigh
			ch.outputHigh = true
			if !wasHigh && ch.onRisingEdge != nil {
				ch.onRisingEdge()
			}
		}
	case 2: // rate generator
		ch.counter--
		if ch.counter == 0 {
			ch.counter = ch.reload
			if ch.counter == 0 {
				ch.counter = 0xFFFF
			}
			if ch.onRisingEdge != nil {
				ch.onRisingEdge()
			}
		}
	case 3: // square wave
		if ch.counter <= 2 {
			ch.counter = ch.reload
			if ch.counter == 0 {
				ch.counter = 0xFFFF
			}
			wasHigh := ch.outputHigh
			ch.outputHigh = !ch.outputHigh
			if !wasHigh && ch.outputHigh && ch.onRisingEdge != nil {
				ch.onRisingEdge()
			}
		} else {
			ch.counter -= 2
		}
	default:
		// modes 1, 4, 5: stubs (spec.md §4.3)
	}
}

// CyclesUntilNextIRQ0 estimates, in CPU cycles, how long until channel
// 0's next counter event (terminal count in modes 0 and 2, the next
// output toggle in mode 3, which may be a falling edge that raises no
// IRQ0), for the scheduler's slice cap (spec.md §4.3 "Query", §5).
func (p *PIT) CyclesUntilNextIRQ0() int {
	ch := &p.channels[0]
	if !ch.started || !ch.gate {
		return 1 << 20
	}
	var ticksRemaining uint64
	switch ch.mode {
	case 0:
		if ch.fired {
			return 1 << 20
		}
		ticksRemaining = uint64(ch.counter)
	case 2:
		ticksRemaining = uint64(ch.counter)
	case 3:
		ticksRemaining = uint64(ch.counter) / 2
	default:
		return 1 << 20
	}
	if ticksRemaining == 0 {
		ticksRemaining = 1
	}
	cycles := ticksRemaining * cpuClockHz / pitHz
	if cycles == 0 {
		cycles = 1
	}
	if cycles > 1<<20 {
		cycles = 1 << 20
	}
	return int(cycles)
}
