// i8255.go - programmable peripheral interface / keyboard latch
// (spec.md §4.4)
//
// License: GPLv3 or later

package main

const scancodeFIFOCapacity = 16

// PPI implements the fixed mode-0 wiring this system uses: Port A input
// (scancode/SW1), Port B output (control), Port C split between SW2 and
// the PIT channel-2 output echo. Ports 0x60-0x63.
type PPI struct {
	portA byte
	portB byte
	sw1   byte
	sw2   byte

	pitCh2Output bool

	fifo     [scancodeFIFOCapacity]byte
	fifoHead int
	fifoTail int
	fifoLen  int

	onSpeakerGate func(level bool)
}

func newPPI() *PPI {
	return &PPI{sw1: 0x2D, sw2: 0x0C}
}

// SetSpeakerGateHook wires the callback invoked whenever Port B bit 0 is
// written (the PIT channel-2 gate, spec.md §4.4/§4.3).
func (p *PPI) SetSpeakerGateHook(fn func(level bool)) { p.onSpeakerGate = fn }

// SetChannel2Output records the PIT channel-2 output line for Port C's
// echo bit.
func (p *PPI) SetChannel2Output(level bool) { p.pitCh2Output = level }

// PushScancode enqueues a raw keyboard scancode behind the small FIFO
// that feeds Port A (spec.md §4.4). Oldest-dropped on overflow.
func (p *PPI) PushScancode(code byte) {
	if p.fifoLen == scancodeFIFOCapacity {
		p.fifoHead = (p.fifoHead + 1) % scancodeFIFOCapacity
		p.fifoLen--
	}
	p.fifo[p.fifoTail] = code
	p.fifoTail = (p.fifoTail + 1) % scancodeFIFOCapacity
	p.fifoLen++
}

// LatchNextScancode pops the next FIFO entry into the Port A register.
// Wired as the PIC's IRQ1-service callback (spec.md §4.4 "on IRQ1
// service the next scancode is latched into the port-A register").
func (p *PPI) LatchNextScancode() {
	if p.fifoLen == 0 {
		return
	}
	p.portA = p.fifo[p.fifoHead]
	p.fifoHead = (p.fifoHead + 1) % scancodeFIFOCapacity
	p.fifoLen--
}

func (p *PPI) PortIn(port uint16) byte {
	switch port & 3 {
	case 0:
		if p.portB&0x80 != 0 {
			return p.sw1
		}
		return p.portA
	case 1:
		return p.portB
	case 2:
		var v byte
		if p.portB&0x04 != 0 {
			v = p.sw2 >> 4 & 0x0F
		} else {
			v = p.sw2 & 0x0F
		}
		if p.pitCh2Output {
			v |= 0x20
		}
		return v
	default:
		return 0xFF
	}
}

func (p *PPI) PortOut(port uint16, v byte) {
	switch port & 3 {
	case 1:
		prevGate := p.portB&0x01 != 0
		p.portB = v
		gate := v&0x01 != 0
		if gate != prevGate && p.onSpeakerGate != nil {
			p.onSpeakerGate(gate)
		}
	case 0, 2:
		// Port A/C are input-only under this system's fixed mode-0
		// configuration; writes are ignored.
	default:
		// Port 0x63 (control word): mode is fixed, nothing to configure.
	}
}
