// cpu_x86_runner.go - cycle-budgeted slice execution (spec.md §5 "Scheduler
// loop")
//
// The outer Machine never calls Step() in a raw loop; it calls RunSlice
// once per scheduler tick with a budget capped at
// min(nominal slice, cycles until the next PIT-driven IRQ0). RunSlice
// fast-forwards a halted, non-interrupt-pending CPU straight to the end
// of the budget instead of spinning Step() one cycle at a time, since a
// halted core with IF clear or no pending IRQ cannot do anything else
// until the next external event.
//
// License: GPLv3 or later

package main

// RunSlice executes instructions until maxCycles have elapsed, the CPU
// stops running, or preempt becomes true between instructions (never
// mid-instruction — preempt is only consulted at an instruction
// boundary, spec.md §5 ordering guarantee 1). It returns the number of
// cycles actually retired, which the caller uses to tick the PIT/PIC/
// DMA/video timing accumulators by the same amount.
func (c *CPU) RunSlice(maxCycles int, preempt *bool) int {
	spent := 0
	for spent < maxCycles {
		if preempt != nil && *preempt {
			break
		}
		if !c.running {
			break
		}
		if c.Halted && !c.irqPending {
			remaining := maxCycles - spent
			c.Cycles += uint64(remaining)
			spent = maxCycles
			break
		}
		spent += c.Step()
	}
	return spent
}
