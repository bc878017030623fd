// This file is part of Gopherdragon.
//
// Gopherdragon is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopherdragon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopherdragon.  If not, see <https://www.gnu.org/licenses/>.

package debugger

import (
	"github.com/dragon-emu/gopherdragon/debugger/govern"
	"github.com/dragon-emu/gopherdragon/logger"
)

// Breakpoint is a single entry in one of the debugger's collections. The
// address range is inclusive at both ends. For instruction breakpoints
// AddrEnd always equals Addr.
type Breakpoint struct {
	Addr    uint16
	AddrEnd uint16

	// called with the address that matched
	Handler func(addr uint16)

	// entries created by the trap functions carry this flag so that they can
	// be found again for removal and de-duplication. function values cannot
	// be compared in Go so the flag stands in for handler identity
	trap bool
}

// a handler moving the program counter causes the dispatch to run again at
// the new address. the number of rounds is capped
const redispatchLimit = 16

// AddBreakpoint registers handler to run when the instruction at addr is
// about to be executed. The newest registration at an address runs first. A
// nil handler is refused and logged.
func (dbg *Debugger) AddBreakpoint(addr uint16, handler func(addr uint16)) {
	if handler == nil {
		logger.Logf(logger.Allow, "debugger", "refusing breakpoint with no handler at %04x", addr)
		return
	}
	dbg.addBreakpoint(&Breakpoint{Addr: addr, AddrEnd: addr, Handler: handler})
}

// AddTrapBreakpoint registers a breakpoint at addr that halts the machine
// with a trap signal. Adding a trap that already exists does nothing.
func (dbg *Debugger) AddTrapBreakpoint(addr uint16) {
	dbg.crit.Lock()
	for _, bp := range dbg.breakpoints {
		if bp.trap && bp.Addr == addr {
			dbg.crit.Unlock()
			return
		}
	}
	dbg.crit.Unlock()

	dbg.addBreakpoint(&Breakpoint{Addr: addr, AddrEnd: addr, Handler: dbg.trapHandler, trap: true})
}

// RemoveBreakpoint removes the most recent breakpoint added at addr with
// AddBreakpoint(). Removing a breakpoint that does not exist does nothing.
func (dbg *Debugger) RemoveBreakpoint(addr uint16) {
	dbg.removeBreakpoint(addr, false)
}

// RemoveTrapBreakpoint removes the trap breakpoint at addr. Removing a trap
// that does not exist does nothing.
func (dbg *Debugger) RemoveTrapBreakpoint(addr uint16) {
	dbg.removeBreakpoint(addr, true)
}

func (dbg *Debugger) removeBreakpoint(addr uint16, trap bool) {
	dbg.crit.Lock()
	defer dbg.crit.Unlock()

	for i, bp := range dbg.breakpoints {
		if bp.trap == trap && bp.Addr == addr {
			dbg.breakpoints = append(dbg.breakpoints[:i], dbg.breakpoints[i+1:]...)
			break
		}
	}

	if len(dbg.breakpoints) == 0 {
		dbg.mc.SetInstructionHook(nil)
	}
}

func (dbg *Debugger) addBreakpoint(bp *Breakpoint) {
	dbg.crit.Lock()
	defer dbg.crit.Unlock()

	// newest first
	dbg.breakpoints = append([]*Breakpoint{bp}, dbg.breakpoints...)

	if len(dbg.breakpoints) == 1 {
		dbg.mc.SetInstructionHook(dbg.onInstruction)
	}
}

// trapHandler is the shared handler behind every trap breakpoint and trap
// watchpoint.
func (dbg *Debugger) trapHandler(_ uint16) {
	dbg.Halt(SignalTrap)
}

// onInstruction is the hook installed on the CPU whenever at least one
// breakpoint exists. The true return value tells the CPU that the machine
// has halted and the instruction must not execute.
func (dbg *Debugger) onInstruction(pc uint16) bool {
	for n := 0; ; n++ {
		if n >= redispatchLimit {
			logger.Logf(logger.Allow, "debugger", "breakpoint dispatch abandoned after %d rounds at %04x", redispatchLimit, pc)
			break
		}

		// snapshot the matching handlers under the lock but run them outside
		// of it. handlers are allowed to edit the collections
		dbg.crit.Lock()
		var handlers []func(uint16)
		for _, bp := range dbg.breakpoints {
			if pc >= bp.Addr && pc <= bp.AddrEnd {
				handlers = append(handlers, bp.Handler)
			}
		}
		dbg.crit.Unlock()

		if len(handlers) == 0 {
			break
		}
		for _, h := range handlers {
			h(pc)
		}

		// a handler may have moved the program counter, in which case any
		// breakpoints at the new address deserve a say too
		npc := dbg.mc.Registers().PC.Address()
		if npc == pc {
			break
		}
		pc = npc
	}

	return dbg.State() == govern.Halted
}
