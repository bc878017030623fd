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
	"sync"

	"github.com/dragon-emu/gopherdragon/curated"
	"github.com/dragon-emu/gopherdragon/debugger/govern"
	"github.com/dragon-emu/gopherdragon/hardware"
	"github.com/dragon-emu/gopherdragon/hardware/cpu"
	"github.com/dragon-emu/gopherdragon/hardware/cpu/registers"
)

// Sentinel error returned by New().
const NoDebugCPU = "debugger: no debug-capable CPU in machine"

// DebugCPU is the CPU as seen by the debugger. Satisfied by the cpu package.
type DebugCPU interface {
	PartID() string
	Registers() *registers.File
	SetInstructionHook(hook cpu.InstructionHook)
	TotalCycles() uint64
	SetTrace(on bool)
	Tracing() bool
}

// Debugger is the central coordination point for halting, stepping and
// resuming the machine.
type Debugger struct {
	drg *hardware.Dragon
	mc  DebugCPU

	// crit guards the run state, the last stop signal, the stop handler slot
	// and the three breakpoint/watchpoint lists. A single lock keeps the
	// state transitions and the collection edits serialised with respect to
	// each other
	crit sync.Mutex

	state      govern.State
	lastSignal int

	// called (outside of crit) whenever the machine halts asynchronously
	stopHandler func(sig int)

	breakpoints  []*Breakpoint
	readWatches  []*Breakpoint
	writeWatches []*Breakpoint

	// wake pokes the execution goroutine out of its bounded halt wait.
	// capacity of one so that a notification is never lost and a notifier
	// never blocks
	wake chan struct{}

	// stepDone receives a token when a Stepping instruction has completed
	stepDone chan struct{}
}

// New is the preferred method of initialisation for the Debugger type. The
// machine must have a CPU that supports debugging.
func New(drg *hardware.Dragon) (*Debugger, error) {
	mc, ok := drg.Part(hardware.CPUID).(DebugCPU)
	if !ok {
		return nil, curated.Errorf(NoDebugCPU)
	}

	return &Debugger{
		drg:      drg,
		mc:       mc,
		state:    govern.Running,
		wake:     make(chan struct{}, 1),
		stepDone: make(chan struct{}, 1),
	}, nil
}

// CPU returns the debugging view of the machine's CPU.
func (dbg *Debugger) CPU() DebugCPU {
	return dbg.mc
}

// SetStopHandler installs the function called whenever the machine halts for
// a reason the caller has not synchronously asked for (a breakpoint or
// watchpoint trap, or an interrupt request from another goroutine). A nil
// handler uninstalls it.
//
// The handler is called without any debugger lock held. It must not call
// back into Step().
func (dbg *Debugger) SetStopHandler(handler func(sig int)) {
	dbg.crit.Lock()
	defer dbg.crit.Unlock()
	dbg.stopHandler = handler
}

func (dbg *Debugger) poke(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
