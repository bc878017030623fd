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
	"time"

	"github.com/dragon-emu/gopherdragon/curated"
	"github.com/dragon-emu/gopherdragon/debugger/govern"
)

// Stop signal numbers, as reported to a remote debugging client.
const (
	SignalInterrupt = 2
	SignalTrap      = 5
)

// Sentinel errors returned by Step().
const (
	NotHalted   = "debugger: step requires a halted machine"
	StepTimeout = "debugger: step did not complete"
)

// how long the execution goroutine sleeps between wake checks while the
// machine is halted
const haltWait = 20 * time.Millisecond

// State returns the current run state of the machine.
func (dbg *Debugger) State() govern.State {
	dbg.crit.Lock()
	defer dbg.crit.Unlock()
	return dbg.state
}

// LastSignal returns the signal number recorded at the most recent halt.
func (dbg *Debugger) LastSignal() int {
	dbg.crit.Lock()
	defer dbg.crit.Unlock()
	return dbg.lastSignal
}

// Halt stops the machine and records sig as the reason. Halting an already
// halted or ending machine does nothing.
//
// A trap signal arriving while the machine is stepping is absorbed. The step
// completes as normal and the machine halts with the trap signal at the end
// of it, which is what a remote client expects when it steps onto one of its
// own breakpoints.
func (dbg *Debugger) Halt(sig int) {
	dbg.crit.Lock()

	switch dbg.state {
	case govern.Halted, govern.Ending:
		dbg.crit.Unlock()
		return
	case govern.Stepping:
		if sig == SignalTrap {
			dbg.crit.Unlock()
			return
		}
		// an interrupt cancels the step. release any Step() caller
		dbg.poke(dbg.stepDone)
	}

	dbg.state = govern.Halted
	dbg.lastSignal = sig
	handler := dbg.stopHandler
	dbg.crit.Unlock()

	if handler != nil {
		handler(sig)
	}
}

// Continue resumes a halted machine. Does nothing in any other state.
func (dbg *Debugger) Continue() {
	dbg.crit.Lock()
	defer dbg.crit.Unlock()

	if dbg.state != govern.Halted {
		return
	}
	dbg.state = govern.Running
	dbg.poke(dbg.wake)
}

// Step executes exactly one instruction and halts again. The machine must be
// halted on entry. Step blocks until the instruction has completed or the
// timeout has elapsed.
func (dbg *Debugger) Step(timeout time.Duration) error {
	dbg.crit.Lock()

	if dbg.state != govern.Halted {
		dbg.crit.Unlock()
		return curated.Errorf(NotHalted)
	}

	// drain a stale token left over from a previously abandoned step
	select {
	case <-dbg.stepDone:
	default:
	}

	dbg.state = govern.Stepping
	dbg.poke(dbg.wake)
	dbg.crit.Unlock()

	select {
	case <-dbg.stepDone:
		return nil
	case <-time.After(timeout):
		return curated.Errorf(StepTimeout)
	}
}

// End puts the machine into the terminal Ending state. The execution loop
// will return on its next iteration.
func (dbg *Debugger) End() {
	dbg.crit.Lock()
	defer dbg.crit.Unlock()

	dbg.state = govern.Ending
	dbg.poke(dbg.wake)
	dbg.poke(dbg.stepDone)
}

// ContinueCheck is the continue function for hardware.Run(). It completes a
// pending step and performs the bounded wait while the machine is halted.
func (dbg *Debugger) ContinueCheck() (govern.State, error) {
	dbg.crit.Lock()

	if dbg.state == govern.Stepping {
		// the stepped instruction has just executed
		dbg.state = govern.Halted
		dbg.lastSignal = SignalTrap
		dbg.poke(dbg.stepDone)
	}

	if dbg.state == govern.Halted {
		// wait without the lock so that the debugging side can make state
		// transitions while we sleep
		dbg.crit.Unlock()
		select {
		case <-dbg.wake:
		case <-time.After(haltWait):
		}
		dbg.crit.Lock()
	}

	state := dbg.state
	dbg.crit.Unlock()

	return state, nil
}
