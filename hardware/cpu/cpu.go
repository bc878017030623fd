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

package cpu

import (
	"fmt"
	"sync/atomic"

	"github.com/dragon-emu/gopherdragon/hardware/cpu/registers"
	"github.com/dragon-emu/gopherdragon/hardware/memory"
)

// Model distinguishes the CPU variants supported by the machine.
type Model int

// List of valid Model values.
const (
	MC6809 Model = iota
	HD6309
)

func (m Model) String() string {
	switch m {
	case MC6809:
		return "MC6809"
	case HD6309:
		return "HD6309"
	}
	return ""
}

// InstructionHook is the callback installed with SetInstructionHook(). It is
// called with the address of every instruction before the instruction is
// executed. A true return value means the machine has been halted and the
// instruction must not be executed.
type InstructionHook func(pc uint16) bool

// CycleCallback is called by the instruction core on every machine cycle.
// Used by the machine to keep peripheral hardware in lockstep with the CPU.
type CycleCallback func() error

// CPU implements the MC6809/HD6309 found in the Dragon home computers.
type CPU struct {
	Model Model
	Regs  registers.File

	mem memory.CPUBus

	// total machine cycles since the last reset. atomic because the value is
	// reported over the remote debugging connection while the machine runs
	cycles atomic.Uint64

	// whether to log every executed instruction
	trace atomic.Bool

	// the instruction hook slot. atomic for the same reason as the cycle
	// count: installed/removed from the debugging side, read on every
	// instruction by the execution side
	hook atomic.Pointer[InstructionHook]

	// log throttle for unimplemented opcodes
	unknown [256]bool
}

// NewCPU is the preferred method of initialisation for the CPU structure.
func NewCPU(model Model, mem memory.CPUBus) *CPU {
	mc := &CPU{
		Model: model,
		Regs:  registers.NewFile(model == HD6309),
		mem:   mem,
	}
	mc.Regs.Reset()
	return mc
}

// PartID implements the hardware part interface.
func (mc *CPU) PartID() string {
	return "CPU"
}

// Registers returns the register file of the CPU.
func (mc *CPU) Registers() *registers.File {
	return &mc.Regs
}

// Reset reinitialises the register file and the cycle count.
func (mc *CPU) Reset() {
	mc.Regs.Reset()
	mc.cycles.Store(0)
}

func (mc *CPU) String() string {
	r := &mc.Regs
	s := fmt.Sprintf("%s=%s %s=%s %s=%s %s=%s %s=%s %s=%s %s=%s %s=%s %s=%s",
		r.PC.Label(), r.PC, r.CC.Label(), r.CC,
		r.A.Label(), r.A, r.B.Label(), r.B, r.DP.Label(), r.DP,
		r.X.Label(), r.X, r.Y.Label(), r.Y,
		r.U.Label(), r.U, r.S.Label(), r.S)
	if r.Ext != nil {
		s = fmt.Sprintf("%s %s=%s %s=%s %s=%s %s=%s", s,
			r.Ext.MD.Label(), r.Ext.MD, r.Ext.E.Label(), r.Ext.E,
			r.Ext.F.Label(), r.Ext.F, r.Ext.V.Label(), r.Ext.V)
	}
	return s
}

// SetInstructionHook installs the instruction hook. A nil hook uninstalls
// it. There is only one hook slot.
func (mc *CPU) SetInstructionHook(hook InstructionHook) {
	if hook == nil {
		mc.hook.Store(nil)
		return
	}
	mc.hook.Store(&hook)
}

// TotalCycles returns the number of machine cycles since the last reset.
func (mc *CPU) TotalCycles() uint64 {
	return mc.cycles.Load()
}

// SetTrace turns instruction tracing on or off. Traced instructions are sent
// to the central logger.
func (mc *CPU) SetTrace(on bool) {
	mc.trace.Store(on)
}

// Tracing returns whether instruction tracing is currently on.
func (mc *CPU) Tracing() bool {
	return mc.trace.Load()
}

// ExecuteInstruction runs the instruction hook and then executes the
// instruction at the current program counter. The cycle callback may be nil.
func (mc *CPU) ExecuteInstruction(cycle CycleCallback) error {
	if h := mc.hook.Load(); h != nil {
		if (*h)(mc.Regs.PC.Address()) {
			// the hook has halted the machine. the instruction at PC has not
			// been executed and will be seen again on resume
			return nil
		}
	}
	return mc.execute(cycle)
}
