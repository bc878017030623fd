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

// Package cpu implements the MC6809 processor of the machine, and its HD6309
// variant. Register logic is implemented by the registers sub-package.
//
// The instruction core currently decodes a working subset of the 6809
// instruction set, enough to run small programs. Unknown opcodes are logged
// and executed as NOP rather than stopping the machine.
//
// The CPU owns a single instruction-hook slot, installed with
// SetInstructionHook(). The hook runs before every instruction with the
// current value of the program counter. A true return value from the hook
// means the machine has been halted and the instruction at PC must not be
// executed.
package cpu
