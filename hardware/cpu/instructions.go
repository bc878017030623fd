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
	"github.com/dragon-emu/gopherdragon/logger"
)

// the decoded subset of the 6809 instruction set
const (
	opNOP     = 0x12
	opBRA     = 0x20
	opBNE     = 0x26
	opBEQ     = 0x27
	opINCA    = 0x4c
	opCLRA    = 0x4f
	opJMPext  = 0x7e
	opLDAimm  = 0x86
	opLDXimm  = 0x8e
	opLDAdir  = 0x96
	opSTAdir  = 0x97
	opLDAext  = 0xb6
	opSTAext  = 0xb7
	opDECB    = 0x5a
	opINCB    = 0x5c
	opCLRB    = 0x5f
	opLDBimm  = 0xc6
)

// tick advances the machine by one cycle.
func (mc *CPU) tick(cycle CycleCallback) error {
	mc.cycles.Add(1)
	if cycle != nil {
		return cycle()
	}
	return nil
}

// fetch8 reads the byte at PC and advances PC.
func (mc *CPU) fetch8(cycle CycleCallback) (uint8, error) {
	v, err := mc.mem.Read(mc.Regs.PC.Address())
	if err != nil {
		return 0, err
	}
	mc.Regs.PC.Add(1)
	return v, mc.tick(cycle)
}

// fetch16 reads the 16-bit big-endian value at PC and advances PC.
func (mc *CPU) fetch16(cycle CycleCallback) (uint16, error) {
	hi, err := mc.fetch8(cycle)
	if err != nil {
		return 0, err
	}
	lo, err := mc.fetch8(cycle)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

func (mc *CPU) read8(addr uint16, cycle CycleCallback) (uint8, error) {
	v, err := mc.mem.Read(addr)
	if err != nil {
		return 0, err
	}
	return v, mc.tick(cycle)
}

func (mc *CPU) write8(addr uint16, data uint8, cycle CycleCallback) error {
	if err := mc.mem.Write(addr, data); err != nil {
		return err
	}
	return mc.tick(cycle)
}

// load8 sets the N/Z/V flags for an 8-bit load.
func (mc *CPU) load8(v uint8) uint8 {
	mc.Regs.CC.Negative = v&0x80 == 0x80
	mc.Regs.CC.Zero = v == 0
	mc.Regs.CC.Overflow = false
	return v
}

// inc8 increments an 8-bit value and sets the N/Z/V flags.
func (mc *CPU) inc8(v uint8) uint8 {
	v++
	mc.Regs.CC.Negative = v&0x80 == 0x80
	mc.Regs.CC.Zero = v == 0
	mc.Regs.CC.Overflow = v == 0x80
	return v
}

// dec8 decrements an 8-bit value and sets the N/Z/V flags.
func (mc *CPU) dec8(v uint8) uint8 {
	v--
	mc.Regs.CC.Negative = v&0x80 == 0x80
	mc.Regs.CC.Zero = v == 0
	mc.Regs.CC.Overflow = v == 0x7f
	return v
}

// branch applies a signed 8-bit offset to PC if taken.
func (mc *CPU) branch(offset uint8, taken bool) {
	if taken {
		mc.Regs.PC.Add(uint16(int16(int8(offset))))
	}
}

// execute decodes and runs the instruction at PC.
func (mc *CPU) execute(cycle CycleCallback) error {
	pc := mc.Regs.PC.Address()

	opcode, err := mc.fetch8(cycle)
	if err != nil {
		return err
	}

	switch opcode {
	case opNOP:
		err = mc.tick(cycle)

	case opBRA, opBNE, opBEQ:
		var offset uint8
		offset, err = mc.fetch8(cycle)
		if err != nil {
			break
		}
		switch opcode {
		case opBRA:
			mc.branch(offset, true)
		case opBNE:
			mc.branch(offset, !mc.Regs.CC.Zero)
		case opBEQ:
			mc.branch(offset, mc.Regs.CC.Zero)
		}
		err = mc.tick(cycle)

	case opINCA:
		mc.Regs.A.Load(mc.inc8(mc.Regs.A.Value()))
		err = mc.tick(cycle)

	case opCLRA:
		mc.Regs.A.Load(0)
		mc.Regs.CC.Negative = false
		mc.Regs.CC.Zero = true
		mc.Regs.CC.Overflow = false
		mc.Regs.CC.Carry = false
		err = mc.tick(cycle)

	case opINCB:
		mc.Regs.B.Load(mc.inc8(mc.Regs.B.Value()))
		err = mc.tick(cycle)

	case opDECB:
		mc.Regs.B.Load(mc.dec8(mc.Regs.B.Value()))
		err = mc.tick(cycle)

	case opCLRB:
		mc.Regs.B.Load(0)
		mc.Regs.CC.Negative = false
		mc.Regs.CC.Zero = true
		mc.Regs.CC.Overflow = false
		mc.Regs.CC.Carry = false
		err = mc.tick(cycle)

	case opJMPext:
		var addr uint16
		addr, err = mc.fetch16(cycle)
		if err != nil {
			break
		}
		mc.Regs.PC.Load(addr)
		err = mc.tick(cycle)

	case opLDAimm:
		var v uint8
		v, err = mc.fetch8(cycle)
		if err != nil {
			break
		}
		mc.Regs.A.Load(mc.load8(v))

	case opLDBimm:
		var v uint8
		v, err = mc.fetch8(cycle)
		if err != nil {
			break
		}
		mc.Regs.B.Load(mc.load8(v))

	case opLDXimm:
		var v uint16
		v, err = mc.fetch16(cycle)
		if err != nil {
			break
		}
		mc.Regs.X.Load(v)
		mc.Regs.CC.Negative = v&0x8000 == 0x8000
		mc.Regs.CC.Zero = v == 0
		mc.Regs.CC.Overflow = false

	case opLDAdir, opSTAdir:
		var lo uint8
		lo, err = mc.fetch8(cycle)
		if err != nil {
			break
		}
		addr := uint16(mc.Regs.DP.Value())<<8 | uint16(lo)
		if opcode == opLDAdir {
			var v uint8
			v, err = mc.read8(addr, cycle)
			if err != nil {
				break
			}
			mc.Regs.A.Load(mc.load8(v))
		} else {
			err = mc.write8(addr, mc.load8(mc.Regs.A.Value()), cycle)
		}

	case opLDAext, opSTAext:
		var addr uint16
		addr, err = mc.fetch16(cycle)
		if err != nil {
			break
		}
		if opcode == opLDAext {
			var v uint8
			v, err = mc.read8(addr, cycle)
			if err != nil {
				break
			}
			mc.Regs.A.Load(mc.load8(v))
		} else {
			err = mc.write8(addr, mc.load8(mc.Regs.A.Value()), cycle)
		}

	default:
		// the decoded subset does not cover the full instruction set. log the
		// first sighting of each unknown opcode and move on
		if !mc.unknown[opcode] {
			mc.unknown[opcode] = true
			logger.Logf(logger.Allow, "cpu", "unimplemented opcode %02x at %04x (running as NOP)", opcode, pc)
		}
		err = mc.tick(cycle)
	}

	if err != nil {
		return err
	}

	if mc.trace.Load() {
		logger.Logf(logger.Allow, "trace", "%04x: %s", pc, mc.String())
	}

	return nil
}
