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

package registers

import "strings"

// ConditionCodes represents the CC register of the 6809.
type ConditionCodes struct {
	Entire    bool
	FIRQMask  bool
	HalfCarry bool
	IRQMask   bool
	Negative  bool
	Zero      bool
	Overflow  bool
	Carry     bool
}

// NewConditionCodes is the preferred method of initialisation for
// ConditionCodes.
func NewConditionCodes() ConditionCodes {
	return ConditionCodes{}
}

// Label returns an identifying string for the register.
func (cc ConditionCodes) Label() string {
	return "CC"
}

func (cc ConditionCodes) String() string {
	s := strings.Builder{}

	flag := func(set bool, label string) {
		if set {
			s.WriteString(strings.ToUpper(label))
		} else {
			s.WriteString(label)
		}
	}

	flag(cc.Entire, "e")
	flag(cc.FIRQMask, "f")
	flag(cc.HalfCarry, "h")
	flag(cc.IRQMask, "i")
	flag(cc.Negative, "n")
	flag(cc.Zero, "z")
	flag(cc.Overflow, "v")
	flag(cc.Carry, "c")

	return s.String()
}

// Value returns the register as an 8-bit value, as pushed to the stack by an
// interrupt.
func (cc ConditionCodes) Value() uint8 {
	var v uint8

	if cc.Entire {
		v |= 0x80
	}
	if cc.FIRQMask {
		v |= 0x40
	}
	if cc.HalfCarry {
		v |= 0x20
	}
	if cc.IRQMask {
		v |= 0x10
	}
	if cc.Negative {
		v |= 0x08
	}
	if cc.Zero {
		v |= 0x04
	}
	if cc.Overflow {
		v |= 0x02
	}
	if cc.Carry {
		v |= 0x01
	}

	return v
}

// Load the register from an 8-bit value.
func (cc *ConditionCodes) Load(v uint8) {
	cc.Entire = v&0x80 == 0x80
	cc.FIRQMask = v&0x40 == 0x40
	cc.HalfCarry = v&0x20 == 0x20
	cc.IRQMask = v&0x10 == 0x10
	cc.Negative = v&0x08 == 0x08
	cc.Zero = v&0x04 == 0x04
	cc.Overflow = v&0x02 == 0x02
	cc.Carry = v&0x01 == 0x01
}

// Reset the register to its power-on state. The IRQ and FIRQ mask bits are
// set on reset, all other flags are cleared.
func (cc *ConditionCodes) Reset() {
	*cc = ConditionCodes{}
	cc.IRQMask = true
	cc.FIRQMask = true
}
