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

import "fmt"

// Register is an 8-bit register.
type Register struct {
	label string
	value uint8
}

// NewRegister is the preferred method of initialisation for Register.
func NewRegister(val uint8, label string) Register {
	return Register{label: label, value: val}
}

// Label returns an identifying string for the register.
func (r Register) Label() string {
	return r.label
}

func (r Register) String() string {
	return fmt.Sprintf("%02x", r.value)
}

// Value returns the current value of the register.
func (r Register) Value() uint8 {
	return r.value
}

// Load a value into the register.
func (r *Register) Load(val uint8) {
	r.value = val
}

// IsZero checks if the register is zero.
func (r Register) IsZero() bool {
	return r.value == 0
}

// IsNegative checks the sign bit of the register.
func (r Register) IsNegative() bool {
	return r.value&0x80 == 0x80
}

// Register16 is a 16-bit register. Used for the index registers, the stack
// pointers and the HD6309 V register.
type Register16 struct {
	label string
	value uint16
}

// NewRegister16 is the preferred method of initialisation for Register16.
func NewRegister16(val uint16, label string) Register16 {
	return Register16{label: label, value: val}
}

// Label returns an identifying string for the register.
func (r Register16) Label() string {
	return r.label
}

func (r Register16) String() string {
	return fmt.Sprintf("%04x", r.value)
}

// Value returns the current value of the register.
func (r Register16) Value() uint16 {
	return r.value
}

// Load a value into the register.
func (r *Register16) Load(val uint16) {
	r.value = val
}
