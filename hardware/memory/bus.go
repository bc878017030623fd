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

package memory

// Access describes the direction of a memory access.
type Access int

// List of valid Access values.
const (
	AccessRead Access = iota
	AccessWrite
)

func (a Access) String() string {
	switch a {
	case AccessRead:
		return "read"
	case AccessWrite:
		return "write"
	}
	return ""
}

// AccessHook is the callback installed with SetAccessHook(). It is called
// with the CPU-visible address of every Read() and Write().
type AccessHook func(access Access, addr uint16)

// CPUBus defines the operations for the memory system when accessed from the
// CPU.
type CPUBus interface {
	Read(addr uint16) (uint8, error)
	Write(addr uint16, data uint8) error
}

// DebugBus defines the side-effect free operations for the memory system,
// for use by anything outside of the normal operation of the machine.
type DebugBus interface {
	Peek(addr uint16) (uint8, error)
	Poke(addr uint16, data uint8) error
}
