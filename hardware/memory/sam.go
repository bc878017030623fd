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

import "sync/atomic"

// SAM is the address multiplexer of the machine. The register is a
// simplification of the real chip: the low bits select which bank of RAM is
// visible through the paged window.
//
// The register is atomic because it is written by the remote debugging
// client while the machine may be running.
type SAM struct {
	reg atomic.Uint32
}

// NewSAM is the preferred method of initialisation for SAM.
func NewSAM() *SAM {
	return &SAM{}
}

// PartID implements the hardware part interface.
func (sam *SAM) PartID() string {
	return "SAM"
}

// Register returns the current value of the SAM control register.
func (sam *SAM) Register() uint16 {
	return uint16(sam.reg.Load())
}

// SetRegister loads a new value into the SAM control register.
func (sam *SAM) SetRegister(v uint16) {
	sam.reg.Store(uint32(v))
}

// Bank returns the RAM bank currently selected for the paged window.
func (sam *SAM) Bank() int {
	return int(sam.reg.Load()) & (numBanks - 1)
}

// Reset returns the SAM to its power-on state.
func (sam *SAM) Reset() {
	sam.reg.Store(0)
}
