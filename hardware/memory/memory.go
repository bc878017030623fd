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

// Memory geometry. The paged window sits in the upper half of the address
// space and shows one of numBanks banks, selected by the SAM.
const (
	WindowOrigin = uint16(0x8000)
	WindowMemtop = uint16(0xbfff)

	windowSize = int(WindowMemtop-WindowOrigin) + 1
	numBanks   = 4
)

// Memory is the complete address space of the machine.
type Memory struct {
	SAM *SAM

	base  []uint8
	banks [numBanks][]uint8

	// the access hook slot. installed and removed by the debugger. nil when
	// nothing is watching
	hook atomic.Pointer[AccessHook]
}

// NewMemory is the preferred method of initialisation for Memory.
func NewMemory(sam *SAM) *Memory {
	mem := &Memory{
		SAM:  sam,
		base: make([]uint8, 0x10000),
	}
	for i := range mem.banks {
		mem.banks[i] = make([]uint8, windowSize)
	}
	return mem
}

// PartID implements the hardware part interface.
func (mem *Memory) PartID() string {
	return "RAM"
}

// Reset clears all memory and returns the SAM to its power-on state.
func (mem *Memory) Reset() {
	for i := range mem.base {
		mem.base[i] = 0
	}
	for b := range mem.banks {
		for i := range mem.banks[b] {
			mem.banks[b][i] = 0
		}
	}
	mem.SAM.Reset()
}

// SetAccessHook installs the callback fired on every CPU read and write. A
// nil hook uninstalls it.
func (mem *Memory) SetAccessHook(hook AccessHook) {
	if hook == nil {
		mem.hook.Store(nil)
		return
	}
	mem.hook.Store(&hook)
}

func (mem *Memory) notify(access Access, addr uint16) {
	if h := mem.hook.Load(); h != nil {
		(*h)(access, addr)
	}
}

// cell returns a pointer to the storage behind the CPU-visible address,
// honouring the bank selected by the SAM.
func (mem *Memory) cell(addr uint16) *uint8 {
	if addr >= WindowOrigin && addr <= WindowMemtop {
		return &mem.banks[mem.SAM.Bank()][addr-WindowOrigin]
	}
	return &mem.base[addr]
}

// Read implements the CPUBus interface.
func (mem *Memory) Read(addr uint16) (uint8, error) {
	mem.notify(AccessRead, addr)
	return *mem.cell(addr), nil
}

// Write implements the CPUBus interface.
func (mem *Memory) Write(addr uint16, data uint8) error {
	mem.notify(AccessWrite, addr)
	*mem.cell(addr) = data
	return nil
}

// Peek implements the DebugBus interface. Never fires the access hook.
func (mem *Memory) Peek(addr uint16) (uint8, error) {
	return *mem.cell(addr), nil
}

// Poke implements the DebugBus interface. Never fires the access hook.
func (mem *Memory) Poke(addr uint16, data uint8) error {
	*mem.cell(addr) = data
	return nil
}
