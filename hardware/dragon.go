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

package hardware

import (
	"github.com/dragon-emu/gopherdragon/curated"
	"github.com/dragon-emu/gopherdragon/hardware/cpu"
	"github.com/dragon-emu/gopherdragon/hardware/memory"
)

// Part is implemented by every component that can be discovered with the
// Part() function.
type Part interface {
	PartID() string
}

// List of part IDs.
const (
	CPUID = "CPU"
	SAMID = "SAM"
	RAMID = "RAM"
)

// Dragon is the main container for the emulated components of the machine.
type Dragon struct {
	CPU *cpu.CPU
	Mem *memory.Memory

	parts []Part
}

// NewDragon creates a new machine with the specified CPU model and
// everything associated with the hardware.
func NewDragon(model cpu.Model) (*Dragon, error) {
	sam := memory.NewSAM()
	mem := memory.NewMemory(sam)

	drg := &Dragon{
		CPU: cpu.NewCPU(model, mem),
		Mem: mem,
	}
	drg.parts = []Part{drg.CPU, sam, mem}

	return drg, nil
}

// Part returns the component with the specified ID, or nil if the machine
// has no such component.
func (drg *Dragon) Part(id string) Part {
	for _, p := range drg.parts {
		if p.PartID() == id {
			return p
		}
	}
	return nil
}

// Reset emulates the reset line of the machine.
func (drg *Dragon) Reset() {
	drg.Mem.Reset()
	drg.CPU.Reset()
}

// Load copies a raw binary image into memory at the specified origin, using
// the side-effect free Poke path.
func (drg *Dragon) Load(origin uint16, data []uint8) error {
	if int(origin)+len(data) > 0x10000 {
		return curated.Errorf("dragon: image of %d bytes does not fit at %04x", len(data), origin)
	}
	for i, b := range data {
		if err := drg.Mem.Poke(origin+uint16(i), b); err != nil {
			return curated.Errorf("dragon: %v", err)
		}
	}
	return nil
}
