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

package memory_test

import (
	"testing"

	"github.com/dragon-emu/gopherdragon/hardware/memory"
	"github.com/dragon-emu/gopherdragon/test"
)

func TestReadWrite(t *testing.T) {
	mem := memory.NewMemory(memory.NewSAM())

	test.ExpectSuccess(t, mem.Write(0x1000, 0x56))
	v, err := mem.Read(0x1000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0x56))
}

func TestBankedWindow(t *testing.T) {
	sam := memory.NewSAM()
	mem := memory.NewMemory(sam)

	// write to the window in bank 0
	test.ExpectSuccess(t, mem.Write(memory.WindowOrigin, 0x01))

	// switch to bank 1. the write is no longer visible
	sam.SetRegister(1)
	v, _ := mem.Read(memory.WindowOrigin)
	test.ExpectEquality(t, v, uint8(0x00))
	test.ExpectSuccess(t, mem.Write(memory.WindowOrigin, 0x02))

	// back to bank 0
	sam.SetRegister(0)
	v, _ = mem.Read(memory.WindowOrigin)
	test.ExpectEquality(t, v, uint8(0x01))

	// memory outside the window is unaffected by the bank select
	test.ExpectSuccess(t, mem.Write(0x0100, 0xaa))
	sam.SetRegister(3)
	v, _ = mem.Read(0x0100)
	test.ExpectEquality(t, v, uint8(0xaa))
}

func TestAccessHook(t *testing.T) {
	mem := memory.NewMemory(memory.NewSAM())

	var lastAccess memory.Access
	var lastAddr uint16
	var count int

	mem.SetAccessHook(func(access memory.Access, addr uint16) {
		lastAccess = access
		lastAddr = addr
		count++
	})

	_ = mem.Write(0x2000, 0x01)
	test.ExpectEquality(t, count, 1)
	test.ExpectEquality(t, lastAccess, memory.AccessWrite)
	test.ExpectEquality(t, lastAddr, uint16(0x2000))

	_, _ = mem.Read(0x3000)
	test.ExpectEquality(t, count, 2)
	test.ExpectEquality(t, lastAccess, memory.AccessRead)
	test.ExpectEquality(t, lastAddr, uint16(0x3000))

	// the debugging path never fires the hook
	_, _ = mem.Peek(0x3000)
	_ = mem.Poke(0x2000, 0x02)
	test.ExpectEquality(t, count, 2)

	// uninstalling the hook stops notifications
	mem.SetAccessHook(nil)
	_, _ = mem.Read(0x3000)
	test.ExpectEquality(t, count, 2)
}
