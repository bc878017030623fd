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

package registers_test

import (
	"testing"

	"github.com/dragon-emu/gopherdragon/hardware/cpu/registers"
	"github.com/dragon-emu/gopherdragon/test"
)

func TestConditionCodes(t *testing.T) {
	cc := registers.NewConditionCodes()
	test.ExpectEquality(t, cc.Value(), uint8(0))

	cc.Zero = true
	cc.Carry = true
	test.ExpectEquality(t, cc.Value(), uint8(0x05))

	cc.Load(0xff)
	test.ExpectEquality(t, cc.Value(), uint8(0xff))
	test.ExpectSuccess(t, cc.Negative)

	cc.Reset()
	test.ExpectEquality(t, cc.Value(), uint8(0x50))
	test.ExpectEquality(t, cc.String(), "eFhInzvc")
}

func TestProgramCounter(t *testing.T) {
	pc := registers.NewProgramCounter(0xfffe)
	pc.Add(1)
	test.ExpectEquality(t, pc.Address(), uint16(0xffff))

	// addition wraps around the address space
	pc.Add(2)
	test.ExpectEquality(t, pc.Address(), uint16(0x0001))
}

func TestFileVariants(t *testing.T) {
	f := registers.NewFile(false)
	test.ExpectEquality(t, f.Ext == nil, true)

	f = registers.NewFile(true)
	test.ExpectEquality(t, f.Ext != nil, true)
	test.ExpectEquality(t, f.Ext.MD.Label(), "MD")

	f.Ext.V.Load(0x1234)
	f.Reset()
	test.ExpectEquality(t, f.Ext.V.Value(), uint16(0))
	test.ExpectEquality(t, f.CC.Value(), uint8(0x50))
}
