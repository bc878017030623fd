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

// Extended is the additional register set of the HD6309.
type Extended struct {
	MD Register
	E  Register
	F  Register
	V  Register16
}

// File is the complete register file of the CPU. The Ext field is nil unless
// the file was created for the HD6309 variant.
type File struct {
	CC ConditionCodes
	A  Register
	B  Register
	DP Register
	X  Register16
	Y  Register16
	U  Register16
	S  Register16
	PC ProgramCounter

	Ext *Extended
}

// NewFile is the preferred method of initialisation for File. The extended
// argument indicates whether the HD6309 register set should be present.
func NewFile(extended bool) File {
	f := File{
		CC: NewConditionCodes(),
		A:  NewRegister(0, "A"),
		B:  NewRegister(0, "B"),
		DP: NewRegister(0, "DP"),
		X:  NewRegister16(0, "X"),
		Y:  NewRegister16(0, "Y"),
		U:  NewRegister16(0, "U"),
		S:  NewRegister16(0, "S"),
		PC: NewProgramCounter(0),
	}

	if extended {
		f.Ext = &Extended{
			MD: NewRegister(0, "MD"),
			E:  NewRegister(0, "E"),
			F:  NewRegister(0, "F"),
			V:  NewRegister16(0, "V"),
		}
	}

	return f
}

// Reset the register file to its power-on state.
func (f *File) Reset() {
	f.CC.Reset()
	f.A.Load(0)
	f.B.Load(0)
	f.DP.Load(0)
	f.X.Load(0)
	f.Y.Load(0)
	f.U.Load(0)
	f.S.Load(0)
	f.PC.Load(0)

	if f.Ext != nil {
		f.Ext.MD.Load(0)
		f.Ext.E.Load(0)
		f.Ext.F.Load(0)
		f.Ext.V.Load(0)
	}
}
