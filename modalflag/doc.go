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

// Package modalflag layers sub-modes on top of the flag package from the
// standard library. A mode is a keyword on the command line that selects a
// group of flags of its own, in the manner of the go or git commands.
//
// Typical usage:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "VERSION")
//
//	p, err := md.Parse()
//	...
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		addr := md.AddString("gdb", "", "address for the debugging server")
//		p, err := md.Parse()
//		...
//	}
//
// Each call to NewMode() begins a fresh flag set for the flags of that mode.
// Help messages, including the list of available sub-modes, are printed to
// the Output field when the user asks for them.
package modalflag
