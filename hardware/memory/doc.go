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

// Package memory implements the address space of the machine. The CPU sees a
// flat 16-bit address space through the CPUBus interface; behind that the
// SAM part selects which RAM bank is visible through the paged window.
//
// The Read() and Write() functions are the normal running path and fire the
// access hook used by the debugger's watchpoints. The Peek() and Poke()
// functions are the debugging path: same address mapping, no hook, no side
// effects.
package memory
