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

// Package registers implements the register file of the MC6809 and its
// HD6309 variant. The base file is the set visible on every machine: the
// condition codes, the A/B accumulators, the direct page register, the X/Y
// index registers, the U/S stack pointers and the program counter. The
// HD6309 extension (MD, E, F and V) is only present when the File has been
// created for that variant.
package registers
