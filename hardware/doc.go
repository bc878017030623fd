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

// Package hardware is the container package for the emulated components of
// the Dragon home computer. The Dragon type ties the CPU and the memory
// system together and provides the execution loop through the Run()
// function.
//
// Components that can be discovered by other subsystems (the debugger in
// particular) implement the Part interface and are found with the Part()
// function.
package hardware
