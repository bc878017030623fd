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

// Package debugger coordinates the machine's run state and the breakpoints
// and watchpoints placed on it. It is the glue between the execution loop in
// the hardware package and the remote debugging protocol in the gdb
// sub-package.
//
// The debugger owns the single instruction hook on the CPU and the single
// access hook on the memory system. Hooks are installed when the first
// breakpoint or watchpoint is added and removed again when the last one is
// taken away, so a machine with no active debugging pays nothing on the hot
// path beyond one atomic load.
//
// All exported functions are safe to call from any goroutine. The expected
// arrangement is the machine running in its own goroutine with
// ContinueCheck() as the continue function, while a debugging session drives
// Halt(), Step() and Continue() from elsewhere.
package debugger
