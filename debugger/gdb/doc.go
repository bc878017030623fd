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

// Package gdb implements a server for the GDB Remote Serial Protocol,
// allowing an external debugger to halt, step, inspect and resume the
// emulated machine over a TCP connection.
//
// A typical session from the gdb command line:
//
//	(gdb) set architecture m6809
//	(gdb) target remote localhost:65520
//
// The server speaks the common subset of the protocol: the run control
// commands (?, c, s), register access (g, G, p, P), memory access (m, M),
// breakpoints and watchpoints (Z, z), the handshake queries (qSupported,
// qAttached, QStartNoAckMode) and detach (D). The monitor command (qRcmd)
// carries a small machine-specific sub-language, documented in monitor.go.
//
// One client is serviced at a time. A second client can connect as soon as
// the first has detached or dropped the connection. A dropped connection
// resumes the machine but leaves any breakpoints in place.
package gdb
