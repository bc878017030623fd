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

package gdb

import (
	"fmt"
	"strings"
)

// monitor services the qRcmd command, reached from the gdb command line
// with "monitor <text>". The text travels hex-encoded in both directions.
//
// Supported commands:
//
//	cycles       report the number of machine cycles since reset
//	trace on     log every executed instruction
//	trace off    stop logging instructions
func (srv *Server) monitor(arg []byte) []byte {
	if len(arg)%2 != 0 {
		return replyErr
	}

	text := make([]byte, 0, len(arg)/2)
	for i := 0; i < len(arg); i += 2 {
		v := hexByte(arg[i], arg[i+1])
		if v < 0 {
			return replyErr
		}
		text = append(text, byte(v))
	}

	switch strings.TrimSpace(string(text)) {
	case "cycles":
		return appendHexText(nil, fmt.Sprintf("%d cycles\n", srv.mc.TotalCycles()))

	case "trace on":
		srv.mc.SetTrace(true)
		return replyOK

	case "trace off":
		srv.mc.SetTrace(false)
		return replyOK
	}

	return appendHexText(nil, "unknown monitor command\n")
}
