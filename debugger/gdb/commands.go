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
	"bytes"
	"fmt"
	"time"

	"github.com/dragon-emu/gopherdragon/debugger"
)

// how long a step command is allowed to take before the client gets an error
// reply instead
const stepTimeout = 2 * time.Second

// protocol replies shared by several commands. an unrecognised command gets
// the empty reply, which is the protocol's way of saying "not supported"
var (
	replyEmpty = []byte{}
	replyOK    = []byte("OK")
	replyErr   = []byte("E00")
)

// dispatch interprets one decoded packet. The returned reply is nil when the
// command produces no immediate reply (the continue command). The detach
// value is true when the client has asked for the connection to end.
func (srv *Server) dispatch(payload []byte) (reply []byte, detach bool) {
	if len(payload) == 0 {
		return replyEmpty, false
	}

	arg := payload[1:]

	switch payload[0] {
	case '?':
		return srv.stopReply(), false

	case 'c':
		// the reply to a continue is the stop packet sent whenever the
		// machine next halts
		srv.dbg.Continue()
		return nil, false

	case 's':
		if err := srv.dbg.Step(stepTimeout); err != nil {
			return []byte("E01"), false
		}
		return srv.stopReply(), false

	case 'g':
		return srv.readRegisters(), false

	case 'G':
		return srv.writeRegisters(arg), false

	case 'p':
		return srv.readRegister(arg), false

	case 'P':
		return srv.writeRegister(arg), false

	case 'm':
		return srv.readMemory(arg), false

	case 'M':
		return srv.writeMemory(arg), false

	case 'q':
		return srv.query(arg), false

	case 'Q':
		return srv.set(arg), false

	case 'Z':
		return srv.editBreakpoint(arg, true), false

	case 'z':
		return srv.editBreakpoint(arg, false), false

	case 'D':
		return replyOK, true
	}

	return replyEmpty, false
}

func (srv *Server) stopReply() []byte {
	return []byte(fmt.Sprintf("S%02x", srv.dbg.LastSignal()))
}

// the protocol register indices, as used by the p and P commands and
// defining the field order of the g and G layouts. indices mdIDX onwards
// exist only on the HD6309
const (
	ccIDX = iota
	aIDX
	bIDX
	dpIDX
	xIDX
	yIDX
	uIDX
	sIDX
	pcIDX
	mdIDX
	eIDX
	fIDX
	vIDX
)

// the g layout is always full width. registers absent from the active CPU
// variant travel as unfilled placeholder pairs
const (
	baseLayoutLen = 28
	fullLayoutLen = 38
)

func (srv *Server) readRegisters() []byte {
	r := srv.mc.Registers()

	b := make([]byte, 0, fullLayoutLen)
	b = appendHexByte(b, r.CC.Value())
	b = appendHexByte(b, r.A.Value())
	b = appendHexByte(b, r.B.Value())
	b = appendHexByte(b, r.DP.Value())
	b = appendHexWord(b, r.X.Value())
	b = appendHexWord(b, r.Y.Value())
	b = appendHexWord(b, r.U.Value())
	b = appendHexWord(b, r.S.Value())
	b = appendHexWord(b, r.PC.Address())

	if r.Ext != nil {
		b = appendHexByte(b, r.Ext.MD.Value())
		b = appendHexByte(b, r.Ext.E.Value())
		b = appendHexByte(b, r.Ext.F.Value())
		b = appendHexWord(b, r.Ext.V.Value())
	} else {
		b = append(b, "xxxxxxxxxx"...)
	}

	return b
}

func (srv *Server) writeRegisters(arg []byte) []byte {
	if len(arg) != baseLayoutLen && len(arg) != fullLayoutLen {
		return replyErr
	}

	r := srv.mc.Registers()

	// fields that fail hex decoding are placeholders and leave the register
	// untouched
	byteField := func(off int, load func(uint8)) {
		if v := hexByte(arg[off], arg[off+1]); v >= 0 {
			load(uint8(v))
		}
	}
	wordField := func(off int, load func(uint16)) {
		if v := hexWord(arg[off : off+4]); v >= 0 {
			load(uint16(v))
		}
	}

	byteField(0, r.CC.Load)
	byteField(2, r.A.Load)
	byteField(4, r.B.Load)
	byteField(6, r.DP.Load)
	wordField(8, r.X.Load)
	wordField(12, r.Y.Load)
	wordField(16, r.U.Load)
	wordField(20, r.S.Load)
	wordField(24, r.PC.Load)

	if len(arg) == fullLayoutLen && r.Ext != nil {
		byteField(28, r.Ext.MD.Load)
		byteField(30, r.Ext.E.Load)
		byteField(32, r.Ext.F.Load)
		wordField(34, r.Ext.V.Load)
	}

	return replyOK
}

func (srv *Server) readRegister(arg []byte) []byte {
	idx := hexField(arg)
	if idx < 0 || idx > vIDX {
		return replyErr
	}

	r := srv.mc.Registers()

	var b []byte
	switch idx {
	case ccIDX:
		b = appendHexByte(b, r.CC.Value())
	case aIDX:
		b = appendHexByte(b, r.A.Value())
	case bIDX:
		b = appendHexByte(b, r.B.Value())
	case dpIDX:
		b = appendHexByte(b, r.DP.Value())
	case xIDX:
		b = appendHexWord(b, r.X.Value())
	case yIDX:
		b = appendHexWord(b, r.Y.Value())
	case uIDX:
		b = appendHexWord(b, r.U.Value())
	case sIDX:
		b = appendHexWord(b, r.S.Value())
	case pcIDX:
		b = appendHexWord(b, r.PC.Address())
	default:
		if r.Ext == nil {
			return []byte("xx")
		}
		switch idx {
		case mdIDX:
			b = appendHexByte(b, r.Ext.MD.Value())
		case eIDX:
			b = appendHexByte(b, r.Ext.E.Value())
		case fIDX:
			b = appendHexByte(b, r.Ext.F.Value())
		case vIDX:
			b = appendHexWord(b, r.Ext.V.Value())
		}
	}

	return b
}

func (srv *Server) writeRegister(arg []byte) []byte {
	idx, value, ok := bytes.Cut(arg, []byte("="))
	if !ok {
		return replyErr
	}

	i := hexField(idx)
	if i < 0 || i > vIDX {
		return replyErr
	}

	r := srv.mc.Registers()

	loadByte := func(load func(uint8)) []byte {
		v := -1
		if len(value) == 2 {
			v = hexByte(value[0], value[1])
		}
		if v < 0 {
			return replyErr
		}
		load(uint8(v))
		return replyOK
	}
	loadWord := func(load func(uint16)) []byte {
		v := -1
		if len(value) == 4 {
			v = hexWord(value)
		}
		if v < 0 {
			return replyErr
		}
		load(uint16(v))
		return replyOK
	}

	switch i {
	case ccIDX:
		return loadByte(r.CC.Load)
	case aIDX:
		return loadByte(r.A.Load)
	case bIDX:
		return loadByte(r.B.Load)
	case dpIDX:
		return loadByte(r.DP.Load)
	case xIDX:
		return loadWord(r.X.Load)
	case yIDX:
		return loadWord(r.Y.Load)
	case uIDX:
		return loadWord(r.U.Load)
	case sIDX:
		return loadWord(r.S.Load)
	case pcIDX:
		return loadWord(r.PC.Load)
	}

	if r.Ext == nil {
		return replyErr
	}

	switch i {
	case mdIDX:
		return loadByte(r.Ext.MD.Load)
	case eIDX:
		return loadByte(r.Ext.E.Load)
	case fIDX:
		return loadByte(r.Ext.F.Load)
	case vIDX:
		return loadWord(r.Ext.V.Load)
	}

	return replyErr
}

func (srv *Server) readMemory(arg []byte) []byte {
	addrField, lenField, ok := bytes.Cut(arg, []byte(","))
	if !ok {
		return replyEmpty
	}

	addr := hexField(addrField)
	length := hexField(lenField)
	if addr < 0 || length < 0 {
		return replyEmpty
	}
	if addr+length > 0x10000 || length*2 > maxPayload {
		return replyErr
	}

	b := make([]byte, 0, length*2)
	for i := 0; i < length; i++ {
		v, err := srv.bus.Peek(uint16(addr + i))
		if err != nil {
			return replyErr
		}
		b = appendHexByte(b, v)
	}

	return b
}

func (srv *Server) writeMemory(arg []byte) []byte {
	addrPart, data, ok := bytes.Cut(arg, []byte(":"))
	if !ok {
		return replyErr
	}
	addrField, lenField, ok := bytes.Cut(addrPart, []byte(","))
	if !ok {
		return replyErr
	}

	addr := hexField(addrField)
	length := hexField(lenField)
	if addr < 0 || length < 0 || len(data) != length*2 {
		return replyErr
	}
	if addr+length > 0x10000 {
		return replyErr
	}

	for i := 0; i < length; i++ {
		v := hexByte(data[i*2], data[i*2+1])
		if v < 0 {
			return replyErr
		}
		if err := srv.bus.Poke(uint16(addr+i), uint8(v)); err != nil {
			return replyErr
		}
	}

	return replyOK
}

func (srv *Server) query(arg []byte) []byte {
	switch {
	case bytes.HasPrefix(arg, []byte("Supported")):
		return []byte(fmt.Sprintf("PacketSize=%x;QStartNoAckMode+", maxPayload))

	case bytes.Equal(arg, []byte("Attached")):
		return []byte("1")

	case bytes.HasPrefix(arg, []byte("Rcmd,")):
		return srv.monitor(arg[len("Rcmd,"):])

	case bytes.Equal(arg, []byte("dragon.sam")):
		if srv.sam == nil {
			return replyErr
		}
		return appendHexWord(nil, srv.sam.Register())
	}

	return replyEmpty
}

func (srv *Server) set(arg []byte) []byte {
	switch {
	case bytes.Equal(arg, []byte("StartNoAckMode")):
		srv.noAck = true
		return replyOK

	case bytes.HasPrefix(arg, []byte("dragon.sam:")):
		if srv.sam == nil {
			return replyErr
		}
		v := hexWord(arg[len("dragon.sam:"):])
		if v < 0 {
			return replyErr
		}
		srv.sam.SetRegister(uint16(v))
		return replyOK
	}

	return replyEmpty
}

// editBreakpoint services both the Z (insert) and z (remove) commands. The
// argument is type,addr,kind where kind is the byte length of the covered
// range for watchpoint types.
func (srv *Server) editBreakpoint(arg []byte, insert bool) []byte {
	typeField, rest, ok := bytes.Cut(arg, []byte(","))
	if !ok {
		return replyErr
	}
	addrField, kindField, ok := bytes.Cut(rest, []byte(","))
	if !ok {
		return replyErr
	}

	typ := hexField(typeField)
	addr := hexField(addrField)
	kind := hexField(kindField)
	if typ < 0 || addr < 0 || addr > 0xffff || kind < 0 {
		return replyErr
	}

	// software and hardware breakpoints are the same thing on this target
	if typ == 0 || typ == 1 {
		if insert {
			srv.dbg.AddTrapBreakpoint(uint16(addr))
		} else {
			srv.dbg.RemoveTrapBreakpoint(uint16(addr))
		}
		return replyOK
	}

	var wk debugger.WatchKind
	switch typ {
	case 2:
		wk = debugger.WatchWrite
	case 3:
		wk = debugger.WatchRead
	case 4:
		wk = debugger.WatchReadWrite
	default:
		// unknown breakpoint types get the not-supported reply
		return replyEmpty
	}

	addrEnd := addr
	if kind > 0 {
		addrEnd = addr + kind - 1
	}
	if addrEnd > 0xffff {
		return replyErr
	}

	if insert {
		srv.dbg.AddTrapWatch(wk, uint16(addr), uint16(addrEnd))
	} else {
		srv.dbg.RemoveTrapWatch(wk, uint16(addr), uint16(addrEnd))
	}

	return replyOK
}
