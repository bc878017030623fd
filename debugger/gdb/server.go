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
	"net"
	"sync"
	"time"

	"github.com/dragon-emu/gopherdragon/curated"
	"github.com/dragon-emu/gopherdragon/debugger"
	"github.com/dragon-emu/gopherdragon/hardware"
	"github.com/dragon-emu/gopherdragon/hardware/memory"
	"github.com/dragon-emu/gopherdragon/logger"
)

// DefaultAddr is the listening address used when none is specified.
const DefaultAddr = "localhost:65520"

// how long accept and read block before checking for shutdown. bounded so
// that End() is always observed promptly
const pollTimeout = 250 * time.Millisecond

// Server listens for a remote debugging client and services its commands.
type Server struct {
	dbg *debugger.Debugger
	mc  debugger.DebugCPU
	bus memory.DebugBus
	sam *memory.SAM

	ln *net.TCPListener

	// send serialises replies from the command dispatcher with asynchronous
	// stop packets arriving from the execution goroutine. it also guards the
	// conn field itself
	send sync.Mutex
	conn *net.TCPConn

	// protocol state of the current connection. only ever touched from the
	// listener goroutine
	noAck bool
	dec   decoder

	quit     chan struct{}
	quitOnce sync.Once
}

// NewServer creates a listening socket for the machine attached to dbg. The
// addr argument is a host:port pair, or the empty string for DefaultAddr.
func NewServer(dbg *debugger.Debugger, drg *hardware.Dragon, addr string) (*Server, error) {
	if addr == "" {
		addr = DefaultAddr
	}

	tcpAddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, curated.Errorf("gdb: %v", err)
	}

	ln, err := net.ListenTCP("tcp", tcpAddr)
	if err != nil {
		return nil, curated.Errorf("gdb: %v", err)
	}

	srv := &Server{
		dbg:  dbg,
		mc:   dbg.CPU(),
		bus:  drg.Mem,
		ln:   ln,
		quit: make(chan struct{}),
	}

	// the address multiplexer is optional. without it the vendor queries
	// report an error rather than the server refusing to start
	if sam, ok := drg.Part(hardware.SAMID).(*memory.SAM); ok {
		srv.sam = sam
	}

	logger.Logf(logger.Allow, "gdb", "listening on %s", ln.Addr())

	return srv, nil
}

// Addr returns the address the server is listening on. Useful when the
// server was created with port zero.
func (srv *Server) Addr() string {
	return srv.ln.Addr().String()
}

// End stops the server. A connected client is dropped. Safe to call more
// than once and from any goroutine.
func (srv *Server) End() {
	srv.quitOnce.Do(func() {
		close(srv.quit)
		_ = srv.ln.Close()

		srv.send.Lock()
		if srv.conn != nil {
			_ = srv.conn.Close()
		}
		srv.send.Unlock()
	})
}

func (srv *Server) ending() bool {
	select {
	case <-srv.quit:
		return true
	default:
		return false
	}
}

// Run accepts and services one client at a time until End() is called.
// Intended to be run in its own goroutine.
func (srv *Server) Run() error {
	for !srv.ending() {
		_ = srv.ln.SetDeadline(time.Now().Add(pollTimeout))

		conn, err := srv.ln.AcceptTCP()
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			if srv.ending() {
				break
			}
			return curated.Errorf("gdb: %v", err)
		}

		srv.serve(conn)
	}

	return nil
}

// serve drives the receive loop for a single client connection.
func (srv *Server) serve(conn *net.TCPConn) {
	_ = conn.SetNoDelay(true)
	logger.Logf(logger.Allow, "gdb", "connection from %s", conn.RemoteAddr())

	srv.send.Lock()
	srv.conn = conn
	srv.send.Unlock()
	srv.noAck = false
	srv.dec.reset()

	// a connecting client expects a halted target. the halt happens before
	// the stop handler is installed so that the stop is reported through the
	// ? command rather than by an unsolicited packet
	srv.dbg.Halt(debugger.SignalInterrupt)
	srv.dbg.SetStopHandler(srv.asyncStop)

	defer func() {
		srv.dbg.SetStopHandler(nil)

		srv.send.Lock()
		srv.conn = nil
		srv.send.Unlock()
		_ = conn.Close()

		// a departed client, however it departed, leaves a running machine
		// behind. breakpoints stay where they are
		srv.dbg.Continue()
		logger.Logf(logger.Allow, "gdb", "disconnected")
	}()

	buf := make([]byte, 512)

	for !srv.ending() {
		_ = conn.SetReadDeadline(time.Now().Add(pollTimeout))

		n, err := conn.Read(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			// any other failure, EOF included, is a disconnect
			return
		}

		for _, b := range buf[:n] {
			switch srv.dec.push(b) {
			case evPacket:
				srv.ack('+')
				reply, detach := srv.dispatch(srv.dec.payload)
				if reply != nil {
					srv.sendPacket(reply)
				}
				if detach {
					return
				}

			case evBadChecksum:
				srv.ack('-')

			case evBreak:
				// reported back through the stop handler
				srv.dbg.Halt(debugger.SignalInterrupt)
			}
		}
	}
}

// asyncStop is the stop handler installed for the duration of a connection.
// Called from the execution goroutine when the machine halts on a trap, and
// from the listener goroutine on an interrupt byte.
func (srv *Server) asyncStop(sig int) {
	srv.sendPacket([]byte{'S', hexChars[(sig>>4)&0x0f], hexChars[sig&0x0f]})
}

func (srv *Server) ack(b byte) {
	if srv.noAck {
		return
	}

	srv.send.Lock()
	defer srv.send.Unlock()

	if srv.conn != nil {
		_, _ = srv.conn.Write([]byte{b})
	}
}

func (srv *Server) sendPacket(payload []byte) {
	srv.send.Lock()
	defer srv.send.Unlock()

	if srv.conn != nil {
		_, _ = srv.conn.Write(encodePacket(payload))
	}
}
