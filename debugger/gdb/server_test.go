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
	"strings"
	"testing"
	"time"

	"github.com/dragon-emu/gopherdragon/debugger"
	"github.com/dragon-emu/gopherdragon/debugger/govern"
	"github.com/dragon-emu/gopherdragon/hardware"
	"github.com/dragon-emu/gopherdragon/hardware/cpu"
	"github.com/dragon-emu/gopherdragon/test"
)

// a machine, a debugger, a running execution loop and a listening server on
// an ephemeral port. everything is torn down when the test ends.
func startTestServer(t *testing.T, program []uint8) (*Server, *debugger.Debugger) {
	t.Helper()

	drg, err := hardware.NewDragon(cpu.MC6809)
	if err != nil {
		t.Fatal(err)
	}
	if err := drg.Load(0x0000, program); err != nil {
		t.Fatal(err)
	}

	dbg, err := debugger.New(drg)
	if err != nil {
		t.Fatal(err)
	}

	srv, err := NewServer(dbg, drg, "localhost:0")
	if err != nil {
		t.Fatal(err)
	}

	machineDone := make(chan error, 1)
	go func() {
		machineDone <- drg.Run(dbg.ContinueCheck)
	}()

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.Run()
	}()

	t.Cleanup(func() {
		srv.End()
		dbg.End()

		select {
		case err := <-serverDone:
			test.ExpectSuccess(t, err)
		case <-time.After(2 * time.Second):
			t.Error("server did not end")
		}
		select {
		case err := <-machineDone:
			test.ExpectSuccess(t, err)
		case <-time.After(2 * time.Second):
			t.Error("machine did not end")
		}
	})

	return srv, dbg
}

// testClient is a minimal remote debugging client for driving the server
// over a real socket.
type testClient struct {
	t    *testing.T
	conn net.Conn
	dec  decoder
}

func dialServer(t *testing.T, srv *Server) *testClient {
	t.Helper()

	conn, err := net.Dial("tcp", srv.Addr())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	return &testClient{t: t, conn: conn}
}

func (c *testClient) send(payload string) {
	c.t.Helper()

	if _, err := c.conn.Write(encodePacket([]byte(payload))); err != nil {
		c.t.Fatal(err)
	}
}

func (c *testClient) sendRaw(b []byte) {
	c.t.Helper()

	if _, err := c.conn.Write(b); err != nil {
		c.t.Fatal(err)
	}
}

// recv reads until a complete packet arrives. Acknowledgement bytes on the
// way are consumed by the decoder.
func (c *testClient) recv() string {
	c.t.Helper()

	_ = c.conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	buf := make([]byte, 256)
	for {
		n, err := c.conn.Read(buf)
		if err != nil {
			c.t.Fatal(err)
		}
		for i := 0; i < n; i++ {
			if c.dec.push(buf[i]) == evPacket {
				return string(c.dec.payload)
			}
		}
	}
}

// recvByte reads a single raw byte.
func (c *testClient) recvByte() byte {
	c.t.Helper()

	_ = c.conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	buf := make([]byte, 1)
	if _, err := c.conn.Read(buf); err != nil {
		c.t.Fatal(err)
	}
	return buf[0]
}

func waitSignal(t *testing.T, dbg *debugger.Debugger, state govern.State, sig int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if dbg.State() == state && dbg.LastSignal() == sig {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("machine never reached %s with signal %d", state, sig)
}

func TestServerSession(t *testing.T) {
	srv, dbg := startTestServer(t, []uint8{
		0x4c,             // INCA
		0x7e, 0x00, 0x00, // JMP $0000
	})

	c := dialServer(t, srv)

	// connecting halts the machine with an interrupt signal
	waitState(t, dbg, govern.Halted)
	c.send("?")
	test.ExpectEquality(t, c.recv(), "S02")

	c.send("qSupported:swbreak+")
	test.ExpectSuccess(t, strings.Contains(c.recv(), "PacketSize=400"))

	c.send("QStartNoAckMode")
	test.ExpectEquality(t, c.recv(), "OK")

	c.send("m0000,4")
	test.ExpectEquality(t, c.recv(), "4c7e0000")

	// a breakpoint on the JMP and a continue. the stop packet arrives
	// without a further request
	c.send("Z0,0001,1")
	test.ExpectEquality(t, c.recv(), "OK")
	c.send("c")
	test.ExpectEquality(t, c.recv(), "S05")
	waitSignal(t, dbg, govern.Halted, debugger.SignalTrap)

	// dropping the connection resumes the machine with the breakpoint still
	// in place, so it traps again on its own
	_ = c.conn.Close()
	waitSignal(t, dbg, govern.Halted, debugger.SignalTrap)

	// a second client finds the machine at the surviving breakpoint
	c2 := dialServer(t, srv)
	c2.send("?")
	test.ExpectEquality(t, c2.recv(), "S05")

	c2.send("z0,0001,1")
	test.ExpectEquality(t, c2.recv(), "OK")

	// a graceful detach resumes the machine
	c2.send("D")
	test.ExpectEquality(t, c2.recv(), "OK")
	waitState(t, dbg, govern.Running)
}

func TestServerBadChecksum(t *testing.T) {
	srv, dbg := startTestServer(t, []uint8{
		0x7e, 0x00, 0x00, // JMP $0000
	})

	c := dialServer(t, srv)
	waitState(t, dbg, govern.Halted)

	// the server answers a corrupt packet with a NAK and nothing else
	c.sendRaw([]byte("$?#00"))
	test.ExpectEquality(t, c.recvByte(), byte('-'))

	// the retransmission is acknowledged and answered
	c.sendRaw([]byte("$?#3f"))
	test.ExpectEquality(t, c.recvByte(), byte('+'))
	test.ExpectEquality(t, c.recv(), "S02")
}

func TestServerInterrupt(t *testing.T) {
	srv, dbg := startTestServer(t, []uint8{
		0x7e, 0x00, 0x00, // JMP $0000
	})

	c := dialServer(t, srv)
	waitState(t, dbg, govern.Halted)

	c.send("c")
	waitState(t, dbg, govern.Running)

	// the out-of-band interrupt byte halts the machine, reported with an
	// unsolicited stop packet
	c.sendRaw([]byte{interruptByte})
	test.ExpectEquality(t, c.recv(), "S02")
	waitState(t, dbg, govern.Halted)
}
