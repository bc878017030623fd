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

package debugger_test

import (
	"testing"

	"github.com/dragon-emu/gopherdragon/debugger"
	"github.com/dragon-emu/gopherdragon/debugger/govern"
	"github.com/dragon-emu/gopherdragon/test"
)

func TestWriteTrapWatch(t *testing.T) {
	drg, dbg := newTestMachine(t, []uint8{
		0x86, 0x56, // LDA #$56
		0xb7, 0x10, 0x00, // STA $1000
		0x7e, 0x00, 0x05, // JMP $0005
	})

	dbg.AddTrapWatch(debugger.WatchWrite, 0x1000, 0x1000)

	done := startMachine(drg, dbg)

	waitForState(t, dbg, govern.Halted)
	test.ExpectEquality(t, dbg.LastSignal(), debugger.SignalTrap)

	// the watched store completes before the halt takes effect
	v, err := drg.Mem.Peek(0x1000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0x56))

	dbg.End()
	<-done
}

func TestReadTrapWatchRange(t *testing.T) {
	drg, dbg := newTestMachine(t, []uint8{
		0xb6, 0x10, 0x05, // LDA $1005
		0x7e, 0x00, 0x03, // JMP $0003
	})

	dbg.AddTrapWatch(debugger.WatchRead, 0x1000, 0x100f)

	done := startMachine(drg, dbg)

	waitForState(t, dbg, govern.Halted)
	test.ExpectEquality(t, dbg.LastSignal(), debugger.SignalTrap)

	dbg.End()
	<-done
}

func TestWatchKindSelection(t *testing.T) {
	drg, dbg := newTestMachine(t, nil)

	reads := 0
	writes := 0
	dbg.AddWatch(debugger.WatchRead, 0x2000, 0x2000, func(_ uint16) { reads++ })
	dbg.AddWatch(debugger.WatchWrite, 0x2000, 0x2000, func(_ uint16) { writes++ })

	_, _ = drg.Mem.Read(0x2000)
	test.ExpectEquality(t, reads, 1)
	test.ExpectEquality(t, writes, 0)

	_ = drg.Mem.Write(0x2000, 0xff)
	test.ExpectEquality(t, reads, 1)
	test.ExpectEquality(t, writes, 1)

	// accesses outside of the watched address never dispatch
	_, _ = drg.Mem.Read(0x2001)
	_ = drg.Mem.Write(0x1fff, 0xff)
	test.ExpectEquality(t, reads, 1)
	test.ExpectEquality(t, writes, 1)
}

func TestReadWriteWatch(t *testing.T) {
	drg, dbg := newTestMachine(t, nil)

	hits := 0
	dbg.AddWatch(debugger.WatchReadWrite, 0x3000, 0x3001, func(_ uint16) { hits++ })

	_, _ = drg.Mem.Read(0x3000)
	_ = drg.Mem.Write(0x3001, 0x01)
	test.ExpectEquality(t, hits, 2)
}

func TestPeekPokeNeverDispatch(t *testing.T) {
	drg, dbg := newTestMachine(t, nil)

	hits := 0
	dbg.AddWatch(debugger.WatchReadWrite, 0x2000, 0x2000, func(_ uint16) { hits++ })

	_, _ = drg.Mem.Peek(0x2000)
	_ = drg.Mem.Poke(0x2000, 0x01)
	test.ExpectEquality(t, hits, 0)
}

func TestWatchRemoval(t *testing.T) {
	drg, dbg := newTestMachine(t, nil)

	hits := 0
	dbg.AddWatch(debugger.WatchRead, 0x2000, 0x2000, func(_ uint16) { hits++ })

	_, _ = drg.Mem.Read(0x2000)
	test.ExpectEquality(t, hits, 1)

	dbg.RemoveWatch(debugger.WatchRead, 0x2000, 0x2000)

	_, _ = drg.Mem.Read(0x2000)
	test.ExpectEquality(t, hits, 1)
}

func TestTrapWatchDeduplication(t *testing.T) {
	drg, dbg := newTestMachine(t, nil)

	dbg.AddTrapWatch(debugger.WatchWrite, 0x1000, 0x1000)
	dbg.AddTrapWatch(debugger.WatchWrite, 0x1000, 0x1000)
	dbg.RemoveTrapWatch(debugger.WatchWrite, 0x1000, 0x1000)

	// the duplicate registration was absorbed so a single removal clears the
	// trap and the machine stays in the running state on a watched access
	_ = drg.Mem.Write(0x1000, 0x01)
	test.ExpectEquality(t, dbg.State(), govern.Running)
}
