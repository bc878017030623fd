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

package debugger

import (
	"github.com/dragon-emu/gopherdragon/hardware/memory"
	"github.com/dragon-emu/gopherdragon/logger"
)

// WatchKind selects the access directions a watchpoint responds to.
type WatchKind int

// List of valid WatchKind values.
const (
	WatchRead WatchKind = iota
	WatchWrite
	WatchReadWrite
)

func (k WatchKind) String() string {
	switch k {
	case WatchRead:
		return "read"
	case WatchWrite:
		return "write"
	case WatchReadWrite:
		return "read/write"
	}
	return ""
}

// AddWatch registers handler to run when any address in the inclusive range
// addr to addrEnd is accessed in the direction(s) given by kind. The newest
// registration runs first. A nil handler is refused and logged.
func (dbg *Debugger) AddWatch(kind WatchKind, addr uint16, addrEnd uint16, handler func(addr uint16)) {
	if handler == nil {
		logger.Logf(logger.Allow, "debugger", "refusing watch with no handler at %04x", addr)
		return
	}
	dbg.addWatch(kind, &Breakpoint{Addr: addr, AddrEnd: addrEnd, Handler: handler})
}

// AddTrapWatch registers a watchpoint over the inclusive range addr to
// addrEnd that halts the machine with a trap signal. Adding a trap over a
// range and kind that already exists does nothing.
func (dbg *Debugger) AddTrapWatch(kind WatchKind, addr uint16, addrEnd uint16) {
	if dbg.hasTrapWatch(kind, addr, addrEnd) {
		return
	}
	dbg.addWatch(kind, &Breakpoint{Addr: addr, AddrEnd: addrEnd, Handler: dbg.trapHandler, trap: true})
}

// RemoveWatch removes the most recent watchpoint added with AddWatch() over
// the range and kind. Removing a watch that does not exist does nothing.
func (dbg *Debugger) RemoveWatch(kind WatchKind, addr uint16, addrEnd uint16) {
	dbg.removeWatch(kind, addr, addrEnd, false)
}

// RemoveTrapWatch removes the trap watchpoint previously added over the
// range and kind. Removing a trap that does not exist does nothing.
func (dbg *Debugger) RemoveTrapWatch(kind WatchKind, addr uint16, addrEnd uint16) {
	dbg.removeWatch(kind, addr, addrEnd, true)
}

func (dbg *Debugger) removeWatch(kind WatchKind, addr uint16, addrEnd uint16, trap bool) {
	dbg.crit.Lock()
	defer dbg.crit.Unlock()

	remove := func(list []*Breakpoint) []*Breakpoint {
		for i, wp := range list {
			if wp.trap == trap && wp.Addr == addr && wp.AddrEnd == addrEnd {
				return append(list[:i], list[i+1:]...)
			}
		}
		return list
	}

	if kind == WatchRead || kind == WatchReadWrite {
		dbg.readWatches = remove(dbg.readWatches)
	}
	if kind == WatchWrite || kind == WatchReadWrite {
		dbg.writeWatches = remove(dbg.writeWatches)
	}

	if len(dbg.readWatches)+len(dbg.writeWatches) == 0 {
		dbg.drg.Mem.SetAccessHook(nil)
	}
}

func (dbg *Debugger) hasTrapWatch(kind WatchKind, addr uint16, addrEnd uint16) bool {
	dbg.crit.Lock()
	defer dbg.crit.Unlock()

	find := func(list []*Breakpoint) bool {
		for _, wp := range list {
			if wp.trap && wp.Addr == addr && wp.AddrEnd == addrEnd {
				return true
			}
		}
		return false
	}

	switch kind {
	case WatchRead:
		return find(dbg.readWatches)
	case WatchWrite:
		return find(dbg.writeWatches)
	case WatchReadWrite:
		return find(dbg.readWatches) && find(dbg.writeWatches)
	}
	return false
}

func (dbg *Debugger) addWatch(kind WatchKind, wp *Breakpoint) {
	dbg.crit.Lock()
	defer dbg.crit.Unlock()

	if kind == WatchRead || kind == WatchReadWrite {
		dbg.readWatches = append([]*Breakpoint{wp}, dbg.readWatches...)
	}
	if kind == WatchWrite || kind == WatchReadWrite {
		dbg.writeWatches = append([]*Breakpoint{wp}, dbg.writeWatches...)
	}

	if len(dbg.readWatches)+len(dbg.writeWatches) > 0 {
		dbg.drg.Mem.SetAccessHook(dbg.onMemoryAccess)
	}
}

// onMemoryAccess is the hook installed on the memory system whenever at
// least one watchpoint exists. Unlike instruction breakpoints there is no
// redispatch. An access happens once and is dispatched once.
func (dbg *Debugger) onMemoryAccess(access memory.Access, addr uint16) {
	dbg.crit.Lock()
	list := dbg.readWatches
	if access == memory.AccessWrite {
		list = dbg.writeWatches
	}
	var handlers []func(uint16)
	for _, wp := range list {
		if addr >= wp.Addr && addr <= wp.AddrEnd {
			handlers = append(handlers, wp.Handler)
		}
	}
	dbg.crit.Unlock()

	for _, h := range handlers {
		h(addr)
	}
}
