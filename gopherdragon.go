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

package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/dragon-emu/gopherdragon/curated"
	"github.com/dragon-emu/gopherdragon/debugger"
	"github.com/dragon-emu/gopherdragon/debugger/gdb"
	"github.com/dragon-emu/gopherdragon/hardware"
	"github.com/dragon-emu/gopherdragon/hardware/cpu"
	"github.com/dragon-emu/gopherdragon/logger"
	"github.com/dragon-emu/gopherdragon/modalflag"
	"github.com/dragon-emu/gopherdragon/statsview"
	"github.com/dragon-emu/gopherdragon/version"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)
	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %v\n", md, err)
		os.Exit(20)
	}
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	model := md.AddString("cpu", "6809", "cpu model (6809 or 6309)")
	gdbAddr := md.AddString("gdb", gdb.DefaultAddr, "address for the remote debugging server")
	org := md.AddUint("org", 0x0000, "load address of the binary image")
	echoLog := md.AddBool("log", false, "echo debugging log to stderr")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (available: %t)", statsview.Available()))
	md.AdditionalHelp("The optional argument is a raw binary image, loaded and run at the -org address.")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *echoLog {
		logger.SetEcho(os.Stderr)
	}
	if *stats {
		statsview.Launch(md.Output)
	}

	var m cpu.Model
	switch *model {
	case "6809":
		m = cpu.MC6809
	case "6309":
		m = cpu.HD6309
	default:
		return curated.Errorf("unrecognised cpu model (%s)", *model)
	}

	drg, err := hardware.NewDragon(m)
	if err != nil {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		// nothing to load. the machine runs from a cleared memory, which is
		// fine for a session driven entirely over the debugging connection
	case 1:
		if *org > 0xffff {
			return curated.Errorf("load address out of range (%x)", *org)
		}
		data, err := os.ReadFile(md.GetArg(0))
		if err != nil {
			return curated.Errorf("%v", err)
		}
		if err := drg.Load(uint16(*org), data); err != nil {
			return err
		}
		drg.CPU.Regs.PC.Load(uint16(*org))
	default:
		return curated.Errorf("too many arguments for %s mode", md)
	}

	dbg, err := debugger.New(drg)
	if err != nil {
		return err
	}

	srv, err := gdb.NewServer(dbg, drg, *gdbAddr)
	if err != nil {
		return err
	}

	machineDone := make(chan error, 1)
	go func() {
		machineDone <- drg.Run(dbg.ContinueCheck)
	}()

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.Run()
	}()

	// #ctrlc
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	select {
	case <-intChan:
		fmt.Println("\r")
	case err = <-serverDone:
		serverDone = nil
	case err = <-machineDone:
		machineDone = nil
	}

	srv.End()
	dbg.End()

	// collect whichever goroutine has not finished yet, preferring the first
	// error seen
	collect := func(done chan error) {
		if done == nil {
			return
		}
		select {
		case e := <-done:
			if err == nil {
				err = e
			}
		case <-time.After(3 * time.Second):
		}
	}
	collect(serverDone)
	collect(machineDone)

	return err
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("v", false, "display revision information")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	ver, rev, _ := version.Version()
	fmt.Printf("%s (%s)\n", version.ApplicationName, ver)
	if *revision {
		fmt.Printf("  %s\n", rev)
	}

	return nil
}
