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

package hardware

import (
	"github.com/dragon-emu/gopherdragon/curated"
	"github.com/dragon-emu/gopherdragon/debugger/govern"
)

// Run is the execution loop of the machine. The continueCheck function is
// called after every instruction and decides the run state for the next
// iteration. While the state is Halted no instructions execute; it is the
// responsibility of continueCheck to wait (with a bounded timeout) rather
// than spin.
//
// Run returns when continueCheck returns the Ending state or an error.
func (drg *Dragon) Run(continueCheck func() (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func() (govern.State, error) { return govern.Running, nil }
	}

	var err error

	state := govern.Running

	for state != govern.Ending {
		switch state {
		case govern.Running, govern.Stepping:
			if err = drg.CPU.ExecuteInstruction(nil); err != nil {
				return err
			}
		case govern.Halted:
			// nothing to do. continueCheck performs the bounded wait
		default:
			return curated.Errorf("dragon: unsupported run state (%s)", state)
		}

		state, err = continueCheck()
		if err != nil {
			return err
		}
	}

	return nil
}
