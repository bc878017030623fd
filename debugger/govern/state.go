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

package govern

// State indicates the emulation's running state.
type State int

// List of possible emulation states.
//
// Running is the default state and the state the machine returns to when a
// debugging client disconnects.
//
// Stepping lasts for exactly one instruction before the machine returns to
// the Halted state.
//
// Ending is terminal. Once entered the machine never executes again.
const (
	Running State = iota
	Halted
	Stepping
	Ending
)

func (s State) String() string {
	switch s {
	case Running:
		return "Running"
	case Halted:
		return "Halted"
	case Stepping:
		return "Stepping"
	case Ending:
		return "Ending"
	}

	return ""
}
