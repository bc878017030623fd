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

// Package curated provides the error type used throughout the project. A
// curated error is created with Errorf() in the same way an error would be
// created with fmt.Errorf(). The difference is that the format string, or
// pattern, is retained and can be tested for with the Is() and Has()
// functions.
//
// Pattern strings for errors that need to be identified are declared as
// constants in the package at fault. For example:
//
//	const NoDebugCPU = "debugger: no debug-capable CPU in machine"
//
//	...
//
//	if curated.Is(err, debugger.NoDebugCPU) {
//		...
//	}
//
// Errors that are only ever reported to the log or to the user need no
// declared pattern.
package curated
