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

package curated_test

import (
	"errors"
	"testing"

	"github.com/dragon-emu/gopherdragon/curated"
	"github.com/dragon-emu/gopherdragon/test"
)

const testPattern = "test error: %s"

func TestIdentification(t *testing.T) {
	err := curated.Errorf(testPattern, "detail")
	test.ExpectSuccess(t, curated.IsAny(err))
	test.ExpectSuccess(t, curated.Is(err, testPattern))
	test.ExpectFailure(t, curated.Is(err, "some other pattern"))

	plain := errors.New("plain error")
	test.ExpectFailure(t, curated.IsAny(plain))
	test.ExpectFailure(t, curated.Is(plain, testPattern))

	test.ExpectFailure(t, curated.IsAny(nil))
}

func TestWrapping(t *testing.T) {
	inner := curated.Errorf(testPattern, "detail")
	outer := curated.Errorf("outer: %v", inner)

	test.ExpectSuccess(t, curated.Has(outer, testPattern))
	test.ExpectSuccess(t, curated.Has(outer, "outer: %v"))
	test.ExpectFailure(t, curated.Has(outer, "not in the chain"))
}

func TestDeduplication(t *testing.T) {
	// an error message that would start with the same part twice is
	// de-duplicated when printed
	inner := curated.Errorf("debugger: %v", errors.New("debugger: oops"))
	test.ExpectEquality(t, inner.Error(), "debugger: oops")
}
