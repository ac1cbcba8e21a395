// This file is part of list2elf.
//
// list2elf is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// list2elf is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with list2elf.  If not, see <https://www.gnu.org/licenses/>.

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The ExpectEquality(), ExpectSuccess() and ExpectFailure() functions report
// a test failure but allow the test to continue. The Demand*() variants stop
// the test immediately and should be used when the remainder of the test
// cannot sensibly run, for example when a parsed result is nil.
//
// ExpectSuccess() and ExpectFailure() accept bool and error values. A nil
// value is treated as a successful error value.
//
// The CompareWriter and CappedWriter types are implementations of io.Writer
// that are useful for capturing and limiting output.
package test
