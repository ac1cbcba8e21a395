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

// Package prefs provides typed preference values and a way of setting them
// from the command line.
//
// Preference values (Bool, String, Uint32) are safe for concurrent use and
// can have hook functions that run before and after a new value is stored. A
// pre-hook returning an error prevents the value from being stored.
//
// The command line stack allows preferences to be specified as a single
// string of key/value pairs:
//
//	segment::Main; base::0x40800000; size::0x100000
//
// A group is pushed with PushCommandLineStack() and values are consumed with
// GetCommandLinePref(). Each value can be consumed once.
package prefs
