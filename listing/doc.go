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

// Package listing reads the symbols of one segment from a textual linker
// listing.
//
// A listing is line oriented. Lines that begin with a space are metadata. Two
// forms of metadata line are recognised:
//
//	 seg Main ...
//	 size ...
//
// The first opens a segment. The token after "seg" is the name of the
// segment. The second closes the current segment. All other metadata lines are
// ignored.
//
// Every other non-empty line is a tab separated symbol line. The first field
// is the symbol name and the fourth field holds one or more addresses, each
// prefixed by a '$'. The last address in the field is the address of the
// symbol:
//
//	Foo	x	y	 blah $100
//
// Only symbol lines inside the target segment are returned. Symbol lines that
// cannot be parsed are either fatal (Options.Strict) or are recorded in the
// Malformed field of the Listing and logged.
package listing
