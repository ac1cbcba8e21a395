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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface and are created with the
// Errorf() function, which takes a pattern string and a list of values in the
// same way as fmt.Errorf().
//
// The pattern is remembered by the error and can be tested for with the Is()
// and Has() functions. Is() checks the outermost error only:
//
//	err := curated.Errorf(curated.InputUnreadable, "rom.list", ioErr)
//	if curated.Is(err, curated.InputUnreadable) {
//		...
//	}
//
// Has() checks the pattern anywhere in the chain of curated errors that were
// passed as values to Errorf().
//
// The Error() function normalises the message so that adjacent duplicate
// parts of the chain are removed. Parts are separated by the sub-string ": ".
// For example, a "listing: %v" error wrapping another "listing: %v" error
// will produce the message "listing: ..." and not "listing: listing: ...".
//
// The sentinel patterns used by list2elf are declared in sentinels.go. New
// patterns should be added there, suitably named and commented.
package curated
