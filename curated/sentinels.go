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

package curated

// Sentinel patterns. Each is used as the pattern argument to Errorf() and can
// be tested for with Is() and Has().
const (
	// input listing could not be opened or read. values: filename, error
	InputUnreadable = "input unreadable: %s: %v"

	// output object could not be created, written or closed. values:
	// filename, error
	OutputUnwritable = "output unwritable: %s: %v"

	// a data line in the target segment could not be parsed. values: line
	// number, reason
	MalformedSymbolLine = "malformed symbol line %d: %v"

	// a configuration value is out of range or not recognised. values: name,
	// reason
	InvalidConfiguration = "invalid configuration: %s: %v"

	// ROM image could not be inspected. values: filename, reason
	ImageUnreadable = "rom image unreadable: %s: %v"
)
