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

// Package conversion joins the listing parser and the ELF writer. The
// Preferences type collects the settings for a conversion from command line
// flags and from the prefs command line stack. The Convert() function parses
// the listing and writes the object file, returning a Report.
//
// The Plan() function does everything Convert() does except write the object
// file. It is useful for checking a listing and for showing the layout of the
// object file that would be written.
package conversion
