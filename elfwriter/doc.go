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

// Package elfwriter creates a minimal ELF32 big-endian object file that
// describes the symbols of a binary image already resident in memory. The
// object has a fixed shape:
//
//	index  section     content
//	0      (null)
//	1      .text       header only. address and size of the image
//	2      .shstrtab   section names
//	3      .symtab     one placeholder entry and one entry per symbol
//	4      .strtab     symbol names
//
// The contents of .text are never written. A debugger loading the object
// together with the image at the configured base address can then show
// symbol names for addresses in the image.
//
// Offsets and sizes are calculated by NewLayout() before anything is written.
// Write() then writes the header, the section headers and the tables in file
// order. The size of each symbol is inferred from the address of the symbol
// that follows it in the list.
package elfwriter
