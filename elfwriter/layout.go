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

package elfwriter

import (
	"debug/elf"
	"fmt"
	"strings"

	"github.com/list2elf/list2elf/listing"
)

// sizes of the fixed size records
const (
	headerSize        = 0x34
	programHeaderSize = 0x20
	sectionHeaderSize = 0x28
	symbolEntrySize   = 0x10
)

// section indexes
const (
	sectionNull = iota
	sectionText
	sectionShstrtab
	sectionSymtab
	sectionStrtab
	numSections
)

// .shstrtab is padded to a fixed size
const shstrtabSize = 0x2c

// the section header table follows the ELF header and .shstrtab follows the
// section header table
const (
	sectionHeadersOffset = headerSize
	shstrtabOffset       = sectionHeadersOffset + numSections*sectionHeaderSize
)

// every symbol is a global function
var symbolInfo = elf.ST_INFO(elf.STB_GLOBAL, elf.STT_FUNC)

// stringTable is a list of NUL terminated strings. offset zero is always the
// empty string.
type stringTable struct {
	data []byte
}

func newStringTable() *stringTable {
	return &stringTable{data: []byte{0}}
}

// add string to table and return its offset.
func (t *stringTable) add(s string) uint32 {
	offset := uint32(len(t.data))
	t.data = append(t.data, s...)
	t.data = append(t.data, 0)
	return offset
}

// sectionNames is the content of .shstrtab and the offset of each name in it.
type sectionNames struct {
	data     []byte
	text     uint32
	shstrtab uint32
	symtab   uint32
	strtab   uint32
}

func newSectionNames() sectionNames {
	t := newStringTable()

	var n sectionNames
	n.shstrtab = t.add(".shstrtab")
	n.symtab = t.add(".symtab")
	n.strtab = t.add(".strtab")
	n.text = t.add(".text")

	n.data = make([]byte, shstrtabSize)
	copy(n.data, t.data)

	return n
}

var shstrtab = newSectionNames()

// Layout is the position and size of every variable sized region of the
// object file. All offsets are from the start of the file.
type Layout struct {
	NumSymbols int

	ShstrtabOffset uint32
	ShstrtabSize   uint32

	SymtabOffset uint32
	SymtabSize   uint32

	StrtabOffset uint32
	StrtabSize   uint32

	// size of the complete object file
	FileSize uint32
}

// NewLayout calculates the layout of the object file for the list of symbols.
func NewLayout(symbols []listing.Symbol) Layout {
	names := 0
	for _, s := range symbols {
		names += len(s.Name) + 1
	}

	l := Layout{
		NumSymbols:     len(symbols),
		ShstrtabOffset: shstrtabOffset,
		ShstrtabSize:   shstrtabSize,
	}

	// the symbol table has an additional placeholder entry at the start
	l.SymtabOffset = l.ShstrtabOffset + l.ShstrtabSize
	l.SymtabSize = symbolEntrySize * uint32(len(symbols)+1)

	// the string table has an empty string at the start
	l.StrtabOffset = l.SymtabOffset + l.SymtabSize
	l.StrtabSize = uint32(names + 1)

	l.FileSize = l.StrtabOffset + l.StrtabSize

	return l
}

func (l Layout) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("symbols:   %d\n", l.NumSymbols))
	s.WriteString(fmt.Sprintf(".shstrtab: offset $%06x size $%x\n", l.ShstrtabOffset, l.ShstrtabSize))
	s.WriteString(fmt.Sprintf(".symtab:   offset $%06x size $%x\n", l.SymtabOffset, l.SymtabSize))
	s.WriteString(fmt.Sprintf(".strtab:   offset $%06x size $%x\n", l.StrtabOffset, l.StrtabSize))
	s.WriteString(fmt.Sprintf("file size: $%x", l.FileSize))
	return s.String()
}

func ident() [elf.EI_NIDENT]byte {
	var id [elf.EI_NIDENT]byte
	copy(id[:], elf.ELFMAG)
	id[elf.EI_CLASS] = byte(elf.ELFCLASS32)
	id[elf.EI_DATA] = byte(elf.ELFDATA2MSB)
	id[elf.EI_VERSION] = byte(elf.EV_CURRENT)
	id[elf.EI_OSABI] = byte(elf.ELFOSABI_NONE)
	return id
}

// fileHeader returns the ELF header. there are no program headers but the
// program header entry size is still set.
func (l Layout) fileHeader(cfg Config) elf.Header32 {
	return elf.Header32{
		Ident:     ident(),
		Type:      uint16(cfg.Type),
		Machine:   uint16(cfg.Machine),
		Version:   uint32(elf.EV_CURRENT),
		Shoff:     sectionHeadersOffset,
		Ehsize:    headerSize,
		Phentsize: programHeaderSize,
		Shentsize: sectionHeaderSize,
		Shnum:     numSections,
		Shstrndx:  sectionShstrtab,
	}
}

// sectionHeaders returns the section header table.
func (l Layout) sectionHeaders(cfg Config) [numSections]elf.Section32 {
	var sh [numSections]elf.Section32

	sh[sectionText] = elf.Section32{
		Name:      shstrtab.text,
		Type:      uint32(elf.SHT_PROGBITS),
		Flags:     uint32(elf.SHF_ALLOC | elf.SHF_EXECINSTR),
		Addr:      cfg.BaseAddress,
		Size:      cfg.ImageSize,
		Link:      sectionSymtab,
		Addralign: 4,
	}

	sh[sectionShstrtab] = elf.Section32{
		Name:      shstrtab.shstrtab,
		Type:      uint32(elf.SHT_STRTAB),
		Off:       l.ShstrtabOffset,
		Size:      l.ShstrtabSize,
		Addralign: 1,
	}

	sh[sectionSymtab] = elf.Section32{
		Name:      shstrtab.symtab,
		Type:      uint32(elf.SHT_SYMTAB),
		Off:       l.SymtabOffset,
		Size:      l.SymtabSize,
		Link:      sectionStrtab,
		Addralign: 1,
		Entsize:   symbolEntrySize,
	}

	sh[sectionStrtab] = elf.Section32{
		Name:      shstrtab.strtab,
		Type:      uint32(elf.SHT_STRTAB),
		Off:       l.StrtabOffset,
		Size:      l.StrtabSize,
		Addralign: 1,
	}

	return sh
}
