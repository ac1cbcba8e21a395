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

package elfwriter_test

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/list2elf/list2elf/curated"
	"github.com/list2elf/list2elf/elfwriter"
	"github.com/list2elf/list2elf/listing"
	"github.com/list2elf/list2elf/test"
)

var example = []listing.Symbol{
	{Name: "Foo", Address: 0x100},
	{Name: "Bar", Address: 0x200},
}

func write(t *testing.T, cfg elfwriter.Config, symbols []listing.Symbol) []byte {
	t.Helper()
	var b bytes.Buffer
	err := elfwriter.Write(&b, cfg, symbols)
	test.DemandSuccess(t, err)
	return b.Bytes()
}

// readHeaders decodes the ELF header and the section header table without
// the help of the debug/elf file reader.
func readHeaders(t *testing.T, data []byte) (elf.Header32, [5]elf.Section32) {
	t.Helper()

	var hdr elf.Header32
	err := binary.Read(bytes.NewReader(data), binary.BigEndian, &hdr)
	test.DemandSuccess(t, err)

	var sh [5]elf.Section32
	test.DemandEquality(t, hdr.Shnum, uint16(len(sh)))
	err = binary.Read(bytes.NewReader(data[hdr.Shoff:]), binary.BigEndian, &sh)
	test.DemandSuccess(t, err)

	return hdr, sh
}

func TestExample(t *testing.T) {
	data := write(t, elfwriter.DefaultConfig(), example)

	f, err := elf.NewFile(bytes.NewReader(data))
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, f.Class, elf.ELFCLASS32)
	test.ExpectEquality(t, f.Data, elf.ELFDATA2MSB)
	test.ExpectEquality(t, f.Machine, elf.EM_68K)
	test.ExpectEquality(t, f.Type, elf.ET_EXEC)
	test.ExpectEquality(t, f.Entry, uint64(0))
	test.ExpectEquality(t, len(f.Progs), 0)

	test.DemandEquality(t, len(f.Sections), 5)
	names := []string{"", ".text", ".shstrtab", ".symtab", ".strtab"}
	for i, s := range f.Sections {
		test.ExpectEquality(t, s.Name, names[i])
	}

	text := f.Section(".text")
	test.ExpectEquality(t, text.Type, elf.SHT_PROGBITS)
	test.ExpectEquality(t, text.Flags, elf.SHF_ALLOC|elf.SHF_EXECINSTR)
	test.ExpectEquality(t, text.Addr, uint64(0x40800000))
	test.ExpectEquality(t, text.Size, uint64(0x100000))

	syms, err := f.Symbols()
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(syms), 2)

	test.ExpectEquality(t, syms[0].Name, "Foo")
	test.ExpectEquality(t, syms[0].Value, uint64(0x40800100))
	test.ExpectEquality(t, syms[0].Size, uint64(0x100))
	test.ExpectEquality(t, syms[1].Name, "Bar")
	test.ExpectEquality(t, syms[1].Value, uint64(0x40800200))
	test.ExpectEquality(t, syms[1].Size, uint64(0))

	for _, s := range syms {
		test.ExpectEquality(t, elf.ST_BIND(s.Info), elf.STB_GLOBAL)
		test.ExpectEquality(t, elf.ST_TYPE(s.Info), elf.STT_FUNC)
		test.ExpectEquality(t, s.Section, elf.SectionIndex(1))
	}
}

func TestHeaderBytes(t *testing.T) {
	// the historical tool wrote an e_type of zero
	cfg := elfwriter.DefaultConfig()
	cfg.Type = elf.ET_NONE
	data := write(t, cfg, example)

	expected := []byte{
		0x7f, 'E', 'L', 'F', 0x1, 0x2, 0x1, 0x0,
		0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0,
		0x0, 0x0, 0x0, 0x4, 0x0, 0x0, 0x0, 0x1,
		0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0,
		0x0, 0x0, 0x0, 0x34, 0x0, 0x0, 0x0, 0x0,
		0x0, 0x34, 0x0, 0x20, 0x0, 0x0, 0x0, 0x28,
		0x0, 0x5, 0x0, 0x2,
	}
	test.DemandEquality(t, len(data) > len(expected), true)
	test.ExpectSuccess(t, bytes.Equal(data[:len(expected)], expected), fmt.Sprintf("% x", data[:len(expected)]))

	// type is configurable
	data = write(t, elfwriter.DefaultConfig(), example)
	test.ExpectEquality(t, binary.BigEndian.Uint16(data[16:]), uint16(elf.ET_EXEC))
}

func TestSectionHeaderBytes(t *testing.T) {
	data := write(t, elfwriter.DefaultConfig(), example)
	_, sh := readHeaders(t, data)

	test.ExpectEquality(t, sh[0], elf.Section32{})
	test.ExpectEquality(t, sh[1], elf.Section32{
		Name: 0x1b, Type: 1, Flags: 6, Addr: 0x40800000, Off: 0, Size: 0x100000,
		Link: 3, Info: 0, Addralign: 4, Entsize: 0,
	})
	test.ExpectEquality(t, sh[2], elf.Section32{
		Name: 0x01, Type: 3, Flags: 0, Addr: 0, Off: 0xfc, Size: 0x2c,
		Link: 0, Info: 0, Addralign: 1, Entsize: 0,
	})
	test.ExpectEquality(t, sh[3], elf.Section32{
		Name: 0x0b, Type: 2, Flags: 0, Addr: 0, Off: 0x128, Size: 0x30,
		Link: 4, Info: 0, Addralign: 1, Entsize: 0x10,
	})
	test.ExpectEquality(t, sh[4], elf.Section32{
		Name: 0x13, Type: 3, Flags: 0, Addr: 0, Off: 0x158, Size: 0x09,
		Link: 0, Info: 0, Addralign: 1, Entsize: 0,
	})

	shstrtab := "\x00.shstrtab\x00.symtab\x00.strtab\x00.text\x00" + strings.Repeat("\x00", 11)
	test.ExpectEquality(t, string(data[0xfc:0x128]), shstrtab)
	test.ExpectEquality(t, string(data[0x158:]), "\x00Foo\x00Bar\x00")
	test.ExpectEquality(t, len(data), 0x161)
}

func TestSymbolEntryBytes(t *testing.T) {
	data := write(t, elfwriter.DefaultConfig(), example)

	expected := []byte{
		// placeholder
		0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0,
		0x0, 0x0, 0x0, 0x0, 0x12, 0x0, 0x0, 0x0,
		// Foo
		0x0, 0x0, 0x0, 0x1, 0x40, 0x80, 0x01, 0x00,
		0x0, 0x0, 0x01, 0x00, 0x12, 0x0, 0x0, 0x1,
		// Bar
		0x0, 0x0, 0x0, 0x5, 0x40, 0x80, 0x02, 0x00,
		0x0, 0x0, 0x0, 0x0, 0x12, 0x0, 0x0, 0x1,
	}
	test.ExpectSuccess(t, bytes.Equal(data[0x128:0x158], expected), fmt.Sprintf("% x", data[0x128:0x158]))
}

// symbolSets used by the layout tests
var symbolSets = [][]listing.Symbol{
	{},
	{{Name: "Only", Address: 0}},
	example,
	{
		{Name: "StartBoot", Address: 0x2a},
		{Name: "a", Address: 0x90},
		{Name: "InitIrqTables", Address: 0x90},
		{Name: strings.Repeat("LongName", 20), Address: 0x4000},
		{Name: "Z", Address: 0xfffff},
	},
}

func TestLayoutMatchesContent(t *testing.T) {
	for n, symbols := range symbolSets {
		data := write(t, elfwriter.DefaultConfig(), symbols)
		hdr, sh := readHeaders(t, data)
		l := elfwriter.NewLayout(symbols)

		test.ExpectEquality(t, hdr.Shoff, uint32(0x34), n)
		test.ExpectEquality(t, hdr.Shstrndx, uint16(2), n)

		// section header table ends where .shstrtab starts
		test.ExpectEquality(t, hdr.Shoff+uint32(hdr.Shnum)*uint32(hdr.Shentsize), sh[2].Off, n)

		// regions are contiguous and the last one ends at the end of the file
		test.ExpectEquality(t, sh[2].Off+sh[2].Size, sh[3].Off, n)
		test.ExpectEquality(t, sh[3].Off+sh[3].Size, sh[4].Off, n)
		test.ExpectEquality(t, sh[4].Off+sh[4].Size, uint32(len(data)), n)
		test.ExpectEquality(t, l.FileSize, uint32(len(data)), n)

		// header values equal the calculated layout
		test.ExpectEquality(t, sh[3].Off, l.SymtabOffset, n)
		test.ExpectEquality(t, sh[3].Size, l.SymtabSize, n)
		test.ExpectEquality(t, sh[4].Off, l.StrtabOffset, n)
		test.ExpectEquality(t, sh[4].Size, l.StrtabSize, n)

		// size formulas
		names := 0
		for _, s := range symbols {
			names += len(s.Name) + 1
		}
		test.ExpectEquality(t, sh[3].Size, uint32(0x10*(len(symbols)+1)), n)
		test.ExpectEquality(t, sh[4].Size, uint32(1+names), n)

		// every name offset points at the correct name. offsets increase
		// without gaps or overlaps
		strtab := data[sh[4].Off:]
		test.ExpectEquality(t, strtab[0], byte(0), n)
		expectedOffset := uint32(1)
		for i, s := range symbols {
			var sym elf.Sym32
			off := sh[3].Off + uint32(i+1)*0x10
			err := binary.Read(bytes.NewReader(data[off:]), binary.BigEndian, &sym)
			test.DemandSuccess(t, err)

			test.ExpectEquality(t, sym.Name, expectedOffset, n, i)
			end := bytes.IndexByte(strtab[sym.Name:], 0)
			test.DemandEquality(t, end >= 0, true, n, i)
			test.ExpectEquality(t, string(strtab[sym.Name:sym.Name+uint32(end)]), s.Name, n, i)
			test.ExpectEquality(t, sym.Size, elfwriter.SymbolSize(symbols, i), n, i)
			test.ExpectEquality(t, sym.Value, s.Address+elfwriter.DefaultBaseAddress, n, i)

			expectedOffset += uint32(len(s.Name) + 1)
		}
	}
}

func TestEmpty(t *testing.T) {
	data := write(t, elfwriter.DefaultConfig(), nil)
	_, sh := readHeaders(t, data)

	test.ExpectEquality(t, sh[3].Size, uint32(0x10))
	test.ExpectEquality(t, sh[4].Size, uint32(1))
	test.ExpectEquality(t, len(data), 0x128+0x10+1)

	f, err := elf.NewFile(bytes.NewReader(data))
	test.DemandSuccess(t, err)
	syms, err := f.Symbols()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(syms), 0)
}

func TestSymbolSize(t *testing.T) {
	symbols := []listing.Symbol{
		{Name: "A", Address: 0x100},
		{Name: "B", Address: 0x180},
		{Name: "C", Address: 0x180},
		{Name: "D", Address: 0x80},
		{Name: "E", Address: 0x90},
	}
	test.ExpectEquality(t, elfwriter.SymbolSize(symbols, 0), uint32(0x80))
	test.ExpectEquality(t, elfwriter.SymbolSize(symbols, 1), uint32(0))

	// next address is lower. size wraps around the address space
	test.ExpectEquality(t, elfwriter.SymbolSize(symbols, 2), uint32(0xffffff00))
	test.ExpectEquality(t, elfwriter.SymbolSize(symbols, 3), uint32(0x10))
	test.ExpectEquality(t, elfwriter.SymbolSize(symbols, 4), uint32(0))
	test.ExpectEquality(t, elfwriter.SymbolSize(nil, 0), uint32(0))
}

func TestValueWrapAround(t *testing.T) {
	symbols := []listing.Symbol{{Name: "High", Address: 0xc0000000}}
	cfg := elfwriter.DefaultConfig()
	cfg.ImageSize = 0
	data := write(t, cfg, symbols)

	f, err := elf.NewFile(bytes.NewReader(data))
	test.DemandSuccess(t, err)
	syms, err := f.Symbols()
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(syms), 1)
	test.ExpectEquality(t, syms[0].Value, uint64(0x00800000))
}

func TestConfiguration(t *testing.T) {
	cfg := elfwriter.Config{
		BaseAddress: 0xfff00000,
		ImageSize:   0x80000,
		Machine:     elf.EM_PPC,
		Type:        elf.ET_REL,
	}
	data := write(t, cfg, example)

	f, err := elf.NewFile(bytes.NewReader(data))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, f.Machine, elf.EM_PPC)
	test.ExpectEquality(t, f.Type, elf.ET_REL)
	test.ExpectEquality(t, f.Section(".text").Addr, uint64(0xfff00000))
	test.ExpectEquality(t, f.Section(".text").Size, uint64(0x80000))
}

func TestValidate(t *testing.T) {
	test.ExpectSuccess(t, elfwriter.DefaultConfig().Validate())

	cfg := elfwriter.DefaultConfig()
	cfg.BaseAddress = 0xfff80000
	cfg.ImageSize = 0x80000
	test.ExpectSuccess(t, cfg.Validate())
	cfg.ImageSize = 0x80001
	test.ExpectSuccess(t, curated.Is(cfg.Validate(), curated.InvalidConfiguration))

	var b bytes.Buffer
	err := elfwriter.Write(&b, cfg, example)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, b.Len(), 0)
}

func TestWriteFailure(t *testing.T) {
	size := int(elfwriter.NewLayout(example).FileSize)
	for _, n := range []int{0, 1, 0x34, 0x35, 0xfc, 0x128, 0x150, size - 1} {
		cw, err := test.NewCappedWriter(n)
		test.DemandSuccess(t, err)
		err = elfwriter.Write(cw, elfwriter.DefaultConfig(), example)
		test.ExpectFailure(t, err, n)
		test.ExpectSuccess(t, errors.Is(err, test.ErrCapped), n)
	}

	cw, err := test.NewCappedWriter(size)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, elfwriter.Write(cw, elfwriter.DefaultConfig(), example))
}

func TestDecreasingAddressSize(t *testing.T) {
	symbols := []listing.Symbol{
		{Name: "Foo", Address: 0x200},
		{Name: "Bar", Address: 0x100},
	}
	data := write(t, elfwriter.DefaultConfig(), symbols)

	f, err := elf.NewFile(bytes.NewReader(data))
	test.DemandSuccess(t, err)
	syms, err := f.Symbols()
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(syms), 2)
	test.ExpectEquality(t, syms[0].Size, uint64(0xffffff00))
	test.ExpectEquality(t, syms[1].Size, uint64(0))
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	fn := filepath.Join(dir, "rom.elf")
	err := elfwriter.WriteFile(fn, elfwriter.DefaultConfig(), example)
	test.DemandSuccess(t, err)

	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, bytes.Equal(data, write(t, elfwriter.DefaultConfig(), example)))

	// an existing file is replaced
	err = elfwriter.WriteFile(fn, elfwriter.DefaultConfig(), nil)
	test.DemandSuccess(t, err)
	data, err = os.ReadFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(data), 0x128+0x10+1)

	fi, err := os.Stat(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, fi.Mode().IsRegular(), true)

	// no temporary files are left behind
	entries, err := os.ReadDir(dir)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(entries), 1)

	// output directory does not exist
	fn = filepath.Join(dir, "missing", "rom.elf")
	err = elfwriter.WriteFile(fn, elfwriter.DefaultConfig(), example)
	test.ExpectSuccess(t, curated.Is(err, curated.OutputUnwritable))

	// invalid configuration does not create a file
	fn = filepath.Join(dir, "invalid.elf")
	cfg := elfwriter.DefaultConfig()
	cfg.BaseAddress = 0xfff80000
	err = elfwriter.WriteFile(fn, cfg, example)
	test.ExpectSuccess(t, curated.Is(err, curated.InvalidConfiguration))
	_, err = os.Stat(fn)
	test.ExpectSuccess(t, errors.Is(err, os.ErrNotExist))
}

func TestParseMachine(t *testing.T) {
	for _, s := range []string{"68K", "68k", "EM_68K", "em_68k", "4", "0x4"} {
		m, err := elfwriter.ParseMachine(s)
		test.ExpectSuccess(t, err, s)
		test.ExpectEquality(t, m, elf.EM_68K, s)
	}

	m, err := elfwriter.ParseMachine("ppc")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, m, elf.EM_PPC)

	_, err = elfwriter.ParseMachine("Z80000")
	test.ExpectSuccess(t, curated.Is(err, curated.InvalidConfiguration))

	// does not fit in the 16 bit e_machine field
	_, err = elfwriter.ParseMachine("0x10000")
	test.ExpectSuccess(t, curated.Is(err, curated.InvalidConfiguration))
	_, err = elfwriter.ParseMachine("65536")
	test.ExpectSuccess(t, curated.Is(err, curated.InvalidConfiguration))
}

func TestParseType(t *testing.T) {
	for _, s := range []string{"EXEC", "exec", "ET_EXEC", "2"} {
		typ, err := elfwriter.ParseType(s)
		test.ExpectSuccess(t, err, s)
		test.ExpectEquality(t, typ, elf.ET_EXEC, s)
	}

	typ, err := elfwriter.ParseType("rel")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, typ, elf.ET_REL)

	typ, err = elfwriter.ParseType("none")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, typ, elf.ET_NONE)

	_, err = elfwriter.ParseType("library")
	test.ExpectSuccess(t, curated.Is(err, curated.InvalidConfiguration))

	// does not fit in the 16 bit e_type field
	_, err = elfwriter.ParseType("0x10000")
	test.ExpectSuccess(t, curated.Is(err, curated.InvalidConfiguration))
}
