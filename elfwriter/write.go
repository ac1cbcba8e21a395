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
	"bufio"
	"debug/elf"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"

	"github.com/list2elf/list2elf/curated"
	"github.com/list2elf/list2elf/listing"
	"github.com/list2elf/list2elf/logger"
)

// SymbolSize returns the inferred size of the symbol at index i. This is the
// distance to the address of the next symbol in the list, in 32 bit unsigned
// arithmetic. The last symbol has a size of zero.
//
// A symbol followed by a symbol at a lower address has a size that wraps
// around the address space.
func SymbolSize(symbols []listing.Symbol, i int) uint32 {
	if i+1 >= len(symbols) {
		return 0
	}
	return symbols[i+1].Address - symbols[i].Address
}

// recordWriter writes fixed size records in big-endian byte order. the first
// error is kept and all subsequent writes are ignored.
type recordWriter struct {
	w   io.Writer
	n   uint32
	err error
}

func (rw *recordWriter) write(data any) {
	if rw.err != nil {
		return
	}
	rw.err = binary.Write(rw.w, binary.BigEndian, data)
	if rw.err == nil {
		rw.n += uint32(binary.Size(data))
	}
}

// Write the object file for the list of symbols to the io.Writer.
func Write(w io.Writer, cfg Config, symbols []listing.Symbol) error {
	err := cfg.Validate()
	if err != nil {
		return err
	}

	l := NewLayout(symbols)
	rw := &recordWriter{w: w}

	rw.write(l.fileHeader(cfg))
	for _, sh := range l.sectionHeaders(cfg) {
		rw.write(sh)
	}

	if rw.err == nil && rw.n != l.ShstrtabOffset {
		return curated.Errorf("elfwriter: %v", "section header table does not end at the start of .shstrtab")
	}
	rw.write(shstrtab.data)

	// placeholder entry at index zero
	rw.write(elf.Sym32{Info: symbolInfo})

	strtab := newStringTable()
	for i, s := range symbols {
		if i+1 < len(symbols) && symbols[i+1].Address < s.Address {
			logger.Logf(logger.Allow, "elfwriter", "%s is followed by a symbol at a lower address. size wraps to $%08x", s.Name, SymbolSize(symbols, i))
		}

		rw.write(elf.Sym32{
			Name:  strtab.add(s.Name),
			Value: s.Address + cfg.BaseAddress,
			Size:  SymbolSize(symbols, i),
			Info:  symbolInfo,
			Shndx: sectionText,
		})
	}

	if uint32(len(strtab.data)) != l.StrtabSize {
		return curated.Errorf("elfwriter: %v", "string table size does not match layout")
	}
	rw.write(strtab.data)

	if rw.err != nil {
		return curated.Errorf("elfwriter: %v", rw.err)
	}
	if rw.n != l.FileSize {
		return curated.Errorf("elfwriter: %v", "number of bytes written does not match layout")
	}

	return nil
}

// WriteFile writes the object file for the list of symbols to the named file.
// The object is written to a temporary file in the same directory, which is
// renamed over the named file once it is complete. If the object cannot be
// written completely the named file is left untouched.
func WriteFile(filename string, cfg Config, symbols []listing.Symbol) error {
	err := cfg.Validate()
	if err != nil {
		return err
	}

	err = writeFile(filename, func(w io.Writer) error {
		return Write(w, cfg, symbols)
	})
	if err != nil {
		return err
	}

	logger.Logf(logger.Allow, "elfwriter", "wrote %d symbols to %s", len(symbols), filename)

	return nil
}

// permissions of a newly written object file, before the umask
const filePerm = 0o644

// writeFile calls write() with a buffered writer to a temporary file and
// renames the temporary file to filename on success. the temporary file is
// always removed on failure.
func writeFile(filename string, write func(w io.Writer) error) (rerr error) {
	f, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+".*")
	if err != nil {
		return curated.Errorf(curated.OutputUnwritable, filename, err)
	}
	tmp := f.Name()

	closed := false
	defer func() {
		if !closed {
			_ = f.Close()
		}
		if rerr != nil {
			_ = os.Remove(tmp)
		}
	}()

	b := bufio.NewWriter(f)

	err = write(b)
	if err != nil {
		return curated.Errorf(curated.OutputUnwritable, filename, err)
	}

	err = b.Flush()
	if err != nil {
		return curated.Errorf(curated.OutputUnwritable, filename, err)
	}

	err = f.Chmod(filePerm)
	if err != nil {
		return curated.Errorf(curated.OutputUnwritable, filename, err)
	}

	closed = true
	err = f.Close()
	if err != nil {
		return curated.Errorf(curated.OutputUnwritable, filename, err)
	}

	err = os.Rename(tmp, filename)
	if err != nil {
		return curated.Errorf(curated.OutputUnwritable, filename, err)
	}

	return nil
}
