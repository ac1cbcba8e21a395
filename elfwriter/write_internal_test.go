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
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/list2elf/list2elf/curated"
	"github.com/list2elf/list2elf/test"
)

func TestWriteFileFailureKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "rom.elf")

	err := os.WriteFile(fn, []byte("previous output"), 0o644)
	test.DemandSuccess(t, err)

	errDevice := errors.New("device full")
	err = writeFile(fn, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return errDevice
	})
	test.ExpectSuccess(t, curated.Is(err, curated.OutputUnwritable))
	test.ExpectSuccess(t, errors.Is(err, errDevice))

	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(data), "previous output")

	// the temporary file has been removed
	entries, err := os.ReadDir(dir)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(entries), 1)
	test.ExpectEquality(t, entries[0].Name(), "rom.elf")
}

func TestWriteFileFailureNoExisting(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "rom.elf")

	err := writeFile(fn, func(w io.Writer) error {
		return errors.New("device full")
	})
	test.ExpectFailure(t, err)

	entries, err := os.ReadDir(dir)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(entries), 0)
}

func TestWriteFileSuccess(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "rom.elf")

	err := os.WriteFile(fn, []byte("previous output"), 0o644)
	test.DemandSuccess(t, err)

	err = writeFile(fn, func(w io.Writer) error {
		_, err := io.WriteString(w, "new output")
		return err
	})
	test.DemandSuccess(t, err)

	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(data), "new output")

	entries, err := os.ReadDir(dir)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(entries), 1)
}
