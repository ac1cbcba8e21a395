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

package romimage_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/list2elf/list2elf/curated"
	"github.com/list2elf/list2elf/romimage"
	"github.com/list2elf/list2elf/test"
)

func TestLoad(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "test.rom")
	err := os.WriteFile(fn, []byte("abc"), 0o644)
	test.DemandSuccess(t, err)

	img, err := romimage.Load(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, img.Filename, fn)
	test.ExpectEquality(t, img.Size, uint32(3))
	test.ExpectEquality(t, img.Hash, "a9993e364706816aba3e25717850c26c9cd0d89d")

	sz, err := romimage.Size(fn)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, sz, uint32(3))
}

func TestUnreadable(t *testing.T) {
	dir := t.TempDir()

	_, err := romimage.Load(filepath.Join(dir, "missing.rom"))
	test.ExpectSuccess(t, curated.Is(err, curated.ImageUnreadable))
	test.ExpectSuccess(t, errors.Is(err, fs.ErrNotExist))

	_, err = romimage.Size(filepath.Join(dir, "missing.rom"))
	test.ExpectSuccess(t, curated.Is(err, curated.ImageUnreadable))

	_, err = romimage.Size(dir)
	test.ExpectSuccess(t, curated.Is(err, curated.ImageUnreadable))

	empty := filepath.Join(dir, "empty.rom")
	err = os.WriteFile(empty, nil, 0o644)
	test.DemandSuccess(t, err)

	_, err = romimage.Size(empty)
	test.ExpectSuccess(t, curated.Is(err, curated.ImageUnreadable))
	_, err = romimage.Load(empty)
	test.ExpectSuccess(t, curated.Is(err, curated.ImageUnreadable))
}
