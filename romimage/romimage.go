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

package romimage

import (
	"crypto/sha1"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/list2elf/list2elf/curated"
	"github.com/list2elf/list2elf/logger"
)

// Image is a summary of a ROM image file.
type Image struct {
	Filename string

	// size of the file in bytes
	Size uint32

	// SHA-1 hash of the file contents
	Hash string
}

func (img Image) String() string {
	return fmt.Sprintf("%s ($%x bytes, sha1 %s)", img.Filename, img.Size, img.Hash)
}

// Load opens the named file and returns its size and hash. The file must be
// a regular file of at least one byte and no more than 4GiB.
func Load(filename string) (Image, error) {
	img := Image{Filename: filename}

	f, err := os.Open(filename)
	if err != nil {
		return img, curated.Errorf(curated.ImageUnreadable, filename, err)
	}
	defer f.Close()

	size, err := Size(filename)
	if err != nil {
		return img, err
	}
	img.Size = size

	h := sha1.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return img, curated.Errorf(curated.ImageUnreadable, filename, err)
	}
	if n != int64(size) {
		return img, curated.Errorf(curated.ImageUnreadable, filename, "file changed size while being read")
	}
	img.Hash = fmt.Sprintf("%x", h.Sum(nil))

	logger.Logf(logger.Allow, "romimage", "%s", img)

	return img, nil
}

// Size returns the size of the named ROM image file. The file is not read.
func Size(filename string) (uint32, error) {
	fi, err := os.Stat(filename)
	if err != nil {
		return 0, curated.Errorf(curated.ImageUnreadable, filename, err)
	}
	if fi.IsDir() {
		return 0, curated.Errorf(curated.ImageUnreadable, filename, "is a directory")
	}
	if fi.Size() == 0 {
		return 0, curated.Errorf(curated.ImageUnreadable, filename, "file is empty")
	}
	if fi.Size() > math.MaxUint32 {
		return 0, curated.Errorf(curated.ImageUnreadable, filename, "file is larger than 4GiB")
	}
	return uint32(fi.Size()), nil
}
