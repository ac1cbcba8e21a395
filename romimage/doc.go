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

// Package romimage inspects the raw binary image that a symbol listing
// describes. The size of the image is used for the size of the .text section
// in the generated object file, in place of the configured image size.
//
// The image is never copied into the object file. Only its size and hash are
// of interest:
//
//	img, err := romimage.Load("Quadra800.rom")
//	if err != nil {
//		return err
//	}
//	cfg.ImageSize = img.Size
package romimage
