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
	"strconv"
	"strings"

	"github.com/list2elf/list2elf/curated"
)

// Default configuration values. These describe a Macintosh Quadra 800 ROM.
const (
	DefaultBaseAddress = 0x40800000
	DefaultImageSize   = 0x100000
	DefaultMachine     = elf.EM_68K
	DefaultType        = elf.ET_EXEC
)

// Config describes the binary image that the symbols belong to and the
// identity of the generated object.
type Config struct {
	// address at which the image is loaded. added to every symbol address
	BaseAddress uint32

	// size of the image. used as the size of the .text section
	ImageSize uint32

	// value of the e_machine field in the ELF header
	Machine elf.Machine

	// value of the e_type field in the ELF header
	Type elf.Type
}

// DefaultConfig returns a Config with the default values.
func DefaultConfig() Config {
	return Config{
		BaseAddress: DefaultBaseAddress,
		ImageSize:   DefaultImageSize,
		Machine:     DefaultMachine,
		Type:        DefaultType,
	}
}

func (cfg Config) String() string {
	return fmt.Sprintf("%s %s, .text at $%08x size $%x", cfg.Machine, cfg.Type, cfg.BaseAddress, cfg.ImageSize)
}

// Validate checks that the .text section described by the configuration fits
// in the 32 bit address space. Machine and type values that do not fit in the
// 16 bit header fields are rejected earlier, by ParseMachine() and ParseType().
func (cfg Config) Validate() error {
	if uint64(cfg.BaseAddress)+uint64(cfg.ImageSize) > 1<<32 {
		return curated.Errorf(curated.InvalidConfiguration, "size",
			fmt.Sprintf("image of $%x bytes at $%08x extends beyond the 32 bit address space", cfg.ImageSize, cfg.BaseAddress))
	}
	return nil
}

// the highest machine number searched by ParseMachine()
const maxMachine = 0x400

// ParseMachine converts a machine name or number to an elf.Machine value.
// Names are those of the EM_ constants in the debug/elf package, with or
// without the EM_ prefix and in any letter case. For example, "68K", "em_ppc"
// and "4" are all acceptable.
func ParseMachine(s string) (elf.Machine, error) {
	s = strings.ToUpper(strings.TrimSpace(s))

	if v, err := strconv.ParseUint(s, 0, 16); err == nil {
		return elf.Machine(v), nil
	}

	name := "EM_" + strings.TrimPrefix(s, "EM_")
	for m := elf.Machine(0); m <= maxMachine; m++ {
		if m.String() == name {
			return m, nil
		}
	}

	return elf.EM_NONE, curated.Errorf(curated.InvalidConfiguration, "machine", fmt.Sprintf("unrecognised machine %q", s))
}

// ParseType converts an object type name or number to an elf.Type value.
// Names are those of the ET_ constants in the debug/elf package, with or
// without the ET_ prefix. For example, "EXEC", "rel" and "2".
func ParseType(s string) (elf.Type, error) {
	s = strings.ToUpper(strings.TrimSpace(s))

	if v, err := strconv.ParseUint(s, 0, 16); err == nil {
		return elf.Type(v), nil
	}

	name := "ET_" + strings.TrimPrefix(s, "ET_")
	for t := elf.ET_NONE; t <= elf.ET_CORE; t++ {
		if t.String() == name {
			return t, nil
		}
	}

	return elf.ET_NONE, curated.Errorf(curated.InvalidConfiguration, "type", fmt.Sprintf("unrecognised object type %q", s))
}
