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

package conversion

import (
	"fmt"
	"strings"

	"github.com/list2elf/list2elf/curated"
	"github.com/list2elf/list2elf/elfwriter"
	"github.com/list2elf/list2elf/listing"
	"github.com/list2elf/list2elf/prefs"
)

// Preferences for a conversion.
type Preferences struct {
	// segment to extract symbols from
	Segment prefs.String

	// address at which the ROM image is loaded
	BaseAddress prefs.Uint32

	// size of the ROM image. ignored if Image is not empty
	ImageSize prefs.Uint32

	// filename of the ROM image. the size of the file is used for the size
	// of the .text section
	Image prefs.String

	// machine and object type of the ELF header. see elfwriter.ParseMachine()
	// and elfwriter.ParseType() for acceptable values
	Machine prefs.String
	Type    prefs.String

	// abort on a malformed symbol line
	Strict prefs.Bool

	// demangle C++ and Rust symbol names
	Demangle prefs.Bool
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() *Preferences {
	p := &Preferences{}
	p.Segment.SetMaxLen(listing.MaxSegmentName)

	p.Machine.SetHookPre(func(v prefs.Value) error {
		_, err := elfwriter.ParseMachine(v.(string))
		return err
	})
	p.Type.SetHookPre(func(v prefs.Value) error {
		_, err := elfwriter.ParseType(v.(string))
		return err
	})

	p.SetDefaults()
	return p
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() {
	p.Segment.Set(listing.DefaultSegment)
	p.BaseAddress.Set(uint32(elfwriter.DefaultBaseAddress))
	p.ImageSize.Set(uint32(elfwriter.DefaultImageSize))
	p.Image.Set("")
	p.Machine.Set(strings.TrimPrefix(elfwriter.DefaultMachine.String(), "EM_"))
	p.Type.Set(strings.TrimPrefix(elfwriter.DefaultType.String(), "ET_"))
	p.Strict.Set(false)
	p.Demangle.Set(false)
}

// setter is implemented by every prefs type.
type setter interface {
	Set(prefs.Value) error
}

// commandLine returns the preference for each key recognised by
// ApplyCommandLine(). the order is the order in which keys are applied.
func (p *Preferences) commandLine() []struct {
	key string
	val setter
} {
	return []struct {
		key string
		val setter
	}{
		{"segment", &p.Segment},
		{"base", &p.BaseAddress},
		{"size", &p.ImageSize},
		{"image", &p.Image},
		{"machine", &p.Machine},
		{"type", &p.Type},
		{"strict", &p.Strict},
		{"demangle", &p.Demangle},
	}
}

// ApplyCommandLine sets preferences from the group at the top of the prefs
// command line stack. Values on the stack take priority over values that have
// already been set.
func (p *Preferences) ApplyCommandLine() error {
	for _, k := range p.commandLine() {
		if ok, v := prefs.GetCommandLinePref(k.key); ok {
			err := k.val.Set(v)
			if err != nil {
				if curated.IsAny(err) {
					return err
				}
				return curated.Errorf(curated.InvalidConfiguration, k.key, err)
			}
		}
	}
	return nil
}

// Options returns the listing options for the preferences.
func (p *Preferences) Options() listing.Options {
	return listing.Options{
		Segment:  p.Segment.String(),
		Strict:   p.Strict.Get().(bool),
		Demangle: p.Demangle.Get().(bool),
	}
}

// Config returns the ELF writer configuration for the preferences. The Image
// preference is not consulted.
func (p *Preferences) Config() (elfwriter.Config, error) {
	m, err := elfwriter.ParseMachine(p.Machine.String())
	if err != nil {
		return elfwriter.Config{}, err
	}
	t, err := elfwriter.ParseType(p.Type.String())
	if err != nil {
		return elfwriter.Config{}, err
	}

	cfg := elfwriter.Config{
		BaseAddress: p.BaseAddress.Value(),
		ImageSize:   p.ImageSize.Value(),
		Machine:     m,
		Type:        t,
	}

	return cfg, cfg.Validate()
}

func (p *Preferences) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("segment::%s; ", p.Segment.String()))
	s.WriteString(fmt.Sprintf("base::%s; ", p.BaseAddress.String()))
	s.WriteString(fmt.Sprintf("size::%s; ", p.ImageSize.String()))
	if p.Image.String() != "" {
		s.WriteString(fmt.Sprintf("image::%s; ", p.Image.String()))
	}
	s.WriteString(fmt.Sprintf("machine::%s; ", p.Machine.String()))
	s.WriteString(fmt.Sprintf("type::%s; ", p.Type.String()))
	s.WriteString(fmt.Sprintf("strict::%s; ", p.Strict.String()))
	s.WriteString(fmt.Sprintf("demangle::%s", p.Demangle.String()))
	return s.String()
}
