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

	"github.com/list2elf/list2elf/elfwriter"
	"github.com/list2elf/list2elf/listing"
	"github.com/list2elf/list2elf/logger"
	"github.com/list2elf/list2elf/romimage"
)

// Report is a summary of a conversion.
type Report struct {
	Input  string
	Output string

	// the target segment and the number of symbols found in it
	Segment string
	Symbols int

	// symbol lines that were skipped
	Malformed []listing.Malformed

	// the number of symbols at an address outside of the ROM image
	OutsideImage int

	// the ROM image named by the Image preference. nil if no image was named
	Image *romimage.Image

	Config elfwriter.Config
	Layout elfwriter.Layout
}

func (r *Report) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s: segment %s: %d symbols", r.Input, r.Segment, r.Symbols))
	if len(r.Malformed) > 0 {
		s.WriteString(fmt.Sprintf(", %d malformed lines skipped", len(r.Malformed)))
	}
	if r.OutsideImage > 0 {
		s.WriteString(fmt.Sprintf(", %d outside of image", r.OutsideImage))
	}
	if r.Output != "" {
		s.WriteString(fmt.Sprintf("\nwrote %s ($%x bytes)", r.Output, r.Layout.FileSize))
	}
	return s.String()
}

// Plan parses the listing and calculates the layout of the object file
// without writing it. The listing is returned along with the report.
func Plan(input string, p *Preferences) (*Report, *listing.Listing, error) {
	lst, err := listing.ParseFile(input, p.Options())
	if err != nil {
		return nil, nil, err
	}

	cfg, err := p.Config()
	if err != nil {
		return nil, nil, err
	}

	r := &Report{
		Input:     input,
		Segment:   lst.Segment,
		Symbols:   len(lst.Symbols),
		Malformed: lst.Malformed,
	}

	if fn := p.Image.String(); fn != "" {
		img, err := romimage.Load(fn)
		if err != nil {
			return nil, nil, err
		}
		r.Image = &img
		cfg.ImageSize = img.Size

		err = cfg.Validate()
		if err != nil {
			return nil, nil, err
		}
	}

	for _, s := range lst.Symbols {
		if s.Address >= cfg.ImageSize {
			r.OutsideImage++
			logger.Logf(logger.Allow, "conversion", "%s is outside of the image", s)
		}
	}

	if len(lst.Symbols) == 0 {
		logger.Logf(logger.Allow, "conversion", "no symbols in segment %s", lst.Segment)
	}

	r.Config = cfg
	r.Layout = elfwriter.NewLayout(lst.Symbols)

	return r, lst, nil
}

// Convert parses the input listing and writes the object file to output. The
// output file is not created unless the listing was parsed successfully.
func Convert(input string, output string, p *Preferences) (*Report, error) {
	r, lst, err := Plan(input, p)
	if err != nil {
		return nil, err
	}

	err = elfwriter.WriteFile(output, r.Config, lst.Symbols)
	if err != nil {
		return nil, err
	}
	r.Output = output

	return r, nil
}
