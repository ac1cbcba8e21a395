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

package listing

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ianlancetaylor/demangle"
	"github.com/list2elf/list2elf/curated"
	"github.com/list2elf/list2elf/logger"
)

// segmentState is the state carried from line to line. it is changed only by
// metadata lines.
type segmentState struct {
	// the current segment. the empty string means there is no open segment
	name string
}

// metadata returns the state that follows the metadata line.
func (st segmentState) metadata(line string) segmentState {
	flds := strings.Fields(line)
	if len(flds) == 0 {
		return st
	}

	switch flds[0] {
	case "seg":
		if len(flds) < 2 {
			return segmentState{}
		}
		name := flds[1]
		if len(name) > MaxSegmentName {
			name = name[:MaxSegmentName]
		}
		return segmentState{name: name}
	case "size":
		return segmentState{}
	}

	return st
}

// ParseFile opens and parses the named listing file. The file is closed
// before the function returns.
func ParseFile(filename string, opts Options) (*Listing, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf(curated.InputUnreadable, filename, err)
	}
	defer f.Close()

	return parse(f, filename, opts)
}

// Parse reads the listing from the io.Reader. The returned error will be a
// curated.InputUnreadable error if the listing could not be read, or a
// curated.MalformedSymbolLine error if Options.Strict is set and a symbol
// line in the target segment could not be parsed.
func Parse(r io.Reader, opts Options) (*Listing, error) {
	return parse(r, "listing", opts)
}

func parse(r io.Reader, name string, opts Options) (*Listing, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, curated.Errorf(curated.InputUnreadable, name, err)
	}

	l := &Listing{
		Segment:  opts.segment(),
		Symbols:  make([]Symbol, 0, 256),
		Segments: make([]string, 0, 8),
	}

	var st segmentState

	for i, ln := range strings.Split(string(data), "\n") {
		ln = strings.TrimSuffix(ln, "\r")
		lineNum := i + 1

		if strings.TrimSpace(ln) == "" {
			continue // for loop
		}

		if ln[0] == ' ' {
			st = st.metadata(ln)
			if st.name != "" && !l.HasSegment(st.name) {
				l.Segments = append(l.Segments, st.name)
			}
			continue // for loop
		}

		// symbol lines outside of the target segment are not examined
		if st.name != l.Segment {
			continue // for loop
		}

		sym, err := parseSymbolLine(ln)
		if err != nil {
			err = curated.Errorf(curated.MalformedSymbolLine, lineNum, err)
			if opts.Strict {
				return nil, err
			}
			l.Malformed = append(l.Malformed, Malformed{
				Line: lineNum,
				Text: ln,
				Err:  err,
			})
			logger.Log(logger.Allow, "listing", err)
			continue // for loop
		}

		if opts.Demangle {
			sym.Name = demangle.Filter(sym.Name)
		}

		l.Symbols = append(l.Symbols, sym)
	}

	if !l.HasSegment(l.Segment) {
		logger.Logf(logger.Allow, "listing", "segment %s not found in %s", l.Segment, name)
	}
	if len(l.Malformed) > 0 {
		logger.Logf(logger.Allow, "listing", "%d malformed symbol lines skipped", len(l.Malformed))
	}

	return l, nil
}

// parseSymbolLine parses a tab separated symbol line. Field 0 is the name
// and field 3 is the address field.
func parseSymbolLine(line string) (Symbol, error) {
	flds := strings.Split(line, "\t")
	if len(flds) < 4 {
		return Symbol{}, fmt.Errorf("expected at least 4 tab separated fields but found %d", len(flds))
	}

	name := flds[0]
	if name == "" {
		return Symbol{}, fmt.Errorf("empty symbol name")
	}
	if strings.IndexByte(name, 0) != -1 {
		return Symbol{}, fmt.Errorf("symbol name %q contains a NUL byte", name)
	}

	address, err := parseAddress(flds[3])
	if err != nil {
		return Symbol{}, fmt.Errorf("%s: %w", name, err)
	}

	return Symbol{Name: name, Address: address}, nil
}

// parseAddress returns the value of the last '$' prefixed hexadecimal number
// in the field. characters after the hexadecimal digits are ignored.
func parseAddress(field string) (uint32, error) {
	i := strings.LastIndexByte(field, '$')
	if i == -1 {
		return 0, fmt.Errorf("no address in field %q", field)
	}

	hex := field[i+1:]
	n := 0
	for n < len(hex) && isHexDigit(hex[n]) {
		n++
	}
	if n == 0 {
		return 0, fmt.Errorf("no hexadecimal digits after '$' in field %q", field)
	}

	v, err := strconv.ParseUint(hex[:n], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("address $%s does not fit in 32 bits", hex[:n])
	}

	return uint32(v), nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
