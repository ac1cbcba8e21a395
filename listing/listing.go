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
	"strings"
)

// DefaultSegment is the segment used when Options.Segment is empty.
const DefaultSegment = "Main"

// MaxSegmentName is the maximum length of a segment name. Longer names are
// truncated.
const MaxSegmentName = 63

// Symbol is a single symbol record from the target segment. Symbols are kept
// in the order they appear in the listing.
type Symbol struct {
	Name    string
	Address uint32
}

func (s Symbol) String() string {
	return fmt.Sprintf("%s $%08x", s.Name, s.Address)
}

// Malformed records a symbol line in the target segment that could not be
// parsed.
type Malformed struct {
	// line number, counting from one
	Line int

	// the text of the line without the line terminator
	Text string

	Err error
}

func (m Malformed) String() string {
	return m.Err.Error()
}

// Listing is the result of parsing.
type Listing struct {
	// the target segment
	Segment string

	// symbols in the target segment, in file order
	Symbols []Symbol

	// symbol lines in the target segment that could not be parsed. always
	// empty if Options.Strict was set
	Malformed []Malformed

	// every segment name seen in the listing, in the order they were first
	// seen
	Segments []string
}

// HasSegment returns true if the named segment was seen in the listing.
func (l *Listing) HasSegment(name string) bool {
	for _, s := range l.Segments {
		if s == name {
			return true
		}
	}
	return false
}

// Options control how a listing is parsed.
type Options struct {
	// the segment to extract symbols from. DefaultSegment is used if the
	// field is empty
	Segment string

	// a malformed symbol line in the target segment causes parsing to fail
	Strict bool

	// symbol names are passed through a C++/Rust demangler. names that are
	// not mangled are not changed
	Demangle bool
}

func (o Options) segment() string {
	if o.Segment == "" {
		return DefaultSegment
	}
	if len(o.Segment) > MaxSegmentName {
		return o.Segment[:MaxSegmentName]
	}
	return o.Segment
}

// String returns a summary of the listing.
func (l *Listing) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("segment %s: %d symbols", l.Segment, len(l.Symbols)))
	if len(l.Malformed) > 0 {
		s.WriteString(fmt.Sprintf(", %d malformed lines", len(l.Malformed)))
	}
	return s.String()
}
