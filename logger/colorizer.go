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

package logger

import (
	"io"
	"strings"
)

const (
	normalPen = "\033[0m"
	redPen    = "\033[31m"
	dimRedPen = "\033[2;31m"
)

// Colorizer is an io.Writer that prints the first line of every write in red
// and any subsequent lines in a dimmed red. It is used when writing
// diagnostics to a terminal.
type Colorizer struct {
	out io.Writer
}

// NewColorizer is the preferred method of initialisation for the Colorizer
// type.
func NewColorizer(out io.Writer) Colorizer {
	return Colorizer{out: out}
}

func (c Colorizer) Write(p []byte) (n int, err error) {
	l := strings.Split(strings.TrimRight(string(p), "\n"), "\n")

	var s strings.Builder
	s.WriteString(redPen)
	s.WriteString(l[0])
	s.WriteString(normalPen)
	s.WriteString("\n")

	if len(l) > 1 {
		s.WriteString(dimRedPen)
		for _, ln := range l[1:] {
			s.WriteString(ln)
			s.WriteString("\n")
		}
		s.WriteString(normalPen)
	}

	_, err = io.WriteString(c.out, s.String())
	if err != nil {
		return 0, err
	}

	// the number of bytes consumed from p, not the number of bytes written
	// to the underlying writer
	return len(p), nil
}
