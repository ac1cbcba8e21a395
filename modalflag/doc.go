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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes and
// allows different flags for each mode.
//
// Arguments are given to NewArgs() and then Parse() is called with no
// arguments:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("CONVERT", "DUMP", "INFO")
//	p, err := md.Parse()
//
// After a successful Parse() the selected mode is available with Mode(). The
// first sub-mode is the default and is selected when the first argument is not
// the name of a sub-mode. Sub-mode comparisons are case insensitive.
//
// A mode function then calls NewMode(), adds its flags and calls Parse()
// again. Flags are added with the Add*() functions which return pointers to
// variables that hold the flag value after Parse():
//
//	md.NewMode()
//	strict := md.AddBool("strict", false, "treat malformed lines as fatal")
//	p, err := md.Parse()
//	if err != nil || p != modalflag.ParseContinue {
//		return err
//	}
//
// The non-flag arguments are then available with RemainingArgs() and GetArg().
//
// Help is printed to the Output writer when the -help flag is given, or on
// demand with the Usage() function.
package modalflag
