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

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/kr/pretty"
	"github.com/list2elf/list2elf/conversion"
	"github.com/list2elf/list2elf/listing"
	"github.com/list2elf/list2elf/logger"
	"github.com/list2elf/list2elf/modalflag"
	"github.com/list2elf/list2elf/prefs"
	"github.com/list2elf/list2elf/version"
)

// exit status when the program ends because of an error
const exitError = 10

func main() {
	var stderr io.Writer = os.Stderr
	if isTerminal(os.Stderr.Fd()) {
		stderr = logger.NewColorizer(os.Stderr)
	}
	os.Exit(launch(os.Args[1:], os.Stdout, stderr))
}

// launch runs the program with the command line arguments and returns the exit
// status.
func launch(args []string, stdout io.Writer, stderr io.Writer) int {
	md := &modalflag.Modes{Output: stdout}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("CONVERT", "DUMP", "INFO")
	showVersion := md.AddBool("version", false, "print version information and exit")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0

	case modalflag.ParseError:
		fmt.Fprintf(stderr, "* error: %v\n", err)
		return exitError
	}

	if *showVersion {
		fmt.Fprintln(stdout, version.String())
		return 0
	}

	switch md.Mode() {
	case "CONVERT":
		err = convert(md, stderr)

	case "DUMP":
		err = dump(md, stderr)

	case "INFO":
		err = info(md, stderr)
	}

	if err != nil {
		fmt.Fprintf(stderr, "* error in %s mode: %v\n", md, err)
		return exitError
	}

	return 0
}

// prefValue adapts a prefs type to the flag.Value interface.
type prefValue struct {
	pref interface {
		Set(prefs.Value) error
		String() string
	}
}

func (v prefValue) String() string {
	if v.pref == nil {
		return ""
	}
	return v.pref.String()
}

func (v prefValue) Set(s string) error {
	return v.pref.Set(s)
}

// boolPrefValue allows a prefs.Bool flag to be given without a value.
type boolPrefValue struct {
	prefValue
}

func (v boolPrefValue) IsBoolFlag() bool {
	return true
}

// commonFlags are the flags shared by every mode.
type commonFlags struct {
	prefs *string
	log   *bool
}

func addFlags(md *modalflag.Modes, p *conversion.Preferences) commonFlags {
	md.AddVar(prefValue{&p.Segment}, "segment", "segment to extract symbols from")
	md.AddVar(prefValue{&p.BaseAddress}, "base", "load address of the ROM image")
	md.AddVar(prefValue{&p.ImageSize}, "size", "size of the ROM image")
	md.AddVar(prefValue{&p.Image}, "image", "ROM image file. the size of the file replaces the -size value")
	md.AddVar(prefValue{&p.Machine}, "machine", "ELF machine name or number")
	md.AddVar(prefValue{&p.Type}, "type", "ELF object type name or number")
	md.AddVar(boolPrefValue{prefValue{&p.Strict}}, "strict", "stop on a malformed symbol line")
	md.AddVar(boolPrefValue{prefValue{&p.Demangle}}, "demangle", "demangle C++ and Rust symbol names")

	return commonFlags{
		prefs: md.AddString("prefs", "", "preferences in the form key::value; key::value"),
		log:   md.AddBool("log", false, "echo log to stderr"),
	}
}

// apply the common flags. values given with the -prefs flag take priority
// over values given with the other flags.
func (f commonFlags) apply(p *conversion.Preferences, stderr io.Writer) error {
	if *f.log {
		logger.SetEcho(stderr)
	}

	prefs.PushCommandLineStack(*f.prefs)
	defer func() {
		if s := prefs.PopCommandLineStack(); s != "" {
			logger.Logf(logger.Allow, "list2elf", "unused preferences: %s", s)
		}
	}()

	return p.ApplyCommandLine()
}

func convert(md *modalflag.Modes, stderr io.Writer) error {
	md.NewMode()
	md.AdditionalHelp("Arguments: <listing file> <output file>")

	p := conversion.NewPreferences()
	f := addFlags(md, p)

	r, err := md.Parse()
	if err != nil || r != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 2 {
		md.Usage()
		return nil
	}

	err = f.apply(p, stderr)
	if err != nil {
		return err
	}

	rep, err := conversion.Convert(md.GetArg(0), md.GetArg(1), p)
	if err != nil {
		return err
	}

	reportMalformed(stderr, rep.Malformed)

	return nil
}

func dump(md *modalflag.Modes, stderr io.Writer) error {
	md.NewMode()
	md.AdditionalHelp("Arguments: <listing file>")

	p := conversion.NewPreferences()
	f := addFlags(md, p)

	r, err := md.Parse()
	if err != nil || r != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		md.Usage()
		return nil
	}

	err = f.apply(p, stderr)
	if err != nil {
		return err
	}

	lst, err := listing.ParseFile(md.GetArg(0), p.Options())
	if err != nil {
		return err
	}

	_, err = pretty.Fprintf(md.Output, "%# v\n", lst)
	if err != nil {
		return err
	}

	reportMalformed(stderr, lst.Malformed)

	return nil
}

func info(md *modalflag.Modes, stderr io.Writer) error {
	md.NewMode()
	md.AdditionalHelp("Arguments: <listing file>")

	p := conversion.NewPreferences()
	f := addFlags(md, p)

	r, err := md.Parse()
	if err != nil || r != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		md.Usage()
		return nil
	}

	err = f.apply(p, stderr)
	if err != nil {
		return err
	}

	rep, _, err := conversion.Plan(md.GetArg(0), p)
	if err != nil {
		return err
	}

	fmt.Fprintln(md.Output, rep)
	if rep.Image != nil {
		fmt.Fprintf(md.Output, "image:     %s\n", rep.Image)
	}
	fmt.Fprintf(md.Output, "config:    %s\n", rep.Config)
	fmt.Fprintln(md.Output, rep.Layout)

	reportMalformed(stderr, rep.Malformed)

	return nil
}

// reportMalformed writes one line for every malformed symbol line followed by
// a count.
func reportMalformed(stderr io.Writer, malformed []listing.Malformed) {
	if len(malformed) == 0 {
		return
	}
	for _, m := range malformed {
		fmt.Fprintf(stderr, "* warning: %v\n", m)
	}
	fmt.Fprintf(stderr, "* %d malformed symbol lines skipped\n", len(malformed))
}
