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

package prefs

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
)

// Value represents the actual Go preference value.
type Value interface{}

type pref interface {
	fmt.Stringer
	Set(value Value) error
	Get() Value
	Reset() error
}

// Bool implements a boolean type in the prefs system.
type Bool struct {
	pref
	value    atomic.Value // bool
	hookPre  func(value Value) error
	hookPost func(value Value) error
}

func (p *Bool) String() string {
	return fmt.Sprintf("%v", p.Get())
}

// Set new value to Bool type. New value must be of type bool or string. A
// string value of anything other than "true" (case insensitive) will set the
// value to false.
func (p *Bool) Set(v Value) error {
	var nv bool
	switch v := v.(type) {
	case bool:
		nv = v
	case string:
		nv = strings.ToLower(strings.TrimSpace(v)) == "true"
	default:
		return fmt.Errorf("prefs: cannot convert %T to prefs.Bool", v)
	}

	return store(&p.value, nv, p.hookPre, p.hookPost)
}

// Get returns the raw pref value.
func (p *Bool) Get() Value {
	ov := p.value.Load()
	if ov == nil {
		return false
	}
	return ov.(bool)
}

// Reset sets the boolean value to false.
func (p *Bool) Reset() error {
	return p.Set(false)
}

// SetHookPre sets the callback function to be called just before the value
// is changed.
func (p *Bool) SetHookPre(f func(value Value) error) {
	p.hookPre = f
}

// SetHookPost sets the callback function to be called just after the value
// is changed.
func (p *Bool) SetHookPost(f func(value Value) error) {
	p.hookPost = f
}

// String implements a string type in the prefs system.
type String struct {
	pref
	maxLen   int
	value    atomic.Value // string
	hookPre  func(value Value) error
	hookPost func(value Value) error
}

func (p *String) String() string {
	ov := p.value.Load()
	if ov == nil {
		return ""
	}
	return ov.(string)
}

// SetMaxLen sets the maximum length for a string when it is set. A value of
// zero or less means there is no maximum. An existing value is cropped if
// necessary.
func (p *String) SetMaxLen(max int) {
	p.maxLen = max

	ov := p.value.Load()
	if ov == nil {
		return
	}

	if p.maxLen > 0 && len(ov.(string)) > p.maxLen {
		p.value.Store(ov.(string)[:p.maxLen])
	}
}

// Set new value to String type. New value of any type is formatted with the
// %v verb. The value is cropped to the maximum length.
func (p *String) Set(v Value) error {
	nv := fmt.Sprintf("%v", v)
	if p.maxLen > 0 && len(nv) > p.maxLen {
		nv = nv[:p.maxLen]
	}

	return store(&p.value, nv, p.hookPre, p.hookPost)
}

// Get returns the raw pref value.
func (p *String) Get() Value {
	return p.String()
}

// Reset sets the string value to the empty string.
func (p *String) Reset() error {
	return p.Set("")
}

// SetHookPre sets the callback function to be called just before the value
// is changed.
func (p *String) SetHookPre(f func(value Value) error) {
	p.hookPre = f
}

// SetHookPost sets the callback function to be called just after the value
// is changed.
func (p *String) SetHookPost(f func(value Value) error) {
	p.hookPost = f
}

// Uint32 implements an unsigned 32 bit integer type in the prefs system.
// String values can be written in decimal, or in hexadecimal with either a
// "0x" or a "$" prefix.
type Uint32 struct {
	pref
	value    atomic.Value // uint32
	hookPre  func(value Value) error
	hookPost func(value Value) error
}

func (p *Uint32) String() string {
	return fmt.Sprintf("0x%08x", p.Get())
}

// ParseUint32 parses a decimal or hexadecimal ("0x" or "$" prefix) string.
func ParseUint32(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "$") {
		s = "0x" + s[1:]
	}
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// Set new value to Uint32 type. New value must be an integer type that fits
// in 32 bits or a string.
func (p *Uint32) Set(v Value) error {
	var nv uint32
	switch v := v.(type) {
	case uint32:
		nv = v
	case uint16:
		nv = uint32(v)
	case uint8:
		nv = uint32(v)
	case int:
		if v < 0 || uint64(v) > 0xffffffff {
			return fmt.Errorf("prefs: value %d out of range for prefs.Uint32", v)
		}
		nv = uint32(v)
	case uint64:
		if v > 0xffffffff {
			return fmt.Errorf("prefs: value %d out of range for prefs.Uint32", v)
		}
		nv = uint32(v)
	case string:
		var err error
		nv, err = ParseUint32(v)
		if err != nil {
			return fmt.Errorf("prefs: cannot convert %q to prefs.Uint32: %w", v, err)
		}
	default:
		return fmt.Errorf("prefs: cannot convert %T to prefs.Uint32", v)
	}

	return store(&p.value, nv, p.hookPre, p.hookPost)
}

// Get returns the raw pref value.
func (p *Uint32) Get() Value {
	ov := p.value.Load()
	if ov == nil {
		return uint32(0)
	}
	return ov.(uint32)
}

// Value returns the pref value as a uint32.
func (p *Uint32) Value() uint32 {
	return p.Get().(uint32)
}

// Reset sets the value to zero.
func (p *Uint32) Reset() error {
	return p.Set(uint32(0))
}

// SetHookPre sets the callback function to be called just before the value
// is changed.
func (p *Uint32) SetHookPre(f func(value Value) error) {
	p.hookPre = f
}

// SetHookPost sets the callback function to be called just after the value
// is changed.
func (p *Uint32) SetHookPost(f func(value Value) error) {
	p.hookPost = f
}

// store runs the pre-hook, stores the value and then runs the post-hook.
func store(value *atomic.Value, nv Value, hookPre func(Value) error, hookPost func(Value) error) error {
	if hookPre != nil {
		err := hookPre(nv)
		if err != nil {
			return err
		}
	}

	value.Store(nv)

	if hookPost != nil {
		err := hookPost(nv)
		if err != nil {
			return err
		}
	}

	return nil
}
