/*
 * MIT License
 *
 * Copyright (c) 2024 The Loadforge Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package wire implements the control link's nested length-prefixed typed
// value encoding: every element is a one-byte type tag, a varint length,
// and a payload that is either primitive or a constructed sequence of
// further elements.
package wire

import "fmt"

// Tag identifies the type of one encoded element.
type Tag byte

const (
	TagNull Tag = iota
	TagBool
	TagInt
	TagString
	TagSequence
)

func (t Tag) String() string {
	switch t {
	case TagNull:
		return "null"
	case TagBool:
		return "bool"
	case TagInt:
		return "int"
	case TagString:
		return "string"
	case TagSequence:
		return "sequence"
	default:
		return fmt.Sprintf("tag(%d)", byte(t))
	}
}

// Value is a single wire element: either a primitive (bool, int, string,
// null) or a constructed sequence of further Values.
type Value struct {
	Tag Tag
	I   int64
	S   string
	B   bool
	Seq []Value
}

// Null returns the null primitive value.
func Null() Value { return Value{Tag: TagNull} }

// Bool wraps a boolean primitive value.
func Bool(b bool) Value { return Value{Tag: TagBool, B: b} }

// Int wraps an integer primitive value.
func Int(i int64) Value { return Value{Tag: TagInt, I: i} }

// Str wraps a string (octet-string) primitive value.
func Str(s string) Value { return Value{Tag: TagString, S: s} }

// Seq wraps an ordered list of elements as a constructed sequence.
func Seq(items ...Value) Value { return Value{Tag: TagSequence, Seq: items} }

// Equal reports whether two Values encode to the same tree, which is the
// round-trip property the framing layer must satisfy.
func (v Value) Equal(o Value) bool {
	if v.Tag != o.Tag {
		return false
	}

	switch v.Tag {
	case TagBool:
		return v.B == o.B
	case TagInt:
		return v.I == o.I
	case TagString:
		return v.S == o.S
	case TagSequence:
		if len(v.Seq) != len(o.Seq) {
			return false
		}
		for i := range v.Seq {
			if !v.Seq[i].Equal(o.Seq[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// At returns the i-th element of a sequence, or Null() if v is not a
// sequence or i is out of range — a convenience for reading message
// bodies without a bounds-check at every call site.
func (v Value) At(i int) Value {
	if v.Tag != TagSequence || i < 0 || i >= len(v.Seq) {
		return Null()
	}
	return v.Seq[i]
}
