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

package wire

import (
	"bytes"
	"encoding/binary"
	"io"

	liberr "github.com/nabbar/loadforge/errors"
)

const (
	ErrCodeUnknownTag uint16 = iota + 7000
	ErrCodeTruncated
	ErrCodeTooLarge
	ErrCodeMalformedVarint
)

// IsCodecError reports whether lerr was produced by CodecError, i.e. the
// stream could not be decoded as a well-formed frame (bad tag, length,
// or varint). It is distinct from a timeout or a clean io.EOF: a codec
// error means the reader's position in the byte stream can no longer be
// trusted, so the caller must not try to keep reading frames from this
// connection.
func IsCodecError(lerr liberr.Error) bool {
	if lerr == nil {
		return false
	}
	switch lerr.GetCode().Uint16() {
	case ErrCodeUnknownTag, ErrCodeTruncated, ErrCodeTooLarge, ErrCodeMalformedVarint:
		return true
	default:
		return false
	}
}

// CodecError wraps any framing failure; it is always fatal to the link
// (§4.1): the reader cannot resynchronize past a corrupt element.
func CodecError(code uint16, msg string, parent error) liberr.Error {
	e := liberr.New(code, msg)
	if parent != nil {
		e.Add(parent)
	}
	return e
}

// DefaultMaxLen bounds a single element's payload length; Decode rejects
// anything larger with a CODEC_ERROR rather than allocate unbounded memory.
const DefaultMaxLen = 16 << 20 // 16 MiB

// Encode serializes v, recursively, into a newly allocated byte slice.
func Encode(v Value) []byte {
	buf := &bytes.Buffer{}
	writeValue(buf, v)
	return buf.Bytes()
}

func writeValue(buf *bytes.Buffer, v Value) {
	switch v.Tag {
	case TagNull:
		writeHeader(buf, TagNull, 0)
	case TagBool:
		writeHeader(buf, TagBool, 1)
		if v.B {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
	case TagInt:
		var tmp [binary.MaxVarintLen64]byte
		n := binary.PutVarint(tmp[:], v.I)
		writeHeader(buf, TagInt, n)
		buf.Write(tmp[:n])
	case TagString:
		writeHeader(buf, TagString, len(v.S))
		buf.WriteString(v.S)
	case TagSequence:
		inner := &bytes.Buffer{}
		for _, e := range v.Seq {
			writeValue(inner, e)
		}
		writeHeader(buf, TagSequence, inner.Len())
		buf.Write(inner.Bytes())
	}
}

func writeHeader(buf *bytes.Buffer, t Tag, length int) {
	buf.WriteByte(byte(t))
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], uint64(length))
	buf.Write(tmp[:n])
}

// Decode reads one element (recursively) from r, enforcing maxLen on
// every length it reads. maxLen <= 0 uses DefaultMaxLen.
func Decode(r io.Reader, maxLen int) (Value, liberr.Error) {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	return decodeValue(r, maxLen)
}

func decodeValue(r io.Reader, maxLen int) (Value, liberr.Error) {
	var tagByte [1]byte
	if _, err := io.ReadFull(r, tagByte[:]); err != nil {
		return Value{}, CodecError(ErrCodeTruncated, "wire: truncated tag", err)
	}
	tag := Tag(tagByte[0])

	length, err := readUvarint(r)
	if err != nil {
		return Value{}, CodecError(ErrCodeMalformedVarint, "wire: malformed length varint", err)
	}
	if length > uint64(maxLen) {
		return Value{}, CodecError(ErrCodeTooLarge, "wire: element length exceeds configured maximum", nil)
	}

	switch tag {
	case TagNull:
		return Null(), nil
	case TagBool:
		if length != 1 {
			return Value{}, CodecError(ErrCodeTruncated, "wire: bool payload must be exactly 1 byte", nil)
		}
		var b [1]byte
		if _, err = io.ReadFull(r, b[:]); err != nil {
			return Value{}, CodecError(ErrCodeTruncated, "wire: truncated bool payload", err)
		}
		return Bool(b[0] != 0), nil
	case TagInt:
		payload := make([]byte, length)
		if _, err = io.ReadFull(r, payload); err != nil {
			return Value{}, CodecError(ErrCodeTruncated, "wire: truncated int payload", err)
		}
		i, n := binary.Varint(payload)
		if n <= 0 {
			return Value{}, CodecError(ErrCodeMalformedVarint, "wire: malformed int payload", nil)
		}
		return Int(i), nil
	case TagString:
		payload := make([]byte, length)
		if _, err = io.ReadFull(r, payload); err != nil {
			return Value{}, CodecError(ErrCodeTruncated, "wire: truncated string payload", err)
		}
		return Str(string(payload)), nil
	case TagSequence:
		payload := make([]byte, length)
		if _, err = io.ReadFull(r, payload); err != nil {
			return Value{}, CodecError(ErrCodeTruncated, "wire: truncated sequence payload", err)
		}

		br := bytes.NewReader(payload)
		items := make([]Value, 0)
		for br.Len() > 0 {
			v, e := decodeValue(br, maxLen)
			if e != nil {
				return Value{}, e
			}
			items = append(items, v)
		}
		return Seq(items...), nil
	default:
		return Value{}, CodecError(ErrCodeUnknownTag, "wire: unknown type tag", nil)
	}
}

func readUvarint(r io.Reader) (uint64, error) {
	var (
		x   uint64
		s   uint
		buf [1]byte
	)
	for i := 0; i < binary.MaxVarintLen64; i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		b := buf[0]
		if b < 0x80 {
			return x | uint64(b)<<s, nil
		}
		x |= uint64(b&0x7f) << s
		s += 7
	}
	return 0, io.ErrShortBuffer
}
