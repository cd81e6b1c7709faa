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

// Package scripterr centralizes the error-code taxonomy (§7) used by
// the script engine (lexer, parser, value and interp). The wire,
// transport, config and link packages keep their own code blocks.
package scripterr

import (
	"fmt"

	liberr "github.com/nabbar/loadforge/errors"
)

const (
	CodeParseError uint16 = iota + 8000
	CodeConfigError
	CodeRuntimeScriptError
	CodeLinkCodecError
	CodeLinkIOError
	CodeNonRecoverableHandshake
)

// ParseErrorf reports a syntactic or semantic script problem at the
// given 1-based line and character (§7, §4.4).
func ParseErrorf(line, char int, format string, args ...any) liberr.Error {
	msg := fmt.Sprintf(format, args...)
	return liberr.Newf(CodeParseError, "parse error at line %d, char %d: %s", line, char, msg)
}

// ConfigErrorf reports a bad variance file, unknown algorithm, or
// unresolvable type class (§7).
func ConfigErrorf(format string, args ...any) liberr.Error {
	return liberr.Newf(CodeConfigError, format, args...)
}

// RuntimeScriptErrorf reports a method signature mismatch, type
// mismatch, or I/O failure raised by a variable method (§7). The
// interpreter returns it from Execute, which ends the current script
// run; it is not turned into a return value the script can test.
func RuntimeScriptErrorf(format string, args ...any) liberr.Error {
	return liberr.Newf(CodeRuntimeScriptError, format, args...)
}

// LinkCodecErrorf reports a framing desynchronization; always fatal to
// the link (§4.1, §7).
func LinkCodecErrorf(format string, args ...any) liberr.Error {
	return liberr.Newf(CodeLinkCodecError, format, args...)
}

// LinkIOErrorf reports a transient link read/write failure (§7),
// tolerated once before the second consecutive occurrence is promoted
// to fatal by the caller.
func LinkIOErrorf(format string, args ...any) liberr.Error {
	return liberr.Newf(CodeLinkIOError, format, args...)
}

// NonRecoverableHandshake reports one of the HelloResponse rejection
// codes (§4.2, §4.9); terminates the client-manager entirely.
func NonRecoverableHandshake(code fmt.Stringer, text string) liberr.Error {
	return liberr.Newf(CodeNonRecoverableHandshake, "non-recoverable handshake response %s: %s", code, text)
}

// Signal is the interpreter's internal, non-error control-flow marker
// (§4.5, §7): BREAK and CONTINUE unwind exactly one loop level, STOP
// unwinds to the driver. Signals are not liberr.Error values — they
// never cross the method-call boundary, only instruction execution.
type Signal int

const (
	SignalNone Signal = iota
	SignalBreak
	SignalContinue
	SignalStop
)

func (s Signal) String() string {
	switch s {
	case SignalBreak:
		return "BREAK"
	case SignalContinue:
		return "CONTINUE"
	case SignalStop:
		return "STOP"
	default:
		return "NONE"
	}
}
