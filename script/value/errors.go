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

package value

import (
	libscr "github.com/nabbar/loadforge/scripterr"
)

var (
	// ErrNoSuchMethod is returned by Dispatcher.Invoke for an out of
	// range index; MethodIndex returning -1 upstream should always
	// prevent this in practice.
	ErrNoSuchMethod = libscr.RuntimeScriptErrorf("no such method")

	// ErrTypeMismatch is returned by AssignFrom when the source
	// Variable's concrete type does not match the destination's.
	ErrTypeMismatch = libscr.RuntimeScriptErrorf("assignment type mismatch")

	// ErrIndexOutOfRange is returned by indexed accessors given an
	// out-of-bounds index.
	ErrIndexOutOfRange = libscr.RuntimeScriptErrorf("index out of range")

	// ErrInvalidURL is returned by FileURL methods when the wrapped
	// string failed net/url.Parse.
	ErrInvalidURL = libscr.RuntimeScriptErrorf("invalid file URL")

	// ErrInvalidPattern is returned by ValuePattern methods when the
	// wrapped string failed regexp.Compile.
	ErrInvalidPattern = libscr.RuntimeScriptErrorf("invalid value pattern")

	// ErrScriptNotLoaded is returned by Script.run while no Runner has
	// been set with SetRunner.
	ErrScriptNotLoaded = libscr.RuntimeScriptErrorf("script has no runner wired")
)
