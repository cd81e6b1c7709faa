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

// Package logger wraps sirupsen/logrus with the fluent Entry/FieldAdd/Log
// chain used across loadforge: the interpreter's debug trace, the
// variance scheduler's state transitions, and the client-manager link's
// connection lifecycle all log through the same shape.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger is the interface every loadforge component logs through.
type Logger interface {
	// Entry starts a new log record at the given level with the given
	// message; chain FieldAdd/ErrorAdd before calling Log.
	Entry(lvl Level, msg string) *Entry

	// SetLevel changes the minimum level that reaches the sink. NilLevel
	// silences the logger entirely.
	SetLevel(lvl Level)

	// SetOutput redirects where log lines are written.
	SetOutput(w io.Writer)

	// WithField returns a derived Logger whose entries all carry key/val.
	WithField(key string, val interface{}) Logger
}

// FuncLog returns the shared Logger instance, for callers that resolve
// their logger lazily.
type FuncLog func() Logger

type logger struct {
	mu     sync.RWMutex
	base   *logrus.Logger
	lvl    Level
	static logrus.Fields
}

// New creates a Logger writing to stderr at InfoLevel.
func New() Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return &logger{base: l, lvl: InfoLevel}
}

func (l *logger) Entry(lvl Level, msg string) *Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	fields := make(logrus.Fields, len(l.static))
	for k, v := range l.static {
		fields[k] = v
	}

	return &Entry{
		lvl:    lvl,
		msg:    msg,
		fields: fields,
		logger: l.base,
		// Level filtering is left to the logrus sink (SetLevel keeps its
		// level in step) so that ErrorAdd's promotion still applies.
		silent: l.lvl == NilLevel,
	}
}

func (l *logger) SetLevel(lvl Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lvl = lvl
	if lvl != NilLevel {
		l.base.SetLevel(lvl.logrus())
	}
}

func (l *logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.base.SetOutput(w)
}

func (l *logger) WithField(key string, val interface{}) Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()

	fields := make(logrus.Fields, len(l.static)+1)
	for k, v := range l.static {
		fields[k] = v
	}
	fields[key] = val

	return &logger{base: l.base, lvl: l.lvl, static: fields}
}
