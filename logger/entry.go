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

package logger

import (
	"github.com/sirupsen/logrus"
)

// Entry is a single log record under construction. Every field is chained
// onto it before the terminal Log() call, mirroring the fluent style used
// throughout the control link and interpreter trace.
type Entry struct {
	lvl    Level
	msg    string
	fields logrus.Fields
	logger *logrus.Logger
	silent bool
}

// FieldAdd attaches a structured field.
func (e *Entry) FieldAdd(key string, val interface{}) *Entry {
	if e == nil {
		return e
	}
	if e.fields == nil {
		e.fields = make(logrus.Fields)
	}
	e.fields[key] = val
	return e
}

// ErrorAdd attaches an error. When critical is true and err is non-nil,
// the entry's level is promoted to ErrorLevel if it was lower severity
// (i.e. numerically greater, since Level increases with verbosity).
func (e *Entry) ErrorAdd(critical bool, err error) *Entry {
	if e == nil || err == nil {
		return e
	}
	e.FieldAdd("error", err.Error())
	if critical && e.lvl > ErrorLevel {
		e.lvl = ErrorLevel
	}
	return e
}

// Log emits the entry, unless the owning logger is silenced.
func (e *Entry) Log() {
	if e == nil || e.silent || e.logger == nil {
		return
	}
	e.logger.WithFields(e.fields).Log(e.lvl.logrus(), e.msg)
}
