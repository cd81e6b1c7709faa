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

// Package interp tree-walks a parsed script (§4.5): one Interpreter
// instance per worker, over a private variable table, cancellable
// between top-level instructions and loop iterations.
package interp

import (
	liblog "github.com/nabbar/loadforge/logger"
	libparse "github.com/nabbar/loadforge/script/parser"
	libstat "github.com/nabbar/loadforge/script/statrack"
	libval "github.com/nabbar/loadforge/script/value"
	libscr "github.com/nabbar/loadforge/scripterr"
)

// StopChecker is the narrow view of the owning worker an Interpreter
// polls for cancellation (§4.5: "the driver polls ctx.shouldStop()
// between top-level instructions").
type StopChecker interface {
	StopRequested() bool
}

// Interpreter walks one parsed Script against its own variable table.
type Interpreter struct {
	script libparse.Script
	vars   map[string]libval.Variable
	order  []libval.Variable
	log    liblog.Logger
	debug  bool
}

// New builds an Interpreter for script, instantiating one Variable per
// declaration from reg (nil uses value.Default).
func New(script libparse.Script, reg *libval.Registry, log liblog.Logger) (*Interpreter, error) {
	if reg == nil {
		reg = libval.Default
	}
	it := &Interpreter{script: script, vars: map[string]libval.Variable{}, log: log}
	for _, vd := range script.Vars {
		v, err := reg.New(vd.Type)
		if err != nil {
			return nil, libscr.ConfigErrorf("variable %q: %s", vd.Name, err)
		}
		it.vars[vd.Name] = v
		it.order = append(it.order, v)
	}
	return it, nil
}

// SetDebug toggles verbose per-instruction trace logging (§4.5
// debugExecute).
func (it *Interpreter) SetDebug(v bool) { it.debug = v }

// StatTrackers returns every stat tracker exposed by this script's
// variables, in declaration order, for export to internal/stat's
// prometheus Collector.
func (it *Interpreter) StatTrackers() []libval.StatTracker {
	var out []libval.StatTracker
	for _, v := range it.order {
		out = append(out, v.StatTrackers()...)
	}
	return out
}

// Execute runs the script's top-level instructions once, framed by
// stat-tracker start/stop, polling stop between instructions.
func (it *Interpreter) Execute(stop StopChecker) error {
	libstat.StartAll(it.order)
	defer libstat.StopAll(it.order)

	for _, inst := range it.script.Instructions {
		if stop != nil && stop.StopRequested() {
			it.trace("stop requested, halting script")
			return nil
		}

		sig, err := it.execInstruction(inst, stop)
		if err != nil {
			return err
		}
		if sig == libscr.SignalStop {
			it.trace("script issued STOP")
			return nil
		}
		if sig == libscr.SignalBreak || sig == libscr.SignalContinue {
			return libscr.RuntimeScriptErrorf("%s outside of a loop", sig)
		}
	}
	return nil
}

func (it *Interpreter) trace(msg string, fields ...any) {
	if !it.debug || it.log == nil {
		return
	}
	e := it.log.Entry(liblog.DebugLevel, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		if k, ok := fields[i].(string); ok {
			e = e.FieldAdd(k, fields[i+1])
		}
	}
	e.Log()
}
