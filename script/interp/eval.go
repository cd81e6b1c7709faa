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

package interp

import (
	libparse "github.com/nabbar/loadforge/script/parser"
	libval "github.com/nabbar/loadforge/script/value"
	libscr "github.com/nabbar/loadforge/scripterr"
)

// execInstruction runs one instruction, returning a non-None Signal
// when control flow must unwind (§4.5).
func (it *Interpreter) execInstruction(inst libparse.Instruction, stop StopChecker) (libscr.Signal, error) {
	switch n := inst.(type) {
	case libparse.AssignStmt:
		v, err := it.eval(n.Value)
		if err != nil {
			return libscr.SignalNone, err
		}
		return libscr.SignalNone, it.vars[n.Target].AssignFrom(v)

	case libparse.CallStmt:
		_, err := it.invoke(n.Target, n.Method, n.Args)
		return libscr.SignalNone, err

	case libparse.IfStmt:
		cond, err := it.eval(n.Cond)
		if err != nil {
			return libscr.SignalNone, err
		}
		b, ok := cond.(*libval.Boolean)
		if !ok {
			return libscr.SignalNone, libscr.RuntimeScriptErrorf("if condition did not evaluate to boolean")
		}
		taken := b.Value()
		if n.Negate {
			taken = !taken
		}
		if taken {
			return it.execBlock(n.Then, stop)
		}
		return it.execBlock(n.Else, stop)

	case libparse.LoopStmt:
		return it.execLoop(n, stop)

	case libparse.WhileStmt:
		return it.execWhile(n, stop)

	case libparse.BreakStmt:
		return libscr.SignalBreak, nil

	case libparse.ContinueStmt:
		return libscr.SignalContinue, nil

	default:
		return libscr.SignalNone, libscr.RuntimeScriptErrorf("unhandled instruction type %T", inst)
	}
}

// execBlock runs a sequence of instructions, stopping early on a
// non-None signal and propagating it to the caller.
func (it *Interpreter) execBlock(instrs []libparse.Instruction, stop StopChecker) (libscr.Signal, error) {
	for _, inst := range instrs {
		sig, err := it.execInstruction(inst, stop)
		if err != nil {
			return libscr.SignalNone, err
		}
		if sig != libscr.SignalNone {
			return sig, nil
		}
	}
	return libscr.SignalNone, nil
}

func (it *Interpreter) execLoop(n libparse.LoopStmt, stop StopChecker) (libscr.Signal, error) {
	count, err := it.eval(n.Count)
	if err != nil {
		return libscr.SignalNone, err
	}
	i64, ok := count.(*libval.Integer)
	if !ok {
		return libscr.SignalNone, libscr.RuntimeScriptErrorf("loop count did not evaluate to integer")
	}

	for i := int64(0); i < i64.Value(); i++ {
		if stop != nil && stop.StopRequested() {
			return libscr.SignalStop, nil
		}
		sig, err := it.execBlock(n.Body, stop)
		if err != nil {
			return libscr.SignalNone, err
		}
		switch sig {
		case libscr.SignalBreak:
			return libscr.SignalNone, nil
		case libscr.SignalStop:
			return libscr.SignalStop, nil
		}
	}
	return libscr.SignalNone, nil
}

func (it *Interpreter) execWhile(n libparse.WhileStmt, stop StopChecker) (libscr.Signal, error) {
	for {
		if stop != nil && stop.StopRequested() {
			return libscr.SignalStop, nil
		}
		cond, err := it.eval(n.Cond)
		if err != nil {
			return libscr.SignalNone, err
		}
		b, ok := cond.(*libval.Boolean)
		if !ok {
			return libscr.SignalNone, libscr.RuntimeScriptErrorf("while condition did not evaluate to boolean")
		}
		want := b.Value()
		if n.Negate {
			want = !want
		}
		if !want {
			return libscr.SignalNone, nil
		}

		sig, err := it.execBlock(n.Body, stop)
		if err != nil {
			return libscr.SignalNone, err
		}
		switch sig {
		case libscr.SignalBreak:
			return libscr.SignalNone, nil
		case libscr.SignalStop:
			return libscr.SignalStop, nil
		}
	}
}

// eval evaluates an Argument to a Variable. Method-call arguments are
// re-evaluated on every access, satisfying §4.5's evaluation-order
// rule by construction (each eval call performs exactly one
// invocation).
func (it *Interpreter) eval(a libparse.Argument) (libval.Variable, error) {
	switch n := a.(type) {
	case libparse.BoolLiteral:
		return libval.NewBoolean(n.Value), nil
	case libparse.IntLiteral:
		return libval.NewInteger(n.Value), nil
	case libparse.StringLiteralArg:
		return libval.NewString(n.Value), nil
	case libparse.VarRef:
		v, ok := it.vars[n.Name]
		if !ok {
			return nil, libscr.RuntimeScriptErrorf("undeclared variable %q", n.Name)
		}
		return v, nil
	case libparse.MethodCallExpr:
		return it.invoke(n.Target, n.Method, n.Args)
	default:
		return nil, libscr.RuntimeScriptErrorf("unhandled argument type %T", a)
	}
}

// invoke evaluates args left to right, then dispatches the call
// (§4.5 evaluation order).
func (it *Interpreter) invoke(target, method string, args []libparse.Argument) (libval.Variable, error) {
	recv, ok := it.vars[target]
	if !ok {
		return nil, libscr.RuntimeScriptErrorf("undeclared variable %q", target)
	}

	evaluated := make([]libval.Variable, len(args))
	argTypes := make([]string, len(args))
	for i, a := range args {
		v, err := it.eval(a)
		if err != nil {
			return nil, err
		}
		evaluated[i] = v
		argTypes[i] = v.TypeName()
	}

	idx := recv.MethodIndex(method, argTypes)
	if idx < 0 {
		return nil, libscr.RuntimeScriptErrorf("no method %s.%s matches the given arguments", target, method)
	}
	return recv.Invoke(idx, evaluated)
}
