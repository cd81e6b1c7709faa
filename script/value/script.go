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

func init() {
	_ = Default.Register("script", func() Variable { return NewScript() })
}

// Runner is supplied by script/interp (never by value itself, to avoid
// a value<->interp import cycle) so a Script variable can invoke a
// nested, already-compiled sub-script by name.
type Runner func(path string) (Variable, error)

// Script is the builtin type representing a loadable, invokable
// sub-script (§4.3). Its "load" method only records the path; "run"
// calls the Runner set with SetRunner. script/interp does not call
// SetRunner, so in an interpreted script "run" returns
// ErrScriptNotLoaded.
type Script struct {
	Dispatcher
	path   string
	runner Runner
}

// NewScript returns an unloaded Script variable.
func NewScript() *Script {
	s := &Script{}
	s.Dispatcher = NewDispatcher([]Method{
		{Signature{"load", []string{"string"}, ""}, func(a []Variable) (Variable, error) {
			s.path = a[0].(*String).Value()
			return nil, nil
		}},
		{Signature{"run", nil, ""}, func(a []Variable) (Variable, error) {
			if s.runner == nil {
				return nil, ErrScriptNotLoaded
			}
			return s.runner(s.path)
		}},
	})
	return s
}

// SetRunner sets the callback "run" uses to execute s.path. Not part
// of the Variable contract.
func (s *Script) SetRunner(r Runner) { s.runner = r }

func (s *Script) TypeName() string { return "script" }

func (s *Script) AssignFrom(other Variable) error {
	o, ok := other.(*Script)
	if !ok {
		return ErrTypeMismatch
	}
	s.path, s.runner = o.path, o.runner
	return nil
}

func (s *Script) String() string { return s.path }

func (s *Script) StatTrackers() []StatTracker { return nil }
