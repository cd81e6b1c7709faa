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
	"strings"
	"sync"

	libscr "github.com/nabbar/loadforge/scripterr"
)

// Factory builds a zero-valued instance of a registered type, ready for
// AssignFrom or direct method invocation.
type Factory func() Variable

// Registry maps script class names (§4.3 "use" declarations) to
// Factory functions, case-insensitively, rejecting duplicate
// registration (§4.3 invariant).
type Registry struct {
	mu    sync.RWMutex
	types map[string]Factory
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]Factory)}
}

// Register adds a named type. Registering the same name twice, even
// with different casing, is a configuration error.
func (r *Registry) Register(name string, f Factory) error {
	key := strings.ToLower(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.types[key]; ok {
		return libscr.ConfigErrorf("type %q already registered", name)
	}
	r.types[key] = f
	return nil
}

// Lookup returns the Factory registered under name, if any.
func (r *Registry) Lookup(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.types[strings.ToLower(name)]
	return f, ok
}

// New instantiates a fresh Variable of the named type.
func (r *Registry) New(name string) (Variable, error) {
	f, ok := r.Lookup(name)
	if !ok {
		return nil, libscr.ConfigErrorf("unknown type %q", name)
	}
	return f(), nil
}

// Names returns every registered type name, unordered.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.types))
	for k := range r.types {
		out = append(out, k)
	}
	return out
}

// Default is the process-wide registry populated by each builtin
// package's init() (§4.3: the interpreter resolves "use" declarations
// against a single shared namespace).
var Default = NewRegistry()
