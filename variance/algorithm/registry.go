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

package algorithm

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	mu       sync.RWMutex
	registry = map[string]Algorithm{
		(&StairStep{}).Name(): &StairStep{},
		(&Linear{}).Name():    &Linear{},
		(&Sine{}).Name():      &Sine{},
	}
)

// Lookup returns the prototype Algorithm registered under name
// (case-insensitive), or false if none is registered.
func Lookup(name string) (Algorithm, bool) {
	mu.RLock()
	defer mu.RUnlock()

	a, ok := registry[strings.ToLower(name)]
	return a, ok
}

// Register adds or replaces the Algorithm prototype under its own Name().
func Register(a Algorithm) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(a.Name())] = a
}

// Names returns the sorted list of registered algorithm names.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Compile looks up the named algorithm and compiles it with args.
func Compile(name string, args []string) (Algorithm, error) {
	proto, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("algorithm: unknown algorithm %q", name)
	}
	return proto.Compile(args)
}
