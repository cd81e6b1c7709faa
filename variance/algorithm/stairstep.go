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

import "fmt"

// StairStep applies its whole delta in a single event at offset 0.
type StairStep struct {
	target Target
}

func (s *StairStep) Name() string { return "stairstep" }

func (s *StairStep) Compile(args []string) (Algorithm, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("algorithm: stairstep takes exactly one argument, got %d", len(args))
	}

	t, err := ParseTarget(args[0])
	if err != nil {
		return nil, err
	}

	return &StairStep{target: t}, nil
}

func (s *StairStep) Apply(_ int64, totalWorkers, activeWorkers int) ([]Event, error) {
	delta := s.target.Delta(totalWorkers, activeWorkers)
	if delta == 0 {
		return nil, nil
	}
	return []Event{{OffsetMs: 0, Delta: delta}}, nil
}
