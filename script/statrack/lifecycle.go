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

package statrack

import libval "github.com/nabbar/loadforge/script/value"

// StartAll calls Start on every tracker owned by vars (§4.3
// startStatTrackers), run by the interpreter before a script's first
// instruction.
func StartAll(vars []libval.Variable) {
	for _, v := range vars {
		for _, t := range v.StatTrackers() {
			if s, ok := t.(*Tracker); ok {
				s.Start()
			}
		}
	}
}

// StopAll calls Stop on every tracker owned by vars (§4.3
// stopStatTrackers), run by the interpreter after a script's last
// instruction, including on early STOP.
func StopAll(vars []libval.Variable) {
	for _, v := range vars {
		for _, t := range v.StatTrackers() {
			if s, ok := t.(*Tracker); ok {
				s.Stop()
			}
		}
	}
}

// CollectAll gathers every tracker owned by vars (§4.3 getStatTrackers)
// for export at job end.
func CollectAll(vars []libval.Variable) []libval.StatTracker {
	var out []libval.StatTracker
	for _, v := range vars {
		out = append(out, v.StatTrackers()...)
	}
	return out
}
