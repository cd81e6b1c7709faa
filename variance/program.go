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

// Package variance compiles a variance program (§3, §4.7) into a flat
// event timeline and drives a per-client scheduler task that toggles
// worker activation flags on that timeline.
package variance

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	libalg "github.com/nabbar/loadforge/variance/algorithm"
)

// Instruction is one line of a variance program: a delay, a duration,
// and an algorithm invocation.
type Instruction struct {
	DelayBeforeSeconds int64
	DurationSeconds    int64
	Algorithm          string
	Args               []string
	Line               int
}

// Program is an ordered list of variance-program instructions plus the
// looping flag read from its file (a trailing "loop" line toggles it —
// see ParseProgramFile).
type Program struct {
	Instructions []Instruction
	Loop         bool
}

// ParseProgramFile reads the tab-delimited variance program format from
// §6: one instruction per line, fields
// delay_before_seconds, duration_seconds, algorithm_type_name, args...
// Blank lines are skipped. A trailing bare "loop" line enables looping.
func ParseProgramFile(r io.Reader) (Program, error) {
	var p Program

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(line), "loop") {
			p.Loop = true
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			return Program{}, fmt.Errorf("variance program line %d: expected at least 3 tab-delimited fields", lineNo)
		}

		delay, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
		if err != nil {
			return Program{}, fmt.Errorf("variance program line %d: bad delay_before_seconds: %w", lineNo, err)
		}
		duration, err := strconv.ParseInt(strings.TrimSpace(fields[1]), 10, 64)
		if err != nil {
			return Program{}, fmt.Errorf("variance program line %d: bad duration_seconds: %w", lineNo, err)
		}

		algo := strings.ToLower(strings.TrimSpace(fields[2]))
		if _, ok := libalg.Lookup(algo); !ok {
			return Program{}, fmt.Errorf("variance program line %d: unknown algorithm %q", lineNo, algo)
		}

		args := append([]string(nil), fields[3:]...)
		if _, err = libalg.Compile(algo, args); err != nil {
			return Program{}, fmt.Errorf("variance program line %d: %w", lineNo, err)
		}

		p.Instructions = append(p.Instructions, Instruction{
			DelayBeforeSeconds: delay,
			DurationSeconds:    duration,
			Algorithm:          algo,
			Args:               args,
			Line:               lineNo,
		})
	}

	if err := sc.Err(); err != nil {
		return Program{}, err
	}

	return p, nil
}

// WriteProgramFile serializes p back to the tab-delimited format,
// matching ParseProgramFile's grammar so that write-then-parse is
// idempotent.
func WriteProgramFile(w io.Writer, p Program) error {
	bw := bufio.NewWriter(w)

	for _, ins := range p.Instructions {
		fields := []string{
			strconv.FormatInt(ins.DelayBeforeSeconds, 10),
			strconv.FormatInt(ins.DurationSeconds, 10),
			ins.Algorithm,
		}
		fields = append(fields, ins.Args...)
		if _, err := bw.WriteString(strings.Join(fields, "\t") + "\n"); err != nil {
			return err
		}
	}

	if p.Loop {
		if _, err := bw.WriteString("loop\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}
