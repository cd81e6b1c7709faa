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

// Package parser builds an executable AST from a token stream (§4.4),
// enforcing every parse-time semantic check the grammar names.
package parser

// Script is the root of a parsed program: resolved "use" classes,
// declared variables in declaration order, then the top-level
// instruction sequence (§4.4).
type Script struct {
	Uses         []string
	Vars         []VarDecl
	Instructions []Instruction
}

// VarDecl is one "variable <type> <name>;" declaration.
type VarDecl struct {
	Type string
	Name string
	Line int
	Char int
}

// Instruction is any statement the grammar's instruction rule admits.
type Instruction interface {
	Pos() (line, char int)
}

type pos struct{ line, char int }

func (p pos) Pos() (int, int) { return p.line, p.char }

// Argument is any grammar argument: a literal, a variable reference,
// or a method-call expression evaluated for its return value.
type Argument interface {
	Pos() (line, char int)
}

// BoolLiteral is the reserved-word boolean value true/false.
type BoolLiteral struct {
	pos
	Value bool
}

// IntLiteral is an integer literal argument.
type IntLiteral struct {
	pos
	Value int64
}

// StringLiteralArg is a double-quoted string literal argument.
type StringLiteralArg struct {
	pos
	Value string
}

// VarRef is a bare identifier argument referencing a declared
// variable.
type VarRef struct {
	pos
	Name string
}

// MethodCallExpr is "identifier.method(args)" used as an argument; it
// is re-evaluated every time it is read (§4.5).
type MethodCallExpr struct {
	pos
	Target string
	Method string
	Args   []Argument
}

// AssignStmt is "identifier = argument;".
type AssignStmt struct {
	pos
	Target string
	Value  Argument
}

// CallStmt is "identifier.method(args);" used as a standalone
// statement, discarding any return value.
type CallStmt struct {
	pos
	Target string
	Method string
	Args   []Argument
}

// IfStmt covers both "if" and "ifnot" (Negate distinguishes them).
type IfStmt struct {
	pos
	Negate bool
	Cond   Argument
	Then   []Instruction
	Else   []Instruction
}

// LoopStmt is "loop <count> body".
type LoopStmt struct {
	pos
	Count Argument
	Body  []Instruction
}

// WhileStmt covers both "while" and "whilenot" (Negate distinguishes
// them).
type WhileStmt struct {
	pos
	Negate bool
	Cond   Argument
	Body   []Instruction
}

// BreakStmt is "break;", only legal inside a loop body.
type BreakStmt struct{ pos }

// ContinueStmt is "continue;", only legal inside a loop body.
type ContinueStmt struct{ pos }
