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

// Package lexer tokenizes scripts (§4.4) into a peekable stream the
// parser consumes.
package lexer

// Kind identifies a token's lexical category.
type Kind int

const (
	EOF Kind = iota
	Ident
	IntLiteral
	StringLiteral
	ClassName
	Dot
	Equals
	Semicolon
	Comma
	LParen
	RParen
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Ident:
		return "identifier"
	case IntLiteral:
		return "integer literal"
	case StringLiteral:
		return "string literal"
	case ClassName:
		return "class name"
	case Dot:
		return "'.'"
	case Equals:
		return "'='"
	case Semicolon:
		return "';'"
	case Comma:
		return "','"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	default:
		return "unknown"
	}
}

// Token is one lexical unit with its source position (§4.4: parse
// errors report 1-based line and character).
type Token struct {
	Kind Kind
	Text string
	Line int
	Char int
}

// reserved words are identifiers the grammar treats specially (§4.4).
// Boolean literals true/false are handled separately by the parser
// since they produce a value, not a keyword token.
var reserved = map[string]bool{
	"use": true, "variable": true, "begin": true, "end": true,
	"if": true, "ifnot": true, "else": true,
	"loop": true, "while": true, "whilenot": true,
	"break": true, "continue": true,
}

// IsReserved reports whether word (already lowercased) is a reserved
// word.
func IsReserved(word string) bool { return reserved[word] }
