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

package lexer

import (
	"strings"
	"unicode"

	libscr "github.com/nabbar/loadforge/scripterr"
)

// Lexer scans one script's source into a peekable token stream (§4.4).
// SetClassNamePosition(true) must be called before Next immediately
// after a "use" keyword, since class-name tokens allow an embedded '.'
// and stop at the first rune that is not a letter, digit, '_' or '.'.
type Lexer struct {
	src      []rune
	pos      int
	line     int
	char     int
	peeked   *Token
	classPos bool
}

// New returns a Lexer over src, positioned at line 1 char 1.
func New(src string) *Lexer {
	return &Lexer{src: []rune(src), line: 1, char: 1}
}

func (l *Lexer) cur() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *Lexer) advance() {
	r, ok := l.cur()
	if !ok {
		return
	}
	l.pos++
	if r == '\n' {
		l.line++
		l.char = 1
	} else {
		l.char++
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		r, ok := l.cur()
		if !ok {
			return
		}
		if r == ' ' || r == '\t' || r == '\r' || r == '\n' {
			l.advance()
			continue
		}
		if r == '#' && l.atLineStartIgnoringBlanks() {
			for {
				r, ok := l.cur()
				if !ok || r == '\n' {
					break
				}
				l.advance()
			}
			continue
		}
		return
	}
}

// atLineStartIgnoringBlanks reports whether only whitespace precedes
// the cursor on the current line (§4.4: a '#' only starts a comment
// when the line, after optional leading whitespace, begins with it).
func (l *Lexer) atLineStartIgnoringBlanks() bool {
	i := l.pos - 1
	for i >= 0 {
		r := l.src[i]
		if r == '\n' {
			return true
		}
		if r != ' ' && r != '\t' && r != '\r' {
			return false
		}
		i--
	}
	return true
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (Token, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}
	t, err := l.scan()
	if err != nil {
		return Token{}, err
	}
	l.peeked = &t
	return t, nil
}

// Next consumes and returns the next token.
func (l *Lexer) Next() (Token, error) {
	if l.peeked != nil {
		t := *l.peeked
		l.peeked = nil
		return t, nil
	}
	return l.scan()
}

func (l *Lexer) scan() (Token, error) {
	l.skipWhitespaceAndComments()

	line, char := l.line, l.char
	r, ok := l.cur()
	if !ok {
		return Token{Kind: EOF, Line: line, Char: char}, nil
	}

	switch r {
	case '.':
		l.advance()
		return Token{Kind: Dot, Text: ".", Line: line, Char: char}, nil
	case '=':
		l.advance()
		return Token{Kind: Equals, Text: "=", Line: line, Char: char}, nil
	case ';':
		l.advance()
		return Token{Kind: Semicolon, Text: ";", Line: line, Char: char}, nil
	case ',':
		l.advance()
		return Token{Kind: Comma, Text: ",", Line: line, Char: char}, nil
	case '(':
		l.advance()
		return Token{Kind: LParen, Text: "(", Line: line, Char: char}, nil
	case ')':
		l.advance()
		return Token{Kind: RParen, Text: ")", Line: line, Char: char}, nil
	case '"':
		return l.scanString(line, char)
	}

	if r == '-' || unicode.IsDigit(r) {
		return l.scanInt(line, char)
	}

	if unicode.IsLetter(r) {
		return l.scanIdentOrClassName(line, char)
	}

	return Token{}, libscr.ParseErrorf(line, char, "unexpected character %q", r)
}

func (l *Lexer) scanString(line, char int) (Token, error) {
	l.advance() // opening quote
	var b strings.Builder
	for {
		r, ok := l.cur()
		if !ok || r == '\n' {
			return Token{}, libscr.ParseErrorf(line, char, "unterminated string literal")
		}
		if r == '\\' {
			l.advance()
			esc, ok := l.cur()
			if !ok {
				return Token{}, libscr.ParseErrorf(line, char, "unterminated string literal")
			}
			switch esc {
			case '"':
				b.WriteRune('"')
			case '\\':
				b.WriteRune('\\')
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			default:
				b.WriteRune(esc)
			}
			l.advance()
			continue
		}
		if r == '"' {
			l.advance()
			break
		}
		b.WriteRune(r)
		l.advance()
	}
	return Token{Kind: StringLiteral, Text: b.String(), Line: line, Char: char}, nil
}

func (l *Lexer) scanInt(line, char int) (Token, error) {
	var b strings.Builder
	if r, _ := l.cur(); r == '-' {
		b.WriteRune(r)
		l.advance()
	}
	start := b.Len()
	for {
		r, ok := l.cur()
		if !ok || !unicode.IsDigit(r) {
			break
		}
		b.WriteRune(r)
		l.advance()
	}
	if b.Len() == start {
		return Token{}, libscr.ParseErrorf(line, char, "malformed integer literal")
	}
	return Token{Kind: IntLiteral, Text: b.String(), Line: line, Char: char}, nil
}

func (l *Lexer) scanIdentOrClassName(line, char int) (Token, error) {
	var b strings.Builder
	for {
		r, ok := l.cur()
		if !ok {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
			l.advance()
			continue
		}
		if l.classPos && r == '.' {
			b.WriteRune(r)
			l.advance()
			continue
		}
		break
	}
	text := strings.ToLower(b.String())
	kind := Ident
	if l.classPos {
		kind = ClassName
	}
	return Token{Kind: kind, Text: text, Line: line, Char: char}, nil
}

// SetClassNamePosition toggles whether the next identifier-shaped scan
// treats an embedded '.' as part of the token (§4.4: used right after
// the "use" keyword). The parser clears it once the class name is
// consumed.
func (l *Lexer) SetClassNamePosition(v bool) {
	l.peeked = nil
	l.classPos = v
}
