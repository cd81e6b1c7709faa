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

package parser

import (
	"strconv"

	liblex "github.com/nabbar/loadforge/script/lexer"
	libval "github.com/nabbar/loadforge/script/value"
	libscr "github.com/nabbar/loadforge/scripterr"
)

// Parser consumes a Lexer's token stream into a Script, checking every
// semantic rule named in §4.4 against a type Registry.
type Parser struct {
	lex      *liblex.Lexer
	reg      *libval.Registry
	locals   map[string]string // name -> type, declaration order not needed here
	sawInstr bool
}

// New returns a Parser reading src and resolving types against reg.
// Passing nil for reg uses value.Default.
func New(src string, reg *libval.Registry) *Parser {
	if reg == nil {
		reg = libval.Default
	}
	return &Parser{lex: liblex.New(src), reg: reg, locals: map[string]string{}}
}

// Parse runs the full script grammar and returns the built AST.
func (p *Parser) Parse() (Script, error) {
	var s Script

	for {
		tok, err := p.lex.Peek()
		if err != nil {
			return s, err
		}
		if tok.Kind != liblex.Ident || tok.Text != "use" {
			break
		}
		cls, err := p.parseUse()
		if err != nil {
			return s, err
		}
		s.Uses = append(s.Uses, cls)
	}

	for {
		tok, err := p.lex.Peek()
		if err != nil {
			return s, err
		}
		if tok.Kind != liblex.Ident || tok.Text != "variable" {
			break
		}
		vd, err := p.parseVarDecl()
		if err != nil {
			return s, err
		}
		s.Vars = append(s.Vars, vd)
	}

	for {
		tok, err := p.lex.Peek()
		if err != nil {
			return s, err
		}
		if tok.Kind == liblex.EOF {
			break
		}
		inst, err := p.parseInstruction()
		if err != nil {
			return s, err
		}
		p.sawInstr = true
		s.Instructions = append(s.Instructions, inst)
	}

	return s, nil
}

func (p *Parser) parseUse() (string, error) {
	kw, _ := p.lex.Next() // "use"
	p.lex.SetClassNamePosition(true)
	cls, err := p.lex.Next()
	p.lex.SetClassNamePosition(false)
	if err != nil {
		return "", err
	}
	if cls.Kind != liblex.ClassName && cls.Kind != liblex.Ident {
		return "", libscr.ParseErrorf(kw.Line, kw.Char, "expected class name after 'use'")
	}
	if err := p.expect(liblex.Semicolon); err != nil {
		return "", err
	}
	if _, ok := p.reg.Lookup(cls.Text); !ok {
		return "", libscr.ParseErrorf(cls.Line, cls.Char, "cannot load class %q", cls.Text)
	}
	return cls.Text, nil
}

func (p *Parser) parseVarDecl() (VarDecl, error) {
	kw, _ := p.lex.Next() // "variable"
	typeTok, err := p.lex.Next()
	if err != nil {
		return VarDecl{}, err
	}
	if typeTok.Kind != liblex.Ident {
		return VarDecl{}, libscr.ParseErrorf(typeTok.Line, typeTok.Char, "expected type name")
	}
	if _, ok := p.reg.Lookup(typeTok.Text); !ok {
		return VarDecl{}, libscr.ParseErrorf(typeTok.Line, typeTok.Char, "undefined variable type %q", typeTok.Text)
	}

	nameTok, err := p.lex.Next()
	if err != nil {
		return VarDecl{}, err
	}
	if err := p.checkIdentifier(nameTok); err != nil {
		return VarDecl{}, err
	}
	if _, exists := p.locals[nameTok.Text]; exists {
		return VarDecl{}, libscr.ParseErrorf(nameTok.Line, nameTok.Char, "variable %q already declared", nameTok.Text)
	}

	if err := p.expect(liblex.Semicolon); err != nil {
		return VarDecl{}, err
	}

	p.locals[nameTok.Text] = typeTok.Text
	return VarDecl{Type: typeTok.Text, Name: nameTok.Text, Line: kw.Line, Char: kw.Char}, nil
}

func (p *Parser) checkIdentifier(tok liblex.Token) error {
	if tok.Kind != liblex.Ident {
		return libscr.ParseErrorf(tok.Line, tok.Char, "expected identifier, got %s", tok.Kind)
	}
	if liblex.IsReserved(tok.Text) || tok.Text == "true" || tok.Text == "false" {
		return libscr.ParseErrorf(tok.Line, tok.Char, "%q is a reserved word", tok.Text)
	}
	return nil
}

func (p *Parser) expect(k liblex.Kind) error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	if tok.Kind != k {
		return libscr.ParseErrorf(tok.Line, tok.Char, "expected %s, got %s", k, tok.Kind)
	}
	return nil
}

// parseInstruction dispatches on the next reserved word or falls
// through to assign/call.
func (p *Parser) parseInstruction() (Instruction, error) {
	tok, err := p.lex.Peek()
	if err != nil {
		return nil, err
	}

	switch {
	case tok.Kind == liblex.Ident && tok.Text == "if":
		return p.parseIf(false)
	case tok.Kind == liblex.Ident && tok.Text == "ifnot":
		return p.parseIf(true)
	case tok.Kind == liblex.Ident && tok.Text == "loop":
		return p.parseLoop()
	case tok.Kind == liblex.Ident && tok.Text == "while":
		return p.parseWhile(false)
	case tok.Kind == liblex.Ident && tok.Text == "whilenot":
		return p.parseWhile(true)
	case tok.Kind == liblex.Ident && tok.Text == "break":
		p.lex.Next()
		if err := p.expect(liblex.Semicolon); err != nil {
			return nil, err
		}
		return BreakStmt{pos{tok.Line, tok.Char}}, nil
	case tok.Kind == liblex.Ident && tok.Text == "continue":
		p.lex.Next()
		if err := p.expect(liblex.Semicolon); err != nil {
			return nil, err
		}
		return ContinueStmt{pos{tok.Line, tok.Char}}, nil
	case tok.Kind == liblex.Ident && tok.Text == "begin":
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		// A bare block is represented as a no-condition loop-of-one via
		// an IfStmt on a constant true, keeping Instruction a flat
		// interface without introducing a dedicated wrapper type.
		return IfStmt{pos: pos{tok.Line, tok.Char}, Cond: BoolLiteral{pos{tok.Line, tok.Char}, true}, Then: body}, nil
	default:
		return p.parseAssignOrCall(tok)
	}
}

func (p *Parser) parseBody() ([]Instruction, error) {
	tok, err := p.lex.Peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == liblex.Ident && tok.Text == "begin" {
		return p.parseBlock()
	}
	inst, err := p.parseInstruction()
	if err != nil {
		return nil, err
	}
	return []Instruction{inst}, nil
}

func (p *Parser) parseBlock() ([]Instruction, error) {
	p.lex.Next() // "begin"
	var out []Instruction
	for {
		tok, err := p.lex.Peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == liblex.Ident && tok.Text == "end" {
			p.lex.Next()
			if err := p.expect(liblex.Semicolon); err != nil {
				return nil, err
			}
			return out, nil
		}
		if tok.Kind == liblex.EOF {
			return nil, libscr.ParseErrorf(tok.Line, tok.Char, "unterminated block, expected 'end'")
		}
		inst, err := p.parseInstruction()
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
}

func (p *Parser) parseIf(negate bool) (Instruction, error) {
	kw, _ := p.lex.Next()
	cond, err := p.parseArgument()
	if err != nil {
		return nil, err
	}
	if t, _ := p.argType(cond); t != "boolean" {
		return nil, libscr.ParseErrorf(kw.Line, kw.Char, "condition must be boolean, got %s", t)
	}
	then, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	var elseBody []Instruction
	tok, err := p.lex.Peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == liblex.Ident && tok.Text == "else" {
		p.lex.Next()
		elseBody, err = p.parseBody()
		if err != nil {
			return nil, err
		}
	}

	return IfStmt{pos: pos{kw.Line, kw.Char}, Negate: negate, Cond: cond, Then: then, Else: elseBody}, nil
}

func (p *Parser) parseLoop() (Instruction, error) {
	kw, _ := p.lex.Next()
	count, err := p.parseArgument()
	if err != nil {
		return nil, err
	}
	if t, _ := p.argType(count); t != "integer" {
		return nil, libscr.ParseErrorf(kw.Line, kw.Char, "loop count must be integer, got %s", t)
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	return LoopStmt{pos: pos{kw.Line, kw.Char}, Count: count, Body: body}, nil
}

func (p *Parser) parseWhile(negate bool) (Instruction, error) {
	kw, _ := p.lex.Next()
	cond, err := p.parseArgument()
	if err != nil {
		return nil, err
	}
	if t, _ := p.argType(cond); t != "boolean" {
		return nil, libscr.ParseErrorf(kw.Line, kw.Char, "condition must be boolean, got %s", t)
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	return WhileStmt{pos: pos{kw.Line, kw.Char}, Negate: negate, Cond: cond, Body: body}, nil
}

func (p *Parser) parseAssignOrCall(first liblex.Token) (Instruction, error) {
	if err := p.checkIdentifier(first); err != nil {
		return nil, err
	}
	p.lex.Next()

	next, err := p.lex.Next()
	if err != nil {
		return nil, err
	}

	switch next.Kind {
	case liblex.Equals:
		val, err := p.parseArgument()
		if err != nil {
			return nil, err
		}
		if err := p.expect(liblex.Semicolon); err != nil {
			return nil, err
		}
		targetType, ok := p.locals[first.Text]
		if !ok {
			return nil, libscr.ParseErrorf(first.Line, first.Char, "undeclared variable %q", first.Text)
		}
		if vt, _ := p.argType(val); vt != targetType {
			return nil, libscr.ParseErrorf(first.Line, first.Char, "cannot assign %s to %s variable %q", vt, targetType, first.Text)
		}
		return AssignStmt{pos: pos{first.Line, first.Char}, Target: first.Text, Value: val}, nil

	case liblex.Dot:
		method, args, err := p.parseMethodCallTail(first)
		if err != nil {
			return nil, err
		}
		if err := p.expect(liblex.Semicolon); err != nil {
			return nil, err
		}
		return CallStmt{pos: pos{first.Line, first.Char}, Target: first.Text, Method: method, Args: args}, nil

	default:
		return nil, libscr.ParseErrorf(next.Line, next.Char, "expected '=' or '.', got %s", next.Kind)
	}
}

// parseMethodCallTail parses ".method(args)" assuming the target
// identifier and the '.' have already been consumed as next.
func (p *Parser) parseMethodCallTail(target liblex.Token) (string, []Argument, error) {
	methodTok, err := p.lex.Next()
	if err != nil {
		return "", nil, err
	}
	if methodTok.Kind != liblex.Ident {
		return "", nil, libscr.ParseErrorf(methodTok.Line, methodTok.Char, "expected method name")
	}
	if err := p.expect(liblex.LParen); err != nil {
		return "", nil, err
	}

	var args []Argument
	tok, err := p.lex.Peek()
	if err != nil {
		return "", nil, err
	}
	if tok.Kind != liblex.RParen {
		for {
			a, err := p.parseArgument()
			if err != nil {
				return "", nil, err
			}
			args = append(args, a)

			tok, err = p.lex.Peek()
			if err != nil {
				return "", nil, err
			}
			if tok.Kind == liblex.Comma {
				p.lex.Next()
				continue
			}
			break
		}
	}
	if err := p.expect(liblex.RParen); err != nil {
		return "", nil, err
	}

	argTypes := make([]string, len(args))
	for i, a := range args {
		argTypes[i], _ = p.argType(a)
	}
	targetType, ok := p.locals[target.Text]
	if !ok {
		return "", nil, libscr.ParseErrorf(target.Line, target.Char, "undeclared variable %q", target.Text)
	}
	v, err := p.reg.New(targetType)
	if err != nil {
		return "", nil, libscr.ParseErrorf(target.Line, target.Char, "%s", err)
	}
	if v.MethodIndex(methodTok.Text, argTypes) < 0 {
		return "", nil, libscr.ParseErrorf(methodTok.Line, methodTok.Char, "no method %s.%s matches the given argument types", targetType, methodTok.Text)
	}

	return methodTok.Text, args, nil
}

func (p *Parser) parseArgument() (Argument, error) {
	tok, err := p.lex.Peek()
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case liblex.IntLiteral:
		p.lex.Next()
		n, convErr := strconv.ParseInt(tok.Text, 10, 64)
		if convErr != nil {
			return nil, libscr.ParseErrorf(tok.Line, tok.Char, "malformed integer literal %q", tok.Text)
		}
		return IntLiteral{pos{tok.Line, tok.Char}, n}, nil

	case liblex.StringLiteral:
		p.lex.Next()
		return StringLiteralArg{pos{tok.Line, tok.Char}, tok.Text}, nil

	case liblex.Ident:
		if tok.Text == "true" || tok.Text == "false" {
			p.lex.Next()
			return BoolLiteral{pos{tok.Line, tok.Char}, tok.Text == "true"}, nil
		}
		if err := p.checkIdentifier(tok); err != nil {
			return nil, err
		}
		p.lex.Next()

		nxt, err := p.lex.Peek()
		if err != nil {
			return nil, err
		}
		if nxt.Kind == liblex.Dot {
			p.lex.Next()
			method, args, err := p.parseMethodCallTail(tok)
			if err != nil {
				return nil, err
			}
			return MethodCallExpr{pos{tok.Line, tok.Char}, tok.Text, method, args}, nil
		}
		if _, ok := p.locals[tok.Text]; !ok {
			return nil, libscr.ParseErrorf(tok.Line, tok.Char, "undeclared variable %q", tok.Text)
		}
		return VarRef{pos{tok.Line, tok.Char}, tok.Text}, nil

	default:
		return nil, libscr.ParseErrorf(tok.Line, tok.Char, "expected an argument, got %s", tok.Kind)
	}
}

// argType computes an Argument's static type against the current
// local variable table and type registry (§4.4 semantic checks).
func (p *Parser) argType(a Argument) (string, error) {
	switch v := a.(type) {
	case BoolLiteral:
		return "boolean", nil
	case IntLiteral:
		return "integer", nil
	case StringLiteralArg:
		return "string", nil
	case VarRef:
		t, ok := p.locals[v.Name]
		if !ok {
			line, char := v.Pos()
			return "", libscr.ParseErrorf(line, char, "undeclared variable %q", v.Name)
		}
		return t, nil
	case MethodCallExpr:
		targetType, ok := p.locals[v.Target]
		if !ok {
			line, char := v.Pos()
			return "", libscr.ParseErrorf(line, char, "undeclared variable %q", v.Target)
		}
		inst, err := p.reg.New(targetType)
		if err != nil {
			return "", err
		}
		argTypes := make([]string, len(v.Args))
		for i, arg := range v.Args {
			argTypes[i], _ = p.argType(arg)
		}
		idx := inst.MethodIndex(v.Method, argTypes)
		if idx < 0 {
			return "", nil
		}
		return inst.Methods()[idx].ReturnType, nil
	default:
		return "", nil
	}
}
