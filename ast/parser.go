// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ast

import (
	"strconv"
	"strings"
)

// Parser is a recursive-descent/Pratt parser over a pre-scanned token
// stream, implementing the precedence ladder
// pipeline/assignment -> logical -> bitwise -> comparison -> additive ->
// multiplicative -> join -> format -> range -> unary-with-operator -> primary ->
// value. It never executes anything; Parse returns the root Program node
// or a *ParseError.
type Parser struct {
	toks []Token
	pos  int
	src  string
}

// Parse lexes and parses src in one call.
func Parse(src string) (*Program, error) {
	lx := NewLexer(src)
	var toks []Token
	for {
		t := lx.Next()
		toks = append(toks, t)
		if t.Kind == TokEOF {
			break
		}
	}
	p := &Parser{toks: toks, src: src}
	prog, err := p.parseProgram()
	if err != nil {
		return nil, err
	}
	return prog, nil
}

func (p *Parser) cur() Token  { return p.toks[p.pos] }
func (p *Parser) at(k TokKind) bool { return p.cur().Kind == k }
func (p *Parser) atOp(text string) bool {
	return p.cur().Kind == TokOp && p.cur().Text == text
}
func (p *Parser) atKeyword(text string) bool {
	return p.cur().Kind == TokKeyword && p.cur().Text == text
}
func (p *Parser) advance() Token {
	t := p.cur()
	if t.Kind != TokEOF {
		p.pos++
	}
	return t
}

func (p *Parser) skipSeparators() {
	for p.at(TokNewline) || p.at(TokSemicolon) {
		p.advance()
	}
}

func (p *Parser) fail(format string, args ...any) error {
	return NewParseError(p.cur().Pos, format, args...)
}

func (p *Parser) expectOp(text string) error {
	if !p.atOp(text) {
		return p.fail("expected %q, got %q", text, p.cur().Text)
	}
	p.advance()
	return nil
}

func (p *Parser) parseProgram() (*Program, error) {
	loc := p.cur().Pos
	stmts, err := p.parseStatementList()
	if err != nil {
		return nil, err
	}
	if !p.at(TokEOF) {
		return nil, p.fail("unexpected token %q", p.cur().Text)
	}
	return &Program{base{loc}, stmts}, nil
}

// parseStatementList parses statements until EOF or a closing brace, the
// caller owning which.
func (p *Parser) parseStatementList() ([]Node, error) {
	var stmts []Node
	p.skipSeparators()
	for !p.at(TokEOF) && !p.atOp("}") {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		p.skipSeparators()
	}
	return stmts, nil
}

func (p *Parser) parseBlock() ([]Node, error) {
	if err := p.expectOp("{"); err != nil {
		return nil, err
	}
	stmts, err := p.parseStatementList()
	if err != nil {
		return nil, err
	}
	if err := p.expectOp("}"); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) parseStatement() (Node, error) {
	switch {
	case p.atKeyword("if"):
		return p.parseIf()
	case p.atKeyword("while"):
		return p.parseWhile()
	case p.atKeyword("for"):
		return p.parseFor()
	case p.atKeyword("foreach"):
		return p.parseForeach()
	case p.atKeyword("switch"):
		return p.parseSwitch()
	case p.atKeyword("class"):
		return p.parseClass()
	case p.atKeyword("function"):
		return p.parseFunction()
	case p.atKeyword("break"):
		loc := p.advance().Pos
		return &BreakStmt{base{loc}}, nil
	case p.atKeyword("continue"):
		loc := p.advance().Pos
		return &ContinueStmt{base{loc}}, nil
	default:
		return p.parsePipeline()
	}
}

func (p *Parser) parseCondParen() (Node, error) {
	if err := p.expectOp("("); err != nil {
		return nil, err
	}
	cond, err := p.parsePipeline()
	if err != nil {
		return nil, err
	}
	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	return cond, nil
}

func (p *Parser) parseIf() (Node, error) {
	loc := p.advance().Pos // 'if'
	var branches []IfBranch
	cond, err := p.parseCondParen()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	branches = append(branches, IfBranch{Cond: cond, Body: body})
	for p.atKeyword("elseif") {
		p.advance()
		c, err := p.parseCondParen()
		if err != nil {
			return nil, err
		}
		b, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		branches = append(branches, IfBranch{Cond: c, Body: b})
	}
	if p.atKeyword("else") {
		p.advance()
		b, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		branches = append(branches, IfBranch{Cond: nil, Body: b})
	}
	return &IfStmt{base{loc}, branches}, nil
}

func (p *Parser) parseWhile() (Node, error) {
	loc := p.advance().Pos
	cond, err := p.parseCondParen()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{base{loc}, cond, body}, nil
}

func (p *Parser) parseFor() (Node, error) {
	loc := p.advance().Pos
	if err := p.expectOp("("); err != nil {
		return nil, err
	}
	var init, cond, step Node
	var err error
	if !p.atOp(";") {
		init, err = p.parsePipeline()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectOp(";"); err != nil {
		return nil, err
	}
	if !p.atOp(";") {
		cond, err = p.parsePipeline()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectOp(";"); err != nil {
		return nil, err
	}
	if !p.atOp(")") {
		step, err = p.parsePipeline()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ForStmt{base{loc}, init, cond, step, body}, nil
}

func (p *Parser) parseForeach() (Node, error) {
	loc := p.advance().Pos
	if err := p.expectOp("("); err != nil {
		return nil, err
	}
	if !p.at(TokVariable) {
		return nil, p.fail("expected loop variable")
	}
	varName := p.advance().Text
	if !p.atKeyword("in") {
		return nil, p.fail("expected 'in'")
	}
	p.advance()
	coll, err := p.parsePipeline()
	if err != nil {
		return nil, err
	}
	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ForeachStmt{base{loc}, varName, coll, body}, nil
}

func (p *Parser) parseSwitch() (Node, error) {
	loc := p.advance().Pos
	subject, err := p.parseCondParen()
	if err != nil {
		return nil, err
	}
	if err := p.expectOp("{"); err != nil {
		return nil, err
	}
	var cases []SwitchCase
	p.skipSeparators()
	for !p.atOp("}") && !p.at(TokEOF) {
		if p.atKeyword("default") {
			p.advance()
			b, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			cases = append(cases, SwitchCase{Body: b, Default: true})
		} else {
			v, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			b, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			cases = append(cases, SwitchCase{Value: v, Body: b})
		}
		p.skipSeparators()
	}
	if err := p.expectOp("}"); err != nil {
		return nil, err
	}
	return &SwitchStmt{base{loc}, subject, cases}, nil
}

func (p *Parser) parseParamList() ([]ScriptBlockParam, error) {
	if !p.atKeyword("param") {
		return nil, nil
	}
	p.advance()
	if err := p.expectOp("("); err != nil {
		return nil, err
	}
	var params []ScriptBlockParam
	for !p.atOp(")") {
		var typeName string
		if p.at(TokTypeLiteral) {
			typeName = p.advance().Text
		}
		if !p.at(TokVariable) {
			return nil, p.fail("expected parameter name")
		}
		name := p.advance().Text
		sbp := ScriptBlockParam{Name: name, TypeName: typeName, IsSwitch: strings.EqualFold(typeName, "switch")}
		if p.atOp("=") {
			p.advance()
			def, err := p.parsePipeline()
			if err != nil {
				return nil, err
			}
			sbp.Default = def
		}
		params = append(params, sbp)
		if p.atOp(",") {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	p.skipSeparators()
	if p.atOp(";") {
		p.advance()
	}
	return params, nil
}

func (p *Parser) parseClass() (Node, error) {
	loc := p.advance().Pos
	if !p.at(TokIdent) {
		return nil, p.fail("expected class name")
	}
	name := p.advance().Text
	if err := p.expectOp("{"); err != nil {
		return nil, err
	}
	var props []ClassPropertyDecl
	var methods []ClassMethodDecl
	p.skipSeparators()
	for !p.atOp("}") && !p.at(TokEOF) {
		var typeName string
		if p.at(TokTypeLiteral) {
			typeName = p.advance().Text
		}
		if p.at(TokVariable) {
			pname := p.advance().Text
			decl := ClassPropertyDecl{Name: pname, TypeName: typeName}
			if p.atOp("=") {
				p.advance()
				def, err := p.parsePipeline()
				if err != nil {
					return nil, err
				}
				decl.Default = def
			}
			props = append(props, decl)
		} else if p.at(TokIdent) {
			mname := p.advance().Text
			if err := p.expectOp("("); err != nil {
				return nil, err
			}
			var params []ScriptBlockParam
			for !p.atOp(")") {
				var ptype string
				if p.at(TokTypeLiteral) {
					ptype = p.advance().Text
				}
				if !p.at(TokVariable) {
					return nil, p.fail("expected parameter name")
				}
				params = append(params, ScriptBlockParam{Name: p.advance().Text, TypeName: ptype})
				if p.atOp(",") {
					p.advance()
					continue
				}
				break
			}
			if err := p.expectOp(")"); err != nil {
				return nil, err
			}
			body, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			methods = append(methods, ClassMethodDecl{Name: mname, Params: params, Body: body})
		} else {
			return nil, p.fail("unexpected token in class body: %q", p.cur().Text)
		}
		p.skipSeparators()
	}
	if err := p.expectOp("}"); err != nil {
		return nil, err
	}
	return &ClassDecl{base{loc}, name, props, methods}, nil
}

func (p *Parser) parseFunction() (Node, error) {
	loc := p.advance().Pos
	if !p.at(TokIdent) {
		return nil, p.fail("expected function name")
	}
	name := p.advance().Text
	params, err := p.parseParamListInBlock()
	if err != nil {
		return nil, err
	}
	return &FunctionDecl{base{loc}, name, params}, nil
}

// parseParamListInBlock parses `{ param(...); body }` for `function`.
func (p *Parser) parseParamListInBlock() (*ScriptBlockLit, error) {
	loc := p.cur().Pos
	if err := p.expectOp("{"); err != nil {
		return nil, err
	}
	p.skipSeparators()
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	stmts, err := p.parseStatementList()
	if err != nil {
		return nil, err
	}
	if err := p.expectOp("}"); err != nil {
		return nil, err
	}
	return &ScriptBlockLit{base{loc}, params, stmts, ""}, nil
}

// parsePipeline implements the lowest precedence layer: pipeline and
// assignment.
func (p *Parser) parsePipeline() (Node, error) {
	first, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if !p.atOp("|") {
		return first, nil
	}
	stages := []Node{first}
	for p.atOp("|") {
		p.advance()
		stage, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		stages = append(stages, stage)
	}
	return &Pipeline{base{first.Loc()}, stages}, nil
}

var compoundAssignOps = map[string]string{
	"+=": "+", "-=": "-", "*=": "*", "/=": "/", "%=": "%",
}

func (p *Parser) parseAssignment() (Node, error) {
	left, err := p.parseLogical()
	if err != nil {
		return nil, err
	}
	if p.atOp("=") {
		p.advance()
		right, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return &AssignExpr{base{left.Loc()}, left, "", right}, nil
	}
	if op, ok := compoundAssignOps[p.cur().Text]; ok && p.at(TokOp) {
		p.advance()
		right, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return &AssignExpr{base{left.Loc()}, left, op, right}, nil
	}
	return left, nil
}

func (p *Parser) parseLogical() (Node, error) {
	left, err := p.parseBitwise()
	if err != nil {
		return nil, err
	}
	for p.atOp("-and") || p.atOp("-or") || p.atOp("-xor") {
		op := p.advance().Text
		right, err := p.parseBitwise()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{base{left.Loc()}, op, left, right}
	}
	return left, nil
}

var bitwiseOps = map[string]bool{"-band": true, "-bor": true, "-bxor": true, "-shl": true, "-shr": true}

func (p *Parser) parseBitwise() (Node, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.at(TokOp) && bitwiseOps[p.cur().Text] {
		op := p.advance().Text
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{base{left.Loc()}, op, left, right}
	}
	return left, nil
}

var comparisonOps = map[string]bool{
	"-eq": true, "-ne": true, "-gt": true, "-ge": true, "-lt": true, "-le": true,
	"-ceq": true, "-cne": true, "-cgt": true, "-cge": true, "-clt": true, "-cle": true,
	"-ieq": true, "-ine": true, "-igt": true, "-ige": true, "-ilt": true, "-ile": true,
	"-match": true, "-notmatch": true, "-cmatch": true, "-inotmatch": true,
	"-like": true, "-notlike": true,
	"-contains": true, "-notcontains": true, "-in": true, "-notin": true,
	"-is": true, "-isnot": true,
	"-replace": true, "-ireplace": true, "-creplace": true,
	"-split": true, "-isplit": true, "-csplit": true,
}

func (p *Parser) parseComparison() (Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.at(TokOp) && comparisonOps[p.cur().Text] {
		op := p.advance().Text
		var right Node
		switch op {
		case "-is", "-isnot":
			if !p.at(TokTypeLiteral) {
				return nil, p.fail("expected type literal after %s", op)
			}
			right = &TypeLiteral{base{p.cur().Pos}, p.advance().Text}
		case "-replace", "-ireplace", "-creplace", "-split", "-isplit", "-csplit":
			first, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			elems := []Node{first}
			if p.atOp(",") {
				p.advance()
				second, err := p.parseAdditive()
				if err != nil {
					return nil, err
				}
				elems = append(elems, second)
			}
			right = &ArrayExpr{base{first.Loc()}, elems, true}
		default:
			right, err = p.parseAdditive()
			if err != nil {
				return nil, err
			}
		}
		left = &BinaryExpr{base{left.Loc()}, op, left, right}
	}
	return left, nil
}

func (p *Parser) parseAdditive() (Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.atOp("+") || p.atOp("-") {
		op := p.advance().Text
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{base{left.Loc()}, op, left, right}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (Node, error) {
	left, err := p.parseJoin()
	if err != nil {
		return nil, err
	}
	for p.atOp("*") || p.atOp("/") || p.atOp("%") {
		op := p.advance().Text
		right, err := p.parseJoin()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{base{left.Loc()}, op, left, right}
	}
	return left, nil
}

// parseJoin handles `-join`'s binary form, which inserts a delimiter
// between array elements; the unary, no-left-operand form is recognized
// earlier by parseUnary when `-join` begins an expression.
func (p *Parser) parseJoin() (Node, error) {
	left, err := p.parseFormat()
	if err != nil {
		return nil, err
	}
	for p.atOp("-join") {
		p.advance()
		right, err := p.parseFormat()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{base{left.Loc()}, "-join", left, right}
	}
	return left, nil
}

var formatOp = "-f"

func (p *Parser) parseFormat() (Node, error) {
	left, err := p.parseRange()
	if err != nil {
		return nil, err
	}
	for p.atOp(formatOp) {
		p.advance()
		right, err := p.parseRange()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{base{left.Loc()}, "-f", left, right}
	}
	return left, nil
}

func (p *Parser) parseRange() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.atOp("..") {
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &RangeExpr{base{left.Loc()}, left, right}, nil
	}
	return left, nil
}

func (p *Parser) parseUnary() (Node, error) {
	switch {
	case p.atOp("-not"):
		loc := p.advance().Pos
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{base{loc}, "-not", operand}, nil
	case p.atOp("-bnot"):
		loc := p.advance().Pos
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{base{loc}, "-bnot", operand}, nil
	case p.atOp("-join"):
		loc := p.advance().Pos
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{base{loc}, "-join", operand}, nil
	case p.atOp("-"):
		loc := p.advance().Pos
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{base{loc}, "neg", operand}, nil
	case p.atOp("++"):
		loc := p.advance().Pos
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &IncDecExpr{base{loc}, "++", operand, true}, nil
	case p.atOp("--"):
		loc := p.advance().Pos
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &IncDecExpr{base{loc}, "--", operand, true}, nil
	case p.at(TokTypeLiteral):
		loc := p.cur().Pos
		typeName := p.advance().Text
		if p.atOp("::") {
			p.advance()
			if !p.at(TokIdent) {
				return nil, p.fail("expected static member name")
			}
			member := p.advance().Text
			if p.atOp("(") {
				args, err := p.parseArgList()
				if err != nil {
					return nil, err
				}
				return p.parsePostfix(&StaticAccess{base{loc}, typeName, member, args, true})
			}
			return p.parsePostfix(&StaticAccess{base{loc}, typeName, member, nil, false})
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return p.parsePostfix(&CastExpr{base{loc}, typeName, operand})
	default:
		return p.parsePrimary()
	}
}

func (p *Parser) parseArgList() ([]Node, error) {
	if err := p.expectOp("("); err != nil {
		return nil, err
	}
	var args []Node
	for !p.atOp(")") {
		a, err := p.parsePipeline()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if p.atOp(",") {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parsePrimary() (Node, error) {
	prim, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	prim, err = p.parsePostfix(prim)
	if err != nil {
		return nil, err
	}
	if p.atOp("++") {
		loc := p.advance().Pos
		return &IncDecExpr{base{loc}, "++", prim, false}, nil
	}
	if p.atOp("--") {
		loc := p.advance().Pos
		return &IncDecExpr{base{loc}, "--", prim, false}, nil
	}
	if p.atOp(",") {
		elems := []Node{prim}
		for p.atOp(",") {
			p.advance()
			next, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			elems = append(elems, next)
		}
		return &ArrayExpr{base{prim.Loc()}, elems, false}, nil
	}
	return prim, nil
}

// parsePostfix handles `.Member`/`.Method(args)` and `[index]` chains.
func (p *Parser) parsePostfix(target Node) (Node, error) {
	for {
		switch {
		case p.atOp("."):
			p.advance()
			if !p.at(TokIdent) {
				return nil, p.fail("expected member name")
			}
			member := p.advance().Text
			if p.atOp("(") {
				args, err := p.parseArgList()
				if err != nil {
					return nil, err
				}
				target = &MemberAccess{base{target.Loc()}, target, member, args, true}
				continue
			}
			target = &MemberAccess{base{target.Loc()}, target, member, nil, false}
		case p.atOp("["):
			p.advance()
			idx, err := p.parsePipeline()
			if err != nil {
				return nil, err
			}
			if err := p.expectOp("]"); err != nil {
				return nil, err
			}
			target = &IndexExpr{base{target.Loc()}, target, idx}
		default:
			return target, nil
		}
	}
}

func (p *Parser) parseValue() (Node, error) {
	t := p.cur()
	switch t.Kind {
	case TokInt:
		p.advance()
		n, err := parseIntLiteral(t.Text)
		if err != nil {
			return nil, p.fail("invalid integer literal %q", t.Text)
		}
		return &IntLit{base{t.Pos}, n}, nil
	case TokFloat:
		p.advance()
		f, err := parseFloatLiteral(t.Text)
		if err != nil {
			return nil, p.fail("invalid float literal %q", t.Text)
		}
		return &FloatLit{base{t.Pos}, f}, nil
	case TokString:
		p.advance()
		return &StringLit{base: base{t.Pos}, Value: t.Text, Expandable: false}, nil
	case TokInterpString:
		p.advance()
		return &StringLit{base: base{t.Pos}, Value: t.Text, Expandable: true}, nil
	case TokVariable:
		p.advance()
		scope, name := splitScope(t.Text)
		return &VarRef{base{t.Pos}, scope, name}, nil
	case TokTypeLiteral:
		p.advance()
		return &TypeLiteral{base{t.Pos}, t.Text}, nil
	case TokKeyword:
		switch t.Text {
		case "true":
			p.advance()
			return &BoolLit{base{t.Pos}, true}, nil
		case "false":
			p.advance()
			return &BoolLit{base{t.Pos}, false}, nil
		case "null":
			p.advance()
			return &NullLit{base{t.Pos}}, nil
		}
		return nil, p.fail("unexpected keyword %q", t.Text)
	case TokOp:
		switch t.Text {
		case "(":
			p.advance()
			inner, err := p.parsePipeline()
			if err != nil {
				return nil, err
			}
			if err := p.expectOp(")"); err != nil {
				return nil, err
			}
			return inner, nil
		case "@":
			return p.parseArrayOrHashLit()
		case "{":
			return p.parseScriptBlockLit()
		case "&", ".":
			return p.parseInvocation()
		}
		return nil, p.fail("unexpected token %q", t.Text)
	case TokIdent:
		return p.parseBareCommand()
	default:
		return nil, p.fail("unexpected end of input")
	}
}

func splitScope(text string) (scope, name string) {
	if i := strings.IndexByte(text, ':'); i >= 0 {
		return text[:i], text[i+1:]
	}
	return "", text
}

func parseIntLiteral(text string) (int64, error) {
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		return strconv.ParseInt(text[2:], 16, 64)
	}
	if strings.HasPrefix(text, "0b") || strings.HasPrefix(text, "0B") {
		return strconv.ParseInt(text[2:], 2, 64)
	}
	mult := int64(1)
	body := text
	if n := len(text); n > 0 {
		switch text[n-1] {
		case 'k', 'K':
			mult, body = 1024, text[:n-1]
		case 'm', 'M':
			mult, body = 1024*1024, text[:n-1]
		case 'g', 'G':
			mult, body = 1024*1024*1024, text[:n-1]
		case 't', 'T':
			mult, body = 1024*1024*1024*1024, text[:n-1]
		case 'p', 'P':
			mult, body = 1024*1024*1024*1024*1024, text[:n-1]
		}
	}
	n, err := strconv.ParseInt(body, 10, 64)
	if err != nil {
		return 0, err
	}
	return n * mult, nil
}

func parseFloatLiteral(text string) (float64, error) {
	mult := float64(1)
	body := text
	if n := len(text); n > 0 {
		switch text[n-1] {
		case 'k', 'K':
			mult, body = 1024, text[:n-1]
		case 'm', 'M':
			mult, body = 1024*1024, text[:n-1]
		case 'g', 'G':
			mult, body = 1024*1024*1024, text[:n-1]
		case 't', 'T':
			mult, body = 1024*1024*1024*1024, text[:n-1]
		case 'p', 'P':
			mult, body = 1024*1024*1024*1024*1024, text[:n-1]
		}
	}
	f, err := strconv.ParseFloat(body, 64)
	if err != nil {
		return 0, err
	}
	return f * mult, nil
}

func (p *Parser) parseArrayOrHashLit() (Node, error) {
	loc := p.advance().Pos // '@'
	if p.atOp("(") {
		p.advance()
		var elems []Node
		p.skipSeparators()
		for !p.atOp(")") {
			e, err := p.parsePipeline()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
			p.skipSeparators()
			if p.atOp(",") || p.at(TokSemicolon) || p.at(TokNewline) {
				for p.atOp(",") || p.at(TokSemicolon) || p.at(TokNewline) {
					p.advance()
				}
				continue
			}
			break
		}
		if err := p.expectOp(")"); err != nil {
			return nil, err
		}
		return &ArrayExpr{base{loc}, elems, true}, nil
	}
	if err := p.expectOp("{"); err != nil {
		return nil, err
	}
	var entries []HashEntry
	p.skipSeparators()
	for !p.atOp("}") {
		if !p.at(TokIdent) && !p.at(TokString) {
			return nil, p.fail("expected hashtable key")
		}
		key := p.advance().Text
		if err := p.expectOp("="); err != nil {
			return nil, err
		}
		val, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		entries = append(entries, HashEntry{Key: key, Value: val})
		p.skipSeparators()
		if p.atOp(";") {
			p.advance()
			p.skipSeparators()
		}
	}
	if err := p.expectOp("}"); err != nil {
		return nil, err
	}
	return &HashExpr{base{loc}, entries}, nil
}

func (p *Parser) parseScriptBlockLit() (Node, error) {
	loc := p.cur().Pos
	startOffset := p.cur().Pos.Offset
	if err := p.expectOp("{"); err != nil {
		return nil, err
	}
	p.skipSeparators()
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatementList()
	if err != nil {
		return nil, err
	}
	endOffset := p.cur().Pos.Offset
	if err := p.expectOp("}"); err != nil {
		return nil, err
	}
	src := ""
	if endOffset+1 <= len(p.src) && startOffset <= endOffset {
		src = p.src[startOffset : endOffset+1]
	}
	return &ScriptBlockLit{base{loc}, params, body, src}, nil
}

// parseInvocation handles `& block args...` (new local scope) and
// `. block args...` (caller's scope).
func (p *Parser) parseInvocation() (Node, error) {
	loc := p.advance().Pos
	callerScope := p.toks[p.pos-1].Text == "."
	block, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	var positional []Node
	named := map[string]Node{}
	var switches []string
	for !p.at(TokNewline) && !p.at(TokSemicolon) && !p.at(TokEOF) && !p.atOp("}") && !p.atOp(")") && !p.atOp("|") {
		if p.at(TokOp) && strings.HasPrefix(p.cur().Text, "-") && len(p.cur().Text) > 1 {
			name := strings.TrimPrefix(p.advance().Text, "-")
			if p.at(TokNewline) || p.at(TokSemicolon) || p.at(TokEOF) || p.atOp("-") {
				switches = append(switches, name)
				continue
			}
			val, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			named[name] = val
			continue
		}
		val, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		positional = append(positional, val)
	}
	return &CommandCall{base{loc}, "", block, callerScope, positional, named, switches}, nil
}

// parseBareCommand handles `name arg1 arg2 -paramName value -switchName`,
// used for both built-in pipeline commands (Where-Object, Write-Output,
// etc.) and user functions declared via `function`.
func (p *Parser) parseBareCommand() (Node, error) {
	loc := p.cur().Pos
	name := p.advance().Text
	var positional []Node
	named := map[string]Node{}
	var switches []string
	for !p.at(TokNewline) && !p.at(TokSemicolon) && !p.at(TokEOF) && !p.atOp("}") && !p.atOp(")") && !p.atOp("|") {
		if p.at(TokOp) && strings.HasPrefix(p.cur().Text, "-") && len(p.cur().Text) > 1 && !comparisonOps[p.cur().Text] && !bitwiseOps[p.cur().Text] {
			pname := strings.TrimPrefix(p.advance().Text, "-")
			if p.at(TokNewline) || p.at(TokSemicolon) || p.at(TokEOF) || (p.at(TokOp) && strings.HasPrefix(p.cur().Text, "-")) {
				switches = append(switches, pname)
				continue
			}
			val, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			named[pname] = val
			continue
		}
		val, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		positional = append(positional, val)
	}
	return &CommandCall{base{loc}, name, nil, false, positional, named, switches}, nil
}
