package functions

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/notargets/gofem2d/types"
	"github.com/notargets/gofem2d/utils"
)

// Expression is a parsed closed form f(x,y)
type Expression interface {
	Eval(x, y float64) float64
	String() string
}

type number float64

func (n number) Eval(x, y float64) float64 { return float64(n) }
func (n number) String() string            { return strconv.FormatFloat(float64(n), 'g', -1, 64) }

type variable byte

func (v variable) Eval(x, y float64) float64 {
	if v == 'x' {
		return x
	}
	return y
}
func (v variable) String() string { return string(v) }

type negate struct{ arg Expression }

func (n negate) Eval(x, y float64) float64 { return -n.arg.Eval(x, y) }
func (n negate) String() string            { return "(-" + n.arg.String() + ")" }

type binary struct {
	op          byte
	left, right Expression
}

func (b binary) Eval(x, y float64) float64 {
	l, r := b.left.Eval(x, y), b.right.Eval(x, y)
	switch b.op {
	case '+':
		return l + r
	case '-':
		return l - r
	case '*':
		return l * r
	case '/':
		return l / r
	default:
		return math.Pow(l, r)
	}
}

func (b binary) String() string {
	return "(" + b.left.String() + " " + string(b.op) + " " + b.right.String() + ")"
}

// intPower is x^n for an integer literal exponent
type intPower struct {
	base Expression
	n    int
}

func (p intPower) Eval(x, y float64) float64 {
	return utils.POW(p.base.Eval(x, y), p.n)
}

func (p intPower) String() string { return fmt.Sprintf("(%s ^ %d)", p.base.String(), p.n) }

type call struct {
	name string
	fn   func(args []float64) float64
	args []Expression
}

func (c call) Eval(x, y float64) float64 {
	var vals [2]float64
	for i, arg := range c.args {
		vals[i] = arg.Eval(x, y)
	}
	return c.fn(vals[:len(c.args)])
}

func (c call) String() string {
	s := make([]string, len(c.args))
	for i, arg := range c.args {
		s[i] = arg.String()
	}
	return c.name + "(" + strings.Join(s, ", ") + ")"
}

type builtin struct {
	nargs int
	fn    func(args []float64) float64
}

func unary(f func(float64) float64) builtin {
	return builtin{1, func(a []float64) float64 { return f(a[0]) }}
}

func dyadic(f func(float64, float64) float64) builtin {
	return builtin{2, func(a []float64) float64 { return f(a[0], a[1]) }}
}

var builtins = map[string]builtin{
	"sin":   unary(math.Sin),
	"cos":   unary(math.Cos),
	"tan":   unary(math.Tan),
	"asin":  unary(math.Asin),
	"acos":  unary(math.Acos),
	"atan":  unary(math.Atan),
	"sinh":  unary(math.Sinh),
	"cosh":  unary(math.Cosh),
	"tanh":  unary(math.Tanh),
	"exp":   unary(math.Exp),
	"log":   unary(math.Log),
	"log10": unary(math.Log10),
	"sqrt":  unary(math.Sqrt),
	"abs":   unary(math.Abs),
	"fabs":  unary(math.Abs),
	"pow":   dyadic(math.Pow),
	"atan2": dyadic(math.Atan2),
	"min":   dyadic(math.Min),
	"max":   dyadic(math.Max),
}

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// ParseExpression compiles an arithmetic expression in x and y. Supported are
// numbers, x, y, pi, e, the operators + - * / ^ (also written **), unary
// minus, parentheses and the functions in the builtins table. Sub-expressions
// without variables are folded to constants.
func ParseExpression(src string) (expr Expression, err error) {
	p := &parser{src: src}
	p.next()
	if expr, err = p.parseSum(); err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.errorf("unexpected %q", p.tok.text)
	}
	return
}

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokOp
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

type parser struct {
	src string
	pos int
	tok token
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return types.NewInputError("expression %q at offset %d: %s",
		p.src, p.tok.pos, fmt.Sprintf(format, args...))
}

func (p *parser) next() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
	start := p.pos
	if p.pos >= len(p.src) {
		p.tok = token{tokEOF, "", start}
		return
	}
	c := p.src[p.pos]
	switch {
	case isDigit(c) || (c == '.' && p.pos+1 < len(p.src) && isDigit(p.src[p.pos+1])):
		for p.pos < len(p.src) && (isDigit(p.src[p.pos]) || p.src[p.pos] == '.') {
			p.pos++
		}
		// Exponent, as in 1.5e-3
		if p.pos < len(p.src) && (p.src[p.pos] == 'e' || p.src[p.pos] == 'E') {
			q := p.pos + 1
			if q < len(p.src) && (p.src[q] == '+' || p.src[q] == '-') {
				q++
			}
			if q < len(p.src) && isDigit(p.src[q]) {
				for q < len(p.src) && isDigit(p.src[q]) {
					q++
				}
				p.pos = q
			}
		}
		p.tok = token{tokNumber, p.src[start:p.pos], start}
	case isLetter(c):
		for p.pos < len(p.src) && (isLetter(p.src[p.pos]) || isDigit(p.src[p.pos]) || p.src[p.pos] == '.') {
			p.pos++
		}
		p.tok = token{tokIdent, p.src[start:p.pos], start}
	case c == '*' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '*':
		p.pos += 2
		p.tok = token{tokOp, "^", start}
	case strings.IndexByte("+-*/^", c) >= 0:
		p.pos++
		p.tok = token{tokOp, string(c), start}
	case c == '(':
		p.pos++
		p.tok = token{tokLParen, "(", start}
	case c == ')':
		p.pos++
		p.tok = token{tokRParen, ")", start}
	case c == ',':
		p.pos++
		p.tok = token{tokComma, ",", start}
	default:
		p.pos++
		p.tok = token{tokOp, string(c), start}
	}
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func (p *parser) isOp(ops string) bool {
	return p.tok.kind == tokOp && strings.Contains(ops, p.tok.text)
}

// sum := product (('+'|'-') product)*
func (p *parser) parseSum() (Expression, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for p.isOp("+-") {
		op := p.tok.text[0]
		p.next()
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		left = fold(binary{op, left, right})
	}
	return left, nil
}

// product := signed (('*'|'/') signed)*
func (p *parser) parseProduct() (Expression, error) {
	left, err := p.parseSigned()
	if err != nil {
		return nil, err
	}
	for p.isOp("*/") {
		op := p.tok.text[0]
		p.next()
		right, err := p.parseSigned()
		if err != nil {
			return nil, err
		}
		left = fold(binary{op, left, right})
	}
	return left, nil
}

// signed := ('-'|'+') signed | power, so that -x^2 is -(x^2)
func (p *parser) parseSigned() (Expression, error) {
	if p.isOp("+-") {
		op := p.tok.text[0]
		p.next()
		arg, err := p.parseSigned()
		if err != nil {
			return nil, err
		}
		if op == '+' {
			return arg, nil
		}
		return fold(negate{arg}), nil
	}
	return p.parsePower()
}

// power := primary ('^' signed)?, right associative
func (p *parser) parsePower() (Expression, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if !p.isOp("^") {
		return base, nil
	}
	p.next()
	exponent, err := p.parseSigned()
	if err != nil {
		return nil, err
	}
	if n, ok := exponent.(number); ok && float64(n) == math.Trunc(float64(n)) && math.Abs(float64(n)) <= 64 {
		return fold(intPower{base, int(n)}), nil
	}
	return fold(binary{'^', base, exponent}), nil
}

func (p *parser) parsePrimary() (Expression, error) {
	switch p.tok.kind {
	case tokNumber:
		val, err := strconv.ParseFloat(p.tok.text, 64)
		if err != nil {
			return nil, p.errorf("bad number %q", p.tok.text)
		}
		p.next()
		return number(val), nil
	case tokLParen:
		p.next()
		expr, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, p.errorf("missing )")
		}
		p.next()
		return expr, nil
	case tokIdent:
		name := strings.TrimPrefix(strings.TrimPrefix(p.tok.text, "math."), "np.")
		p.next()
		if p.tok.kind == tokLParen {
			return p.parseCall(name)
		}
		switch name {
		case "x", "y":
			return variable(name[0]), nil
		}
		if val, ok := constants[name]; ok {
			return number(val), nil
		}
		return nil, p.errorf("unknown identifier %q", name)
	case tokEOF:
		return nil, p.errorf("unexpected end of expression")
	}
	return nil, p.errorf("unexpected %q", p.tok.text)
}

func (p *parser) parseCall(name string) (Expression, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, p.errorf("unknown function %q", name)
	}
	p.next() // (
	var args []Expression
	for p.tok.kind != tokRParen {
		if len(args) != 0 {
			if p.tok.kind != tokComma {
				return nil, p.errorf("expected , in call to %s", name)
			}
			p.next()
		}
		arg, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	p.next() // )
	if len(args) != b.nargs {
		return nil, p.errorf("%s takes %d argument(s), got %d", name, b.nargs, len(args))
	}
	return fold(call{name, b.fn, args}), nil
}

// fold collapses a node whose operands are all constants
func fold(e Expression) Expression {
	constant := func(args ...Expression) bool {
		for _, a := range args {
			if _, ok := a.(number); !ok {
				return false
			}
		}
		return true
	}
	switch n := e.(type) {
	case negate:
		if constant(n.arg) {
			return number(n.Eval(0, 0))
		}
	case binary:
		if constant(n.left, n.right) {
			return number(n.Eval(0, 0))
		}
	case intPower:
		if constant(n.base) {
			return number(n.Eval(0, 0))
		}
	case call:
		if constant(n.args...) {
			return number(n.Eval(0, 0))
		}
	}
	return e
}

// HasVariables reports whether expr depends on x or y
func HasVariables(expr Expression) bool {
	switch n := expr.(type) {
	case number:
		return false
	case variable:
		return true
	case negate:
		return HasVariables(n.arg)
	case binary:
		return HasVariables(n.left) || HasVariables(n.right)
	case intPower:
		return HasVariables(n.base)
	case call:
		for _, a := range n.args {
			if HasVariables(a) {
				return true
			}
		}
	}
	return false
}
