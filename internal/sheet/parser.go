package sheet

import (
	"fmt"
	"strconv"
	"strings"
)

// ASTNode is one node of a parsed formula. Nodes evaluate themselves
// against an Evaluator, which supplies cell resolution and built-in
// functions; String renders a canonical form used for structural
// comparison.
type ASTNode interface {
	Eval(e *Evaluator) (float64, error)
	String() string
}

// BinaryOp represents binary operators in AST nodes
type BinaryOp int

const (
	BinOpAdd BinaryOp = iota
	BinOpSubtract
	BinOpMultiply
	BinOpDivide
)

func (op BinaryOp) String() string {
	switch op {
	case BinOpAdd:
		return "+"
	case BinOpSubtract:
		return "-"
	case BinOpMultiply:
		return "*"
	case BinOpDivide:
		return "/"
	}
	return "?"
}

// NumberNode represents a numeric literal
type NumberNode struct {
	Value float64
}

func (n *NumberNode) Eval(e *Evaluator) (float64, error) {
	return n.Value, nil
}

func (n *NumberNode) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

// CellRefNode represents a reference to another cell
type CellRefNode struct {
	Target Coordinate
}

func (n *CellRefNode) Eval(e *Evaluator) (float64, error) {
	return e.resolveRef(n.Target)
}

func (n *CellRefNode) String() string {
	return n.Target.String()
}

// BinaryOpNode represents a binary operation. Arithmetic follows
// IEEE-754 double semantics: division by zero yields an infinity or
// NaN, never an error.
type BinaryOpNode struct {
	Op    BinaryOp
	Left  ASTNode
	Right ASTNode
}

func (n *BinaryOpNode) Eval(e *Evaluator) (float64, error) {
	left, err := n.Left.Eval(e)
	if err != nil {
		return 0, err
	}
	right, err := n.Right.Eval(e)
	if err != nil {
		return 0, err
	}

	switch n.Op {
	case BinOpAdd:
		return left + right, nil
	case BinOpSubtract:
		return left - right, nil
	case BinOpMultiply:
		return left * right, nil
	case BinOpDivide:
		return left / right, nil
	}
	return 0, NewSheetError(ErrorCodeParse, "unknown binary operator")
}

func (n *BinaryOpNode) String() string {
	return fmt.Sprintf("(%s%s%s)", n.Left, n.Op, n.Right)
}

// UnaryOpNode represents unary negation
type UnaryOpNode struct {
	Operand ASTNode
}

func (n *UnaryOpNode) Eval(e *Evaluator) (float64, error) {
	value, err := n.Operand.Eval(e)
	if err != nil {
		return 0, err
	}
	return -value, nil
}

func (n *UnaryOpNode) String() string {
	return fmt.Sprintf("(-%s)", n.Operand)
}

// FunctionCallNode represents a call to a built-in function. Arguments
// are evaluated in order; name and arity are checked at evaluation
// time, not parse time.
type FunctionCallNode struct {
	Name string
	Args []ASTNode
}

func (n *FunctionCallNode) Eval(e *Evaluator) (float64, error) {
	args := make([]float64, len(n.Args))
	for i, arg := range n.Args {
		value, err := arg.Eval(e)
		if err != nil {
			return 0, err
		}
		args[i] = value
	}
	return e.functions.Call(n.Name, args...)
}

func (n *FunctionCallNode) String() string {
	args := make([]string, len(n.Args))
	for i, arg := range n.Args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", n.Name, strings.Join(args, ","))
}

// Parser parses tokens into an AST
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser creates a new parser over a token sequence
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseFormula tokenizes and parses formula text in one step. Parsing
// is deterministic and side-effect-free: the same text always yields a
// structurally equal tree.
func ParseFormula(text string) (ASTNode, error) {
	tokens, err := NewLexer(text).Tokenize()
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).Parse()
}

// Parse parses the tokens into a single expression tree and requires
// the whole input to be consumed.
func (p *Parser) Parse() (ASTNode, error) {
	node, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	if tok := p.current(); tok.Type != TokenEOF {
		return nil, NewSheetError(ErrorCodeParse,
			fmt.Sprintf("unexpected token after expression: %s", tok.Value))
	}

	return node, nil
}

// parseAdditive handles addition and subtraction (left-associative)
func (p *Parser) parseAdditive() (ASTNode, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for {
		var op BinaryOp
		switch p.current().Type {
		case TokenPlus:
			op = BinOpAdd
		case TokenMinus:
			op = BinOpSubtract
		default:
			return left, nil
		}

		p.pos++
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}

		left = &BinaryOpNode{Op: op, Left: left, Right: right}
	}
}

// parseMultiplicative handles multiplication and division
func (p *Parser) parseMultiplicative() (ASTNode, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		var op BinaryOp
		switch p.current().Type {
		case TokenStar:
			op = BinOpMultiply
		case TokenSlash:
			op = BinOpDivide
		default:
			return left, nil
		}

		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		left = &BinaryOpNode{Op: op, Left: left, Right: right}
	}
}

// parseUnary handles unary minus, recursing so chains negate repeatedly
func (p *Parser) parseUnary() (ASTNode, error) {
	if p.current().Type == TokenMinus {
		p.pos++
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryOpNode{Operand: operand}, nil
	}

	return p.parsePrimary()
}

// parsePrimary handles numbers, cell references, function calls, and
// parenthesized groups. Identifiers matching the letters-then-digits
// cell pattern become references; any other identifier must open a
// function call.
func (p *Parser) parsePrimary() (ASTNode, error) {
	tok := p.current()

	switch tok.Type {
	case TokenNumber:
		p.pos++
		value, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, NewSheetError(ErrorCodeParse,
				fmt.Sprintf("invalid number: %s", tok.Value))
		}
		return &NumberNode{Value: value}, nil

	case TokenIdentifier:
		p.pos++
		if coord, ok := ParseCoordinate(tok.Value); ok {
			return &CellRefNode{Target: coord}, nil
		}
		if p.current().Type == TokenLeftParen {
			return p.parseFunctionCall(tok.Value)
		}
		return nil, NewSheetError(ErrorCodeParse,
			fmt.Sprintf("unexpected identifier: %s", tok.Value))

	case TokenLeftParen:
		p.pos++
		node, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		if p.current().Type != TokenRightParen {
			return nil, NewSheetError(ErrorCodeParse, "expected closing parenthesis")
		}
		p.pos++
		return node, nil

	case TokenEOF:
		return nil, NewSheetError(ErrorCodeParse, "unexpected end of expression")

	default:
		return nil, NewSheetError(ErrorCodeParse,
			fmt.Sprintf("unexpected token: %s", tok.Value))
	}
}

// parseFunctionCall parses the argument list after a function name.
// Arity is an evaluator concern and is not checked here.
func (p *Parser) parseFunctionCall(name string) (ASTNode, error) {
	p.pos++ // consume '('

	args := []ASTNode{}

	// empty argument list, e.g. random()
	if p.current().Type == TokenRightParen {
		p.pos++
		return &FunctionCallNode{Name: name, Args: args}, nil
	}

	for {
		arg, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		switch p.current().Type {
		case TokenRightParen:
			p.pos++
			return &FunctionCallNode{Name: name, Args: args}, nil
		case TokenComma:
			p.pos++
		case TokenEOF:
			return nil, NewSheetError(ErrorCodeParse, "unexpected end in function arguments")
		default:
			return nil, NewSheetError(ErrorCodeParse,
				fmt.Sprintf("expected ',' or ')' in function arguments, got %s", p.current().Value))
		}
	}
}

// current returns the token at the parser position. The sequence
// always ends with EOF, so a position past the end reads as EOF.
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}
