// Package parser implements the concrete syntax of the rule language:
//
//	path(?x, ?y) :- app says edge(?x, ?z), app says path(?z, ?y).
//	may(read) :- :ldap says user-group(?u, staff).
//
// Rules end with a period; a rule without a body is a fact. Variables
// are prefixed with '?', native assertion references with ':', booleans
// are #t/#f, and bare symbols are string atoms. ';' starts a line
// comment.
package parser

import (
	"fmt"
	"strconv"

	"github.com/wbrown/janus-soutei/soutei"
)

// ParseAssertion parses a complete assertion: zero or more rules.
func ParseAssertion(input string) ([]soutei.Rule, error) {
	p, err := newParser(input)
	if err != nil {
		return nil, err
	}

	var rules []soutei.Rule
	for p.peek().Type != TokenEOF {
		rule, err := p.parseRule()
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// ParseRule parses exactly one rule.
func ParseRule(input string) (soutei.Rule, error) {
	p, err := newParser(input)
	if err != nil {
		return soutei.Rule{}, err
	}
	rule, err := p.parseRule()
	if err != nil {
		return soutei.Rule{}, err
	}
	if tok := p.peek(); tok.Type != TokenEOF {
		return soutei.Rule{}, fmt.Errorf("line %d:%d: trailing input after rule", tok.Line, tok.Col)
	}
	return rule, nil
}

// ParseQuery parses a single body literal: assn says lit. A trailing
// period is accepted but not required.
func ParseQuery(input string) (soutei.Goal, error) {
	p, err := newParser(input)
	if err != nil {
		return soutei.Goal{}, err
	}
	goal, err := p.parseGoal()
	if err != nil {
		return soutei.Goal{}, err
	}
	if p.peek().Type == TokenPeriod {
		p.next()
	}
	if tok := p.peek(); tok.Type != TokenEOF {
		return soutei.Goal{}, fmt.Errorf("line %d:%d: trailing input after query", tok.Line, tok.Col)
	}
	return goal, nil
}

// parser is a recursive-descent parser over the token stream.
type parser struct {
	tokens []Token
	pos    int
}

func newParser(input string) (*parser, error) {
	tokens, err := NewLexer(input).Lex()
	if err != nil {
		return nil, err
	}
	return &parser{tokens: tokens}, nil
}

func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *parser) next() Token {
	tok := p.tokens[p.pos]
	if tok.Type != TokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) expect(typ TokenType, what string) (Token, error) {
	tok := p.next()
	if tok.Type != typ {
		return tok, fmt.Errorf("line %d:%d: expected %s, got %q", tok.Line, tok.Col, what, tok.Value)
	}
	return tok, nil
}

// parseRule parses head [":-" body] "."
func (p *parser) parseRule() (soutei.Rule, error) {
	head, err := p.parseLiteral()
	if err != nil {
		return soutei.Rule{}, err
	}

	rule := soutei.Rule{Head: head}

	if p.peek().Type == TokenImplies {
		p.next()
		for {
			goal, err := p.parseGoal()
			if err != nil {
				return soutei.Rule{}, err
			}
			rule.Body = append(rule.Body, goal)
			if p.peek().Type != TokenComma {
				break
			}
			p.next()
		}
	}

	if _, err := p.expect(TokenPeriod, "'.'"); err != nil {
		return soutei.Rule{}, err
	}
	return rule, nil
}

// parseGoal parses "assn says lit".
func (p *parser) parseGoal() (soutei.Goal, error) {
	ref, err := p.parseAssertionRef()
	if err != nil {
		return soutei.Goal{}, err
	}

	says, err := p.expect(TokenSymbol, "'says'")
	if err != nil {
		return soutei.Goal{}, err
	}
	if says.Value != "says" {
		return soutei.Goal{}, fmt.Errorf("line %d:%d: expected 'says', got %q", says.Line, says.Col, says.Value)
	}

	lit, err := p.parseLiteral()
	if err != nil {
		return soutei.Goal{}, err
	}
	return soutei.Goal{Assn: ref, Lit: lit}, nil
}

// parseAssertionRef parses a native reference, a variable, or a ground
// principal value.
func (p *parser) parseAssertionRef() (soutei.AssertionRef, error) {
	tok := p.next()
	switch tok.Type {
	case TokenNativeRef:
		return soutei.NativeRef{Name: tok.Value}, nil
	case TokenVariable:
		return soutei.PrincipalRef{Term: soutei.NewVar(tok.Value)}, nil
	case TokenSymbol, TokenString:
		return soutei.PrincipalRef{Term: soutei.Const{Value: tok.Value}}, nil
	case TokenInt:
		n, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d:%d: bad integer %q", tok.Line, tok.Col, tok.Value)
		}
		return soutei.PrincipalRef{Term: soutei.Const{Value: n}}, nil
	}
	return nil, fmt.Errorf("line %d:%d: expected assertion reference, got %q", tok.Line, tok.Col, tok.Value)
}

// parseLiteral parses "name" or "name(term, ...)".
func (p *parser) parseLiteral() (soutei.Literal, error) {
	name, err := p.expect(TokenSymbol, "predicate name")
	if err != nil {
		return soutei.Literal{}, err
	}

	if p.peek().Type != TokenLeftParen {
		return soutei.NewLiteral(name.Value), nil
	}
	p.next()

	var args []soutei.Term
	if p.peek().Type != TokenRightParen {
		for {
			term, err := p.parseTerm()
			if err != nil {
				return soutei.Literal{}, err
			}
			args = append(args, term)
			if p.peek().Type != TokenComma {
				break
			}
			p.next()
		}
	}

	if _, err := p.expect(TokenRightParen, "')'"); err != nil {
		return soutei.Literal{}, err
	}
	return soutei.NewLiteral(name.Value, args...), nil
}

// parseTerm parses a variable or a ground value.
func (p *parser) parseTerm() (soutei.Term, error) {
	tok := p.next()
	switch tok.Type {
	case TokenVariable:
		return soutei.NewVar(tok.Value), nil
	case TokenSymbol, TokenString:
		return soutei.Const{Value: tok.Value}, nil
	case TokenInt:
		n, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d:%d: bad integer %q", tok.Line, tok.Col, tok.Value)
		}
		return soutei.Const{Value: n}, nil
	case TokenBool:
		return soutei.Const{Value: tok.Value == "t"}, nil
	}
	return nil, fmt.Errorf("line %d:%d: expected term, got %q", tok.Line, tok.Col, tok.Value)
}
