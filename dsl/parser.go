package dsl

import "fmt"

// SyntaxError reports a malformed definition, naming the offending token
// and its byte position.
type SyntaxError struct {
	Expected string
	Token    Token
}

func (e *SyntaxError) Error() string {
	if e.Token.Type == TokenEOF {
		return fmt.Sprintf("dsl: expected %s, got EOF at position %d", e.Expected, e.Token.Pos)
	}
	return fmt.Sprintf("dsl: expected %s, got %v %q at position %d",
		e.Expected, e.Token.Type, e.Token.Literal, e.Token.Pos)
}

// Parser parses definition text into an AST.
type Parser struct {
	lexer *Lexer
	cur   Token
	peek  Token
}

// NewParser creates a new parser for the given input.
func NewParser(input string) *Parser {
	p := &Parser{lexer: NewLexer(input)}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.cur = p.peek
	p.peek = p.lexer.NextToken()
}

func (p *Parser) expect(t TokenType) error {
	if p.cur.Type != t {
		return &SyntaxError{Expected: t.String(), Token: p.cur}
	}
	return nil
}

func (p *Parser) expectIdent(what string) (string, error) {
	if p.cur.Type != TokenIdent {
		return "", &SyntaxError{Expected: what, Token: p.cur}
	}
	lit := p.cur.Literal
	p.nextToken()
	return lit, nil
}

// Parse parses the input and returns a Definition.
//
// Grammar:
//
//	Definition     := StateType "," ActionType "," {StateBlock ","}
//	StateBlock     := StateId "{" {TransitionEdge ","} "}"
//	TransitionEdge := ActionId {"|" ActionId} "=>" StateId {"|" StateId}
//
// The trailing comma after the last block and the last edge is optional.
func Parse(input string) (*Definition, error) {
	p := NewParser(input)
	return p.parseDefinition()
}

func (p *Parser) parseDefinition() (*Definition, error) {
	stateType, err := p.expectIdent("state type name")
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenComma); err != nil {
		return nil, err
	}
	p.nextToken()

	actionType, err := p.expectIdent("action type name")
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenComma); err != nil {
		return nil, err
	}
	p.nextToken()

	def := &Definition{StateType: stateType, ActionType: actionType}

	for p.cur.Type != TokenEOF {
		block, err := p.parseStateBlock()
		if err != nil {
			return nil, err
		}
		def.Blocks = append(def.Blocks, block)

		// Blocks are comma-terminated; the final comma may be omitted.
		if p.cur.Type == TokenComma {
			p.nextToken()
		} else if p.cur.Type != TokenEOF {
			return nil, &SyntaxError{Expected: "',' or EOF", Token: p.cur}
		}
	}

	return def, nil
}

func (p *Parser) parseStateBlock() (*StateBlock, error) {
	state, err := p.expectIdent("state identifier")
	if err != nil {
		return nil, err
	}
	block := &StateBlock{State: state}

	if err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}
	p.nextToken()

	for p.cur.Type != TokenRBrace {
		if p.cur.Type == TokenEOF {
			return nil, &SyntaxError{Expected: "'}'", Token: p.cur}
		}

		edge, err := p.parseTransitionEdge()
		if err != nil {
			return nil, err
		}
		block.Edges = append(block.Edges, edge)

		if p.cur.Type == TokenComma {
			p.nextToken()
		} else if p.cur.Type != TokenRBrace {
			return nil, &SyntaxError{Expected: "',' or '}'", Token: p.cur}
		}
	}
	p.nextToken() // consume '}'

	return block, nil
}

func (p *Parser) parseTransitionEdge() (*TransitionEdge, error) {
	actions, err := p.parseAlternatives("action identifier")
	if err != nil {
		return nil, err
	}

	if err := p.expect(TokenArrow); err != nil {
		return nil, err
	}
	p.nextToken()

	targets, err := p.parseAlternatives("target state identifier")
	if err != nil {
		return nil, err
	}

	return &TransitionEdge{Actions: actions, Targets: targets}, nil
}

// parseAlternatives parses a non-empty '|'-separated identifier list.
func (p *Parser) parseAlternatives(what string) ([]string, error) {
	first, err := p.expectIdent(what)
	if err != nil {
		return nil, err
	}
	ids := []string{first}

	for p.cur.Type == TokenPipe {
		p.nextToken()
		id, err := p.expectIdent(what)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}
