package parser

import (
	"fmt"
	"strings"

	"github.com/wbrown/stratadb/datalog"
)

// Error reports a parse failure together with the offending token, so the
// caller can format it as (<token>,"<lexeme>",<line>).
type Error struct {
	Token Token
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at %s", e.Token)
}

// Parse lexes and parses a complete datalog source file into a Program,
// honoring the grammar's four sections in order: Schemes:, Facts:, Rules:,
// Queries:. Comment tokens are filtered out before parsing begins, mirroring
// how the grammar treats them as insignificant whitespace.
func Parse(source string) (*datalog.Program, error) {
	tokens := Lex(source)
	var filtered []Token
	for _, t := range tokens {
		if t.Type != Comment {
			filtered = append(filtered, t)
		}
	}

	p := &parser{tokens: filtered, program: datalog.NewProgram()}
	if err := p.parseProgram(); err != nil {
		return nil, err
	}
	return p.program, nil
}

type parser struct {
	tokens  []Token
	pos     int
	program *datalog.Program
}

func (p *parser) cur() Token {
	return p.tokens[p.pos]
}

func (p *parser) fail() error {
	return &Error{Token: p.cur()}
}

func (p *parser) match(t Type) (Token, error) {
	if p.cur().Type != t {
		return Token{}, p.fail()
	}
	tok := p.cur()
	p.pos++
	return tok, nil
}

// parseProgram implements datalogProgram: Schemes: scheme schemeList
// Facts: factList Rules: ruleList Queries: query queryList EOF.
func (p *parser) parseProgram() error {
	if _, err := p.match(Schemes); err != nil {
		return err
	}
	if _, err := p.match(Colon); err != nil {
		return err
	}
	if err := p.parseScheme(); err != nil {
		return err
	}
	for p.cur().Type == ID {
		if err := p.parseScheme(); err != nil {
			return err
		}
	}

	if _, err := p.match(Facts); err != nil {
		return err
	}
	if _, err := p.match(Colon); err != nil {
		return err
	}
	for p.cur().Type == ID {
		if err := p.parseFact(); err != nil {
			return err
		}
	}

	if _, err := p.match(Rules); err != nil {
		return err
	}
	if _, err := p.match(Colon); err != nil {
		return err
	}
	for p.cur().Type == ID {
		if err := p.parseRule(); err != nil {
			return err
		}
	}

	if _, err := p.match(Queries); err != nil {
		return err
	}
	if _, err := p.match(Colon); err != nil {
		return err
	}
	if err := p.parseQuery(); err != nil {
		return err
	}
	for p.cur().Type == ID {
		if err := p.parseQuery(); err != nil {
			return err
		}
	}

	_, err := p.match(EOF)
	return err
}

// parseScheme implements: ID '(' ID idList ')', all parameters Variables.
func (p *parser) parseScheme() error {
	name, err := p.match(ID)
	if err != nil {
		return err
	}
	if _, err := p.match(LeftParen); err != nil {
		return err
	}
	first, err := p.match(ID)
	if err != nil {
		return err
	}
	params := []datalog.Param{datalog.Variable{Name: first.Lexeme}}
	rest, err := p.parseIDList()
	if err != nil {
		return err
	}
	for _, r := range rest {
		params = append(params, datalog.Variable{Name: r})
	}
	if _, err := p.match(RightParen); err != nil {
		return err
	}
	p.program.Schemes = append(p.program.Schemes, datalog.Predicate{Name: name.Lexeme, Params: params})
	return nil
}

// parseFact implements: ID '(' STRING stringList ')' '.', all parameters
// Constants; every constant is also recorded in the program's domain.
func (p *parser) parseFact() error {
	name, err := p.match(ID)
	if err != nil {
		return err
	}
	if _, err := p.match(LeftParen); err != nil {
		return err
	}
	first, err := p.match(String)
	if err != nil {
		return err
	}
	params := []datalog.Param{datalog.Constant{Value: stringValue(first)}}
	p.program.AddDomainValue(stringValue(first))

	rest, err := p.parseStringList()
	if err != nil {
		return err
	}
	for _, r := range rest {
		params = append(params, datalog.Constant{Value: r})
		p.program.AddDomainValue(r)
	}

	if _, err := p.match(RightParen); err != nil {
		return err
	}
	if _, err := p.match(Period); err != nil {
		return err
	}
	p.program.Facts = append(p.program.Facts, datalog.Predicate{Name: name.Lexeme, Params: params})
	return nil
}

// parseRule implements: headPredicate ':-' predicate predicateList '.'.
func (p *parser) parseRule() error {
	head, err := p.parseHeadPredicate()
	if err != nil {
		return err
	}
	if _, err := p.match(ColonDash); err != nil {
		return err
	}
	first, err := p.parsePredicate()
	if err != nil {
		return err
	}
	body := []datalog.Predicate{first}
	rest, err := p.parsePredicateList()
	if err != nil {
		return err
	}
	body = append(body, rest...)

	if _, err := p.match(Period); err != nil {
		return err
	}
	p.program.Rules = append(p.program.Rules, datalog.Rule{Head: head, Body: body})
	return nil
}

// parseQuery implements: predicate '?'.
func (p *parser) parseQuery() error {
	pred, err := p.parsePredicate()
	if err != nil {
		return err
	}
	if _, err := p.match(QMark); err != nil {
		return err
	}
	p.program.Queries = append(p.program.Queries, pred)
	return nil
}

// parseHeadPredicate implements: ID '(' ID idList ')', all Variables.
func (p *parser) parseHeadPredicate() (datalog.Predicate, error) {
	name, err := p.match(ID)
	if err != nil {
		return datalog.Predicate{}, err
	}
	if _, err := p.match(LeftParen); err != nil {
		return datalog.Predicate{}, err
	}
	first, err := p.match(ID)
	if err != nil {
		return datalog.Predicate{}, err
	}
	params := []datalog.Param{datalog.Variable{Name: first.Lexeme}}
	rest, err := p.parseIDList()
	if err != nil {
		return datalog.Predicate{}, err
	}
	for _, r := range rest {
		params = append(params, datalog.Variable{Name: r})
	}
	if _, err := p.match(RightParen); err != nil {
		return datalog.Predicate{}, err
	}
	return datalog.Predicate{Name: name.Lexeme, Params: params}, nil
}

// parsePredicate implements: ID '(' parameter parameterList ')', parameters
// may mix Constants and Variables.
func (p *parser) parsePredicate() (datalog.Predicate, error) {
	name, err := p.match(ID)
	if err != nil {
		return datalog.Predicate{}, err
	}
	if _, err := p.match(LeftParen); err != nil {
		return datalog.Predicate{}, err
	}
	first, err := p.parseParameter()
	if err != nil {
		return datalog.Predicate{}, err
	}
	params := []datalog.Param{first}
	rest, err := p.parseParameterList()
	if err != nil {
		return datalog.Predicate{}, err
	}
	params = append(params, rest...)
	if _, err := p.match(RightParen); err != nil {
		return datalog.Predicate{}, err
	}
	return datalog.Predicate{Name: name.Lexeme, Params: params}, nil
}

func (p *parser) parsePredicateList() ([]datalog.Predicate, error) {
	var preds []datalog.Predicate
	for p.cur().Type == Comma {
		p.pos++
		pred, err := p.parsePredicate()
		if err != nil {
			return nil, err
		}
		preds = append(preds, pred)
	}
	return preds, nil
}

func (p *parser) parseParameter() (datalog.Param, error) {
	switch p.cur().Type {
	case String:
		tok, _ := p.match(String)
		return datalog.Constant{Value: stringValue(tok)}, nil
	case ID:
		tok, _ := p.match(ID)
		return datalog.Variable{Name: tok.Lexeme}, nil
	default:
		return nil, p.fail()
	}
}

func (p *parser) parseParameterList() ([]datalog.Param, error) {
	var params []datalog.Param
	for p.cur().Type == Comma {
		p.pos++
		param, err := p.parseParameter()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
	}
	return params, nil
}

func (p *parser) parseIDList() ([]string, error) {
	var out []string
	for p.cur().Type == Comma {
		p.pos++
		tok, err := p.match(ID)
		if err != nil {
			return nil, err
		}
		out = append(out, tok.Lexeme)
	}
	return out, nil
}

func (p *parser) parseStringList() ([]datalog.Value, error) {
	var out []datalog.Value
	for p.cur().Type == Comma {
		p.pos++
		tok, err := p.match(String)
		if err != nil {
			return nil, err
		}
		out = append(out, stringValue(tok))
	}
	return out, nil
}

// stringValue strips the surrounding double quotes from a STRING token's
// lexeme; the quotes are part of the token's surface form, not the value.
func stringValue(t Token) datalog.Value {
	return datalog.Value(strings.Trim(t.Lexeme, `"`))
}
