package tptp

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// ReadClauses parses every cnf(...) formula from r, skipping blank
// lines and %-comments, and collapsing a formula split across
// multiple lines by reassembling up to its closing ")." A single
// ClauseExpr is returned per cnf(...) wrapper, in file order.
func ReadClauses(r io.Reader) ([]*ClauseExpr, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var pending strings.Builder
	var clauses []*ClauseExpr
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.IndexByte(line, '%'); idx >= 0 {
			line = line[:idx]
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" && pending.Len() == 0 {
			continue
		}
		pending.WriteString(line)
		pending.WriteByte(' ')
		if strings.HasSuffix(trimmed, ").") {
			clause, err := parseClauseLine(strings.TrimSpace(pending.String()))
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, clause)
			pending.Reset()
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if pending.Len() > 0 && strings.TrimSpace(pending.String()) != "" {
		return nil, errors.Wrap(ErrMalformedInput, "unterminated cnf(...) formula at end of input")
	}
	return clauses, nil
}

func parseClauseLine(line string) (*ClauseExpr, error) {
	p := &parser{src: line}
	return p.parseCnf()
}

type parser struct {
	src string
	pos int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) expect(c byte) error {
	p.skipSpace()
	if p.peek() != c {
		return errors.Wrapf(ErrMalformedInput, "expected %q at position %d in %q", c, p.pos, p.src)
	}
	p.pos++
	return nil
}

func (p *parser) parseIdent() (string, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			p.pos++
			continue
		}
		break
	}
	if start == p.pos {
		return "", errors.Wrapf(ErrMalformedInput, "expected identifier at position %d in %q", p.pos, p.src)
	}
	return p.src[start:p.pos], nil
}

// parseCnf parses "cnf(name, role, literal ( | literal )*)."
func (p *parser) parseCnf() (*ClauseExpr, error) {
	kw, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if kw != "cnf" {
		return nil, errors.Wrapf(ErrMalformedInput, "expected %q, got %q", "cnf", kw)
	}
	if err := p.expect('('); err != nil {
		return nil, err
	}
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expect(','); err != nil {
		return nil, err
	}
	role, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expect(','); err != nil {
		return nil, err
	}

	var lits []*LiteralExpr
	for {
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		lits = append(lits, lit)
		p.skipSpace()
		if p.peek() == '|' {
			p.pos++
			continue
		}
		break
	}
	if err := p.expect(')'); err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.peek() != '.' {
		return nil, errors.Wrapf(ErrMalformedInput, "expected terminating '.' in %q", p.src)
	}
	p.pos++
	return &ClauseExpr{Name: name, Role: role, Literals: lits}, nil
}

func (p *parser) parseLiteral() (*LiteralExpr, error) {
	p.skipSpace()
	negated := false
	if p.peek() == '~' {
		negated = true
		p.pos++
	}
	pred, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	var args []*TermExpr
	p.skipSpace()
	if p.peek() == '(' {
		p.pos++
		args, err = p.parseTermList()
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
	}
	return &LiteralExpr{Negated: negated, Pred: pred, Args: args}, nil
}

func (p *parser) parseTermList() ([]*TermExpr, error) {
	var terms []*TermExpr
	for {
		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
		p.skipSpace()
		if p.peek() == ',' {
			p.pos++
			continue
		}
		break
	}
	return terms, nil
}

func (p *parser) parseTerm() (*TermExpr, error) {
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.peek() != '(' {
		return &TermExpr{Name: name}, nil
	}
	p.pos++
	args, err := p.parseTermList()
	if err != nil {
		return nil, err
	}
	if err := p.expect(')'); err != nil {
		return nil, err
	}
	return &TermExpr{Name: name, Args: args}, nil
}
