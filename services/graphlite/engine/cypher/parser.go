// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package cypher

import (
	"fmt"
	"strconv"

	"github.com/AleutianAI/GraphLite/services/graphlite/result"
)

// The supported grammar:
//
//	MATCH pattern (',' pattern)*
//	(WHERE comparison (AND comparison)*)?
//	RETURN item (',' item)*
//	(LIMIT n)?
//
// pattern:    node (rel node)*
// node:       '(' var? ')'
// rel:        '-[' var? (':' type)? ']->'  |  '<-[' ... ']-'  |  '-[' ... ']-'
// comparison: var ('.' prop)? op literal
// item:       var ('.' prop)?

type direction int

const (
	dirOut direction = iota
	dirIn
	dirAny
)

type nodePattern struct {
	variable string // empty for anonymous
}

type relPattern struct {
	variable string
	relType  string // matched against the edge "type" attribute when set
	dir      direction
}

// pathPattern is a chain: nodes[0] rels[0] nodes[1] rels[1] ... The rels
// slice is one shorter than nodes.
type pathPattern struct {
	nodes []nodePattern
	rels  []relPattern
}

type comparison struct {
	variable string
	property string // empty compares the binding itself
	op       string
	literal  result.Value
}

type returnItem struct {
	variable string
	property string // empty returns the binding itself
}

type query struct {
	patterns []pathPattern
	filters  []comparison
	returns  []returnItem
	limit    int // 0 means unlimited
}

type parser struct {
	tokens []token
	pos    int
}

func parse(src string) (*query, error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	return p.parseQuery()
}

func (p *parser) peek() token { return p.tokens[p.pos] }
func (p *parser) next() token { t := p.tokens[p.pos]; p.pos++; return t }
func (p *parser) errf(format string, args ...any) error {
	return fmt.Errorf(format+" (near position %d)", append(args, p.peek().pos)...)
}

func (p *parser) expect(typ tokenType, what string) (token, error) {
	t := p.next()
	if t.typ != typ {
		return token{}, fmt.Errorf("expected %s, got %q (position %d)", what, t.text, t.pos)
	}
	return t, nil
}

func (p *parser) parseQuery() (*query, error) {
	if !p.peek().isKeyword("match") {
		return nil, p.errf("query must start with MATCH")
	}
	p.next()

	q := &query{}
	for {
		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		q.patterns = append(q.patterns, pat)
		if p.peek().typ != tokComma {
			break
		}
		p.next()
	}

	if p.peek().isKeyword("where") {
		p.next()
		for {
			cmp, err := p.parseComparison()
			if err != nil {
				return nil, err
			}
			q.filters = append(q.filters, cmp)
			if !p.peek().isKeyword("and") {
				break
			}
			p.next()
		}
	}

	if !p.peek().isKeyword("return") {
		return nil, p.errf("expected RETURN")
	}
	p.next()
	for {
		item, err := p.parseReturnItem()
		if err != nil {
			return nil, err
		}
		q.returns = append(q.returns, item)
		if p.peek().typ != tokComma {
			break
		}
		p.next()
	}

	if p.peek().isKeyword("limit") {
		p.next()
		t, err := p.expect(tokNumber, "a number after LIMIT")
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(t.text)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("LIMIT must be a positive integer, got %q", t.text)
		}
		q.limit = n
	}

	if p.peek().typ != tokEOF {
		return nil, p.errf("unexpected trailing input %q", p.peek().text)
	}
	if err := q.validate(); err != nil {
		return nil, err
	}
	return q, nil
}

func (p *parser) parsePattern() (pathPattern, error) {
	var pat pathPattern

	n, err := p.parseNode()
	if err != nil {
		return pat, err
	}
	pat.nodes = append(pat.nodes, n)

	for p.peek().typ == tokDash || p.peek().typ == tokArrowLeft {
		rel, err := p.parseRel()
		if err != nil {
			return pat, err
		}
		n, err := p.parseNode()
		if err != nil {
			return pat, err
		}
		pat.rels = append(pat.rels, rel)
		pat.nodes = append(pat.nodes, n)
	}
	return pat, nil
}

func (p *parser) parseNode() (nodePattern, error) {
	if _, err := p.expect(tokLParen, "'('"); err != nil {
		return nodePattern{}, err
	}
	var n nodePattern
	if p.peek().typ == tokIdent {
		n.variable = p.next().text
	}
	if _, err := p.expect(tokRParen, "')'"); err != nil {
		return nodePattern{}, err
	}
	return n, nil
}

// parseRel consumes one relationship: -[r:TYPE]->, <-[r]-, -[]- and the
// bare forms -->, <--, --.
func (p *parser) parseRel() (relPattern, error) {
	rel := relPattern{dir: dirAny}

	leading := p.next()
	if leading.typ == tokArrowLeft {
		rel.dir = dirIn
	}

	if p.peek().typ == tokLBracket {
		p.next()
		if p.peek().typ == tokIdent {
			rel.variable = p.next().text
		}
		if p.peek().typ == tokColon {
			p.next()
			t, err := p.expect(tokIdent, "a relationship type after ':'")
			if err != nil {
				return rel, err
			}
			rel.relType = t.text
		}
		if _, err := p.expect(tokRBracket, "']'"); err != nil {
			return rel, err
		}
	}

	trailing := p.next()
	switch trailing.typ {
	case tokArrowRight:
		if rel.dir == dirIn {
			return rel, fmt.Errorf("relationship cannot point both ways (position %d)", trailing.pos)
		}
		rel.dir = dirOut
	case tokDash:
		// keeps dirIn from the leading arrow, or stays dirAny
	default:
		return rel, fmt.Errorf("expected '->' or '-' after relationship, got %q (position %d)",
			trailing.text, trailing.pos)
	}
	return rel, nil
}

func (p *parser) parseComparison() (comparison, error) {
	var cmp comparison

	v, err := p.expect(tokIdent, "a variable")
	if err != nil {
		return cmp, err
	}
	cmp.variable = v.text

	if p.peek().typ == tokDot {
		p.next()
		prop, err := p.expect(tokIdent, "a property name after '.'")
		if err != nil {
			return cmp, err
		}
		cmp.property = prop.text
	}

	op, err := p.expect(tokOp, "a comparison operator")
	if err != nil {
		return cmp, err
	}
	cmp.op = op.text

	lit := p.next()
	switch lit.typ {
	case tokString:
		cmp.literal = result.String(lit.text)
	case tokNumber:
		f, err := strconv.ParseFloat(lit.text, 64)
		if err != nil {
			return cmp, fmt.Errorf("bad number literal %q", lit.text)
		}
		cmp.literal = result.Number(f)
	case tokIdent:
		switch {
		case lit.isKeyword("true"):
			cmp.literal = result.Bool(true)
		case lit.isKeyword("false"):
			cmp.literal = result.Bool(false)
		case lit.isKeyword("null"):
			cmp.literal = result.Null()
		default:
			return cmp, fmt.Errorf("expected a literal, got %q (position %d)", lit.text, lit.pos)
		}
	default:
		return cmp, fmt.Errorf("expected a literal, got %q (position %d)", lit.text, lit.pos)
	}
	return cmp, nil
}

func (p *parser) parseReturnItem() (returnItem, error) {
	v, err := p.expect(tokIdent, "a variable")
	if err != nil {
		return returnItem{}, err
	}
	item := returnItem{variable: v.text}
	if p.peek().typ == tokDot {
		p.next()
		prop, err := p.expect(tokIdent, "a property name after '.'")
		if err != nil {
			return returnItem{}, err
		}
		item.property = prop.text
	}
	return item, nil
}

// validate checks that every referenced variable is bound by a pattern.
func (q *query) validate() error {
	bound := map[string]bool{}
	for _, pat := range q.patterns {
		for _, n := range pat.nodes {
			if n.variable != "" {
				bound[n.variable] = true
			}
		}
		for _, r := range pat.rels {
			if r.variable != "" {
				bound[r.variable] = true
			}
		}
	}
	for _, cmp := range q.filters {
		if !bound[cmp.variable] {
			return fmt.Errorf("WHERE references unbound variable %q", cmp.variable)
		}
	}
	for _, item := range q.returns {
		if !bound[item.variable] {
			return fmt.Errorf("RETURN references unbound variable %q", item.variable)
		}
	}
	return nil
}
