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
	"strings"
	"unicode"
)

type tokenType int

const (
	tokEOF tokenType = iota
	tokIdent
	tokNumber
	tokString
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokColon
	tokComma
	tokDot
	tokDash
	tokArrowRight // ->
	tokArrowLeft  // <-
	tokOp         // = <> != < > <= >=
)

type token struct {
	typ  tokenType
	text string
	pos  int
}

// lex splits a query into tokens. Keywords stay tokIdent; the parser
// matches them case-insensitively.
func lex(src string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case unicode.IsSpace(rune(c)):
			i++

		case c == '(':
			tokens = append(tokens, token{tokLParen, "(", i})
			i++
		case c == ')':
			tokens = append(tokens, token{tokRParen, ")", i})
			i++
		case c == '[':
			tokens = append(tokens, token{tokLBracket, "[", i})
			i++
		case c == ']':
			tokens = append(tokens, token{tokRBracket, "]", i})
			i++
		case c == ':':
			tokens = append(tokens, token{tokColon, ":", i})
			i++
		case c == ',':
			tokens = append(tokens, token{tokComma, ",", i})
			i++
		case c == '.':
			tokens = append(tokens, token{tokDot, ".", i})
			i++

		case c == '-':
			switch {
			case i+1 < len(src) && src[i+1] == '>':
				tokens = append(tokens, token{tokArrowRight, "->", i})
				i += 2
			case i+1 < len(src) && unicode.IsDigit(rune(src[i+1])) &&
				len(tokens) > 0 && tokens[len(tokens)-1].typ == tokOp:
				// A minus directly after a comparison operator starts a
				// negative literal, not a pattern dash.
				j := i + 1
				for j < len(src) && (unicode.IsDigit(rune(src[j])) || src[j] == '.') {
					j++
				}
				tokens = append(tokens, token{tokNumber, src[i:j], i})
				i = j
			default:
				tokens = append(tokens, token{tokDash, "-", i})
				i++
			}

		case c == '<':
			switch {
			case i+1 < len(src) && src[i+1] == '-':
				tokens = append(tokens, token{tokArrowLeft, "<-", i})
				i += 2
			case i+1 < len(src) && (src[i+1] == '=' || src[i+1] == '>'):
				tokens = append(tokens, token{tokOp, src[i : i+2], i})
				i += 2
			default:
				tokens = append(tokens, token{tokOp, "<", i})
				i++
			}

		case c == '>':
			if i+1 < len(src) && src[i+1] == '=' {
				tokens = append(tokens, token{tokOp, ">=", i})
				i += 2
			} else {
				tokens = append(tokens, token{tokOp, ">", i})
				i++
			}

		case c == '=':
			tokens = append(tokens, token{tokOp, "=", i})
			i++

		case c == '!':
			if i+1 < len(src) && src[i+1] == '=' {
				tokens = append(tokens, token{tokOp, "!=", i})
				i += 2
			} else {
				return nil, fmt.Errorf("unexpected %q at position %d", c, i)
			}

		case c == '\'' || c == '"':
			quote := c
			j := i + 1
			for j < len(src) && src[j] != quote {
				j++
			}
			if j >= len(src) {
				return nil, fmt.Errorf("unterminated string at position %d", i)
			}
			tokens = append(tokens, token{tokString, src[i+1 : j], i})
			i = j + 1

		case unicode.IsDigit(rune(c)):
			j := i
			for j < len(src) && (unicode.IsDigit(rune(src[j])) || src[j] == '.') {
				j++
			}
			tokens = append(tokens, token{tokNumber, src[i:j], i})
			i = j

		case unicode.IsLetter(rune(c)) || c == '_':
			j := i
			for j < len(src) && (unicode.IsLetter(rune(src[j])) || unicode.IsDigit(rune(src[j])) || src[j] == '_') {
				j++
			}
			tokens = append(tokens, token{tokIdent, src[i:j], i})
			i = j

		default:
			return nil, fmt.Errorf("unexpected %q at position %d", c, i)
		}
	}
	tokens = append(tokens, token{tokEOF, "", len(src)})
	return tokens, nil
}

func (t token) isKeyword(kw string) bool {
	return t.typ == tokIdent && strings.EqualFold(t.text, kw)
}
