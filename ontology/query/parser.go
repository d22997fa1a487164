package query

import (
	"strconv"
	"strings"

	"github.com/thdiaman/OntologyAPI/errors"
	"github.com/thdiaman/OntologyAPI/ontology"
	"github.com/thdiaman/OntologyAPI/vocabulary"
)

// Term is one position of a triple pattern: either a variable or a fixed
// value (identifier or literal).
type Term struct {
	IsVar bool
	Var   string
	Value ontology.Value
}

// Variable builds a variable term.
func Variable(name string) Term {
	return Term{IsVar: true, Var: name}
}

// Fixed builds a fixed-value term.
func Fixed(v ontology.Value) Term {
	return Term{Value: v}
}

// Pattern is one triple pattern of a WHERE block.
type Pattern struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// Query is a parsed SELECT query: a projection list and a conjunction of
// triple patterns.
type Query struct {
	Select []string
	Where  []Pattern
}

// Parse parses a SELECT query, qualifying bare identifiers against ns.
// Returns ErrMalformedQuery on syntax errors, an empty projection or WHERE
// block, a literal in subject or predicate position, or a projected
// variable that no pattern binds.
func Parse(text string, ns vocabulary.Namespace) (*Query, error) {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return nil, errors.MalformedQuery("query", "Parse", "empty query")
	}

	pos := 0
	next := func() (string, bool) {
		if pos >= len(tokens) {
			return "", false
		}
		tok := tokens[pos]
		pos++
		return tok, true
	}

	tok, ok := next()
	if !ok || !strings.EqualFold(tok, "SELECT") {
		return nil, errors.MalformedQuery("query", "Parse", "expected SELECT")
	}

	q := &Query{}
	for {
		tok, ok = next()
		if !ok {
			return nil, errors.MalformedQuery("query", "Parse", "unexpected end after SELECT")
		}
		if strings.EqualFold(tok, "WHERE") {
			break
		}
		if !strings.HasPrefix(tok, "?") || len(tok) < 2 {
			return nil, errors.MalformedQuery("query", "Parse",
				"projection term "+strconv.Quote(tok)+" is not a variable")
		}
		q.Select = append(q.Select, tok[1:])
	}
	if len(q.Select) == 0 {
		return nil, errors.MalformedQuery("query", "Parse", "empty projection list")
	}

	tok, ok = next()
	if !ok || tok != "{" {
		return nil, errors.MalformedQuery("query", "Parse", "expected { after WHERE")
	}

	for {
		tok, ok = next()
		if !ok {
			return nil, errors.MalformedQuery("query", "Parse", "unterminated WHERE block")
		}
		if tok == "}" {
			break
		}
		if tok == "." {
			continue
		}

		subject, err := parseTerm(tok, ns)
		if err != nil {
			return nil, err
		}
		predTok, ok := next()
		if !ok {
			return nil, errors.MalformedQuery("query", "Parse", "pattern missing predicate")
		}
		predicate, err := parseTerm(predTok, ns)
		if err != nil {
			return nil, err
		}
		objTok, ok := next()
		if !ok {
			return nil, errors.MalformedQuery("query", "Parse", "pattern missing object")
		}
		object, err := parseTerm(objTok, ns)
		if err != nil {
			return nil, err
		}

		if !subject.IsVar && subject.Value.IsLiteral() {
			return nil, errors.MalformedQuery("query", "Parse", "literal in subject position")
		}
		if !predicate.IsVar && predicate.Value.IsLiteral() {
			return nil, errors.MalformedQuery("query", "Parse", "literal in predicate position")
		}

		q.Where = append(q.Where, Pattern{Subject: subject, Predicate: predicate, Object: object})
	}
	if len(q.Where) == 0 {
		return nil, errors.MalformedQuery("query", "Parse", "empty WHERE block")
	}

	if tok, ok = next(); ok {
		return nil, errors.MalformedQuery("query", "Parse",
			"unexpected token "+strconv.Quote(tok)+" after WHERE block")
	}

	if err := q.validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// validate checks that every projected variable is bound by some pattern.
func (q *Query) validate() error {
	bound := make(map[string]struct{})
	for _, p := range q.Where {
		for _, t := range []Term{p.Subject, p.Predicate, p.Object} {
			if t.IsVar {
				bound[t.Var] = struct{}{}
			}
		}
	}
	for _, v := range q.Select {
		if _, ok := bound[v]; !ok {
			return errors.MalformedQuery("query", "Parse",
				"projected variable ?"+v+" not bound by any pattern")
		}
	}
	return nil
}

// parseTerm interprets one token as a variable, literal, or identifier.
func parseTerm(tok string, ns vocabulary.Namespace) (Term, error) {
	switch {
	case strings.HasPrefix(tok, "?"):
		if len(tok) < 2 {
			return Term{}, errors.MalformedQuery("query", "Parse", "empty variable name")
		}
		return Variable(tok[1:]), nil

	case strings.HasPrefix(tok, `"`):
		s, err := strconv.Unquote(tok)
		if err != nil {
			return Term{}, errors.MalformedQuery("query", "Parse",
				"bad string literal "+tok)
		}
		return Fixed(ontology.StringValue(s)), nil

	default:
		if looksNumeric(tok) {
			if f, err := strconv.ParseFloat(tok, 64); err == nil {
				return Fixed(ontology.FloatValue(f)), nil
			}
		}
		return Fixed(ontology.IRIValue(ns.Qualify(tok))), nil
	}
}

// looksNumeric gates the float branch of parseTerm. ParseFloat also
// accepts spellings like "inf" and "NaN", which must stay identifiers, so
// only tokens starting with a digit, sign, or decimal point qualify.
func looksNumeric(tok string) bool {
	rest := strings.TrimLeft(tok, "+-")
	if rest == "" {
		return false
	}
	c := rest[0]
	return (c >= '0' && c <= '9') || c == '.'
}

// tokenize splits a query into tokens: braces and lone dots become their
// own tokens, double-quoted strings stay intact (with escapes), everything
// else splits on whitespace. A trailing dot on a non-numeric token is
// split off so "?z." parses as "?z" "." the way SPARQL allows.
func tokenize(text string) []string {
	var tokens []string
	i := 0
	for i < len(text) {
		c := text[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case c == '{' || c == '}':
			tokens = append(tokens, string(c))
			i++

		case c == '"':
			j := i + 1
			for j < len(text) {
				if text[j] == '\\' {
					j += 2
					continue
				}
				if text[j] == '"' {
					j++
					break
				}
				j++
			}
			if j > len(text) {
				j = len(text)
			}
			tokens = append(tokens, text[i:j])
			i = j

		default:
			j := i
			for j < len(text) && !isDelimiter(text[j]) {
				j++
			}
			tokens = append(tokens, splitTrailingDot(text[i:j])...)
			i = j
		}
	}
	return tokens
}

func isDelimiter(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' ||
		c == '{' || c == '}' || c == '"'
}

func splitTrailingDot(tok string) []string {
	if tok == "." || !strings.HasSuffix(tok, ".") {
		return []string{tok}
	}
	if looksNumeric(tok) {
		if _, err := strconv.ParseFloat(tok, 64); err == nil {
			return []string{tok}
		}
	}
	return []string{tok[:len(tok)-1], "."}
}
