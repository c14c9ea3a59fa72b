package predicate

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"skpmml/internal/diagnostic"
	"skpmml/internal/feature"
	"skpmml/internal/match"
	"skpmml/internal/pmml"
	"skpmml/internal/value"
)

// Translator is the default rule predicate translator.
type Translator struct{}

// New creates a translator.
func New() *Translator {
	return &Translator{}
}

// Translate parses text and resolves its feature references against
// features. Errors are *diagnostic.PredicateSyntaxError.
func (t *Translator) Translate(text string, features []feature.Feature) (pmml.Predicate, error) {
	return Translate(text, features)
}

// Translate is Translator.Translate as a function.
func Translate(text string, features []feature.Feature) (pmml.Predicate, error) {
	result, err := translate(text, features)
	if err != nil {
		var syntax *diagnostic.PredicateSyntaxError
		if errors.As(err, &syntax) {
			syntax.Predicate = text
			return nil, syntax
		}

		return nil, &diagnostic.PredicateSyntaxError{Rule: -1, Predicate: text, Offset: -1, Err: err}
	}

	return result, nil
}

func translate(text string, features []feature.Feature) (pmml.Predicate, error) {
	if strings.TrimSpace(text) == "" {
		return nil, syntaxErrorf(0, "empty predicate")
	}

	tokens, err := tokenize(text)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens, features: features}

	result, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.kind != tokenEOF {
		return nil, syntaxErrorf(tok.pos, "unexpected %q", tok.text)
	}

	return result, nil
}

var comparisonOperators = map[string]pmml.Operator{
	"==": pmml.OperatorEqual,
	"!=": pmml.OperatorNotEqual,
	"<":  pmml.OperatorLessThan,
	"<=": pmml.OperatorLessOrEqual,
	">":  pmml.OperatorGreaterThan,
	">=": pmml.OperatorGreaterOrEqual,
}

// operand is one side of a comparison: a feature or a literal.
type operand struct {
	feature *feature.Feature
	literal any
	none    bool
	pos     int
}

func (o operand) isLiteral() bool {
	return o.feature == nil && !o.none
}

type parser struct {
	tokens   []token
	pos      int
	features []feature.Feature
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) advance() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokenEOF {
		p.pos++
	}

	return tok
}

func (p *parser) accept(kind tokenKind, text string) bool {
	if p.peek().is(kind, text) {
		p.advance()
		return true
	}

	return false
}

func (p *parser) expect(kind tokenKind, text string) error {
	tok := p.peek()
	if !tok.is(kind, text) {
		return syntaxErrorf(tok.pos, "expected %q, got %s", text, describe(tok))
	}

	p.advance()

	return nil
}

// parseOr parses: and ("or" and)*.
func (p *parser) parseOr() (pmml.Predicate, error) {
	return p.parseBinary("or", pmml.BooleanOr, p.parseAnd)
}

// parseAnd parses: not ("and" not)*.
func (p *parser) parseAnd() (pmml.Predicate, error) {
	return p.parseBinary("and", pmml.BooleanAnd, p.parseNot)
}

func (p *parser) parseBinary(keyword string, op pmml.BooleanOperator, next func() (pmml.Predicate, error)) (pmml.Predicate, error) {
	first, err := next()
	if err != nil {
		return nil, err
	}

	predicates := []pmml.Predicate{first}

	for p.accept(tokenIdent, keyword) {
		right, err := next()
		if err != nil {
			return nil, err
		}

		predicates = append(predicates, right)
	}

	return combine(op, predicates), nil
}

// parseNot parses: "not" not | atom.
func (p *parser) parseNot() (pmml.Predicate, error) {
	if p.accept(tokenIdent, "not") {
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}

		return Negate(operand)
	}

	return p.parseAtom()
}

// parseAtom parses a parenthesized expression or a comparison.
func (p *parser) parseAtom() (pmml.Predicate, error) {
	if p.accept(tokenPunct, "(") {
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}

		if err := p.expect(tokenPunct, ")"); err != nil {
			return nil, err
		}

		return inner, nil
	}

	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}

	tok := p.peek()

	switch {
	case tok.kind == tokenOperator:
		p.advance()

		right, err := p.parseOperand()
		if err != nil {
			return nil, err
		}

		return p.compare(left, comparisonOperators[tok.text], right, tok.pos)

	case tok.is(tokenIdent, "in"):
		p.advance()
		return p.membership(left, pmml.SetIsIn, tok.pos)

	case tok.is(tokenIdent, "not"):
		p.advance()

		if err := p.expect(tokenIdent, "in"); err != nil {
			return nil, err
		}

		return p.membership(left, pmml.SetIsNotIn, tok.pos)

	case tok.is(tokenIdent, "is"):
		p.advance()
		negated := p.accept(tokenIdent, "not")

		if err := p.expect(tokenIdent, "None"); err != nil {
			return nil, err
		}

		return p.missing(left, negated, tok.pos)
	}

	return p.truth(left)
}

// parseOperand parses a feature reference or a literal.
func (p *parser) parseOperand() (operand, error) {
	tok := p.advance()

	switch {
	case tok.is(tokenIdent, "X"):
		f, err := p.parseFeatureRef()
		if err != nil {
			return operand{}, err
		}

		return operand{feature: f, pos: tok.pos}, nil

	case tok.kind == tokenString:
		return operand{literal: tok.text, pos: tok.pos}, nil

	case tok.kind == tokenNumber:
		n, err := parseNumber(tok, false)
		return operand{literal: n, pos: tok.pos}, err

	case tok.is(tokenPunct, "-"):
		num := p.advance()
		if num.kind != tokenNumber {
			return operand{}, syntaxErrorf(num.pos, "expected a number after '-', got %s", describe(num))
		}

		n, err := parseNumber(num, true)

		return operand{literal: n, pos: tok.pos}, err

	case tok.is(tokenIdent, "True"):
		return operand{literal: true, pos: tok.pos}, nil

	case tok.is(tokenIdent, "False"):
		return operand{literal: false, pos: tok.pos}, nil

	case tok.is(tokenIdent, "None"):
		return operand{none: true, pos: tok.pos}, nil
	}

	return operand{}, syntaxErrorf(tok.pos, "expected a feature or a literal, got %s", describe(tok))
}

// parseFeatureRef parses the ['name'] or [index] part of X['name'].
func (p *parser) parseFeatureRef() (*feature.Feature, error) {
	if err := p.expect(tokenPunct, "["); err != nil {
		return nil, err
	}

	tok := p.advance()

	var f *feature.Feature

	switch tok.kind {
	case tokenString:
		i := slices.IndexFunc(p.features, func(f feature.Feature) bool { return f.Name == tok.text })
		if i < 0 {
			err := syntaxErrorf(tok.pos, "unknown feature %q", tok.text)
			err.Suggestion = match.Suggest(tok.text, feature.Names(p.features))

			return nil, err
		}

		f = &p.features[i]

	case tokenNumber:
		i, err := strconv.Atoi(tok.text)
		if err != nil {
			return nil, syntaxErrorf(tok.pos, "invalid feature index %s", tok.text)
		}

		if i >= len(p.features) {
			return nil, syntaxErrorf(tok.pos, "feature index %d out of range [0, %d)", i, len(p.features))
		}

		f = &p.features[i]

	default:
		return nil, syntaxErrorf(tok.pos, "expected a feature name or index, got %s", describe(tok))
	}

	if err := p.expect(tokenPunct, "]"); err != nil {
		return nil, err
	}

	return f, nil
}

// parseList parses a bracketed or parenthesized list of literals.
func (p *parser) parseList() ([]operand, error) {
	closer := "]"
	if p.accept(tokenPunct, "(") {
		closer = ")"
	} else if err := p.expect(tokenPunct, "["); err != nil {
		return nil, err
	}

	var items []operand

	for !p.accept(tokenPunct, closer) {
		item, err := p.parseOperand()
		if err != nil {
			return nil, err
		}

		if !item.isLiteral() {
			return nil, syntaxErrorf(item.pos, "list elements must be literals")
		}

		items = append(items, item)

		if !p.accept(tokenPunct, ",") {
			if err := p.expect(tokenPunct, closer); err != nil {
				return nil, err
			}

			break
		}
	}

	return items, nil
}

func (p *parser) compare(left operand, op pmml.Operator, right operand, pos int) (pmml.Predicate, error) {
	if left.feature == nil && right.feature != nil {
		left, right = right, left
		op = op.Swap()
	}

	if left.feature == nil {
		return nil, syntaxErrorf(pos, "comparison must reference a feature")
	}

	if right.feature != nil {
		return nil, syntaxErrorf(pos, "comparison between two features is not supported")
	}

	if right.none {
		return nil, syntaxErrorf(right.pos, "use 'is None' or 'is not None' to test for missing values")
	}

	f := left.feature

	if f.Kind == feature.KindBinary {
		return binaryTest(f, op, right)
	}

	v, err := value.Format(right.literal)
	if err != nil {
		return nil, syntaxErrorf(right.pos, "%v", err)
	}

	if f.Kind == feature.KindCategorical && (op == pmml.OperatorEqual || op == pmml.OperatorNotEqual) && !slices.Contains(f.Values, v) {
		err := syntaxErrorf(right.pos, "value %q is not a category of %s", v, f.Name)
		err.Suggestion = match.Suggest(v, f.Values)

		return nil, err
	}

	return &pmml.SimplePredicate{Field: f.Field, Operator: op, Value: v}, nil
}

// binaryTest translates X['color=red'] == 1 into color == 'red'.
func binaryTest(f *feature.Feature, op pmml.Operator, right operand) (pmml.Predicate, error) {
	if op != pmml.OperatorEqual && op != pmml.OperatorNotEqual {
		return nil, syntaxErrorf(right.pos, "indicator %s only supports == and !=", f.Name)
	}

	set, err := truthValue(right)
	if err != nil {
		return nil, err
	}

	if !set {
		op = op.Negate()
	}

	return &pmml.SimplePredicate{Field: f.Field, Operator: op, Value: f.Value()}, nil
}

func truthValue(o operand) (bool, error) {
	if b, ok := o.literal.(bool); ok {
		return b, nil
	}

	if f, ok := value.AsFloat(o.literal); ok && (f == 0 || f == 1) {
		return f == 1, nil
	}

	return false, syntaxErrorf(o.pos, "indicator can only be compared with 0, 1, True or False")
}

func (p *parser) membership(left operand, op pmml.SetOperator, pos int) (pmml.Predicate, error) {
	items, err := p.parseList()
	if err != nil {
		return nil, err
	}

	if left.feature == nil {
		return nil, syntaxErrorf(pos, "membership test must reference a feature")
	}

	f := left.feature
	if f.Kind == feature.KindBinary {
		return nil, syntaxErrorf(pos, "indicator %s does not support membership tests", f.Name)
	}

	if len(items) == 0 {
		if op == pmml.SetIsIn {
			return &pmml.False{}, nil
		}

		return &pmml.True{}, nil
	}

	values := make([]string, len(items))
	for i, item := range items {
		v, err := value.Format(item.literal)
		if err != nil {
			return nil, syntaxErrorf(item.pos, "%v", err)
		}

		values[i] = v
	}

	return &pmml.SimpleSetPredicate{
		Field:           f.Field,
		BooleanOperator: op,
		Array:           pmml.Array{Type: f.DataType, Values: values},
	}, nil
}

func (p *parser) missing(left operand, negated bool, pos int) (pmml.Predicate, error) {
	if left.feature == nil {
		return nil, syntaxErrorf(pos, "missing value test must reference a feature")
	}

	op := pmml.OperatorIsMissing
	if negated {
		op = pmml.OperatorIsNotMissing
	}

	return &pmml.SimplePredicate{Field: left.feature.Field, Operator: op}, nil
}

// truth translates an operand used on its own as a predicate.
func (p *parser) truth(o operand) (pmml.Predicate, error) {
	switch {
	case o.feature != nil && o.feature.Kind == feature.KindBinary:
		return &pmml.SimplePredicate{Field: o.feature.Field, Operator: pmml.OperatorEqual, Value: o.feature.Value()}, nil
	case o.literal == true:
		return &pmml.True{}, nil
	case o.literal == false:
		return &pmml.False{}, nil
	}

	tok := p.peek()

	return nil, syntaxErrorf(tok.pos, "expected a comparison, got %s", describe(tok))
}

func parseNumber(tok token, negative bool) (any, error) {
	text := tok.text
	if negative {
		text = "-" + text
	}

	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n, nil
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, syntaxErrorf(tok.pos, "invalid number %s", tok.text)
	}

	return f, nil
}

func describe(tok token) string {
	switch tok.kind {
	case tokenEOF:
		return "end of input"
	case tokenString:
		return strconv.Quote(tok.text)
	default:
		return fmt.Sprintf("%q", tok.text)
	}
}

func syntaxErrorf(offset int, format string, args ...any) *diagnostic.PredicateSyntaxError {
	return &diagnostic.PredicateSyntaxError{
		Rule:    -1,
		Offset:  offset,
		Message: fmt.Sprintf(format, args...),
	}
}
