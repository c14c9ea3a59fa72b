package predicate

import (
	"fmt"

	"skpmml/internal/pmml"
)

// Negate returns a predicate that holds exactly when p does not. Negation
// is pushed down to the leaves using De Morgan's laws.
func Negate(p pmml.Predicate) (pmml.Predicate, error) {
	switch p := p.(type) {
	case *pmml.True:
		return &pmml.False{}, nil

	case *pmml.False:
		return &pmml.True{}, nil

	case *pmml.SimplePredicate:
		negated := *p
		negated.Operator = p.Operator.Negate()

		return &negated, nil

	case *pmml.SimpleSetPredicate:
		negated := *p
		negated.BooleanOperator = pmml.SetIsNotIn

		if p.BooleanOperator == pmml.SetIsNotIn {
			negated.BooleanOperator = pmml.SetIsIn
		}

		return &negated, nil

	case *pmml.CompoundPredicate:
		op := pmml.BooleanOr
		if p.BooleanOperator == pmml.BooleanOr {
			op = pmml.BooleanAnd
		}

		children := make([]pmml.Predicate, len(p.Predicates))

		for i, child := range p.Predicates {
			negated, err := Negate(child)
			if err != nil {
				return nil, err
			}

			children[i] = negated
		}

		return combine(op, children), nil

	default:
		return nil, fmt.Errorf("cannot negate %T", p)
	}
}

// combine joins predicates with op, merging nested compounds of the same
// operator. A single predicate is returned as is.
func combine(op pmml.BooleanOperator, predicates []pmml.Predicate) pmml.Predicate {
	if len(predicates) == 1 {
		return predicates[0]
	}

	var flat []pmml.Predicate

	for _, p := range predicates {
		if c, ok := p.(*pmml.CompoundPredicate); ok && c.BooleanOperator == op {
			flat = append(flat, c.Predicates...)
			continue
		}

		flat = append(flat, p)
	}

	return &pmml.CompoundPredicate{BooleanOperator: op, Predicates: flat}
}
