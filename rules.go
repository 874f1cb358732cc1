package budgetfill

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ClassificationRule routes a normalized category label to a bucket when its
// expression evaluates to true. The expression sees a single variable,
// `label`, already passed through NormalizeLabel.
type ClassificationRule struct {
	Bucket     Bucket
	Expression string
}

// DefaultRules mirrors the labels used on the budget form. Rules are tried
// in order and the first match wins, so "CIVIL" beats everything else.
func DefaultRules() []ClassificationRule {
	return []ClassificationRule{
		{Bucket: Civil, Expression: `label contains "CIVIL"`},
		{Bucket: Electrical, Expression: `label contains "ELETRIC" or label contains "ELECTRIC"`},
		{Bucket: Mechanical, Expression: `label contains "MECANIC" or label contains "MECHANIC"`},
	}
}

// Classifier assigns free-text category labels to buckets.
// It is immutable after construction and safe for concurrent use.
type Classifier struct {
	rules    []ClassificationRule
	programs []*vm.Program
}

// NewClassifier compiles the given rules. With no rules, DefaultRules is used.
func NewClassifier(rules ...ClassificationRule) (*Classifier, error) {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	env := map[string]any{"label": ""}
	c := &Classifier{rules: rules, programs: make([]*vm.Program, len(rules))}
	for i, r := range rules {
		if !r.Bucket.Valid() {
			return nil, fmt.Errorf("rule %d: unknown bucket %d", i, int(r.Bucket))
		}
		program, err := expr.Compile(r.Expression, expr.Env(env), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %d %q: %w", i, r.Expression, err)
		}
		c.programs[i] = program
	}
	return c, nil
}

// MustClassifier is like NewClassifier but panics on a bad rule.
func MustClassifier(rules ...ClassificationRule) *Classifier {
	c, err := NewClassifier(rules...)
	if err != nil {
		panic(err)
	}
	return c
}

// Classify returns the bucket for a raw category label. The second result is
// false when no rule matches, in which case the selection must be dropped.
func (c *Classifier) Classify(label string) (Bucket, bool) {
	env := map[string]any{"label": NormalizeLabel(label)}
	for i, program := range c.programs {
		out, err := expr.Run(program, env)
		if err != nil {
			continue
		}
		if matched, ok := out.(bool); ok && matched {
			return c.rules[i].Bucket, true
		}
	}
	return 0, false
}

// Rules returns a copy of the rules in evaluation order.
func (c *Classifier) Rules() []ClassificationRule {
	out := make([]ClassificationRule, len(c.rules))
	copy(out, c.rules)
	return out
}
