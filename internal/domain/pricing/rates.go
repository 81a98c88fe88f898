package pricing

import (
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"

	"packquote/internal/core/types"
	"packquote/internal/domain/catalogs/product"
)

// OverrideRule adjusts the tax rate for items matched by a CEL predicate.
// The predicate sees two string variables: category and name (name is
// uppercased before evaluation). First matching rule wins.
//
// Overrides exist because the rate table is business data under active
// tuning; expressing them as predicates lets operations change the rules
// through configuration instead of a release.
type OverrideRule struct {
	Name string     `json:"name"`
	Expr string     `json:"expr"`
	Rate types.Rate `json:"rate"`
}

type compiledRule struct {
	name string
	prg  cel.Program
	rate types.Rate
}

// RuleSet maps (category, product name) to a tax rate.
type RuleSet struct {
	base      map[product.Category]types.Rate
	overrides []compiledRule
}

// NewRuleSet compiles the override predicates and builds a rule set.
func NewRuleSet(base map[product.Category]types.Rate, overrides []OverrideRule) (*RuleSet, error) {
	env, err := cel.NewEnv(
		cel.Variable("category", cel.StringType),
		cel.Variable("name", cel.StringType),
	)
	if err != nil {
		return nil, fmt.Errorf("pricing: cel env: %w", err)
	}

	rs := &RuleSet{base: make(map[product.Category]types.Rate, len(base))}
	for k, v := range base {
		rs.base[k] = v
	}

	for _, ov := range overrides {
		ast, iss := env.Compile(ov.Expr)
		if iss != nil && iss.Err() != nil {
			return nil, fmt.Errorf("pricing: rule %q: %w", ov.Name, iss.Err())
		}
		if ast.OutputType() != cel.BoolType {
			return nil, fmt.Errorf("pricing: rule %q: predicate must be boolean", ov.Name)
		}
		prg, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("pricing: rule %q: %w", ov.Name, err)
		}
		rs.overrides = append(rs.overrides, compiledRule{name: ov.Name, prg: prg, rate: ov.Rate})
	}
	return rs, nil
}

// DefaultRuleSet returns the current authoritative rate table:
// POT 9.75%, BOX 3.25%, with lids/accessories and silkscreen-printed
// items forced to 0% regardless of category.
func DefaultRuleSet() *RuleSet {
	rs, err := NewRuleSet(
		map[product.Category]types.Rate{
			product.CategoryPot: types.MustMoney("9.75"),
			product.CategoryBox: types.MustMoney("3.25"),
		},
		[]OverrideRule{
			{
				Name: "lid-accessory-zero",
				Expr: `name.contains("LID") || name.contains("TAMPA")`,
				Rate: types.Zero,
			},
			{
				Name: "silkscreen-zero",
				Expr: `name.contains("SILKSCREEN") || name.contains("SERIGRAFIA")`,
				Rate: types.Zero,
			},
		},
	)
	if err != nil {
		panic(err)
	}
	return rs
}

// RateFor returns the tax rate as a percentage, e.g. 9.75.
// Overrides are checked first; an unknown category yields zero.
func (rs *RuleSet) RateFor(category product.Category, name string) types.Rate {
	vars := map[string]any{
		"category": string(category),
		"name":     strings.ToUpper(name),
	}
	for _, rule := range rs.overrides {
		out, _, err := rule.prg.Eval(vars)
		if err != nil {
			continue
		}
		if matched, ok := out.Value().(bool); ok && matched {
			return rule.rate
		}
	}
	if rate, ok := rs.base[category]; ok {
		return rate
	}
	return types.Zero
}
