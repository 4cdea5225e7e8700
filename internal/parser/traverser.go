package parser

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/ext/tryfunc"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// ConfigTraverser resolves expressions against the variables and locals of
// a parsed configuration. Project maps are frequently assembled in a locals
// block (merging a base map with per-environment overrides), so locals get
// the same treatment as variables.
type ConfigTraverser struct {
	Files     []*hcl.File
	Variables map[string]cty.Value

	locals map[string]cty.Value
}

// NewConfigTraverser builds a traverser and eagerly resolves all locals
// that can be evaluated from constants, variables, and other locals.
func NewConfigTraverser(files []*hcl.File, vars map[string]cty.Value) *ConfigTraverser {
	t := &ConfigTraverser{
		Files:     files,
		Variables: vars,
	}
	t.locals = t.resolveLocals()
	return t
}

// evalFunctions is the function table offered to expressions. It covers the
// constructs project-map locals actually use; anything else fails
// evaluation and surfaces as an unresolvable expression.
func evalFunctions() map[string]function.Function {
	return map[string]function.Function{
		"length":   stdlib.LengthFunc,
		"merge":    stdlib.MergeFunc,
		"coalesce": stdlib.CoalesceFunc,
		"keys":     stdlib.KeysFunc,
		"values":   stdlib.ValuesFunc,
		"try":      tryfunc.TryFunc,
		"can":      tryfunc.CanFunc,
	}
}

func (t *ConfigTraverser) evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"var":   cty.ObjectVal(t.Variables),
			"local": cty.ObjectVal(t.locals),
		},
		Functions: evalFunctions(),
	}
}

// ResolveExpression evaluates an expression with var.* and local.* in scope.
func (t *ConfigTraverser) ResolveExpression(expr hcl.Expression) (cty.Value, error) {
	val, diags := expr.Value(t.evalContext())
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("could not evaluate expression: %s", diags.Error())
	}
	return val, nil
}

// LookupLocal returns a resolved local value by name.
func (t *ConfigTraverser) LookupLocal(name string) (cty.Value, bool) {
	val, ok := t.locals[name]
	return val, ok
}

// resolveLocals collects every attribute of every locals block and resolves
// them with repeated passes, so locals may reference each other in any
// declaration order. Unresolvable locals are dropped; a consumer asking for
// one gets a not-found answer rather than a partial value.
func (t *ConfigTraverser) resolveLocals() map[string]cty.Value {
	pending := make(map[string]hcl.Expression)

	for _, file := range t.Files {
		content, _, _ := file.Body.PartialContent(&hcl.BodySchema{
			Blocks: []hcl.BlockHeaderSchema{
				{Type: "locals"},
			},
		})
		for _, block := range content.Blocks {
			attrs, diags := block.Body.JustAttributes()
			if diags.HasErrors() {
				continue
			}
			for name, attr := range attrs {
				pending[name] = attr.Expr
			}
		}
	}

	t.locals = make(map[string]cty.Value, len(pending))

	for len(pending) > 0 {
		progressed := false
		for name, expr := range pending {
			val, diags := expr.Value(t.evalContext())
			if diags.HasErrors() {
				continue
			}
			t.locals[name] = val
			delete(pending, name)
			progressed = true
		}
		if !progressed {
			break
		}
	}

	return t.locals
}
