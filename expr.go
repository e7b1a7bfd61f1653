package hxbox

import (
	"fmt"

	exprlang "github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
	exprvm "github.com/expr-lang/expr/vm"
)

// ExprOptions are dynamic options written in the expr language
// (github.com/expr-lang/expr). Props are visible as top-level variables and
// the expression must evaluate to a map:
//
//	opts, err := hxbox.Expr(`{"width": size, "class": "w-" + string(size)}`)
//
// Variables are read through the View when the program reaches them, so a
// prop named only on a branch that does not run is not consumed. Reads
// through $env bypass the View and see no props.
type ExprOptions struct {
	source  string
	program *exprvm.Program
}

// Names the patched program uses to reach the View.
const (
	exprViewVar  = "$view"
	exprPropFunc = "$prop"
)

// Expr compiles source into expression options.
func Expr(source string) (*ExprOptions, error) {
	if source == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrInvalidOptions)
	}
	tree, err := parser.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("hxbox: parse expr options: %w", err)
	}
	locals := &localCollector{names: make(map[string]bool)}
	ast.Walk(&tree.Node, locals)

	program, err := exprlang.Compile(source,
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
		exprlang.Function(exprPropFunc, readProp),
		exprlang.Patch(&propPatcher{locals: locals.names}),
	)
	if err != nil {
		return nil, fmt.Errorf("hxbox: compile expr options: %w", err)
	}
	return &ExprOptions{
		source:  source,
		program: program,
	}, nil
}

// MustExpr is like Expr but panics if source does not compile.
func MustExpr(source string) *ExprOptions {
	o, err := Expr(source)
	if err != nil {
		panic(err)
	}
	return o
}

// Source returns the expression text.
func (o *ExprOptions) Source() string {
	return o.source
}

func (*ExprOptions) isOptions() {}

func (o *ExprOptions) resolve(view *View) (Props, error) {
	if o == nil || o.program == nil {
		return nil, fmt.Errorf("%w: uncompiled expr options", ErrInvalidOptions)
	}
	out, err := exprlang.Run(o.program, map[string]any{exprViewVar: view})
	if err != nil {
		return nil, fmt.Errorf("hxbox: evaluate expr options %q: %w", o.source, err)
	}
	return toProps("expr", out)
}

// readProp is $prop($view, name).
func readProp(params ...any) (any, error) {
	view, _ := params[0].(*View)
	name, _ := params[1].(string)
	if view == nil {
		return nil, nil
	}
	return view.Get(name), nil
}

// propPatcher rewrites every free variable into a $prop call. Function names
// are visited before their call node and are restored there.
type propPatcher struct {
	locals map[string]bool
}

func (p *propPatcher) Visit(node *ast.Node) {
	switch n := (*node).(type) {
	case *ast.IdentifierNode:
		if n.Value == "$env" || n.Value == exprViewVar || p.locals[n.Value] {
			return
		}
		ast.Patch(node, &ast.CallNode{
			Callee: &ast.IdentifierNode{Value: exprPropFunc},
			Arguments: []ast.Node{
				&ast.IdentifierNode{Value: exprViewVar},
				&ast.StringNode{Value: n.Value},
			},
		})
	case *ast.CallNode:
		if name, ok := patchedName(n.Callee); ok {
			ast.Patch(&n.Callee, &ast.IdentifierNode{Value: name})
		}
	}
}

func patchedName(node ast.Node) (string, bool) {
	call, ok := node.(*ast.CallNode)
	if !ok || len(call.Arguments) != 2 {
		return "", false
	}
	callee, ok := call.Callee.(*ast.IdentifierNode)
	if !ok || callee.Value != exprPropFunc {
		return "", false
	}
	name, ok := call.Arguments[1].(*ast.StringNode)
	if !ok {
		return "", false
	}
	return name.Value, true
}

// localCollector finds names bound with let, which are not props.
type localCollector struct {
	names map[string]bool
}

func (c *localCollector) Visit(node *ast.Node) {
	if decl, ok := (*node).(*ast.VariableDeclaratorNode); ok {
		c.names[decl.Name] = true
	}
}
