package hxbox

import (
	"fmt"
	"reflect"

	celgo "github.com/google/cel-go/cel"
	"github.com/google/cel-go/interpreter"
)

var mapType = reflect.TypeOf(map[string]any{})

// CELOptions are dynamic options written as a CEL expression. Props are
// resolved as top-level names through the View:
//
//	opts, err := hxbox.CEL(`{"width": size}`)
//
// The expression is parsed but not type-checked, so props need no
// declarations. Referencing a prop that is absent is an evaluation error.
// CEL integers come back as int64.
type CELOptions struct {
	source  string
	program celgo.Program
}

// CEL parses source into CEL options.
func CEL(source string) (*CELOptions, error) {
	if source == "" {
		return nil, fmt.Errorf("%w: empty CEL expression", ErrInvalidOptions)
	}
	env, err := celgo.NewEnv()
	if err != nil {
		return nil, err
	}
	parsed, issues := env.Parse(source)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("hxbox: parse CEL options: %w", issues.Err())
	}
	program, err := env.Program(parsed)
	if err != nil {
		return nil, fmt.Errorf("hxbox: plan CEL options: %w", err)
	}
	return &CELOptions{source: source, program: program}, nil
}

// MustCEL is like CEL but panics if source does not parse.
func MustCEL(source string) *CELOptions {
	o, err := CEL(source)
	if err != nil {
		panic(err)
	}
	return o
}

// Source returns the expression text.
func (o *CELOptions) Source() string {
	return o.source
}

func (*CELOptions) isOptions() {}

func (o *CELOptions) resolve(view *View) (Props, error) {
	if o == nil || o.program == nil {
		return nil, fmt.Errorf("%w: unparsed CEL options", ErrInvalidOptions)
	}
	out, _, err := o.program.Eval(&viewActivation{view: view})
	if err != nil {
		return nil, fmt.Errorf("hxbox: evaluate CEL options %q: %w", o.source, err)
	}
	native, err := out.ConvertToNative(mapType)
	if err != nil {
		return nil, fmt.Errorf("%w: CEL returned %s, want a map", ErrOptionsResult, out.Type())
	}
	return toProps("cel", native)
}

// viewActivation resolves CEL names by reading them through a View.
type viewActivation struct {
	view *View
}

func (a *viewActivation) ResolveName(name string) (any, bool) {
	return a.view.Lookup(name)
}

func (a *viewActivation) Parent() interpreter.Activation {
	return nil
}
