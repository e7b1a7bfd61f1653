package hxbox

import (
	"fmt"

	"github.com/dop251/goja"
)

// ScriptOptions are dynamic options written as a JavaScript function of the
// props, evaluated with goja:
//
//	opts, err := hxbox.Script(`(props) => ({ width: props.size })`)
//
// The function receives an object backed by the View, so each property it
// reads is consumed. Spreading the object reads every key.
//
// JavaScript numbers come back as int64 or float64.
type ScriptOptions struct {
	source  string
	program *goja.Program
}

// Script compiles source, which must evaluate to a function.
func Script(source string) (*ScriptOptions, error) {
	if source == "" {
		return nil, fmt.Errorf("%w: empty script", ErrInvalidOptions)
	}
	program, err := goja.Compile("options", "("+source+")", false)
	if err != nil {
		return nil, fmt.Errorf("hxbox: compile script options: %w", err)
	}
	return &ScriptOptions{source: source, program: program}, nil
}

// MustScript is like Script but panics if source does not compile.
func MustScript(source string) *ScriptOptions {
	o, err := Script(source)
	if err != nil {
		panic(err)
	}
	return o
}

// Source returns the script text.
func (o *ScriptOptions) Source() string {
	return o.source
}

func (*ScriptOptions) isOptions() {}

func (o *ScriptOptions) resolve(view *View) (Props, error) {
	if o == nil || o.program == nil {
		return nil, fmt.Errorf("%w: uncompiled script options", ErrInvalidOptions)
	}
	vm := goja.New()
	value, err := vm.RunProgram(o.program)
	if err != nil {
		return nil, fmt.Errorf("hxbox: run script options: %w", err)
	}
	fn, ok := goja.AssertFunction(value)
	if !ok {
		return nil, fmt.Errorf("%w: script evaluated to %s, want a function", ErrOptionsResult, value)
	}
	props := vm.NewDynamicObject(&scriptProps{vm: vm, view: view})
	out, err := fn(goja.Undefined(), props)
	if err != nil {
		return nil, fmt.Errorf("hxbox: evaluate script options: %w", err)
	}
	if goja.IsUndefined(out) || goja.IsNull(out) {
		return Props{}, nil
	}
	return toProps("script", out.Export())
}

// scriptProps exposes a View to JavaScript as a read-only object.
type scriptProps struct {
	vm   *goja.Runtime
	view *View
}

func (p *scriptProps) Get(key string) goja.Value {
	v, ok := p.view.Lookup(key)
	if !ok {
		return nil
	}
	return p.vm.ToValue(v)
}

func (p *scriptProps) Set(string, goja.Value) bool { return false }

func (p *scriptProps) Has(key string) bool {
	return p.view.Has(key)
}

func (p *scriptProps) Delete(string) bool { return false }

func (p *scriptProps) Keys() []string {
	return p.view.Keys()
}
