package hxbox

import "fmt"

// Options describes the extra props a box contributes on each render. It is
// either Static, a Func of the incoming props, or one of the
// expression-backed kinds built by Expr, Script and CEL.
type Options interface {
	isOptions()
}

// Static options are taken as-is on every pass and never consume any props.
type Static Props

// Func computes options from the incoming props. Every key read through the
// View is consumed and will not be forwarded to the element.
//
// The function runs exactly once per render pass. A panic inside it is not
// recovered.
type Func func(props *View) Props

func (Static) isOptions() {}
func (Func) isOptions()   {}

// resolver is implemented by dynamic options that evaluate through an
// engine and can fail.
type resolver interface {
	Options
	resolve(view *View) (Props, error)
}

// Partition splits props into the resolved options and the residual props
// that pass through to the element. Neither options nor props is modified;
// both results are fresh maps owned by the caller.
func Partition(options Options, props Props) (resolved, residual Props, err error) {
	resolved, residual, _, err = partition(options, props)
	return resolved, residual, err
}

func partition(options Options, props Props) (resolved, residual Props, consumed KeySet, err error) {
	switch o := options.(type) {
	case Static:
		return Props(o).Clone(), props.Clone(), nil, nil
	case Func:
		if o == nil {
			return nil, nil, nil, fmt.Errorf("%w: nil Func", ErrInvalidOptions)
		}
		view, consumed := Track(props)
		out := o(view)
		return out.Clone(), props.Omit(consumed), consumed, nil
	case resolver:
		view, consumed := Track(props)
		out, err := o.resolve(view)
		if err != nil {
			return nil, nil, consumed, err
		}
		return out.Clone(), props.Omit(consumed), consumed, nil
	default:
		return nil, nil, nil, fmt.Errorf("%w: %T", ErrInvalidOptions, options)
	}
}

// toProps converts an evaluator result into Props.
func toProps(engine string, v any) (Props, error) {
	switch m := v.(type) {
	case nil:
		return Props{}, nil
	case Props:
		return m, nil
	case map[string]any:
		return Props(m), nil
	default:
		return nil, fmt.Errorf("%w: %s returned %T, want a map", ErrOptionsResult, engine, v)
	}
}
