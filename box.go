package hxbox

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/a-h/templ"
)

// Box renders a base element with options-derived props. Props the options
// did not consume are forwarded to the element unchanged.
//
//	card := hxbox.New(hxbox.Tag("div"), hxbox.Static{"class": "card"})
//	card.Component(hxbox.Props{"class": "red", "id": "x"}, nil)
//	// <div class="card red" id="x"></div>
//
// A Box holds no per-render state and is safe for concurrent use.
type Box struct {
	name    string
	base    Element
	options Options
	merge   MergePolicy
	render  RenderFunc
	logger  *slog.Logger
}

// Option configures a Box.
type Option func(*Box)

// WithMerge sets the merge policy. The default is MergeClass.
func WithMerge(policy MergePolicy) Option {
	return func(b *Box) {
		if policy != nil {
			b.merge = policy
		}
	}
}

// WithRenderer sets the RenderFunc used for Tag bases. The default is
// HTMLElement.
func WithRenderer(render RenderFunc) Option {
	return func(b *Box) {
		if render != nil {
			b.render = render
		}
	}
}

// WithLogger sets the logger used for debug output. The default is
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Box) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithName names the box for logs and registries.
func WithName(name string) Option {
	return func(b *Box) {
		b.name = name
	}
}

// New creates a box over base. options may be Static, a Func, or one of the
// expression-backed kinds; it is inspected on every render.
func New(base Element, options Options, opts ...Option) *Box {
	b := &Box{
		base:    base,
		options: options,
		merge:   MergeClass,
		render:  HTMLElement,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.name == "" {
		b.name = elementName(base)
	}
	return b
}

// Name returns the box's name. Unnamed boxes are named after their base.
func (b *Box) Name() string {
	return b.name
}

// Bag returns the final props bag for one invocation without rendering.
func (b *Box) Bag(props Props, ref any) (Props, error) {
	return b.assemble(props, ref)
}

// Build runs one render pass: partition props, forward ref, apply the merge
// policy and hand the final bag to the base element. Errors from dynamic
// options are returned unchanged; panics from a Func are not recovered.
func (b *Box) Build(props Props, ref any) (templ.Component, error) {
	bag, err := b.assemble(props, ref)
	if err != nil {
		return nil, err
	}
	return b.dispatch(bag)
}

// Component is Build for use inside templates. A build error is reported
// when the returned component renders.
func (b *Box) Component(props Props, ref any) templ.Component {
	c, err := b.Build(props, ref)
	if err != nil {
		return errorComponent(err)
	}
	return c
}

// Composite exposes the box as a composite element so it can be the base of
// another box. The composite forwards whatever ref the outer box placed in
// the bag.
func (b *Box) Composite() Composite {
	return func(props Props) templ.Component {
		ref := props[RefKey]
		if ref != nil {
			props = props.Clone()
			delete(props, RefKey)
		}
		return b.Component(props, ref)
	}
}

func (b *Box) renderString(ctx context.Context, props Props) (string, error) {
	c, err := b.Build(props, nil)
	if err != nil {
		return "", err
	}
	return RenderString(ctx, c)
}

func (b *Box) assemble(props Props, ref any) (Props, error) {
	resolved, residual, consumed, err := partition(b.options, props)
	if err != nil {
		return nil, err
	}
	if ref != nil {
		residual[RefKey] = ref
	}
	b.merge(resolved, residual)
	for k, v := range residual {
		resolved[k] = v
	}
	b.logger.Debug("box partitioned",
		"box", b.name,
		"consumed", consumed.Sorted(),
		"forwarded", len(residual),
	)
	return resolved, nil
}

func (b *Box) dispatch(bag Props) (templ.Component, error) {
	switch base := b.base.(type) {
	case Composite:
		if base == nil {
			return nil, fmt.Errorf("%w: nil composite in box %q", ErrInvalidElement, b.name)
		}
		return base(bag), nil
	case Tag:
		if base == "" {
			return nil, fmt.Errorf("%w: empty tag in box %q", ErrInvalidElement, b.name)
		}
		return b.render(string(base), bag), nil
	default:
		return nil, fmt.Errorf("%w: %T in box %q", ErrInvalidElement, b.base, b.name)
	}
}

func elementName(e Element) string {
	switch base := e.(type) {
	case Tag:
		return string(base)
	case Composite:
		return "composite"
	default:
		return "box"
	}
}

func errorComponent(err error) templ.Component {
	return templ.ComponentFunc(func(context.Context, io.Writer) error {
		return err
	})
}
