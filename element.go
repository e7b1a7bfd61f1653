package hxbox

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"strings"
	"unicode"

	"github.com/a-h/templ"
)

// Element is what a box renders: a Tag or a Composite.
type Element interface {
	isElement()
}

// Tag is a primitive element such as "div" or "button". Tags are rendered
// through the box's RenderFunc.
type Tag string

// Composite is a component that takes the final props bag directly.
// A *Box converts to one with Box.Composite.
type Composite func(props Props) templ.Component

func (Tag) isElement()       {}
func (Composite) isElement() {}

// RenderFunc builds the node for a primitive tag. It must not keep or modify
// props.
type RenderFunc func(tag string, props Props) templ.Component

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// HTMLElement is the default RenderFunc. It writes tag with the bag's
// printable values as attributes, in key order, followed by its children.
//
// Strings, numbers and fmt.Stringer values become name="value" pairs; true
// becomes a bare attribute; false, nil, functions and other values that have
// no HTML form are dropped, as are keys that are not valid attribute names.
// The children and ref keys are never attributes. If the ref is an
// *ElementRef it is filled in before HTMLElement returns.
func HTMLElement(tag string, props Props) templ.Component {
	if ref, ok := props[RefKey].(*ElementRef); ok && ref != nil {
		ref.attach(tag, props)
	}
	attrs := attributes(props)
	children := props[ChildrenKey]
	void := voidElements[strings.ToLower(tag)]

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<"+tag); err != nil {
			return err
		}
		if err := templ.RenderAttributes(ctx, w, attrs); err != nil {
			return err
		}
		if _, err := io.WriteString(w, ">"); err != nil {
			return err
		}
		if void {
			return nil
		}
		if err := renderChildren(ctx, w, children); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</"+tag+">")
		return err
	})
}

// attributes picks the bag entries templ can render as attributes.
func attributes(props Props) templ.Attributes {
	attrs := make(templ.Attributes, len(props))
	for key, v := range props {
		if key == ChildrenKey || key == RefKey || !validAttributeName(key) {
			continue
		}
		if value, ok := attributeValue(v); ok {
			attrs[key] = value
		}
	}
	return attrs
}

// attributeValue narrows v to the kinds templ.RenderAttributes prints.
func attributeValue(v any) (any, bool) {
	switch x := v.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return x, true
	case fmt.Stringer:
		return x.String(), true
	}
	return nil, false
}

// validAttributeName reports whether name can stand alone as an HTML
// attribute name: no whitespace, quotes, '>', '/', '=' or control characters.
func validAttributeName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r <= 0x20, r == 0x7f, unicode.IsSpace(r):
			return false
		case strings.ContainsRune("\"'>/=<`", r):
			return false
		}
	}
	return true
}

func renderChildren(ctx context.Context, w io.Writer, children any) error {
	switch c := children.(type) {
	case nil, bool:
		return nil
	case templ.Component:
		return c.Render(ctx, w)
	case string:
		_, err := io.WriteString(w, templ.EscapeString(c))
		return err
	case []templ.Component:
		for _, child := range c {
			if err := renderChildren(ctx, w, child); err != nil {
				return err
			}
		}
		return nil
	case []any:
		for _, child := range c {
			if err := renderChildren(ctx, w, child); err != nil {
				return err
			}
		}
		return nil
	case []string:
		for _, child := range c {
			if err := renderChildren(ctx, w, child); err != nil {
				return err
			}
		}
		return nil
	}
	if value, ok := attributeValue(children); ok {
		_, err := io.WriteString(w, templ.EscapeString(fmt.Sprint(value)))
		return err
	}
	return fmt.Errorf("hxbox: cannot render %s children", reflect.TypeOf(children))
}
