package hxbox

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"sync"

	"github.com/a-h/templ"
)

// TestResult holds the result of rendering a box for testing.
//
// Provides convenience methods for asserting on the HTML and on the final
// props bag the element received.
type TestResult struct {
	HTML string
	Bag  Props
	Ref  *ElementRef
}

// TestRender renders a box once and returns testable output.
//
// An *ElementRef is forwarded so the result also shows what a primitive base
// element was built with. The options run exactly once.
//
//	result, err := hxbox.TestRender(card, hxbox.Props{"class": "red"})
//	if !result.HTMLContains(`class="card red"`) {
//	    t.Fatal("classes not merged")
//	}
func TestRender(b *Box, props Props) (*TestResult, error) {
	return TestRenderWithContext(context.Background(), b, props)
}

// TestRenderWithContext renders a box with a custom context.
//
// Use this when composites read values from context:
//
//	ctx := context.WithValue(context.Background(), themeKey, "dark")
//	result, err := hxbox.TestRenderWithContext(ctx, card, props)
func TestRenderWithContext(ctx context.Context, b *Box, props Props) (*TestResult, error) {
	ref := &ElementRef{}
	bag, err := b.assemble(props, ref)
	if err != nil {
		return nil, err
	}
	component, err := b.dispatch(bag)
	if err != nil {
		return nil, err
	}

	// Render to buffer
	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		return nil, err
	}

	delete(bag, RefKey)
	return &TestResult{
		HTML: buf.String(),
		Bag:  bag,
		Ref:  ref,
	}, nil
}

// HTMLContains checks if the HTML contains a substring.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll checks if the HTML contains all the given substrings.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// HTMLContainsAny checks if the HTML contains any of the given substrings.
func (r *TestResult) HTMLContainsAny(substrs ...string) bool {
	for _, s := range substrs {
		if strings.Contains(r.HTML, s) {
			return true
		}
	}
	return false
}

// HasProp checks if the final bag holds value under key.
func (r *TestResult) HasProp(key string, value any) bool {
	got, ok := r.Bag[key]
	return ok && reflect.DeepEqual(got, value)
}

// Forwarded checks if key reached the element at all.
func (r *TestResult) Forwarded(key string) bool {
	_, ok := r.Bag[key]
	return ok
}

// RenderCall records one invocation of a RenderFunc.
type RenderCall struct {
	Tag   string
	Props Props
}

// RenderRecorder is a RenderFunc stand-in that records what it is asked to
// render and emits nothing.
//
// Useful for checking the exact bag a box hands to its render collaborator:
//
//	rec := &hxbox.RenderRecorder{}
//	b := hxbox.New(hxbox.Tag("div"), opts, hxbox.WithRenderer(rec.Render))
type RenderRecorder struct {
	mu    sync.Mutex
	calls []RenderCall
}

// Render implements RenderFunc.
func (r *RenderRecorder) Render(tag string, props Props) templ.Component {
	r.mu.Lock()
	r.calls = append(r.calls, RenderCall{Tag: tag, Props: props.Clone()})
	r.mu.Unlock()
	return templ.NopComponent
}

// Calls returns the recorded invocations.
func (r *RenderRecorder) Calls() []RenderCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RenderCall(nil), r.calls...)
}

// Last returns the most recent invocation, or false if there was none.
func (r *RenderRecorder) Last() (RenderCall, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return RenderCall{}, false
	}
	return r.calls[len(r.calls)-1], true
}
