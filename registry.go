package hxbox

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/a-h/templ"
)

// Registry holds boxes by name so that definitions can refer to each other.
type Registry struct {
	mu    sync.RWMutex
	boxes map[string]*Box

	// OnError is called when a box cannot be served by Handler.
	// Customize this to handle errors appropriately for your application.
	OnError func(http.ResponseWriter, *http.Request, error)
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	reg := &Registry{boxes: make(map[string]*Box)}

	// Default error handler
	reg.OnError = func(w http.ResponseWriter, r *http.Request, err error) {
		if IsNotFound(err) {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		if IsOptionsError(err) {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}

	return reg
}

// Add registers boxes under their names.
// Panics on a name collision.
func (reg *Registry) Add(boxes ...*Box) {
	for _, b := range boxes {
		if err := reg.Register(b); err != nil {
			panic(err.Error())
		}
	}
}

// Register adds a box under its name, failing with ErrDuplicate if the name
// is taken.
func (reg *Registry) Register(b *Box) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, exists := reg.boxes[b.Name()]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicate, b.Name())
	}
	reg.boxes[b.Name()] = b
	return nil
}

// Get returns the box registered under name.
func (reg *Registry) Get(name string) (*Box, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	b, ok := reg.boxes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return b, nil
}

// Names returns the registered names, sorted.
func (reg *Registry) Names() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	names := make([]string, 0, len(reg.boxes))
	for name := range reg.boxes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Composite returns a composite element that renders the box called name.
// The lookup happens at render time, so boxes may be registered in any
// order; an unknown name fails when the element renders, and so does a
// chain of references that leads back to a box already on it (ErrCycle).
// A ref forwarded through a registry composite is filled when it renders.
func (reg *Registry) Composite(name string) Composite {
	return func(props Props) templ.Component {
		return &boxLink{reg: reg, name: name, props: props}
	}
}

// boxLink is a deferred reference to a registered box.
type boxLink struct {
	reg   *Registry
	name  string
	props Props
}

func (l *boxLink) Render(ctx context.Context, w io.Writer) error {
	return l.render(ctx, w, nil)
}

// render follows links whose target box is itself based on a link, so the
// chain of names only spans direct references and never the children.
func (l *boxLink) render(ctx context.Context, w io.Writer, chain []string) error {
	if slices.Contains(chain, l.name) {
		return fmt.Errorf("%w: %s", ErrCycle, strings.Join(append(chain, l.name), " -> "))
	}
	b, err := l.reg.Get(l.name)
	if err != nil {
		return err
	}
	c := b.Composite()(l.props)
	if next, ok := c.(*boxLink); ok {
		return next.render(ctx, w, append(chain, l.name))
	}
	return c.Render(ctx, w)
}

// Render builds the named box with props and writes it to w.
func (reg *Registry) Render(ctx context.Context, w io.Writer, name string, props Props) error {
	b, err := reg.Get(name)
	if err != nil {
		return err
	}
	c, err := b.Build(props, nil)
	if err != nil {
		return err
	}
	return c.Render(ctx, w)
}

// Handler serves each box at /{name}, using the query parameters as props
// (see QueryProps). Mount it under a prefix with http.StripPrefix.
func (reg *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		name := strings.Trim(r.URL.Path, "/")
		b, err := reg.Get(name)
		if err != nil {
			reg.OnError(w, r, err)
			return
		}

		// Build fully before writing so errors can still set the status.
		html, err := b.renderString(r.Context(), QueryProps(r))
		if err != nil {
			reg.OnError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if r.Method == http.MethodHead {
			return
		}
		_, _ = io.WriteString(w, html)
	})
}
