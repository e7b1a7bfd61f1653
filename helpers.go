package hxbox

import (
	"bytes"
	"context"
	"net/http"
	"sort"
	"strings"

	"github.com/a-h/templ"
)

// Render writes a templ component to the HTTP response.
//
// Sets Content-Type to text/html and renders the component using the
// request's context:
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    hxbox.Render(w, r, card.Component(props, nil))
//	}
func Render(w http.ResponseWriter, r *http.Request, component templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(r.Context(), w)
}

// RenderString renders a component into a string.
func RenderString(ctx context.Context, component templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Classes joins class names, skipping empty strings. A map[string]bool
// contributes its true keys in sorted order. Handy inside Func options:
//
//	hxbox.Func(func(p *hxbox.View) hxbox.Props {
//	    return hxbox.Props{"class": hxbox.Classes("btn", map[string]bool{
//	        "btn-active": p.Bool("active"),
//	    })}
//	})
func Classes(parts ...any) string {
	var out []string
	for _, part := range parts {
		switch p := part.(type) {
		case string:
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		case []string:
			out = append(out, strings.Fields(strings.Join(p, " "))...)
		case map[string]bool:
			keys := make([]string, 0, len(p))
			for k, on := range p {
				if on && k != "" {
					keys = append(keys, k)
				}
			}
			sort.Strings(keys)
			out = append(out, keys...)
		}
	}
	return strings.Join(out, " ")
}

// QueryProps turns request query parameters into props. A parameter given
// once becomes a string, repeated parameters become []string, and a
// parameter with an empty value becomes true.
func QueryProps(r *http.Request) Props {
	props := Props{}
	for key, values := range r.URL.Query() {
		switch {
		case len(values) > 1:
			props[key] = append([]string(nil), values...)
		case len(values) == 1 && values[0] == "":
			props[key] = true
		case len(values) == 1:
			props[key] = values[0]
		}
	}
	return props
}
