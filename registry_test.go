package hxbox

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	card := New(Tag("div"), Static{"class": "card"}, WithName("card"))

	if err := reg.Register(card); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	got, err := reg.Get("card")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != card {
		t.Error("Get returned a different box")
	}

	if err := reg.Register(New(Tag("p"), Static{}, WithName("card"))); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate Register err = %v, want ErrDuplicate", err)
	}
	if _, err := reg.Get("missing"); !IsNotFound(err) {
		t.Errorf("Get(missing) err = %v, want not found", err)
	}
}

func TestRegistryAddPanicsOnCollision(t *testing.T) {
	reg := NewRegistry()
	reg.Add(New(Tag("div"), Static{}, WithName("a")))

	defer func() {
		if recover() == nil {
			t.Error("Add should panic on a name collision")
		}
	}()
	reg.Add(New(Tag("div"), Static{}, WithName("a")))
}

func TestRegistryNames(t *testing.T) {
	reg := NewRegistry()
	reg.Add(
		New(Tag("div"), Static{}, WithName("b")),
		New(Tag("div"), Static{}, WithName("a")),
	)
	if got := reg.Names(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Names() = %v", got)
	}
}

func TestRegistryCompositeResolvesLazily(t *testing.T) {
	reg := NewRegistry()
	outer := New(reg.Composite("card"), Static{"class": "outer"}, WithName("outer"))
	reg.Add(outer)

	// card is not registered yet
	_, err := RenderString(context.Background(), outer.Component(Props{}, nil))
	if !IsNotFound(err) {
		t.Errorf("err = %v, want not found", err)
	}

	reg.Add(New(Tag("section"), Static{"class": "card"}, WithName("card")))
	var buf bytes.Buffer
	if err := reg.Render(context.Background(), &buf, "outer", Props{"id": "x"}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if buf.String() != `<section class="card outer" id="x"></section>` {
		t.Errorf("html = %s", buf.String())
	}
}

func TestRegistryRenderUnknown(t *testing.T) {
	var buf bytes.Buffer
	err := NewRegistry().Render(context.Background(), &buf, "nope", nil)
	if !IsNotFound(err) {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestRegistryHandler(t *testing.T) {
	reg := NewRegistry()
	reg.Add(New(Tag("div"), Func(func(p *View) Props {
		return Props{"data-size": p.String("size")}
	}), WithName("sized")))
	reg.Add(New(Tag("div"), nil, WithName("broken")))

	tests := []struct {
		name   string
		method string
		path   string
		status int
		body   string
	}{
		{"render", http.MethodGet, "/sized?size=3&title=hi", http.StatusOK, `<div data-size="3" title="hi"></div>`},
		{"flag param", http.MethodGet, "/sized?hidden", http.StatusOK, `<div data-size="" hidden></div>`},
		{"unknown box", http.MethodGet, "/nope", http.StatusNotFound, "Not found"},
		{"invalid options", http.MethodGet, "/broken", http.StatusBadRequest, "Bad request"},
		{"wrong method", http.MethodPost, "/sized", http.StatusMethodNotAllowed, "Method not allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			reg.Handler().ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if !strings.Contains(rec.Body.String(), tt.body) {
				t.Errorf("body = %q, want it to contain %q", rec.Body.String(), tt.body)
			}
		})
	}
}

func TestRegistryCustomOnError(t *testing.T) {
	reg := NewRegistry()
	var got error
	reg.OnError = func(w http.ResponseWriter, r *http.Request, err error) {
		got = err
		w.WriteHeader(http.StatusTeapot)
	}

	rec := httptest.NewRecorder()
	reg.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d", rec.Code)
	}
	if !IsNotFound(got) {
		t.Errorf("OnError got %v", got)
	}
}

func TestRegistryHandlerHead(t *testing.T) {
	reg := NewRegistry()
	reg.Add(New(Tag("div"), Static{"class": "card"}, WithName("card")))

	rec := httptest.NewRecorder()
	reg.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/card", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("HEAD body = %q, want empty", rec.Body.String())
	}
}

func TestRegistryCompositeCycle(t *testing.T) {
	tests := []struct {
		name  string
		boxes map[string]string // box name -> referenced box
	}{
		{"self", map[string]string{"loop": "loop"}},
		{"pair", map[string]string{"loop": "other", "other": "loop"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			for name, ref := range tt.boxes {
				reg.Add(New(reg.Composite(ref), Static{}, WithName(name)))
			}

			var buf bytes.Buffer
			err := reg.Render(context.Background(), &buf, "loop", Props{"id": "x"})
			if !errors.Is(err, ErrCycle) {
				t.Errorf("err = %v, want ErrCycle", err)
			}

			rec := httptest.NewRecorder()
			reg.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/loop", nil))
			if rec.Code != http.StatusInternalServerError {
				t.Errorf("status = %d, want 500", rec.Code)
			}
		})
	}
}

func TestRegistryCompositeNestedInChildren(t *testing.T) {
	reg := NewRegistry()
	reg.Add(New(Tag("div"), Static{"class": "node"}, WithName("node")))
	reg.Add(New(reg.Composite("node"), Static{}, WithName("wrap")))

	inner := reg.Composite("wrap")(Props{ChildrenKey: "x"})
	var buf bytes.Buffer
	if err := reg.Render(context.Background(), &buf, "wrap", Props{ChildrenKey: inner}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := `<div class="node"><div class="node">x</div></div>`
	if buf.String() != want {
		t.Errorf("html = %s\nwant  %s", buf.String(), want)
	}
}
