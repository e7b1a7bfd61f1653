package hxbox

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestRenderHTTP(t *testing.T) {
	box := New(Tag("p"), Static{"class": "note"})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	if err := Render(rec, req, box.Component(Props{ChildrenKey: "hello"}, nil)); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Body.String() != `<p class="note">hello</p>` {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestClasses(t *testing.T) {
	tests := []struct {
		name  string
		parts []any
		want  string
	}{
		{"strings", []any{"a", "", " b "}, "a b"},
		{"slice", []any{[]string{"a b", "c"}}, "a b c"},
		{"map", []any{"btn", map[string]bool{"on": true, "off": false, "z": true}}, "btn on z"},
		{"ignored types", []any{1, nil, "x"}, "x"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classes(tt.parts...); got != tt.want {
				t.Errorf("Classes() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQueryProps(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?a=1&b=x&b=y&flag", nil)
	got := QueryProps(req)

	want := Props{"a": "1", "b": []string{"x", "y"}, "flag": true}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("QueryProps() = %v, want %v", got, want)
	}
}
