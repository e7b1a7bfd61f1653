package hxbox

import (
	"reflect"
	"testing"
)

func TestTrackRecordsReads(t *testing.T) {
	src := Props{"size": 10, "title": "hi", "on": true}
	view, consumed := Track(src)

	if got := view.Get("size"); got != 10 {
		t.Errorf("Get(size) = %v, want 10", got)
	}
	if got := view.String("title"); got != "hi" {
		t.Errorf("String(title) = %q, want hi", got)
	}

	want := []string{"size", "title"}
	if got := consumed.Sorted(); !reflect.DeepEqual(got, want) {
		t.Errorf("consumed = %v, want %v", got, want)
	}
	if consumed.Has("on") {
		t.Error("unread key should not be consumed")
	}
}

func TestTrackRecordsMissingKeys(t *testing.T) {
	view, consumed := Track(Props{"a": 1})

	if v, ok := view.Lookup("missing"); ok || v != nil {
		t.Errorf("Lookup(missing) = %v, %v; want nil, false", v, ok)
	}
	if view.Has("other") {
		t.Error("Has(other) should be false")
	}
	if !consumed.Has("missing") || !consumed.Has("other") {
		t.Errorf("missing keys should be recorded, got %v", consumed.Sorted())
	}
}

func TestViewDoesNotMutateSource(t *testing.T) {
	src := Props{"a": 1, "b": "two"}
	view, _ := Track(src)

	view.Get("a")
	view.Int("b")
	view.Bool("c")

	if !reflect.DeepEqual(src, Props{"a": 1, "b": "two"}) {
		t.Errorf("source changed: %v", src)
	}
}

func TestViewKeysDoesNotRecord(t *testing.T) {
	view, consumed := Track(Props{"b": 1, "a": 2})

	keys := view.Keys()
	if !reflect.DeepEqual(keys, []string{"a", "b"}) {
		t.Errorf("Keys() = %v, want [a b]", keys)
	}
	if view.Len() != 2 {
		t.Errorf("Len() = %d, want 2", view.Len())
	}
	if len(consumed) != 0 {
		t.Errorf("enumerating should not consume, got %v", consumed.Sorted())
	}
}

type label string

func (l label) String() string { return "label:" + string(l) }

func TestViewTypedAccessors(t *testing.T) {
	view, _ := Track(Props{
		"int":      int64(7),
		"float":    3.9,
		"str":      "x",
		"num":      42,
		"stringer": label("y"),
		"flag":     true,
		"notflag":  "true",
	})

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Int(int)", view.Int("int"), 7},
		{"Int(float)", view.Int("float"), 3},
		{"Int(str)", view.Int("str"), 0},
		{"Int(missing)", view.Int("missing"), 0},
		{"String(num)", view.String("num"), "42"},
		{"String(stringer)", view.String("stringer"), "label:y"},
		{"String(missing)", view.String("missing"), ""},
		{"Bool(flag)", view.Bool("flag"), true},
		{"Bool(notflag)", view.Bool("notflag"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestKeySetNil(t *testing.T) {
	var s KeySet
	if s.Has("a") {
		t.Error("nil set should be empty")
	}
	if got := s.Sorted(); len(got) != 0 {
		t.Errorf("Sorted() = %v, want empty", got)
	}
}
