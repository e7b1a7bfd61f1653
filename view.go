package hxbox

import (
	"fmt"
	"sort"
)

// View is a read-only window onto a props bag that records every key read
// through it. Dynamic options receive a View instead of the bag itself so the
// box can tell which props the options consumed.
//
// Only reads made through the View's accessors are recorded. If a dynamic
// options function reaches the underlying bag some other way (for example by
// capturing it in a closure), those keys are not marked consumed and are
// forwarded to the element as well.
type View struct {
	src      Props
	consumed KeySet
}

// Track wraps props in a View and returns it together with the set the View
// records into. The set is only valid for the pass that created it.
func Track(props Props) (*View, KeySet) {
	consumed := make(KeySet)
	return &View{src: props, consumed: consumed}, consumed
}

// Lookup returns the value stored under key and whether it was present.
// The key is recorded either way.
func (v *View) Lookup(key string) (any, bool) {
	v.consumed.Add(key)
	val, ok := v.src[key]
	return val, ok
}

// Get returns the value stored under key, or nil.
func (v *View) Get(key string) any {
	val, _ := v.Lookup(key)
	return val
}

// Has reports whether key is present. Asking counts as a read.
func (v *View) Has(key string) bool {
	_, ok := v.Lookup(key)
	return ok
}

// String returns the value under key formatted as a string. Missing keys
// yield "".
func (v *View) String(key string) string {
	switch val := v.Get(key).(type) {
	case nil:
		return ""
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// Bool returns the value under key if it is a bool, false otherwise.
func (v *View) Bool(key string) bool {
	b, _ := v.Get(key).(bool)
	return b
}

// Int returns the value under key as an int. Non-integer values yield 0.
func (v *View) Int(key string) int {
	switch n := v.Get(key).(type) {
	case int:
		return n
	case int8:
		return int(n)
	case int16:
		return int(n)
	case int32:
		return int(n)
	case int64:
		return int(n)
	case uint:
		return int(n)
	case uint8:
		return int(n)
	case uint16:
		return int(n)
	case uint32:
		return int(n)
	case uint64:
		return int(n)
	case float32:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

// Keys lists the keys present in the bag, sorted. Enumerating does not
// record anything; reading each key afterwards does.
func (v *View) Keys() []string {
	keys := make([]string, 0, len(v.src))
	for k := range v.src {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of keys in the bag.
func (v *View) Len() int {
	return len(v.src)
}
