package hxbox

import "sort"

// Props is the property bag handed to a box on each invocation.
type Props map[string]any

// Reserved keys that the renderer treats specially.
const (
	// RefKey is where a forwarded ref is placed in the final bag.
	RefKey = "ref"
	// ChildrenKey holds the element's children.
	ChildrenKey = "children"
	// ClassKey is the class-like attribute composed by MergeClass.
	ClassKey = "class"
)

// Clone returns a shallow copy. A nil bag clones to an empty one.
func (p Props) Clone() Props {
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Omit returns a shallow copy without the keys in set.
func (p Props) Omit(set KeySet) Props {
	out := make(Props, len(p))
	for k, v := range p {
		if set.Has(k) {
			continue
		}
		out[k] = v
	}
	return out
}

// Keys returns the bag's keys in sorted order.
func (p Props) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// KeySet is a set of property keys.
type KeySet map[string]struct{}

// Add inserts key into the set.
func (s KeySet) Add(key string) {
	s[key] = struct{}{}
}

// Has reports whether key is in the set. A nil set is empty.
func (s KeySet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Sorted returns the members in sorted order.
func (s KeySet) Sorted() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
