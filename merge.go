package hxbox

// MergePolicy composes resolved options into the residual props before the
// two bags are combined. It may modify residual in place; residual is always
// a fresh copy owned by the current render pass. Keys it leaves alone follow
// the default rule: residual wins over resolved.
type MergePolicy func(resolved, residual Props)

// MergeClass is the default policy. It joins the class attribute of both
// bags with a space.
var MergeClass MergePolicy = ConcatAttr(ClassKey)

// ConcatAttr returns a policy that space-joins key when both bags carry a
// non-empty string for it.
func ConcatAttr(key string) MergePolicy {
	return JoinAttr(key, " ")
}

// JoinAttr is ConcatAttr with a custom separator, e.g. JoinAttr("style", "; ").
// The resolved value comes first.
func JoinAttr(key, sep string) MergePolicy {
	return func(resolved, residual Props) {
		left, _ := resolved[key].(string)
		right, _ := residual[key].(string)
		if left != "" && right != "" {
			residual[key] = left + sep + right
		}
	}
}

// Override composes nothing: on any collision the residual value wins.
func Override(resolved, residual Props) {}

// Chain runs policies in order.
func Chain(policies ...MergePolicy) MergePolicy {
	return func(resolved, residual Props) {
		for _, p := range policies {
			if p != nil {
				p(resolved, residual)
			}
		}
	}
}
