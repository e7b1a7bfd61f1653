package hxbox

// ElementRef captures what a primitive element was rendered with. Pass one
// as the ref argument of Box.Build; HTMLElement fills it in.
type ElementRef struct {
	Tag   string
	Attrs Props
}

func (r *ElementRef) attach(tag string, props Props) {
	r.Tag = tag
	r.Attrs = make(Props, len(props))
	for k, v := range props {
		if k == RefKey || k == ChildrenKey {
			continue
		}
		r.Attrs[k] = v
	}
}

// Attached reports whether the ref has been filled in by a render.
func (r *ElementRef) Attached() bool {
	return r != nil && r.Tag != ""
}
