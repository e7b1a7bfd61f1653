// Package hxbox builds polymorphic, style-capable components ("boxes") for
// server-rendered Go applications using Templ.
//
// A box pairs a base element with an options value. The base is a primitive
// Tag such as "div" or a Composite component. The options contribute extra
// props on every render. Props the caller passes that the options did not
// consume are forwarded to the base element untouched.
//
// # Core Concepts
//
// Options are either Static or dynamic. Static options are merged as-is:
//
//	card := hxbox.New(hxbox.Tag("div"), hxbox.Static{"class": "card"})
//	card.Component(hxbox.Props{"class": "red", "id": "x"}, nil)
//	// <div class="card red" id="x"></div>
//
// Dynamic options are computed from the props on each render. They see the
// props through a View that records every key they read, and those keys are
// consumed:
//
//	sized := hxbox.New(hxbox.Tag("div"), hxbox.Func(func(p *hxbox.View) hxbox.Props {
//	    return hxbox.Props{"width": p.Get("size")}
//	}))
//	sized.Component(hxbox.Props{"size": 10, "title": "hi"}, nil)
//	// <div title="hi" width="10"></div>
//
// Dynamic options can also be written as expressions, evaluated by expr
// (Expr), goja (Script) or CEL (CEL). They follow the same rule: whatever
// the evaluation reads through the View is consumed.
//
// # Merging
//
// The final bag is the resolved options overlaid with the forwarded props,
// so forwarded props win on a plain collision. Before that, the box's
// MergePolicy may compose the two; the default, MergeClass, joins class
// attributes. Policies are bound per box with WithMerge.
//
// # Refs
//
// Build takes an optional ref that is forwarded under RefKey. HTMLElement
// fills in an *ElementRef with the tag and attributes it rendered.
//
// # Registration
//
// Boxes can be registered by name in a Registry, which resolves composite
// references lazily and can serve boxes over HTTP for previews:
//
//	reg := hxbox.NewRegistry()
//	reg.Add(card, sized)
//	http.Handle("/box/", http.StripPrefix("/box", reg.Handler()))
//
// # Design Rationale
//
// Each render pass works on its own copies and key set, so a Box holds no
// mutable state and can be shared between goroutines. Consumption is decided
// by observed reads, not by declarations. Reads that bypass the View are
// not observed and those keys are forwarded as well.
package hxbox
