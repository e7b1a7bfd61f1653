// Package definition loads box definitions from YAML files.
//
// A definitions file lists boxes by name:
//
//	boxes:
//	  - name: card
//	    base: div
//	    static:
//	      class: card
//	  - name: sized-card
//	    base: "@card"
//	    expr: '{"width": size}'
//	    merge: override
//
// base is a tag name, or @name to render another box from the same file.
// Each box takes at most one of static, expr, script or cel; a box with none
// has empty static options.
package definition

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pthm/hxbox"
)

// File is a parsed definitions file.
type File struct {
	Boxes []Definition `yaml:"boxes"`
}

// Definition describes one box.
type Definition struct {
	Name   string         `yaml:"name"`
	Base   string         `yaml:"base"`
	Static map[string]any `yaml:"static,omitempty"`
	Expr   string         `yaml:"expr,omitempty"`
	Script string         `yaml:"script,omitempty"`
	CEL    string         `yaml:"cel,omitempty"`
	Merge  string         `yaml:"merge,omitempty"`
}

// Error reports a problem with one definition.
type Error struct {
	Box   string
	Field string
	Err   error
}

func (e *Error) Error() string {
	if e.Box == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("box %q: %s: %v", e.Box, e.Field, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	errMissing       = errors.New("required")
	errTooManyKinds  = errors.New("only one of static, expr, script, cel may be set")
	errUnknownMerge  = errors.New("unknown merge policy")
	errEmptyBaseName = errors.New("empty box reference")
)

// Parse decodes a definitions file and validates each entry.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse definitions: %w", err)
	}
	seen := make(map[string]bool, len(f.Boxes))
	for i, d := range f.Boxes {
		if err := d.validate(); err != nil {
			return nil, err
		}
		if seen[d.Name] {
			return nil, &Error{Box: d.Name, Field: fmt.Sprintf("boxes[%d].name", i), Err: hxbox.ErrDuplicate}
		}
		seen[d.Name] = true
	}
	if err := f.checkCycles(); err != nil {
		return nil, err
	}
	return &f, nil
}

// checkCycles rejects boxes whose @ references lead back to themselves.
// References to names outside the file are left to render time.
func (f *File) checkCycles() error {
	refs := make(map[string]string, len(f.Boxes))
	for _, d := range f.Boxes {
		if ref, ok := strings.CutPrefix(d.Base, "@"); ok {
			refs[d.Name] = ref
		}
	}
	for _, d := range f.Boxes {
		path := []string{d.Name}
		visited := map[string]bool{d.Name: true}
		for cur := d.Name; ; {
			next, ok := refs[cur]
			if !ok {
				break
			}
			path = append(path, next)
			if next == d.Name {
				return &Error{Box: d.Name, Field: "base", Err: fmt.Errorf("%w: %s", hxbox.ErrCycle, strings.Join(path, " -> "))}
			}
			if visited[next] {
				break
			}
			visited[next] = true
			cur = next
		}
	}
	return nil
}

// LoadFile reads and parses the definitions file at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Registry compiles every definition into a box and registers it. opts are
// applied to every box before its own merge setting.
func (f *File) Registry(logger *slog.Logger, opts ...hxbox.Option) (*hxbox.Registry, error) {
	reg := hxbox.NewRegistry()
	for _, d := range f.Boxes {
		b, err := d.Build(reg, logger, opts...)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(b); err != nil {
			return nil, &Error{Box: d.Name, Field: "name", Err: err}
		}
	}
	return reg, nil
}

// Build compiles the definition into a box. Composite references resolve
// against reg when the box renders.
func (d Definition) Build(reg *hxbox.Registry, logger *slog.Logger, opts ...hxbox.Option) (*hxbox.Box, error) {
	options, err := d.Options()
	if err != nil {
		return nil, err
	}
	merge, err := ParseMerge(d.Merge)
	if err != nil {
		return nil, &Error{Box: d.Name, Field: "merge", Err: err}
	}
	base, err := d.element(reg)
	if err != nil {
		return nil, err
	}

	all := append([]hxbox.Option{}, opts...)
	all = append(all, hxbox.WithName(d.Name), hxbox.WithMerge(merge), hxbox.WithLogger(logger))
	return hxbox.New(base, options, all...), nil
}

// Options compiles the definition's options.
func (d Definition) Options() (hxbox.Options, error) {
	var (
		options hxbox.Options
		err     error
		field   string
	)
	switch {
	case d.Expr != "":
		field = "expr"
		options, err = hxbox.Expr(d.Expr)
	case d.Script != "":
		field = "script"
		options, err = hxbox.Script(d.Script)
	case d.CEL != "":
		field = "cel"
		options, err = hxbox.CEL(d.CEL)
	default:
		options = hxbox.Static(d.Static)
	}
	if err != nil {
		return nil, &Error{Box: d.Name, Field: field, Err: err}
	}
	return options, nil
}

func (d Definition) element(reg *hxbox.Registry) (hxbox.Element, error) {
	if ref, ok := strings.CutPrefix(d.Base, "@"); ok {
		if ref == "" {
			return nil, &Error{Box: d.Name, Field: "base", Err: errEmptyBaseName}
		}
		return reg.Composite(ref), nil
	}
	return hxbox.Tag(d.Base), nil
}

func (d Definition) validate() error {
	if d.Name == "" {
		return &Error{Field: "name", Err: errMissing}
	}
	if d.Base == "" {
		return &Error{Box: d.Name, Field: "base", Err: errMissing}
	}
	kinds := 0
	if d.Static != nil {
		kinds++
	}
	for _, src := range []string{d.Expr, d.Script, d.CEL} {
		if src != "" {
			kinds++
		}
	}
	if kinds > 1 {
		return &Error{Box: d.Name, Field: "options", Err: errTooManyKinds}
	}
	if _, err := ParseMerge(d.Merge); err != nil {
		return &Error{Box: d.Name, Field: "merge", Err: err}
	}
	return nil
}

// ParseMerge maps a merge setting to a policy:
//
//	""  or "class"      MergeClass
//	"override"          Override
//	"concat:<attr>"     ConcatAttr(attr)
//	"join:<attr>:<sep>" JoinAttr(attr, sep)
//
// Several settings may be combined with "+", e.g. "class+join:style:; ".
func ParseMerge(s string) (hxbox.MergePolicy, error) {
	if s == "" {
		return hxbox.MergeClass, nil
	}
	parts := strings.Split(s, "+")
	if len(parts) > 1 {
		policies := make([]hxbox.MergePolicy, 0, len(parts))
		for _, part := range parts {
			p, err := ParseMerge(part)
			if err != nil {
				return nil, err
			}
			policies = append(policies, p)
		}
		return hxbox.Chain(policies...), nil
	}

	switch {
	case s == "class":
		return hxbox.MergeClass, nil
	case s == "override":
		return hxbox.Override, nil
	case strings.HasPrefix(s, "concat:"):
		attr := strings.TrimPrefix(s, "concat:")
		if attr == "" {
			break
		}
		return hxbox.ConcatAttr(attr), nil
	case strings.HasPrefix(s, "join:"):
		attr, sep, ok := strings.Cut(strings.TrimPrefix(s, "join:"), ":")
		if !ok || attr == "" {
			break
		}
		return hxbox.JoinAttr(attr, sep), nil
	}
	return nil, fmt.Errorf("%w %q", errUnknownMerge, s)
}
