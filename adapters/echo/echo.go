// Package hxboxecho provides Echo framework integration for hxbox registries.
//
// Mount a registry onto an Echo instance or group:
//
//	e := echo.New()
//	reg := hxboxecho.Mount(e)
//	reg.Add(card, badge)
//
// Or mount on a group with middleware:
//
//	g := e.Group("/app", authMiddleware)
//	reg := hxboxecho.MountGroup(g, hxboxecho.WithRegistry(defs))
package hxboxecho

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/pthm/hxbox"
)

// Option configures the Mount and MountGroup functions.
type Option func(*options)

type options struct {
	reg  *hxbox.Registry
	path string
}

// WithRegistry mounts an existing registry instead of a fresh one, e.g. one
// built from a definitions file.
func WithRegistry(reg *hxbox.Registry) Option {
	return func(o *options) {
		o.reg = reg
	}
}

// WithPath sets the URL path prefix for box routes.
// Defaults to "/_box/".
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// Mount mounts a registry's handler on an Echo instance and returns the
// registry. Each box is served at <path><name>, with query parameters as
// props.
//
//	e := echo.New()
//	reg := hxboxecho.Mount(e)
//	reg.Add(card)
//	// GET /_box/card?class=red
func Mount(e *echo.Echo, opts ...Option) *hxbox.Registry {
	o := newOptions(opts)
	e.Any(o.path+"*", handler(o.reg))
	return o.reg
}

// MountGroup mounts a registry's handler on an Echo group.
// This allows boxes to share middleware with the group (auth, logging, etc.).
func MountGroup(g *echo.Group, opts ...Option) *hxbox.Registry {
	o := newOptions(opts)
	g.Any(o.path+"*", handler(o.reg))
	return o.reg
}

func newOptions(opts []Option) *options {
	o := &options{path: "/_box/"}
	for _, opt := range opts {
		opt(o)
	}
	if o.reg == nil {
		o.reg = hxbox.NewRegistry()
	}
	return o
}

// handler serves the box named by the wildcard segment, whatever prefix the
// route was mounted under.
func handler(reg *hxbox.Registry) echo.HandlerFunc {
	h := reg.Handler()
	return func(c echo.Context) error {
		req := c.Request()
		u := *req.URL
		u.Path = "/" + c.Param("*")

		r := req.Clone(req.Context())
		r.URL = &u
		h.ServeHTTP(c.Response(), r)
		return nil
	}
}

// Render writes a templ component to the Echo response.
//
//	func handler(c echo.Context) error {
//	    return hxboxecho.Render(c, card.Component(props, nil))
//	}
func Render(c echo.Context, component templ.Component) error {
	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return component.Render(c.Request().Context(), c.Response())
}
