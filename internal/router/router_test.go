package router_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/ctxmanager/internal/router"
)

func TestResolve_HappyPath(t *testing.T) {
	c := qt.New(t)
	r := router.New("/context-manager")

	cases := []struct {
		name       string
		path       string
		wantName   string
		wantParams map[string]string
	}{
		{"base path", "/context-manager", router.ContextList, map[string]string{}},
		{"base path with slash", "/context-manager/", router.ContextList, map[string]string{}},
		{"detail", "/context-manager/context/ctx_1", router.ContextDetail, map[string]string{"id": "ctx_1"}},
		{"escaped id", "/context-manager/context/a%20b", router.ContextDetail, map[string]string{"id": "a b"}},
		{"full url", "http://localhost:8080/context-manager/context/ctx_2?tab=memory", router.ContextDetail, map[string]string{"id": "ctx_2"}},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			got, ok := r.Resolve(tc.path)
			c.Assert(ok, qt.IsTrue)
			c.Assert(got.Name, qt.Equals, tc.wantName)
			c.Assert(got.Params, qt.DeepEquals, tc.wantParams)
		})
	}
}

func TestResolve_FailurePath(t *testing.T) {
	c := qt.New(t)
	r := router.New("/context-manager")

	for _, p := range []string{
		"/",
		"/context-manager-old/context/x",
		"/context-manager/context",
		"/context-manager/context/",
		"/context-manager/context/x/extra",
		"/context-manager/contexts/x",
	} {
		c.Run(p, func(c *qt.C) {
			_, ok := r.Resolve(p)
			c.Assert(ok, qt.IsFalse)
		})
	}
}

func TestResolve_RootBase(t *testing.T) {
	c := qt.New(t)
	r := router.New("")
	c.Assert(r.Base(), qt.Equals, "")

	got, ok := r.Resolve("/")
	c.Assert(ok, qt.IsTrue)
	c.Assert(got.Name, qt.Equals, router.ContextList)

	got, ok = r.Resolve("/context/abc")
	c.Assert(ok, qt.IsTrue)
	c.Assert(got.Params["id"], qt.Equals, "abc")
}

func TestPath(t *testing.T) {
	c := qt.New(t)
	r := router.New("context-manager/")

	p, err := r.Path(router.ContextList, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(p, qt.Equals, "/context-manager/")

	p, err = r.Path(router.ContextDetail, map[string]string{"id": "a b"})
	c.Assert(err, qt.IsNil)
	c.Assert(p, qt.Equals, "/context-manager/context/a%20b")

	c.Run("round trip", func(c *qt.C) {
		got, ok := r.Resolve(p)
		c.Assert(ok, qt.IsTrue)
		c.Assert(got.Params["id"], qt.Equals, "a b")
	})

	c.Run("missing param", func(c *qt.C) {
		_, err := r.Path(router.ContextDetail, nil)
		c.Assert(err, qt.ErrorMatches, `router: missing param "id" for context-detail`)
	})

	c.Run("unknown view", func(c *qt.C) {
		_, err := r.Path("settings", nil)
		c.Assert(err, qt.ErrorMatches, `router: unknown view "settings"`)
	})
}
