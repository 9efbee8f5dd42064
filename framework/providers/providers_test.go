package providers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-locator/framework/container"
	"github.com/km-arc/go-locator/framework/providers"
	"github.com/km-arc/go-locator/framework/routing"
)

func build(t *testing.T, defs map[string]*container.Definition, params container.Parameters) *container.Container {
	t.Helper()
	c, err := container.NewBuilder().
		Register(&providers.FrameworkProvider{}).
		Parameters(container.Parameters{"log": map[string]any{"level": "error"}}).
		Parameters(params).
		DefineAll(defs).
		Build()
	require.NoError(t, err)
	return c
}

func TestFrameworkProvider_ServerWiresRouterAndInspector(t *testing.T) {
	c := build(t, nil, container.Parameters{"http": map[string]any{"addr": ":9999"}})

	srv, err := container.Resolve[*http.Server](c, "http.server")
	require.NoError(t, err)
	assert.Equal(t, ":9999", srv.Addr)

	router, err := container.Resolve[*routing.Router](c, "router")
	require.NoError(t, err)
	assert.Same(t, router, srv.Handler)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/_container/services", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"id":"http.server"`)
}

func TestFrameworkProvider_ExplicitSetter(t *testing.T) {
	c := build(t, map[string]*container.Definition{
		"slow.server": {
			Class:     "Server",
			Arguments: container.Args(":0", container.Ref("router")),
			Calls:     []container.Call{{Method: "setReadTimeout", Arguments: container.Args(float64(1.5))}},
		},
	}, nil)

	srv, err := container.Resolve[*http.Server](c, "slow.server")
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, srv.ReadTimeout)
}

func TestFrameworkProvider_InvalidLoggerConfig(t *testing.T) {
	c := build(t, nil, container.Parameters{"log": map[string]any{"format": "xml"}})

	_, err := c.Get("router")
	assert.ErrorIs(t, err, container.ErrConfig)
}
