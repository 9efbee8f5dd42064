package inspect_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-locator/framework/container"
	"github.com/km-arc/go-locator/framework/inspect"
)

type widget struct{ name string }

func newHandler(t *testing.T) (*container.Container, *inspect.Handler) {
	t.Helper()
	types := container.NewTypes()
	types.RegisterConstructor("Widget", func(name string) *widget { return &widget{name: name} })
	c := container.New(map[string]*container.Definition{
		"widget": {Class: "Widget", Arguments: container.Args(container.Param("widget.name"))},
		"pair":   {Class: "Widget", Arguments: container.Args(container.Ref("widget"))},
		"bad":    {Class: "Nope"},
	}, container.Parameters{"widget": map[string]any{"name": "w1"}}, types)

	return c, inspect.NewHandler(c, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func get(t *testing.T, h http.Handler, path string) (int, map[string]any) {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return rr.Code, body
}

func TestHandler_ListServices(t *testing.T) {
	c, h := newHandler(t)
	c.MustGet("widget")

	code, body := get(t, h, "/services")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{
		map[string]any{"id": "bad", "class": "Nope", "initialized": false},
		map[string]any{"id": "pair", "class": "Widget", "initialized": false},
		map[string]any{"id": "widget", "class": "Widget", "initialized": true},
	}, body["data"])
}

func TestHandler_ShowService(t *testing.T) {
	c, h := newHandler(t)

	code, body := get(t, h, "/services/widget")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"id": "widget", "type": "*inspect_test.widget"}, body["data"])
	assert.True(t, c.Initialized("widget"))

	code, _ = get(t, h, "/services/missing")
	assert.Equal(t, http.StatusNotFound, code)

	code, body = get(t, h, "/services/bad")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Contains(t, body["message"], `class "Nope" does not exist`)
}

func TestHandler_Dependencies(t *testing.T) {
	_, h := newHandler(t)

	code, body := get(t, h, "/services/pair/dependencies")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{"widget"}, body["data"])

	code, body = get(t, h, "/services/widget/dependencies")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{}, body["data"])
}

func TestHandler_Parameter(t *testing.T) {
	_, h := newHandler(t)

	code, body := get(t, h, "/parameters/widget.name")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"path": "widget.name", "value": "w1"}, body["data"])

	code, body = get(t, h, "/parameters/widget.missing")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, `container: parameter "widget.missing" is not defined`, body["message"])
}
