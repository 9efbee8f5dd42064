// Package inspect exposes a read-only HTTP view of a container.
//
//	GET /services                     defined services with class and state
//	GET /services/{id}                resolve a service and report its type
//	GET /services/{id}/dependencies   ids the service references
//	GET /parameters/{path}            value at a dotted parameter path
package inspect

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/km-arc/go-locator/framework/container"
	gohttp "github.com/km-arc/go-locator/framework/http"
	"github.com/km-arc/go-locator/framework/routing"
)

// Handler serves the inspection routes for one container.
type Handler struct {
	c      *container.Container
	logger *slog.Logger
	router *routing.Router
}

// ServiceInfo is one row of the service listing.
type ServiceInfo struct {
	ID          string `json:"id"`
	Class       string `json:"class"`
	Initialized bool   `json:"initialized"`
}

// NewHandler builds the inspection handler for c.
func NewHandler(c *container.Container, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{c: c, logger: logger, router: routing.New(logger)}
	h.router.Get("/services", h.listServices)
	h.router.Get("/services/{id}", h.showService)
	h.router.Get("/services/{id}/dependencies", h.dependencies)
	h.router.Get("/parameters/{path}", h.parameter)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// Services lists every defined service.
func Services(c *container.Container) []ServiceInfo {
	ids := c.ServiceIDs()
	out := make([]ServiceInfo, 0, len(ids))
	for _, id := range ids {
		def, _ := c.Definition(id)
		out = append(out, ServiceInfo{ID: id, Class: def.Class, Initialized: c.Initialized(id)})
	}
	return out
}

func (h *Handler) listServices(w http.ResponseWriter, _ *http.Request) {
	gohttp.NewResponse(w).Success(Services(h.c))
}

func (h *Handler) showService(w http.ResponseWriter, r *http.Request) {
	id := routing.Param(r, "id")
	instance, err := h.c.Get(id)
	if err != nil {
		h.fail(w, err)
		return
	}
	gohttp.NewResponse(w).Success(map[string]any{
		"id":   id,
		"type": fmt.Sprintf("%T", instance),
	})
}

func (h *Handler) dependencies(w http.ResponseWriter, r *http.Request) {
	deps, err := h.c.Dependencies(routing.Param(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	if deps == nil {
		deps = []string{}
	}
	gohttp.NewResponse(w).Success(deps)
}

func (h *Handler) parameter(w http.ResponseWriter, r *http.Request) {
	path := routing.Param(r, "path")
	value, err := h.c.GetParameter(path)
	if err != nil {
		h.fail(w, err)
		return
	}
	gohttp.NewResponse(w).Success(map[string]any{"path": path, "value": value})
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	res := gohttp.NewResponse(w)
	switch {
	case errors.Is(err, container.ErrServiceNotFound), errors.Is(err, container.ErrParameterNotFound):
		res.NotFound(err.Error())
	default:
		h.logger.Error("inspection failed", slog.Any("error", err))
		res.ServerError(err.Error())
	}
}
