package container

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
)

// SelfID is the id under which every container resolves to itself, so that
// definitions can inject the container with Ref(SelfID).
const SelfID = "service_container"

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger used to report service construction.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRetryOnFailure makes a failed construction return its definition to the
// unresolved state, so that a later Get starts over. Without it a definition
// that failed mid-construction keeps reporting a circular reference for the
// lifetime of the container.
func WithRetryOnFailure() Option {
	return func(c *Container) { c.retryOnFailure = true }
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container lazily builds and caches one instance per service id.
//
// Definitions and parameters are handed over once, at creation, and are not
// validated until the service that uses them is first requested.
//
// Get holds the container lock for the whole resolution. Factories and setters
// running on the resolving goroutine may call back into the container; calls
// from any other goroutine wait for the resolution to finish.
type Container struct {
	mu sync.RWMutex

	// goroutine holding mu for a Get, 0 when idle
	owner atomic.Uint64

	// id → definition + construction state
	entries map[string]*entry

	// id → resolved singleton instance
	instances map[string]any

	parameters Parameters
	types      *Types

	logger         *slog.Logger
	retryOnFailure bool
}

// New creates a container over the given definitions, parameter tree and
// type registry. A nil types registry is treated as empty. A definition under
// SelfID is ignored with a warning, since that id always names the container.
func New(definitions map[string]*Definition, parameters Parameters, types *Types, opts ...Option) *Container {
	if parameters == nil {
		parameters = Parameters{}
	}
	if types == nil {
		types = NewTypes()
	}
	c := &Container{
		entries:    make(map[string]*entry, len(definitions)),
		instances:  make(map[string]any, len(definitions)),
		parameters: parameters,
		types:      types,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	for id, def := range definitions {
		if id == SelfID {
			c.logger.Warn("ignoring definition for reserved id", slog.String("id", id))
			continue
		}
		c.entries[id] = &entry{def: def}
	}
	return c
}

// ── Lookup ────────────────────────────────────────────────────────────────────

// Has reports whether a definition exists for id. It never builds anything.
func (c *Container) Has(id string) bool {
	if id == SelfID {
		return true
	}
	defer c.rlock()()
	_, ok := c.entries[id]
	return ok
}

// Get returns the instance for id, building it on first use.
//
//	app, err := c.Get("app")
func (c *Container) Get(id string) (any, error) {
	if c.resolving() {
		return c.get(id)
	}
	c.mu.Lock()
	c.owner.Store(goid())
	defer func() {
		c.owner.Store(0)
		c.mu.Unlock()
	}()
	return c.get(id)
}

// MustGet is like Get but panics on error.
func (c *Container) MustGet(id string) any {
	instance, err := c.Get(id)
	if err != nil {
		panic(err)
	}
	return instance
}

// GetParameter returns the value at the dotted path in the parameter tree.
func (c *Container) GetParameter(path string) (any, error) {
	return c.parameters.Resolve(path)
}

// Initialized reports whether the instance for id has already been built.
func (c *Container) Initialized(id string) bool {
	if id == SelfID {
		return true
	}
	defer c.rlock()()
	_, ok := c.instances[id]
	return ok
}

// ServiceIDs returns the ids of all defined services, sorted.
func (c *Container) ServiceIDs() []string {
	defer c.rlock()()
	out := make([]string, 0, len(c.entries))
	for id := range c.entries {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Definition returns a copy of the definition registered for id.
func (c *Container) Definition(id string) (Definition, bool) {
	defer c.rlock()()
	e, ok := c.entries[id]
	if !ok || e.def == nil {
		return Definition{}, false
	}
	return *e.def, true
}

// Dependencies returns the service ids that id references directly.
func (c *Container) Dependencies(id string) ([]string, error) {
	defer c.rlock()()
	e, ok := c.entries[id]
	if !ok {
		return nil, &ServiceNotFoundError{ID: id}
	}
	return e.def.References(), nil
}

// ── Resolution ────────────────────────────────────────────────────────────────

// resolving reports whether the calling goroutine is the one inside Get, that
// is a factory or setter calling back into the container.
func (c *Container) resolving() bool {
	owner := c.owner.Load()
	return owner != 0 && owner == goid()
}

// rlock takes the read lock unless the caller already holds the write lock,
// and returns the matching unlock.
func (c *Container) rlock() func() {
	if c.resolving() {
		return func() {}
	}
	c.mu.RLock()
	return c.mu.RUnlock
}

// get is the recursive resolver; the caller holds c.mu.
func (c *Container) get(id string) (any, error) {
	if id == SelfID {
		return c, nil
	}
	e, ok := c.entries[id]
	if !ok {
		return nil, &ServiceNotFoundError{ID: id}
	}
	if instance, ok := c.instances[id]; ok {
		return instance, nil
	}

	instance, err := c.createService(id, e)
	if err != nil {
		return nil, err
	}
	c.instances[id] = instance
	return instance, nil
}

func (c *Container) createService(id string, e *entry) (any, error) {
	def := e.def
	if def == nil {
		return nil, configError(id, "definition is not structured", nil)
	}
	if def.Class == "" {
		return nil, configError(id, "definition has no class", nil)
	}
	factory, ok := c.types.factory(def.Class)
	if !ok {
		return nil, configError(id, fmt.Sprintf("class %q does not exist", def.Class), nil)
	}
	if e.state == stateInProgress {
		return nil, configError(id, "circular reference detected", ErrCircularReference)
	}

	e.state = stateInProgress
	c.logger.Debug("creating service", slog.String("id", id), slog.String("class", def.Class))

	instance, err := c.build(id, def, factory)
	if err != nil {
		if c.retryOnFailure {
			e.state = stateUnresolved
		}
		c.logger.Warn("service creation failed",
			slog.String("id", id),
			slog.String("state", e.state.String()),
			slog.Any("error", err))
		return nil, err
	}

	e.state = stateResolved
	c.logger.Debug("service created", slog.String("id", id), slog.String("type", fmt.Sprintf("%T", instance)))
	return instance, nil
}

// build runs constructor injection followed by setter injection.
func (c *Container) build(id string, def *Definition, factory Factory) (any, error) {
	args, err := c.resolveArguments(id, def.Arguments)
	if err != nil {
		return nil, err
	}
	instance, err := factory(args)
	if err != nil {
		return nil, configError(id, fmt.Sprintf("class %q is not constructible", def.Class), err)
	}
	if len(def.Calls) == 0 {
		return instance, nil
	}

	invokers := make([]Invoker, len(def.Calls))
	for i, call := range def.Calls {
		if call.Method == "" {
			return nil, configError(id, fmt.Sprintf("call #%d has no method", i), nil)
		}
		inv, ok := c.types.invoker(def.Class, call.Method, instance)
		if !ok {
			return nil, configError(id, fmt.Sprintf("method %q on class %q", call.Method, def.Class), errNotInvocable)
		}
		invokers[i] = inv
	}

	for i, call := range def.Calls {
		args, err := c.resolveArguments(id, call.Arguments)
		if err != nil {
			return nil, err
		}
		if err := invokers[i](instance, args); err != nil {
			return nil, configError(id, fmt.Sprintf("calling %q failed", call.Method), err)
		}
	}
	return instance, nil
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve is a generic helper that calls Get and type-asserts the result.
//
//	logger, err := container.Resolve[*slog.Logger](c, "logger")
func Resolve[T any](c *Container, id string) (T, error) {
	var zero T
	instance, err := c.Get(id)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("container: Resolve[%T]: [%s] resolved to %T", zero, id, instance)
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on error.
func MustResolve[T any](c *Container, id string) T {
	typed, err := Resolve[T](c, id)
	if err != nil {
		panic(err)
	}
	return typed
}
