// Package container provides a lazy, definition-driven service container.
//
// # Overview
//
// A Container is created from three things: a table of service definitions,
// a nested parameter tree and a type registry. Nothing is built up front; the
// first Get of a service id constructs it, wires its dependencies and caches
// the instance for the lifetime of the container.
//
// Go has no way to construct a type from its name, so every class a
// definition may name is registered in a Types registry as a factory.
//
// # Definitions
//
//	defs := map[string]*container.Definition{
//	    "logger": {Class: "Logger"},
//	    "app": {
//	        Class:     "App",
//	        Arguments: container.Args(container.Ref("logger"), container.Param("app.name")),
//	        Calls: []container.Call{
//	            {Method: "setName", Arguments: container.Args("demo")},
//	        },
//	    },
//	}
//
// An argument is a Literal, a ServiceReference (the instance of another
// service) or a ParameterReference (a dotted path into the parameter tree).
//
// # Types
//
//	types := container.NewTypes()
//	types.RegisterConstructor("Logger", NewLogger)  // func() *Logger
//	types.RegisterConstructor("App", NewApp)        // func(*Logger, string) *App
//
// Setter calls use an invoker registered with RegisterMethod, or else the
// exported method of the same name ("setName" calls SetName).
//
// # Resolving
//
//	c := container.New(defs, container.Parameters{"app": map[string]any{"name": "x"}}, types)
//
//	raw, err := c.Get("app")
//	app, err := container.Resolve[*App](c, "app")
//	host, err := c.GetParameter("db.host")
//
// # Errors
//
// Get returns a *ServiceNotFoundError for unknown ids and a *ConfigError for
// definitions that cannot be built: no class, unknown class, factory failure,
// missing or uninvocable setter, or a circular reference. Parameter lookups
// fail with *ParameterNotFoundError. Definitions are only checked when first
// resolved.
//
// A definition whose construction fails stays locked: later attempts report a
// circular reference. Use WithRetryOnFailure to unlock it instead.
//
// # Service Providers
//
//	b := container.NewBuilder()
//	b.Register(&AppServiceProvider{})
//	c, err := b.Build()
package container
