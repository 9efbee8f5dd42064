package container

import (
	"fmt"
	"maps"
)

// Builder collects everything a Container is created from: definitions, the
// parameter tree and the type registry.
//
//	b := container.NewBuilder()
//	b.Register(&providers.FrameworkProvider{})
//	b.Parameters(file.Parameters)
//	b.DefineAll(file.Services)
//	c, err := b.Build(container.WithLogger(logger))
type Builder struct {
	definitions map[string]*Definition
	parameters  Parameters
	types       *Types
	providers   *ProviderRegistry
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		definitions: make(map[string]*Definition),
		parameters:  Parameters{},
		types:       NewTypes(),
		providers:   NewProviderRegistry(),
	}
}

// Types returns the type registry the container will be built with.
func (b *Builder) Types() *Types { return b.types }

// Define adds or replaces the definition for id.
func (b *Builder) Define(id string, def *Definition) *Builder {
	b.definitions[id] = def
	return b
}

// DefineAll adds or replaces every definition in defs.
func (b *Builder) DefineAll(defs map[string]*Definition) *Builder {
	maps.Copy(b.definitions, defs)
	return b
}

// Parameters deep-merges params into the parameter tree.
func (b *Builder) Parameters(params Parameters) *Builder {
	b.parameters.Merge(params)
	return b
}

// Register adds a provider and calls its Register method. Registering the
// same provider twice is a no-op.
func (b *Builder) Register(provider ServiceProvider) *Builder {
	if b.providers.Add(provider) {
		provider.Register(b)
	}
	return b
}

// Providers returns the provider registry.
func (b *Builder) Providers() *ProviderRegistry { return b.providers }

// Build creates the container and boots the registered providers.
func (b *Builder) Build(opts ...Option) (*Container, error) {
	c := New(maps.Clone(b.definitions), b.parameters, b.types, opts...)
	if err := b.providers.Boot(c); err != nil {
		return nil, fmt.Errorf("booting providers: %w", err)
	}
	return c, nil
}
