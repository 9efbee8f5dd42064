package container

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider contributes classes, definitions and parameters to a
// Builder, and may use the finished container once it exists.
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(b *container.Builder) {
//	    b.Types().RegisterConstructor("Mailer", mail.New)
//	    b.Define("mailer", &container.Definition{
//	        Class:     "Mailer",
//	        Arguments: container.Args(container.Param("mail.host")),
//	    })
//	}
//
//	func (p *AppServiceProvider) Boot(c *container.Container) error {
//	    _, err := c.Get("mailer") // fail fast at startup
//	    return err
//	}
type ServiceProvider interface {
	// Register adds classes, definitions and parameters.
	// Nothing can be resolved yet.
	Register(b *Builder)

	// Boot is called after the container has been built, in registration
	// order. Safe to resolve any service here.
	Boot(c *Container) error
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable no-op Boot.
//
//	type MyProvider struct{ container.BaseProvider }
//	func (p *MyProvider) Register(b *container.Builder) { ... }
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container) error { return nil }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry keeps providers in registration order and boots each of
// them exactly once.
type ProviderRegistry struct {
	providers  []ServiceProvider
	registered map[ServiceProvider]bool
	booted     bool
}

// NewProviderRegistry creates an empty registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{registered: make(map[ServiceProvider]bool)}
}

// Add records provider and reports whether it was new.
func (r *ProviderRegistry) Add(provider ServiceProvider) bool {
	if r.registered[provider] {
		return false
	}
	r.registered[provider] = true
	r.providers = append(r.providers, provider)
	return true
}

// Boot calls Boot on every provider, stopping at the first error.
// Subsequent calls are no-ops.
func (r *ProviderRegistry) Boot(c *Container) error {
	if r.booted {
		return nil
	}
	r.booted = true
	for _, provider := range r.providers {
		if err := provider.Boot(c); err != nil {
			return err
		}
	}
	return nil
}

// Booted returns true if Boot() has been called.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns all registered providers.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.providers }
