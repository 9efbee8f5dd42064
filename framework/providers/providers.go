package providers

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/km-arc/go-locator/framework/container"
	"github.com/km-arc/go-locator/framework/inspect"
	"github.com/km-arc/go-locator/framework/logging"
	"github.com/km-arc/go-locator/framework/routing"
)

// ── FrameworkProvider ─────────────────────────────────────────────────────────

// FrameworkProvider registers the framework classes and a default set of
// services built from them. Definition files may override any of them.
//
// Classes:
//   - "Logger"    → *slog.Logger      (format, level)
//   - "Router"    → *routing.Router   (logger); calls: mount(pattern, handler)
//   - "Inspector" → *inspect.Handler  (container, logger)
//   - "Server"    → *http.Server      (addr, handler); calls: setReadTimeout(seconds)
//
// Services:
//   - "logger", "router", "inspector", "http.server"
//
// Parameters:
//   - log.format, log.level, http.addr, http.inspect_prefix
type FrameworkProvider struct {
	container.BaseProvider
}

func (p *FrameworkProvider) Register(b *container.Builder) {
	types := b.Types()
	types.RegisterConstructor("Logger", func(format, level string) (*slog.Logger, error) {
		return logging.New(os.Stderr, format, level)
	})
	types.RegisterConstructor("Router", routing.New)
	types.RegisterConstructor("Inspector", inspect.NewHandler)
	types.RegisterConstructor("Server", func(addr string, handler http.Handler) *http.Server {
		return &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	})
	types.RegisterMethod("Server", "setReadTimeout", func(instance any, args []any) error {
		if len(args) != 1 {
			return fmt.Errorf("expected 1 argument, got %d", len(args))
		}
		seconds, ok := args[0].(float64)
		if !ok {
			n, isInt := args[0].(int)
			if !isInt {
				return fmt.Errorf("timeout must be a number, got %T", args[0])
			}
			seconds = float64(n)
		}
		instance.(*http.Server).ReadTimeout = time.Duration(seconds * float64(time.Second))
		return nil
	})

	b.Parameters(container.Parameters{
		"log":  map[string]any{"format": "text", "level": "info"},
		"http": map[string]any{"addr": ":8000", "inspect_prefix": "/_container"},
	})

	b.Define("logger", &container.Definition{
		Class:     "Logger",
		Arguments: container.Args(container.Param("log.format"), container.Param("log.level")),
	})
	b.Define("inspector", &container.Definition{
		Class:     "Inspector",
		Arguments: container.Args(container.Ref(container.SelfID), container.Ref("logger")),
	})
	b.Define("router", &container.Definition{
		Class:     "Router",
		Arguments: container.Args(container.Ref("logger")),
		Calls: []container.Call{{
			Method:    "mount",
			Arguments: container.Args(container.Param("http.inspect_prefix"), container.Ref("inspector")),
		}},
	})
	b.Define("http.server", &container.Definition{
		Class:     "Server",
		Arguments: container.Args(container.Param("http.addr"), container.Ref("router")),
	})
}
