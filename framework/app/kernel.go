package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/km-arc/go-locator/framework/config"
	"github.com/km-arc/go-locator/framework/container"
	"github.com/km-arc/go-locator/framework/definition"
	"github.com/km-arc/go-locator/framework/logging"
	"github.com/km-arc/go-locator/framework/providers"
)

// Application is the top-level application container.
// It embeds the service Container so user code can call app.Get(),
// app.Has() and app.GetParameter() directly.
type Application struct {
	*container.Container
	Config *config.Config
	Logger *slog.Logger
}

// New bootstraps the application: it builds the logger from cfg, registers
// the framework provider and any extra providers, then layers the
// configuration parameters and the definition file on top.
//
//	application, err := app.New(config.Load())
//	srv, err := container.Resolve[*http.Server](application.Container, "http.server")
func New(cfg *config.Config, extra ...container.ServiceProvider) (*Application, error) {
	return NewWithWriter(os.Stderr, cfg, extra...)
}

// NewWithWriter is New with the application log written to w.
//
// APP_DEBUG lowers the log level to debug regardless of LOG_LEVEL.
func NewWithWriter(w io.Writer, cfg *config.Config, extra ...container.ServiceProvider) (*Application, error) {
	level := cfg.Log.Level
	if cfg.App.Debug {
		level = "debug"
	}
	logger, err := logging.New(w, cfg.Log.Format, level)
	if err != nil {
		return nil, err
	}

	b := container.NewBuilder()
	b.Register(&providers.FrameworkProvider{})
	for _, p := range extra {
		b.Register(p)
	}
	b.Parameters(Parameters(cfg))

	if path := cfg.Locator.Services; path != "" {
		f, err := definition.Load(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Debug("no definition file", slog.String("path", path))
		case err != nil:
			return nil, err
		default:
			b.Parameters(f.Parameters)
			b.DefineAll(f.Services)
			logger.Debug("definitions loaded", slog.String("path", path), slog.Int("services", len(f.Services)))
		}
	}

	opts := []container.Option{container.WithLogger(logger)}
	if cfg.Locator.RetryOnFailure {
		opts = append(opts, container.WithRetryOnFailure())
	}
	c, err := b.Build(opts...)
	if err != nil {
		return nil, err
	}
	return &Application{Container: c, Config: cfg, Logger: logger}, nil
}

// Parameters exposes the process configuration to definitions under the
// "app", "log" and "http" keys.
func Parameters(cfg *config.Config) container.Parameters {
	return container.Parameters{
		"app": map[string]any{
			"name":  cfg.App.Name,
			"env":   cfg.App.Env,
			"debug": cfg.App.Debug,
		},
		"log": map[string]any{
			"format": cfg.Log.Format,
			"level":  cfg.Log.Level,
		},
		"http": map[string]any{
			"addr": ":" + cfg.App.Port,
		},
	}
}

// Run resolves "http.server" and serves until ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	srv, err := container.Resolve[*http.Server](a.Container, "http.server")
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("listening",
			slog.String("app", a.Config.App.Name),
			slog.String("addr", srv.Addr),
			slog.String("env", a.Environment()),
			slog.Bool("debug", a.IsDebug()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config.App.Env }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.Config.App.Debug }
