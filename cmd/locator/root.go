package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-locator/framework/app"
	"github.com/km-arc/go-locator/framework/config"
	"github.com/km-arc/go-locator/framework/container"
)

const (
	FlagEnvFile   = "env-file"
	FlagServices  = "services"
	FlagLogLevel  = "loglevel"
	FlagLogFormat = "logformat"
)

// New returns the root command. The given providers are registered on every
// application it builds, next to the framework provider.
func New(providers ...container.ServiceProvider) *cobra.Command {
	var application *app.Application

	cmd := &cobra.Command{
		Use:   "locator [sub-command]",
		Short: "Inspect and run service definition files",
		Long: `locator builds a service container from a definition file and the
process environment, then lists, resolves or serves its services.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			application, err = app.NewWithWriter(cmd.ErrOrStderr(), cfg, providers...)
			if err != nil {
				return fmt.Errorf("could not build application: %w", err)
			}
			return nil
		},
		DisableAutoGenTag: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringSlice(FlagEnvFile, nil, "env files to load (default .env)")
	flags.String(FlagServices, "", "service definition file (default $LOCATOR_SERVICES or services.yaml)")
	flags.String(FlagLogLevel, "", "set the log level (debug, info, warn, error)")
	flags.StringP(FlagLogFormat, "f", "", "set the log format (text, json)")

	get := func() *app.Application { return application }
	cmd.AddCommand(
		newListCmd(get),
		newGetCmd(get),
		newParamCmd(get),
		newTreeCmd(get),
		newServeCmd(get),
	)
	return cmd
}

// loadConfig reads the environment and lets explicit flags win.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	envFiles, err := flags.GetStringSlice(FlagEnvFile)
	if err != nil {
		return nil, err
	}
	cfg := config.Load(envFiles...)

	overrides := []struct {
		flag string
		dst  *string
	}{
		{FlagServices, &cfg.Locator.Services},
		{FlagLogLevel, &cfg.Log.Level},
		{FlagLogFormat, &cfg.Log.Format},
	}
	for _, o := range overrides {
		if !flags.Changed(o.flag) {
			continue
		}
		v, err := flags.GetString(o.flag)
		if err != nil {
			return nil, err
		}
		*o.dst = v
	}
	return cfg, nil
}
