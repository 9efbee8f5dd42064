package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/list"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/km-arc/go-locator/framework/app"
	"github.com/km-arc/go-locator/framework/inspect"
)

const FlagOutput = "output"

type appFunc func() *app.Application

func newListCmd(application appFunc) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List defined services",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := application()
			var buf bytes.Buffer
			t := table.NewWriter()
			t.SetOutputMirror(&buf)
			t.AppendHeader(table.Row{"Service", "Class", "Dependencies", "Initialized"})
			for _, svc := range inspect.Services(a.Container) {
				deps, err := a.Dependencies(svc.ID)
				if err != nil {
					return err
				}
				t.AppendRow(table.Row{svc.ID, svc.Class, strings.Join(deps, ", "), svc.Initialized})
			}
			style := table.StyleLight
			style.Options.DrawBorder = false
			t.SetStyle(style)
			t.Render()
			_, err := cmd.OutOrStdout().Write(buf.Bytes())
			return err
		},
	}
}

func newGetCmd(application appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "get {service-id}",
		Short: "Build a service and print its type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			instance, err := application().Get(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %T\n", args[0], instance)
			return err
		},
	}
}

func newParamCmd(application appFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "param {dotted.path}",
		Aliases: []string{"parameter"},
		Short:   "Print a parameter value",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := application().GetParameter(args[0])
			if err != nil {
				return err
			}
			output, err := cmd.Flags().GetString(FlagOutput)
			if err != nil {
				return err
			}
			var data []byte
			switch output {
			case "yaml":
				data, err = yaml.Marshal(value)
			case "json":
				data, err = json.MarshalIndent(value, "", "  ")
				data = append(data, '\n')
			default:
				err = fmt.Errorf("unknown output format: %q", output)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringP(FlagOutput, "o", "yaml", "output format (yaml, json)")
	return cmd
}

func newTreeCmd(application appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "tree {service-id}",
		Short: "Print the dependency tree of a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := application()
			if !a.Has(args[0]) {
				return fmt.Errorf("service %q is not defined", args[0])
			}
			var buf bytes.Buffer
			l := list.NewWriter()
			l.SetOutputMirror(&buf)
			appendTree(l, a, args[0], map[string]bool{})
			l.SetStyle(list.StyleConnectedRounded)
			l.Render()
			_, err := cmd.OutOrStdout().Write(buf.Bytes())
			return err
		},
	}
}

// appendTree walks references depth first. path holds the ids on the current
// branch so that cycles are printed once and marked.
func appendTree(l list.Writer, a *app.Application, id string, path map[string]bool) {
	switch {
	case path[id]:
		l.AppendItem(id + " (circular)")
		return
	case !a.Has(id):
		l.AppendItem(id + " (undefined)")
		return
	}
	label := id
	if def, ok := a.Definition(id); ok {
		label += " [" + def.Class + "]"
	}
	l.AppendItem(label)

	deps, _ := a.Dependencies(id)
	if len(deps) == 0 {
		return
	}
	path[id] = true
	l.Indent()
	for _, dep := range deps {
		appendTree(l, a, dep, path)
	}
	l.UnIndent()
	delete(path, id)
}

func newServeCmd(application appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Resolve http.server and serve until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return application().Run(cmd.Context())
		},
	}
}
