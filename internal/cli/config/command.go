package config

import (
	"fmt"
	"io"

	configdomain "github.com/camarero/camarero/config"
	"github.com/camarero/camarero/internal/cli/common"
	"github.com/spf13/cobra"
)

func NewCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	command := &cobra.Command{
		Use:   "config",
		Short: "Inspect context configuration",
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
		Args: cobra.NoArgs,
	}

	command.AddCommand(
		newViewCommand(deps, globalFlags),
		newCurrentCommand(deps, globalFlags),
	)
	return command
}

func newViewCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "List configured contexts",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			contexts, err := common.RequireContexts(deps)
			if err != nil {
				return err
			}

			catalog, err := contexts.ListContexts(command.Context())
			if err != nil {
				return err
			}

			format, err := common.ResolveOutputFormat(command.Context(), deps, globalFlags)
			if err != nil {
				return err
			}
			return common.WriteOutput(command, format, catalog, renderCatalogText)
		},
	}
}

func newCurrentCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the resolved context",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			contexts, err := common.RequireContexts(deps)
			if err != nil {
				return err
			}

			resolved, err := contexts.ResolveContext(
				command.Context(),
				configdomain.ContextSelection{Name: globalFlags.Context},
			)
			if err != nil {
				return err
			}

			format, err := common.ResolveOutputFormat(command.Context(), deps, globalFlags)
			if err != nil {
				return err
			}
			return common.WriteOutput(command, format, resolved, func(w io.Writer, value configdomain.Context) error {
				_, err := fmt.Fprintf(w, "%s\t%s\n", value.Name, value.API.BaseURL)
				return err
			})
		},
	}
}

func renderCatalogText(w io.Writer, catalog configdomain.ContextCatalog) error {
	rows := make([][]string, 0, len(catalog.Contexts))
	for _, context := range catalog.Contexts {
		marker := ""
		if context.Name == catalog.CurrentCtx {
			marker = "*"
		}
		rows = append(rows, []string{marker, context.Name, context.API.BaseURL})
	}
	return common.RenderTable(w, []string{"", "Name", "Base URL"}, rows)
}
