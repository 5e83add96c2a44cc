package cli

import (
	"context"

	"github.com/camarero/camarero/config"
	"github.com/camarero/camarero/debugctx"
	cartcmd "github.com/camarero/camarero/internal/cli/cart"
	"github.com/camarero/camarero/internal/cli/common"
	configcmd "github.com/camarero/camarero/internal/cli/config"
	resourcescmd "github.com/camarero/camarero/internal/cli/resources"
	"github.com/camarero/camarero/internal/cli/version"
	"github.com/camarero/camarero/server"
	"github.com/camarero/camarero/session"
	"github.com/spf13/cobra"
)

type Dependencies struct {
	Contexts config.ContextService
	Server   server.ResourceServer
	Sessions session.Reader
}

func (d Dependencies) commandDependencies() common.CommandDependencies {
	return common.CommandDependencies{
		Contexts: d.Contexts,
		Server:   d.Server,
		Sessions: d.Sessions,
	}
}

func NewRootCommand(deps Dependencies) *cobra.Command {
	commandDeps := deps.commandDependencies()
	var globalFlags common.GlobalFlags

	root := &cobra.Command{
		Use:   "camarero",
		Short: "Manage the storefront over its REST API",
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
		Args: cobra.NoArgs,
		PersistentPreRunE: func(command *cobra.Command, _ []string) error {
			if err := common.ValidateOutputFormat(globalFlags.Output); err != nil {
				return err
			}

			commandContext := context.Background()
			commandContext = debugctx.WithEnabled(commandContext, globalFlags.Debug)
			commandContext = debugctx.WithWriter(commandContext, command.ErrOrStderr())
			command.SetContext(commandContext)

			debugctx.Printf(
				command.Context(),
				"root flags context=%q output=%q command=%q",
				globalFlags.Context,
				globalFlags.Output,
				command.CommandPath(),
			)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	common.BindGlobalFlags(root, &globalFlags)
	root.PersistentFlags().BoolP("help", "h", false, "help for command")

	root.AddGroup(
		&cobra.Group{ID: "basic", Title: "Basic Commands:"},
		&cobra.Group{ID: "other", Title: "Other Commands:"},
	)

	basicCommands := []*cobra.Command{
		resourcescmd.NewCommand(commandDeps, &globalFlags),
		cartcmd.NewCommand(commandDeps, &globalFlags),
		configcmd.NewCommand(commandDeps, &globalFlags),
	}
	for _, command := range basicCommands {
		command.GroupID = "basic"
		root.AddCommand(command)
	}

	otherCommands := []*cobra.Command{
		version.NewCommand(commandDeps, &globalFlags),
	}
	for _, command := range otherCommands {
		command.GroupID = "other"
		root.AddCommand(command)
	}

	return root
}
