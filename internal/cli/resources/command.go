package resources

import (
	"strings"

	"github.com/camarero/camarero/catalog"
	"github.com/camarero/camarero/internal/cli/common"
	"github.com/spf13/cobra"
)

func NewCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	command := &cobra.Command{
		Use:     "resources",
		Aliases: []string{"resource"},
		Short:   "Browse and manage storefront resources",
		Long: "Browse and manage storefront resources.\n\nResource types: " +
			strings.Join(catalog.TypeNames(), ", ") + ".",
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
		Args: cobra.NoArgs,
	}

	command.AddCommand(
		newListCommand(deps, globalFlags),
		newGetCommand(deps, globalFlags),
		newDeleteCommand(deps, globalFlags),
	)
	return command
}

func resourceTypeCompletion(
	_ *cobra.Command,
	args []string,
	toComplete string,
) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	matches := make([]string, 0)
	for _, name := range catalog.TypeNames() {
		if strings.HasPrefix(name, strings.ToLower(toComplete)) {
			matches = append(matches, name)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}
