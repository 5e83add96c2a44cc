package resources

import (
	"fmt"
	"strings"

	"github.com/camarero/camarero/internal/app/resources/remove"
	"github.com/camarero/camarero/internal/cli/common"
	"github.com/spf13/cobra"
)

func newDeleteCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var confirmDelete bool

	command := &cobra.Command{
		Use:   "delete <type> <id>",
		Short: "Delete a resource",
		Example: strings.Join([]string{
			"  camarero resources delete product 12 --confirm-delete",
			"  camarero resources delete category 3",
		}, "\n"),
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: resourceTypeCompletion,
		RunE: func(command *cobra.Command, args []string) error {
			resourceServer, err := common.RequireServer(deps)
			if err != nil {
				return err
			}

			var confirm remove.ConfirmFunc
			if !confirmDelete && common.IsInteractiveTerminal(command) {
				confirm = func(label string) (bool, error) {
					return common.PromptConfirm(command,
						fmt.Sprintf("Delete %s?", label), false)
				}
			}

			result, err := remove.Execute(command.Context(), remove.Dependencies{Server: resourceServer}, remove.Request{
				ResourceType: args[0],
				ID:           args[1],
				PreConfirmed: confirmDelete,
				Confirm:      confirm,
			})
			if err != nil {
				return err
			}

			format, err := common.ResolveOutputFormat(command.Context(), deps, globalFlags)
			if err != nil {
				return err
			}
			if result.Canceled {
				return common.WriteText(command, format, fmt.Sprintf("Kept %s.", result.Label))
			}
			return common.WriteText(command, format, fmt.Sprintf("Deleted %s.", result.Label))
		},
	}

	command.Flags().BoolVarP(&confirmDelete, "confirm-delete", "y", false, "confirm deletion")
	return command
}
