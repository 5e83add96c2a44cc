package resources

import (
	"fmt"
	"io"
	"sort"

	"github.com/camarero/camarero/internal/app/resources/read"
	"github.com/camarero/camarero/internal/cli/common"
	"github.com/camarero/camarero/resource"
	"github.com/spf13/cobra"
)

func newGetCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	command := &cobra.Command{
		Use:               "get <type> <id>",
		Short:             "Fetch a single resource",
		Example:           "  camarero resources get product 12",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: resourceTypeCompletion,
		RunE: func(command *cobra.Command, args []string) error {
			resourceServer, err := common.RequireServer(deps)
			if err != nil {
				return err
			}

			result, err := read.Execute(command.Context(), read.Dependencies{Server: resourceServer}, read.Request{
				ResourceType: args[0],
				ID:           args[1],
			})
			if err != nil {
				return err
			}

			format, err := common.ResolveOutputFormat(command.Context(), deps, globalFlags)
			if err != nil {
				return err
			}
			return common.WriteOutput(command, format, result.OutputValue, func(w io.Writer, value any) error {
				_, err := fmt.Fprintln(w, resource.DisplayLabel(value))
				if err != nil {
					return err
				}
				return writeObjectFields(w, value)
			})
		},
	}

	return command
}

func writeObjectFields(w io.Writer, value any) error {
	obj, ok := resource.AsObject(value)
	if !ok {
		return nil
	}

	rows := make([][]string, 0, len(obj))
	for _, key := range sortedKeys(obj) {
		text, _ := resource.Stringify(obj[key])
		rows = append(rows, []string{key, text})
	}
	return common.RenderTable(w, []string{"Field", "Value"}, rows)
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
