package resources

import (
	"fmt"
	"io"
	"strings"

	"github.com/camarero/camarero/internal/app/resources/read"
	"github.com/camarero/camarero/internal/cli/common"
	"github.com/camarero/camarero/listing"
	"github.com/spf13/cobra"
)

func newListCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var filterPairs []string
	var clearFilters bool

	command := &cobra.Command{
		Use:   "list <type>",
		Short: "List a resource collection",
		Example: strings.Join([]string{
			"  camarero resources list product",
			"  camarero resources list product --filter name=milanesa --filter minPrice=10",
			"  camarero resources list order --filter status=pending",
		}, "\n"),
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: resourceTypeCompletion,
		RunE: func(command *cobra.Command, args []string) error {
			resourceServer, err := common.RequireServer(deps)
			if err != nil {
				return err
			}
			if clearFilters && len(filterPairs) > 0 {
				return common.ValidationError("flags --clear-filters and --filter cannot be used together", nil)
			}
			filters, err := parseFilterPairs(filterPairs)
			if err != nil {
				return err
			}

			result, err := read.Execute(command.Context(), read.Dependencies{Server: resourceServer}, read.Request{
				ResourceType: args[0],
				Filters:      filters,
			})
			if err != nil {
				return err
			}

			format, err := common.ResolveOutputFormat(command.Context(), deps, globalFlags)
			if err != nil {
				return err
			}
			return common.WriteOutput(command, format, result, renderListText)
		},
	}

	bindFilterFlag(command, &filterPairs)
	command.Flags().BoolVar(&clearFilters, "clear-filters", false, "list without any filters")
	return command
}

func renderListText(w io.Writer, result read.Result) error {
	if _, err := fmt.Fprintln(w, result.Title); err != nil {
		return err
	}

	rows := make([][]string, 0, len(result.Rows))
	for i, row := range result.Rows {
		cells := append([]string(nil), row...)
		cells = append(cells, actionLabels(result.ActionRows, i))
		rows = append(rows, cells)
	}
	if err := common.RenderTable(w, result.Headers, rows); err != nil {
		return err
	}

	if result.Notice != "" {
		if _, err := fmt.Fprintln(w, result.Notice); err != nil {
			return err
		}
	}
	return nil
}

func actionLabels(actionRows [][]listing.Action, index int) string {
	if index >= len(actionRows) {
		return ""
	}
	labels := make([]string, 0, len(actionRows[index]))
	for _, action := range actionRows[index] {
		labels = append(labels, action.Label)
	}
	return strings.Join(labels, " | ")
}
