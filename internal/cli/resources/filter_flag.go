package resources

import (
	"strings"

	"github.com/camarero/camarero/internal/cli/common"
	"github.com/spf13/cobra"
)

func bindFilterFlag(command *cobra.Command, filters *[]string) {
	command.Flags().StringArrayVarP(filters, "filter", "f", nil,
		"filter as name=value (repeatable)")
}

// parseFilterPairs splits repeated --filter values into a name/value map.
// Validation against the type's declared filters happens in the service.
func parseFilterPairs(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	parsed := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			return nil, common.ValidationError("flag --filter expects name=value", nil)
		}
		if _, exists := parsed[name]; exists {
			return nil, common.ValidationError("flag --filter repeats name "+name, nil)
		}
		parsed[name] = value
	}
	return parsed, nil
}
