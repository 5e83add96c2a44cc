package cart

import (
	"context"
	"fmt"
	"io"
	"strings"

	cartdomain "github.com/camarero/camarero/cart"
	"github.com/camarero/camarero/internal/app/cart/workflow"
	"github.com/camarero/camarero/internal/cli/common"
	"github.com/spf13/cobra"
)

func NewCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	command := &cobra.Command{
		Use:   "cart",
		Short: "Work with the pending order",
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
		Args: cobra.NoArgs,
	}

	command.AddCommand(
		newShowCommand(deps, globalFlags),
		newAddCommand(deps, globalFlags),
		newRemoveCommand(deps, globalFlags),
		newCheckoutCommand(deps, globalFlags),
		newCancelCommand(deps, globalFlags),
	)
	return command
}

func newShowCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the cart contents",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			workflowDeps, err := workflowDependencies(deps)
			if err != nil {
				return err
			}

			summary, err := workflow.Show(command.Context(), workflowDeps)
			if err != nil {
				return err
			}
			return writeSummary(command, deps, globalFlags, summary)
		},
	}
}

func newAddCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var quantity int

	command := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Example: strings.Join([]string{
			"  camarero cart add 7",
			"  camarero cart add 7 --quantity 3",
		}, "\n"),
		Args: cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			workflowDeps, err := workflowDependencies(deps)
			if err != nil {
				return err
			}

			summary, err := workflow.Add(command.Context(), workflowDeps, args[0], quantity)
			if err != nil {
				return err
			}
			return writeSummary(command, deps, globalFlags, summary)
		},
	}

	command.Flags().IntVarP(&quantity, "quantity", "q", 1, "units to add")
	return command
}

func newRemoveCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var confirmDelete bool

	command := &cobra.Command{
		Use:     "remove <item-id>",
		Short:   "Remove a line from the cart",
		Example: "  camarero cart remove 42 --confirm-delete",
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			workflowDeps, err := workflowDependencies(deps)
			if err != nil {
				return err
			}

			approved, err := confirmed(command, confirmDelete,
				fmt.Sprintf("Remove line %s from the cart?", args[0]))
			if err != nil {
				return err
			}
			if !approved {
				format, err := common.ResolveOutputFormat(command.Context(), deps, globalFlags)
				if err != nil {
					return err
				}
				return common.WriteText(command, format, "Kept line "+args[0]+".")
			}

			summary, err := workflow.Remove(command.Context(), workflowDeps, args[0])
			if err != nil {
				return err
			}
			return writeSummary(command, deps, globalFlags, summary)
		},
	}

	command.Flags().BoolVarP(&confirmDelete, "confirm-delete", "y", false, "confirm removal")
	return command
}

func newCheckoutCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return newSettleCommand(deps, globalFlags, settleSpec{
		use:        "checkout",
		short:      "Complete the pending order",
		prompt:     "Complete the order?",
		done:       "Order completed.",
		kept:       "Order kept open.",
		transition: workflow.Checkout,
	})
}

func newCancelCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return newSettleCommand(deps, globalFlags, settleSpec{
		use:        "cancel",
		short:      "Cancel the pending order",
		prompt:     "Cancel the order?",
		done:       "Order canceled.",
		kept:       "Order kept open.",
		transition: workflow.Cancel,
	})
}

type settleSpec struct {
	use        string
	short      string
	prompt     string
	done       string
	kept       string
	transition func(context.Context, workflow.Dependencies) (workflow.Summary, error)
}

func newSettleCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags, spec settleSpec) *cobra.Command {
	var yes bool

	command := &cobra.Command{
		Use:   spec.use,
		Short: spec.short,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			workflowDeps, err := workflowDependencies(deps)
			if err != nil {
				return err
			}

			format, err := common.ResolveOutputFormat(command.Context(), deps, globalFlags)
			if err != nil {
				return err
			}

			if !yes && common.IsInteractiveTerminal(command) {
				approved, err := common.PromptConfirm(command, spec.prompt, true)
				if err != nil {
					return err
				}
				if !approved {
					return common.WriteText(command, format, spec.kept)
				}
			}

			if _, err := spec.transition(command.Context(), workflowDeps); err != nil {
				return err
			}
			return common.WriteText(command, format, spec.done)
		},
	}

	command.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return command
}

// confirmed gates a destructive cart mutation: the flag pre-approves it,
// an interactive terminal prompts, and anything else requires the flag.
func confirmed(command *cobra.Command, preConfirmed bool, prompt string) (bool, error) {
	if preConfirmed {
		return true, nil
	}
	if common.IsInteractiveTerminal(command) {
		return common.PromptConfirm(command, prompt, false)
	}
	return false, common.ValidationError("flag --confirm-delete is required: confirm removal", nil)
}

func workflowDependencies(deps common.CommandDependencies) (workflow.Dependencies, error) {
	resourceServer, err := common.RequireServer(deps)
	if err != nil {
		return workflow.Dependencies{}, err
	}
	sessions, err := common.RequireSessions(deps)
	if err != nil {
		return workflow.Dependencies{}, err
	}
	return workflow.Dependencies{Server: resourceServer, Sessions: sessions}, nil
}

func writeSummary(
	command *cobra.Command,
	deps common.CommandDependencies,
	globalFlags *common.GlobalFlags,
	summary workflow.Summary,
) error {
	format, err := common.ResolveOutputFormat(command.Context(), deps, globalFlags)
	if err != nil {
		return err
	}
	return common.WriteOutput(command, format, summary, renderSummaryText)
}

func renderSummaryText(w io.Writer, summary workflow.Summary) error {
	if summary.State != cartdomain.StateCart {
		_, err := fmt.Fprintln(w, "Your cart is empty.")
		return err
	}

	if _, err := fmt.Fprintf(w, "Order %s\n", summary.OrderID); err != nil {
		return err
	}

	rows := make([][]string, 0, len(summary.Items))
	for _, item := range summary.Items {
		name := item.ProductName
		if name == "" {
			name = "product " + item.ProductID
		}
		rows = append(rows, []string{item.ID, name, fmt.Sprintf("%d", item.Quantity), item.Price})
	}
	return common.RenderTable(w, []string{"Item", "Product", "Qty", "Price"}, rows)
}
