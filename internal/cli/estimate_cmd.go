package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mhollis/lath/internal/cli/formatter"
	"github.com/mhollis/lath/internal/domain"
	"github.com/spf13/cobra"
)

func newEstimateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Manage estimate line items",
	}

	cmd.AddCommand(
		newEstimateAddCmd(app),
		newEstimateListCmd(app),
		newEstimateRemoveCmd(app),
	)

	return cmd
}

func newEstimateAddCmd(app *App) *cobra.Command {
	var category, name, description, amount string

	cmd := &cobra.Command{
		Use:   "add PROJECT",
		Short: "Add an estimate line item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			// With no flags in an interactive terminal, collect the line
			// through a form instead.
			if !cmd.Flags().Changed("category") && !cmd.Flags().Changed("name") && app.interactive() {
				if err := estimateLineForm(&category, &name, &description, &amount).Run(); err != nil {
					return err
				}
			}

			cents, err := parseMoney(amount)
			if err != nil {
				return err
			}

			line := &domain.EstimateLineItem{
				ProjectID:   projectID,
				Category:    strings.ToLower(strings.TrimSpace(category)),
				Name:        strings.TrimSpace(name),
				Description: description,
				AmountCents: cents,
			}
			if err := app.Estimates.AddLine(ctx, line); err != nil {
				return err
			}

			fmt.Printf("Added %s (%s) %s\n", line.Name, line.Category, formatter.FormatMoney(line.AmountCents))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Trade category (e.g. framing, electrical)")
	cmd.Flags().StringVar(&name, "name", "", "Line item name")
	cmd.Flags().StringVar(&description, "description", "", "Line item description")
	cmd.Flags().StringVar(&amount, "amount", "", "Dollar amount (e.g. 1250.00)")

	return cmd
}

func estimateLineForm(category, name, description, amount *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Category").Placeholder("framing").Value(category).
				Validate(requireNonEmpty("category")),
			huh.NewInput().Title("Name").Placeholder("Frame interior walls").Value(name).
				Validate(requireNonEmpty("name")),
			huh.NewInput().Title("Description (optional)").Value(description),
			huh.NewInput().Title("Amount ($)").Placeholder("1250.00").Value(amount).
				Validate(func(s string) error {
					_, err := parseMoney(s)
					return err
				}),
		),
	).WithTheme(lathHuhTheme()).WithShowHelp(false)
}

func requireNonEmpty(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// parseMoney converts a dollar string like "1,250.50" to cents. Empty
// input is zero.
func parseMoney(s string) (int64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, nil
	}
	whole, frac, found := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	var cents int64
	if found {
		if len(frac) > 2 {
			return 0, fmt.Errorf("invalid amount %q: more than two decimal places", s)
		}
		for len(frac) < 2 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
	}
	if dollars < 0 {
		return dollars*100 - cents, nil
	}
	return dollars*100 + cents, nil
}

func newEstimateListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT",
		Short: "List estimate line items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			lines, err := app.Estimates.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}

			if len(lines) == 0 {
				fmt.Println("No estimate lines. Add some with `lath estimate add`.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatEstimateLines(lines))
			return nil
		},
	}
}

func newEstimateRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PROJECT N",
		Short: "Remove an estimate line item by its list position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid line number %q", args[1])
			}
			lines, err := app.Estimates.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			if n > len(lines) {
				return fmt.Errorf("line %d does not exist (%d lines)", n, len(lines))
			}

			line := lines[n-1]
			if err := app.Estimates.RemoveLine(ctx, line.ID); err != nil {
				return err
			}
			fmt.Printf("Removed %s (%s)\n", line.Name, line.Category)
			return nil
		},
	}
}
