package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/saubh/planwise/internal/domain/project"
)

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(paidCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(statsCmd)

	listCmd.Flags().StringP("filter", "f", "all", "Filter: all, ongoing, completed, unpaid")
	listCmd.Flags().StringP("search", "s", "", "Match client name or phone number")

	addCmd.Flags().StringP("client", "c", "", "Client name (required)")
	addCmd.Flags().StringP("phone", "p", "", "Phone number")
	addCmd.Flags().Float64P("total", "t", 0, "Total payment (required)")
	addCmd.Flags().Float64P("advance", "a", 0, "Advance payment")
	addCmd.Flags().StringP("description", "d", "", "Description")

	updateCmd.Flags().String("client", "", "Client name")
	updateCmd.Flags().String("phone", "", "Phone number")
	updateCmd.Flags().Float64("total", 0, "Total payment")
	updateCmd.Flags().Float64("advance", 0, "Advance payment")
	updateCmd.Flags().String("description", "", "Description")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, closeApp, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer closeApp()

		filterName, _ := cmd.Flags().GetString("filter")
		query, _ := cmd.Flags().GetString("search")

		filter, err := project.ParseFilter(filterName)
		if err != nil {
			return fmt.Errorf("unknown filter %q", filterName)
		}

		list := project.Search(filter.Apply(a.svc.Projects()), query)
		if len(list) == 0 {
			fmt.Println("No projects.")
			return nil
		}

		now := time.Now()
		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCLIENT\tPHONE\tTOTAL\tADVANCE\tPROGRESS\tSTATUS\tCREATED")
		for _, p := range list {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%.0f%%\t%s\t%s\n",
				p.ID,
				p.ClientName,
				p.PhoneNumber,
				a.formatter.Abbreviated(p.TotalPayment),
				a.formatter.Abbreviated(p.AdvancePayment),
				p.PaymentProgress()*100,
				statusLabel(p),
				project.RelativeDate(p.CreationDate, now),
			)
		}
		return w.Flush()
	},
}

func statusLabel(p project.Project) string {
	switch {
	case p.IsCompleted && p.IsPaid:
		return "done/paid"
	case p.IsCompleted:
		return "done"
	case p.IsPaid:
		return "paid"
	default:
		return "ongoing"
	}
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a project",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, closeApp, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer closeApp()

		draft := project.Project{}
		draft.ClientName, _ = cmd.Flags().GetString("client")
		draft.PhoneNumber, _ = cmd.Flags().GetString("phone")
		draft.TotalPayment, _ = cmd.Flags().GetFloat64("total")
		draft.AdvancePayment, _ = cmd.Flags().GetFloat64("advance")
		draft.Description, _ = cmd.Flags().GetString("description")

		if err := a.validator.ValidateDraft(draft); err != nil {
			return err
		}

		created, err := a.svc.Add(cmd.Context(), draft)
		if err != nil {
			return err
		}
		fmt.Printf("Added project %d for %s (%s of %s received)\n",
			created.ID,
			created.ClientName,
			a.formatter.Currency(created.AdvancePayment),
			a.formatter.Currency(created.TotalPayment),
		)
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Update project fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateProject(cmd, args[0], func(p *project.Project) {
			if cmd.Flags().Changed("client") {
				p.ClientName, _ = cmd.Flags().GetString("client")
			}
			if cmd.Flags().Changed("phone") {
				p.PhoneNumber, _ = cmd.Flags().GetString("phone")
			}
			if cmd.Flags().Changed("total") {
				p.TotalPayment, _ = cmd.Flags().GetFloat64("total")
			}
			if cmd.Flags().Changed("advance") {
				p.AdvancePayment, _ = cmd.Flags().GetFloat64("advance")
			}
			if cmd.Flags().Changed("description") {
				p.Description, _ = cmd.Flags().GetString("description")
			}
		})
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete ID",
	Short: "Mark a project completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateProject(cmd, args[0], func(p *project.Project) {
			p.IsCompleted = true
		})
	},
}

var paidCmd = &cobra.Command{
	Use:   "paid ID",
	Short: "Mark a project fully paid",
	Long:  `Mark a project paid. The advance is raised to the total payment so payment progress reads 100%.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateProject(cmd, args[0], func(p *project.Project) {
			p.IsPaid = true
			p.AdvancePayment = p.TotalPayment
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, closeApp, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer closeApp()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid project id %q", args[0])
		}

		if err := a.svc.Delete(cmd.Context(), project.Project{ID: id}); err != nil {
			return err
		}
		fmt.Printf("Deleted project %d\n", id)
		return nil
	},
}

// mutateProject loads a project from the snapshot, applies fn, validates,
// and persists the complete replacement record.
func mutateProject(cmd *cobra.Command, rawID string, fn func(*project.Project)) error {
	a, closeApp, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer closeApp()

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid project id %q", rawID)
	}

	p, err := a.svc.Get(id)
	if err != nil {
		return err
	}
	fn(&p)

	if err := a.validator.ValidateDraft(p); err != nil {
		return err
	}

	updated, err := a.svc.Update(cmd.Context(), p)
	if err != nil {
		return err
	}
	fmt.Printf("Updated project %d (%s, %.0f%% paid)\n",
		updated.ID, updated.ClientName, updated.PaymentProgress()*100)
	return nil
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show portfolio totals",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, closeApp, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer closeApp()

		list := a.svc.Projects()
		totals := a.svc.Totals()

		fmt.Printf("Good %s!\n\n", project.TimeOfDay(time.Now()))
		for _, f := range project.Filters {
			fmt.Printf("%-14s %d\n", f.Title(), f.Count(list))
		}
		fmt.Printf("\nTotal value    %s\n", a.formatter.Abbreviated(totals.TotalPayment))
		fmt.Printf("Received       %s\n", a.formatter.Abbreviated(totals.AdvancePayment))
		fmt.Printf("Outstanding    %s\n", a.formatter.Abbreviated(totals.Outstanding))
		return nil
	},
}
