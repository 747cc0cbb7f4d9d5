package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/saubh/planwise/internal/interchange"
)

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)

	exportCmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export projects as CSV",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, closeApp, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer closeApp()

		out := os.Stdout
		if path, _ := cmd.Flags().GetString("output"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating %s: %w", path, err)
			}
			defer f.Close()
			out = f
		}

		return interchange.Export(out, a.svc.Projects())
	},
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import projects from a CSV export",
	Long:  `Import projects from a CSV file. Rows are added as new projects; ids from the file are discarded and fresh ones assigned.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, closeApp, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer closeApp()

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()

		result, err := a.importer.Import(cmd.Context(), f)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d projects (%d rows skipped)\n", result.Imported, result.Skipped)
		return nil
	},
}
