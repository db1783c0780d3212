package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export history and settings to a file",
		Example: `  cpt export --file backup.json
  cpt export  # writes to stdout`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			_, raw, err := c.Export(context.Background())
			if err != nil {
				return err
			}

			if outPath == "" {
				_, err := os.Stdout.Write(append(raw, '\n'))
				return err
			}

			if err := os.WriteFile(outPath, raw, 0o600); err != nil {
				return fmt.Errorf("writing export file: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Exported to %s.\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "file", "", "output file (default stdout)")
	return cmd
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import history and settings from a file",
		Long: "Uploads a previously exported bundle, replacing all data on the server.\n" +
			"The server validates the bundle as a whole; invalid bundles change nothing.",
		Example: `  cpt import backup.json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading bundle: %w", err)
			}

			c := newClient()
			if err := c.Import(context.Background(), data); err != nil {
				return err
			}

			fmt.Println("Import complete.")
			return nil
		},
	}
}
