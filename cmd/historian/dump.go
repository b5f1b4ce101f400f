package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/historian/internal/domain/ports"
	"github.com/ersonp/historian/internal/infrastructure/config"
)

func newDumpCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Export the archive as a portable SQL text file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDump(cmd, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runDump(cmd *cobra.Command, output string) error {
	ctx := cmd.Context()

	return withStore(ctx, func(_ *config.Config, store ports.ArchiveStore) error {
		var w io.Writer = os.Stdout
		if output != "" {
			f, err := os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
			if err != nil {
				return fmt.Errorf("creating file: %w", err)
			}
			defer f.Close()
			w = f
		}

		if err := store.Dump(ctx, w); err != nil {
			return fmt.Errorf("dumping archive: %w", err)
		}

		if output != "" {
			fmt.Printf("Dumped to: %s\n", output)
		}
		return nil
	})
}
