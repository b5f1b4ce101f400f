package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/historian/internal/domain/ports"
	"github.com/ersonp/historian/internal/infrastructure/config"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print per-table row counts",
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	return withStore(ctx, func(_ *config.Config, store ports.ArchiveStore) error {
		counts, err := store.TableCounts(ctx)
		if err != nil {
			return fmt.Errorf("counting rows: %w", err)
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(counts)
	})
}
