package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/historian/internal/application/handlers"
	"github.com/ersonp/historian/internal/domain/services"
)

func newIngestCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "ingest <file.json>",
		Short: "Load a document extraction into the archive",
		Long: `Loads a DocumentExtraction JSON file into the archive.

The file holds one artifact plus the persons, locations, context
chunks, events and milestones extracted from it. Participant and venue
names are resolved against the extracted persons and locations.

Examples:
  historian ingest extraction.json
  historian ingest --dry-run extraction.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd, args[0], dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate without saving")

	return cmd
}

func runIngest(cmd *cobra.Command, filePath string, dryRun bool) error {
	ctx := cmd.Context()

	return withIngestionHandler(ctx, func(handler *handlers.IngestionHandler) error {
		result, err := handler.HandleFile(ctx, filePath, services.IngestOptions{DryRun: dryRun})
		if err != nil {
			return err
		}

		if dryRun {
			fmt.Println("Extraction is valid (dry run, nothing saved).")
			return nil
		}

		fmt.Printf("Ingested artifact %s:\n", result.ArtifactID)
		fmt.Printf("  persons:        %d\n", result.Persons)
		fmt.Printf("  locations:      %d\n", result.Locations)
		fmt.Printf("  context chunks: %d\n", result.ContextChunks)
		fmt.Printf("  events:         %d (%d participants, %d venues)\n", result.Events, result.Participants, result.Venues)
		fmt.Printf("  milestones:     %d\n", result.Milestones)

		return nil
	})
}
