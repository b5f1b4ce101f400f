package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/historian/internal/application/handlers"
	"github.com/ersonp/historian/internal/infrastructure/api"
	"github.com/ersonp/historian/internal/infrastructure/config"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read API for the timeline frontend",
		Long: `Serves the HTTP read API.

Endpoints:
  GET /healthz
  GET /events/enriched?start_year=<int>&end_year=<int>`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")

	return cmd
}

func runServe(cmd *cobra.Command, addr string) error {
	ctx := cmd.Context()

	return withEnrichmentHandler(ctx, func(cfg *config.Config, handler *handlers.EnrichmentHandler) error {
		if addr == "" {
			addr = cfg.API.Addr()
		}

		server := api.NewServer(addr, handler)
		fmt.Printf("Serving on http://%s\n", addr)

		return server.Run(ctx)
	})
}
