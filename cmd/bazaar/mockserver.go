package main

import (
	"github.com/spf13/cobra"

	"github.com/datafoundry/bazaar/internal/marketplace"
	"github.com/datafoundry/bazaar/internal/mockapi"
)

func mockServerCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Run a local marketplace API backed by demo data",
		Long: `Run a local marketplace API backed by demo data.

Point the client at it with --api-url to exercise the HTTP path end to end:

  bazaar mock-server --addr :8480 &
  bazaar --api-url http://localhost:8480 datasets list`,
		RunE: func(_ *cobra.Command, _ []string) error {
			server := mockapi.NewServer(marketplace.NewFixtureCatalog())
			return server.ListenAndServe(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8480", "listen address")

	return cmd
}
