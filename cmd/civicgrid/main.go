package main

import (
	"os"

	"github.com/spf13/cobra"

	"civicgrid/internal/interfaces/cli/migrate"
	"civicgrid/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "civicgrid",
		Short: "CivicGrid - municipal issue lifecycle service",
		Long:  `CivicGrid tracks citizen-reported civic issues from intake through assignment, resolution and verification.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
