package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/adepa-shop/adepa/internal/interfaces/cli/migrate"
	"github.com/adepa-shop/adepa/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "adepa",
		Short: "Adepa - payment orchestration service",
		Long:  `Adepa orchestrates storefront payments across Paystack, Flutterwave and Moolre with a persisted payment-intent state machine.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
