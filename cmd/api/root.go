package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewRootCmd arma el CLI del servicio: serve y migrate.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo-api",
		Short: "To-do API with signup, login and server-side sessions",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if err := godotenv.Load(); err != nil {
				log.Printf("warning: loading .env: %v", err)
			}
		},
		SilenceUsage: true,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}
