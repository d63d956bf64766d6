/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"log"

	"voteapp/domain/config"
	"voteapp/interface/repository"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Creates the ledger tables on Postgres",
	Long:  `Creates the ledger tables on Postgres. The bolt ledger creates its bucket on open and needs no migration.`,
	Run: func(cmd *cobra.Command, args []string) {
		if !config.IsPostgres() {
			fmt.Println("⚠️ storage is not postgres, nothing to migrate.")
			return
		}

		defaultDependencyInject()
		defer closeDependencies()

		if err := repository.Migrate(context.Background(), dbHandler); err != nil {
			log.Fatalf("❌ Migration failed - %v\n", err.Error())
		}
		fmt.Println("🔵 ledger tables are ready.")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
