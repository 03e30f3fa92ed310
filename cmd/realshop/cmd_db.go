package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/siddhant14g/Real-shop/config"
	appdb "github.com/siddhant14g/Real-shop/database"
	"github.com/siddhant14g/Real-shop/database/seeders"
	"github.com/siddhant14g/Real-shop/pkg/database"
)

// bootDB loads config and opens the database connection.
func bootDB(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect(ctx)
}

// realshop seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create indexes and run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if err := bootDB(ctx); err != nil {
			return err
		}
		defer database.Close(context.Background())

		fmt.Println("Ensuring indexes…")
		if err := appdb.EnsureIndexes(ctx, database.DB()); err != nil {
			return err
		}

		fmt.Println("Running seeders…")
		return seeders.RunAll(ctx, database.DB())
	},
}
