package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/siddhant14g/Real-shop/app/jobs"
	"github.com/siddhant14g/Real-shop/config"
	"github.com/siddhant14g/Real-shop/pkg/cache"
	"github.com/siddhant14g/Real-shop/pkg/database"
	"github.com/siddhant14g/Real-shop/pkg/queue"
)

var queueWorkersFlag int

// realshop queue:work runs queue workers standalone, consuming the shared
// Redis queue written by the API process.
var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Start the queue worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := config.Load(); err != nil {
			return err
		}
		if err := database.Connect(ctx); err != nil {
			return err
		}
		defer database.Close(context.Background())

		if err := cache.Connect(); err != nil {
			return fmt.Errorf("queue worker requires redis: %w", err)
		}

		jobs.RegisterAll()
		queue.UseFailedJobCollection(database.Collection("failed_jobs"))
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))

		workers := queueWorkersFlag
		if workers < 1 {
			workers = 5
		}

		fmt.Printf("Queue worker started (%d workers). Press Ctrl+C to stop.\n", workers)
		queue.StartWorkers(ctx, workers)

		<-ctx.Done()
		fmt.Println("\nQueue worker stopped.")
		return nil
	},
}

func init() {
	queueWorkCmd.Flags().IntVarP(&queueWorkersFlag, "workers", "w", 5, "Number of concurrent workers")
}
