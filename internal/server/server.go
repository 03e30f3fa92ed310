// Package server owns the boot sequence and the HTTP server lifecycle.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/siddhant14g/Real-shop/app/jobs"
	"github.com/siddhant14g/Real-shop/app/services"
	"github.com/siddhant14g/Real-shop/config"
	"github.com/siddhant14g/Real-shop/database"
	"github.com/siddhant14g/Real-shop/internal/kernel"
	"github.com/siddhant14g/Real-shop/pkg/cache"
	dbpkg "github.com/siddhant14g/Real-shop/pkg/database"
	"github.com/siddhant14g/Real-shop/pkg/event"
	"github.com/siddhant14g/Real-shop/pkg/logger"
	"github.com/siddhant14g/Real-shop/pkg/queue"
	"github.com/siddhant14g/Real-shop/pkg/storage"
)

const workerCount = 5

// Start boots every subsystem and serves HTTP until ctx is cancelled, then
// drains in-flight requests and background work before returning.
func Start(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := dbpkg.Connect(ctx); err != nil {
		return err
	}
	defer dbpkg.Close(context.Background())

	// Tee log records into Mongo alongside stdout so they are queryable.
	if mh, err := logger.NewMongoHandler(dbpkg.Collection("logs")); err == nil {
		logger.SetHandler(logger.NewMultiHandler(logger.L.Handler(), mh))
		defer mh.Close()
	} else {
		logger.Warn("mongo log handler disabled", "error", err)
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("cache unavailable, continuing without it", "error", err)
	}
	storage.Connect()

	if err := database.EnsureIndexes(ctx, dbpkg.DB()); err != nil {
		return err
	}

	// Audit trail and owner email for fulfilled orders. The email rides the
	// queue so a slow mail server never delays the transition.
	event.Listen(services.EventOrderCompleted, func(payload any) {
		p, ok := payload.(services.OrderCompletedPayload)
		if !ok || p.Order == nil {
			return
		}
		logger.Info("order completed", "order", p.Order.ID.Hex())
		if p.Owner == nil {
			return
		}
		if err := queue.Dispatch(&jobs.OrderCompletedEmailJob{
			Email:    p.Owner.Email,
			UserName: p.Owner.Name,
			OrderID:  p.Order.ID.Hex(),
		}); err != nil {
			logger.Warn("completion email not queued", "order", p.Order.ID.Hex(), "error", err)
		}
	})

	jobs.RegisterAll()
	queue.UseFailedJobCollection(dbpkg.Collection("failed_jobs"))
	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	queue.StartWorkers(workerCtx, workerCount)

	httpKernel := kernel.NewHTTPKernel(dbpkg.DB())

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           httpKernel.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}

	event.Flush()
	stopWorkers()
	return nil
}
