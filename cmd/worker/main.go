package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/robfig/cron/v3"

	"github.com/ghuser/fieldops/pkg/app"
	"github.com/ghuser/fieldops/pkg/cache"
	"github.com/ghuser/fieldops/pkg/config"
	"github.com/ghuser/fieldops/pkg/database"
	"github.com/ghuser/fieldops/pkg/events"
	"github.com/ghuser/fieldops/pkg/logger"
	"github.com/ghuser/fieldops/pkg/telemetry"
	invsvcs "github.com/ghuser/fieldops/services/inventory/application/services"
	invEvents "github.com/ghuser/fieldops/services/inventory/domain/events"
	notifsvcs "github.com/ghuser/fieldops/services/notification/application/services"
)

// tokenCleanupInterval is how often stale device tokens are purged.
const tokenCleanupInterval = 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	//temporalClient, err := workflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, log)
	//if err != nil {
	//	log.Error("failed to initialize temporal client", "error", err)
	//	os.Exit(1) //nolint:gocritic
	//}
	//defer temporalClient.Close()

	appConfig := &app.Application{
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
		//TemporalClient: temporalClient,
	}

	if err := registerSubscribers(ctx, appConfig, cfg); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	scheduler, err := startSnapshotScheduler(appConfig, cfg)
	if err != nil {
		log.Error("failed to start snapshot scheduler", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	cleanupCtx, cancelCleanup := context.WithCancel(ctx)
	go runTokenCleanup(cleanupCtx, appConfig)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancelCleanup()
	<-scheduler.Stop().Done()

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application, cfg *config.Config) error {
	handlers := []func(context.Context, *message.Message) error{
		handleMovementStockCache(a),
		handleMovementLowStock(a),
	}
	if cfg.ExportWebhookURL != "" {
		handlers = append(handlers, handleMovementWebhookExport(a, cfg.ExportWebhookURL))
	}

	errCh, err := a.EventBus.Subscribe(ctx, invEvents.TopicMovementRecorded, chain(handlers...))
	if err != nil {
		return err
	}

	// Drain subscriber errors in background so the channel never blocks.
	go func() {
		for err := range errCh {
			a.Logger.ErrorContext(ctx, "subscriber error",
				"topic", invEvents.TopicMovementRecorded,
				"error", err,
			)
		}
	}()

	a.Logger.Info("event subscribers registered", "topics", []string{invEvents.TopicMovementRecorded})
	return nil
}

// chain runs handlers in order, stopping at the first error so the bus retries
// the whole message.
func chain(handlers ...func(context.Context, *message.Message) error) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		for _, h := range handlers {
			if err := h(ctx, msg); err != nil {
				return err
			}
		}
		return nil
	}
}

// handleMovementStockCache refreshes the Redis stock read model from each
// movement event. Handlers must be idempotent — EventBus retries up to 3× on
// failure.
func handleMovementStockCache(a *app.Application) func(context.Context, *message.Message) error {
	stockCache := cache.NewStockCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt invEvents.MovementRecordedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := stockCache.Set(ctx, &cache.CachedStock{
			ItemID:       evt.ItemID,
			Code:         evt.ItemCode,
			CurrentStock: evt.ResultingStock,
			MinimumStock: evt.MinimumStock,
			UpdatedAt:    evt.OccurredAt,
		}); err != nil {
			// Cache warming is best-effort; log but do not fail the handler.
			a.Logger.WarnContext(ctx, "stock cache refresh failed",
				"item_id", evt.ItemID, "error", err)
		}
		return nil
	}
}

// handleMovementLowStock records a low-stock notification when a movement
// leaves an item below its minimum.
func handleMovementLowStock(a *app.Application) func(context.Context, *message.Message) error {
	notifications := notifsvcs.New(a)
	return func(ctx context.Context, msg *message.Message) error {
		var evt invEvents.MovementRecordedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}
		if evt.MinimumStock <= 0 || evt.ResultingStock >= evt.MinimumStock {
			return nil
		}

		if err := notifications.Notification.RecordLowStock(ctx, evt.ItemID, evt.ItemCode, evt.ResultingStock, evt.MinimumStock); err != nil {
			return err
		}
		a.Logger.InfoContext(ctx, "low-stock alert recorded",
			"item_id", evt.ItemID, "item_code", evt.ItemCode,
			"stock", evt.ResultingStock, "minimum", evt.MinimumStock)
		return nil
	}
}

// handleMovementWebhookExport POSTs each movement event to the configured
// webhook. Non-2xx responses return an error so the bus retries with backoff;
// exhausted retries land on the subscriber error channel.
func handleMovementWebhookExport(a *app.Application, webhookURL string) func(context.Context, *message.Message) error {
	client := &http.Client{Timeout: 10 * time.Second}
	return func(ctx context.Context, msg *message.Message) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(msg.Payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Event-ID", msg.UUID)

		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("webhook post: %w", err)
		}
		defer resp.Body.Close() //nolint:errcheck

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return fmt.Errorf("webhook returned %d", resp.StatusCode)
		}
		return nil
	}
}

// startSnapshotScheduler runs the daily inventory snapshot on the configured
// cron spec (default: weekday mornings).
func startSnapshotScheduler(a *app.Application, cfg *config.Config) (*cron.Cron, error) {
	inventory := invsvcs.New(a)

	scheduler := cron.New()
	_, err := scheduler.AddFunc(cfg.SnapshotCronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		snapshot, err := inventory.Snapshots.Create(ctx)
		if err != nil {
			a.Logger.ErrorContext(ctx, "scheduled snapshot failed", "error", err)
			return
		}
		a.Logger.InfoContext(ctx, "snapshot created",
			"snapshot_id", snapshot.ID,
			"total_items", snapshot.TotalItems,
			"total_stock", snapshot.TotalWarehouseStock)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot cron spec %q: %w", cfg.SnapshotCronSpec, err)
	}

	scheduler.Start()
	a.Logger.Info("snapshot scheduler started", "spec", cfg.SnapshotCronSpec)
	return scheduler, nil
}

// runTokenCleanup purges device tokens unseen past their TTL once a day.
// Runs until ctx is cancelled.
func runTokenCleanup(ctx context.Context, a *app.Application) {
	notifications := notifsvcs.New(a)

	ticker := time.NewTicker(tokenCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.Logger.Info("token cleanup shutting down")
			return
		case <-ticker.C:
			n, err := notifications.Notification.PurgeStaleTokens(ctx)
			if err != nil {
				a.Logger.ErrorContext(ctx, "token cleanup failed", "error", err)
				continue
			}
			if n > 0 {
				a.Logger.InfoContext(ctx, "stale device tokens purged", "count", n)
			}
		}
	}
}
