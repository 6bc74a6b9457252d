package app

import (
	"github.com/ghuser/fieldops/pkg/cache"
	"github.com/ghuser/fieldops/pkg/database"
	"github.com/ghuser/fieldops/pkg/events"
	"github.com/ghuser/fieldops/pkg/logger"
	"github.com/ghuser/fieldops/pkg/storage"
	"github.com/ghuser/fieldops/pkg/workflows"
	"github.com/gorilla/sessions"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to all service route-registration calls during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler â€” use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "processing item", "item_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Db             *database.Database
	Logger         logger.Logger
	EventBus       *events.EventBus
	Redis          *cache.RedisClient
	TemporalClient *workflows.TemporalClient
	SessionStore   sessions.Store       // Redis-backed session store; nil in worker process
	Storage        *storage.ObjectStore // certificate object storage; nil in worker process
}
