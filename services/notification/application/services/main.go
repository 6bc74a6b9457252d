package services

import (
	"github.com/ghuser/fieldops/pkg/app"
	"github.com/ghuser/fieldops/services/notification/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Notification *NotificationService
}

// New wires notification application services with infrastructure from the
// Application container.
func New(a *app.Application) *Services {
	return &Services{
		Notification: NewNotificationService(
			postgres.NewDeviceTokenRepository(a.Db),
			postgres.NewNotificationRepository(a.Db),
		),
	}
}
