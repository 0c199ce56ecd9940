package services

import (
	"context"
	"log"

	"github.com/rdvpro/booking-api/models"
	"github.com/rdvpro/booking-api/repository"
)

// Notifier emits a notification as a side effect of a workflow transition.
// Emission is best-effort: implementations must never fail the caller. A
// durable outbox can be substituted here without touching the workflows.
type Notifier interface {
	Emettre(ctx context.Context, n *models.Notification)
}

type bestEffortNotifier struct {
	notifications repository.NotificationRepository
}

func NewNotifier(notifications repository.NotificationRepository) Notifier {
	return &bestEffortNotifier{notifications: notifications}
}

// Emettre writes the notification and swallows any failure. No retry, no
// reconciliation: a lost notification stays lost.
func (b *bestEffortNotifier) Emettre(ctx context.Context, n *models.Notification) {
	if err := b.notifications.Create(ctx, n); err != nil {
		log.Printf("notification %s non persistée: %v", n.Type, err)
	}
}
