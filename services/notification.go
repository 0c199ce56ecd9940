package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rdvpro/booking-api/models"
	"github.com/rdvpro/booking-api/repository"
)

// NotificationService reads and acknowledges the caller's outbox. Every
// operation is scoped to the addressee: someone else's notification reads
// as not-found.
type NotificationService struct {
	notifications repository.NotificationRepository
}

func NewNotificationService(notifications repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

func (s *NotificationService) Lister(ctx context.Context, dest repository.Partie) ([]models.Notification, error) {
	return s.notifications.FindByDestinataire(ctx, dest)
}

// MarquerLue flips the read flag. Idempotent: re-reading an already-read
// notification succeeds.
func (s *NotificationService) MarquerLue(ctx context.Context, id primitive.ObjectID, dest repository.Partie) (*models.Notification, error) {
	n, err := s.notifications.MarquerLue(ctx, id, dest)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, introuvable("Notification introuvable")
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NotificationService) MarquerToutesLues(ctx context.Context, dest repository.Partie) (int64, error) {
	return s.notifications.MarquerToutesLues(ctx, dest)
}

func (s *NotificationService) Supprimer(ctx context.Context, id primitive.ObjectID, dest repository.Partie) error {
	err := s.notifications.Delete(ctx, id, dest)
	if errors.Is(err, repository.ErrNotFound) {
		return introuvable("Notification introuvable")
	}
	return err
}
