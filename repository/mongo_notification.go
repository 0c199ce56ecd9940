package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rdvpro/booking-api/models"
)

type mongoNotificationRepository struct {
	coll *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) NotificationRepository {
	return &mongoNotificationRepository{coll: db.Collection("notifications")}
}

func destFiltre(dest Partie) bson.M {
	if dest.ProfessionnelID != nil {
		return bson.M{"professionnelId": *dest.ProfessionnelID}
	}
	return bson.M{"utilisateurId": *dest.UtilisateurID}
}

func (r *mongoNotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	n.CreatedAt = time.Now()
	res, err := r.coll.InsertOne(ctx, n)
	if err != nil {
		return err
	}
	n.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoNotificationRepository) FindByDestinataire(ctx context.Context, dest Partie) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, destFiltre(dest), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *mongoNotificationRepository) MarquerLue(ctx context.Context, id primitive.ObjectID, dest Partie) (*models.Notification, error) {
	filter := destFiltre(dest)
	filter["_id"] = id
	update := bson.M{"$set": bson.M{"lue": true}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var n models.Notification
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&n)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *mongoNotificationRepository) MarquerToutesLues(ctx context.Context, dest Partie) (int64, error) {
	filter := destFiltre(dest)
	filter["lue"] = false
	res, err := r.coll.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"lue": true}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *mongoNotificationRepository) Delete(ctx context.Context, id primitive.ObjectID, dest Partie) error {
	filter := destFiltre(dest)
	filter["_id"] = id
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
