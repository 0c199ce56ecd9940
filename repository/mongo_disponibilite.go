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

type mongoDisponibiliteRepository struct {
	coll *mongo.Collection
}

func NewDisponibiliteRepository(db *mongo.Database) DisponibiliteRepository {
	return &mongoDisponibiliteRepository{coll: db.Collection("disponibilites")}
}

func (r *mongoDisponibiliteRepository) Create(ctx context.Context, d *models.Disponibilite) error {
	d.CreatedAt = time.Now()
	res, err := r.coll.InsertOne(ctx, d)
	if err != nil {
		return err
	}
	d.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoDisponibiliteRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Disponibilite, error) {
	var d models.Disponibilite
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *mongoDisponibiliteRepository) Find(ctx context.Context, f DisponibiliteFilter) ([]models.Disponibilite, error) {
	filter := bson.M{"professionnelId": f.ProfessionnelID}
	switch {
	case f.Tout:
		// no time window
	case f.Jour != nil:
		debut := time.Date(f.Jour.Year(), f.Jour.Month(), f.Jour.Day(), 0, 0, 0, 0, f.Jour.Location())
		fin := debut.Add(24*time.Hour - time.Millisecond)
		filter["debut"] = bson.M{"$gte": debut, "$lte": fin}
	default:
		filter["debut"] = bson.M{"$gte": time.Now()}
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "debut", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var disponibilites []models.Disponibilite
	if err := cursor.All(ctx, &disponibilites); err != nil {
		return nil, err
	}
	return disponibilites, nil
}

func (r *mongoDisponibiliteRepository) Overlaps(ctx context.Context, professionnelID primitive.ObjectID, debut, fin time.Time) (bool, error) {
	filter := bson.M{
		"professionnelId": professionnelID,
		"$or": []bson.M{
			{"debut": bson.M{"$lt": fin}, "fin": bson.M{"$gt": debut}},
			{"debut": bson.M{"$lte": debut}, "fin": bson.M{"$gte": debut}},
		},
	}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *mongoDisponibiliteRepository) FindCovering(ctx context.Context, professionnelID primitive.ObjectID, ts time.Time) (*models.Disponibilite, error) {
	filter := bson.M{
		"professionnelId": professionnelID,
		"debut":           bson.M{"$lte": ts},
		"fin":             bson.M{"$gte": ts},
	}
	var d models.Disponibilite
	err := r.coll.FindOne(ctx, filter).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *mongoDisponibiliteRepository) SetStatut(ctx context.Context, id primitive.ObjectID, statut string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"statut": statut}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoDisponibiliteRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
