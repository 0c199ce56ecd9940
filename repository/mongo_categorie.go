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

type mongoCategorieRepository struct {
	coll *mongo.Collection
}

func NewCategorieRepository(db *mongo.Database) CategorieRepository {
	return &mongoCategorieRepository{coll: db.Collection("categories")}
}

func (r *mongoCategorieRepository) Create(ctx context.Context, c *models.Categorie) error {
	c.CreatedAt = time.Now()
	if c.Specialites == nil {
		c.Specialites = []string{}
	}
	res, err := r.coll.InsertOne(ctx, c)
	if err != nil {
		return err
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoCategorieRepository) FindAll(ctx context.Context) ([]models.Categorie, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "nom", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []models.Categorie
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *mongoCategorieRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Categorie, error) {
	var c models.Categorie
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *mongoCategorieRepository) FindByNom(ctx context.Context, nom string) (*models.Categorie, error) {
	var c models.Categorie
	err := r.coll.FindOne(ctx, bson.M{"nom": nom}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *mongoCategorieRepository) Update(ctx context.Context, id primitive.ObjectID, c *models.Categorie) (*models.Categorie, error) {
	set := bson.M{
		"nom":         c.Nom,
		"description": c.Description,
		"prix":        c.Prix,
		"specialites": c.Specialites,
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Categorie
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *mongoCategorieRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
