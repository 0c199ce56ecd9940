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

type mongoUtilisateurRepository struct {
	coll *mongo.Collection
}

func NewUtilisateurRepository(db *mongo.Database) UtilisateurRepository {
	return &mongoUtilisateurRepository{coll: db.Collection("utilisateurs")}
}

func (r *mongoUtilisateurRepository) Create(ctx context.Context, u *models.Utilisateur) error {
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	res, err := r.coll.InsertOne(ctx, u)
	if err != nil {
		return err
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoUtilisateurRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Utilisateur, error) {
	var u models.Utilisateur
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *mongoUtilisateurRepository) FindByEmail(ctx context.Context, email string) (*models.Utilisateur, error) {
	var u models.Utilisateur
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *mongoUtilisateurRepository) FindByRole(ctx context.Context, role string) ([]models.Utilisateur, error) {
	filter := bson.M{}
	if role != "" {
		filter["role"] = role
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var utilisateurs []models.Utilisateur
	if err := cursor.All(ctx, &utilisateurs); err != nil {
		return nil, err
	}
	return utilisateurs, nil
}

func (r *mongoUtilisateurRepository) FindProfessionnels(ctx context.Context, categorieID *primitive.ObjectID, nom string) ([]models.Utilisateur, error) {
	filter := bson.M{"role": models.RoleProf, "statut": models.StatutActif}
	if categorieID != nil {
		filter["categorieId"] = *categorieID
	}
	if nom != "" {
		filter["$or"] = []bson.M{
			{"nom": primitive.Regex{Pattern: nom, Options: "i"}},
			{"prenom": primitive.Regex{Pattern: nom, Options: "i"}},
		}
	}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "nom", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profs []models.Utilisateur
	if err := cursor.All(ctx, &profs); err != nil {
		return nil, err
	}
	return profs, nil
}

func (r *mongoUtilisateurRepository) UpdateProfil(ctx context.Context, id primitive.ObjectID, upd ProfilUpdate) (*models.Utilisateur, error) {
	set := bson.M{"updatedAt": time.Now()}
	if upd.CategorieID != nil {
		set["categorieId"] = *upd.CategorieID
	}
	if upd.Specialites != nil {
		set["specialites"] = upd.Specialites
	}
	if upd.TarifHoraire != nil {
		set["tarifHoraire"] = *upd.TarifHoraire
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Photo != nil {
		set["photo"] = *upd.Photo
	}
	if upd.ProfilComplet != nil {
		set["profilComplet"] = *upd.ProfilComplet
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.Utilisateur
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *mongoUtilisateurRepository) SetToken(ctx context.Context, id primitive.ObjectID, token string) error {
	update := bson.M{"$set": bson.M{"token": token, "updatedAt": time.Now()}}
	if token == "" {
		update = bson.M{"$unset": bson.M{"token": ""}, "$set": bson.M{"updatedAt": time.Now()}}
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoUtilisateurRepository) SetStatut(ctx context.Context, ids []primitive.ObjectID, statut string, unsetMotDePasse, unsetToken bool) (int64, error) {
	update := bson.M{"$set": bson.M{"statut": statut, "updatedAt": time.Now()}}
	unset := bson.M{}
	if unsetMotDePasse {
		unset["motDePasse"] = ""
	}
	if unsetToken {
		unset["token"] = ""
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	res, err := r.coll.UpdateMany(ctx, bson.M{"_id": bson.M{"$in": ids}}, update)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (r *mongoUtilisateurRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoUtilisateurRepository) CountByRole(ctx context.Context) (map[string]int64, error) {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$role", "total": bson.M{"$sum": 1}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int64)
	for cursor.Next(ctx) {
		var row struct {
			Role  string `bson:"_id"`
			Total int64  `bson:"total"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.Role] = row.Total
	}
	return counts, cursor.Err()
}
