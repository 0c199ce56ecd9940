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

type mongoRendezVousRepository struct {
	coll *mongo.Collection
}

func NewRendezVousRepository(db *mongo.Database) RendezVousRepository {
	return &mongoRendezVousRepository{coll: db.Collection("rendezvous")}
}

// ownerFiltre scopes a query to the acting party's side of the record.
func ownerFiltre(p Partie) bson.M {
	if p.ProfessionnelID != nil {
		return bson.M{"professionnelId": *p.ProfessionnelID}
	}
	return bson.M{"utilisateurId": *p.UtilisateurID}
}

func (r *mongoRendezVousRepository) Create(ctx context.Context, rdv *models.RendezVous) error {
	rdv.CreatedAt = time.Now()
	rdv.UpdatedAt = rdv.CreatedAt
	res, err := r.coll.InsertOne(ctx, rdv)
	if err != nil {
		return err
	}
	rdv.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoRendezVousRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.RendezVous, error) {
	var rdv models.RendezVous
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rdv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rdv, nil
}

func (r *mongoRendezVousRepository) ExistsAt(ctx context.Context, professionnelID primitive.ObjectID, ts time.Time, statuts []string) (bool, error) {
	filter := bson.M{
		"professionnelId": professionnelID,
		"date":            ts,
		"statut":          bson.M{"$in": statuts},
	}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *mongoRendezVousRepository) FindActifs(ctx context.Context, professionnelID primitive.ObjectID) ([]models.RendezVous, error) {
	filter := bson.M{
		"professionnelId": professionnelID,
		"statut":          bson.M{"$in": []string{models.RdvPending, models.RdvConfirme}},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rdvs []models.RendezVous
	if err := cursor.All(ctx, &rdvs); err != nil {
		return nil, err
	}
	return rdvs, nil
}

func (r *mongoRendezVousRepository) FindByPartie(ctx context.Context, p Partie) ([]models.RendezVous, error) {
	filter := ownerFiltre(p)
	if p.ProfessionnelID != nil {
		filter["supprimeProfessionnel"] = false
	} else {
		filter["supprimeUtilisateur"] = false
	}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rdvs []models.RendezVous
	if err := cursor.All(ctx, &rdvs); err != nil {
		return nil, err
	}
	return rdvs, nil
}

func (r *mongoRendezVousRepository) Transition(ctx context.Context, id primitive.ObjectID, owner Partie, from []string, to string) (*models.RendezVous, error) {
	filter := ownerFiltre(owner)
	filter["_id"] = id
	filter["statut"] = bson.M{"$in": from}
	update := bson.M{"$set": bson.M{"statut": to, "updatedAt": time.Now()}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var rdv models.RendezVous
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&rdv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rdv, nil
}

func (r *mongoRendezVousRepository) MarquerSupprime(ctx context.Context, id primitive.ObjectID, owner Partie) (*models.RendezVous, error) {
	filter := ownerFiltre(owner)
	filter["_id"] = id
	flag := "supprimeUtilisateur"
	if owner.ProfessionnelID != nil {
		flag = "supprimeProfessionnel"
	}
	update := bson.M{"$set": bson.M{flag: true, "updatedAt": time.Now()}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var rdv models.RendezVous
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&rdv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rdv, nil
}

func (r *mongoRendezVousRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoRendezVousRepository) CountByStatut(ctx context.Context) (map[string]int64, error) {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$statut", "total": bson.M{"$sum": 1}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int64)
	for cursor.Next(ctx) {
		var row struct {
			Statut string `bson:"_id"`
			Total  int64  `bson:"total"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.Statut] = row.Total
	}
	return counts, cursor.Err()
}
