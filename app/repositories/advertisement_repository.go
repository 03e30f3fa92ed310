package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/siddhant14g/Real-shop/app/models"
	"github.com/siddhant14g/Real-shop/pkg/apperr"
)

type AdvertisementRepository struct {
	col *mongo.Collection
}

func NewAdvertisementRepository(db *mongo.Database) *AdvertisementRepository {
	return &AdvertisementRepository{col: db.Collection("advertisements")}
}

func (r *AdvertisementRepository) Create(ctx context.Context, ad *models.Advertisement) error {
	now := time.Now()
	ad.CreatedAt = now
	ad.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, ad)
	if err != nil {
		return apperr.Wrap(apperr.KindUnknown, "create advertisement", err)
	}
	ad.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *AdvertisementRepository) FindAll(ctx context.Context) ([]models.Advertisement, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnknown, "list advertisements", err)
	}
	defer cur.Close(ctx)

	ads := []models.Advertisement{}
	if err := cur.All(ctx, &ads); err != nil {
		return nil, apperr.Wrap(apperr.KindUnknown, "decode advertisements", err)
	}
	return ads, nil
}

func (r *AdvertisementRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Wrap(apperr.KindUnknown, "delete advertisement", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("Advertisement not found")
	}
	return nil
}
