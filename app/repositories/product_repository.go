package repositories

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/siddhant14g/Real-shop/app/models"
	"github.com/siddhant14g/Real-shop/pkg/apperr"
)

type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection("products")}
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return apperr.Wrap(apperr.KindUnknown, "create product", err)
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindAll returns the full catalog, newest first.
func (r *ProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx, bson.M{})
}

// Search matches name by case-insensitive substring. A blank query is the
// same as FindAll.
func (r *ProductRepository) Search(ctx context.Context, name string) ([]models.Product, error) {
	filter := bson.M{}
	if name != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(name), "$options": "i"}
	}
	return r.find(ctx, filter)
}

func (r *ProductRepository) find(ctx context.Context, filter bson.M) ([]models.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnknown, "list products", err)
	}
	defer cur.Close(ctx)

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, apperr.Wrap(apperr.KindUnknown, "decode products", err)
	}
	return products, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, apperr.Wrap(apperr.KindUnknown, "find product", err)
	}
	return &p, nil
}

// FindByIDs returns the named products keyed by ID. IDs of deleted products
// are simply absent from the map; callers render those as placeholders.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	out := make(map[primitive.ObjectID]models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnknown, "find products", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var p models.Product
		if err := cur.Decode(&p); err != nil {
			return nil, apperr.Wrap(apperr.KindUnknown, "decode product", err)
		}
		out[p.ID] = p
	}
	return out, cur.Err()
}

// SetAvailability writes the flag and returns the updated document.
func (r *ProductRepository) SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) (*models.Product, error) {
	update := bson.M{"$set": bson.M{"available": available, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p models.Product
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, apperr.Wrap(apperr.KindUnknown, "update product", err)
	}
	return &p, nil
}

// Delete removes the product permanently. Orders referencing it keep their
// dangling ID.
func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Wrap(apperr.KindUnknown, "delete product", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("Product not found")
	}
	return nil
}
