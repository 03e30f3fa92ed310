package seeders

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/siddhant14g/Real-shop/app/models"
	"github.com/siddhant14g/Real-shop/pkg/rbac"
)

func init() {
	Register("demo-catalog", SeedDemoCatalog)
}

// SeedDemoCatalog inserts a small starter catalog on an empty database,
// attributed to the seeded admin.
func SeedDemoCatalog(ctx context.Context, db *mongo.Database) error {
	products := db.Collection("products")

	count, err := products.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil // never overwrite a live catalog
	}

	var admin models.User
	err = db.Collection("users").FindOne(ctx, bson.M{"role": rbac.RoleAdmin}).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return errors.New("seed admin-user first")
		}
		return err
	}

	now := time.Now()
	demo := []interface{}{
		models.Product{
			Name:        "Classic White Shirt",
			Description: "Cotton shirt, regular fit.",
			ImageURL:    "/uploads/products/demo-shirt.jpg",
			Available:   true,
			CreatedBy:   admin.ID,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		models.Product{
			Name:        "Denim Jeans",
			Description: "Mid-rise straight jeans.",
			ImageURL:    "/uploads/products/demo-jeans.jpg",
			Available:   true,
			CreatedBy:   admin.ID,
			CreatedAt:   now.Add(time.Second),
			UpdatedAt:   now.Add(time.Second),
		},
		models.Product{
			Name:        "Canvas Sneakers",
			Description: "Lace-up low tops.",
			ImageURL:    "/uploads/products/demo-sneakers.jpg",
			Available:   true,
			CreatedBy:   admin.ID,
			CreatedAt:   now.Add(2 * time.Second),
			UpdatedAt:   now.Add(2 * time.Second),
		},
	}

	_, err = products.InsertMany(ctx, demo)
	return err
}
