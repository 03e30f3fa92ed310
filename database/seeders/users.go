package seeders

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/siddhant14g/Real-shop/app/models"
	"github.com/siddhant14g/Real-shop/pkg/auth"
	"github.com/siddhant14g/Real-shop/pkg/rbac"
)

func init() {
	Register("admin-user", SeedAdminUser)
}

// SeedAdminUser creates the initial admin account when none exists. The
// password here is a bootstrap default; change it after first login.
func SeedAdminUser(ctx context.Context, db *mongo.Database) error {
	col := db.Collection("users")

	err := col.FindOne(ctx, bson.M{"role": rbac.RoleAdmin}).Err()
	if err == nil {
		return nil // an admin already exists
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	hashed, err := auth.HashPassword("admin1234")
	if err != nil {
		return err
	}

	now := time.Now()
	_, err = col.InsertOne(ctx, models.User{
		Name:      "RealShop Admin",
		Email:     "admin@realshop.app",
		Password:  hashed,
		Role:      rbac.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return err
}
