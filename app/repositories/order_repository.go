package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/siddhant14g/Real-shop/app/models"
	"github.com/siddhant14g/Real-shop/pkg/apperr"
)

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection("orders")}
}

func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
	if o.Status == "" {
		o.Status = models.StatusPending
	}

	res, err := r.col.InsertOne(ctx, o)
	if err != nil {
		return apperr.Wrap(apperr.KindUnknown, "create order", err)
	}
	o.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var o models.Order
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Order not found")
		}
		return nil, apperr.Wrap(apperr.KindUnknown, "find order", err)
	}
	return &o, nil
}

// FindByUser returns the user's orders, newest first.
func (r *OrderRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return r.find(ctx, bson.M{"user": userID})
}

// FindAll returns every order system-wide, newest first.
func (r *OrderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *OrderRepository) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnknown, "list orders", err)
	}
	defer cur.Close(ctx)

	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, apperr.Wrap(apperr.KindUnknown, "decode orders", err)
	}
	return orders, nil
}

// ReplaceItems swaps the items list in one write and advances updatedAt.
func (r *OrderRepository) ReplaceItems(ctx context.Context, id primitive.ObjectID, items []models.OrderItem) (*models.Order, error) {
	return r.update(ctx, id, bson.M{"items": items})
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	return r.update(ctx, id, bson.M{"status": status})
}

func (r *OrderRepository) SetBillImage(ctx context.Context, id primitive.ObjectID, url string) (*models.Order, error) {
	return r.update(ctx, id, bson.M{"billImage": url})
}

func (r *OrderRepository) update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Order, error) {
	fields["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var o models.Order
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Order not found")
		}
		return nil, apperr.Wrap(apperr.KindUnknown, "update order", err)
	}
	return &o, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Wrap(apperr.KindUnknown, "delete order", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("Order not found")
	}
	return nil
}
