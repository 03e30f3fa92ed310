package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Completed is terminal.
const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
)

// OrderItem is one line of an order, captured at placement time. Only the
// product's identity is referenced, so a later product deletion leaves a
// dangling ID that reads resolve to a placeholder.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Order is owned by the user who placed it. Items are editable by the owner
// while Pending; an admin moves it to Completed and may attach a bill image.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user" json:"user"`
	Items     []OrderItem        `bson:"items" json:"items"`
	Status    string             `bson:"status" json:"status"`
	BillImage string             `bson:"billImage,omitempty" json:"billImage,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Completed reports whether the order is in its terminal state.
func (o Order) Completed() bool {
	return o.Status == StatusCompleted
}

// ResolvedItem is an order line joined with product display metadata.
// Deleted reports a product that no longer exists in the catalog.
type ResolvedItem struct {
	ProductID   primitive.ObjectID `json:"productId"`
	Quantity    int                `json:"quantity"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	ImageURL    string             `json:"imageUrl"`
	Deleted     bool               `json:"deleted"`
}

// OrderView is the read shape for order listings. Owner fields are only
// populated on admin reads.
type OrderView struct {
	ID         primitive.ObjectID `json:"id"`
	Status     string             `json:"status"`
	BillImage  string             `json:"billImage,omitempty"`
	Items      []ResolvedItem     `json:"items"`
	OwnerName  string             `json:"ownerName,omitempty"`
	OwnerEmail string             `json:"ownerEmail,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}
