package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/siddhant14g/Real-shop/app/models"
	"github.com/siddhant14g/Real-shop/pkg/apperr"
	"github.com/siddhant14g/Real-shop/pkg/event"
	"github.com/siddhant14g/Real-shop/pkg/logger"
	"github.com/siddhant14g/Real-shop/pkg/metrics"
	"github.com/siddhant14g/Real-shop/pkg/rbac"
)

// EventOrderCompleted fires once per successful Pending to Completed
// transition. Payload is OrderCompletedPayload.
const EventOrderCompleted = "order.completed"

// OrderCompletedPayload accompanies EventOrderCompleted.
type OrderCompletedPayload struct {
	Order *models.Order
	Owner *models.User
}

// OrderStore is the persistence surface OrderService needs.
type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
	ReplaceItems(ctx context.Context, id primitive.ObjectID, items []models.OrderItem) (*models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error)
	SetBillImage(ctx context.Context, id primitive.ObjectID, url string) (*models.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProductReader resolves product references for validation and display.
type ProductReader interface {
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error)
}

// UserReader resolves order owners for admin listings and notifications.
type UserReader interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error)
}

type OrderService struct {
	orders   OrderStore
	products ProductReader
	users    UserReader
}

func NewOrderService(orders OrderStore, products ProductReader, users UserReader) *OrderService {
	return &OrderService{orders: orders, products: products, users: users}
}

// OrderItemInput is one submitted line.
type OrderItemInput struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

func parseItems(inputs []OrderItemInput) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		if in.Quantity < 1 {
			return nil, apperr.Validation("Item quantity must be at least 1")
		}
		pid, err := primitive.ObjectIDFromHex(in.ProductID)
		if err != nil {
			return nil, apperr.Validation("Invalid product id")
		}
		items = append(items, models.OrderItem{ProductID: pid, Quantity: in.Quantity})
	}
	return items, nil
}

// checkProducts verifies every referenced product exists and is available.
// Submitted identities are not trusted blindly.
func (s *OrderService) checkProducts(ctx context.Context, items []models.OrderItem) error {
	ids := make([]primitive.ObjectID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}

	found, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, it := range items {
		p, ok := found[it.ProductID]
		if !ok {
			return apperr.Validation("Product no longer exists")
		}
		if !p.Available {
			return apperr.Validation("Product " + p.Name + " is unavailable")
		}
	}
	return nil
}

// Place creates an order from a non-empty item list. Every product is
// re-checked for existence and availability at the moment of placement.
func (s *OrderService) Place(ctx context.Context, userID primitive.ObjectID, inputs []OrderItemInput) (*models.Order, error) {
	if len(inputs) == 0 {
		return nil, apperr.Validation("No items in order")
	}

	items, err := parseItems(inputs)
	if err != nil {
		return nil, err
	}
	if err := s.checkProducts(ctx, items); err != nil {
		return nil, err
	}

	o := &models.Order{
		UserID: userID,
		Items:  items,
		Status: models.StatusPending,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}

	metrics.OrdersCreated.Inc()
	logger.WithCtx(ctx).Info("order placed", "order", o.ID.Hex(), "lines", len(o.Items))
	return o, nil
}

// MyOrders lists the caller's orders with product metadata resolved.
func (s *OrderService) MyOrders(ctx context.Context, userID primitive.ObjectID) ([]models.OrderView, error) {
	orders, err := s.orders.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, orders, false)
}

// AllOrders lists every order with owner identity and product metadata
// resolved. Admin only; role enforcement happens at the route layer.
func (s *OrderService) AllOrders(ctx context.Context) ([]models.OrderView, error) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, orders, true)
}

// resolve joins orders with product display data and optionally owner info.
// Dangling product references render as placeholders, never errors.
func (s *OrderService) resolve(ctx context.Context, orders []models.Order, withOwner bool) ([]models.OrderView, error) {
	pidSet := map[primitive.ObjectID]struct{}{}
	uidSet := map[primitive.ObjectID]struct{}{}
	for _, o := range orders {
		uidSet[o.UserID] = struct{}{}
		for _, it := range o.Items {
			pidSet[it.ProductID] = struct{}{}
		}
	}

	pids := make([]primitive.ObjectID, 0, len(pidSet))
	for id := range pidSet {
		pids = append(pids, id)
	}
	products, err := s.products.FindByIDs(ctx, pids)
	if err != nil {
		return nil, err
	}

	var owners map[primitive.ObjectID]models.User
	if withOwner {
		uids := make([]primitive.ObjectID, 0, len(uidSet))
		for id := range uidSet {
			uids = append(uids, id)
		}
		owners, err = s.users.FindByIDs(ctx, uids)
		if err != nil {
			return nil, err
		}
	}

	views := make([]models.OrderView, 0, len(orders))
	for _, o := range orders {
		v := models.OrderView{
			ID:        o.ID,
			Status:    o.Status,
			BillImage: o.BillImage,
			Items:     make([]models.ResolvedItem, 0, len(o.Items)),
			CreatedAt: o.CreatedAt,
			UpdatedAt: o.UpdatedAt,
		}
		for _, it := range o.Items {
			ri := models.ResolvedItem{ProductID: it.ProductID, Quantity: it.Quantity}
			if p, ok := products[it.ProductID]; ok {
				ri.Name = p.Name
				ri.Description = p.Description
				ri.ImageURL = p.ImageURL
			} else {
				ri.Name = "Deleted product"
				ri.Deleted = true
			}
			v.Items = append(v.Items, ri)
		}
		if withOwner {
			if u, ok := owners[o.UserID]; ok {
				v.OwnerName = u.Name
				v.OwnerEmail = u.Email
			}
		}
		views = append(views, v)
	}
	return views, nil
}

// guardOwnerMutation applies the shared precondition sequence for owner
// edits: existence, then ownership, then lifecycle state. Order matters so
// a wrong caller learns the order exists before learning it is off limits.
func (s *OrderService) guardOwnerMutation(ctx context.Context, id, callerID primitive.ObjectID) (*models.Order, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if d := rbac.CheckOwner(callerID.Hex(), o.UserID.Hex()); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}

	if o.Completed() {
		return nil, apperr.InvalidState("Order already completed")
	}
	return o, nil
}

// UpdateItems replaces the item list wholesale. Owner only, Pending only.
// The replacement list is validated like a fresh placement.
func (s *OrderService) UpdateItems(ctx context.Context, id, callerID primitive.ObjectID, inputs []OrderItemInput) (*models.Order, error) {
	if _, err := s.guardOwnerMutation(ctx, id, callerID); err != nil {
		return nil, err
	}

	if len(inputs) == 0 {
		return nil, apperr.Validation("No items in order")
	}
	items, err := parseItems(inputs)
	if err != nil {
		return nil, err
	}
	if err := s.checkProducts(ctx, items); err != nil {
		return nil, err
	}

	return s.orders.ReplaceItems(ctx, id, items)
}

// Cancel permanently removes the order. Owner only, not after completion.
func (s *OrderService) Cancel(ctx context.Context, id, callerID primitive.ObjectID) error {
	if _, err := s.guardOwnerMutation(ctx, id, callerID); err != nil {
		return err
	}
	return s.orders.Delete(ctx, id)
}

// SetStatus moves the order to the given status. Admin only. The completed
// notification fires exactly once per actual Pending to Completed
// transition; setting Completed on an already completed order is a no-op
// and fires nothing. Completed cannot be reopened.
func (s *OrderService) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	if status != models.StatusPending && status != models.StatusCompleted {
		return nil, apperr.Validation("Unknown status")
	}

	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if o.Completed() {
		if status == models.StatusPending {
			return nil, apperr.InvalidState("Completed orders cannot be reopened")
		}
		return o, nil
	}
	if status == o.Status {
		return o, nil
	}

	updated, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	if status == models.StatusCompleted {
		s.notifyCompleted(ctx, updated)
	}
	return updated, nil
}

func (s *OrderService) notifyCompleted(ctx context.Context, o *models.Order) {
	metrics.OrdersCompleted.Inc()

	owner, err := s.users.FindByID(ctx, o.UserID)
	if err != nil {
		logger.Warn("order: owner lookup for notification failed", "order", o.ID.Hex(), "error", err)
		owner = nil
	}

	event.Fire(EventOrderCompleted, OrderCompletedPayload{Order: o, Owner: owner})
}

// AttachBill stores the uploaded bill image URL on the order. Allowed in any
// status and overwrites any previous bill.
func (s *OrderService) AttachBill(ctx context.Context, id primitive.ObjectID, url string) (*models.Order, error) {
	if url == "" {
		return nil, apperr.Validation("No image uploaded")
	}
	return s.orders.SetBillImage(ctx, id, url)
}
