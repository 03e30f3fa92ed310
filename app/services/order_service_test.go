package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/siddhant14g/Real-shop/app/models"
	"github.com/siddhant14g/Real-shop/pkg/apperr"
	"github.com/siddhant14g/Real-shop/pkg/event"
)

// fakeOrderStore keeps orders in a map, mimicking the repository contract
// including its NotFound translation.
type fakeOrderStore struct {
	orders map[primitive.ObjectID]*models.Order
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: map[primitive.ObjectID]*models.Order{}}
}

func (f *fakeOrderStore) Create(_ context.Context, o *models.Order) error {
	o.ID = primitive.NewObjectID()
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, apperr.NotFound("Order not found")
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderStore) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderStore) FindAll(_ context.Context) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOrderStore) ReplaceItems(_ context.Context, id primitive.ObjectID, items []models.OrderItem) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, apperr.NotFound("Order not found")
	}
	o.Items = items
	o.UpdatedAt = time.Now()
	cp := *o
	return &cp, nil
}

func (f *fakeOrderStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, apperr.NotFound("Order not found")
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	cp := *o
	return &cp, nil
}

func (f *fakeOrderStore) SetBillImage(_ context.Context, id primitive.ObjectID, url string) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, apperr.NotFound("Order not found")
	}
	o.BillImage = url
	o.UpdatedAt = time.Now()
	cp := *o
	return &cp, nil
}

func (f *fakeOrderStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.orders[id]; !ok {
		return apperr.NotFound("Order not found")
	}
	delete(f.orders, id)
	return nil
}

type fakeProductReader struct {
	products map[primitive.ObjectID]models.Product
}

func (f *fakeProductReader) FindByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	out := map[primitive.ObjectID]models.Product{}
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type fakeUserReader struct {
	users map[primitive.ObjectID]models.User
}

func (f *fakeUserReader) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("User not found")
	}
	return &u, nil
}

func (f *fakeUserReader) FindByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	out := map[primitive.ObjectID]models.User{}
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

type orderFixture struct {
	svc      *OrderService
	store    *fakeOrderStore
	products *fakeProductReader
	users    *fakeUserReader
	owner    primitive.ObjectID
	prodA    primitive.ObjectID
	prodB    primitive.ObjectID
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	owner := primitive.NewObjectID()
	prodA := primitive.NewObjectID()
	prodB := primitive.NewObjectID()

	products := &fakeProductReader{products: map[primitive.ObjectID]models.Product{
		prodA: {ID: prodA, Name: "Shirt", Available: true},
		prodB: {ID: prodB, Name: "Jeans", Available: true},
	}}
	users := &fakeUserReader{users: map[primitive.ObjectID]models.User{
		owner: {ID: owner, Name: "Asha", Email: "asha@example.com"},
	}}
	store := newFakeOrderStore()

	return &orderFixture{
		svc:      NewOrderService(store, products, users),
		store:    store,
		products: products,
		users:    users,
		owner:    owner,
		prodA:    prodA,
		prodB:    prodB,
	}
}

func (fx *orderFixture) place(t *testing.T, items ...OrderItemInput) *models.Order {
	t.Helper()
	o, err := fx.svc.Place(context.Background(), fx.owner, items)
	require.NoError(t, err)
	return o
}

func TestPlaceRejectsEmptyOrder(t *testing.T) {
	fx := newOrderFixture(t)

	_, err := fx.svc.Place(context.Background(), fx.owner, nil)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestPlaceStartsPending(t *testing.T) {
	fx := newOrderFixture(t)

	o := fx.place(t, OrderItemInput{ProductID: fx.prodA.Hex(), Quantity: 2})
	assert.Equal(t, models.StatusPending, o.Status)
	require.Len(t, o.Items, 1)
	assert.Equal(t, 2, o.Items[0].Quantity)
}

func TestPlaceRechecksProductExistence(t *testing.T) {
	fx := newOrderFixture(t)

	_, err := fx.svc.Place(context.Background(), fx.owner, []OrderItemInput{
		{ProductID: primitive.NewObjectID().Hex(), Quantity: 1},
	})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestPlaceRejectsUnavailableProduct(t *testing.T) {
	fx := newOrderFixture(t)
	p := fx.products.products[fx.prodA]
	p.Available = false
	fx.products.products[fx.prodA] = p

	_, err := fx.svc.Place(context.Background(), fx.owner, []OrderItemInput{
		{ProductID: fx.prodA.Hex(), Quantity: 1},
	})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestUpdateGuardSequence(t *testing.T) {
	fx := newOrderFixture(t)
	o := fx.place(t, OrderItemInput{ProductID: fx.prodA.Hex(), Quantity: 1})
	newItems := []OrderItemInput{{ProductID: fx.prodB.Hex(), Quantity: 1}}

	// Missing order reports NotFound even for a wrong caller.
	_, err := fx.svc.UpdateItems(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), newItems)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	// Wrong owner is Forbidden regardless of status.
	stranger := primitive.NewObjectID()
	_, err = fx.svc.UpdateItems(context.Background(), o.ID, stranger, newItems)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	// Completed order is InvalidState for the owner.
	_, err = fx.svc.SetStatus(context.Background(), o.ID, models.StatusCompleted)
	require.NoError(t, err)
	_, err = fx.svc.UpdateItems(context.Background(), o.ID, fx.owner, newItems)
	assert.True(t, apperr.Is(err, apperr.KindInvalidState))

	// Forbidden still wins over InvalidState for a stranger.
	_, err = fx.svc.UpdateItems(context.Background(), o.ID, stranger, newItems)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
}

func TestUpdateReplacesItemsWholesale(t *testing.T) {
	fx := newOrderFixture(t)
	o := fx.place(t, OrderItemInput{ProductID: fx.prodA.Hex(), Quantity: 3})

	updated, err := fx.svc.UpdateItems(context.Background(), o.ID, fx.owner, []OrderItemInput{
		{ProductID: fx.prodB.Hex(), Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, fx.prodB, updated.Items[0].ProductID)
}

func TestCancelGuards(t *testing.T) {
	fx := newOrderFixture(t)
	o := fx.place(t, OrderItemInput{ProductID: fx.prodA.Hex(), Quantity: 1})

	err := fx.svc.Cancel(context.Background(), o.ID, primitive.NewObjectID())
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	_, err = fx.svc.SetStatus(context.Background(), o.ID, models.StatusCompleted)
	require.NoError(t, err)

	err = fx.svc.Cancel(context.Background(), o.ID, fx.owner)
	assert.True(t, apperr.Is(err, apperr.KindInvalidState))

	// The order is untouched by the failed delete.
	_, err = fx.store.FindByID(context.Background(), o.ID)
	assert.NoError(t, err)
}

func TestCancelRemovesPendingOrder(t *testing.T) {
	fx := newOrderFixture(t)
	o := fx.place(t, OrderItemInput{ProductID: fx.prodA.Hex(), Quantity: 1})

	require.NoError(t, fx.svc.Cancel(context.Background(), o.ID, fx.owner))
	_, err := fx.store.FindByID(context.Background(), o.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestCompletedIsTerminal(t *testing.T) {
	fx := newOrderFixture(t)
	o := fx.place(t, OrderItemInput{ProductID: fx.prodA.Hex(), Quantity: 1})

	_, err := fx.svc.SetStatus(context.Background(), o.ID, models.StatusCompleted)
	require.NoError(t, err)

	_, err = fx.svc.SetStatus(context.Background(), o.ID, models.StatusPending)
	assert.True(t, apperr.Is(err, apperr.KindInvalidState))
}

func TestCompletionNotifiesExactlyOnce(t *testing.T) {
	fx := newOrderFixture(t)
	o := fx.place(t, OrderItemInput{ProductID: fx.prodA.Hex(), Quantity: 1})

	event.Reset()
	t.Cleanup(event.Reset)
	fired := 0
	event.Listen(EventOrderCompleted, func(any) { fired++ })

	_, err := fx.svc.SetStatus(context.Background(), o.ID, models.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, 1, fired)

	// Completing again is a no-op and fires nothing.
	got, err := fx.svc.SetStatus(context.Background(), o.ID, models.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, 1, fired)
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	fx := newOrderFixture(t)
	o := fx.place(t, OrderItemInput{ProductID: fx.prodA.Hex(), Quantity: 1})

	_, err := fx.svc.SetStatus(context.Background(), o.ID, "Shipped")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestDanglingProductRendersPlaceholder(t *testing.T) {
	fx := newOrderFixture(t)
	o := fx.place(t,
		OrderItemInput{ProductID: fx.prodA.Hex(), Quantity: 2},
		OrderItemInput{ProductID: fx.prodB.Hex(), Quantity: 1},
	)

	// Product A disappears from the catalog after the order was placed.
	delete(fx.products.products, fx.prodA)

	views, err := fx.svc.MyOrders(context.Background(), fx.owner)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Len(t, views[0].Items, 2)

	byID := map[primitive.ObjectID]models.ResolvedItem{}
	for _, it := range views[0].Items {
		byID[it.ProductID] = it
	}
	assert.True(t, byID[fx.prodA].Deleted)
	assert.Equal(t, "Deleted product", byID[fx.prodA].Name)
	assert.False(t, byID[fx.prodB].Deleted)
	assert.Equal(t, "Jeans", byID[fx.prodB].Name)

	// The order itself is intact.
	assert.Equal(t, 2, byID[fx.prodA].Quantity)
	assert.Equal(t, o.ID, views[0].ID)
}

func TestAllOrdersResolvesOwner(t *testing.T) {
	fx := newOrderFixture(t)
	fx.place(t, OrderItemInput{ProductID: fx.prodA.Hex(), Quantity: 1})

	views, err := fx.svc.AllOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Asha", views[0].OwnerName)
	assert.Equal(t, "asha@example.com", views[0].OwnerEmail)
}

func TestAttachBillOverwritesAndIgnoresStatus(t *testing.T) {
	fx := newOrderFixture(t)
	o := fx.place(t, OrderItemInput{ProductID: fx.prodA.Hex(), Quantity: 1})

	got, err := fx.svc.AttachBill(context.Background(), o.ID, "/uploads/bills/one.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/bills/one.jpg", got.BillImage)

	_, err = fx.svc.SetStatus(context.Background(), o.ID, models.StatusCompleted)
	require.NoError(t, err)

	got, err = fx.svc.AttachBill(context.Background(), o.ID, "/uploads/bills/two.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/bills/two.jpg", got.BillImage)
}

// The end-to-end storefront flow: merge in the cart, place, complete, then
// a late cancel attempt bounces off the terminal state.
func TestStorefrontScenario(t *testing.T) {
	fx := newOrderFixture(t)

	o := fx.place(t,
		OrderItemInput{ProductID: fx.prodA.Hex(), Quantity: 2},
		OrderItemInput{ProductID: fx.prodB.Hex(), Quantity: 1},
	)
	require.Len(t, o.Items, 2)
	assert.Equal(t, 2, o.Items[0].Quantity)
	assert.Equal(t, 1, o.Items[1].Quantity)

	_, err := fx.svc.SetStatus(context.Background(), o.ID, models.StatusCompleted)
	require.NoError(t, err)

	err = fx.svc.Cancel(context.Background(), o.ID, fx.owner)
	assert.True(t, apperr.Is(err, apperr.KindInvalidState))
}
