package queries_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCartStorage struct{ mock.Mock }

func (m *MockCartStorage) Load(ctx context.Context, session string) (*cart.Cart, error) {
	args := m.Called(ctx, session)
	if c := args.Get(0); c != nil {
		return c.(*cart.Cart), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartStorage) Save(ctx context.Context, session string, c *cart.Cart) error {
	return m.Called(ctx, session, c).Error(0)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) ListBySupplier(ctx context.Context, supplierID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, supplierID)
	if orders := args.Get(0); orders != nil {
		return orders.([]*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

// stubUoW hands out the mock repository and nothing else. Queries never begin
// a transaction.
type stubUoW struct {
	ports.UnitOfWork
	orders *MockOrderRepository
}

func (u stubUoW) OrderRepository() ports.OrderRepository { return u.orders }

type stubUoWFactory struct{ orders *MockOrderRepository }

func (f stubUoWFactory) Create() ports.UnitOfWork { return stubUoW{orders: f.orders} }

type MockMessageLinkBuilder struct{ mock.Mock }

func (m *MockMessageLinkBuilder) Link(phone, escapedMessage string) (string, error) {
	args := m.Called(phone, escapedMessage)
	return args.String(0), args.Error(1)
}

func (m *MockMessageLinkBuilder) QRCode(link string, size int) ([]byte, error) {
	args := m.Called(link, size)
	if b := args.Get(0); b != nil {
		return b.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

var afternoon = time.Date(2026, 3, 14, 14, 0, 0, 0, time.UTC)

func newOrder(t *testing.T, supplier catalog.Supplier, placement order.Placement, placedAt time.Time) *order.Order {
	t.Helper()

	price, err := kernel.NewMoney(1250)
	require.NoError(t, err)
	dish, err := catalog.NewDish(kernel.NewUUID(), "Feijoada", price, "", supplier)
	require.NoError(t, err)
	item, err := order.NewItem(dish, 2)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), supplier, []order.Item{item}, placement, placedAt)
	require.NoError(t, err)
	return o
}

func newSupplier(t *testing.T) catalog.Supplier {
	t.Helper()
	s, err := catalog.NewSupplier(kernel.NewUUID(), "Cozinha da Ana")
	require.NoError(t, err)
	return s
}
