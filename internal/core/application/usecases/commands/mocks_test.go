package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 14, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListBySupplier(ctx context.Context, supplierID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockStatusChangeRepository struct{ mock.Mock }

func (m *MockStatusChangeRepository) Add(ctx context.Context, change order.StatusChange) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) StatusChangeRepository() ports.StatusChangeRepository {
	args := m.Called()
	return args.Get(0).(ports.StatusChangeRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockConfirmer struct{ mock.Mock }

func (m *MockConfirmer) Confirm(ctx context.Context, candidate cart.Item) (bool, error) {
	args := m.Called(ctx, candidate)
	return args.Bool(0), args.Error(1)
}

type MockCartStorage struct{ mock.Mock }

func (m *MockCartStorage) Load(ctx context.Context, session string) (*cart.Cart, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartStorage) Save(ctx context.Context, session string, c *cart.Cart) error {
	args := m.Called(ctx, session, c)
	return args.Error(0)
}

// memoryCartStorage keeps snapshots, so a cart mutated but not saved is not
// observed by the next Load.
type memoryCartStorage struct {
	mu    sync.Mutex
	carts map[string]cartSnapshot
}

type cartSnapshot struct {
	items    []cart.Item
	supplier *catalog.Supplier
	pending  *cart.Item
}

func newMemoryCartStorage() *memoryCartStorage {
	return &memoryCartStorage{carts: make(map[string]cartSnapshot)}
}

func (s *memoryCartStorage) Load(_ context.Context, session string) (*cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.carts[session]
	if !ok {
		return cart.NewCart(), nil
	}
	return cart.RestoreCart(snap.items, snap.supplier, snap.pending)
}

func (s *memoryCartStorage) Save(_ context.Context, session string, c *cart.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := cartSnapshot{items: c.Items(), supplier: c.BoundSupplier()}
	if pending, ok := c.PendingConflict(); ok {
		snap.pending = &pending
	}
	s.carts[session] = snap
	return nil
}

func newSupplier(t *testing.T, name string) catalog.Supplier {
	t.Helper()
	s, err := catalog.NewSupplier(kernel.NewUUID(), name)
	require.NoError(t, err)
	return s
}

func newDish(t *testing.T, supplier catalog.Supplier, name string, cents int64) catalog.Dish {
	t.Helper()
	price, err := kernel.NewMoney(cents)
	require.NoError(t, err)
	d, err := catalog.NewDish(kernel.NewUUID(), name, price, "", supplier)
	require.NoError(t, err)
	return d
}

func newOrder(t *testing.T, mode order.FulfillmentMode) *order.Order {
	t.Helper()
	supplier := newSupplier(t, "Cozinha da Ana")
	item, err := order.NewItem(newDish(t, supplier, "Prato", 1000), 1)
	require.NoError(t, err)

	placement := order.Placement{CustomerName: "Maria", Mode: mode}
	if mode == order.Delivery {
		placement.DeliveryAddress = "Rua A, 1"
	}
	o, err := order.NewOrder(kernel.NewUUID(), supplier, []order.Item{item}, placement, fixedNow.Add(-time.Hour))
	require.NoError(t, err)
	return o
}
