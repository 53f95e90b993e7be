package http_test

import (
	"context"
	"sync"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"
	"marketplace/internal/pkg/errs"
)

type memoryCartStorage struct {
	mu    sync.Mutex
	carts map[string]*cart.Cart
}

func newMemoryCartStorage() *memoryCartStorage {
	return &memoryCartStorage{carts: make(map[string]*cart.Cart)}
}

func (s *memoryCartStorage) Load(_ context.Context, session string) (*cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.carts[session]
	if !ok {
		return cart.NewCart(), nil
	}
	var pending *cart.Item
	if p, ok := stored.PendingConflict(); ok {
		pending = &p
	}
	return cart.RestoreCart(stored.Items(), stored.BoundSupplier(), pending)
}

func (s *memoryCartStorage) Save(_ context.Context, session string, c *cart.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[session] = c
	return nil
}

type memoryOrders struct {
	mu      sync.Mutex
	orders  map[kernel.UUID]*order.Order
	changes []order.StatusChange
}

func newMemoryOrders() *memoryOrders {
	return &memoryOrders{orders: make(map[kernel.UUID]*order.Order)}
}

func (m *memoryOrders) Add(_ context.Context, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.ID()] = o
	return nil
}

func (m *memoryOrders) Update(_ context.Context, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[o.ID()]; !ok {
		return errs.NewObjectNotFoundError("order", o.ID().String())
	}
	m.orders[o.ID()] = o
	return nil
}

func (m *memoryOrders) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return o, nil
}

func (m *memoryOrders) ListBySupplier(_ context.Context, supplierID kernel.UUID) ([]*order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*order.Order, 0)
	for _, o := range m.orders {
		if o.Supplier().ID().IsEqual(supplierID) {
			out = append(out, o)
		}
	}
	return out, nil
}

type memoryStatusChanges struct{ orders *memoryOrders }

func (m memoryStatusChanges) Add(_ context.Context, change order.StatusChange) error {
	m.orders.mu.Lock()
	defer m.orders.mu.Unlock()
	m.orders.changes = append(m.orders.changes, change)
	return nil
}

// memoryUoW satisfies both the command-side and the port-side unit of work.
type memoryUoW struct{ orders *memoryOrders }

func (memoryUoW) Begin(context.Context) error    { return nil }
func (memoryUoW) Commit(context.Context) error   { return nil }
func (memoryUoW) Rollback(context.Context) error { return nil }

func (u memoryUoW) OrderRepository() ports.OrderRepository { return u.orders }

func (u memoryUoW) StatusChangeRepository() ports.StatusChangeRepository {
	return memoryStatusChanges{orders: u.orders}
}

type commandUoWFactory struct{ orders *memoryOrders }

func (f commandUoWFactory) Create() commands.UoW { return memoryUoW{orders: f.orders} }

type queryUoWFactory struct{ orders *memoryOrders }

func (f queryUoWFactory) Create() ports.UnitOfWork { return memoryUoW{orders: f.orders} }

type recordingBoardCache struct {
	mu          sync.Mutex
	watched     []kernel.UUID
	invalidated []kernel.UUID
	snapshots   map[kernel.UUID]jobs.BoardSnapshot
}

func (c *recordingBoardCache) Watch(id kernel.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.watched = append(c.watched, id)
}

func (c *recordingBoardCache) Invalidate(id kernel.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, id)
}

func (c *recordingBoardCache) Snapshot(id kernel.UUID) (jobs.BoardSnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.snapshots[id]
	return s, ok
}
