package commands_test

import (
	"errors"
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func seedCart(t *testing.T, storage *memoryCartStorage) {
	t.Helper()
	supplier := newSupplier(t, "Cozinha da Ana")
	handler := commands.NewAddCartItemCommandHandler(storage, commands.NewSessionLocks(), nil)

	for _, line := range []struct {
		name  string
		cents int64
		qty   int
	}{{"Feijoada", 1000, 2}, {"Suco", 550, 1}} {
		cmd, err := commands.NewAddCartItemCommand(session, newDish(t, supplier, line.name, line.cents), line.qty)
		require.NoError(t, err)
		_, err = handler.Handle(t.Context(), cmd)
		require.NoError(t, err)
	}
}

func TestNewCheckoutCartCommand_Invalid(t *testing.T) {
	_, err := commands.NewCheckoutCartCommand(session, kernel.NewUUID(), order.Placement{CustomerName: "Maria"})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewCheckoutCartCommand(session, kernel.UUID{}, order.Placement{Mode: order.Pickup})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestCheckoutCartCommandHandler_Success(t *testing.T) {
	ctx := t.Context()
	storage := newMemoryCartStorage()
	seedCart(t, storage)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCheckoutCartCommand(session, orderID, order.Placement{
		CustomerName:    "Maria",
		Mode:            order.Delivery,
		DeliveryAddress: "Rua das Flores, 10",
	})
	require.NoError(t, err)

	handler := commands.NewCheckoutCartCommandHandler(storage, commands.NewSessionLocks(), factory, clock, discardLogger())
	o, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, o.ID().IsEqual(orderID))
	assert.Equal(t, order.New, o.Status())
	assert.Equal(t, int64(2550), o.TotalValue().Cents())
	assert.Equal(t, fixedNow, o.PlacedAt())
	require.Len(t, o.Items(), 2)
	assert.Equal(t, "Feijoada", o.Items()[0].Dish().Name())

	stored, _ := storage.Load(ctx, session)
	assert.True(t, stored.IsEmpty())
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestCheckoutCartCommandHandler_EmptyCart(t *testing.T) {
	factory := new(MockUoWFactory)
	handler := commands.NewCheckoutCartCommandHandler(newMemoryCartStorage(), commands.NewSessionLocks(), factory, clock, discardLogger())

	cmd, _ := commands.NewCheckoutCartCommand(session, kernel.NewUUID(), order.Placement{CustomerName: "Maria", Mode: order.Pickup})
	_, err := handler.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, cart.ErrCartIsEmpty)
	factory.AssertNotCalled(t, "Create")
}

func TestCheckoutCartCommandHandler_DeliveryWithoutAddress(t *testing.T) {
	ctx := t.Context()
	storage := newMemoryCartStorage()
	seedCart(t, storage)
	factory := new(MockUoWFactory)
	handler := commands.NewCheckoutCartCommandHandler(storage, commands.NewSessionLocks(), factory, clock, discardLogger())

	cmd, _ := commands.NewCheckoutCartCommand(session, kernel.NewUUID(), order.Placement{CustomerName: "Maria", Mode: order.Delivery})
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrMalformedOrder)
	factory.AssertNotCalled(t, "Create")
	stored, _ := storage.Load(ctx, session)
	assert.Equal(t, 3, stored.TotalItemCount())
}

func TestCheckoutCartCommandHandler_PersistenceFailureKeepsCart(t *testing.T) {
	ctx := t.Context()
	storage := newMemoryCartStorage()
	seedCart(t, storage)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Add", ctx, mock.Anything).Return(errors.New("connection reset")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	cmd, _ := commands.NewCheckoutCartCommand(session, kernel.NewUUID(), order.Placement{CustomerName: "Maria", Mode: order.Pickup})
	handler := commands.NewCheckoutCartCommandHandler(storage, commands.NewSessionLocks(), factory, clock, discardLogger())
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrPersistenceUnavailable)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	stored, _ := storage.Load(ctx, session)
	assert.Equal(t, 3, stored.TotalItemCount())
}
