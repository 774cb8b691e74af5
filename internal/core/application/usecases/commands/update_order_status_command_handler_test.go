package commands_test

import (
	"errors"
	"log/slog"
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestUpdateOrderStatusCommandHandler_Handle_FarmerShips(t *testing.T) {
	ctx := t.Context()
	farmerID := kernel.NewUUID()
	productID := kernel.NewUUID()
	ord := restoreOrder(t, productID, kernel.NewUUID(), 2, order.Pending)
	cmd, _ := commands.NewUpdateOrderStatusCommand(farmerID, ord.ID(), order.Shipped)

	userRepo := new(MockUserRepository)
	userRepo.On("Get", ctx, farmerID).Return(restoreUser(t, farmerID, user.Farmer), nil).Once()
	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()
	orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) {
			updated := args.Get(1).(*order.Order)
			assert.Equal(t, order.Shipped, updated.Status())
		}).Return(nil).Once()
	productRepo := new(MockProductRepository)
	productRepo.On("Get", ctx, productID).
		Return(restoreProduct(t, productID, farmerID, 2.0, 5), nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(userRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("ProductRepository").Return(productRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	creator := new(MockDeliveryCreator)
	creator.On("CreateForOrder", ctx, ord.ID()).Return(nil).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, creator, testLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	creator.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_DeliveryCreationFailureIsSwallowed(t *testing.T) {
	ctx := t.Context()
	adminID := kernel.NewUUID()
	ord := restoreOrder(t, kernel.NewUUID(), kernel.NewUUID(), 2, order.Pending)
	cmd, _ := commands.NewUpdateOrderStatusCommand(adminID, ord.ID(), order.Shipped)

	userRepo := new(MockUserRepository)
	userRepo.On("Get", ctx, adminID).Return(restoreUser(t, adminID, user.Admin), nil).Once()
	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()
	orderRepo.On("Update", ctx, mock.Anything).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(userRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	creator := new(MockDeliveryCreator)
	creator.On("CreateForOrder", ctx, ord.ID()).Return(errors.New("delivery store down")).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, creator, testLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	creator.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_RepeatedShippedDoesNotRecreateDelivery(t *testing.T) {
	ctx := t.Context()
	adminID := kernel.NewUUID()
	ord := restoreOrder(t, kernel.NewUUID(), kernel.NewUUID(), 2, order.Shipped)
	cmd, _ := commands.NewUpdateOrderStatusCommand(adminID, ord.ID(), order.Shipped)

	userRepo := new(MockUserRepository)
	userRepo.On("Get", ctx, adminID).Return(restoreUser(t, adminID, user.Admin), nil).Once()
	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()
	orderRepo.On("Update", ctx, mock.Anything).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(userRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	creator := new(MockDeliveryCreator)

	h := commands.NewUpdateOrderStatusCommandHandler(factory, creator, testLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	creator.AssertNotCalled(t, "CreateForOrder", ctx, ord.ID())
}

func TestUpdateOrderStatusCommandHandler_Handle_BuyerRejected(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	cmd, _ := commands.NewUpdateOrderStatusCommand(buyerID, kernel.NewUUID(), order.Shipped)

	userRepo := new(MockUserRepository)
	userRepo.On("Get", ctx, buyerID).Return(restoreUser(t, buyerID, user.Buyer), nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(userRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	creator := new(MockDeliveryCreator)

	h := commands.NewUpdateOrderStatusCommandHandler(factory, creator, testLogger())
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestUpdateOrderStatusCommandHandler_Handle_ForeignFarmerRejected(t *testing.T) {
	ctx := t.Context()
	farmerID := kernel.NewUUID()
	productID := kernel.NewUUID()
	ord := restoreOrder(t, productID, kernel.NewUUID(), 2, order.Pending)
	cmd, _ := commands.NewUpdateOrderStatusCommand(farmerID, ord.ID(), order.Shipped)

	userRepo := new(MockUserRepository)
	userRepo.On("Get", ctx, farmerID).Return(restoreUser(t, farmerID, user.Farmer), nil).Once()
	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()
	productRepo := new(MockProductRepository)
	productRepo.On("Get", ctx, productID).
		Return(restoreProduct(t, productID, kernel.NewUUID(), 2.0, 5), nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(userRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("ProductRepository").Return(productRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, new(MockDeliveryCreator), testLogger())
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestUpdateOrderStatusCommandHandler_Handle_TerminalOrderRejected(t *testing.T) {
	ctx := t.Context()
	adminID := kernel.NewUUID()
	ord := restoreOrder(t, kernel.NewUUID(), kernel.NewUUID(), 2, order.Cancelled)
	cmd, _ := commands.NewUpdateOrderStatusCommand(adminID, ord.ID(), order.Shipped)

	userRepo := new(MockUserRepository)
	userRepo.On("Get", ctx, adminID).Return(restoreUser(t, adminID, user.Admin), nil).Once()
	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(userRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, new(MockDeliveryCreator), testLogger())
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	orderRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
}
