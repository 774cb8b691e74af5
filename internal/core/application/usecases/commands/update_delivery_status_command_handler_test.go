package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func restoreDelivery(t *testing.T, orderID, farmerID kernel.UUID, status delivery.Status, actual *time.Time) *delivery.Delivery {
	t.Helper()
	d, err := delivery.RestoreDelivery(
		kernel.NewUUID(), orderID, farmerID, kernel.NewUUID(),
		status, time.Now().AddDate(0, 0, 3), actual, "Warehouse", "")
	require.NoError(t, err)
	return d
}

func TestUpdateDeliveryStatusCommandHandler_Handle_TrackingUpdate(t *testing.T) {
	ctx := t.Context()
	farmerID := kernel.NewUUID()
	del := restoreDelivery(t, kernel.NewUUID(), farmerID, delivery.Pending, nil)
	cmd, _ := commands.NewUpdateDeliveryStatusCommand(
		farmerID, del.OrderID(), delivery.InTransit, "Sorting hub", "")

	userRepo := new(MockUserRepository)
	userRepo.On("Get", ctx, farmerID).Return(restoreUser(t, farmerID, user.Farmer), nil).Once()
	deliveryRepo := new(MockDeliveryRepository)
	deliveryRepo.On("GetByOrderID", ctx, del.OrderID()).Return(del, nil).Once()
	deliveryRepo.On("Update", ctx, mock.AnythingOfType("*delivery.Delivery")).
		Run(func(args mock.Arguments) {
			updated := args.Get(1).(*delivery.Delivery)
			assert.Equal(t, delivery.InTransit, updated.Status())
			assert.Equal(t, "Sorting hub", updated.TrackingLocation())
			assert.Nil(t, updated.ActualDelivery())
		}).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(userRepo).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateDeliveryStatusCommandHandler(factory, testLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	uow.AssertExpectations(t)
	uow.AssertNotCalled(t, "OrderRepository")
}

func TestUpdateDeliveryStatusCommandHandler_Handle_DeliveredMarksOrder(t *testing.T) {
	ctx := t.Context()
	farmerID := kernel.NewUUID()
	ord := restoreOrder(t, kernel.NewUUID(), kernel.NewUUID(), 2, order.Shipped)
	del := restoreDelivery(t, ord.ID(), farmerID, delivery.InTransit, nil)
	cmd, _ := commands.NewUpdateDeliveryStatusCommand(
		farmerID, del.OrderID(), delivery.Delivered, "Front door", "signed")

	userRepo := new(MockUserRepository)
	userRepo.On("Get", ctx, farmerID).Return(restoreUser(t, farmerID, user.Farmer), nil).Once()
	deliveryRepo := new(MockDeliveryRepository)
	deliveryRepo.On("GetByOrderID", ctx, del.OrderID()).Return(del, nil).Once()
	deliveryRepo.On("Update", ctx, mock.AnythingOfType("*delivery.Delivery")).
		Run(func(args mock.Arguments) {
			updated := args.Get(1).(*delivery.Delivery)
			assert.True(t, updated.Status().IsDelivered())
			require.NotNil(t, updated.ActualDelivery())
		}).Return(nil).Once()
	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()
	orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) {
			updated := args.Get(1).(*order.Order)
			assert.Equal(t, order.Delivered, updated.Status())
		}).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(userRepo).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateDeliveryStatusCommandHandler(factory, testLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestUpdateDeliveryStatusCommandHandler_Handle_ConfirmationAfterOrderAlreadyDelivered(t *testing.T) {
	ctx := t.Context()
	farmerID := kernel.NewUUID()
	ord := restoreOrder(t, kernel.NewUUID(), kernel.NewUUID(), 2, order.Delivered)
	del := restoreDelivery(t, ord.ID(), farmerID, delivery.InTransit, nil)
	cmd, _ := commands.NewUpdateDeliveryStatusCommand(
		farmerID, del.OrderID(), delivery.Delivered, "Front door", "")

	userRepo := new(MockUserRepository)
	userRepo.On("Get", ctx, farmerID).Return(restoreUser(t, farmerID, user.Farmer), nil).Once()
	deliveryRepo := new(MockDeliveryRepository)
	deliveryRepo.On("GetByOrderID", ctx, del.OrderID()).Return(del, nil).Once()
	deliveryRepo.On("Update", ctx, mock.AnythingOfType("*delivery.Delivery")).
		Run(func(args mock.Arguments) {
			updated := args.Get(1).(*delivery.Delivery)
			assert.True(t, updated.Status().IsDelivered())
			require.NotNil(t, updated.ActualDelivery())
		}).Return(nil).Once()
	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(userRepo).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateDeliveryStatusCommandHandler(factory, testLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	uow.AssertExpectations(t)
	orderRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
}

func TestUpdateDeliveryStatusCommandHandler_Handle_RepeatedDeliveredLeavesOrderAlone(t *testing.T) {
	ctx := t.Context()
	adminID := kernel.NewUUID()
	stamped := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	del := restoreDelivery(t, kernel.NewUUID(), kernel.NewUUID(), delivery.Delivered, &stamped)
	cmd, _ := commands.NewUpdateDeliveryStatusCommand(
		adminID, del.OrderID(), delivery.Delivered, "", "")

	userRepo := new(MockUserRepository)
	userRepo.On("Get", ctx, adminID).Return(restoreUser(t, adminID, user.Admin), nil).Once()
	deliveryRepo := new(MockDeliveryRepository)
	deliveryRepo.On("GetByOrderID", ctx, del.OrderID()).Return(del, nil).Once()
	deliveryRepo.On("Update", ctx, mock.AnythingOfType("*delivery.Delivery")).
		Run(func(args mock.Arguments) {
			updated := args.Get(1).(*delivery.Delivery)
			require.NotNil(t, updated.ActualDelivery())
			assert.Equal(t, stamped, *updated.ActualDelivery())
		}).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(userRepo).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateDeliveryStatusCommandHandler(factory, testLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	uow.AssertNotCalled(t, "OrderRepository")
}

func TestUpdateDeliveryStatusCommandHandler_Handle_ForeignFarmerRejected(t *testing.T) {
	ctx := t.Context()
	actorID := kernel.NewUUID()
	del := restoreDelivery(t, kernel.NewUUID(), kernel.NewUUID(), delivery.Pending, nil)
	cmd, _ := commands.NewUpdateDeliveryStatusCommand(
		actorID, del.OrderID(), delivery.InTransit, "", "")

	userRepo := new(MockUserRepository)
	userRepo.On("Get", ctx, actorID).Return(restoreUser(t, actorID, user.Farmer), nil).Once()
	deliveryRepo := new(MockDeliveryRepository)
	deliveryRepo.On("GetByOrderID", ctx, del.OrderID()).Return(del, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(userRepo).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateDeliveryStatusCommandHandler(factory, testLogger())
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
	deliveryRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
}
