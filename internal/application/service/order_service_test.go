package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
	"github.com/sparetrack/sparetrack-api/internal/domain/enum"
	"github.com/sparetrack/sparetrack-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeTestOrder(t *testing.T, env *testEnv, retailerID uuid.UUID, lines ...OrderLineInput) *entity.Order {
	t.Helper()
	order, err := env.orders.PlaceOrder(env.ctx, &PlaceOrderInput{
		RetailerID: retailerID,
		Items:      lines,
	})
	require.NoError(t, err)
	return order
}

func TestPlaceOrder_SnapshotsSellingPrice(t *testing.T) {
	env := newTestEnv(t)
	retailer := env.createRetailer(t, "Ravi Auto", "9000000001")
	item := env.createItem(t, "Brake Pad", "150", 10)

	order := placeTestOrder(t, env, retailer.ID, OrderLineInput{ItemID: item.ID, Quantity: 5})

	assert.Equal(t, enum.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 5, order.Items[0].RequestedQty)
	assert.Equal(t, 0, order.Items[0].FulfilledQty)
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.NewFromInt(150)))

	// Placement reserves nothing.
	assert.Equal(t, 10, env.stockOf(t, item.ID))
}

func TestPlaceOrder_RejectsDuplicateLines(t *testing.T) {
	env := newTestEnv(t)
	retailer := env.createRetailer(t, "Ravi Auto", "9000000001")
	item := env.createItem(t, "Brake Pad", "150", 10)

	_, err := env.orders.PlaceOrder(env.ctx, &PlaceOrderInput{
		RetailerID: retailer.ID,
		Items: []OrderLineInput{
			{ItemID: item.ID, Quantity: 2},
			{ItemID: item.ID, Quantity: 3},
		},
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestPlaceOrder_RejectsNonRetailer(t *testing.T) {
	env := newTestEnv(t)
	staff := env.createStaffUser(t, "Counter Staff", "9000000002", enum.UserRoleStaff)
	item := env.createItem(t, "Brake Pad", "150", 10)

	_, err := env.orders.PlaceOrder(env.ctx, &PlaceOrderInput{
		RetailerID: staff.ID,
		Items:      []OrderLineInput{{ItemID: item.ID, Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestDispatchOrder_PartialFulfillmentAtPlacementPrice(t *testing.T) {
	env := newTestEnv(t)
	retailer := env.createRetailer(t, "Ravi Auto", "9000000001")
	item := env.createItem(t, "Brake Pad", "150", 10)

	order := placeTestOrder(t, env, retailer.ID, OrderLineInput{ItemID: item.ID, Quantity: 10})

	// Catalog price moves after placement; the dispatch must not care.
	newPrice := decimal.NewFromInt(999)
	_, err := env.items.UpdateItem(env.ctx, env.shop.ID, item.ID, &UpdateItemInput{
		SellingPrice: &newPrice,
	})
	require.NoError(t, err)

	dispatched, err := env.orders.DispatchOrder(env.ctx, env.shop.ID, order.ID, &DispatchOrderInput{
		Lines:        []DispatchLineInput{{ItemID: item.ID, FulfilledQty: 4}},
		DeliveryType: enum.DeliveryTypePickup,
	})
	require.NoError(t, err)

	assert.Equal(t, enum.OrderStatusDispatched, dispatched.Status)
	require.NotNil(t, dispatched.InvoiceID)
	assert.Equal(t, 6, env.stockOf(t, item.ID))

	line, err := env.orderRepo.GetLine(env.ctx, order.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, line.FulfilledQty)

	invoice, err := env.invoiceRepo.GetByID(env.ctx, env.shop.ID, *dispatched.InvoiceID)
	require.NoError(t, err)
	require.NotNil(t, invoice)
	assert.True(t, invoice.GrandTotal.Equal(decimal.NewFromInt(600)), "billed at the placement price, not the new catalog price")
	assert.Equal(t, enum.PaymentModeCredit, invoice.PaymentMode)
	assert.True(t, invoice.PaidAmount.IsZero())

	// Single debit for the whole dispatch.
	entries := env.ledgerOf(t, retailer.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, enum.EntryTypeDebit, entries[0].EntryType)
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(600)))
	assert.True(t, env.balanceOf(t, retailer.ID).Equal(decimal.NewFromInt(600)))
}

func TestDispatchOrder_RejectsEmptyFulfillment(t *testing.T) {
	env := newTestEnv(t)
	retailer := env.createRetailer(t, "Ravi Auto", "9000000001")
	item := env.createItem(t, "Brake Pad", "150", 10)

	order := placeTestOrder(t, env, retailer.ID, OrderLineInput{ItemID: item.ID, Quantity: 5})

	_, err := env.orders.DispatchOrder(env.ctx, env.shop.ID, order.ID, &DispatchOrderInput{
		Lines:        []DispatchLineInput{{ItemID: item.ID, FulfilledQty: 0}},
		DeliveryType: enum.DeliveryTypePickup,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	fresh, err := env.orderRepo.GetByID(env.ctx, env.shop.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusPending, fresh.Status)
	assert.Equal(t, 10, env.stockOf(t, item.ID))
	assert.Equal(t, int64(0), env.countRows(t, &entity.Invoice{}))
}

func TestDispatchOrder_RejectsOverFulfillment(t *testing.T) {
	env := newTestEnv(t)
	retailer := env.createRetailer(t, "Ravi Auto", "9000000001")
	item := env.createItem(t, "Brake Pad", "150", 10)

	order := placeTestOrder(t, env, retailer.ID, OrderLineInput{ItemID: item.ID, Quantity: 3})

	_, err := env.orders.DispatchOrder(env.ctx, env.shop.ID, order.ID, &DispatchOrderInput{
		Lines:        []DispatchLineInput{{ItemID: item.ID, FulfilledQty: 4}},
		DeliveryType: enum.DeliveryTypePickup,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
	assert.Equal(t, 10, env.stockOf(t, item.ID))
}

func TestDispatchOrder_AlreadyProcessed(t *testing.T) {
	env := newTestEnv(t)
	retailer := env.createRetailer(t, "Ravi Auto", "9000000001")
	item := env.createItem(t, "Brake Pad", "150", 10)

	order := placeTestOrder(t, env, retailer.ID, OrderLineInput{ItemID: item.ID, Quantity: 2})

	dispatch := &DispatchOrderInput{
		Lines:        []DispatchLineInput{{ItemID: item.ID, FulfilledQty: 2}},
		DeliveryType: enum.DeliveryTypePickup,
	}
	_, err := env.orders.DispatchOrder(env.ctx, env.shop.ID, order.ID, dispatch)
	require.NoError(t, err)

	_, err = env.orders.DispatchOrder(env.ctx, env.shop.ID, order.ID, dispatch)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)

	// The second attempt must not double-deduct or double-bill.
	assert.Equal(t, 8, env.stockOf(t, item.ID))
	assert.Len(t, env.ledgerOf(t, retailer.ID), 1)
}

func TestDispatchOrder_InsufficientStockRollsBack(t *testing.T) {
	env := newTestEnv(t)
	retailer := env.createRetailer(t, "Ravi Auto", "9000000001")
	plenty := env.createItem(t, "Brake Pad", "150", 10)
	scarce := env.createItem(t, "Clutch Plate", "900", 1)

	order := placeTestOrder(t, env, retailer.ID,
		OrderLineInput{ItemID: plenty.ID, Quantity: 2},
		OrderLineInput{ItemID: scarce.ID, Quantity: 5},
	)

	_, err := env.orders.DispatchOrder(env.ctx, env.shop.ID, order.ID, &DispatchOrderInput{
		Lines: []DispatchLineInput{
			{ItemID: plenty.ID, FulfilledQty: 2},
			{ItemID: scarce.ID, FulfilledQty: 5},
		},
		DeliveryType: enum.DeliveryTypePickup,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CLUTCH PLATE")

	assert.Equal(t, 10, env.stockOf(t, plenty.ID))
	assert.Equal(t, 1, env.stockOf(t, scarce.ID))

	fresh, err := env.orderRepo.GetByID(env.ctx, env.shop.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusPending, fresh.Status)
	for _, line := range fresh.Items {
		assert.Equal(t, 0, line.FulfilledQty)
	}
	assert.Equal(t, int64(0), env.countRows(t, &entity.Invoice{}))
	assert.Empty(t, env.ledgerOf(t, retailer.ID))
}

func TestDispatchOrder_PartnerDeliveryAssignsDriver(t *testing.T) {
	env := newTestEnv(t)
	retailer := env.createRetailer(t, "Ravi Auto", "9000000001")
	item := env.createItem(t, "Brake Pad", "150", 10)

	vehicle := "KA-01-AB-1234"
	partner := &entity.DeliveryPartner{
		ShopID:        env.shop.ID,
		Name:          "Fast Couriers",
		Phone:         "9222222222",
		VehicleNumber: &vehicle,
	}
	require.NoError(t, env.db.Create(partner).Error)

	order := placeTestOrder(t, env, retailer.ID, OrderLineInput{ItemID: item.ID, Quantity: 2})

	dispatched, err := env.orders.DispatchOrder(env.ctx, env.shop.ID, order.ID, &DispatchOrderInput{
		Lines:        []DispatchLineInput{{ItemID: item.ID, FulfilledQty: 2}},
		DeliveryType: enum.DeliveryTypePartner,
		PartnerID:    &partner.ID,
	})
	require.NoError(t, err)

	require.NotNil(t, dispatched.DriverName)
	assert.Equal(t, "Fast Couriers", *dispatched.DriverName)
	require.NotNil(t, dispatched.VehicleDetails)
	assert.Equal(t, vehicle, *dispatched.VehicleDetails)
}

func TestDispatchOrder_PartnerRequired(t *testing.T) {
	env := newTestEnv(t)
	retailer := env.createRetailer(t, "Ravi Auto", "9000000001")
	item := env.createItem(t, "Brake Pad", "150", 10)

	order := placeTestOrder(t, env, retailer.ID, OrderLineInput{ItemID: item.ID, Quantity: 2})

	_, err := env.orders.DispatchOrder(env.ctx, env.shop.ID, order.ID, &DispatchOrderInput{
		Lines:        []DispatchLineInput{{ItemID: item.ID, FulfilledQty: 2}},
		DeliveryType: enum.DeliveryTypePartner,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	// Assignment failure aborts the whole dispatch, stock included.
	assert.Equal(t, 10, env.stockOf(t, item.ID))
}

func TestMarkDelivered_DispatchedOnly(t *testing.T) {
	env := newTestEnv(t)
	retailer := env.createRetailer(t, "Ravi Auto", "9000000001")
	item := env.createItem(t, "Brake Pad", "150", 10)

	order := placeTestOrder(t, env, retailer.ID, OrderLineInput{ItemID: item.ID, Quantity: 2})

	_, err := env.orders.MarkDelivered(env.ctx, env.shop.ID, order.ID)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)

	_, err = env.orders.DispatchOrder(env.ctx, env.shop.ID, order.ID, &DispatchOrderInput{
		Lines:        []DispatchLineInput{{ItemID: item.ID, FulfilledQty: 2}},
		DeliveryType: enum.DeliveryTypePickup,
	})
	require.NoError(t, err)

	delivered, err := env.orders.MarkDelivered(env.ctx, env.shop.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusDelivered, delivered.Status)
}

func TestCancelOrder_PendingOnly(t *testing.T) {
	env := newTestEnv(t)
	retailer := env.createRetailer(t, "Ravi Auto", "9000000001")
	item := env.createItem(t, "Brake Pad", "150", 10)

	order := placeTestOrder(t, env, retailer.ID, OrderLineInput{ItemID: item.ID, Quantity: 2})
	require.NoError(t, env.orders.CancelOrder(env.ctx, env.shop.ID, order.ID))

	fresh, err := env.orderRepo.GetByID(env.ctx, env.shop.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusCancelled, fresh.Status)

	err = env.orders.CancelOrder(env.ctx, env.shop.ID, order.ID)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestDispatchOrder_RejectsLineNotOnOrder(t *testing.T) {
	env := newTestEnv(t)
	retailer := env.createRetailer(t, "Ravi Auto", "9000000001")
	item := env.createItem(t, "Brake Pad", "150", 10)

	order := placeTestOrder(t, env, retailer.ID, OrderLineInput{ItemID: item.ID, Quantity: 5})

	// A typo'd item id must surface as an error, not silently ship zero.
	_, err := env.orders.DispatchOrder(env.ctx, env.shop.ID, order.ID, &DispatchOrderInput{
		Lines: []DispatchLineInput{
			{ItemID: item.ID, FulfilledQty: 2},
			{ItemID: uuid.New(), FulfilledQty: 3},
		},
		DeliveryType: enum.DeliveryTypePickup,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	fresh, err := env.orderRepo.GetByID(env.ctx, env.shop.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusPending, fresh.Status)
	assert.Equal(t, 10, env.stockOf(t, item.ID))
	assert.Equal(t, int64(0), env.countRows(t, &entity.Invoice{}))
}

func TestOrderStatusClaim_SingleWinner(t *testing.T) {
	env := newTestEnv(t)
	retailer := env.createRetailer(t, "Ravi Auto", "9000000001")
	item := env.createItem(t, "Brake Pad", "150", 10)

	order := placeTestOrder(t, env, retailer.ID, OrderLineInput{ItemID: item.ID, Quantity: 2})

	// Two processors that both read the order as pending race on the
	// conditional update; only one ever sees a row change.
	won, err := env.orderRepo.TransitionStatus(env.ctx, order.ID, enum.OrderStatusPending, enum.OrderStatusDispatched)
	require.NoError(t, err)
	assert.True(t, won)

	won, err = env.orderRepo.TransitionStatus(env.ctx, order.ID, enum.OrderStatusPending, enum.OrderStatusDispatched)
	require.NoError(t, err)
	assert.False(t, won)

	fresh, err := env.orderRepo.GetByID(env.ctx, env.shop.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusDispatched, fresh.Status)
}
