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

// dispatchedOrder places an order for qty units and dispatches fulfilled of
// them, returning the order and the item it was placed against.
func dispatchedOrder(t *testing.T, env *testEnv, retailerID uuid.UUID, qty, fulfilled int) (*entity.Order, *entity.Item) {
	t.Helper()
	item := env.createItem(t, "Brake Pad", "150", 50)
	order := placeTestOrder(t, env, retailerID, OrderLineInput{ItemID: item.ID, Quantity: qty})

	dispatched, err := env.orders.DispatchOrder(env.ctx, env.shop.ID, order.ID, &DispatchOrderInput{
		Lines:        []DispatchLineInput{{ItemID: item.ID, FulfilledQty: fulfilled}},
		DeliveryType: enum.DeliveryTypePickup,
	})
	require.NoError(t, err)
	return dispatched, item
}

func TestCreateReturn_CapsAtFulfilledQuantity(t *testing.T) {
	env := newTestEnv(t)
	retailer := env.createRetailer(t, "Ravi Auto", "9000000001")
	order, item := dispatchedOrder(t, env, retailer.ID, 10, 4)

	// More than was shipped cannot come back, even though more was requested.
	_, err := env.returns.CreateReturn(env.ctx, &CreateReturnInput{
		RetailerID: retailer.ID,
		OrderID:    order.ID,
		ItemID:     item.ID,
		Quantity:   5,
		Reason:     "wrong fitment",
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	request, err := env.returns.CreateReturn(env.ctx, &CreateReturnInput{
		RetailerID: retailer.ID,
		OrderID:    order.ID,
		ItemID:     item.ID,
		Quantity:   3,
		Reason:     "wrong fitment",
	})
	require.NoError(t, err)
	assert.Equal(t, enum.ReturnStatusPending, request.Status)
	assert.Nil(t, request.LedgerEntryID)
}

func TestCreateReturn_OnlyForDispatchedOrders(t *testing.T) {
	env := newTestEnv(t)
	retailer := env.createRetailer(t, "Ravi Auto", "9000000001")
	item := env.createItem(t, "Brake Pad", "150", 10)
	order := placeTestOrder(t, env, retailer.ID, OrderLineInput{ItemID: item.ID, Quantity: 5})

	_, err := env.returns.CreateReturn(env.ctx, &CreateReturnInput{
		RetailerID: retailer.ID,
		OrderID:    order.ID,
		ItemID:     item.ID,
		Quantity:   1,
		Reason:     "changed mind",
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCreateReturn_OtherRetailersOrderHidden(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createRetailer(t, "Ravi Auto", "9000000001")
	stranger := env.createRetailer(t, "Kumar Spares", "9000000003")
	order, item := dispatchedOrder(t, env, owner.ID, 5, 5)

	_, err := env.returns.CreateReturn(env.ctx, &CreateReturnInput{
		RetailerID: stranger.ID,
		OrderID:    order.ID,
		ItemID:     item.ID,
		Quantity:   1,
		Reason:     "not mine",
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestProcessReturn_ApproveRefundsAtSnapshotPrice(t *testing.T) {
	env := newTestEnv(t)
	retailer := env.createRetailer(t, "Ravi Auto", "9000000001")
	order, item := dispatchedOrder(t, env, retailer.ID, 10, 4)
	stockAfterDispatch := env.stockOf(t, item.ID)

	// A price hike between dispatch and return approval must not change
	// the refund.
	newPrice := decimal.NewFromInt(999)
	_, err := env.items.UpdateItem(env.ctx, env.shop.ID, item.ID, &UpdateItemInput{
		SellingPrice: &newPrice,
	})
	require.NoError(t, err)

	request, err := env.returns.CreateReturn(env.ctx, &CreateReturnInput{
		RetailerID: retailer.ID,
		OrderID:    order.ID,
		ItemID:     item.ID,
		Quantity:   3,
		Reason:     "wrong fitment",
	})
	require.NoError(t, err)

	processed, err := env.returns.ProcessReturn(env.ctx, env.shop.ID, request.ID, &ProcessReturnInput{
		Approve: true,
		Restock: true,
	})
	require.NoError(t, err)

	assert.Equal(t, enum.ReturnStatusApproved, processed.Status)
	require.NotNil(t, processed.LedgerEntryID)
	assert.Equal(t, stockAfterDispatch+3, env.stockOf(t, item.ID))

	var entry entity.LedgerEntry
	require.NoError(t, env.db.First(&entry, "id = ?", *processed.LedgerEntryID).Error)
	assert.Equal(t, enum.EntryTypeCredit, entry.EntryType)
	assert.True(t, entry.Amount.Equal(decimal.NewFromInt(450)), "refund at the dispatch-time price")

	// Dispatch debited 600; the approved return credits 450 back.
	assert.True(t, env.balanceOf(t, retailer.ID).Equal(decimal.NewFromInt(150)))

	fresh, err := env.orderRepo.GetByID(env.ctx, env.shop.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusReturned, fresh.Status)
}

func TestProcessReturn_ApproveWithoutRestock(t *testing.T) {
	env := newTestEnv(t)
	retailer := env.createRetailer(t, "Ravi Auto", "9000000001")
	order, item := dispatchedOrder(t, env, retailer.ID, 5, 5)
	stockAfterDispatch := env.stockOf(t, item.ID)

	request, err := env.returns.CreateReturn(env.ctx, &CreateReturnInput{
		RetailerID: retailer.ID,
		OrderID:    order.ID,
		ItemID:     item.ID,
		Quantity:   2,
		Reason:     "damaged in transit",
	})
	require.NoError(t, err)

	processed, err := env.returns.ProcessReturn(env.ctx, env.shop.ID, request.ID, &ProcessReturnInput{
		Approve: true,
		Restock: false,
	})
	require.NoError(t, err)

	assert.Equal(t, enum.ReturnStatusApproved, processed.Status)
	// Damaged goods do not come back into sellable stock, but the money does.
	assert.Equal(t, stockAfterDispatch, env.stockOf(t, item.ID))
	assert.True(t, env.balanceOf(t, retailer.ID).Equal(decimal.NewFromInt(450)))
}

func TestProcessReturn_RejectMovesNothing(t *testing.T) {
	env := newTestEnv(t)
	retailer := env.createRetailer(t, "Ravi Auto", "9000000001")
	order, item := dispatchedOrder(t, env, retailer.ID, 5, 5)
	stockAfterDispatch := env.stockOf(t, item.ID)
	balanceAfterDispatch := env.balanceOf(t, retailer.ID)

	request, err := env.returns.CreateReturn(env.ctx, &CreateReturnInput{
		RetailerID: retailer.ID,
		OrderID:    order.ID,
		ItemID:     item.ID,
		Quantity:   2,
		Reason:     "suspected misuse",
	})
	require.NoError(t, err)

	processed, err := env.returns.ProcessReturn(env.ctx, env.shop.ID, request.ID, &ProcessReturnInput{
		Approve: false,
	})
	require.NoError(t, err)

	assert.Equal(t, enum.ReturnStatusRejected, processed.Status)
	assert.Nil(t, processed.LedgerEntryID)
	assert.Equal(t, stockAfterDispatch, env.stockOf(t, item.ID))
	assert.True(t, env.balanceOf(t, retailer.ID).Equal(balanceAfterDispatch))

	fresh, err := env.orderRepo.GetByID(env.ctx, env.shop.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusDispatched, fresh.Status)
}

func TestProcessReturn_SecondDecisionConflicts(t *testing.T) {
	env := newTestEnv(t)
	retailer := env.createRetailer(t, "Ravi Auto", "9000000001")
	order, item := dispatchedOrder(t, env, retailer.ID, 5, 5)

	request, err := env.returns.CreateReturn(env.ctx, &CreateReturnInput{
		RetailerID: retailer.ID,
		OrderID:    order.ID,
		ItemID:     item.ID,
		Quantity:   1,
		Reason:     "wrong fitment",
	})
	require.NoError(t, err)

	_, err = env.returns.ProcessReturn(env.ctx, env.shop.ID, request.ID, &ProcessReturnInput{
		Approve: true,
		Restock: true,
	})
	require.NoError(t, err)
	balance := env.balanceOf(t, retailer.ID)

	_, err = env.returns.ProcessReturn(env.ctx, env.shop.ID, request.ID, &ProcessReturnInput{
		Approve: true,
		Restock: true,
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)

	// No double refund.
	assert.True(t, env.balanceOf(t, retailer.ID).Equal(balance))
}

func TestProcessReturn_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.returns.ProcessReturn(env.ctx, env.shop.ID, uuid.New(), &ProcessReturnInput{Approve: true})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestReturnStatusClaim_SingleWinner(t *testing.T) {
	env := newTestEnv(t)
	retailer := env.createRetailer(t, "Ravi Auto", "9000000001")
	order, item := dispatchedOrder(t, env, retailer.ID, 5, 5)

	request, err := env.returns.CreateReturn(env.ctx, &CreateReturnInput{
		RetailerID: retailer.ID,
		OrderID:    order.ID,
		ItemID:     item.ID,
		Quantity:   2,
		Reason:     "damaged",
	})
	require.NoError(t, err)

	// Two decisions that both read the request as pending race on the
	// conditional update; only one ever sees a row change.
	won, err := env.returnRepo.TransitionStatus(env.ctx, request.ID, enum.ReturnStatusPending, enum.ReturnStatusApproved)
	require.NoError(t, err)
	assert.True(t, won)

	won, err = env.returnRepo.TransitionStatus(env.ctx, request.ID, enum.ReturnStatusPending, enum.ReturnStatusRejected)
	require.NoError(t, err)
	assert.False(t, won)

	fresh, err := env.returnRepo.GetByID(env.ctx, env.shop.ID, request.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.ReturnStatusApproved, fresh.Status)
}

func TestProcessReturn_ApproveSurvivesDeletedItem(t *testing.T) {
	env := newTestEnv(t)
	retailer := env.createRetailer(t, "Ravi Auto", "9000000001")
	order, item := dispatchedOrder(t, env, retailer.ID, 5, 4)

	request, err := env.returns.CreateReturn(env.ctx, &CreateReturnInput{
		RetailerID: retailer.ID,
		OrderID:    order.ID,
		ItemID:     item.ID,
		Quantity:   2,
		Reason:     "damaged",
	})
	require.NoError(t, err)

	// The item leaves the catalog before the request is decided; approval
	// still refunds, there is just nowhere for the stock to go back to.
	require.NoError(t, env.db.Delete(&entity.Item{}, "id = ?", item.ID).Error)

	processed, err := env.returns.ProcessReturn(env.ctx, env.shop.ID, request.ID, &ProcessReturnInput{
		Approve: true,
		Restock: true,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.ReturnStatusApproved, processed.Status)
	require.NotNil(t, processed.LedgerEntryID)

	// Dispatched 4 x 150 = 600 debit, refund 2 x 150 = 300 credit.
	assert.True(t, env.balanceOf(t, retailer.ID).Equal(decimal.NewFromInt(300)))
}
