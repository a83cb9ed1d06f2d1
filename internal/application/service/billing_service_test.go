package service

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
	"github.com/sparetrack/sparetrack-api/internal/domain/enum"
	"github.com/sparetrack/sparetrack-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInvoice_DeductsStockAndPostsLedgerPair(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(t, "Brake Pad", "150", 10)

	invoice, err := env.billing.CreateInvoice(env.ctx, env.shop.ID, &CreateInvoiceInput{
		Customer: CustomerRef{Name: "Suresh", Phone: "9111111111"},
		Items: []InvoiceLineInput{
			{ItemID: item.ID, Quantity: 3},
		},
		Discount:    decimal.NewFromInt(50),
		PaidAmount:  decimal.NewFromInt(100),
		PaymentMode: enum.PaymentModeCash,
	})
	require.NoError(t, err)

	assert.True(t, invoice.TotalAmount.Equal(decimal.NewFromInt(450)))
	assert.True(t, invoice.GrandTotal.Equal(decimal.NewFromInt(400)))
	require.Len(t, invoice.Items, 1)
	assert.Equal(t, "BRAKE PAD", invoice.Items[0].ItemName)
	assert.True(t, invoice.Items[0].UnitPrice.Equal(decimal.NewFromInt(150)))

	assert.Equal(t, 7, env.stockOf(t, item.ID))

	customerID := *invoice.CustomerID
	entries := env.ledgerOf(t, customerID)
	require.Len(t, entries, 2)

	var debit, credit *entity.LedgerEntry
	for i := range entries {
		switch entries[i].EntryType {
		case enum.EntryTypeDebit:
			debit = &entries[i]
		case enum.EntryTypeCredit:
			credit = &entries[i]
		}
	}
	require.NotNil(t, debit)
	require.NotNil(t, credit)

	// Debit lands first, so its snapshot shows the full liability; the
	// payment credit then brings the trail down to the outstanding amount.
	assert.True(t, debit.Amount.Equal(decimal.NewFromInt(400)))
	assert.True(t, debit.BalanceAfter.Equal(decimal.NewFromInt(400)))
	assert.True(t, credit.Amount.Equal(decimal.NewFromInt(100)))
	assert.True(t, credit.BalanceAfter.Equal(decimal.NewFromInt(300)))

	assert.True(t, env.balanceOf(t, customerID).Equal(decimal.NewFromInt(300)))
}

func TestCreateInvoice_FullyPaidSkipsNothing(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(t, "Brake Pad", "150", 10)

	invoice, err := env.billing.CreateInvoice(env.ctx, env.shop.ID, &CreateInvoiceInput{
		Customer:    CustomerRef{Phone: "9111111111"},
		Items:       []InvoiceLineInput{{ItemID: item.ID, Quantity: 2}},
		PaidAmount:  decimal.NewFromInt(300),
		PaymentMode: enum.PaymentModeCash,
	})
	require.NoError(t, err)

	// Both legs post even when the sale settles immediately, leaving a
	// complete audit trail and a zero balance.
	entries := env.ledgerOf(t, *invoice.CustomerID)
	assert.Len(t, entries, 2)
	assert.True(t, env.balanceOf(t, *invoice.CustomerID).IsZero())
}

func TestCreateInvoice_PriceOverridePerLine(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(t, "Brake Pad", "150", 10)

	override := decimal.NewFromInt(120)
	invoice, err := env.billing.CreateInvoice(env.ctx, env.shop.ID, &CreateInvoiceInput{
		Customer:    CustomerRef{Phone: "9111111111"},
		Items:       []InvoiceLineInput{{ItemID: item.ID, Quantity: 2, UnitPrice: &override}},
		PaymentMode: enum.PaymentModeCash,
	})
	require.NoError(t, err)

	assert.True(t, invoice.GrandTotal.Equal(decimal.NewFromInt(240)))
	assert.True(t, invoice.Items[0].UnitPrice.Equal(override))
}

func TestCreateInvoice_InsufficientStockRollsBackEverything(t *testing.T) {
	env := newTestEnv(t)
	plenty := env.createItem(t, "Brake Pad", "150", 10)
	scarce := env.createItem(t, "Clutch Plate", "900", 1)

	usersBefore := env.countRows(t, &entity.User{})

	_, err := env.billing.CreateInvoice(env.ctx, env.shop.ID, &CreateInvoiceInput{
		Customer: CustomerRef{Phone: "9111111111"},
		Items: []InvoiceLineInput{
			{ItemID: plenty.ID, Quantity: 2},
			{ItemID: scarce.ID, Quantity: 5},
		},
		PaymentMode: enum.PaymentModeCash,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
	assert.Contains(t, err.Error(), "CLUTCH PLATE")

	// The first line's deduction, the walk-in account and any ledger
	// movement all roll back with the failed sale.
	assert.Equal(t, 10, env.stockOf(t, plenty.ID))
	assert.Equal(t, 1, env.stockOf(t, scarce.ID))
	assert.Equal(t, usersBefore, env.countRows(t, &entity.User{}))
	assert.Equal(t, int64(0), env.countRows(t, &entity.Invoice{}))
	assert.Equal(t, int64(0), env.countRows(t, &entity.LedgerEntry{}))
}

func TestCreateInvoice_UnknownItem(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.billing.CreateInvoice(env.ctx, env.shop.ID, &CreateInvoiceInput{
		Customer:    CustomerRef{Phone: "9111111111"},
		Items:       []InvoiceLineInput{{ItemID: uuid.New(), Quantity: 1}},
		PaymentMode: enum.PaymentModeCash,
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestCreateInvoice_ValidatesAmounts(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(t, "Brake Pad", "150", 10)

	cases := []struct {
		name  string
		input CreateInvoiceInput
	}{
		{
			name: "empty cart",
			input: CreateInvoiceInput{
				Customer: CustomerRef{Phone: "9111111111"},
			},
		},
		{
			name: "zero quantity",
			input: CreateInvoiceInput{
				Customer: CustomerRef{Phone: "9111111111"},
				Items:    []InvoiceLineInput{{ItemID: item.ID, Quantity: 0}},
			},
		},
		{
			name: "discount above total",
			input: CreateInvoiceInput{
				Customer: CustomerRef{Phone: "9111111111"},
				Items:    []InvoiceLineInput{{ItemID: item.ID, Quantity: 1}},
				Discount: decimal.NewFromInt(151),
			},
		},
		{
			name: "paid above grand total",
			input: CreateInvoiceInput{
				Customer:   CustomerRef{Phone: "9111111111"},
				Items:      []InvoiceLineInput{{ItemID: item.ID, Quantity: 1}},
				PaidAmount: decimal.NewFromInt(151),
			},
		},
		{
			name: "negative discount",
			input: CreateInvoiceInput{
				Customer: CustomerRef{Phone: "9111111111"},
				Items:    []InvoiceLineInput{{ItemID: item.ID, Quantity: 1}},
				Discount: decimal.NewFromInt(-1),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.input.PaymentMode = enum.PaymentModeCash
			_, err := env.billing.CreateInvoice(env.ctx, env.shop.ID, &tc.input)
			require.Error(t, err)
			assert.Equal(t, 400, apperror.GetAppError(err).Code)
		})
	}

	// Nothing above should have touched stock.
	assert.Equal(t, 10, env.stockOf(t, item.ID))
}

func TestCancelInvoice_RestoresStockAndCreditsOutstanding(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(t, "Brake Pad", "150", 10)

	invoice, err := env.billing.CreateInvoice(env.ctx, env.shop.ID, &CreateInvoiceInput{
		Customer:    CustomerRef{Phone: "9111111111"},
		Items:       []InvoiceLineInput{{ItemID: item.ID, Quantity: 4}},
		PaidAmount:  decimal.NewFromInt(200),
		PaymentMode: enum.PaymentModeCash,
	})
	require.NoError(t, err)
	customerID := *invoice.CustomerID
	require.True(t, env.balanceOf(t, customerID).Equal(decimal.NewFromInt(400)))

	require.NoError(t, env.billing.CancelInvoice(env.ctx, env.shop.ID, invoice.ID))

	assert.Equal(t, 10, env.stockOf(t, item.ID))
	assert.True(t, env.balanceOf(t, customerID).IsZero())
	assert.Equal(t, int64(0), env.countRows(t, &entity.Invoice{}))
	assert.Equal(t, int64(0), env.countRows(t, &entity.InvoiceItem{}))

	// Debit, payment credit, cancellation credit: history survives the
	// cancelled document.
	assert.Len(t, env.ledgerOf(t, customerID), 3)
}

func TestCancelInvoice_FullyPaidPostsNoCredit(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(t, "Brake Pad", "150", 10)

	invoice, err := env.billing.CreateInvoice(env.ctx, env.shop.ID, &CreateInvoiceInput{
		Customer:    CustomerRef{Phone: "9111111111"},
		Items:       []InvoiceLineInput{{ItemID: item.ID, Quantity: 2}},
		PaidAmount:  decimal.NewFromInt(300),
		PaymentMode: enum.PaymentModeCash,
	})
	require.NoError(t, err)
	customerID := *invoice.CustomerID

	require.NoError(t, env.billing.CancelInvoice(env.ctx, env.shop.ID, invoice.ID))

	assert.Equal(t, 10, env.stockOf(t, item.ID))
	assert.Len(t, env.ledgerOf(t, customerID), 2)
	assert.True(t, env.balanceOf(t, customerID).IsZero())
}

func TestCancelInvoice_NotFound(t *testing.T) {
	env := newTestEnv(t)

	err := env.billing.CancelInvoice(env.ctx, env.shop.ID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestConcurrentBilling_NeverOversells(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(t, "Brake Pad", "150", 5)
	retailer := env.createRetailer(t, "Ravi Auto", "9000000001")

	const attempts = 10
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.billing.CreateInvoice(env.ctx, env.shop.ID, &CreateInvoiceInput{
				Customer:    CustomerRef{CustomerID: &retailer.ID},
				Items:       []InvoiceLineInput{{ItemID: item.ID, Quantity: 1}},
				PaidAmount:  decimal.NewFromInt(150),
				PaymentMode: enum.PaymentModeCash,
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.Contains(t, err.Error(), "Insufficient stock")
		}
	}

	assert.Equal(t, 5, succeeded)
	assert.Equal(t, 0, env.stockOf(t, item.ID))
	assert.Equal(t, int64(5), env.countRows(t, &entity.Invoice{}))
}

func TestCancelInvoice_DeletedItemDoesNotBlockCancellation(t *testing.T) {
	env := newTestEnv(t)
	kept := env.createItem(t, "Brake Pad", "150", 10)
	removed := env.createItem(t, "Clutch Plate", "200", 10)

	invoice, err := env.billing.CreateInvoice(env.ctx, env.shop.ID, &CreateInvoiceInput{
		Customer: CustomerRef{Name: "Suresh", Phone: "9111111111"},
		Items: []InvoiceLineInput{
			{ItemID: kept.ID, Quantity: 2},
			{ItemID: removed.ID, Quantity: 3},
		},
		PaymentMode: enum.PaymentModeCredit,
	})
	require.NoError(t, err)
	customerID := *invoice.CustomerID

	require.NoError(t, env.db.Delete(&entity.Item{}, "id = ?", removed.ID).Error)

	require.NoError(t, env.billing.CancelInvoice(env.ctx, env.shop.ID, invoice.ID))

	// The surviving line comes back into stock; the deleted one has nowhere
	// to go and must not block the cancellation.
	assert.Equal(t, 10, env.stockOf(t, kept.ID))
	assert.Equal(t, int64(0), env.countRows(t, &entity.Invoice{}))
	assert.Equal(t, int64(0), env.countRows(t, &entity.InvoiceItem{}))
	assert.True(t, env.balanceOf(t, customerID).IsZero())
}
