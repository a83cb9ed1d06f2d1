package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
	"github.com/sparetrack/sparetrack-api/internal/domain/enum"
	"github.com/sparetrack/sparetrack-api/internal/domain/repository"
	"github.com/sparetrack/sparetrack-api/pkg/apperror"
	"github.com/sparetrack/sparetrack-api/pkg/pagination"
	"github.com/sparetrack/sparetrack-api/pkg/utils"
)

// BillingService handles counter sales: invoice creation and cancellation.
// Both operations mutate stock and the customer ledger atomically.
type BillingService struct {
	txManager   repository.TxManager
	invoiceRepo repository.InvoiceRepository
	itemRepo    repository.ItemRepository
	profileRepo repository.RetailerProfileRepository
	resolver    *CustomerResolver
	ledger      *LedgerService
	logger      *logrus.Logger
}

// NewBillingService creates a new billing service
func NewBillingService(
	txManager repository.TxManager,
	invoiceRepo repository.InvoiceRepository,
	itemRepo repository.ItemRepository,
	profileRepo repository.RetailerProfileRepository,
	resolver *CustomerResolver,
	ledger *LedgerService,
	logger *logrus.Logger,
) *BillingService {
	return &BillingService{
		txManager:   txManager,
		invoiceRepo: invoiceRepo,
		itemRepo:    itemRepo,
		profileRepo: profileRepo,
		resolver:    resolver,
		ledger:      ledger,
		logger:      logger,
	}
}

// InvoiceLineInput is one cart line on a billing request. UnitPrice overrides
// the item's current selling price when set; otherwise the price is
// snapshotted from the item at deduction time.
type InvoiceLineInput struct {
	ItemID    uuid.UUID
	Quantity  int
	UnitPrice *decimal.Decimal
}

// CreateInvoiceInput is a billing request from the counter.
type CreateInvoiceInput struct {
	Customer    CustomerRef
	Items       []InvoiceLineInput
	Discount    decimal.Decimal
	PaidAmount  decimal.Decimal
	PaymentMode enum.PaymentMode
}

// CreateInvoice bills a customer. Inside one transaction it resolves the
// customer (creating a walk-in account on first contact), deducts stock for
// every line with the price snapshot taken at deduction, writes the invoice,
// then posts the ledger pair: a debit for the grand total followed by a
// credit for the amount paid. Any failure rolls the whole sale back.
func (s *BillingService) CreateInvoice(ctx context.Context, shopID uuid.UUID, input *CreateInvoiceInput) (*entity.Invoice, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Invoice must have at least one item")
	}
	for _, line := range input.Items {
		if line.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Item quantity must be positive")
		}
		if line.UnitPrice != nil && line.UnitPrice.IsNegative() {
			return nil, apperror.NewBadRequestError("Unit price cannot be negative")
		}
	}
	if input.Discount.IsNegative() {
		return nil, apperror.NewBadRequestError("Discount cannot be negative")
	}
	if input.PaidAmount.IsNegative() {
		return nil, apperror.NewBadRequestError("Paid amount cannot be negative")
	}
	if !input.PaymentMode.IsValid() {
		input.PaymentMode = enum.PaymentModeCash
	}

	var invoice *entity.Invoice
	err := s.txManager.InTx(ctx, func(ctx context.Context) error {
		resolution, err := s.resolver.Resolve(ctx, shopID, &input.Customer)
		if err != nil {
			return err
		}

		totalAmount := decimal.Zero
		lines := make([]entity.InvoiceItem, 0, len(input.Items))
		for _, lineInput := range input.Items {
			item, err := s.itemRepo.DeductStock(ctx, shopID, lineInput.ItemID, lineInput.Quantity)
			if errors.Is(err, repository.ErrInsufficientStock) {
				return apperror.NewInsufficientStockError(item.ItemName)
			}
			if err != nil {
				return err
			}
			if item == nil {
				return apperror.NewNotFoundError("Item")
			}

			unitPrice := item.SellingPrice
			if lineInput.UnitPrice != nil {
				unitPrice = *lineInput.UnitPrice
			}
			lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(lineInput.Quantity)))
			totalAmount = totalAmount.Add(lineTotal)

			lines = append(lines, entity.InvoiceItem{
				ItemID:     item.ID,
				ItemName:   item.ItemName,
				Quantity:   lineInput.Quantity,
				UnitPrice:  unitPrice,
				TotalPrice: lineTotal,
			})
		}

		if input.Discount.GreaterThan(totalAmount) {
			return apperror.NewBadRequestError("Discount cannot exceed invoice total")
		}
		grandTotal := totalAmount.Sub(input.Discount)
		if input.PaidAmount.GreaterThan(grandTotal) {
			return apperror.NewBadRequestError("Paid amount cannot exceed grand total")
		}

		invoice = &entity.Invoice{
			ShopID:        shopID,
			CustomerID:    &resolution.CustomerID,
			CustomerName:  &resolution.Name,
			CustomerPhone: &resolution.Phone,
			InvoiceNumber: utils.GenerateInvoiceNumber(),
			TotalAmount:   totalAmount,
			Discount:      input.Discount,
			GrandTotal:    grandTotal,
			PaidAmount:    input.PaidAmount,
			PaymentMode:   input.PaymentMode,
			Items:         lines,
		}
		if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
			return err
		}

		// Debit first, then the payment credit: the entries must land in
		// causal order so each BalanceAfter snapshot is truthful.
		if _, err := s.ledger.Post(ctx, &PostInput{
			ShopID:      shopID,
			CustomerID:  resolution.CustomerID,
			EntryType:   enum.EntryTypeDebit,
			Amount:      grandTotal,
			Description: "Invoice " + invoice.InvoiceNumber,
			InvoiceID:   &invoice.ID,
		}); err != nil {
			return err
		}

		if input.PaidAmount.IsPositive() {
			if _, err := s.ledger.Post(ctx, &PostInput{
				ShopID:      shopID,
				CustomerID:  resolution.CustomerID,
				EntryType:   enum.EntryTypeCredit,
				Amount:      input.PaidAmount,
				Description: "Payment against invoice " + invoice.InvoiceNumber,
				InvoiceID:   &invoice.ID,
			}); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"invoice_number": invoice.InvoiceNumber,
		"grand_total":    invoice.GrandTotal,
		"paid_amount":    invoice.PaidAmount,
	}).Info("invoice created")

	return invoice, nil
}

// CancelInvoice voids an invoice: stock comes back for every line still in
// the catalog, the customer's outstanding share of the invoice is credited
// back, and the invoice is removed. All inside one transaction.
func (s *BillingService) CancelInvoice(ctx context.Context, shopID, invoiceID uuid.UUID) error {
	err := s.txManager.InTx(ctx, func(ctx context.Context) error {
		invoice, err := s.invoiceRepo.GetByID(ctx, shopID, invoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return apperror.NewNotFoundError("Invoice")
		}

		// Restoration is best-effort per line: a deleted item just means the
		// stock has nowhere to go back to.
		for _, line := range invoice.Items {
			restored, err := s.itemRepo.RestoreStock(ctx, line.ItemID, line.Quantity)
			if err != nil {
				return err
			}
			if !restored {
				s.logger.WithFields(logrus.Fields{
					"invoice_number": invoice.InvoiceNumber,
					"item_id":        line.ItemID,
				}).Warn("invoiced item no longer exists, stock not restored")
			}
		}

		outstanding := invoice.GrandTotal.Sub(invoice.PaidAmount)
		if outstanding.IsPositive() && invoice.CustomerID != nil {
			profile, err := s.profileRepo.GetByUserID(ctx, *invoice.CustomerID)
			if err != nil {
				return err
			}
			if profile != nil {
				if _, err := s.ledger.Post(ctx, &PostInput{
					ShopID:      shopID,
					CustomerID:  *invoice.CustomerID,
					EntryType:   enum.EntryTypeCredit,
					Amount:      outstanding,
					Description: "Invoice " + invoice.InvoiceNumber + " cancelled",
					InvoiceID:   &invoice.ID,
				}); err != nil {
					return err
				}
			}
		}

		return s.invoiceRepo.Delete(ctx, invoice.ID)
	})
	if err != nil {
		return err
	}

	s.logger.WithField("invoice_id", invoiceID).Info("invoice cancelled")
	return nil
}

// GetInvoice returns one invoice with its lines.
func (s *BillingService) GetInvoice(ctx context.Context, shopID, invoiceID uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, shopID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices returns the shop's invoices, newest first.
func (s *BillingService) ListInvoices(ctx context.Context, shopID uuid.UUID, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}

	invoices, total, err := s.invoiceRepo.List(ctx, shopID, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(invoices,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}
