package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
	"github.com/sparetrack/sparetrack-api/internal/domain/enum"
	"github.com/sparetrack/sparetrack-api/internal/domain/repository"
	"github.com/sparetrack/sparetrack-api/pkg/apperror"
)

// LedgerService owns every write to the customer credit ledger. Billing,
// dispatch, returns and manual payments all post through it so the running
// balance and the entry trail can never drift apart.
type LedgerService struct {
	txManager   repository.TxManager
	ledgerRepo  repository.LedgerRepository
	profileRepo repository.RetailerProfileRepository
	userRepo    repository.UserRepository
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	txManager repository.TxManager,
	ledgerRepo repository.LedgerRepository,
	profileRepo repository.RetailerProfileRepository,
	userRepo repository.UserRepository,
) *LedgerService {
	return &LedgerService{
		txManager:   txManager,
		ledgerRepo:  ledgerRepo,
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

// PostInput describes one ledger posting.
type PostInput struct {
	ShopID      uuid.UUID
	CustomerID  uuid.UUID
	EntryType   enum.EntryType
	Amount      decimal.Decimal
	Description string
	InvoiceID   *uuid.UUID
}

// Post applies one entry to a customer's ledger. It locks the customer's
// profile row, moves the running balance, then appends the entry with the
// post-application balance snapshot. Callers posting several entries for one
// operation must call Post sequentially inside the same transaction so
// BalanceAfter values chain correctly.
//
// Post expects to run inside a transaction carried in ctx; it does not open
// its own.
func (s *LedgerService) Post(ctx context.Context, input *PostInput) (*entity.LedgerEntry, error) {
	if !input.Amount.IsPositive() {
		return nil, apperror.NewBadRequestError("Ledger amount must be positive")
	}
	if !input.EntryType.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid ledger entry type")
	}

	profile, err := s.profileRepo.GetByUserIDForUpdate(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	newBalance := profile.CurrentBalance
	if input.EntryType == enum.EntryTypeDebit {
		newBalance = newBalance.Add(input.Amount)
	} else {
		newBalance = newBalance.Sub(input.Amount)
	}

	profile.CurrentBalance = newBalance
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	entry := &entity.LedgerEntry{
		ShopID:       input.ShopID,
		CustomerID:   input.CustomerID,
		EntryType:    input.EntryType,
		Amount:       input.Amount,
		Description:  input.Description,
		InvoiceID:    input.InvoiceID,
		BalanceAfter: newBalance,
		EntryDate:    time.Now(),
	}
	if err := s.ledgerRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// RecordPayment posts a standalone credit entry for money received outside an
// invoice, e.g. a retailer clearing dues at the counter.
func (s *LedgerService) RecordPayment(ctx context.Context, shopID, customerID uuid.UUID, amount decimal.Decimal, description string) (*entity.LedgerEntry, error) {
	if !amount.IsPositive() {
		return nil, apperror.NewBadRequestError("Payment amount must be positive")
	}
	if description == "" {
		description = "Payment received"
	}

	var entry *entity.LedgerEntry
	err := s.txManager.InTx(ctx, func(ctx context.Context) error {
		var err error
		entry, err = s.Post(ctx, &PostInput{
			ShopID:      shopID,
			CustomerID:  customerID,
			EntryType:   enum.EntryTypeCredit,
			Amount:      amount,
			Description: description,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// CustomerLedger is a customer's statement: the profile with its running
// balance plus the entry history, newest first.
type CustomerLedger struct {
	Customer *entity.User          `json:"customer"`
	Balance  decimal.Decimal       `json:"balance"`
	Entries  []entity.LedgerEntry  `json:"entries"`
}

// GetCustomerLedger returns the statement for one customer.
func (s *LedgerService) GetCustomerLedger(ctx context.Context, shopID, customerID uuid.UUID) (*CustomerLedger, error) {
	customer, err := s.userRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.ShopID != shopID {
		return nil, apperror.NewNotFoundError("Customer")
	}
	if customer.RetailerProfile == nil {
		return nil, apperror.NewNotFoundError("Customer ledger")
	}

	entries, err := s.ledgerRepo.ListByCustomer(ctx, shopID, customerID)
	if err != nil {
		return nil, err
	}

	return &CustomerLedger{
		Customer: customer,
		Balance:  customer.RetailerProfile.CurrentBalance,
		Entries:  entries,
	}, nil
}

// AuditBalance recomputes the customer's balance from the entry trail and
// reports whether it matches the cached running balance.
func (s *LedgerService) AuditBalance(ctx context.Context, customerID uuid.UUID) (bool, decimal.Decimal, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, customerID)
	if err != nil {
		return false, decimal.Zero, err
	}
	if profile == nil {
		return false, decimal.Zero, apperror.NewNotFoundError("Customer")
	}

	sum, err := s.ledgerRepo.SumByCustomer(ctx, customerID)
	if err != nil {
		return false, decimal.Zero, err
	}

	return profile.CurrentBalance.Equal(sum), sum, nil
}
