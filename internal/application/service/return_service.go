package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
	"github.com/sparetrack/sparetrack-api/internal/domain/enum"
	"github.com/sparetrack/sparetrack-api/internal/domain/repository"
	"github.com/sparetrack/sparetrack-api/pkg/apperror"
	"github.com/sparetrack/sparetrack-api/pkg/pagination"
)

// ReturnService handles the return flow: retailers raise requests against
// dispatched order lines, the shop approves or rejects them. Approval is the
// only path that moves money or stock.
type ReturnService struct {
	txManager  repository.TxManager
	returnRepo repository.ReturnRepository
	orderRepo  repository.OrderRepository
	itemRepo   repository.ItemRepository
	ledger     *LedgerService
	logger     *logrus.Logger
}

// NewReturnService creates a new return service
func NewReturnService(
	txManager repository.TxManager,
	returnRepo repository.ReturnRepository,
	orderRepo repository.OrderRepository,
	itemRepo repository.ItemRepository,
	ledger *LedgerService,
	logger *logrus.Logger,
) *ReturnService {
	return &ReturnService{
		txManager:  txManager,
		returnRepo: returnRepo,
		orderRepo:  orderRepo,
		itemRepo:   itemRepo,
		ledger:     ledger,
		logger:     logger,
	}
}

// CreateReturnInput is a retailer's request to send goods back.
type CreateReturnInput struct {
	RetailerID uuid.UUID
	OrderID    uuid.UUID
	ItemID     uuid.UUID
	Quantity   int
	Reason     string
}

// CreateReturn raises a pending return request against one order line. The
// quantity is capped at what was actually fulfilled, not what was requested.
func (s *ReturnService) CreateReturn(ctx context.Context, input *CreateReturnInput) (*entity.ReturnRequest, error) {
	if input.Quantity <= 0 {
		return nil, apperror.NewBadRequestError("Return quantity must be positive")
	}
	if input.Reason == "" {
		return nil, apperror.NewBadRequestError("Return reason is required")
	}

	order, err := s.orderRepo.GetByRetailer(ctx, input.RetailerID, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	if order.Status != enum.OrderStatusDispatched && order.Status != enum.OrderStatusDelivered {
		return nil, apperror.NewBadRequestError("Returns are only accepted for dispatched orders")
	}

	line, err := s.orderRepo.GetLine(ctx, order.ID, input.ItemID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, apperror.NewNotFoundError("Order item")
	}
	if input.Quantity > line.FulfilledQty {
		return nil, apperror.NewBadRequestError("Return quantity cannot exceed fulfilled quantity")
	}

	request := &entity.ReturnRequest{
		ShopID:     order.ShopID,
		RetailerID: input.RetailerID,
		OrderID:    order.ID,
		ItemID:     input.ItemID,
		Quantity:   input.Quantity,
		Reason:     input.Reason,
		Status:     enum.ReturnStatusPending,
	}
	if err := s.returnRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"return_id": request.ID,
		"order_id":  order.ID,
	}).Info("return request created")

	return request, nil
}

// ListReturns lists the shop's return requests, newest first.
func (s *ReturnService) ListReturns(ctx context.Context, shopID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.ReturnRequest], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}

	requests, total, err := s.returnRepo.ListByShop(ctx, shopID, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(requests,
		pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// ProcessReturnInput decides a pending return request.
type ProcessReturnInput struct {
	Approve bool
	// Restock puts the returned quantity back into sellable stock. Damaged
	// goods are approved without restocking.
	Restock bool
}

// ProcessReturn approves or rejects a pending return request. Approval
// refunds the retailer at the order line's snapshotted unit price via a
// credit ledger entry, optionally restores stock, links the posted entry to
// the request and marks the order returned. All inside one transaction; a
// request that already left pending is a conflict.
func (s *ReturnService) ProcessReturn(ctx context.Context, shopID, returnID uuid.UUID, input *ProcessReturnInput) (*entity.ReturnRequest, error) {
	var request *entity.ReturnRequest
	err := s.txManager.InTx(ctx, func(ctx context.Context) error {
		var err error
		request, err = s.returnRepo.GetByID(ctx, shopID, returnID)
		if err != nil {
			return err
		}
		if request == nil {
			return apperror.NewNotFoundError("Return request")
		}
		if request.Status != enum.ReturnStatusPending {
			return apperror.NewAlreadyProcessedError("Return request has already been processed")
		}

		decision := enum.ReturnStatusRejected
		if input.Approve {
			decision = enum.ReturnStatusApproved
		}

		// The read above is unlocked; the conditional transition is what
		// actually claims the request. A concurrent decision that passed the
		// same status check loses here instead of refunding twice.
		claimed, err := s.returnRepo.TransitionStatus(ctx, request.ID, enum.ReturnStatusPending, decision)
		if err != nil {
			return err
		}
		if !claimed {
			return apperror.NewAlreadyProcessedError("Return request has already been processed")
		}
		request.Status = decision

		if !input.Approve {
			return nil
		}

		line, err := s.orderRepo.GetLine(ctx, request.OrderID, request.ItemID)
		if err != nil {
			return err
		}
		if line == nil {
			return apperror.NewNotFoundError("Order item")
		}

		refund := line.UnitPrice.Mul(decimal.NewFromInt(int64(request.Quantity)))

		order, err := s.orderRepo.GetByID(ctx, shopID, request.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}

		entry, err := s.ledger.Post(ctx, &PostInput{
			ShopID:      shopID,
			CustomerID:  request.RetailerID,
			EntryType:   enum.EntryTypeCredit,
			Amount:      refund,
			Description: "Return approved for order " + order.OrderNumber,
			InvoiceID:   order.InvoiceID,
		})
		if err != nil {
			return err
		}

		if input.Restock {
			restored, err := s.itemRepo.RestoreStock(ctx, request.ItemID, request.Quantity)
			if err != nil {
				return err
			}
			if !restored {
				s.logger.WithFields(logrus.Fields{
					"return_id": request.ID,
					"item_id":   request.ItemID,
				}).Warn("returned item no longer exists, stock not restored")
			}
		}

		request.LedgerEntryID = &entry.ID
		if err := s.returnRepo.Update(ctx, request); err != nil {
			return err
		}

		return s.orderRepo.UpdateStatus(ctx, order.ID, enum.OrderStatusReturned)
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"return_id": request.ID,
		"status":    request.Status,
	}).Info("return request processed")

	return request, nil
}
