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

// OrderService handles the wholesale flow: retailers place orders against a
// shop's catalog, the shop dispatches them. Dispatch is the only transition
// that touches stock and the ledger.
type OrderService struct {
	txManager   repository.TxManager
	orderRepo   repository.OrderRepository
	itemRepo    repository.ItemRepository
	invoiceRepo repository.InvoiceRepository
	userRepo    repository.UserRepository
	partnerRepo repository.DeliveryPartnerRepository
	ledger      *LedgerService
	logger      *logrus.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	txManager repository.TxManager,
	orderRepo repository.OrderRepository,
	itemRepo repository.ItemRepository,
	invoiceRepo repository.InvoiceRepository,
	userRepo repository.UserRepository,
	partnerRepo repository.DeliveryPartnerRepository,
	ledger *LedgerService,
	logger *logrus.Logger,
) *OrderService {
	return &OrderService{
		txManager:   txManager,
		orderRepo:   orderRepo,
		itemRepo:    itemRepo,
		invoiceRepo: invoiceRepo,
		userRepo:    userRepo,
		partnerRepo: partnerRepo,
		ledger:      ledger,
		logger:      logger,
	}
}

// OrderLineInput is one requested line on a new order.
type OrderLineInput struct {
	ItemID   uuid.UUID
	Quantity int
}

// PlaceOrderInput is a retailer's order request.
type PlaceOrderInput struct {
	RetailerID uuid.UUID
	Items      []OrderLineInput
}

// PlaceOrder records a retailer's order. Each line snapshots the item's
// selling price at placement; dispatch and returns settle at that price no
// matter how the catalog price moves afterwards. Stock is not reserved.
func (s *OrderService) PlaceOrder(ctx context.Context, input *PlaceOrderInput) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Order must have at least one item")
	}

	retailer, err := s.userRepo.GetByID(ctx, input.RetailerID)
	if err != nil {
		return nil, err
	}
	if retailer == nil || retailer.Role != enum.UserRoleRetailer {
		return nil, apperror.NewNotFoundError("Retailer")
	}
	shopID := retailer.ShopID

	lines := make([]entity.OrderItem, 0, len(input.Items))
	seen := make(map[uuid.UUID]bool, len(input.Items))
	for _, lineInput := range input.Items {
		if lineInput.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Item quantity must be positive")
		}
		if seen[lineInput.ItemID] {
			return nil, apperror.NewBadRequestError("Duplicate item in order")
		}
		seen[lineInput.ItemID] = true

		item, err := s.itemRepo.GetByID(ctx, shopID, lineInput.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, apperror.NewNotFoundError("Item")
		}

		lines = append(lines, entity.OrderItem{
			ItemID:       item.ID,
			RequestedQty: lineInput.Quantity,
			UnitPrice:    item.SellingPrice,
		})
	}

	order := &entity.Order{
		ShopID:      shopID,
		RetailerID:  retailer.ID,
		OrderNumber: utils.GenerateOrderNumber(),
		Status:      enum.OrderStatusPending,
		Items:       lines,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"order_number": order.OrderNumber,
		"retailer_id":  retailer.ID,
	}).Info("order placed")

	return order, nil
}

// Catalog lists the shop's sellable items for a retailer to order from.
func (s *OrderService) Catalog(ctx context.Context, shopID uuid.UUID, params *repository.ItemFilterParams) (*pagination.PaginatedResult[entity.Item], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	// Retailers only see what can actually ship.
	params.InStock = true

	items, total, err := s.itemRepo.List(ctx, shopID, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(items,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}

// MyOrders lists a retailer's own orders.
func (s *OrderService) MyOrders(ctx context.Context, retailerID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Order], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}

	orders, total, err := s.orderRepo.ListByRetailer(ctx, retailerID, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(orders,
		pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// ListIncoming lists the shop's incoming orders for the dispatch desk.
func (s *OrderService) ListIncoming(ctx context.Context, shopID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Order], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}

	orders, total, err := s.orderRepo.ListByShop(ctx, shopID, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(orders,
		pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// GetOrder returns one order with its lines.
func (s *OrderService) GetOrder(ctx context.Context, shopID, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, shopID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// DispatchLineInput sets the fulfilled quantity for one order line. Lines
// omitted from the dispatch request ship zero.
type DispatchLineInput struct {
	ItemID       uuid.UUID
	FulfilledQty int
}

// DispatchOrderInput describes how an order leaves the shop.
type DispatchOrderInput struct {
	Lines          []DispatchLineInput
	DeliveryType   enum.DeliveryType
	PartnerID      *uuid.UUID
	DriverName     *string
	VehicleDetails *string
}

// DispatchOrder fulfills a pending order, possibly partially. In one
// transaction it deducts stock for every fulfilled line, generates a
// credit-mode invoice billed at the prices snapshotted when the order was
// placed, posts a single debit for the invoice total, records the delivery
// assignment and moves the order to dispatched. A dispatch with nothing
// fulfilled is rejected rather than producing an empty invoice.
func (s *OrderService) DispatchOrder(ctx context.Context, shopID, orderID uuid.UUID, input *DispatchOrderInput) (*entity.Order, error) {
	if !input.DeliveryType.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid delivery type")
	}

	var order *entity.Order
	err := s.txManager.InTx(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.GetByID(ctx, shopID, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}
		if order.Status != enum.OrderStatusPending {
			return apperror.NewAlreadyProcessedError("Order has already been processed")
		}

		// The read above is unlocked; the conditional transition is what
		// actually claims the order. A concurrent dispatch that passed the
		// same status check loses here instead of billing twice.
		claimed, err := s.orderRepo.TransitionStatus(ctx, order.ID, enum.OrderStatusPending, enum.OrderStatusDispatched)
		if err != nil {
			return err
		}
		if !claimed {
			return apperror.NewAlreadyProcessedError("Order has already been processed")
		}
		order.Status = enum.OrderStatusDispatched

		onOrder := make(map[uuid.UUID]bool, len(order.Items))
		for i := range order.Items {
			onOrder[order.Items[i].ItemID] = true
		}

		fulfilled := make(map[uuid.UUID]int, len(input.Lines))
		for _, line := range input.Lines {
			if line.FulfilledQty < 0 {
				return apperror.NewBadRequestError("Fulfilled quantity cannot be negative")
			}
			if !onOrder[line.ItemID] {
				return apperror.NewBadRequestError("Item is not on this order")
			}
			fulfilled[line.ItemID] = line.FulfilledQty
		}

		totalFulfilled := 0
		totalAmount := decimal.Zero
		invoiceLines := make([]entity.InvoiceItem, 0, len(order.Items))

		for i := range order.Items {
			line := &order.Items[i]
			qty := fulfilled[line.ItemID]
			if qty > line.RequestedQty {
				return apperror.NewBadRequestError("Fulfilled quantity cannot exceed requested quantity")
			}
			if qty == 0 {
				continue
			}

			item, err := s.itemRepo.DeductStock(ctx, shopID, line.ItemID, qty)
			if errors.Is(err, repository.ErrInsufficientStock) {
				return apperror.NewInsufficientStockError(item.ItemName)
			}
			if err != nil {
				return err
			}
			if item == nil {
				return apperror.NewNotFoundError("Item")
			}

			lineTotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(qty)))
			totalAmount = totalAmount.Add(lineTotal)
			totalFulfilled += qty

			line.FulfilledQty = qty
			if err := s.orderRepo.UpdateLine(ctx, line); err != nil {
				return err
			}

			invoiceLines = append(invoiceLines, entity.InvoiceItem{
				ItemID:     item.ID,
				ItemName:   item.ItemName,
				Quantity:   qty,
				UnitPrice:  line.UnitPrice,
				TotalPrice: lineTotal,
			})
		}

		if totalFulfilled == 0 {
			return apperror.NewBadRequestError("Dispatch must fulfill at least one item")
		}

		retailer, err := s.userRepo.GetByID(ctx, order.RetailerID)
		if err != nil {
			return err
		}
		if retailer == nil {
			return apperror.NewNotFoundError("Retailer")
		}

		invoice := &entity.Invoice{
			ShopID:        shopID,
			CustomerID:    &retailer.ID,
			CustomerName:  &retailer.Name,
			CustomerPhone: &retailer.Phone,
			InvoiceNumber: utils.GenerateInvoiceNumber(),
			TotalAmount:   totalAmount,
			Discount:      decimal.Zero,
			GrandTotal:    totalAmount,
			PaidAmount:    decimal.Zero,
			PaymentMode:   enum.PaymentModeCredit,
			Items:         invoiceLines,
		}
		if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
			return err
		}

		if _, err := s.ledger.Post(ctx, &PostInput{
			ShopID:      shopID,
			CustomerID:  retailer.ID,
			EntryType:   enum.EntryTypeDebit,
			Amount:      totalAmount,
			Description: "Order " + order.OrderNumber + " dispatched, invoice " + invoice.InvoiceNumber,
			InvoiceID:   &invoice.ID,
		}); err != nil {
			return err
		}

		if err := s.assignDriver(ctx, shopID, order, input); err != nil {
			return err
		}

		order.InvoiceID = &invoice.ID
		return s.orderRepo.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"order_number": order.OrderNumber,
		"status":       order.Status,
	}).Info("order dispatched")

	return order, nil
}

func (s *OrderService) assignDriver(ctx context.Context, shopID uuid.UUID, order *entity.Order, input *DispatchOrderInput) error {
	deliveryType := input.DeliveryType
	order.DeliveryType = &deliveryType

	switch deliveryType {
	case enum.DeliveryTypePartner:
		if input.PartnerID == nil {
			return apperror.NewBadRequestError("Delivery partner is required")
		}
		partner, err := s.partnerRepo.GetByID(ctx, shopID, *input.PartnerID)
		if err != nil {
			return err
		}
		if partner == nil {
			return apperror.NewNotFoundError("Delivery partner")
		}
		order.DriverID = &partner.ID
		order.DriverName = &partner.Name
		order.VehicleDetails = partner.VehicleNumber
	case enum.DeliveryTypeStaff:
		if input.DriverName == nil || *input.DriverName == "" {
			return apperror.NewBadRequestError("Driver name is required")
		}
		order.DriverName = input.DriverName
		order.VehicleDetails = input.VehicleDetails
	case enum.DeliveryTypePickup:
		// Retailer collects; nothing to assign.
	}

	return nil
}

// MarkDelivered moves a dispatched order to delivered.
func (s *OrderService) MarkDelivered(ctx context.Context, shopID, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, shopID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.Status != enum.OrderStatusDispatched {
		return nil, apperror.NewAlreadyProcessedError("Order is not in dispatched state")
	}

	moved, err := s.orderRepo.TransitionStatus(ctx, order.ID, enum.OrderStatusDispatched, enum.OrderStatusDelivered)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, apperror.NewAlreadyProcessedError("Order is not in dispatched state")
	}
	order.Status = enum.OrderStatusDelivered
	return order, nil
}

// CancelOrder cancels a pending order. Nothing has shipped yet, so no stock
// or ledger movement is involved.
func (s *OrderService) CancelOrder(ctx context.Context, shopID, orderID uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, shopID, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	if order.Status != enum.OrderStatusPending {
		return apperror.NewAlreadyProcessedError("Only pending orders can be cancelled")
	}

	cancelled, err := s.orderRepo.TransitionStatus(ctx, order.ID, enum.OrderStatusPending, enum.OrderStatusCancelled)
	if err != nil {
		return err
	}
	if !cancelled {
		return apperror.NewAlreadyProcessedError("Only pending orders can be cancelled")
	}
	return nil
}
