package services

import (
	"context"
	"fmt"

	"github.com/adhunikethi/agritech-api/internal/models"
	"github.com/adhunikethi/agritech-api/internal/repository"
	"github.com/adhunikethi/agritech-api/internal/statemachine"
)

// OrderService handles order lifecycle business logic
type OrderService struct {
	repo            repository.OrderRepository
	productRepo     repository.ProductRepository
	paymentRepo     repository.PaymentRepository
	notificationSvc *NotificationService
	auditSvc        *AuditService
	analyticsSvc    *AnalyticsService
}

func NewOrderService(
	repo repository.OrderRepository,
	productRepo repository.ProductRepository,
	paymentRepo repository.PaymentRepository,
	notificationSvc *NotificationService,
	auditSvc *AuditService,
	analyticsSvc *AnalyticsService,
) *OrderService {
	return &OrderService{
		repo:            repo,
		productRepo:     productRepo,
		paymentRepo:     paymentRepo,
		notificationSvc: notificationSvc,
		auditSvc:        auditSvc,
		analyticsSvc:    analyticsSvc,
	}
}

func (s *OrderService) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *OrderService) List(ctx context.Context, query *repository.ListQuery) ([]models.Order, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *OrderService) FindByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.repo.FindByUser(ctx, userID)
}

// Create validates the order lines against the catalog, snapshots product
// name and price into the details, decrements stock and stores the order.
func (s *OrderService) Create(ctx context.Context, order *models.Order) error {
	if len(order.OrderDetails) == 0 {
		return fmt.Errorf("order must contain at least one line item")
	}

	var total float64
	for i := range order.OrderDetails {
		detail := &order.OrderDetails[i]

		product, err := s.productRepo.FindByID(ctx, detail.ProductID)
		if err != nil {
			return ErrNotFound
		}
		if !product.IsPublished() {
			return fmt.Errorf("product %s is not available", product.Name)
		}
		if detail.Quantity <= 0 {
			return fmt.Errorf("invalid quantity for product %s", product.Name)
		}
		if product.Stock < detail.Quantity {
			return ErrInsufficientStock
		}

		// Snapshot name and unit price so later catalog edits do not rewrite
		// order history.
		detail.ProductName = product.Name
		detail.Price = product.Price
		total += product.Price * float64(detail.Quantity)

		product.Stock -= detail.Quantity
		if err := s.productRepo.Update(ctx, product); err != nil {
			return err
		}
	}

	order.TotalPrice = total
	order.Status = models.OrderStatusPending

	if err := s.repo.Create(ctx, order); err != nil {
		return err
	}

	s.notificationSvc.NotifyAdmins(ctx,
		"New Order",
		fmt.Sprintf("Order #%d placed for %.2f", order.ID, order.TotalPrice),
		models.NotificationTypeNewOrder)
	s.analyticsSvc.InvalidateDashboard(ctx)

	return s.auditSvc.Log(ctx, order.UserID, "CREATE", "Order", order.ID, fmt.Sprintf("Order placed, total %.2f", order.TotalPrice), "", "")
}

// Transition applies a named fulfillment event (process, ship, deliver,
// cancel) to the order through its state machine.
func (s *OrderService) Transition(ctx context.Context, id uint, event string, actorID uint) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	sm := statemachine.NewOrderFSM(order)

	switch event {
	case "process":
		err = sm.Process(ctx)
	case "ship":
		err = sm.Ship(ctx)
	case "deliver":
		err = sm.Deliver(ctx)
	case "cancel":
		err = sm.Cancel(ctx)
	default:
		return nil, fmt.Errorf("unknown order event: %s", event)
	}
	if err != nil {
		return nil, ErrInvalidState
	}

	if err := s.repo.UpdateStatus(ctx, order.ID, order.Status); err != nil {
		return nil, err
	}

	// Cancellation returns reserved stock to the catalog
	if order.Status == models.OrderStatusCancelled {
		s.restock(ctx, order)
	}

	s.notificationSvc.NotifyUser(ctx, order.UserID,
		"Order Update",
		fmt.Sprintf("Order #%d is now %s", order.ID, order.Status),
		models.NotificationTypeOrderStatus)
	s.analyticsSvc.InvalidateDashboard(ctx)

	s.auditSvc.Log(ctx, actorID, "TRANSITION", "Order", order.ID, fmt.Sprintf("Order moved to %s", order.Status), "", "")
	return order, nil
}

func (s *OrderService) restock(ctx context.Context, order *models.Order) {
	for _, detail := range order.OrderDetails {
		product, err := s.productRepo.FindByID(ctx, detail.ProductID)
		if err != nil {
			continue
		}
		product.Stock += detail.Quantity
		_ = s.productRepo.Update(ctx, product)
	}
}

// AttachPayment links a completed payment record to the order
func (s *OrderService) AttachPayment(ctx context.Context, orderID, paymentID uint, actorID uint) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, ErrNotFound
	}

	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, ErrNotFound
	}

	order.PaymentID = &payment.ID
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, "ATTACH_PAYMENT", "Order", order.ID, fmt.Sprintf("Payment #%d attached", payment.ID), "", "")
	return order, nil
}
