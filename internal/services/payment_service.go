package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adhunikethi/agritech-api/internal/models"
	"github.com/adhunikethi/agritech-api/internal/repository"
)

// PaymentService handles payment business logic
type PaymentService struct {
	repo         repository.PaymentRepository
	auditSvc     *AuditService
	analyticsSvc *AnalyticsService
}

func NewPaymentService(repo repository.PaymentRepository, auditSvc *AuditService, analyticsSvc *AnalyticsService) *PaymentService {
	return &PaymentService{
		repo:         repo,
		auditSvc:     auditSvc,
		analyticsSvc: analyticsSvc,
	}
}

func (s *PaymentService) FindByID(ctx context.Context, id uint) (*models.Payment, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PaymentService) FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	return s.repo.FindByTransactionID(ctx, transactionID)
}

func (s *PaymentService) List(ctx context.Context, query *repository.ListQuery) ([]models.Payment, int64, error) {
	return s.repo.List(ctx, query)
}

// Create records a payment. A transaction id is assigned when the caller
// does not supply one (cash on delivery has no gateway reference).
func (s *PaymentService) Create(ctx context.Context, payment *models.Payment, actorID uint) error {
	if payment.Amount <= 0 {
		return fmt.Errorf("payment amount must be positive")
	}
	if payment.TransactionID == "" {
		payment.TransactionID = uuid.NewString()
	}
	if payment.PaymentStatus == "" {
		payment.PaymentStatus = models.PaymentStatusPending
	}
	if payment.PaymentDate.IsZero() {
		payment.PaymentDate = time.Now()
	}

	if err := s.repo.Create(ctx, payment); err != nil {
		return err
	}

	s.analyticsSvc.InvalidateDashboard(ctx)
	return s.auditSvc.Log(ctx, actorID, "CREATE", "Payment", payment.ID, fmt.Sprintf("Payment recorded: %.2f via %s", payment.Amount, payment.PaymentMethod), "", "")
}

// SetStatus moves a payment to the given settlement status
func (s *PaymentService) SetStatus(ctx context.Context, id uint, status string, actorID uint) (*models.Payment, error) {
	switch status {
	case models.PaymentStatusCompleted, models.PaymentStatusPending,
		models.PaymentStatusFailed, models.PaymentStatusRefunded:
	default:
		return nil, ErrInvalidState
	}

	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	// Refunds only apply to settled payments
	if status == models.PaymentStatusRefunded && !payment.IsCompleted() {
		return nil, ErrInvalidState
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	payment.PaymentStatus = status

	s.analyticsSvc.InvalidateDashboard(ctx)
	s.auditSvc.Log(ctx, actorID, "SET_STATUS", "Payment", id, fmt.Sprintf("Payment status changed to %s", status), "", "")
	return payment, nil
}
