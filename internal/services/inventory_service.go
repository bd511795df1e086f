package services

import (
	"context"
	"fmt"

	"github.com/adhunikethi/agritech-api/internal/models"
	"github.com/adhunikethi/agritech-api/internal/repository"
)

// InventoryService handles warehouse stock business logic
type InventoryService struct {
	repo            repository.InventoryRepository
	notificationSvc *NotificationService
	auditSvc        *AuditService
}

func NewInventoryService(repo repository.InventoryRepository, notificationSvc *NotificationService, auditSvc *AuditService) *InventoryService {
	return &InventoryService{
		repo:            repo,
		notificationSvc: notificationSvc,
		auditSvc:        auditSvc,
	}
}

func (s *InventoryService) FindByID(ctx context.Context, id uint) (*models.InventoryItem, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *InventoryService) FindBySKU(ctx context.Context, sku string) (*models.InventoryItem, error) {
	return s.repo.FindBySKU(ctx, sku)
}

func (s *InventoryService) List(ctx context.Context, query *repository.ListQuery) ([]models.InventoryItem, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *InventoryService) Create(ctx context.Context, item *models.InventoryItem, actorID uint) error {
	if err := s.repo.Create(ctx, item); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, "CREATE", "InventoryItem", item.ID, fmt.Sprintf("Item created: %s (%s)", item.Name, item.SKU), "", "")
}

func (s *InventoryService) Update(ctx context.Context, item *models.InventoryItem, actorID uint) error {
	if err := s.repo.Update(ctx, item); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, "UPDATE", "InventoryItem", item.ID, fmt.Sprintf("Item updated: %s", item.SKU), "", "")
}

func (s *InventoryService) Delete(ctx context.Context, id uint, actorID uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, "DELETE", "InventoryItem", id, "Item removed", "", "")
}

// RecordMovement applies a stock movement (in, out, adjustment) to an item.
// Outbound movements cannot take the quantity below zero.
func (s *InventoryService) RecordMovement(ctx context.Context, movement *models.StockMovement, actorID uint) (*models.InventoryItem, error) {
	item, err := s.repo.FindByID(ctx, movement.ItemID)
	if err != nil {
		return nil, ErrNotFound
	}

	var delta int
	switch movement.Type {
	case models.MovementTypeIn:
		if movement.Quantity <= 0 {
			return nil, fmt.Errorf("inbound quantity must be positive")
		}
		delta = movement.Quantity
	case models.MovementTypeOut:
		if movement.Quantity <= 0 {
			return nil, fmt.Errorf("outbound quantity must be positive")
		}
		if item.Quantity < movement.Quantity {
			return nil, ErrInsufficientStock
		}
		delta = -movement.Quantity
	case models.MovementTypeAdjustment:
		delta = movement.Quantity - item.Quantity
	default:
		return nil, fmt.Errorf("unknown movement type: %s", movement.Type)
	}

	if err := s.repo.AdjustQuantity(ctx, movement, delta); err != nil {
		return nil, err
	}
	item.Quantity += delta

	s.notifyStockLevel(ctx, item)

	s.auditSvc.Log(ctx, actorID, "STOCK_MOVEMENT", "InventoryItem", item.ID,
		fmt.Sprintf("%s movement of %d on %s, quantity now %d", movement.Type, movement.Quantity, item.SKU, item.Quantity), "", "")
	return item, nil
}

func (s *InventoryService) ListMovements(ctx context.Context, itemID uint) ([]models.StockMovement, error) {
	return s.repo.ListMovements(ctx, itemID)
}

func (s *InventoryService) FindLowStock(ctx context.Context) ([]models.InventoryItem, error) {
	return s.repo.FindLowStock(ctx)
}

// CheckStockLevels scans the whole inventory and raises a notification for
// every item at or below its reorder point. Run from the scheduler.
func (s *InventoryService) CheckStockLevels(ctx context.Context) error {
	items, err := s.repo.FindLowStock(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		s.notifyStockLevel(ctx, &items[i])
	}
	return nil
}

func (s *InventoryService) notifyStockLevel(ctx context.Context, item *models.InventoryItem) {
	switch item.StockStatus() {
	case models.StockStatusOutOfStock:
		s.notificationSvc.NotifyAdmins(ctx,
			"Out of Stock",
			fmt.Sprintf("%s (%s) is out of stock", item.Name, item.SKU),
			models.NotificationTypeOutOfStock)
	case models.StockStatusLowStock:
		s.notificationSvc.NotifyAdmins(ctx,
			"Low Stock",
			fmt.Sprintf("%s (%s) is down to %d %s (reorder point %d)", item.Name, item.SKU, item.Quantity, item.Unit, item.ReorderPoint),
			models.NotificationTypeLowStock)
	}
}
