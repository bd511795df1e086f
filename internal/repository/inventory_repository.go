package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/adhunikethi/agritech-api/internal/models"
)

// InventoryRepository defines the interface for warehouse stock access
type InventoryRepository interface {
	FindByID(ctx context.Context, id uint) (*models.InventoryItem, error)
	FindBySKU(ctx context.Context, sku string) (*models.InventoryItem, error)
	Create(ctx context.Context, item *models.InventoryItem) error
	Update(ctx context.Context, item *models.InventoryItem) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.InventoryItem, int64, error)
	FindLowStock(ctx context.Context) ([]models.InventoryItem, error)

	// AdjustQuantity applies a stock movement and the resulting quantity
	// change atomically.
	AdjustQuantity(ctx context.Context, movement *models.StockMovement, delta int) error
	ListMovements(ctx context.Context, itemID uint) ([]models.StockMovement, error)
}

type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) FindByID(ctx context.Context, id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.db.WithContext(ctx).First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) FindBySKU(ctx context.Context, sku string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.db.WithContext(ctx).
		Where("sku = ?", sku).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		if isDuplicateKeyError(err, "inventory_items_sku_key") {
			return errors.New("an inventory item with this SKU already exists")
		}
		return err
	}
	return nil
}

func (r *inventoryRepository) Update(ctx context.Context, item *models.InventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *inventoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.InventoryItem{}, id).Error
}

func (r *inventoryRepository) List(ctx context.Context, query *ListQuery) ([]models.InventoryItem, int64, error) {
	var items []models.InventoryItem
	var total int64

	db := r.db.WithContext(ctx).Model(&models.InventoryItem{})

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("name ILIKE ? OR sku ILIKE ? OR supplier ILIKE ?", search, search, search)
	}

	if query.Filters["category"] != "" {
		db = db.Where("category = ?", query.Filters["category"])
	}

	if query.Filters["location"] != "" {
		db = db.Where("location = ?", query.Filters["location"])
	}

	db.Count(&total)

	db = db.Order(query.OrderClause("name ASC", "name", "sku", "quantity", "category", "created_at"))

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&items).Error
	return items, total, err
}

func (r *inventoryRepository) FindLowStock(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := r.db.WithContext(ctx).
		Where("quantity <= reorder_point").
		Order("quantity ASC").
		Find(&items).Error
	return items, err
}

func (r *inventoryRepository) AdjustQuantity(ctx context.Context, movement *models.StockMovement, delta int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(movement).Error; err != nil {
			return err
		}
		return tx.Model(&models.InventoryItem{}).
			Where("id = ?", movement.ItemID).
			Update("quantity", gorm.Expr("quantity + ?", delta)).Error
	})
}

func (r *inventoryRepository) ListMovements(ctx context.Context, itemID uint) ([]models.StockMovement, error) {
	var movements []models.StockMovement
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at DESC").
		Find(&movements).Error
	return movements, err
}
