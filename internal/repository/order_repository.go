package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/adhunikethi/agritech-api/internal/models"
)

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	Update(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, id uint, status string) error
	List(ctx context.Context, query *ListQuery) ([]models.Order, int64, error)
	FindByUser(ctx context.Context, userID uint) ([]models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("OrderDetails").
		Preload("User").
		Preload("Payment").
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	// order details are inserted in the same transaction through the association
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) Update(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *orderRepository) List(ctx context.Context, query *ListQuery) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Order{})

	if query.Filters["status"] != "" {
		db = db.Where("status = ?", query.Filters["status"])
	}

	if query.Filters["user_id"] != "" {
		db = db.Where("user_id = ?", query.Filters["user_id"])
	}

	db.Count(&total)

	db = db.Order(query.OrderClause("order_date DESC", "order_date", "total_price", "status", "created_at"))

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Preload("OrderDetails").Preload("User").Preload("Payment").Find(&orders).Error
	return orders, total, err
}

func (r *orderRepository) FindByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("OrderDetails").
		Preload("Payment").
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("OrderDetails").
		Order("id ASC").
		Find(&orders).Error
	return orders, err
}
