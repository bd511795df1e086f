package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/adhunikethi/agritech-api/internal/models"
)

// ProductRepository defines the interface for product catalog access
type ProductRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Product, int64, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	FindCategoryByID(ctx context.Context, id uint) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, id).Error
}

func (r *productRepository) List(ctx context.Context, query *ListQuery) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Product{})

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("name ILIKE ? OR description ILIKE ?", search, search)
	}

	if query.Filters["status"] != "" {
		db = db.Where("status = ?", query.Filters["status"])
	}

	if query.Filters["category_id"] != "" {
		db = db.Where("category_id = ?", query.Filters["category_id"])
	}

	db.Count(&total)

	db = db.Order(query.OrderClause("created_at DESC", "name", "price", "stock", "status", "created_at"))

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Preload("Category").Find(&products).Error
	return products, total, err
}

func (r *productRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Order("id ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepository) FindCategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *productRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).Order("category_name ASC").Find(&categories).Error
	return categories, err
}

func (r *productRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		if isDuplicateKeyError(err, "categories_category_name_key") {
			return errors.New("a category with this name already exists")
		}
		return err
	}
	return nil
}
