package models

import "time"

// Category groups products in the catalog (seeds, fertilizers, tools...)
type Category struct {
	ID           uint   `gorm:"primaryKey" json:"categoryId"`
	CategoryName string `gorm:"uniqueIndex;not null" json:"categoryName"`
}

// TableName specifies the table name for Category
func (Category) TableName() string {
	return "categories"
}

// Product represents a catalog item
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"productId"`
	Name        string    `gorm:"not null;index" json:"name"`
	Description string    `json:"description"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock       int       `gorm:"default:0" json:"stock"`
	Image       string    `json:"image"`
	Status      string    `gorm:"default:PUBLISHED;index" json:"status"`
	CategoryID  *uint     `gorm:"index" json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"-"`

	// Associations
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName specifies the table name for Product
func (Product) TableName() string {
	return "products"
}

// Product status constants
const (
	ProductStatusPublished   = "PUBLISHED"
	ProductStatusUnpublished = "UNPUBLISHED"
)

// CategoryName resolves the category label, falling back to "Uncategorized"
// when the product has no category assigned.
func (p *Product) CategoryName() string {
	if p.Category == nil || p.Category.CategoryName == "" {
		return CategoryUncategorized
	}
	return p.Category.CategoryName
}

// CategoryUncategorized is the label used for products without a category
const CategoryUncategorized = "Uncategorized"

// IsPublished returns true if the product is visible in the store
func (p *Product) IsPublished() bool {
	return p.Status == ProductStatusPublished
}
