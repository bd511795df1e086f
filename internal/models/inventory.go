package models

import "time"

// InventoryItem tracks warehouse stock for farm supplies. It is deliberately
// broader than Product: items may exist in the warehouse without being listed
// in the store catalog.
type InventoryItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null;index" json:"name"`
	Description  string    `json:"description"`
	Category     string    `gorm:"index" json:"category"`
	SKU          string    `gorm:"column:sku;uniqueIndex;not null" json:"sku"`
	Quantity     int       `gorm:"default:0" json:"quantity"`
	ReorderPoint int       `gorm:"default:0" json:"reorderPoint"`
	Unit         string    `gorm:"default:pieces" json:"unit"`
	CostPrice    float64   `gorm:"type:decimal(10,2)" json:"costPrice"`
	SellingPrice float64   `gorm:"type:decimal(10,2)" json:"sellingPrice"`
	Supplier     string    `json:"supplier"`
	Location     string    `json:"location"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName specifies the table name for InventoryItem
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// Stock status labels derived from quantity vs reorder point
const (
	StockStatusInStock    = "in-stock"
	StockStatusLowStock   = "low-stock"
	StockStatusOutOfStock = "out-of-stock"
)

// IsLowStock returns true when the item is at or below its reorder point
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity > 0 && i.Quantity <= i.ReorderPoint
}

// StockStatus derives the display status from the current quantity
func (i *InventoryItem) StockStatus() string {
	switch {
	case i.Quantity <= 0:
		return StockStatusOutOfStock
	case i.Quantity <= i.ReorderPoint:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

// StockMovement records a quantity change applied to an inventory item
type StockMovement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ItemID    uint      `gorm:"not null;index" json:"itemId"`
	Type      string    `gorm:"not null" json:"type"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Reference string    `json:"reference"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`

	// Associations
	Item InventoryItem `gorm:"foreignKey:ItemID" json:"-"`
}

// TableName specifies the table name for StockMovement
func (StockMovement) TableName() string {
	return "stock_movements"
}

// Stock movement type constants
const (
	MovementTypeIn         = "in"
	MovementTypeOut        = "out"
	MovementTypeAdjustment = "adjustment"
)
