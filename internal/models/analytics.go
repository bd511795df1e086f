package models

import (
	"encoding/json"
	"time"
)

// AnalyticsCache represents a cached dashboard snapshot
type AnalyticsCache struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	CacheKey  string          `gorm:"uniqueIndex;not null" json:"cacheKey"`
	Data      json.RawMessage `gorm:"type:jsonb;not null" json:"data"`
	ExpiresAt time.Time       `gorm:"not null;index" json:"expiresAt"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// TableName specifies the table name for AnalyticsCache
func (AnalyticsCache) TableName() string {
	return "analytics_cache"
}

// DashboardOverview holds the headline metrics of the dashboard
type DashboardOverview struct {
	TotalRevenue   float64 `json:"totalRevenue"`
	TotalOrders    int     `json:"totalOrders"`
	TotalUsers     int     `json:"totalUsers"`
	TotalProducts  int     `json:"totalProducts"`
	AvgOrderValue  float64 `json:"avgOrderValue"`
	ConversionRate float64 `json:"conversionRate"`
}

// RecentOrder is an order summary enriched with customer and payment details
type RecentOrder struct {
	OrderID       uint    `json:"orderId"`
	CustomerName  string  `json:"customerName"`
	Date          string  `json:"date"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"paymentMethod"`
}

// ProductPerformance holds per-product sales metrics
type ProductPerformance struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Sales    int     `json:"sales"`
	Revenue  float64 `json:"revenue"`
	Margin   float64 `json:"margin"`
}

// Breakdown is a categorical count with its share of the total population
type Breakdown struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

// SalesTrendPoint is one calendar day of order activity
type SalesTrendPoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// CategoryPerformance aggregates order revenue and count per product category
type CategoryPerformance struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
	Orders   int     `json:"orders"`
}

// DashboardSnapshot is the complete derived analytics result for one
// aggregation pass. It is recomputed from scratch on every refresh and never
// mutated in place.
type DashboardSnapshot struct {
	Overview            DashboardOverview     `json:"overview"`
	RecentOrders        []RecentOrder         `json:"recentOrders"`
	ProductPerformance  []ProductPerformance  `json:"productPerformance"`
	UserTypes           []Breakdown           `json:"userTypes"`
	PaymentMethods      []Breakdown           `json:"paymentMethods"`
	SalesTrend          []SalesTrendPoint     `json:"salesTrend"`
	CategoryPerformance []CategoryPerformance `json:"categoryPerformance"`
	GeneratedAt         time.Time             `json:"generatedAt"`
}
