// Package analytics derives the admin dashboard snapshot from the four
// platform collections (products, orders, users, payments). Aggregation is a
// pure in-memory pass: no I/O, no mutation of the inputs, a fresh snapshot on
// every call.
package analytics

import (
	"sort"
	"time"

	"github.com/adhunikethi/agritech-api/internal/models"
)

// marginRate is a flat margin estimate applied to product revenue. It is an
// approximation, not a cost-based margin.
const marginRate = 0.10

// recentOrderLimit caps the recent-orders panel
const recentOrderLimit = 5

// Aggregate computes a DashboardSnapshot from the four collections. Missing
// references are tolerated: unknown customers render as "Unknown", unknown
// payments as "N/A", products without a category as "Uncategorized". Rate
// metrics are 0 whenever their denominator is 0.
func Aggregate(products []models.Product, orders []models.Order, users []models.User, payments []models.Payment) *models.DashboardSnapshot {
	ix := buildIndex(orders, users, payments)

	return &models.DashboardSnapshot{
		Overview:            overview(products, orders, users, payments),
		RecentOrders:        recentOrders(orders, ix),
		ProductPerformance:  productPerformance(products, ix),
		UserTypes:           userTypes(users),
		PaymentMethods:      paymentMethods(payments),
		SalesTrend:          salesTrend(orders),
		CategoryPerformance: categoryPerformance(products, ix),
	}
}

// index holds id-keyed lookups built once per aggregation pass. The joins are
// conceptually linear scans over dashboard-scale collections; the maps change
// nothing observable, only the cost.
type index struct {
	usersByID       map[uint]*models.User
	paymentsByID    map[uint]*models.Payment
	ordersByProduct map[uint][]*models.Order
}

func buildIndex(orders []models.Order, users []models.User, payments []models.Payment) *index {
	ix := &index{
		usersByID:       make(map[uint]*models.User, len(users)),
		paymentsByID:    make(map[uint]*models.Payment, len(payments)),
		ordersByProduct: make(map[uint][]*models.Order),
	}

	for i := range users {
		u := &users[i]
		if _, ok := ix.usersByID[u.ID]; !ok {
			ix.usersByID[u.ID] = u
		}
	}
	for i := range payments {
		p := &payments[i]
		if _, ok := ix.paymentsByID[p.ID]; !ok {
			ix.paymentsByID[p.ID] = p
		}
	}

	// Each order is listed once per distinct product it contains, so an order
	// with two lines of the same product still counts as a single sale.
	for i := range orders {
		o := &orders[i]
		seen := make(map[uint]struct{}, len(o.OrderDetails))
		for _, d := range o.OrderDetails {
			if _, ok := seen[d.ProductID]; ok {
				continue
			}
			seen[d.ProductID] = struct{}{}
			ix.ordersByProduct[d.ProductID] = append(ix.ordersByProduct[d.ProductID], o)
		}
	}

	return ix
}

func overview(products []models.Product, orders []models.Order, users []models.User, payments []models.Payment) models.DashboardOverview {
	var totalRevenue float64
	for _, p := range payments {
		if p.PaymentStatus == models.PaymentStatusCompleted {
			totalRevenue += p.Amount
		}
	}

	activeUsers := 0
	for _, u := range users {
		if u.Status == models.StatusActive {
			activeUsers++
		}
	}

	ov := models.DashboardOverview{
		TotalRevenue:  totalRevenue,
		TotalOrders:   len(orders),
		TotalUsers:    activeUsers,
		TotalProducts: len(products),
	}
	if ov.TotalOrders > 0 {
		ov.AvgOrderValue = totalRevenue / float64(ov.TotalOrders)
	}
	if ov.TotalUsers > 0 {
		ov.ConversionRate = float64(ov.TotalOrders) / float64(ov.TotalUsers) * 100
	}
	return ov
}

// recentOrders returns the last entries of the input sequence, newest first,
// with customer name and payment method resolved.
func recentOrders(orders []models.Order, ix *index) []models.RecentOrder {
	start := len(orders) - recentOrderLimit
	if start < 0 {
		start = 0
	}

	recent := make([]models.RecentOrder, 0, len(orders)-start)
	for i := len(orders) - 1; i >= start; i-- {
		o := orders[i]

		customer := "Unknown"
		if u, ok := ix.usersByID[o.UserID]; ok {
			customer = u.Name
		}

		method := "N/A"
		if o.PaymentID != nil {
			if p, ok := ix.paymentsByID[*o.PaymentID]; ok {
				method = p.PaymentMethod
			}
		}

		recent = append(recent, models.RecentOrder{
			OrderID:       o.ID,
			CustomerName:  customer,
			Date:          o.OrderDate.Format(time.RFC3339),
			Amount:        o.TotalPrice,
			Status:        o.Status,
			PaymentMethod: method,
		})
	}
	return recent
}

func productPerformance(products []models.Product, ix *index) []models.ProductPerformance {
	perf := make([]models.ProductPerformance, 0, len(products))
	for i := range products {
		p := &products[i]

		var revenue float64
		related := ix.ordersByProduct[p.ID]
		for _, o := range related {
			revenue += o.TotalPrice
		}

		perf = append(perf, models.ProductPerformance{
			Name:     p.Name,
			Category: p.CategoryName(),
			Sales:    len(related),
			Revenue:  revenue,
			Margin:   revenue * marginRate,
		})
	}
	return perf
}

func userTypes(users []models.User) []models.Breakdown {
	groups := make([]models.Breakdown, 0)
	byName := make(map[string]int)
	for _, u := range users {
		idx, ok := byName[u.UserType]
		if !ok {
			idx = len(groups)
			byName[u.UserType] = idx
			groups = append(groups, models.Breakdown{Name: u.UserType})
		}
		groups[idx].Count++
	}
	for i := range groups {
		groups[i].Value = float64(groups[i].Count) / float64(len(users)) * 100
	}
	return groups
}

func paymentMethods(payments []models.Payment) []models.Breakdown {
	groups := make([]models.Breakdown, 0)
	byName := make(map[string]int)
	for _, p := range payments {
		idx, ok := byName[p.PaymentMethod]
		if !ok {
			idx = len(groups)
			byName[p.PaymentMethod] = idx
			groups = append(groups, models.Breakdown{Name: p.PaymentMethod})
		}
		groups[idx].Count++
	}
	for i := range groups {
		groups[i].Value = float64(groups[i].Count) / float64(len(payments)) * 100
	}
	return groups
}

// salesTrend groups orders by calendar date (time of day truncated) and
// returns the points in ascending date order.
func salesTrend(orders []models.Order) []models.SalesTrendPoint {
	points := make([]models.SalesTrendPoint, 0)
	byDate := make(map[string]int)
	for _, o := range orders {
		date := o.OrderDate.Format(time.DateOnly)
		idx, ok := byDate[date]
		if !ok {
			idx = len(points)
			byDate[date] = idx
			points = append(points, models.SalesTrendPoint{Date: date})
		}
		points[idx].Revenue += o.TotalPrice
		points[idx].Orders++
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// categoryPerformance attributes order totals to product categories. An order
// whose line items span products from several categories counts in full
// toward each of those categories.
func categoryPerformance(products []models.Product, ix *index) []models.CategoryPerformance {
	perf := make([]models.CategoryPerformance, 0)
	byName := make(map[string]int)
	for i := range products {
		p := &products[i]
		name := p.CategoryName()

		idx, ok := byName[name]
		if !ok {
			idx = len(perf)
			byName[name] = idx
			perf = append(perf, models.CategoryPerformance{Category: name})
		}

		for _, o := range ix.ordersByProduct[p.ID] {
			perf[idx].Revenue += o.TotalPrice
			perf[idx].Orders++
		}
	}
	return perf
}
