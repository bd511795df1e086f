package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adhunikethi/agritech-api/internal/models"
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func uintPtr(v uint) *uint { return &v }

func order(id uint, userID uint, total float64, date time.Time, productIDs ...uint) models.Order {
	o := models.Order{
		ID:         id,
		UserID:     userID,
		OrderDate:  date,
		TotalPrice: total,
		Status:     models.OrderStatusPending,
	}
	for _, pid := range productIDs {
		o.OrderDetails = append(o.OrderDetails, models.OrderDetail{OrderID: id, ProductID: pid, Quantity: 1})
	}
	return o
}

func TestAggregateEmptyInputs(t *testing.T) {
	snap := Aggregate(nil, nil, nil, nil)
	require.NotNil(t, snap)

	assert.Zero(t, snap.Overview.TotalRevenue)
	assert.Zero(t, snap.Overview.TotalOrders)
	assert.Zero(t, snap.Overview.TotalUsers)
	assert.Zero(t, snap.Overview.TotalProducts)
	assert.Zero(t, snap.Overview.AvgOrderValue)
	assert.Zero(t, snap.Overview.ConversionRate)

	assert.Empty(t, snap.RecentOrders)
	assert.Empty(t, snap.ProductPerformance)
	assert.Empty(t, snap.UserTypes)
	assert.Empty(t, snap.PaymentMethods)
	assert.Empty(t, snap.SalesTrend)
	assert.Empty(t, snap.CategoryPerformance)
}

func TestAggregateRevenueCountsCompletedPaymentsOnly(t *testing.T) {
	payments := []models.Payment{
		{ID: 1, Amount: 200, PaymentStatus: models.PaymentStatusCompleted, PaymentMethod: models.PaymentMethodCard},
		{ID: 2, Amount: 75, PaymentStatus: models.PaymentStatusPending, PaymentMethod: models.PaymentMethodUPI},
		{ID: 3, Amount: 40, PaymentStatus: models.PaymentStatusFailed, PaymentMethod: models.PaymentMethodCard},
		{ID: 4, Amount: 25, PaymentStatus: models.PaymentStatusRefunded, PaymentMethod: models.PaymentMethodCOD},
	}

	snap := Aggregate(nil, nil, nil, payments)
	assert.InDelta(t, 200.0, snap.Overview.TotalRevenue, 1e-9)
}

func TestAggregateOverviewRates(t *testing.T) {
	users := []models.User{
		{ID: 1, Name: "Asha", Status: models.StatusActive, UserType: models.UserTypeFarmer},
		{ID: 2, Name: "Ravi", Status: models.StatusActive, UserType: models.UserTypeCustomer},
		{ID: 3, Name: "Lena", Status: models.StatusInactive, UserType: models.UserTypeCustomer},
	}
	orders := []models.Order{
		order(1, 1, 100, day("2026-03-01")),
		order(2, 2, 60, day("2026-03-02")),
		order(3, 2, 40, day("2026-03-02")),
	}
	payments := []models.Payment{
		{ID: 1, Amount: 100, PaymentStatus: models.PaymentStatusCompleted, PaymentMethod: models.PaymentMethodCard},
		{ID: 2, Amount: 60, PaymentStatus: models.PaymentStatusCompleted, PaymentMethod: models.PaymentMethodUPI},
	}

	snap := Aggregate(nil, orders, users, payments)

	// inactive user excluded from the population
	assert.Equal(t, 2, snap.Overview.TotalUsers)
	assert.Equal(t, 3, snap.Overview.TotalOrders)
	assert.InDelta(t, 160.0/3.0, snap.Overview.AvgOrderValue, 1e-9)
	assert.InDelta(t, 150.0, snap.Overview.ConversionRate, 1e-9)
}

func TestAggregateRecentOrdersLastFiveReversed(t *testing.T) {
	users := []models.User{{ID: 7, Name: "Asha", Status: models.StatusActive, UserType: models.UserTypeFarmer}}
	payments := []models.Payment{{ID: 9, Amount: 10, PaymentStatus: models.PaymentStatusCompleted, PaymentMethod: models.PaymentMethodUPI}}

	orders := make([]models.Order, 0, 7)
	for i := uint(1); i <= 7; i++ {
		o := order(i, 7, float64(i)*10, day("2026-03-01"))
		if i == 7 {
			o.PaymentID = uintPtr(9)
		}
		orders = append(orders, o)
	}

	snap := Aggregate(nil, orders, users, payments)

	require.Len(t, snap.RecentOrders, 5)
	assert.Equal(t, uint(7), snap.RecentOrders[0].OrderID)
	assert.Equal(t, uint(3), snap.RecentOrders[4].OrderID)

	assert.Equal(t, "Asha", snap.RecentOrders[0].CustomerName)
	assert.Equal(t, "UPI", snap.RecentOrders[0].PaymentMethod)
	// order 6 carries no payment reference
	assert.Equal(t, "N/A", snap.RecentOrders[1].PaymentMethod)
}

func TestAggregateRecentOrderDefaults(t *testing.T) {
	orders := []models.Order{
		func() models.Order {
			o := order(1, 42, 30, day("2026-03-01"))
			o.PaymentID = uintPtr(99)
			return o
		}(),
	}

	snap := Aggregate(nil, orders, nil, nil)

	require.Len(t, snap.RecentOrders, 1)
	assert.Equal(t, "Unknown", snap.RecentOrders[0].CustomerName)
	assert.Equal(t, "N/A", snap.RecentOrders[0].PaymentMethod)
}

func TestAggregateProductPerformance(t *testing.T) {
	seeds := models.Category{ID: 1, CategoryName: "Seeds"}
	products := []models.Product{
		{ID: 1, Name: "Tomato Seeds", Price: 50, CategoryID: uintPtr(1), Category: &seeds},
	}
	orders := []models.Order{
		order(1, 1, 100, day("2026-03-01"), 1),
		order(2, 1, 50, day("2026-03-02"), 1),
	}

	snap := Aggregate(products, orders, nil, nil)

	require.Len(t, snap.ProductPerformance, 1)
	p := snap.ProductPerformance[0]
	assert.Equal(t, "Tomato Seeds", p.Name)
	assert.Equal(t, "Seeds", p.Category)
	assert.Equal(t, 2, p.Sales)
	assert.InDelta(t, 150.0, p.Revenue, 1e-9)
	assert.InDelta(t, 15.0, p.Margin, 1e-9)
}

func TestAggregateProductSaleCountedOncePerOrder(t *testing.T) {
	products := []models.Product{{ID: 1, Name: "Wheat Seeds"}}
	// two line items of the same product within a single order
	orders := []models.Order{order(1, 1, 80, day("2026-03-01"), 1, 1)}

	snap := Aggregate(products, orders, nil, nil)

	require.Len(t, snap.ProductPerformance, 1)
	assert.Equal(t, 1, snap.ProductPerformance[0].Sales)
	assert.InDelta(t, 80.0, snap.ProductPerformance[0].Revenue, 1e-9)
	assert.Equal(t, "Uncategorized", snap.ProductPerformance[0].Category)
}

func TestAggregateUserTypeBreakdown(t *testing.T) {
	users := []models.User{
		{ID: 1, Name: "Asha", Status: models.StatusActive, UserType: models.UserTypeFarmer},
		{ID: 2, Name: "Ravi", Status: models.StatusActive, UserType: models.UserTypeFarmer},
		{ID: 3, Name: "Lena", Status: models.StatusActive, UserType: models.UserTypeAdmin},
	}

	snap := Aggregate(nil, nil, users, nil)

	require.Len(t, snap.UserTypes, 2)
	assert.Equal(t, models.UserTypeFarmer, snap.UserTypes[0].Name)
	assert.Equal(t, 2, snap.UserTypes[0].Count)
	assert.InDelta(t, 66.666666, snap.UserTypes[0].Value, 1e-4)
	assert.Equal(t, models.UserTypeAdmin, snap.UserTypes[1].Name)
	assert.InDelta(t, 33.333333, snap.UserTypes[1].Value, 1e-4)

	var sum float64
	for _, g := range snap.UserTypes {
		sum += g.Value
	}
	assert.InDelta(t, 100.0, sum, 1e-9)
}

func TestAggregatePaymentMethodBreakdown(t *testing.T) {
	payments := []models.Payment{
		{ID: 1, Amount: 10, PaymentStatus: models.PaymentStatusCompleted, PaymentMethod: models.PaymentMethodUPI},
		{ID: 2, Amount: 10, PaymentStatus: models.PaymentStatusPending, PaymentMethod: models.PaymentMethodCard},
		{ID: 3, Amount: 10, PaymentStatus: models.PaymentStatusCompleted, PaymentMethod: models.PaymentMethodUPI},
		{ID: 4, Amount: 10, PaymentStatus: models.PaymentStatusCompleted, PaymentMethod: models.PaymentMethodCOD},
	}

	snap := Aggregate(nil, nil, nil, payments)

	require.Len(t, snap.PaymentMethods, 3)
	// first-seen order is preserved
	assert.Equal(t, models.PaymentMethodUPI, snap.PaymentMethods[0].Name)
	assert.Equal(t, 2, snap.PaymentMethods[0].Count)
	assert.InDelta(t, 50.0, snap.PaymentMethods[0].Value, 1e-9)

	var sum float64
	for _, g := range snap.PaymentMethods {
		sum += g.Value
	}
	assert.InDelta(t, 100.0, sum, 1e-9)
}

func TestAggregateSalesTrendGroupsByDateAscending(t *testing.T) {
	orders := []models.Order{
		order(1, 1, 100, day("2026-03-05").Add(9*time.Hour)),
		order(2, 1, 40, day("2026-03-03").Add(14*time.Hour)),
		order(3, 1, 60, day("2026-03-05").Add(18*time.Hour)),
	}

	snap := Aggregate(nil, orders, nil, nil)

	require.Len(t, snap.SalesTrend, 2)
	assert.Equal(t, "2026-03-03", snap.SalesTrend[0].Date)
	assert.InDelta(t, 40.0, snap.SalesTrend[0].Revenue, 1e-9)
	assert.Equal(t, 1, snap.SalesTrend[0].Orders)
	assert.Equal(t, "2026-03-05", snap.SalesTrend[1].Date)
	assert.InDelta(t, 160.0, snap.SalesTrend[1].Revenue, 1e-9)
	assert.Equal(t, 2, snap.SalesTrend[1].Orders)

	for i := 1; i < len(snap.SalesTrend); i++ {
		assert.Less(t, snap.SalesTrend[i-1].Date, snap.SalesTrend[i].Date)
	}
}

func TestAggregateCategoryPerformanceCountsOrderPerCategory(t *testing.T) {
	seeds := models.Category{ID: 1, CategoryName: "Seeds"}
	tools := models.Category{ID: 2, CategoryName: "Tools"}
	products := []models.Product{
		{ID: 1, Name: "Tomato Seeds", CategoryID: uintPtr(1), Category: &seeds},
		{ID: 2, Name: "Hand Trowel", CategoryID: uintPtr(2), Category: &tools},
	}
	// a single order spanning both categories contributes its full total to each
	orders := []models.Order{order(1, 1, 120, day("2026-03-01"), 1, 2)}

	snap := Aggregate(products, orders, nil, nil)

	require.Len(t, snap.CategoryPerformance, 2)
	assert.Equal(t, "Seeds", snap.CategoryPerformance[0].Category)
	assert.InDelta(t, 120.0, snap.CategoryPerformance[0].Revenue, 1e-9)
	assert.Equal(t, 1, snap.CategoryPerformance[0].Orders)
	assert.Equal(t, "Tools", snap.CategoryPerformance[1].Category)
	assert.InDelta(t, 120.0, snap.CategoryPerformance[1].Revenue, 1e-9)
	assert.Equal(t, 1, snap.CategoryPerformance[1].Orders)
}

func TestAggregateDoesNotMutateInputs(t *testing.T) {
	orders := []models.Order{
		order(1, 1, 100, day("2026-03-01"), 1),
		order(2, 1, 50, day("2026-03-02"), 1),
	}
	before := make([]models.Order, len(orders))
	copy(before, orders)

	_ = Aggregate(nil, orders, nil, nil)

	assert.Equal(t, before, orders)
}
