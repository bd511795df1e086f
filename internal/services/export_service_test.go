package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adhunikethi/agritech-api/internal/models"
)

func testSnapshot() *models.DashboardSnapshot {
	return &models.DashboardSnapshot{
		Overview: models.DashboardOverview{
			TotalRevenue:   1500.50,
			TotalOrders:    12,
			TotalUsers:     5,
			TotalProducts:  8,
			AvgOrderValue:  125.04,
			ConversionRate: 240,
		},
		ProductPerformance: []models.ProductPerformance{
			{Name: "Tomato Seeds", Category: "Seeds", Sales: 4, Revenue: 600, Margin: 60},
			{Name: "Hand Trowel", Category: "Tools", Sales: 2, Revenue: 300, Margin: 30},
		},
		UserTypes: []models.Breakdown{
			{Name: models.UserTypeFarmer, Count: 3, Value: 60},
			{Name: models.UserTypeCustomer, Count: 2, Value: 40},
		},
		SalesTrend: []models.SalesTrendPoint{
			{Date: "2026-03-01", Revenue: 500, Orders: 4},
			{Date: "2026-03-02", Revenue: 1000.50, Orders: 8},
		},
		CategoryPerformance: []models.CategoryPerformance{
			{Category: "Seeds", Revenue: 600, Orders: 4},
			{Category: "Tools", Revenue: 300, Orders: 2},
		},
		GeneratedAt: time.Now(),
	}
}

func TestExportCSV(t *testing.T) {
	svc := NewExportService(nil)

	data, filename, err := svc.ExportCSV(context.Background(), testSnapshot())
	require.NoError(t, err)
	assert.Contains(t, filename, ".csv")

	// Sectioned output: rows have different widths
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	flat := make(map[string]bool)
	for _, row := range records {
		for _, cell := range row {
			flat[cell] = true
		}
	}
	assert.True(t, flat["Total Revenue"])
	assert.True(t, flat["1500.50"])
	assert.True(t, flat["Tomato Seeds"])
	assert.True(t, flat["2026-03-02"])
}

func TestExportXLSX(t *testing.T) {
	svc := NewExportService(nil)

	data, filename, err := svc.ExportXLSX(context.Background(), testSnapshot())
	require.NoError(t, err)
	assert.Contains(t, filename, ".xlsx")
	assert.NotEmpty(t, data)
	// XLSX is a zip container
	assert.Equal(t, []byte{'P', 'K'}, data[:2])
}

func TestExportPDF(t *testing.T) {
	svc := NewExportService(nil)

	data, filename, err := svc.ExportPDF(context.Background(), testSnapshot())
	require.NoError(t, err)
	assert.Contains(t, filename, ".pdf")
	assert.NotEmpty(t, data)
	assert.Equal(t, []byte("%PDF"), data[:4])
}
