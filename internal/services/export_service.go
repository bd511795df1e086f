package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/adhunikethi/agritech-api/internal/models"
)

// ExportService renders the dashboard snapshot as downloadable reports
type ExportService struct {
	analyticsSvc *AnalyticsService
}

func NewExportService(analyticsSvc *AnalyticsService) *ExportService {
	return &ExportService{analyticsSvc: analyticsSvc}
}

// Dashboard fetches the current snapshot for export
func (s *ExportService) Dashboard(ctx context.Context) (*models.DashboardSnapshot, error) {
	return s.analyticsSvc.GetDashboard(ctx)
}

func (s *ExportService) ExportCSV(ctx context.Context, snapshot *models.DashboardSnapshot) ([]byte, string, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	// Header
	_ = writer.Write([]string{"Dashboard Report", time.Now().Format("2006-01-02 15:04")})
	_ = writer.Write([]string{""})

	// Overview Section
	_ = writer.Write([]string{"Overview"})
	_ = writer.Write([]string{"Metric", "Value"})
	_ = writer.Write([]string{"Total Revenue", fmt.Sprintf("%.2f", snapshot.Overview.TotalRevenue)})
	_ = writer.Write([]string{"Total Orders", fmt.Sprintf("%d", snapshot.Overview.TotalOrders)})
	_ = writer.Write([]string{"Active Users", fmt.Sprintf("%d", snapshot.Overview.TotalUsers)})
	_ = writer.Write([]string{"Total Products", fmt.Sprintf("%d", snapshot.Overview.TotalProducts)})
	_ = writer.Write([]string{"Avg Order Value", fmt.Sprintf("%.2f", snapshot.Overview.AvgOrderValue)})
	_ = writer.Write([]string{"Conversion Rate", fmt.Sprintf("%.2f%%", snapshot.Overview.ConversionRate)})
	_ = writer.Write([]string{""})

	// Product Performance Section
	_ = writer.Write([]string{"Product Performance"})
	_ = writer.Write([]string{"Product", "Category", "Sales", "Revenue", "Margin"})
	for _, p := range snapshot.ProductPerformance {
		_ = writer.Write([]string{p.Name, p.Category, fmt.Sprintf("%d", p.Sales), fmt.Sprintf("%.2f", p.Revenue), fmt.Sprintf("%.2f", p.Margin)})
	}
	_ = writer.Write([]string{""})

	// Category Performance Section
	_ = writer.Write([]string{"Category Performance"})
	_ = writer.Write([]string{"Category", "Orders", "Revenue"})
	for _, c := range snapshot.CategoryPerformance {
		_ = writer.Write([]string{c.Category, fmt.Sprintf("%d", c.Orders), fmt.Sprintf("%.2f", c.Revenue)})
	}
	_ = writer.Write([]string{""})

	// Sales Trend Section
	_ = writer.Write([]string{"Sales Trend"})
	_ = writer.Write([]string{"Date", "Orders", "Revenue"})
	for _, pt := range snapshot.SalesTrend {
		_ = writer.Write([]string{pt.Date, fmt.Sprintf("%d", pt.Orders), fmt.Sprintf("%.2f", pt.Revenue)})
	}

	writer.Flush()

	filename := fmt.Sprintf("dashboard_report_%s.csv", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func (s *ExportService) ExportXLSX(ctx context.Context, snapshot *models.DashboardSnapshot) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Dashboard"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	_ = f.SetCellValue(sheet, "A1", "Dashboard Report")
	_ = f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	_ = f.SetCellValue(sheet, "A3", "Overview")
	_ = f.SetCellValue(sheet, "A4", "Metric")
	_ = f.SetCellValue(sheet, "B4", "Value")

	_ = f.SetCellValue(sheet, "A5", "Total Revenue")
	_ = f.SetCellValue(sheet, "B5", snapshot.Overview.TotalRevenue)
	_ = f.SetCellValue(sheet, "A6", "Total Orders")
	_ = f.SetCellValue(sheet, "B6", snapshot.Overview.TotalOrders)
	_ = f.SetCellValue(sheet, "A7", "Active Users")
	_ = f.SetCellValue(sheet, "B7", snapshot.Overview.TotalUsers)
	_ = f.SetCellValue(sheet, "A8", "Total Products")
	_ = f.SetCellValue(sheet, "B8", snapshot.Overview.TotalProducts)
	_ = f.SetCellValue(sheet, "A9", "Avg Order Value")
	_ = f.SetCellValue(sheet, "B9", snapshot.Overview.AvgOrderValue)
	_ = f.SetCellValue(sheet, "A10", "Conversion Rate")
	_ = f.SetCellValue(sheet, "B10", fmt.Sprintf("%.2f%%", snapshot.Overview.ConversionRate))

	// Product performance table
	row := 12
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Product Performance")
	row++
	for col, title := range []string{"Product", "Category", "Sales", "Revenue", "Margin"} {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		_ = f.SetCellValue(sheet, cell, title)
	}
	row++
	for _, p := range snapshot.ProductPerformance {
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), p.Name)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), p.Category)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), p.Sales)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), p.Revenue)
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), p.Margin)
		row++
	}

	// Sales trend table
	row++
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Sales Trend")
	row++
	for col, title := range []string{"Date", "Orders", "Revenue"} {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		_ = f.SetCellValue(sheet, cell, title)
	}
	row++
	for _, pt := range snapshot.SalesTrend {
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), pt.Date)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), pt.Orders)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), pt.Revenue)
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("dashboard_report_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func (s *ExportService) ExportPDF(ctx context.Context, snapshot *models.DashboardSnapshot) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Dashboard Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Overview")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(60, 10, "Total Revenue:")
	pdf.Cell(40, 10, fmt.Sprintf("%.2f", snapshot.Overview.TotalRevenue))
	pdf.Ln(6)

	pdf.Cell(60, 10, "Total Orders:")
	pdf.Cell(40, 10, fmt.Sprintf("%d", snapshot.Overview.TotalOrders))
	pdf.Ln(6)

	pdf.Cell(60, 10, "Active Users:")
	pdf.Cell(40, 10, fmt.Sprintf("%d", snapshot.Overview.TotalUsers))
	pdf.Ln(6)

	pdf.Cell(60, 10, "Total Products:")
	pdf.Cell(40, 10, fmt.Sprintf("%d", snapshot.Overview.TotalProducts))
	pdf.Ln(6)

	pdf.Cell(60, 10, "Avg Order Value:")
	pdf.Cell(40, 10, fmt.Sprintf("%.2f", snapshot.Overview.AvgOrderValue))
	pdf.Ln(6)

	pdf.Cell(60, 10, "Conversion Rate:")
	pdf.Cell(40, 10, fmt.Sprintf("%.2f%%", snapshot.Overview.ConversionRate))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Category Performance")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	for _, c := range snapshot.CategoryPerformance {
		pdf.Cell(60, 10, c.Category+":")
		pdf.Cell(40, 10, fmt.Sprintf("%d orders / %.2f", c.Orders, c.Revenue))
		pdf.Ln(6)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "User Types")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	for _, g := range snapshot.UserTypes {
		pdf.Cell(60, 10, g.Name+":")
		pdf.Cell(40, 10, fmt.Sprintf("%d (%.2f%%)", g.Count, g.Value))
		pdf.Ln(6)
	}

	buf := new(bytes.Buffer)
	err := pdf.Output(buf)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("dashboard_report_%s.pdf", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
