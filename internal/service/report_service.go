package service

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"go-cafe-pos/internal/model"
	"go-cafe-pos/internal/repository"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

type ReportService interface {
	GetDashboardSummary(userID uuid.UUID, from, to *time.Time) (*DashboardSummary, error)
	BuildExcelReport(userID uuid.UUID, from, to *time.Time) (*excelize.File, error)
	BuildPDFReport(userID uuid.UUID, from, to *time.Time) ([]byte, error)
}

// DashboardSummary carries everything the dashboard page renders in one fetch
type DashboardSummary struct {
	TotalSales    int64                     `json:"total_sales"`
	TotalRevenue  decimal.Decimal           `json:"total_revenue"`
	TotalExpenses decimal.Decimal           `json:"total_expenses"`
	NetProfit     decimal.Decimal           `json:"net_profit"`
	ItemSales     []repository.ItemQuantity `json:"item_sales"`
	SalesPerDay   []repository.DailySales   `json:"sales_per_day"`
	RecentSales   []model.Sale              `json:"recent_sales"`
}

const recentSalesLimit = 10

type reportService struct {
	reportRepo repository.ReportRepository
	saleRepo   repository.SaleRepository
}

func NewReportService(reportRepo repository.ReportRepository, saleRepo repository.SaleRepository) ReportService {
	return &reportService{
		reportRepo: reportRepo,
		saleRepo:   saleRepo,
	}
}

func cafeName() string {
	if name := os.Getenv("CAFE_NAME"); name != "" {
		return name
	}
	return "Sathi ko Chiya"
}

func (s *reportService) GetDashboardSummary(userID uuid.UUID, from, to *time.Time) (*DashboardSummary, error) {
	sales, err := s.reportRepo.GetSalesSummary(userID, from, to)
	if err != nil {
		return nil, err
	}

	expenses, err := s.reportRepo.GetExpenseTotal(userID, from, to)
	if err != nil {
		return nil, err
	}

	itemSales, err := s.reportRepo.GetItemQuantities(from, to)
	if err != nil {
		return nil, err
	}

	perDay, err := s.reportRepo.GetSalesPerDay(userID, from, to)
	if err != nil {
		return nil, err
	}

	recent, err := s.saleRepo.FindByUser(userID, from, to)
	if err != nil {
		return nil, err
	}
	if len(recent) > recentSalesLimit {
		recent = recent[:recentSalesLimit]
	}

	return &DashboardSummary{
		TotalSales:    sales.TotalSales,
		TotalRevenue:  sales.TotalRevenue,
		TotalExpenses: expenses,
		NetProfit:     sales.TotalRevenue.Sub(expenses),
		ItemSales:     itemSales,
		SalesPerDay:   perDay,
		RecentSales:   recent,
	}, nil
}

func periodLabel(from, to *time.Time) string {
	if from != nil && to != nil {
		return fmt.Sprintf("Report Period: %s - %s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	}
	return "Report Period: All Time"
}

func (s *reportService) BuildExcelReport(userID uuid.UUID, from, to *time.Time) (*excelize.File, error) {
	summary, err := s.GetDashboardSummary(userID, from, to)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	f.SetCellValue(sheet, "A1", cafeName()+" - Sales Report")
	f.SetCellValue(sheet, "A2", periodLabel(from, to))

	f.SetCellValue(sheet, "A4", "Total Sales")
	f.SetCellValue(sheet, "B4", summary.TotalSales)
	f.SetCellValue(sheet, "A5", "Total Revenue")
	f.SetCellValue(sheet, "B5", summary.TotalRevenue.String())
	f.SetCellValue(sheet, "A6", "Total Expenses")
	f.SetCellValue(sheet, "B6", summary.TotalExpenses.String())
	f.SetCellValue(sheet, "A7", "Net Profit")
	f.SetCellValue(sheet, "B7", summary.NetProfit.String())

	// Sales table
	headerRow := 9
	headings := []string{"Table Number", "Space", "Customer", "Date", "Total", "Status"}
	for i, h := range headings {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		f.SetCellValue(sheet, cell, h)
	}
	for i, sale := range summary.RecentSales {
		row := headerRow + 1 + i
		status := "Unpaid"
		if sale.IsPaid {
			status = "Paid"
		}
		values := []interface{}{
			sale.TableNumber,
			string(sale.Space),
			sale.CustomerName,
			sale.CreatedAt.Format("2006-01-02 15:04"),
			sale.Total.String(),
			status,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	return f, nil
}

func (s *reportService) BuildPDFReport(userID uuid.UUID, from, to *time.Time) ([]byte, error) {
	summary, err := s.GetDashboardSummary(userID, from, to)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, cafeName()+" - Sales Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, periodLabel(from, to), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	rows := [][2]string{
		{"Total Sales:", fmt.Sprintf("%d", summary.TotalSales)},
		{"Total Revenue:", "Rs. " + summary.TotalRevenue.StringFixed(2)},
		{"Total Expenses:", "Rs. " + summary.TotalExpenses.StringFixed(2)},
		{"Net Profit:", "Rs. " + summary.NetProfit.StringFixed(2)},
	}
	for _, row := range rows {
		pdf.CellFormat(50, 7, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Recent Sales", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	widths := []float64{25, 30, 45, 45, 25, 20}
	headings := []string{"Table", "Space", "Customer", "Date", "Total", "Status"}
	for i, h := range headings {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, sale := range summary.RecentSales {
		status := "Unpaid"
		if sale.IsPaid {
			status = "Paid"
		}
		cells := []string{
			sale.TableNumber,
			string(sale.Space),
			sale.CustomerName,
			sale.CreatedAt.Format("2006-01-02 15:04"),
			sale.Total.StringFixed(2),
			status,
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 7, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
