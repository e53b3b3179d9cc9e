package repository

import (
	"github.com/diillson/xm-reports-go/internal/domain/entity"
)

type ExportRepository interface {
	// Disconnection report
	ExportMonthlyReportToCSV(rows []entity.MonthlyReportRow, path string) (string, error)
	ExportMonthlyReportToJSON(rows []entity.MonthlyReportRow, path string) (string, error)
	ExportMonthlyReportToPDF(rows []entity.MonthlyReportRow, path string) (string, error)
	ReadMonthlyReportCSV(path string) ([]entity.MonthlyReportRow, error)

	// Price report
	ExportPriceReportToCSV(report entity.PriceReport, filename, outputDir string) (string, error)
	ExportPriceReportToJSON(report entity.PriceReport, filename, outputDir string) (string, error)
}
